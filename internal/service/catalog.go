// Package service holds the consumer-facing catalog operations. Everything
// here works over immutable snapshots from the loader; per-request views are
// derived fresh and never written back.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/songboard/songboard-server/internal/dataset"
	"github.com/songboard/songboard-server/internal/errors"
	"github.com/songboard/songboard-server/internal/loader"
	"github.com/songboard/songboard-server/internal/search"
)

// SelectorOverviewLabel is the synthetic first selector entry that routes to
// the overview instead of a single track.
const SelectorOverviewLabel = "[ Overview ]"

// ChartKind selects the aggregation a chart request runs.
type ChartKind string

const (
	ChartTop       ChartKind = "top"
	ChartHistogram ChartKind = "histogram"
)

// Chart is one chart's worth of data. Exactly one of Values or Bins is
// populated depending on Kind; both empty means the source column had
// nothing to aggregate.
type Chart struct {
	Column string               `json:"column"`
	Title  string               `json:"title"`
	Kind   ChartKind            `json:"kind"`
	Values []dataset.ValueCount `json:"values,omitempty"`
	Bins   []dataset.Bin        `json:"bins,omitempty"`
}

// Empty reports whether the chart has no data to render.
func (c Chart) Empty() bool {
	return len(c.Values) == 0 && len(c.Bins) == 0
}

// OverviewResult is the dashboard landing view: headline counts plus the
// standard chart set.
type OverviewResult struct {
	TotalTracks      int                      `json:"total_tracks"`
	TracksWithLyrics int                      `json:"tracks_with_lyrics"`
	TracksAnalyzed   int                      `json:"tracks_analyzed"`
	Annotations      dataset.AnnotationStatus `json:"annotations"`
	LoadedAt         time.Time                `json:"loaded_at"`
	Charts           []Chart                  `json:"charts"`
}

// SelectorEntry is one row of the song-selection list.
type SelectorEntry struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name"`
	HasAnalysis bool   `json:"has_ai_analysis"`
}

// SelectorResult enumerates the overview entry followed by every distinct
// display name in selection order.
type SelectorResult struct {
	Annotations dataset.AnnotationStatus `json:"annotations"`
	Entries     []SelectorEntry          `json:"entries"`
}

// CreditEntry is one production credit on a track.
type CreditEntry struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// Field is one generic column/value pair on a track detail view.
type Field struct {
	Name  string        `json:"name"`
	Value dataset.Value `json:"value"`
}

// TrackDetail is the per-track view: lyrics, AI annotations when usable,
// production credits, and every remaining non-missing column.
type TrackDetail struct {
	ID          string        `json:"id"`
	DisplayName string        `json:"display_name"`
	TrackName   string        `json:"track_name"`
	AlbumTitle  string        `json:"album_title"`
	Lyrics      string        `json:"lyrics,omitempty"`
	HasLyrics   bool          `json:"has_lyrics"`
	HasAnalysis bool          `json:"has_ai_analysis"`
	Theme       string        `json:"theme,omitempty"`
	Sentiment   string        `json:"sentiment,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	Credits     []CreditEntry `json:"credits"`
	Fields      []Field       `json:"fields"`
}

// creditRoles maps each credit role to its accepted column names. The CJK
// names are the source data's native headers; the English forms are accepted
// for catalogs exported with translated columns. First present non-missing
// column wins.
var creditRoles = []struct {
	role    string
	columns []string
}{
	{"lyricist", []string{"作詞", "lyricist"}},
	{"composer", []string{"作曲", "composer"}},
	{"producer", []string{"製作", "producer"}},
	{"arranger", []string{"編曲", "arranger"}},
}

const creditPlaceholder = "N/A"

// CatalogService answers every read over the loaded catalog.
type CatalogService struct {
	loader *loader.Loader
	index  *search.Index
	logger *slog.Logger
}

// NewCatalogService creates a catalog service. index may be nil when search
// is disabled.
func NewCatalogService(l *loader.Loader, index *search.Index, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		loader: l,
		index:  index,
		logger: logger,
	}
}

// snapshot loads the current snapshot and keeps the search index in step
// with it. An index rebuild failure degrades search only, never the caller's
// view.
func (s *CatalogService) snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s.index != nil {
		if err := s.index.Rebuild(ctx, snap); err != nil {
			s.logger.Warn("search index rebuild failed, search degraded", "error", err)
		}
	}
	return snap, nil
}

// Overview returns the headline counts and the standard chart set. Charts
// whose source column has nothing to aggregate are omitted from the result.
func (s *CatalogService) Overview(ctx context.Context) (*OverviewResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	t := snap.Table

	out := &OverviewResult{
		TotalTracks: t.NumRows(),
		Annotations: snap.Annotations,
		LoadedAt:    snap.LoadedAt,
	}

	var sentiments, themes []string
	for _, row := range t.Rows {
		if !row.Get(dataset.ColLyricsText).IsMissing() {
			out.TracksWithLyrics++
		}
		if row.Get(dataset.ColHasAnalysis).IsTrue() {
			out.TracksAnalyzed++
			if v := row.Get(dataset.ColAISentiment); !v.IsMissing() {
				sentiments = append(sentiments, v.Display())
			}
			if v := row.Get(dataset.ColAITheme); !v.IsMissing() {
				themes = append(themes, v.Display())
			}
		}
	}

	charts := []Chart{
		{Column: dataset.ColAISentiment, Title: "AI Sentiment", Kind: ChartTop,
			Values: dataset.CountValues(sentiments, len(sentiments))},
		{Column: dataset.ColAITheme, Title: "Top AI Themes", Kind: ChartTop,
			Values: dataset.CountValues(themes, 10)},
		{Column: "genre_ros", Title: "Genre", Kind: ChartTop,
			Values: dataset.TopN(t, "genre_ros", 15)},
		{Column: "key_scale", Title: "Key Scale", Kind: ChartTop,
			Values: dataset.TopN(t, "key_scale", 15)},
		{Column: "key_key", Title: "Key", Kind: ChartTop,
			Values: dataset.CountValues(dataset.NoteNameColumn(t, "key_key"), 12)},
		{Column: "mood_party", Title: "Mood: Party", Kind: ChartHistogram,
			Bins: dataset.Histogram(t, "mood_party", 10)},
		{Column: "danceability", Title: "Danceability", Kind: ChartHistogram,
			Bins: dataset.Histogram(t, "danceability", 10)},
	}

	out.Charts = make([]Chart, 0, len(charts))
	for _, c := range charts {
		if !c.Empty() {
			out.Charts = append(out.Charts, c)
		}
	}
	return out, nil
}

// Selector returns the song-selection list: the overview entry, then each
// distinct display name in selection order. When several rows share a
// display name the first in selection order represents it.
func (s *CatalogService) Selector(ctx context.Context) (*SelectorResult, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	t := snap.Table

	entries := []SelectorEntry{{DisplayName: SelectorOverviewLabel}}
	seen := make(map[string]bool, t.NumRows())
	for _, i := range dataset.SortForSelection(t) {
		name := t.Get(i, dataset.ColDisplayName).Str()
		if seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, SelectorEntry{
			ID:          snap.IDs[i],
			DisplayName: name,
			HasAnalysis: t.Get(i, dataset.ColHasAnalysis).IsTrue(),
		})
	}

	return &SelectorResult{Annotations: snap.Annotations, Entries: entries}, nil
}

// Track returns the detail view for one track ID.
func (s *CatalogService) Track(ctx context.Context, id string) (*TrackDetail, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	row := snap.RowByID(id)
	if row < 0 {
		return nil, errors.NotFoundf("track %s not found", id)
	}
	t := snap.Table

	detail := &TrackDetail{
		ID:          id,
		DisplayName: t.Get(row, dataset.ColDisplayName).Str(),
		TrackName:   t.Get(row, dataset.ColTrackName).Display(),
		AlbumTitle:  t.Get(row, dataset.ColAlbumTitle).Display(),
		HasAnalysis: t.Get(row, dataset.ColHasAnalysis).IsTrue(),
	}
	if detail.TrackName == "" {
		detail.TrackName = creditPlaceholder
	}
	if detail.AlbumTitle == "" {
		detail.AlbumTitle = creditPlaceholder
	}

	if v := t.Get(row, dataset.ColLyricsText); !v.IsMissing() {
		detail.Lyrics = v.Display()
		detail.HasLyrics = true
	}
	if detail.HasAnalysis {
		detail.Theme = t.Get(row, dataset.ColAITheme).Display()
		detail.Sentiment = t.Get(row, dataset.ColAISentiment).Display()
		detail.Notes = t.Get(row, dataset.ColAINotes).Display()
	}

	// Credits always list all four roles; missing ones read N/A like the
	// rest of the display surface.
	handled := map[string]bool{
		dataset.ColTrackName:   true,
		dataset.ColAlbumTitle:  true,
		dataset.ColLyricsText:  true,
		dataset.ColAITheme:     true,
		dataset.ColAISentiment: true,
		dataset.ColAINotes:     true,
		dataset.ColDisplayName: true,
		dataset.ColHasAnalysis: true,
	}
	detail.Credits = make([]CreditEntry, 0, len(creditRoles))
	for _, cr := range creditRoles {
		entry := CreditEntry{Role: cr.role, Name: creditPlaceholder}
		for _, col := range cr.columns {
			handled[col] = true
			if v := t.Get(row, col); !v.IsMissing() && entry.Name == creditPlaceholder {
				entry.Name = v.Display()
			}
		}
		detail.Credits = append(detail.Credits, entry)
	}

	// Everything else, non-missing, in column order.
	detail.Fields = make([]Field, 0, len(t.Columns))
	for _, col := range t.Columns {
		if handled[col] {
			continue
		}
		if v := t.Get(row, col); !v.IsMissing() {
			detail.Fields = append(detail.Fields, Field{Name: col, Value: v})
		}
	}

	return detail, nil
}

// Chart runs a single aggregation over any column. An absent or all-null
// column yields an empty chart, not an error.
func (s *CatalogService) Chart(ctx context.Context, column string, kind ChartKind, n, bins int) (*Chart, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	t := snap.Table

	chart := &Chart{Column: column, Title: column, Kind: kind}
	switch kind {
	case ChartTop:
		if n <= 0 {
			n = 15
		}
		chart.Values = dataset.TopN(t, column, n)
	case ChartHistogram:
		chart.Bins = dataset.Histogram(t, column, bins)
	default:
		return nil, errors.Validation("chart kind must be top or histogram")
	}
	return chart, nil
}

// Search queries the full-text index over the current snapshot.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]search.Hit, error) {
	if s.index == nil {
		return nil, nil
	}
	if _, err := s.snapshot(ctx); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, query, limit)
}

// Reload drops the memoized snapshot so the next read rebuilds from disk.
func (s *CatalogService) Reload(ctx context.Context) {
	s.loader.Invalidate()
	s.logger.Info("catalog reload requested")
}
