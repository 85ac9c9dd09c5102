// Package search provides full-text search over the loaded catalog using
// Bleve. The index is rebuilt in memory for every snapshot; at catalog
// scale (hundreds to low thousands of tracks) a rebuild is cheaper than
// keeping an on-disk index consistent with cache invalidations.
package search

import "github.com/songboard/songboard-server/internal/dataset"

// TrackDocument is the Bleve document for one catalog row. Lyrics and
// annotation text are denormalized in so one query spans titles, lyrics,
// and AI analysis.
type TrackDocument struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	TrackName   string `json:"track_name"`
	AlbumTitle  string `json:"album_title"`
	Lyrics      string `json:"lyrics"`
	Theme       string `json:"theme"`
	Sentiment   string `json:"sentiment"`
	Notes       string `json:"notes"`
	HasAnalysis bool   `json:"has_analysis"`
}

// DocumentForRow builds the search document for one snapshot row.
// Sentinel themes are not indexed; a search for "SKIPPED" finding every
// failed annotation would be noise, not a result.
func DocumentForRow(snap *dataset.Snapshot, row int) TrackDocument {
	t := snap.Table
	doc := TrackDocument{
		ID:          snap.IDs[row],
		DisplayName: t.Get(row, dataset.ColDisplayName).Str(),
		TrackName:   t.Get(row, dataset.ColTrackName).Display(),
		AlbumTitle:  t.Get(row, dataset.ColAlbumTitle).Display(),
		Lyrics:      t.Get(row, dataset.ColLyricsText).Display(),
		HasAnalysis: t.Get(row, dataset.ColHasAnalysis).IsTrue(),
	}
	if doc.HasAnalysis {
		doc.Theme = t.Get(row, dataset.ColAITheme).Display()
		doc.Sentiment = t.Get(row, dataset.ColAISentiment).Display()
		doc.Notes = t.Get(row, dataset.ColAINotes).Display()
	}
	return doc
}

// ToMap converts the document to a map with lowercase field names so it
// lines up with the index mapping. Bleve's reflection walk would otherwise
// index the capitalized Go field names.
func (d TrackDocument) ToMap() map[string]any {
	return map[string]any{
		"id":           d.ID,
		"display_name": d.DisplayName,
		"track_name":   d.TrackName,
		"album_title":  d.AlbumTitle,
		"lyrics":       d.Lyrics,
		"theme":        d.Theme,
		"sentiment":    d.Sentiment,
		"notes":        d.Notes,
		"has_analysis": d.HasAnalysis,
	}
}
