package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/songboard/songboard-server/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getOverview",
		Method:      http.MethodGet,
		Path:        "/api/v1/overview",
		Summary:     "Catalog overview",
		Description: "Returns headline counts and the standard chart set",
		Tags:        []string{"Catalog"},
	}, s.handleGetOverview)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSelector",
		Method:      http.MethodGet,
		Path:        "/api/v1/selector",
		Summary:     "Song selection list",
		Description: "Returns the overview entry followed by every distinct track in selection order",
		Tags:        []string{"Catalog"},
	}, s.handleGetSelector)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTrack",
		Method:      http.MethodGet,
		Path:        "/api/v1/tracks/{id}",
		Summary:     "Track detail",
		Description: "Returns lyrics, annotations, credits and all remaining fields for one track",
		Tags:        []string{"Catalog"},
	}, s.handleGetTrack)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChart",
		Method:      http.MethodGet,
		Path:        "/api/v1/charts/{column}",
		Summary:     "Chart over a column",
		Description: "Runs a top-N or histogram aggregation over any column; absent columns yield empty data",
		Tags:        []string{"Catalog"},
	}, s.handleGetChart)

	huma.Register(s.api, huma.Operation{
		OperationID: "reloadCatalog",
		Method:      http.MethodPost,
		Path:        "/api/v1/reload",
		Summary:     "Reload the catalog",
		Description: "Drops the memoized snapshot so the next read rebuilds from disk",
		Tags:        []string{"Catalog"},
	}, s.handleReload)
}

// OverviewOutput wraps the overview response for Huma.
type OverviewOutput struct {
	Body service.OverviewResult
}

func (s *Server) handleGetOverview(ctx context.Context, _ *struct{}) (*OverviewOutput, error) {
	ov, err := s.catalog.Overview(ctx)
	if err != nil {
		return nil, err
	}
	return &OverviewOutput{Body: *ov}, nil
}

// SelectorOutput wraps the selector response for Huma.
type SelectorOutput struct {
	Body service.SelectorResult
}

func (s *Server) handleGetSelector(ctx context.Context, _ *struct{}) (*SelectorOutput, error) {
	sel, err := s.catalog.Selector(ctx)
	if err != nil {
		return nil, err
	}
	return &SelectorOutput{Body: *sel}, nil
}

// TrackInput identifies one track.
type TrackInput struct {
	ID string `path:"id" doc:"Track ID"`
}

// TrackOutput wraps the track detail response for Huma.
type TrackOutput struct {
	Body service.TrackDetail
}

func (s *Server) handleGetTrack(ctx context.Context, input *TrackInput) (*TrackOutput, error) {
	detail, err := s.catalog.Track(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TrackOutput{Body: *detail}, nil
}

// ChartInput selects the column and aggregation for a chart request.
type ChartInput struct {
	Column string `path:"column" doc:"Column to aggregate"`
	Kind   string `query:"kind" enum:"top,histogram" default:"top" doc:"Aggregation kind"`
	N      int    `query:"n" minimum:"0" doc:"Number of values for top charts (default 15)"`
	Bins   int    `query:"bins" minimum:"0" doc:"Bin count for histograms (default 10)"`
}

// ChartOutput wraps the chart response for Huma.
type ChartOutput struct {
	Body service.Chart
}

func (s *Server) handleGetChart(ctx context.Context, input *ChartInput) (*ChartOutput, error) {
	chart, err := s.catalog.Chart(ctx, input.Column, service.ChartKind(input.Kind), input.N, input.Bins)
	if err != nil {
		return nil, err
	}
	return &ChartOutput{Body: *chart}, nil
}

// ReloadOutput wraps the reload response for Huma.
type ReloadOutput struct {
	Body struct {
		Status string `json:"status" doc:"Always reloading"`
	}
}

func (s *Server) handleReload(ctx context.Context, _ *struct{}) (*ReloadOutput, error) {
	s.catalog.Reload(ctx)
	out := &ReloadOutput{}
	out.Body.Status = "reloading"
	return out, nil
}
