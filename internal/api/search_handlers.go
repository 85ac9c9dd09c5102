package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/songboard/songboard-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchTracks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search tracks",
		Description: "Full-text search over track names, lyrics and AI annotations",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// SearchInput carries the search query.
type SearchInput struct {
	Query string `query:"q" required:"true" minLength:"1" doc:"Search query"`
	Limit int    `query:"limit" minimum:"0" maximum:"100" doc:"Maximum hits to return (default 20)"`
}

// SearchResponse contains search results in API responses.
type SearchResponse struct {
	Query string       `json:"query"`
	Hits  []search.Hit `json:"hits"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	hits, err := s.catalog.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	return &SearchOutput{Body: SearchResponse{Query: input.Query, Hits: hits}}, nil
}
