package app

import (
	"context"
	"fmt"

	"github.com/glabrego/frontpage/internal/hnsearch"
)

type SearchClient interface {
	SearchFrontPage(ctx context.Context, page int) (hnsearch.Page, error)
}

type Service struct {
	client SearchClient
}

func NewService(client SearchClient) *Service {
	return &Service{client: client}
}

// FrontPage loads one page of front page stories. Transport and decode
// failures surface as a single wrapped error; callers decide where it goes.
func (s *Service) FrontPage(ctx context.Context, page int) (hnsearch.Page, error) {
	result, err := s.client.SearchFrontPage(ctx, page)
	if err != nil {
		return hnsearch.Page{}, fmt.Errorf("fetch front page %d: %w", page, err)
	}
	return result, nil
}
