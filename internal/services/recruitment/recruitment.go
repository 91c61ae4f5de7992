// Package services: поиск кандидатов через внешний поисковый API.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/xbot-api/internal/clients/search"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
)

// Searcher выполняет поисковый запрос.
type Searcher interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// RecruitmentService передаёт запрос поисковому API без повторов.
type RecruitmentService struct {
	log      *slog.Logger
	searcher Searcher
}

// NewRecruitmentService создает RecruitmentService.
func NewRecruitmentService(log *slog.Logger, searcher Searcher) *RecruitmentService {
	return &RecruitmentService{log: log, searcher: searcher}
}

// Search возвращает результаты поиска по query.
func (s *RecruitmentService) Search(ctx context.Context, query string) ([]search.Result, error) {
	const op = "services.RecruitmentService.Search"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%s: empty query: %w", op, apperr.ErrValidation)
	}

	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		s.log.Error("search failed", sl.Op(op), sl.Err(err))
		return nil, apperr.NewIntegrationError(search.Vendor, err)
	}
	return results, nil
}
