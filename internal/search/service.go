package search

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/college-tracker/internal/domain"
	"github.com/couchcryptid/college-tracker/internal/observability"
)

const defaultPerPage = 20

// Searcher is the Scorecard adapter surface the service depends on.
type Searcher interface {
	SearchByName(ctx context.Context, name string, limit int) ([]domain.NormalizedCollege, error)
	SearchColleges(ctx context.Context, filters domain.SearchFilters) (domain.SearchResult, error)
	GetCollegeByID(ctx context.Context, id int) (domain.NormalizedCollege, bool, error)
}

// Request is an inbound school search.
type Request struct {
	Query         string
	States        []string
	SchoolTypes   []domain.SchoolType
	MinEnrollment *int
	MaxEnrollment *int
	Page          int
	PerPage       int
}

// Response is the body returned to search callers.
type Response struct {
	Colleges []domain.NormalizedCollege `json:"colleges"`
	Total    int                        `json:"total"`
	Page     int                        `json:"page"`
}

// Service routes searches to the name-only or filtered Scorecard path.
type Service struct {
	searcher Searcher
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewService creates a search Service.
func NewService(s Searcher, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{searcher: s, metrics: metrics, logger: logger}
}

// Search runs a bare name query through SearchByName, reporting page 0 and
// the admitted count as total. Any other combination goes through
// SearchColleges and reports the upstream total.
func (s *Service) Search(ctx context.Context, req Request) (Response, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	if req.nameOnly() {
		s.metrics.SearchRequests.WithLabelValues("name").Inc()
		s.logger.Debug("school search", "path", "name", "query", req.Query, "limit", perPage)

		colleges, err := s.searcher.SearchByName(ctx, req.Query, perPage)
		if err != nil {
			return Response{}, err
		}
		return Response{Colleges: nonNil(colleges), Total: len(colleges), Page: 0}, nil
	}

	s.metrics.SearchRequests.WithLabelValues("filtered").Inc()
	s.logger.Debug("school search", "path", "filtered",
		"query", req.Query,
		"states", req.States,
		"types", req.SchoolTypes,
		"page", req.Page,
	)

	result, err := s.searcher.SearchColleges(ctx, domain.SearchFilters{
		Query:         req.Query,
		States:        req.States,
		MinEnrollment: req.MinEnrollment,
		MaxEnrollment: req.MaxEnrollment,
		SchoolTypes:   req.SchoolTypes,
		Page:          req.Page,
		PerPage:       perPage,
	})
	if err != nil {
		return Response{}, err
	}
	return Response{Colleges: nonNil(result.Colleges), Total: result.Total, Page: req.Page}, nil
}

// Get looks up a single college by Scorecard ID.
func (s *Service) Get(ctx context.Context, id int) (domain.NormalizedCollege, bool, error) {
	s.metrics.SearchRequests.WithLabelValues("lookup").Inc()
	return s.searcher.GetCollegeByID(ctx, id)
}

func (r Request) nameOnly() bool {
	return r.Query != "" &&
		len(r.States) == 0 &&
		len(r.SchoolTypes) == 0 &&
		r.MinEnrollment == nil &&
		r.MaxEnrollment == nil
}

// nonNil keeps "colleges" a JSON array when nothing matched.
func nonNil(colleges []domain.NormalizedCollege) []domain.NormalizedCollege {
	if colleges == nil {
		return []domain.NormalizedCollege{}
	}
	return colleges
}
