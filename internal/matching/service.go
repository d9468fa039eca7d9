package matching

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Rule maps descriptions containing Pattern to Category.
type Rule struct {
	Pattern  string
	Category transaction.Category
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, description string) (transaction.Category, error)
	CreateMapping(ctx context.Context, pattern string, category transaction.Category) error
	ListMappings(ctx context.Context) ([]Rule, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest tries to find a category for the given description.
// Returns an empty category if no rule matches.
func (s *Service) Suggest(ctx context.Context, description string) (transaction.Category, error) {
	if strings.TrimSpace(description) == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, pattern string, category transaction.Category) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return &transaction.ValidationError{Field: "pattern", Reason: "is required"}
	}

	c, ok := transaction.ParseCategory(string(category))
	if !ok {
		return &transaction.ValidationError{Field: "category", Reason: "must be one of Food, Transport, Shopping, Utilities, Other"}
	}

	return s.repo.CreateMapping(ctx, pattern, c)
}

func (s *Service) Rules(ctx context.Context) ([]Rule, error) {
	return s.repo.ListMappings(ctx)
}
