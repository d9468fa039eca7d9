package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const Key = "category_rules"

type rule struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

// Store keeps category rules as a JSON array under a single kv key.
type Store struct {
	kv kv.Store
	mu sync.Mutex
}

func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// FindMatch returns the category of the longest pattern contained in description,
// ignoring case. Among equally long patterns the most recently learned wins.
func (s *Store) FindMatch(ctx context.Context, description string) (transaction.Category, error) {
	rules, err := s.ListMappings(ctx)
	if err != nil {
		return "", err
	}

	desc := strings.ToLower(description)

	var best *matching.Rule

	for i := range rules {
		r := &rules[i]
		if !strings.Contains(desc, strings.ToLower(r.Pattern)) {
			continue
		}

		if best == nil || len(r.Pattern) >= len(best.Pattern) {
			best = r
		}
	}

	if best == nil {
		return "", nil
	}

	return best.Category, nil
}

// CreateMapping appends a rule, replacing any rule with the same pattern.
func (s *Store) CreateMapping(ctx context.Context, pattern string, category transaction.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules, err := s.ListMappings(ctx)
	if err != nil {
		return err
	}

	rules = slices.DeleteFunc(rules, func(r matching.Rule) bool {
		return strings.EqualFold(r.Pattern, pattern)
	})
	rules = append(rules, matching.Rule{Pattern: pattern, Category: category})

	out := make([]rule, len(rules))
	for i, r := range rules {
		out[i] = rule{Pattern: r.Pattern, Category: string(r.Category)}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}

	if err := s.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}

// ListMappings returns rules in the order they were learned. Rules naming an
// unknown category are skipped.
func (s *Store) ListMappings(ctx context.Context) ([]matching.Rule, error) {
	data, err := s.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []matching.Rule{}, nil
		}

		return nil, fmt.Errorf("listing mappings: %w", err)
	}

	var stored []rule
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}

	rules := make([]matching.Rule, 0, len(stored))

	for _, r := range stored {
		c, ok := transaction.ParseCategory(r.Category)
		if !ok || r.Pattern == "" {
			continue
		}

		rules = append(rules, matching.Rule{Pattern: r.Pattern, Category: c})
	}

	return rules, nil
}
