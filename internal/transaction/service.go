package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Load(ctx context.Context) ([]Transaction, error)
	Save(ctx context.Context, txs []Transaction) error
}

// Service owns the ordered ledger and keeps the persisted snapshot in step with it.
// Every operation holds the same lock, so concurrent callers see a single writer.
type Service struct {
	repo Repository
	now  func() time.Time

	mu     sync.Mutex
	txs    []Transaction
	lastID int64
}

type Option func(*Service)

// WithClock overrides the time source used to seed new ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load replaces the in-memory ledger with the persisted snapshot.
// Records sharing an id, which older data may contain, are given fresh ids.
func (s *Service) Load(ctx context.Context) error {
	txs, err := s.repo.Load(ctx)
	if err != nil {
		return &PersistenceError{Op: "loading", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = make([]Transaction, 0, len(txs))
	s.lastID = 0

	if remapped := s.assignIDs(txs, nil); remapped > 0 {
		slog.Warn("reassigned duplicate transaction ids", "count", remapped)
	}

	s.txs = append(s.txs, txs...)

	return nil
}

// Add validates params, appends a new transaction with a fresh id and persists.
func (s *Service) Add(ctx context.Context, params CreateParams) (*Transaction, Summary, error) {
	tx, err := normalize(params.toTransaction(0))
	if err != nil {
		return nil, Summary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.nextID()
	s.txs = append(s.txs, tx)

	return &tx, Summarize(s.txs), s.persist(ctx)
}

// Update replaces the transaction with the given id in place.
func (s *Service) Update(ctx context.Context, id int64, replacement Transaction) (Summary, error) {
	if replacement.ID != 0 && replacement.ID != id {
		return Summary{}, &ValidationError{Field: "id", Reason: "does not match the transaction being updated"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Summary{}, fmt.Errorf("updating transaction %d: %w", id, ErrNotFound)
	}

	replacement.ID = id

	tx, err := normalize(replacement)
	if err != nil {
		return Summary{}, err
	}

	s.txs[idx] = tx

	return Summarize(s.txs), s.persist(ctx)
}

// Remove deletes the transaction with the given id.
func (s *Service) Remove(ctx context.Context, id int64) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Summary{}, fmt.Errorf("removing transaction %d: %w", id, ErrNotFound)
	}

	s.txs = slices.Delete(s.txs, idx, idx+1)

	return Summarize(s.txs), s.persist(ctx)
}

// Clear drops every transaction. There is no undo.
func (s *Service) Clear(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = nil

	return Summarize(s.txs), s.persist(ctx)
}

type ImportResult struct {
	Imported []Transaction
	// Remapped counts imported records that received a new id because theirs
	// was missing or already taken.
	Remapped int
	Summary  Summary
}

// Import merges externally supplied records after the existing ones.
// Every record is validated first; a single bad record rejects the whole batch.
func (s *Service) Import(ctx context.Context, records []Transaction) (*ImportResult, error) {
	normalized := make([]Transaction, len(records))

	for i, r := range records {
		tx, err := normalize(r)
		if err != nil {
			return nil, &ImportFormatError{Index: i, Err: err}
		}

		normalized[i] = tx
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// An empty batch changes nothing, so like a rejected mutation it is not persisted.
	if len(normalized) == 0 {
		return &ImportResult{Imported: []Transaction{}, Summary: Summarize(s.txs)}, nil
	}

	remapped := s.assignIDs(normalized, s.txs)
	s.txs = append(s.txs, normalized...)

	result := &ImportResult{
		Imported: slices.Clone(normalized),
		Remapped: remapped,
		Summary:  Summarize(s.txs),
	}

	return result, s.persist(ctx)
}

// Get returns a copy of the transaction with the given id.
func (s *Service) Get(id int64) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("getting transaction %d: %w", id, ErrNotFound)
	}

	tx := s.txs[idx]

	return &tx, nil
}

// Query returns, in ledger order, every transaction whose text fields contain text.
func (s *Service) Query(text string) []Transaction {
	return s.List(ListFilter{Text: text})
}

// List returns, in ledger order, every transaction matching filter.
func (s *Service) List(filter ListFilter) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, 0, len(s.txs))

	for _, tx := range s.txs {
		if filter.matches(tx) {
			out = append(out, tx)
		}
	}

	return out
}

// Summary recomputes the aggregates of the whole ledger.
func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summarize(s.txs)
}

// SummaryFor recomputes the aggregates of the transactions matching filter.
func (s *Service) SummaryFor(filter ListFilter) Summary {
	return Summarize(s.List(filter))
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, slices.Clone(s.txs)); err != nil {
		return &PersistenceError{Op: "saving", Err: err}
	}

	return nil
}

func (s *Service) indexOf(id int64) int {
	return slices.IndexFunc(s.txs, func(tx Transaction) bool { return tx.ID == id })
}

// nextID returns an id that is strictly greater than every id handed out or
// loaded so far. Ids follow the wall clock in milliseconds when it is ahead.
func (s *Service) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	s.lastID = id

	return id
}

// assignIDs gives a fresh id to every record whose id is missing or already
// used by existing or by an earlier record of txs. It returns how many changed.
func (s *Service) assignIDs(txs []Transaction, existing []Transaction) int {
	seen := make(map[int64]struct{}, len(existing)+len(txs))
	for _, tx := range existing {
		seen[tx.ID] = struct{}{}
	}

	// Keep valid ids in place first so fresh ones are allocated above all of them.
	for _, tx := range txs {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}

	remapped := 0

	for i := range txs {
		_, taken := seen[txs[i].ID]
		if txs[i].ID <= 0 || taken {
			txs[i].ID = s.nextID()
			remapped++
		}

		seen[txs[i].ID] = struct{}{}
	}

	return remapped
}
