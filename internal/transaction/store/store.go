package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/kv"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Key is the fixed key the ledger snapshot is stored under.
const Key = "transactions"

// Store persists the whole ledger as one JSON array in a key-value backend.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the time used to name snapshot backups.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// BackupKey is where a snapshot taken at t is copied before Load drops any of it.
func BackupKey(t time.Time) string {
	return fmt.Sprintf("%s_corrupt_%d", Key, t.Unix())
}

// Load reads the snapshot. Invalid entries are skipped and an unreadable snapshot
// yields an empty ledger; in both cases the raw snapshot is first copied to
// BackupKey so the next Save cannot lose it. A failing backend is reported as an error.
func (s *Store) Load(ctx context.Context) ([]transaction.Transaction, error) {
	data, err := s.kv.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []transaction.Transaction{}, nil
		}

		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	txs, skipped, err := transaction.DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		backup, backupErr := s.backup(ctx, data)
		if backupErr != nil {
			return nil, backupErr
		}

		slog.WarnContext(ctx, "discarding corrupt transaction snapshot", "error", err, "bytes", len(data), "backup", backup)

		return []transaction.Transaction{}, nil
	}

	if len(skipped) == 0 {
		return txs, nil
	}

	backup, err := s.backup(ctx, data)
	if err != nil {
		return nil, err
	}

	for _, e := range skipped {
		slog.WarnContext(ctx, "skipping invalid stored transaction", "index", e.Index, "error", e.Err, "backup", backup)
	}

	return txs, nil
}

func (s *Store) backup(ctx context.Context, data []byte) (string, error) {
	key := BackupKey(s.now())
	if err := s.kv.Put(ctx, key, data); err != nil {
		return "", fmt.Errorf("backing up snapshot: %w", err)
	}

	return key, nil
}

func (s *Store) Save(ctx context.Context, txs []transaction.Transaction) error {
	var buf bytes.Buffer
	if err := transaction.EncodeJSON(&buf, txs, false); err != nil {
		return err
	}

	if err := s.kv.Put(ctx, Key, bytes.TrimSpace(buf.Bytes())); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
