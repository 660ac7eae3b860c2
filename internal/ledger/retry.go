package ledger

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/teller-cli/teller/internal/rowstore"
)

const (
	storeMaxRetries    = 4
	storeRetryInterval = 50 * time.Millisecond
)

// retryingStore decorates a RowStore with bounded exponential backoff.
// Only rowstore.ErrUnavailable is retried; anything else fails fast.
type retryingStore struct {
	inner rowstore.RowStore
	log   zerolog.Logger
}

func newRetryingStore(inner rowstore.RowStore, log zerolog.Logger) *retryingStore {
	return &retryingStore{inner: inner, log: log}
}

func (r *retryingStore) retry(op string, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = storeRetryInterval

	attempt := 0
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, rowstore.ErrUnavailable) {
			return backoff.Permanent(err)
		}

		attempt++
		r.log.Warn().
			Str("op", op).
			Int("attempt", attempt).
			Err(err).
			Msg("row store unavailable, retrying")
		return err
	}, backoff.WithMaxRetries(policy, storeMaxRetries))
}

func (r *retryingStore) ListRows(table string) ([]rowstore.Row, error) {
	var rows []rowstore.Row
	err := r.retry("list_rows", func() error {
		var err error
		rows, err = r.inner.ListRows(table)
		return err
	})
	return rows, err
}

func (r *retryingStore) AppendRow(table string, row rowstore.Row) error {
	return r.retry("append_row", func() error {
		return r.inner.AppendRow(table, row)
	})
}

func (r *retryingStore) UpdateCell(table string, rowIdx, colIdx int, value string) error {
	return r.retry("update_cell", func() error {
		return r.inner.UpdateCell(table, rowIdx, colIdx, value)
	})
}

func (r *retryingStore) Close() error {
	return r.inner.Close()
}
