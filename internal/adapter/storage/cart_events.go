package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/colinmarc/hdfs/v2"
	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
	"github.com/vintagefinds/storefront/pkg/retry"
)

var _ port.CartArchiver = (*CartEventsArchive)(nil)

type cartAddEvent struct {
	SessionID string  `json:"session_id"`
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Currency  string  `json:"currency"`
	At        string  `json:"at"`
}

type hdfsClient interface {
	Append(name string) (*hdfs.FileWriter, error)
	Create(name string) (*hdfs.FileWriter, error)
	MkdirAll(dirname string, perm os.FileMode) error
}

// A CartEventsArchive appends committed add-to-cart events as JSON
// lines, one file per session, for the analytics collaborator.
type CartEventsArchive struct {
	hdfs hdfsClient
	dir  string
}

func NewCartEventsArchive(addr, dir string) (CartEventsArchive, error) {
	const op = "NewCartEventsArchive"

	cl, err := hdfs.New(addr)
	if err != nil {
		return CartEventsArchive{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cl.MkdirAll(dir, 0o755); err != nil {
		return CartEventsArchive{}, fmt.Errorf("%s: %w", op, err)
	}

	return CartEventsArchive{hdfs: cl, dir: dir}, nil
}

func (a CartEventsArchive) ArchiveAddEvent(
	ctx context.Context, sessionID string, evt domain.CartAddEvent,
) error {
	const op = "CartEventsArchive.ArchiveAddEvent"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w, err := a.openWriter(path.Join(a.dir, sessionID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = json.NewEncoder(w).Encode(a.toArchiveEvent(sessionID, evt))
	if err != nil {
		_ = w.Close()
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := a.closeWriter(ctx, w); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a CartEventsArchive) openWriter(filepath string) (*hdfs.FileWriter, error) {
	w, err := a.hdfs.Append(filepath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		w, err = a.hdfs.Create(filepath)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (a CartEventsArchive) closeWriter(
	ctx context.Context, w *hdfs.FileWriter,
) error {
	retryCfg := retry.RetryConfig{
		MaxAttempts: 5,
		Backoff:     retry.LinearBackoff(50 * time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, hdfs.ErrReplicating)
		},
	}
	return retry.Do(ctx, retryCfg, w.Close)
}

func (a CartEventsArchive) toArchiveEvent(
	sessionID string, evt domain.CartAddEvent,
) cartAddEvent {
	return cartAddEvent{
		SessionID: sessionID,
		ProductID: evt.ProductID,
		VariantID: evt.VariantID,
		Title:     evt.Title,
		Brand:     evt.Brand,
		Quantity:  evt.Quantity,
		UnitPrice: evt.UnitPrice,
		Currency:  evt.Currency,
		At:        evt.At.UTC().Format(time.RFC3339),
	}
}
