package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"stockseer/internal/domain"
	"stockseer/internal/store"

	"go.opentelemetry.io/otel/trace"
)

// ErrAlreadyWatched is returned when adding a symbol twice.
var ErrAlreadyWatched = errors.New("stock already in watchlist")

// WatchlistService manages a user's watched symbols and hydrates them
// with live quotes.
type WatchlistService struct {
	tracer   trace.Tracer
	store    store.Store
	provider QuoteProvider
}

func NewWatchlistService(tracer trace.Tracer, st store.Store, provider QuoteProvider) *WatchlistService {
	return &WatchlistService{tracer: tracer, store: st, provider: provider}
}

// List returns the user's watched symbols with live quotes. Symbols whose
// quote fetch fails are dropped silently rather than failing the request.
func (s *WatchlistService) List(ctx context.Context, userID string) ([]*domain.WatchlistItem, error) {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.list")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Watchlist) == 0 {
		return []*domain.WatchlistItem{}, nil
	}

	items := make([]*domain.WatchlistItem, len(user.Watchlist))
	var wg sync.WaitGroup
	for i, symbol := range user.Watchlist {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			quote, err := s.provider.FetchQuote(ctx, symbol)
			if err != nil {
				log.Printf("watchlist hydration: dropping %s: %v", symbol, err)
				return
			}
			items[i] = &domain.WatchlistItem{
				Quote:   *quote,
				AddedAt: time.Now().UTC().Format(time.RFC3339),
			}
		}(i, symbol)
	}
	wg.Wait()

	out := make([]*domain.WatchlistItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

// Add appends a symbol to the user's watchlist. Duplicates fail with
// ErrAlreadyWatched; uniqueness lives here, not in the store.
func (s *WatchlistService) Add(ctx context.Context, userID, symbol string) error {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.add")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	for _, watched := range user.Watchlist {
		if watched == symbol {
			return ErrAlreadyWatched
		}
	}
	return s.store.SetWatchlist(ctx, userID, append(user.Watchlist, symbol))
}

// Remove deletes a symbol from the user's watchlist. Removing an absent
// symbol is a no-op success.
func (s *WatchlistService) Remove(ctx context.Context, userID, symbol string) error {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.remove")
	defer span.End()

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	updated := make([]string, 0, len(user.Watchlist))
	for _, watched := range user.Watchlist {
		if watched != symbol {
			updated = append(updated, watched)
		}
	}
	return s.store.SetWatchlist(ctx, userID, updated)
}
