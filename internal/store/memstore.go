package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"stockseer/internal/domain"

	"github.com/google/uuid"
)

// MemStore keeps users and reviews in process memory. Gin serves requests
// on concurrent goroutines, so every operation takes the lock.
type MemStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	reviews map[string]*domain.Review
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:   make(map[string]*domain.User),
		reviews: make(map[string]*domain.Review),
	}
}

func (s *MemStore) CreateUser(ctx context.Context, name, email string, passwordHash []byte) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		Watchlist:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
	s.users[user.ID] = user
	return copyUser(user), nil
}

func (s *MemStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(user), nil
}

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) SetWatchlist(ctx context.Context, userID string, symbols []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.Watchlist = append([]string{}, symbols...)
	return nil
}

func (s *MemStore) CreateReview(ctx context.Context, userID, symbol string, rating int, comment string) (*domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review := &domain.Review{
		ID:          uuid.NewString(),
		UserID:      userID,
		StockSymbol: symbol,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   time.Now().UTC(),
	}
	s.reviews[review.ID] = review

	out := *review
	return &out, nil
}

func (s *MemStore) GetReviewByID(ctx context.Context, id string) (*domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *review
	return &out, nil
}

// ListReviews returns all reviews joined with their author's display
// name, newest first.
func (s *MemStore) ListReviews(ctx context.Context) ([]*domain.ReviewWithAuthor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ReviewWithAuthor, 0, len(s.reviews))
	for _, review := range s.reviews {
		name := UnknownUserName
		if user, ok := s.users[review.UserID]; ok {
			name = user.Name
		}
		out = append(out, &domain.ReviewWithAuthor{Review: *review, UserName: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemStore) DeleteReview(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

// copyUser returns a defensive copy so callers cannot mutate store state.
func copyUser(u *domain.User) *domain.User {
	out := *u
	out.PasswordHash = append([]byte(nil), u.PasswordHash...)
	out.Watchlist = append([]string{}, u.Watchlist...)
	return &out
}
