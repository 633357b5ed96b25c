package store

import (
	"context"
	"errors"

	"stockseer/internal/domain"
)

var (
	// ErrNotFound is returned when a user or review does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when registering an email twice.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UnknownUserName substitutes for the author of a review whose owning
// user has been removed. Reviews are never cascaded in the memory store.
const UnknownUserName = "Unknown User"

// Store holds users and reviews. Implementations generate identifiers at
// creation time; ids are immutable thereafter.
type Store interface {
	CreateUser(ctx context.Context, name, email string, passwordHash []byte) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	SetWatchlist(ctx context.Context, userID string, symbols []string) error

	CreateReview(ctx context.Context, userID, symbol string, rating int, comment string) (*domain.Review, error)
	GetReviewByID(ctx context.Context, id string) (*domain.Review, error)
	ListReviews(ctx context.Context) ([]*domain.ReviewWithAuthor, error)
	DeleteReview(ctx context.Context, id string) error
}
