package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockseer/internal/domain"
	"stockseer/internal/store"

	"go.opentelemetry.io/otel/trace"
)

// ErrNotReviewOwner is returned when deleting another user's review.
var ErrNotReviewOwner = errors.New("not authorized to delete this review")

// ReviewService creates, lists, and deletes stock reviews.
type ReviewService struct {
	tracer trace.Tracer
	store  store.Store
}

func NewReviewService(tracer trace.Tracer, st store.Store) *ReviewService {
	return &ReviewService{tracer: tracer, store: st}
}

// Create validates and stores a new review owned by userID.
func (s *ReviewService) Create(ctx context.Context, userID, symbol string, rating int, comment string) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "review-service.create")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: stock symbol is required", ErrValidation)
	}
	if !domain.ValidRating(rating) {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, domain.MinRating, domain.MaxRating)
	}
	if len(strings.TrimSpace(comment)) < domain.MinCommentLength {
		return nil, fmt.Errorf("%w: review must be at least %d characters", ErrValidation, domain.MinCommentLength)
	}

	return s.store.CreateReview(ctx, userID, symbol, rating, comment)
}

// List returns all reviews joined with their author names.
func (s *ReviewService) List(ctx context.Context) ([]*domain.ReviewWithAuthor, error) {
	ctx, span := s.tracer.Start(ctx, "review-service.list")
	defer span.End()

	return s.store.ListReviews(ctx)
}

// Delete removes a review, but only for its owner.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	ctx, span := s.tracer.Start(ctx, "review-service.delete")
	defer span.End()

	review, err := s.store.GetReviewByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.store.DeleteReview(ctx, reviewID)
}
