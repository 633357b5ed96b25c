package store

import (
	"context"
	"errors"
	"time"

	"stockseer/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const uniqueViolation = "23505"

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on a pgx connection pool. The schema is
// created by cmd/migrate.
type PostgresStore struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPostgresStore(pool PgxPool, tracer trace.Tracer) *PostgresStore {
	return &PostgresStore{pool: pool, tracer: tracer}
}

func (s *PostgresStore) CreateUser(ctx context.Context, name, email string, passwordHash []byte) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "store.create-user")
	defer span.End()

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Watchlist:    []string{},
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, watchlist, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Watchlist, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "store.get-user-by-id")
	defer span.End()

	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, watchlist, created_at FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "store.get-user-by-email")
	defer span.End()

	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, watchlist, created_at FROM users WHERE email = $1`, email))
}

func (s *PostgresStore) SetWatchlist(ctx context.Context, userID string, symbols []string) error {
	ctx, span := s.tracer.Start(ctx, "store.set-watchlist")
	defer span.End()

	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET watchlist = $2 WHERE id = $1`, userID, symbols)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateReview(ctx context.Context, userID, symbol string, rating int, comment string) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "store.create-review")
	defer span.End()

	review := &domain.Review{
		ID:          uuid.NewString(),
		UserID:      userID,
		StockSymbol: symbol,
		Rating:      rating,
		Comment:     comment,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO reviews (id, user_id, stock_symbol, rating, comment, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		review.ID, review.UserID, review.StockSymbol, review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *PostgresStore) GetReviewByID(ctx context.Context, id string) (*domain.Review, error) {
	ctx, span := s.tracer.Start(ctx, "store.get-review-by-id")
	defer span.End()

	var review domain.Review
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, stock_symbol, rating, comment, created_at FROM reviews WHERE id = $1`, id).
		Scan(&review.ID, &review.UserID, &review.StockSymbol, &review.Rating, &review.Comment, &review.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *PostgresStore) ListReviews(ctx context.Context) ([]*domain.ReviewWithAuthor, error) {
	ctx, span := s.tracer.Start(ctx, "store.list-reviews")
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.user_id, r.stock_symbol, r.rating, r.comment, r.created_at,
		        COALESCE(u.name, $1)
		 FROM reviews r
		 LEFT JOIN users u ON u.id = r.user_id
		 ORDER BY r.created_at DESC`, UnknownUserName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ReviewWithAuthor
	for rows.Next() {
		var r domain.ReviewWithAuthor
		if err := rows.Scan(&r.ID, &r.UserID, &r.StockSymbol, &r.Rating, &r.Comment, &r.CreatedAt, &r.UserName); err != nil {
			return nil, err
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteReview(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "store.delete-review")
	defer span.End()

	tag, err := s.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Watchlist, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if user.Watchlist == nil {
		user.Watchlist = []string{}
	}
	return &user, nil
}
