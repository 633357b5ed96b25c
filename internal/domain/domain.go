package domain

import "time"

// User is an account holder. PasswordHash never leaves the server; the
// json tag strips it from every response payload.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Watchlist    []string  `json:"watchlist"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Review is a star-rating review of a stock, owned by the user who wrote it.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	StockSymbol string    `json:"stockSymbol"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewWithAuthor joins a review with its author's display name for
// listings. UserName falls back to "Unknown User" when the owner is gone.
type ReviewWithAuthor struct {
	Review
	UserName string `json:"userName"`
}

const (
	MinRating         = 1
	MaxRating         = 5
	MinCommentLength  = 10
	MinPasswordLength = 6
)

// ValidRating reports whether a star rating is within [1,5].
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
