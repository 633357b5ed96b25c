package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"stockseer/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestCreateAndListReviews(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodPost, "/api/reviews", token, gin.H{
		"stockSymbol": "aapl",
		"rating":      5,
		"comment":     "Great long-term pick",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var review domain.Review
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if review.ID == "" {
		t.Error("review id missing")
	}
	if review.StockSymbol != "AAPL" {
		t.Errorf("stockSymbol = %q, want AAPL", review.StockSymbol)
	}

	w = env.do(t, http.MethodGet, "/api/reviews", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var reviews []domain.ReviewWithAuthor
	if err := json.Unmarshal(w.Body.Bytes(), &reviews); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(reviews))
	}
	if reviews[0].UserName != "Ann" {
		t.Errorf("userName = %q, want Ann", reviews[0].UserName)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	tests := []struct {
		name string
		body gin.H
	}{
		{"short comment", gin.H{"stockSymbol": "AAPL", "rating": 4, "comment": "too short"}},
		{"rating too low", gin.H{"stockSymbol": "AAPL", "rating": 0, "comment": "Great long-term pick"}},
		{"rating too high", gin.H{"stockSymbol": "AAPL", "rating": 6, "comment": "Great long-term pick"}},
		{"missing symbol", gin.H{"rating": 4, "comment": "Great long-term pick"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/reviews", token, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	annToken := env.register(t, "Ann", "ann@example.com")
	bobToken := env.register(t, "Bob", "bob@example.com")

	w := env.do(t, http.MethodPost, "/api/reviews", annToken, gin.H{
		"stockSymbol": "AAPL",
		"rating":      4,
		"comment":     "Solid earnings, holding",
	})
	var review domain.Review
	if err := json.Unmarshal(w.Body.Bytes(), &review); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	w = env.do(t, http.MethodDelete, "/api/reviews/"+review.ID, bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("delete by non-owner status = %d, want 403: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodDelete, "/api/reviews/"+review.ID, annToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete by owner status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodDelete, "/api/reviews/"+review.ID, annToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("re-delete status = %d, want 404: %s", w.Code, w.Body.String())
	}
}

func TestDeleteMissingReview(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodDelete, "/api/reviews/no-such-id", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "review not found") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
