package handler

import (
	"errors"
	"net/http"

	"stockseer/internal/service"
	"stockseer/internal/store"

	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	StockSymbol string `json:"stockSymbol"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// ListReviews godoc
// @Summary      List all reviews
// @Description  Returns every review joined with its author's display name
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   domain.ReviewWithAuthor
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/reviews [get]
func (h *Handler) ListReviews(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-reviews")
	defer span.End()

	reviews, err := h.reviewService.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview godoc
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body  createReviewRequest  true  "Review details"
// @Success      200  {object}  domain.Review
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.create-review")
	defer span.End()

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review payload"})
		return
	}

	review, err := h.reviewService.Create(ctx, userID(c), req.StockSymbol, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview godoc
// @Summary      Delete an own review
// @Tags         reviews
// @Produce      json
// @Param        id  path  string  true  "Review id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.delete-review")
	defer span.End()

	err := h.reviewService.Delete(ctx, userID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		case errors.Is(err, service.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to delete this review"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
