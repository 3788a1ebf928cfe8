package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simulazioni-backend/internal/config"
	"simulazioni-backend/internal/service"
)

type ReviewController struct {
	ReviewService service.ReviewService
	Review        config.ReviewConfig
}

func NewReviewController(reviewService service.ReviewService, reviewCfg config.ReviewConfig) *ReviewController {
	return &ReviewController{ReviewService: reviewService, Review: reviewCfg}
}

// GetPendingReviews backs the polling badge: total results awaiting
// manual grading plus one page of them. poll_interval_sec and badge_cap
// are display hints for the client.
func (rc *ReviewController) GetPendingReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	pending, err := rc.ReviewService.GetResultsWithPendingReviews(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":             pending.Total,
		"items":             pending.Items,
		"poll_interval_sec": rc.Review.PollIntervalSec,
		"badge_cap":         rc.Review.BadgeCap,
	})
}
