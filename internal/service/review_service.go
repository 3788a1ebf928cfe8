package service

import (
	"fmt"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
)

// PendingReviews is the aggregator payload behind the review badge: the
// total is the count of results still awaiting manual grading, the items
// are one page of them.
type PendingReviews struct {
	Total int64          `json:"total"`
	Items []model.Result `json:"items"`
}

type ReviewService interface {
	GetResultsWithPendingReviews(limit, offset int) (*PendingReviews, error)
}

type reviewService struct {
	resultRepo repository.ResultRepository
	pageSize   int
}

func NewReviewService(resultRepo repository.ResultRepository, pageSize int) ReviewService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &reviewService{resultRepo: resultRepo, pageSize: pageSize}
}

func (s *reviewService) GetResultsWithPendingReviews(limit, offset int) (*PendingReviews, error) {
	items, total, err := s.resultRepo.ListWithPendingReviews(limit, offset, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list pending reviews: %w", err)
	}
	return &PendingReviews{Total: total, Items: items}, nil
}
