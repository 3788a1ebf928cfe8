package service

import (
	"testing"

	"simulazioni-backend/internal/repository"
)

func TestGetResultsWithPendingReviews(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	seedOtherResult(t, gdb, result.SimulationID)

	resultRepo := repository.NewResultRepository(gdb)
	reviews := NewReviewService(resultRepo, 20)
	grading := newGradingService(gdb)

	pending, err := reviews.GetResultsWithPendingReviews(0, 0)
	if err != nil {
		t.Fatalf("GetResultsWithPendingReviews() error = %v", err)
	}
	if pending.Total != 2 {
		t.Errorf("Total = %d, want 2", pending.Total)
	}
	if len(pending.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(pending.Items))
	}

	// Fully grading one result removes it from the queue.
	remaining, err := grading.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[0].ID, ManualScore: 1},
		{OpenAnswerID: answers[1].ID, ManualScore: 0},
		{OpenAnswerID: answers[2].ID, ManualScore: 1},
	})
	if err != nil || remaining != 0 {
		t.Fatalf("batch: remaining=%d err=%v", remaining, err)
	}

	pending, err = reviews.GetResultsWithPendingReviews(0, 0)
	if err != nil {
		t.Fatalf("GetResultsWithPendingReviews() error = %v", err)
	}
	if pending.Total != 1 {
		t.Errorf("Total after grading = %d, want 1", pending.Total)
	}
}

func TestGetResultsWithPendingReviewsPagination(t *testing.T) {
	gdb := newTestDB(t)
	result, _ := seedPendingResult(t, gdb)
	seedOtherResult(t, gdb, result.SimulationID)

	reviews := NewReviewService(repository.NewResultRepository(gdb), 20)

	page, err := reviews.GetResultsWithPendingReviews(1, 0)
	if err != nil {
		t.Fatalf("GetResultsWithPendingReviews() error = %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("page size = %d, want 1", len(page.Items))
	}
	// Total reflects the whole queue regardless of the page.
	if page.Total != 2 {
		t.Errorf("Total = %d, want 2", page.Total)
	}
}
