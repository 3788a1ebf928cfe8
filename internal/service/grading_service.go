package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
	"simulazioni-backend/utilities"
)

// EventResultFullyGraded is published when a validation drives a result's
// pending count to zero.
const EventResultFullyGraded = "result.fully_graded"

// BatchValidation is one entry of a batch call.
type BatchValidation struct {
	OpenAnswerID   uint    `json:"open_answer_id" binding:"required"`
	ManualScore    float64 `json:"manual_score"`
	ValidatorNotes *string `json:"validator_notes"`
}

type GradingService interface {
	// GetOpenAnswersForResult returns the result and its answers ordered
	// pending first, then validated.
	GetOpenAnswersForResult(resultID uint) (*model.Result, []model.OpenAnswer, error)
	// ValidateOpenAnswer persists the manual grade for a single pending
	// answer. Validation is single-use: a validated answer cannot be
	// validated again.
	ValidateOpenAnswer(openAnswerID uint, manualScore float64, notes *string) (*model.OpenAnswer, error)
	// ValidateOpenAnswersBatch applies every entry in one transaction,
	// recomputes the parent result's scores and returns how many open
	// answers are still pending. Any bad entry rejects the whole batch.
	ValidateOpenAnswersBatch(resultID uint, entries []BatchValidation) (int, error)
}

type gradingService struct {
	resultRepo repository.ResultRepository
}

func NewGradingService(resultRepo repository.ResultRepository) GradingService {
	return &gradingService{resultRepo: resultRepo}
}

func (s *gradingService) GetOpenAnswersForResult(resultID uint) (*model.Result, []model.OpenAnswer, error) {
	result, err := s.resultRepo.GetResultByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrResultNotFound
		}
		return nil, nil, fmt.Errorf("fetch result: %w", err)
	}
	answers, err := s.resultRepo.GetOpenAnswersForResult(resultID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch open answers: %w", err)
	}
	return result, answers, nil
}

func (s *gradingService) ValidateOpenAnswer(openAnswerID uint, manualScore float64, notes *string) (*model.OpenAnswer, error) {
	var (
		validated *model.OpenAnswer
		completed bool
		resultID  uint
	)
	err := s.resultRepo.Transaction(func(tx repository.ResultRepository) error {
		answer, err := tx.GetOpenAnswerByID(openAnswerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOpenAnswerNotFound
			}
			return fmt.Errorf("fetch open answer: %w", err)
		}
		if answer.IsValidated {
			return ErrAlreadyValidated
		}

		applyValidation(answer, manualScore, notes, time.Now())
		if err := tx.SaveOpenAnswer(answer); err != nil {
			return fmt.Errorf("save open answer: %w", err)
		}

		_, done, err := s.recomputeResult(tx, answer.ResultID)
		if err != nil {
			return err
		}
		validated, completed, resultID = answer, done, answer.ResultID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		utilities.GlobalEventBus.Publish(EventResultFullyGraded, resultID)
	}
	return validated, nil
}

func (s *gradingService) ValidateOpenAnswersBatch(resultID uint, entries []BatchValidation) (int, error) {
	var (
		remaining int
		completed bool
	)
	err := s.resultRepo.Transaction(func(tx repository.ResultRepository) error {
		if _, err := tx.GetResultByID(resultID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResultNotFound
			}
			return fmt.Errorf("fetch result: %w", err)
		}

		now := time.Now()
		for _, entry := range entries {
			answer, err := tx.GetOpenAnswerByID(entry.OpenAnswerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrOpenAnswerNotFound
				}
				return fmt.Errorf("fetch open answer %d: %w", entry.OpenAnswerID, err)
			}
			if answer.ResultID != resultID {
				return ErrAnswerNotInResult
			}
			if answer.IsValidated {
				return ErrAlreadyValidated
			}

			applyValidation(answer, entry.ManualScore, entry.ValidatorNotes, now)
			if err := tx.SaveOpenAnswer(answer); err != nil {
				return fmt.Errorf("save open answer %d: %w", entry.OpenAnswerID, err)
			}
		}

		pending, done, err := s.recomputeResult(tx, resultID)
		if err != nil {
			return err
		}
		remaining, completed = pending, done
		return nil
	})
	if err != nil {
		return 0, err
	}

	if completed {
		utilities.GlobalEventBus.Publish(EventResultFullyGraded, resultID)
	}
	return remaining, nil
}

func applyValidation(answer *model.OpenAnswer, manualScore float64, notes *string, at time.Time) {
	answer.FinalScore = &manualScore
	answer.IsValidated = true
	answer.ValidatedAt = &at
	answer.ValidatorNotes = notes
}

// recomputeResult rebuilds the result aggregate from its open answers:
// validated answers contribute their final score, still-pending answers
// their auto score (0 when absent). Every read goes through the tx-bound
// repository so the recompute sees the validations it follows. The second
// return reports whether this recompute drove the pending count to zero.
func (s *gradingService) recomputeResult(tx repository.ResultRepository, resultID uint) (int, bool, error) {
	result, err := tx.GetResultByID(resultID)
	if err != nil {
		return 0, false, fmt.Errorf("fetch result for recompute: %w", err)
	}
	sim, err := tx.GetSimulationForResult(result.SimulationID)
	if err != nil {
		return 0, false, fmt.Errorf("fetch simulation: %w", err)
	}
	answers, err := tx.GetOpenAnswersForResult(resultID)
	if err != nil {
		return 0, false, fmt.Errorf("fetch open answers: %w", err)
	}

	pending := 0
	var sum float64
	for _, a := range answers {
		switch {
		case a.IsValidated && a.FinalScore != nil:
			sum += *a.FinalScore
		case !a.IsValidated && a.AutoScore != nil:
			pending++
			sum += *a.AutoScore
		default:
			pending++
		}
	}

	completed := pending == 0 && result.PendingOpenAnswers > 0

	result.PendingOpenAnswers = pending
	result.TotalScore = sum * sim.CorrectPoints
	if len(answers) > 0 {
		result.PercentageScore = sum / float64(len(answers)) * 100
	}
	if err := tx.SaveResult(result); err != nil {
		return 0, false, fmt.Errorf("save result: %w", err)
	}
	return pending, completed, nil
}
