package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
)

// AttemptAnswer is one free-text answer in a submitted attempt.
type AttemptAnswer struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text"`
}

type AttemptService interface {
	// SubmitAttempt records a finished attempt: one open answer per
	// simulation question (blank when unanswered), pre-graded by the
	// keyword matcher. Every answer starts pending manual review.
	SubmitAttempt(studentID, simulationID uint, answers []AttemptAnswer) (*model.Result, error)
}

type attemptService struct {
	resultRepo repository.ResultRepository
	simRepo    repository.SimulationRepository
}

func NewAttemptService(resultRepo repository.ResultRepository, simRepo repository.SimulationRepository) AttemptService {
	return &attemptService{resultRepo: resultRepo, simRepo: simRepo}
}

func (s *attemptService) SubmitAttempt(studentID, simulationID uint, answers []AttemptAnswer) (*model.Result, error) {
	sim, err := s.simRepo.GetSimulationByID(simulationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSimulationNotFound
		}
		return nil, fmt.Errorf("fetch simulation: %w", err)
	}

	byQuestion := make(map[uint]string, len(answers))
	for _, a := range answers {
		if _, ok := byQuestion[a.QuestionID]; ok {
			continue // keep the first submission per question
		}
		byQuestion[a.QuestionID] = a.AnswerText
	}
	known := make(map[uint]struct{}, len(sim.Questions))
	for _, q := range sim.Questions {
		known[q.ID] = struct{}{}
	}
	for qid := range byQuestion {
		if _, ok := known[qid]; !ok {
			return nil, ErrQuestionNotInSimulation
		}
	}

	now := time.Now()
	openAnswers := make([]model.OpenAnswer, 0, len(sim.Questions))
	var provisional float64
	for _, q := range sim.Questions {
		text := byQuestion[q.ID]
		match := MatchKeywords(text, KeywordList(q.Keywords))

		answer := model.OpenAnswer{
			QuestionID:      q.ID,
			AnswerText:      text,
			AutoScore:       match.AutoScore,
			KeywordsMatched: JSONStringList(match.Matched),
			KeywordsMissed:  JSONStringList(match.Missed),
		}
		if match.AutoScore != nil {
			provisional += *match.AutoScore
		}
		openAnswers = append(openAnswers, answer)
	}

	result := &model.Result{
		StudentID:          studentID,
		SimulationID:       simulationID,
		AttemptToken:       uuid.New().String(),
		CompletedAt:        &now,
		PendingOpenAnswers: len(openAnswers),
		TotalScore:         provisional * sim.CorrectPoints,
		OpenAnswers:        openAnswers,
	}
	if len(openAnswers) > 0 {
		result.PercentageScore = provisional / float64(len(openAnswers)) * 100
	}

	if err := s.resultRepo.CreateResult(result); err != nil {
		return nil, fmt.Errorf("create result: %w", err)
	}
	return result, nil
}
