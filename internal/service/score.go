package service

import "simulazioni-backend/internal/model"

// Judgment is the grader's 3-way call on an open answer when the
// simulation uses simple correction mode.
type Judgment string

const (
	JudgmentCorrect Judgment = "correct"
	JudgmentWrong   Judgment = "wrong"
	JudgmentBlank   Judgment = "blank"
)

// ScoringConfig is the subset of the simulation the normalizer consumes.
// CorrectPoints must be positive; enforcing that is the caller's job
// (a non-positive value is a configuration error upstream).
type ScoringConfig struct {
	CorrectPoints float64
	WrongPoints   float64
	BlankPoints   float64
}

func ScoringConfigFromSimulation(sim *model.Simulation) ScoringConfig {
	return ScoringConfig{
		CorrectPoints: sim.CorrectPoints,
		WrongPoints:   sim.WrongPoints,
		BlankPoints:   sim.BlankPoints,
	}
}

// NormalizeJudgment converts a qualitative judgment into a manual score on
// the 0..1 scale used by percentage-mode grading, so that both correction
// modes stay mutually convertible. CORRECT always normalizes to full
// credit regardless of the absolute point value.
func NormalizeJudgment(j Judgment, cfg ScoringConfig) float64 {
	switch j {
	case JudgmentCorrect:
		return 1
	case JudgmentWrong:
		return cfg.WrongPoints / cfg.CorrectPoints
	default:
		return cfg.BlankPoints / cfg.CorrectPoints
	}
}
