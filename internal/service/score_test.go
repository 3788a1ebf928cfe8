package service

import (
	"math"
	"testing"
)

func TestNormalizeJudgment(t *testing.T) {
	tests := []struct {
		name     string
		judgment Judgment
		cfg      ScoringConfig
		want     float64
	}{
		{
			name:     "correct always full credit",
			judgment: JudgmentCorrect,
			cfg:      ScoringConfig{CorrectPoints: 1.5, WrongPoints: -0.4, BlankPoints: 0},
			want:     1,
		},
		{
			name:     "correct full credit with large points",
			judgment: JudgmentCorrect,
			cfg:      ScoringConfig{CorrectPoints: 5, WrongPoints: -1, BlankPoints: 0.5},
			want:     1,
		},
		{
			name:     "wrong is negative ratio",
			judgment: JudgmentWrong,
			cfg:      ScoringConfig{CorrectPoints: 1.5, WrongPoints: -0.4, BlankPoints: 0},
			want:     -0.4 / 1.5,
		},
		{
			name:     "wrong with zero penalty",
			judgment: JudgmentWrong,
			cfg:      ScoringConfig{CorrectPoints: 2, WrongPoints: 0, BlankPoints: 0},
			want:     0,
		},
		{
			name:     "blank usually zero",
			judgment: JudgmentBlank,
			cfg:      ScoringConfig{CorrectPoints: 1.5, WrongPoints: -0.4, BlankPoints: 0},
			want:     0,
		},
		{
			name:     "blank with partial credit",
			judgment: JudgmentBlank,
			cfg:      ScoringConfig{CorrectPoints: 4, WrongPoints: -1, BlankPoints: 1},
			want:     0.25,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeJudgment(tt.judgment, tt.cfg)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeJudgment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeJudgmentDeterministic(t *testing.T) {
	cfg := ScoringConfig{CorrectPoints: 3, WrongPoints: -1, BlankPoints: 0}
	first := NormalizeJudgment(JudgmentWrong, cfg)
	for i := 0; i < 10; i++ {
		if got := NormalizeJudgment(JudgmentWrong, cfg); got != first {
			t.Fatalf("normalizer is not deterministic: %v != %v", got, first)
		}
	}
}
