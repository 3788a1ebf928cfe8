package model

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"not null;unique"`
	Email     string    `json:"email" gorm:"not null;unique"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role" gorm:"default:'student'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SimulationKind string

const (
	KindExam  SimulationKind = "exam"
	KindQuiz  SimulationKind = "quiz"
	KindPaper SimulationKind = "paper"
)

type CorrectionMode string

const (
	CorrectionSimple     CorrectionMode = "simple"
	CorrectionPercentage CorrectionMode = "percentage"
)

// Simulation carries the scoring configuration used by the grading
// workflow: correct_points must be positive, wrong_points non-positive.
type Simulation struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description"`
	Kind           SimulationKind `json:"kind" gorm:"default:'exam'"`
	CorrectPoints  float64        `json:"correct_points" gorm:"not null"`
	WrongPoints    float64        `json:"wrong_points"`
	BlankPoints    float64        `json:"blank_points"`
	CorrectionMode CorrectionMode `json:"correction_mode" gorm:"default:'simple'"`
	DurationMin    int            `json:"duration_min"`
	Questions      []Question     `json:"questions" gorm:"foreignKey:SimulationID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Question struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	SimulationID uint           `json:"simulation_id" gorm:"index"`
	Text         string         `json:"text" gorm:"not null"`
	Explanation  string         `json:"explanation"`
	Keywords     datatypes.JSON `json:"keywords"` // JSON array of expected keywords
	Position     int            `json:"position" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// GradingStatus is derived from pending vs total open answers, never stored.
type GradingStatus string

const (
	AllPending      GradingStatus = "all_pending"
	PartiallyGraded GradingStatus = "partially_graded"
	FullyGraded     GradingStatus = "fully_graded"
)

// Result is one student's attempt at one simulation. PendingOpenAnswers
// always equals the count of its open answers with is_validated = false.
type Result struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	StudentID          uint         `json:"student_id" gorm:"not null;index"`
	SimulationID       uint         `json:"simulation_id" gorm:"not null;index"`
	AttemptToken       string       `json:"attempt_token" gorm:"not null;unique"`
	CompletedAt        *time.Time   `json:"completed_at"`
	TotalScore         float64      `json:"total_score"`
	PercentageScore    float64      `json:"percentage_score"`
	PendingOpenAnswers int          `json:"pending_open_answers" gorm:"index"`
	OpenAnswers        []OpenAnswer `json:"open_answers,omitempty" gorm:"foreignKey:ResultID"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// GradingStatus reports where the result sits in the grading workflow.
// FullyGraded is terminal: no reopen transition exists.
func (r *Result) GradingStatus(totalOpenAnswers int) GradingStatus {
	switch {
	case totalOpenAnswers == 0 || r.PendingOpenAnswers == 0:
		return FullyGraded
	case r.PendingOpenAnswers >= totalOpenAnswers:
		return AllPending
	default:
		return PartiallyGraded
	}
}

// OpenAnswer is one free-text answer within a result. Invariant:
// is_validated = true exactly when final_score and validated_at are set.
// AutoScore is kept for audit after validation but is no longer authoritative.
type OpenAnswer struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	ResultID        uint           `json:"result_id" gorm:"not null;index"`
	QuestionID      uint           `json:"question_id" gorm:"not null"`
	Question        *Question      `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText      string         `json:"answer_text"`
	AutoScore       *float64       `json:"auto_score"` // 0..1, nil when the question has no keywords
	KeywordsMatched datatypes.JSON `json:"keywords_matched"`
	KeywordsMissed  datatypes.JSON `json:"keywords_missed"`
	IsValidated     bool           `json:"is_validated" gorm:"default:false;index"`
	FinalScore      *float64       `json:"final_score"`
	ValidatorNotes  *string        `json:"validator_notes"`
	ValidatedAt     *time.Time     `json:"validated_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
