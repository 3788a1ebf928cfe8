package service

import "errors"

var (
	ErrResultNotFound          = errors.New("result not found")
	ErrOpenAnswerNotFound      = errors.New("open answer not found")
	ErrSimulationNotFound      = errors.New("simulation not found")
	ErrAlreadyValidated        = errors.New("open answer already validated")
	ErrAnswerNotInResult       = errors.New("open answer does not belong to this result")
	ErrQuestionNotInSimulation = errors.New("question does not belong to this simulation")
	ErrInvalidScoringConfig    = errors.New("correct points must be positive")
	ErrEmailInUse              = errors.New("email already in use")
	ErrInvalidCredentials      = errors.New("invalid credentials")
)
