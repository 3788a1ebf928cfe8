package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
)

type SimulationService interface {
	CreateSimulation(sim *model.Simulation) error
	GetSimulations() ([]model.Simulation, error)
	GetSimulationByID(id uint) (*model.Simulation, error)
}

type simulationService struct {
	simRepo repository.SimulationRepository
}

func NewSimulationService(simRepo repository.SimulationRepository) SimulationService {
	return &simulationService{simRepo: simRepo}
}

// CreateSimulation stores a simulation with its questions. The scoring
// configuration is validated here so the normalizer never divides by a
// non-positive correct_points downstream.
func (s *simulationService) CreateSimulation(sim *model.Simulation) error {
	if sim.CorrectPoints <= 0 {
		return ErrInvalidScoringConfig
	}
	if sim.WrongPoints > 0 {
		return fmt.Errorf("%w: wrong points must not be positive", ErrInvalidScoringConfig)
	}
	if sim.Kind == "" {
		sim.Kind = model.KindExam
	}
	if sim.CorrectionMode == "" {
		sim.CorrectionMode = model.CorrectionSimple
	}
	for i := range sim.Questions {
		if sim.Questions[i].Position == 0 {
			sim.Questions[i].Position = i + 1
		}
	}
	return s.simRepo.CreateSimulation(sim)
}

func (s *simulationService) GetSimulations() ([]model.Simulation, error) {
	return s.simRepo.GetSimulations()
}

func (s *simulationService) GetSimulationByID(id uint) (*model.Simulation, error) {
	sim, err := s.simRepo.GetSimulationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSimulationNotFound
		}
		return nil, err
	}
	return sim, nil
}
