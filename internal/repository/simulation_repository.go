package repository

import (
	"gorm.io/gorm"

	"simulazioni-backend/internal/model"
)

type SimulationRepository interface {
	CreateSimulation(sim *model.Simulation) error
	GetSimulations() ([]model.Simulation, error)
	GetSimulationByID(id uint) (*model.Simulation, error)
}

type simulationRepository struct {
	db *gorm.DB
}

func NewSimulationRepository(db *gorm.DB) SimulationRepository {
	return &simulationRepository{db: db}
}

func (r *simulationRepository) CreateSimulation(sim *model.Simulation) error {
	return r.db.Create(sim).Error
}

func (r *simulationRepository) GetSimulations() ([]model.Simulation, error) {
	var sims []model.Simulation
	err := r.db.Order("created_at desc").Find(&sims).Error
	return sims, err
}

func (r *simulationRepository) GetSimulationByID(id uint) (*model.Simulation, error) {
	var sim model.Simulation
	err := r.db.Preload("Questions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("questions.position asc, questions.id asc")
	}).First(&sim, id).Error
	if err != nil {
		return nil, err
	}
	return &sim, nil
}
