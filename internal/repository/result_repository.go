package repository

import (
	"gorm.io/gorm"

	"simulazioni-backend/internal/db"
	"simulazioni-backend/internal/model"
)

type ResultRepository interface {
	CreateResult(result *model.Result) error
	GetResultByID(id uint) (*model.Result, error)
	SaveResult(result *model.Result) error
	GetOpenAnswerByID(id uint) (*model.OpenAnswer, error)
	SaveOpenAnswer(answer *model.OpenAnswer) error
	// GetOpenAnswersForResult returns the answers pending first, then
	// validated, stable by question position.
	GetOpenAnswersForResult(resultID uint) ([]model.OpenAnswer, error)
	// GetSimulationForResult loads the scoring configuration a result was
	// taken against, on the repository's own connection so it stays inside
	// a surrounding transaction.
	GetSimulationForResult(simulationID uint) (*model.Simulation, error)
	CountPendingForResult(resultID uint) (int64, error)
	// ListWithPendingReviews pages through results still awaiting review,
	// newest first, and returns the total regardless of the page.
	ListWithPendingReviews(limit, offset, maxPageSize int) ([]model.Result, int64, error)
	// Transaction runs fn against a repository bound to a transaction;
	// any error rolls the whole transaction back.
	Transaction(fn func(txRepo ResultRepository) error) error
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(gdb *gorm.DB) ResultRepository {
	return &resultRepository{db: gdb}
}

func (r *resultRepository) CreateResult(result *model.Result) error {
	return r.db.Create(result).Error
}

func (r *resultRepository) GetResultByID(id uint) (*model.Result, error) {
	var result model.Result
	if err := r.db.First(&result, id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) SaveResult(result *model.Result) error {
	return r.db.Save(result).Error
}

func (r *resultRepository) GetOpenAnswerByID(id uint) (*model.OpenAnswer, error) {
	var answer model.OpenAnswer
	if err := r.db.Preload("Question").First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *resultRepository) SaveOpenAnswer(answer *model.OpenAnswer) error {
	return r.db.Save(answer).Error
}

func (r *resultRepository) GetOpenAnswersForResult(resultID uint) ([]model.OpenAnswer, error) {
	var answers []model.OpenAnswer
	err := r.db.Preload("Question").
		Select("open_answers.*").
		Joins("LEFT JOIN questions ON questions.id = open_answers.question_id").
		Where("open_answers.result_id = ?", resultID).
		Order("open_answers.is_validated asc, questions.position asc, open_answers.id asc").
		Find(&answers).Error
	return answers, err
}

func (r *resultRepository) GetSimulationForResult(simulationID uint) (*model.Simulation, error) {
	var sim model.Simulation
	if err := r.db.First(&sim, simulationID).Error; err != nil {
		return nil, err
	}
	return &sim, nil
}

func (r *resultRepository) CountPendingForResult(resultID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.OpenAnswer{}).
		Where("result_id = ? AND is_validated = ?", resultID, false).
		Count(&count).Error
	return count, err
}

func (r *resultRepository) ListWithPendingReviews(limit, offset, maxPageSize int) ([]model.Result, int64, error) {
	var total int64
	if err := r.db.Model(&model.Result{}).
		Where("pending_open_answers > 0").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.Result
	err := r.db.Where("pending_open_answers > 0").
		Order("completed_at desc, id desc").
		Scopes(db.Paginate(limit, offset, maxPageSize)).
		Find(&results).Error
	return results, total, err
}

func (r *resultRepository) Transaction(fn func(txRepo ResultRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&resultRepository{db: tx})
	})
}
