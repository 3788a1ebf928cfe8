package service

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
	"simulazioni-backend/utilities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("access sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	if err := gdb.AutoMigrate(
		&model.User{}, &model.Simulation{}, &model.Question{},
		&model.Result{}, &model.OpenAnswer{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// seedPendingResult stores the scenario used throughout: a simulation with
// scoring config {1.5, -0.4, 0} and one result with three pending open
// answers whose auto scores are 0.8, nil and 0.3.
func seedPendingResult(t *testing.T, gdb *gorm.DB) (*model.Result, []model.OpenAnswer) {
	t.Helper()

	sim := model.Simulation{
		Title:         "Simulazione di prova",
		CorrectPoints: 1.5,
		WrongPoints:   -0.4,
		BlankPoints:   0,
		Questions: []model.Question{
			{Text: "Domanda 1", Position: 1, Keywords: JSONStringList([]string{"ATP"})},
			{Text: "Domanda 2", Position: 2},
			{Text: "Domanda 3", Position: 3, Keywords: JSONStringList([]string{"nucleo"})},
		},
	}
	if err := gdb.Create(&sim).Error; err != nil {
		t.Fatalf("seed simulation: %v", err)
	}

	result := model.Result{
		StudentID:    1,
		SimulationID: sim.ID,
		AttemptToken: "tok-" + t.Name(),
		OpenAnswers: []model.OpenAnswer{
			{QuestionID: sim.Questions[0].ID, AnswerText: "risposta uno", AutoScore: floatPtr(0.8)},
			{QuestionID: sim.Questions[1].ID, AnswerText: "risposta due"},
			{QuestionID: sim.Questions[2].ID, AnswerText: "risposta tre", AutoScore: floatPtr(0.3)},
		},
		PendingOpenAnswers: 3,
	}
	if err := gdb.Create(&result).Error; err != nil {
		t.Fatalf("seed result: %v", err)
	}
	return &result, result.OpenAnswers
}

func newGradingService(gdb *gorm.DB) GradingService {
	return NewGradingService(repository.NewResultRepository(gdb))
}

func TestValidateOpenAnswer(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	notes := "parziale"
	validated, err := svc.ValidateOpenAnswer(answers[0].ID, 0.5, &notes)
	if err != nil {
		t.Fatalf("ValidateOpenAnswer() error = %v", err)
	}
	if !validated.IsValidated {
		t.Error("answer not marked validated")
	}
	if validated.FinalScore == nil || *validated.FinalScore != 0.5 {
		t.Errorf("FinalScore = %v, want 0.5", validated.FinalScore)
	}
	if validated.ValidatedAt == nil {
		t.Error("ValidatedAt not set")
	}
	if validated.ValidatorNotes == nil || *validated.ValidatorNotes != "parziale" {
		t.Errorf("ValidatorNotes = %v, want parziale", validated.ValidatorNotes)
	}
	// AutoScore is retained for audit.
	if validated.AutoScore == nil || *validated.AutoScore != 0.8 {
		t.Errorf("AutoScore = %v, want 0.8 retained", validated.AutoScore)
	}

	var reloaded model.Result
	if err := gdb.First(&reloaded, result.ID).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	if reloaded.PendingOpenAnswers != 2 {
		t.Errorf("PendingOpenAnswers = %d, want 2", reloaded.PendingOpenAnswers)
	}
	if got := reloaded.GradingStatus(len(answers)); got != model.PartiallyGraded {
		t.Errorf("GradingStatus = %v, want %v", got, model.PartiallyGraded)
	}
}

// The recompute runs on the transaction's own connection, so a single
// validation refreshes the stored totals even when the pool is capped at
// one connection.
func TestValidateOpenAnswerRecomputesScores(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	if _, err := svc.ValidateOpenAnswer(answers[1].ID, 1, nil); err != nil {
		t.Fatalf("ValidateOpenAnswer() error = %v", err)
	}

	var reloaded model.Result
	if err := gdb.First(&reloaded, result.ID).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	// Validated score 1 plus pending auto scores 0.8 and 0.3, scaled back
	// to simulation points.
	wantTotal := (1 + 0.8 + 0.3) * 1.5
	if math.Abs(reloaded.TotalScore-wantTotal) > 1e-9 {
		t.Errorf("TotalScore = %v, want %v", reloaded.TotalScore, wantTotal)
	}
	wantPct := (1 + 0.8 + 0.3) / 3 * 100
	if math.Abs(reloaded.PercentageScore-wantPct) > 1e-9 {
		t.Errorf("PercentageScore = %v, want %v", reloaded.PercentageScore, wantPct)
	}
}

func TestValidateOpenAnswerSingleUse(t *testing.T) {
	gdb := newTestDB(t)
	_, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	if _, err := svc.ValidateOpenAnswer(answers[1].ID, 1, nil); err != nil {
		t.Fatalf("first validation: %v", err)
	}
	if _, err := svc.ValidateOpenAnswer(answers[1].ID, 1, nil); !errors.Is(err, ErrAlreadyValidated) {
		t.Errorf("second validation error = %v, want ErrAlreadyValidated", err)
	}
}

func TestValidateOpenAnswerNotFound(t *testing.T) {
	gdb := newTestDB(t)
	seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	if _, err := svc.ValidateOpenAnswer(99999, 1, nil); !errors.Is(err, ErrOpenAnswerNotFound) {
		t.Errorf("error = %v, want ErrOpenAnswerNotFound", err)
	}
}

func TestValidateBatchFullCoverage(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	cfg := ScoringConfig{CorrectPoints: 1.5, WrongPoints: -0.4, BlankPoints: 0}
	remaining, err := svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[0].ID, ManualScore: NormalizeJudgment(JudgmentCorrect, cfg)},
		{OpenAnswerID: answers[1].ID, ManualScore: NormalizeJudgment(JudgmentWrong, cfg)},
		{OpenAnswerID: answers[2].ID, ManualScore: NormalizeJudgment(JudgmentBlank, cfg)},
	})
	if err != nil {
		t.Fatalf("ValidateOpenAnswersBatch() error = %v", err)
	}
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}

	var reloaded model.Result
	if err := gdb.First(&reloaded, result.ID).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	if got := reloaded.GradingStatus(len(answers)); got != model.FullyGraded {
		t.Errorf("GradingStatus = %v, want %v", got, model.FullyGraded)
	}
	if reloaded.PendingOpenAnswers != 0 {
		t.Errorf("PendingOpenAnswers = %d, want 0", reloaded.PendingOpenAnswers)
	}

	// 1 + (-0.4/1.5) + 0 summed and scaled back to simulation points.
	wantTotal := (1 - 0.4/1.5) * 1.5
	if math.Abs(reloaded.TotalScore-wantTotal) > 1e-9 {
		t.Errorf("TotalScore = %v, want %v", reloaded.TotalScore, wantTotal)
	}
	wantPct := (1 - 0.4/1.5) / 3 * 100
	if math.Abs(reloaded.PercentageScore-wantPct) > 1e-9 {
		t.Errorf("PercentageScore = %v, want %v", reloaded.PercentageScore, wantPct)
	}
}

func TestValidateBatchPartialKeepsInvariant(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	resultRepo := repository.NewResultRepository(gdb)
	svc := newGradingService(gdb)

	remaining, err := svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[0].ID, ManualScore: 1},
	})
	if err != nil {
		t.Fatalf("ValidateOpenAnswersBatch() error = %v", err)
	}
	if remaining != 2 {
		t.Errorf("remaining = %d, want 2", remaining)
	}

	// pending_open_answers must agree with the actual unvalidated count.
	count, err := resultRepo.CountPendingForResult(result.ID)
	if err != nil {
		t.Fatalf("CountPendingForResult: %v", err)
	}
	if int(count) != remaining {
		t.Errorf("stored pending %d != actual unvalidated %d", remaining, count)
	}

	var reloaded model.Result
	if err := gdb.First(&reloaded, result.ID).Error; err != nil {
		t.Fatalf("reload result: %v", err)
	}
	if reloaded.PendingOpenAnswers != remaining {
		t.Errorf("PendingOpenAnswers = %d, want %d", reloaded.PendingOpenAnswers, remaining)
	}
	if got := reloaded.GradingStatus(len(answers)); got != model.PartiallyGraded {
		t.Errorf("GradingStatus = %v, want %v", got, model.PartiallyGraded)
	}
}

func TestValidateBatchAtomicity(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	// Validate one answer up front, then include it in a batch.
	if _, err := svc.ValidateOpenAnswer(answers[2].ID, 0, nil); err != nil {
		t.Fatalf("pre-validation: %v", err)
	}

	_, err := svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[0].ID, ManualScore: 1},
		{OpenAnswerID: answers[2].ID, ManualScore: 1}, // already validated
	})
	if !errors.Is(err, ErrAlreadyValidated) {
		t.Fatalf("batch error = %v, want ErrAlreadyValidated", err)
	}

	// Nothing from the rejected batch may persist: the two answers that
	// were pending before the call are still pending.
	var pending int64
	if err := gdb.Model(&model.OpenAnswer{}).
		Where("result_id = ? AND is_validated = ?", result.ID, false).
		Count(&pending).Error; err != nil {
		t.Fatalf("count pending: %v", err)
	}
	if pending != 2 {
		t.Errorf("pending after failed batch = %d, want 2", pending)
	}
}

func TestValidateBatchRejectsForeignAnswer(t *testing.T) {
	gdb := newTestDB(t)
	result, _ := seedPendingResult(t, gdb)
	other, otherAnswers := seedOtherResult(t, gdb, result.SimulationID)
	svc := newGradingService(gdb)

	_, err := svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: otherAnswers[0].ID, ManualScore: 1},
	})
	if !errors.Is(err, ErrAnswerNotInResult) {
		t.Errorf("error = %v, want ErrAnswerNotInResult", err)
	}

	var reloaded model.OpenAnswer
	if err := gdb.First(&reloaded, otherAnswers[0].ID).Error; err != nil {
		t.Fatalf("reload foreign answer: %v", err)
	}
	if reloaded.IsValidated {
		t.Errorf("foreign answer of result %d was mutated", other.ID)
	}
}

func TestValidateBatchResultNotFound(t *testing.T) {
	gdb := newTestDB(t)
	seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	if _, err := svc.ValidateOpenAnswersBatch(99999, nil); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("error = %v, want ErrResultNotFound", err)
	}
}

func TestFullyGradedIsTerminal(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	remaining, err := svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[0].ID, ManualScore: 1},
		{OpenAnswerID: answers[1].ID, ManualScore: 0},
		{OpenAnswerID: answers[2].ID, ManualScore: 0.5},
	})
	if err != nil || remaining != 0 {
		t.Fatalf("batch: remaining=%d err=%v", remaining, err)
	}

	// No silent success on already-graded answers, single or batch.
	if _, err := svc.ValidateOpenAnswer(answers[0].ID, 1, nil); !errors.Is(err, ErrAlreadyValidated) {
		t.Errorf("single revalidation error = %v, want ErrAlreadyValidated", err)
	}
	_, err = svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[1].ID, ManualScore: 1},
	})
	if !errors.Is(err, ErrAlreadyValidated) {
		t.Errorf("batch revalidation error = %v, want ErrAlreadyValidated", err)
	}
}

func TestFullyGradedEventFiresOnce(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	var fired int32
	utilities.GlobalEventBus.Subscribe(EventResultFullyGraded, func(interface{}) {
		atomic.AddInt32(&fired, 1)
	})

	remaining, err := svc.ValidateOpenAnswersBatch(result.ID, []BatchValidation{
		{OpenAnswerID: answers[0].ID, ManualScore: 1},
		{OpenAnswerID: answers[1].ID, ManualScore: 0},
		{OpenAnswerID: answers[2].ID, ManualScore: 0.5},
	})
	if err != nil || remaining != 0 {
		t.Fatalf("batch: remaining=%d err=%v", remaining, err)
	}

	deadline := time.Now().Add(time.Second)
	for atomic.LoadInt32(&fired) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Fatalf("event fired %d times after grading, want 1", got)
	}

	// An empty batch against the fully graded result recomputes but must
	// not replay the terminal event.
	remaining, err = svc.ValidateOpenAnswersBatch(result.ID, nil)
	if err != nil || remaining != 0 {
		t.Fatalf("empty batch: remaining=%d err=%v", remaining, err)
	}
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("event fired %d times after empty batch, want 1", got)
	}
}

func TestGetOpenAnswersForResultOrdering(t *testing.T) {
	gdb := newTestDB(t)
	result, answers := seedPendingResult(t, gdb)
	svc := newGradingService(gdb)

	// Validate the first question's answer; it must sort after the
	// still-pending ones.
	if _, err := svc.ValidateOpenAnswer(answers[0].ID, 1, nil); err != nil {
		t.Fatalf("validate: %v", err)
	}

	_, ordered, err := svc.GetOpenAnswersForResult(result.ID)
	if err != nil {
		t.Fatalf("GetOpenAnswersForResult() error = %v", err)
	}
	if len(ordered) != 3 {
		t.Fatalf("len = %d, want 3", len(ordered))
	}
	if ordered[0].IsValidated || ordered[1].IsValidated {
		t.Error("pending answers must come first")
	}
	if !ordered[2].IsValidated {
		t.Error("validated answer must come last")
	}

	if _, _, err := svc.GetOpenAnswersForResult(99999); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("error = %v, want ErrResultNotFound", err)
	}
}

func seedOtherResult(t *testing.T, gdb *gorm.DB, simulationID uint) (*model.Result, []model.OpenAnswer) {
	t.Helper()
	var sim model.Simulation
	if err := gdb.Preload("Questions").First(&sim, simulationID).Error; err != nil {
		t.Fatalf("load simulation: %v", err)
	}
	result := model.Result{
		StudentID:    2,
		SimulationID: simulationID,
		AttemptToken: "tok-other-" + t.Name(),
		OpenAnswers: []model.OpenAnswer{
			{QuestionID: sim.Questions[0].ID, AnswerText: "altra risposta"},
		},
		PendingOpenAnswers: 1,
	}
	if err := gdb.Create(&result).Error; err != nil {
		t.Fatalf("seed other result: %v", err)
	}
	return &result, result.OpenAnswers
}
