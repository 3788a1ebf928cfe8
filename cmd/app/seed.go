package main

import (
	"fmt"
	"log"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
	"simulazioni-backend/internal/service"
)

// seed loads a small demo dataset: one staff grader, two students, one
// simulation with keyworded open questions, and one submitted attempt per
// student so the review queue is not empty.
func seed(userRepo repository.UserRepository, simRepo repository.SimulationRepository, resultRepo repository.ResultRepository) {
	authService := service.NewAuthService(userRepo)
	simService := service.NewSimulationService(simRepo)
	attemptService := service.NewAttemptService(resultRepo, simRepo)

	users := []*model.User{
		{Username: "prof.bianchi", Email: "bianchi@example.org", Password: "cambiami", FirstName: "Laura", LastName: "Bianchi", Role: model.RoleStaff},
		{Username: "m.rossi", Email: "rossi@example.org", Password: "cambiami", FirstName: "Marco", LastName: "Rossi", Role: model.RoleStudent},
		{Username: "g.ferrari", Email: "ferrari@example.org", Password: "cambiami", FirstName: "Giulia", LastName: "Ferrari", Role: model.RoleStudent},
	}
	for _, u := range users {
		if err := authService.Register(u); err != nil {
			log.Fatalf("seed user %s: %v", u.Username, err)
		}
	}

	sim := &model.Simulation{
		Title:          "Simulazione Biologia - Prova 1",
		Description:    "Domande aperte di biologia cellulare",
		Kind:           model.KindExam,
		CorrectPoints:  1.5,
		WrongPoints:    -0.4,
		BlankPoints:    0,
		CorrectionMode: model.CorrectionSimple,
		DurationMin:    60,
		Questions: []model.Question{
			{
				Text:        "Descrivi la funzione dei mitocondri nella cellula.",
				Explanation: "I mitocondri producono ATP tramite la respirazione cellulare.",
				Keywords:    service.JSONStringList([]string{"ATP", "respirazione", "energia"}),
				Position:    1,
			},
			{
				Text:        "Spiega la differenza tra cellula procariote ed eucariote.",
				Explanation: "Le eucariote hanno un nucleo delimitato da membrana.",
				Keywords:    service.JSONStringList([]string{"nucleo", "membrana", "organuli"}),
				Position:    2,
			},
			{
				Text:     "Commenta il ruolo degli enzimi nel metabolismo.",
				Position: 3,
			},
		},
	}
	if err := simService.CreateSimulation(sim); err != nil {
		log.Fatalf("seed simulation: %v", err)
	}

	attempts := map[uint][]service.AttemptAnswer{
		users[1].ID: {
			{QuestionID: sim.Questions[0].ID, AnswerText: "I mitocondri producono ATP e forniscono energia alla cellula."},
			{QuestionID: sim.Questions[1].ID, AnswerText: "Le cellule eucariote hanno il nucleo."},
			{QuestionID: sim.Questions[2].ID, AnswerText: "Gli enzimi accelerano le reazioni chimiche."},
		},
		users[2].ID: {
			{QuestionID: sim.Questions[0].ID, AnswerText: "Servono per la respirazione cellulare."},
		},
	}
	for studentID, answers := range attempts {
		if _, err := attemptService.SubmitAttempt(studentID, sim.ID, answers); err != nil {
			log.Fatalf("seed attempt for student %d: %v", studentID, err)
		}
	}

	fmt.Println("seed completed")
}
