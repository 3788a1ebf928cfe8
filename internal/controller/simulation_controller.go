package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/service"
	"simulazioni-backend/utilities"
)

type SimulationController struct {
	SimulationService service.SimulationService
	AttemptService    service.AttemptService
}

func NewSimulationController(simService service.SimulationService, attemptService service.AttemptService) *SimulationController {
	return &SimulationController{SimulationService: simService, AttemptService: attemptService}
}

func (sc *SimulationController) CreateSimulation(c *gin.Context) {
	var sim model.Simulation
	if err := c.ShouldBindJSON(&sim); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if err := sc.SimulationService.CreateSimulation(&sim); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sim)
}

func (sc *SimulationController) GetSimulations(c *gin.Context) {
	sims, err := sc.SimulationService.GetSimulations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sims)
}

func (sc *SimulationController) GetSimulation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	sim, err := sc.SimulationService.GetSimulationByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sim)
}

func (sc *SimulationController) SubmitAttempt(c *gin.Context) {
	simulationID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	studentID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req struct {
		Answers []service.AttemptAnswer `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := sc.AttemptService.SubmitAttempt(studentID, simulationID, req.Answers)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(id), nil
}
