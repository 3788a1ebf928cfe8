package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"simulazioni-backend/internal/service"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// missing entities are 404, invalid grading transitions 409, anything
// else is a 500. Errors are never swallowed silently.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResultNotFound),
		errors.Is(err, service.ErrOpenAnswerNotFound),
		errors.Is(err, service.ErrSimulationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyValidated),
		errors.Is(err, service.ErrAnswerNotInResult),
		errors.Is(err, service.ErrQuestionNotInSimulation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidScoringConfig):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
