package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/service"
	"simulazioni-backend/utilities"
)

type GradingController struct {
	GradingService service.GradingService
}

func NewGradingController(gradingService service.GradingService) *GradingController {
	return &GradingController{GradingService: gradingService}
}

// GetOpenAnswers feeds the grading view: the result plus its open answers,
// pending first. Staff see everything; a student may only read their own
// result.
func (gc *GradingController) GetOpenAnswers(c *gin.Context) {
	resultID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	result, answers, err := gc.GradingService.GetOpenAnswersForResult(resultID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if role, _ := c.Get("role"); role != model.RoleStaff {
		studentID, ok := utilities.CurrentUserID(c)
		if !ok || result.StudentID != studentID {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your result"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"result":         result,
		"open_answers":   answers,
		"grading_status": result.GradingStatus(len(answers)),
	})
}

func (gc *GradingController) ValidateOpenAnswer(c *gin.Context) {
	openAnswerID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req struct {
		ManualScore    float64 `json:"manual_score"`
		ValidatorNotes *string `json:"validator_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	answer, err := gc.GradingService.ValidateOpenAnswer(openAnswerID, req.ManualScore, req.ValidatorNotes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (gc *GradingController) ValidateBatch(c *gin.Context) {
	resultID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	var req struct {
		Validations []service.BatchValidation `json:"validations" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	remaining, err := gc.GradingService.ValidateOpenAnswersBatch(resultID, req.Validations)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"remaining_pending": remaining})
}
