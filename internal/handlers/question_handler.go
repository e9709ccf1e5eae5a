package handlers

import (
	"net/http"

	"github.com/sinnovah/exam-cram/internal/models"
	"github.com/sinnovah/exam-cram/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	attributeService *services.AttributeService
}

func NewQuestionHandler(attributeService *services.AttributeService) *QuestionHandler {
	return &QuestionHandler{attributeService: attributeService}
}

// ListQuestions godoc
// @Summary List questions
// @Description List the authenticated user's questions in creation order
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Pass 1 to list only questions attached to a topic"
// @Success 200 {array} models.Question
// @Failure 401 {object} map[string]interface{}
// @Router /api/topic/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.attributeService.ListQuestions(currentUserID(c), parseAssignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Description Fully update a question; the answer and wrong answers reset when absent
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body models.UpdateQuestionRequest true "Question update request"
// @Success 200 {object} models.Question
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	h.updateQuestion(c, false)
}

// PatchQuestion godoc
// @Summary Partially update a question
// @Description Update only the supplied question fields
// @Tags questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param request body models.UpdateQuestionRequest true "Question update request"
// @Success 200 {object} models.Question
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/questions/{id} [patch]
func (h *QuestionHandler) PatchQuestion(c *gin.Context) {
	h.updateQuestion(c, true)
}

func (h *QuestionHandler) updateQuestion(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateQuestionRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	question, err := h.attributeService.UpdateQuestion(currentUserID(c), id, &req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Delete a question, detaching it from every topic that carries it
// @Tags questions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.attributeService.DeleteQuestion(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
