package handlers

import (
	"net/http"

	"github.com/sinnovah/exam-cram/internal/models"
	"github.com/sinnovah/exam-cram/internal/services"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	attributeService *services.AttributeService
}

func NewTagHandler(attributeService *services.AttributeService) *TagHandler {
	return &TagHandler{attributeService: attributeService}
}

// ListTags godoc
// @Summary List tags
// @Description List the authenticated user's tags in name order
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Pass 1 to list only tags attached to a topic"
// @Success 200 {array} models.Tag
// @Failure 401 {object} map[string]interface{}
// @Router /api/topic/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.attributeService.ListTags(currentUserID(c), parseAssignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// UpdateTag godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body models.UpdateTagRequest true "Tag update request"
// @Success 200 {object} models.Tag
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/tags/{id} [patch]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateTagRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	tag, err := h.attributeService.UpdateTag(currentUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Description Delete a tag, detaching it from every topic that carries it
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/tags/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.attributeService.DeleteTag(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
