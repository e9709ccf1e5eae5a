package handlers

import (
	"net/http"

	"github.com/sinnovah/exam-cram/internal/models"
	"github.com/sinnovah/exam-cram/internal/services"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	attributeService *services.AttributeService
}

func NewResourceHandler(attributeService *services.AttributeService) *ResourceHandler {
	return &ResourceHandler{attributeService: attributeService}
}

// ListResources godoc
// @Summary List resources
// @Description List the authenticated user's resources in name order
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Pass 1 to list only resources attached to a topic"
// @Success 200 {array} models.Resource
// @Failure 401 {object} map[string]interface{}
// @Router /api/topic/resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.attributeService.ListResources(currentUserID(c), parseAssignedOnly(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

// UpdateResource godoc
// @Summary Replace a resource
// @Description Fully update a resource; name and link are both required
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body models.UpdateResourceRequest true "Resource update request"
// @Success 200 {object} models.Resource
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/resources/{id} [put]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	h.updateResource(c, false)
}

// PatchResource godoc
// @Summary Partially update a resource
// @Description Update only the supplied resource fields
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body models.UpdateResourceRequest true "Resource update request"
// @Success 200 {object} models.Resource
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/resources/{id} [patch]
func (h *ResourceHandler) PatchResource(c *gin.Context) {
	h.updateResource(c, true)
}

func (h *ResourceHandler) updateResource(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateResourceRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resource, err := h.attributeService.UpdateResource(currentUserID(c), id, &req, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resource)
}

// DeleteResource godoc
// @Summary Delete a resource
// @Description Delete a resource, detaching it from every topic that carries it
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.attributeService.DeleteResource(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
