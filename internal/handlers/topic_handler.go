package handlers

import (
	"net/http"

	"github.com/sinnovah/exam-cram/internal/models"
	"github.com/sinnovah/exam-cram/internal/services"
	"github.com/sinnovah/exam-cram/internal/services/excel"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicService *services.TopicService
	excelService *excel.Service
}

func NewTopicHandler(topicService *services.TopicService, excelService *excel.Service) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
		excelService: excelService,
	}
}

// CreateTopic godoc
// @Summary Create a new topic
// @Description Create a topic with optional nested tags, resources and questions
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateTopicRequest true "Topic creation request"
// @Success 201 {object} models.Topic
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/topic/topics [post]
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	topic, err := h.topicService.CreateTopic(currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, topic)
}

// ListTopics godoc
// @Summary List topics
// @Description List the authenticated user's topics, newest first, optionally filtered by attribute ids
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma separated list of Tag ids to filter"
// @Param resources query string false "Comma separated list of Resource ids to filter"
// @Param questions query string false "Comma separated list of Question ids to filter"
// @Success 200 {array} models.TopicListItem
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/topic/topics [get]
func (h *TopicHandler) ListTopics(c *gin.Context) {
	var filter models.TopicFilter
	var err error

	if filter.TagIDs, err = parseIDList(c.Query("tags")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tags filter"})
		return
	}
	if filter.ResourceIDs, err = parseIDList(c.Query("resources")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resources filter"})
		return
	}
	if filter.QuestionIDs, err = parseIDList(c.Query("questions")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid questions filter"})
		return
	}

	topics, err := h.topicService.ListTopics(currentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]models.TopicListItem, len(topics))
	for i, topic := range topics {
		items[i] = models.TopicListItem{
			ID:           topic.ID,
			Title:        topic.Title,
			LastModified: topic.LastModified,
			Tags:         topic.Tags,
		}
	}
	c.JSON(http.StatusOK, items)
}

// GetTopic godoc
// @Summary Get a topic
// @Description Get one of the authenticated user's topics with its collections
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} models.Topic
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/topics/{id} [get]
func (h *TopicHandler) GetTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	topic, err := h.topicService.GetTopic(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

// UpdateTopic godoc
// @Summary Replace a topic
// @Description Fully update a topic; absent scalar fields reset, present nested keys replace that collection
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body models.UpdateTopicRequest true "Topic update request"
// @Success 200 {object} models.Topic
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/topics/{id} [put]
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	h.updateTopic(c, false)
}

// PatchTopic godoc
// @Summary Partially update a topic
// @Description Update only the supplied fields; a nested key present as an empty list detaches that collection
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body models.UpdateTopicRequest true "Topic update request"
// @Success 200 {object} models.Topic
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/topics/{id} [patch]
func (h *TopicHandler) PatchTopic(c *gin.Context) {
	h.updateTopic(c, true)
}

func (h *TopicHandler) updateTopic(c *gin.Context, partial bool) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateTopicRequest
	if err := bindJSONStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	topic, err := h.topicService.UpdateTopic(currentUserID(c), id, &req, partial)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, topic)
}

// DeleteTopic godoc
// @Summary Delete a topic
// @Description Delete a topic; attached tags, resources and questions survive
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/topic/topics/{id} [delete]
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.topicService.DeleteTopic(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportTopics godoc
// @Summary Export study data
// @Description Download the authenticated user's topics, tags, resources and questions as an xlsx workbook
// @Tags topics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Router /api/topic/topics/export [get]
func (h *TopicHandler) ExportTopics(c *gin.Context) {
	f, filename, err := h.excelService.ExportUserWorkbook(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
