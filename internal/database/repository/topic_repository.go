package repository

import (
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TopicRepository struct {
	db *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// preloadAttrs loads a topic's collections in their listing order.
func preloadAttrs(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Preload("Resources", func(db *gorm.DB) *gorm.DB { return db.Order("resources.name") }).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") })
}

// GetByIDForUser retrieves a topic by ID, scoped to its owner. A topic
// belonging to another user is indistinguishable from a missing one.
func (r *TopicRepository) GetByIDForUser(id, userID uint) (*models.Topic, error) {
	var topic models.Topic
	err := preloadAttrs(r.db).First(&topic, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// ListByUser retrieves the topics owned by a user, most recently
// created first, optionally restricted to topics carrying at least one
// of the given attribute ids per kind. Kinds combine with AND, ids
// within a kind with OR. Results are de-duplicated.
func (r *TopicRepository) ListByUser(userID uint, filter models.TopicFilter) ([]models.Topic, error) {
	q := r.db.Model(&models.Topic{}).Where("topics.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		q = q.Joins("JOIN topic_tags ON topic_tags.topic_id = topics.id").
			Where("topic_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.ResourceIDs) > 0 {
		q = q.Joins("JOIN topic_resources ON topic_resources.topic_id = topics.id").
			Where("topic_resources.resource_id IN ?", filter.ResourceIDs)
	}
	if len(filter.QuestionIDs) > 0 {
		q = q.Joins("JOIN topic_questions ON topic_questions.topic_id = topics.id").
			Where("topic_questions.question_id IN ?", filter.QuestionIDs)
	}

	var topics []models.Topic
	err := preloadAttrs(q.Distinct("topics.*")).
		Order("topics.id DESC").
		Find(&topics).Error
	return topics, err
}

// Delete removes a topic and its association rows. The attached tags,
// resources and questions survive.
func (r *TopicRepository) Delete(topic *models.Topic) error {
	return r.db.Select(clause.Associations).Delete(topic).Error
}
