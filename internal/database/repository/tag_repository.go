package repository

import (
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// ListByUser retrieves the tags owned by a user in name order. With
// assignedOnly set, only tags attached to at least one topic are
// returned. Tags attached to several topics appear once.
func (r *TagRepository) ListByUser(userID uint, assignedOnly bool) ([]models.Tag, error) {
	q := r.db.Model(&models.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN topic_tags ON topic_tags.tag_id = tags.id")
	}

	var tags []models.Tag
	err := q.Distinct("tags.*").Order("tags.name").Find(&tags).Error
	return tags, err
}

// GetByIDForUser retrieves a tag by ID, scoped to its owner
func (r *TagRepository) GetByIDForUser(id, userID uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Save persists tag field changes
func (r *TagRepository) Save(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete removes a tag and detaches it from every topic
func (r *TagRepository) Delete(tag *models.Tag) error {
	return r.db.Select(clause.Associations).Delete(tag).Error
}
