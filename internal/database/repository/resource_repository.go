package repository

import (
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// ListByUser retrieves the resources owned by a user in name order,
// optionally restricted to those attached to at least one topic.
func (r *ResourceRepository) ListByUser(userID uint, assignedOnly bool) ([]models.Resource, error) {
	q := r.db.Model(&models.Resource{}).Where("resources.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN topic_resources ON topic_resources.resource_id = resources.id")
	}

	var resources []models.Resource
	err := q.Distinct("resources.*").Order("resources.name").Find(&resources).Error
	return resources, err
}

// GetByIDForUser retrieves a resource by ID, scoped to its owner
func (r *ResourceRepository) GetByIDForUser(id, userID uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.First(&resource, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// Save persists resource field changes
func (r *ResourceRepository) Save(resource *models.Resource) error {
	return r.db.Save(resource).Error
}

// Delete removes a resource and detaches it from every topic
func (r *ResourceRepository) Delete(resource *models.Resource) error {
	return r.db.Select(clause.Associations).Delete(resource).Error
}
