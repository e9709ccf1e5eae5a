package repository

import (
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListByUser retrieves the questions owned by a user in creation order,
// optionally restricted to those attached to at least one topic.
func (r *QuestionRepository) ListByUser(userID uint, assignedOnly bool) ([]models.Question, error) {
	q := r.db.Model(&models.Question{}).Where("questions.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN topic_questions ON topic_questions.question_id = questions.id")
	}

	var questions []models.Question
	err := q.Distinct("questions.*").Order("questions.id").Find(&questions).Error
	return questions, err
}

// GetByIDForUser retrieves a question by ID, scoped to its owner
func (r *QuestionRepository) GetByIDForUser(id, userID uint) (*models.Question, error) {
	var question models.Question
	err := r.db.First(&question, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Save persists question field changes
func (r *QuestionRepository) Save(question *models.Question) error {
	return r.db.Save(question).Error
}

// Delete removes a question and detaches it from every topic
func (r *QuestionRepository) Delete(question *models.Question) error {
	return r.db.Select(clause.Associations).Delete(question).Error
}
