package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
)

// Reconciler resolves nested attribute specs against a user's existing
// records and attaches the results to a topic. Each spec either matches
// an existing record owned by the acting user on every field the spec
// carries, or creates a new record owned by that user. Attachment is
// idempotent, so a spec repeated within one call resolves to a single
// record. All methods run on the caller's transaction handle; a failed
// spec aborts the whole operation.
type Reconciler struct{}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// ReconcileTags resolves tag specs in input order and attaches the
// resulting tags to the topic.
func (r *Reconciler) ReconcileTags(tx *gorm.DB, ownerID uint, topic *models.Topic, specs []models.TagSpec) ([]models.Tag, error) {
	resolved := make([]models.Tag, 0, len(specs))
	for _, spec := range specs {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, NewValidationError("tags.name", "must not be empty")
		}

		var tag models.Tag
		err := tx.Where("user_id = ? AND name = ?", ownerID, spec.Name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{UserID: ownerID, Name: spec.Name}
			if err := tx.Create(&tag).Error; err != nil {
				return nil, fmt.Errorf("failed to create tag: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up tag: %w", err)
		}

		if err := tx.Model(topic).Association("Tags").Append(&tag); err != nil {
			return nil, fmt.Errorf("failed to attach tag: %w", err)
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

// ReconcileResources resolves resource specs in input order and
// attaches the resulting resources to the topic. A spec that matches
// nothing must carry a name and a valid link to create a new resource.
func (r *Reconciler) ReconcileResources(tx *gorm.DB, ownerID uint, topic *models.Topic, specs []models.ResourceSpec) ([]models.Resource, error) {
	resolved := make([]models.Resource, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == nil && spec.Link == nil {
			return nil, NewValidationError("resources", "spec must include a name or link")
		}

		q := tx.Where("user_id = ?", ownerID)
		if spec.Name != nil {
			q = q.Where("name = ?", *spec.Name)
		}
		if spec.Link != nil {
			q = q.Where("link = ?", *spec.Link)
		}

		var resource models.Resource
		err := q.First(&resource).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resource, err = r.createResource(tx, ownerID, spec)
			if err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up resource: %w", err)
		}

		if err := tx.Model(topic).Association("Resources").Append(&resource); err != nil {
			return nil, fmt.Errorf("failed to attach resource: %w", err)
		}
		resolved = append(resolved, resource)
	}
	return resolved, nil
}

func (r *Reconciler) createResource(tx *gorm.DB, ownerID uint, spec models.ResourceSpec) (models.Resource, error) {
	if spec.Name == nil || strings.TrimSpace(*spec.Name) == "" {
		return models.Resource{}, NewValidationError("resources.name", "required to create a new resource")
	}
	if spec.Link == nil {
		return models.Resource{}, NewValidationError("resources.link", "required to create a new resource")
	}
	if err := validateLink("resources.link", *spec.Link); err != nil {
		return models.Resource{}, err
	}

	resource := models.Resource{UserID: ownerID, Name: *spec.Name, Link: *spec.Link}
	if err := tx.Create(&resource).Error; err != nil {
		return models.Resource{}, fmt.Errorf("failed to create resource: %w", err)
	}
	return resource, nil
}

// ReconcileQuestions resolves question specs in input order and
// attaches the resulting questions to the topic. Wrong answers take
// part in matching when present: a spec only matches a record whose
// list is identical in content and order.
func (r *Reconciler) ReconcileQuestions(tx *gorm.DB, ownerID uint, topic *models.Topic, specs []models.QuestionSpec) ([]models.Question, error) {
	resolved := make([]models.Question, 0, len(specs))
	for _, spec := range specs {
		if spec.Name == nil && spec.Answer == nil && spec.WrongAnswers == nil {
			return nil, NewValidationError("questions", "spec must include a name, answer or wrong_answers")
		}

		question, found, err := r.matchQuestion(tx, ownerID, spec)
		if err != nil {
			return nil, err
		}
		if !found {
			question, err = r.createQuestion(tx, ownerID, spec)
			if err != nil {
				return nil, err
			}
		}

		if err := tx.Model(topic).Association("Questions").Append(&question); err != nil {
			return nil, fmt.Errorf("failed to attach question: %w", err)
		}
		resolved = append(resolved, question)
	}
	return resolved, nil
}

// matchQuestion filters on the scalar fields in SQL, then compares
// wrong-answer lists in memory since they live in a json column.
func (r *Reconciler) matchQuestion(tx *gorm.DB, ownerID uint, spec models.QuestionSpec) (models.Question, bool, error) {
	q := tx.Where("user_id = ?", ownerID)
	if spec.Name != nil {
		q = q.Where("name = ?", *spec.Name)
	}
	if spec.Answer != nil {
		q = q.Where("answer = ?", *spec.Answer)
	}

	var candidates []models.Question
	if err := q.Order("id").Find(&candidates).Error; err != nil {
		return models.Question{}, false, fmt.Errorf("failed to look up question: %w", err)
	}

	for i := range candidates {
		if spec.WrongAnswers == nil || candidates[i].WrongAnswers.Equal(*spec.WrongAnswers) {
			return candidates[i], true, nil
		}
	}
	return models.Question{}, false, nil
}

func (r *Reconciler) createQuestion(tx *gorm.DB, ownerID uint, spec models.QuestionSpec) (models.Question, error) {
	if spec.Name == nil || strings.TrimSpace(*spec.Name) == "" {
		return models.Question{}, NewValidationError("questions.name", "required to create a new question")
	}

	question := models.Question{UserID: ownerID, Name: *spec.Name, WrongAnswers: models.StringList{}}
	if spec.Answer != nil {
		question.Answer = *spec.Answer
	}
	if spec.WrongAnswers != nil {
		question.WrongAnswers = *spec.WrongAnswers
	}
	if err := tx.Create(&question).Error; err != nil {
		return models.Question{}, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}
