package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sinnovah/exam-cram/internal/database/repository"
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TopicService implements the topic aggregate operations. Every
// operation is scoped to the acting user: topics owned by someone else
// behave exactly like topics that do not exist.
type TopicService struct {
	db         *gorm.DB
	topicRepo  *repository.TopicRepository
	reconciler *Reconciler
}

func NewTopicService(db *gorm.DB, topicRepo *repository.TopicRepository) *TopicService {
	return &TopicService{
		db:         db,
		topicRepo:  topicRepo,
		reconciler: NewReconciler(),
	}
}

// CreateTopic creates a topic for a user and reconciles any nested
// attribute specs. The whole operation is transactional: a bad spec
// rolls back the topic row as well.
func (s *TopicService) CreateTopic(userID uint, req *models.CreateTopicRequest) (*models.Topic, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, NewValidationError("title", "must not be empty")
	}

	var topicID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		topic := models.Topic{UserID: userID, Title: req.Title, Notes: req.Notes}
		if err := tx.Omit(clause.Associations).Create(&topic).Error; err != nil {
			return fmt.Errorf("failed to create topic: %w", err)
		}

		if _, err := s.reconciler.ReconcileTags(tx, userID, &topic, req.Tags); err != nil {
			return err
		}
		if _, err := s.reconciler.ReconcileResources(tx, userID, &topic, req.Resources); err != nil {
			return err
		}
		if _, err := s.reconciler.ReconcileQuestions(tx, userID, &topic, req.Questions); err != nil {
			return err
		}

		topicID = topic.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTopic(userID, topicID)
}

// ListTopics returns the user's topics, most recently created first
func (s *TopicService) ListTopics(userID uint, filter models.TopicFilter) ([]models.Topic, error) {
	topics, err := s.topicRepo.ListByUser(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// GetTopic retrieves one of the user's topics with its collections
func (s *TopicService) GetTopic(userID, topicID uint) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByIDForUser(topicID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return topic, nil
}

// UpdateTopic applies a full or partial update. On a full update,
// scalar fields absent from the payload reset to their defaults. A
// nested key that is present, even as an empty list, clears that
// collection and reconciles the given specs; an absent key leaves the
// collection untouched. last_modified refreshes on every successful
// call, including collection-only rewrites.
func (s *TopicService) UpdateTopic(userID, topicID uint, req *models.UpdateTopicRequest, partial bool) (*models.Topic, error) {
	topic, err := s.GetTopic(userID, topicID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, NewValidationError("title", "must not be empty")
		}
		topic.Title = *req.Title
	} else if !partial {
		return nil, NewValidationError("title", "required")
	}

	if req.Notes != nil {
		topic.Notes = *req.Notes
	} else if !partial {
		topic.Notes = ""
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if req.Tags != nil {
			if err := tx.Model(topic).Association("Tags").Clear(); err != nil {
				return fmt.Errorf("failed to clear tags: %w", err)
			}
			if _, err := s.reconciler.ReconcileTags(tx, userID, topic, *req.Tags); err != nil {
				return err
			}
		}
		if req.Resources != nil {
			if err := tx.Model(topic).Association("Resources").Clear(); err != nil {
				return fmt.Errorf("failed to clear resources: %w", err)
			}
			if _, err := s.reconciler.ReconcileResources(tx, userID, topic, *req.Resources); err != nil {
				return err
			}
		}
		if req.Questions != nil {
			if err := tx.Model(topic).Association("Questions").Clear(); err != nil {
				return fmt.Errorf("failed to clear questions: %w", err)
			}
			if _, err := s.reconciler.ReconcileQuestions(tx, userID, topic, *req.Questions); err != nil {
				return err
			}
		}

		// Save only the topic row; the collections were rewritten
		// through the reconciler. Saving also refreshes last_modified.
		if err := tx.Omit(clause.Associations).Save(topic).Error; err != nil {
			return fmt.Errorf("failed to update topic: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetTopic(userID, topicID)
}

// DeleteTopic removes one of the user's topics. Attached tags,
// resources and questions are detached, not deleted.
func (s *TopicService) DeleteTopic(userID, topicID uint) error {
	topic, err := s.GetTopic(userID, topicID)
	if err != nil {
		return err
	}
	if err := s.topicRepo.Delete(topic); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}
