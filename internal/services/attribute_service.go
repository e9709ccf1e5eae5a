package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sinnovah/exam-cram/internal/database/repository"
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/gorm"
)

// AttributeService implements the ownership-scoped listing, update and
// deletion of topic attributes. Attribute records are never created
// here; creation happens only through topic reconciliation.
type AttributeService struct {
	tagRepo      *repository.TagRepository
	resourceRepo *repository.ResourceRepository
	questionRepo *repository.QuestionRepository
}

func NewAttributeService(
	tagRepo *repository.TagRepository,
	resourceRepo *repository.ResourceRepository,
	questionRepo *repository.QuestionRepository) *AttributeService {
	return &AttributeService{
		tagRepo:      tagRepo,
		resourceRepo: resourceRepo,
		questionRepo: questionRepo,
	}
}

// ListTags returns the user's tags in name order. assignedOnly
// restricts to tags attached to at least one topic, de-duplicated.
func (s *AttributeService) ListTags(userID uint, assignedOnly bool) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListByUser(userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// UpdateTag renames one of the user's tags
func (s *AttributeService) UpdateTag(userID, tagID uint, req *models.UpdateTagRequest) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByIDForUser(tagID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	tag.Name = req.Name

	if err := s.tagRepo.Save(tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return tag, nil
}

// DeleteTag removes one of the user's tags, detaching it from every
// topic first.
func (s *AttributeService) DeleteTag(userID, tagID uint) error {
	tag, err := s.tagRepo.GetByIDForUser(tagID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get tag: %w", err)
	}
	if err := s.tagRepo.Delete(tag); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

// ListResources returns the user's resources in name order, optionally
// restricted to those attached to at least one topic.
func (s *AttributeService) ListResources(userID uint, assignedOnly bool) ([]models.Resource, error) {
	resources, err := s.resourceRepo.ListByUser(userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

// UpdateResource applies a full or partial update to one of the user's
// resources. On a full update, both name and link are required.
func (s *AttributeService) UpdateResource(userID, resourceID uint, req *models.UpdateResourceRequest, partial bool) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByIDForUser(resourceID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewValidationError("name", "must not be empty")
		}
		resource.Name = *req.Name
	} else if !partial {
		return nil, NewValidationError("name", "required")
	}

	if req.Link != nil {
		if err := validateLink("link", *req.Link); err != nil {
			return nil, err
		}
		resource.Link = *req.Link
	} else if !partial {
		return nil, NewValidationError("link", "required")
	}

	if err := s.resourceRepo.Save(resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	return resource, nil
}

// DeleteResource removes one of the user's resources
func (s *AttributeService) DeleteResource(userID, resourceID uint) error {
	resource, err := s.resourceRepo.GetByIDForUser(resourceID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get resource: %w", err)
	}
	if err := s.resourceRepo.Delete(resource); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

// ListQuestions returns the user's questions in creation order,
// optionally restricted to those attached to at least one topic.
func (s *AttributeService) ListQuestions(userID uint, assignedOnly bool) ([]models.Question, error) {
	questions, err := s.questionRepo.ListByUser(userID, assignedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// UpdateQuestion applies a full or partial update to one of the user's
// questions. On a full update, the name is required; answer and wrong
// answers reset to their defaults when absent.
func (s *AttributeService) UpdateQuestion(userID, questionID uint, req *models.UpdateQuestionRequest, partial bool) (*models.Question, error) {
	question, err := s.questionRepo.GetByIDForUser(questionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, NewValidationError("name", "must not be empty")
		}
		question.Name = *req.Name
	} else if !partial {
		return nil, NewValidationError("name", "required")
	}

	if req.Answer != nil {
		question.Answer = *req.Answer
	} else if !partial {
		question.Answer = ""
	}

	if req.WrongAnswers != nil {
		question.WrongAnswers = *req.WrongAnswers
	} else if !partial {
		question.WrongAnswers = models.StringList{}
	}

	if err := s.questionRepo.Save(question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

// DeleteQuestion removes one of the user's questions
func (s *AttributeService) DeleteQuestion(userID, questionID uint) error {
	question, err := s.questionRepo.GetByIDForUser(questionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get question: %w", err)
	}
	if err := s.questionRepo.Delete(question); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}
