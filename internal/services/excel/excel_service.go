// Package excel builds spreadsheet exports of a user's study data.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/sinnovah/exam-cram/internal/database/repository"
	"github.com/sinnovah/exam-cram/internal/models"
	"github.com/xuri/excelize/v2"
)

// Service renders a user's topics, tags, resources and questions into
// an xlsx workbook, one sheet per kind.
type Service struct {
	topicRepo    *repository.TopicRepository
	tagRepo      *repository.TagRepository
	resourceRepo *repository.ResourceRepository
	questionRepo *repository.QuestionRepository
}

func NewService(
	topicRepo *repository.TopicRepository,
	tagRepo *repository.TagRepository,
	resourceRepo *repository.ResourceRepository,
	questionRepo *repository.QuestionRepository) *Service {
	return &Service{
		topicRepo:    topicRepo,
		tagRepo:      tagRepo,
		resourceRepo: resourceRepo,
		questionRepo: questionRepo,
	}
}

// ExportUserWorkbook builds the workbook for a user and returns it
// with a timestamped download filename. The caller owns closing the file.
func (s *Service) ExportUserWorkbook(userID uint) (*excelize.File, string, error) {
	topics, err := s.topicRepo.ListByUser(userID, models.TopicFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to get topics: %w", err)
	}
	tags, err := s.tagRepo.ListByUser(userID, false)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get tags: %w", err)
	}
	resources, err := s.resourceRepo.ListByUser(userID, false)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get resources: %w", err)
	}
	questions, err := s.questionRepo.ListByUser(userID, false)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get questions: %w", err)
	}

	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"D9D9D9"},
			Pattern: 1,
		},
	})

	if err := s.writeTopicsSheet(f, headerStyle, topics); err != nil {
		return nil, "", err
	}
	if err := s.writeTagsSheet(f, headerStyle, tags); err != nil {
		return nil, "", err
	}
	if err := s.writeResourcesSheet(f, headerStyle, resources); err != nil {
		return nil, "", err
	}
	if err := s.writeQuestionsSheet(f, headerStyle, questions); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("exam_cram_export_%d.xlsx", time.Now().Unix())
	return f, filename, nil
}

func (s *Service) writeTopicsSheet(f *excelize.File, headerStyle int, topics []models.Topic) error {
	const sheet = "Topics"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{"ID", "Title", "Notes", "Last Modified", "Tags", "Resources", "Questions"}
	if err := writeHeaders(f, sheet, headerStyle, headers); err != nil {
		return err
	}

	for i, topic := range topics {
		row := i + 2
		tagNames := make([]string, len(topic.Tags))
		for j, tag := range topic.Tags {
			tagNames[j] = tag.Name
		}
		resourceNames := make([]string, len(topic.Resources))
		for j, resource := range topic.Resources {
			resourceNames[j] = resource.Name
		}
		questionNames := make([]string, len(topic.Questions))
		for j, question := range topic.Questions {
			questionNames[j] = question.Name
		}

		values := []interface{}{
			topic.ID,
			topic.Title,
			topic.Notes,
			topic.LastModified.Format(time.RFC3339),
			strings.Join(tagNames, ", "),
			strings.Join(resourceNames, ", "),
			strings.Join(questionNames, ", "),
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeTagsSheet(f *excelize.File, headerStyle int, tags []models.Tag) error {
	const sheet = "Tags"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeHeaders(f, sheet, headerStyle, []string{"ID", "Name"}); err != nil {
		return err
	}
	for i, tag := range tags {
		if err := writeRow(f, sheet, i+2, []interface{}{tag.ID, tag.Name}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeResourcesSheet(f *excelize.File, headerStyle int, resources []models.Resource) error {
	const sheet = "Resources"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeHeaders(f, sheet, headerStyle, []string{"ID", "Name", "Link"}); err != nil {
		return err
	}
	for i, resource := range resources {
		if err := writeRow(f, sheet, i+2, []interface{}{resource.ID, resource.Name, resource.Link}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) writeQuestionsSheet(f *excelize.File, headerStyle int, questions []models.Question) error {
	const sheet = "Questions"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	headers := []string{"ID", "Question", "Answer", "Wrong Answers"}
	if err := writeHeaders(f, sheet, headerStyle, headers); err != nil {
		return err
	}
	for i, question := range questions {
		values := []interface{}{
			question.ID,
			question.Name,
			question.Answer,
			strings.Join(question.WrongAnswers, ", "),
		}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, style int, headers []string) error {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
	}
	return nil
}
