package services

import (
	"testing"

	"github.com/sinnovah/exam-cram/internal/database"
	"github.com/sinnovah/exam-cram/internal/database/repository"
	"github.com/sinnovah/exam-cram/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func newTestTopicService(db *gorm.DB) *TopicService {
	return NewTopicService(db, repository.NewTopicRepository(db))
}

func newTestAttributeService(db *gorm.DB) *AttributeService {
	return NewAttributeService(
		repository.NewTagRepository(db),
		repository.NewResourceRepository(db),
		repository.NewQuestionRepository(db),
	)
}

func strPtr(s string) *string {
	return &s
}

func mustCreateTopic(t *testing.T, svc *TopicService, userID uint, req *models.CreateTopicRequest) *models.Topic {
	topic, err := svc.CreateTopic(userID, req)
	if err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}
	return topic
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	return names
}

func hasName(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
