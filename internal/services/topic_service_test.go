package services

import (
	"errors"
	"testing"
	"time"

	"github.com/sinnovah/exam-cram/internal/models"
)

func TestCreateTopicRequiresTitle(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	_, err := svc.CreateTopic(user.ID, &models.CreateTopicRequest{Title: "   "})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected validation error, got %v", err)
	}
}

func TestCreateTopicWithNestedSpecs(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	wrong := []string{"heat"}
	topic := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Thermodynamics",
		Notes: "Second law first",
		Tags:  []models.TagSpec{{Name: "physics"}, {Name: "exam"}},
		Resources: []models.ResourceSpec{
			{Name: strPtr("Lecture notes"), Link: strPtr("https://example.com/notes.pdf")},
		},
		Questions: []models.QuestionSpec{
			{Name: strPtr("What is entropy?"), Answer: strPtr("Disorder"), WrongAnswers: &wrong},
		},
	})

	if topic.Title != "Thermodynamics" || topic.Notes != "Second law first" {
		t.Errorf("Unexpected topic fields: %+v", topic)
	}
	if len(topic.Tags) != 2 || len(topic.Resources) != 1 || len(topic.Questions) != 1 {
		t.Errorf("Unexpected collection sizes: %d tags, %d resources, %d questions",
			len(topic.Tags), len(topic.Resources), len(topic.Questions))
	}
	if topic.LastModified.IsZero() {
		t.Error("Expected last_modified to be set on create")
	}
	// Tags come back in name order
	if topic.Tags[0].Name != "exam" || topic.Tags[1].Name != "physics" {
		t.Errorf("Expected tags in name order, got %v", tagNames(topic.Tags))
	}
}

func TestListTopicsNewestFirstAndOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	first := mustCreateTopic(t, svc, alice.ID, &models.CreateTopicRequest{Title: "First"})
	second := mustCreateTopic(t, svc, alice.ID, &models.CreateTopicRequest{Title: "Second"})
	mustCreateTopic(t, svc, bob.ID, &models.CreateTopicRequest{Title: "Bob's"})

	topics, err := svc.ListTopics(alice.ID, models.TopicFilter{})
	if err != nil {
		t.Fatalf("Failed to list topics: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}
	if topics[0].ID != second.ID || topics[1].ID != first.ID {
		t.Errorf("Expected newest first, got ids %d, %d", topics[0].ID, topics[1].ID)
	}
}

func TestListTopicsFilterDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	both := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Carries both",
		Tags:  []models.TagSpec{{Name: "physics"}, {Name: "exam"}},
	})
	one := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Carries one",
		Tags:  []models.TagSpec{{Name: "physics"}},
	})
	mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{Title: "Untagged"})

	var physics, exam models.Tag
	db.Where("user_id = ? AND name = ?", user.ID, "physics").First(&physics)
	db.Where("user_id = ? AND name = ?", user.ID, "exam").First(&exam)

	// A topic matching several filter ids appears once
	topics, err := svc.ListTopics(user.ID, models.TopicFilter{TagIDs: []uint{physics.ID, exam.ID}})
	if err != nil {
		t.Fatalf("Failed to list topics: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(topics))
	}
	if topics[0].ID != one.ID || topics[1].ID != both.ID {
		t.Errorf("Unexpected filter result ids: %d, %d", topics[0].ID, topics[1].ID)
	}
}

func TestListTopicsFilterCombinesKindsWithAnd(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	full := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Carries all three",
		Tags:  []models.TagSpec{{Name: "physics"}},
		Resources: []models.ResourceSpec{
			{Name: strPtr("Notes"), Link: strPtr("https://example.com/notes.pdf")},
		},
		Questions: []models.QuestionSpec{
			{Name: strPtr("What is entropy?")},
		},
	})
	mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Tag only",
		Tags:  []models.TagSpec{{Name: "physics"}},
	})
	mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Resource only",
		Resources: []models.ResourceSpec{
			{Link: strPtr("https://example.com/notes.pdf")},
		},
	})

	var tag models.Tag
	db.Where("user_id = ? AND name = ?", user.ID, "physics").First(&tag)
	var resource models.Resource
	db.Where("user_id = ?", user.ID).First(&resource)
	var question models.Question
	db.Where("user_id = ?", user.ID).First(&question)

	// Each kind alone matches every topic carrying one of its ids
	topics, err := svc.ListTopics(user.ID, models.TopicFilter{ResourceIDs: []uint{resource.ID}})
	if err != nil {
		t.Fatalf("Failed to list by resource: %v", err)
	}
	if len(topics) != 2 {
		t.Errorf("Expected 2 topics for the resource filter, got %d", len(topics))
	}
	topics, err = svc.ListTopics(user.ID, models.TopicFilter{QuestionIDs: []uint{question.ID}})
	if err != nil {
		t.Fatalf("Failed to list by question: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != full.ID {
		t.Errorf("Expected only the full topic for the question filter, got %d", len(topics))
	}

	// Kinds combine with AND: a topic must match every supplied kind
	topics, err = svc.ListTopics(user.ID, models.TopicFilter{
		TagIDs:      []uint{tag.ID},
		ResourceIDs: []uint{resource.ID},
	})
	if err != nil {
		t.Fatalf("Failed to list by tag and resource: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != full.ID {
		t.Errorf("Expected only the topic carrying both, got %d topics", len(topics))
	}

	topics, err = svc.ListTopics(user.ID, models.TopicFilter{
		TagIDs:      []uint{tag.ID},
		ResourceIDs: []uint{resource.ID},
		QuestionIDs: []uint{question.ID},
	})
	if err != nil {
		t.Fatalf("Failed to list by all three kinds: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != full.ID {
		t.Errorf("Expected only the topic carrying all three, got %d topics", len(topics))
	}

	// An id the topic does not carry excludes it even when other kinds match
	topics, err = svc.ListTopics(user.ID, models.TopicFilter{
		TagIDs:      []uint{tag.ID},
		QuestionIDs: []uint{question.ID + 1000},
	})
	if err != nil {
		t.Fatalf("Failed to list with unmatched question id: %v", err)
	}
	if len(topics) != 0 {
		t.Errorf("Expected no topics when one kind is unmatched, got %d", len(topics))
	}
}

func TestGetTopicForeignOwnerBehavesLikeMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	topic := mustCreateTopic(t, svc, alice.ID, &models.CreateTopicRequest{Title: "Private"})

	if _, err := svc.GetTopic(bob.ID, topic.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for foreign topic, got %v", err)
	}
	if _, err := svc.UpdateTopic(bob.ID, topic.ID, &models.UpdateTopicRequest{Title: strPtr("Mine now")}, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on foreign update, got %v", err)
	}
	if err := svc.DeleteTopic(bob.ID, topic.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on foreign delete, got %v", err)
	}
}

func TestUpdateTopicPartialReplacesCollection(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	topic := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Thermodynamics",
		Notes: "Keep these notes",
		Tags:  []models.TagSpec{{Name: "physics"}, {Name: "exam"}},
	})

	specs := []models.TagSpec{{Name: "physics"}, {Name: "revision"}}
	updated, err := svc.UpdateTopic(user.ID, topic.ID, &models.UpdateTopicRequest{Tags: &specs}, true)
	if err != nil {
		t.Fatalf("Failed to update topic: %v", err)
	}

	names := tagNames(updated.Tags)
	if len(names) != 2 || !hasName(names, "physics") || !hasName(names, "revision") || hasName(names, "exam") {
		t.Errorf("Expected tags {physics, revision}, got %v", names)
	}
	// Absent keys stay untouched
	if updated.Title != "Thermodynamics" || updated.Notes != "Keep these notes" {
		t.Errorf("Expected scalars untouched, got %+v", updated)
	}
	// Detached records survive
	var count int64
	db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 3 {
		t.Errorf("Expected 3 tag records to survive, got %d", count)
	}
}

func TestUpdateTopicEmptyListDetaches(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	topic := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Thermodynamics",
		Tags:  []models.TagSpec{{Name: "physics"}},
		Resources: []models.ResourceSpec{
			{Name: strPtr("Notes"), Link: strPtr("https://example.com/notes.pdf")},
		},
	})

	empty := []models.TagSpec{}
	updated, err := svc.UpdateTopic(user.ID, topic.ID, &models.UpdateTopicRequest{Tags: &empty}, true)
	if err != nil {
		t.Fatalf("Failed to update topic: %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("Expected tags detached, got %v", tagNames(updated.Tags))
	}
	// Untouched collections stay attached, detached records survive
	if len(updated.Resources) != 1 {
		t.Errorf("Expected resources untouched, got %d", len(updated.Resources))
	}
	var count int64
	db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected detached tag record to survive, got %d", count)
	}
}

func TestUpdateTopicFullResetsAbsentScalars(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	topic := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Thermodynamics",
		Notes: "These notes go away",
	})

	updated, err := svc.UpdateTopic(user.ID, topic.ID, &models.UpdateTopicRequest{Title: strPtr("Renamed")}, false)
	if err != nil {
		t.Fatalf("Failed to update topic: %v", err)
	}
	if updated.Title != "Renamed" || updated.Notes != "" {
		t.Errorf("Expected full update to reset notes, got %+v", updated)
	}

	// Title is mandatory on a full update
	_, err = svc.UpdateTopic(user.ID, topic.ID, &models.UpdateTopicRequest{Notes: strPtr("x")}, false)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected validation error without title, got %v", err)
	}
}

func TestUpdateTopicRefreshesLastModified(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	topic := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Thermodynamics",
		Tags:  []models.TagSpec{{Name: "physics"}},
	})
	before := topic.LastModified
	time.Sleep(10 * time.Millisecond)

	// A collection-only rewrite still counts as a modification
	specs := []models.TagSpec{{Name: "exam"}}
	updated, err := svc.UpdateTopic(user.ID, topic.ID, &models.UpdateTopicRequest{Tags: &specs}, true)
	if err != nil {
		t.Fatalf("Failed to update topic: %v", err)
	}
	if !updated.LastModified.After(before) {
		t.Errorf("Expected last_modified to advance, was %v now %v", before, updated.LastModified)
	}
}

func TestDeleteTopicPreservesAttributes(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTopicService(db)
	user := createTestUser(t, db, "test@example.com")

	topic := mustCreateTopic(t, svc, user.ID, &models.CreateTopicRequest{
		Title: "Thermodynamics",
		Tags:  []models.TagSpec{{Name: "physics"}},
		Questions: []models.QuestionSpec{
			{Name: strPtr("What is entropy?")},
		},
	})

	if err := svc.DeleteTopic(user.ID, topic.ID); err != nil {
		t.Fatalf("Failed to delete topic: %v", err)
	}

	if _, err := svc.GetTopic(user.ID, topic.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected topic gone, got %v", err)
	}
	var tagCount, questionCount int64
	db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&tagCount)
	db.Model(&models.Question{}).Where("user_id = ?", user.ID).Count(&questionCount)
	if tagCount != 1 || questionCount != 1 {
		t.Errorf("Expected attribute records to survive, got %d tags, %d questions", tagCount, questionCount)
	}
}
