package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sinnovah/exam-cram/internal/database"
	"github.com/sinnovah/exam-cram/internal/models"
	"github.com/sinnovah/exam-cram/internal/router"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db, router.SetupRouter(db)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, authHeader string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

// registerUser creates an account through the API and returns a Bearer
// header for it.
func registerUser(t *testing.T, r *gin.Engine, email string) string {
	resp := doJSON(t, r, "POST", "/api/user/create", "", models.RegisterRequest{
		Email:    email,
		Password: "ThirtyHairyHippos896",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Failed to register user: %d %s", resp.Code, resp.Body.String())
	}
	var auth models.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &auth); err != nil {
		t.Fatalf("Failed to decode auth response: %v", err)
	}
	return "Bearer " + auth.AccessToken
}

func TestRegisterAndMe(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "GET", "/api/user/me", header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /me, got %d: %s", resp.Code, resp.Body.String())
	}
	var user models.UserResponse
	json.Unmarshal(resp.Body.Bytes(), &user)
	if user.Email != "test@example.com" {
		t.Errorf("Unexpected profile: %+v", user)
	}
	// The password hash never leaks
	if strings.Contains(resp.Body.String(), "password") {
		t.Errorf("Profile response leaks password material: %s", resp.Body.String())
	}
}

func TestMeRequiresAuth(t *testing.T) {
	_, r := setupTestServer(t)

	resp := doJSON(t, r, "GET", "/api/user/me", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", resp.Code)
	}
	resp = doJSON(t, r, "GET", "/api/user/me", "Bearer garbage", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with a bad token, got %d", resp.Code)
	}
}

func TestTokenInvalidCredentials(t *testing.T) {
	_, r := setupTestServer(t)
	registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/user/token", "", models.TokenRequest{
		Email:    "test@example.com",
		Password: "WrongPassword123",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad credentials, got %d", resp.Code)
	}
}

func TestUpdateMeRejectsUnknownFields(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "PATCH", "/api/user/me", header, map[string]interface{}{
		"is_staff": true,
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown field, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLogoutEverywhereInvalidatesAccessToken(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/user/logout", header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 from logout, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, r, "GET", "/api/user/me", header, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after global logout, got %d", resp.Code)
	}
}

func TestCreateAndGetTopic(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"notes": "Second law first",
		"tags":  []map[string]string{{"name": "physics"}},
		"questions": []map[string]interface{}{
			{"name": "What is entropy?", "answer": "Disorder", "wrong_answers": []string{"heat"}},
		},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created models.Topic
	json.Unmarshal(resp.Body.Bytes(), &created)
	if len(created.Tags) != 1 || len(created.Questions) != 1 {
		t.Errorf("Unexpected collections in response: %s", resp.Body.String())
	}

	resp = doJSON(t, r, "GET", fmt.Sprintf("/api/topic/topics/%d", created.ID), header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var fetched models.Topic
	json.Unmarshal(resp.Body.Bytes(), &fetched)
	if fetched.Notes != "Second law first" {
		t.Errorf("Expected notes in detail view, got %+v", fetched)
	}
}

func TestCreateTopicRequiresTitleThroughAPI(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	for _, body := range []map[string]interface{}{
		{},
		{"title": "   "},
		{"notes": "no title here"},
	} {
		resp := doJSON(t, r, "POST", "/api/topic/topics", header, body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %v, got %d: %s", body, resp.Code, resp.Body.String())
		}
	}
}

func TestCreateTopicRejectsUnknownField(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"tgas":  []map[string]string{{"name": "physics"}},
	})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for misspelled key, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestListTopicsSummaryOmitsNotes(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"notes": "hidden in listings",
	})

	resp := doJSON(t, r, "GET", "/api/topic/topics", header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "hidden in listings") {
		t.Errorf("List view leaks notes: %s", resp.Body.String())
	}
}

func TestListTopicsFilterQuery(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Tagged",
		"tags":  []map[string]string{{"name": "physics"}},
	})
	doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Untagged",
	})

	resp := doJSON(t, r, "GET", "/api/topic/topics?tags=1", header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var items []models.TopicListItem
	json.Unmarshal(resp.Body.Bytes(), &items)
	if len(items) != 1 || items[0].Title != "Tagged" {
		t.Errorf("Unexpected filter result: %s", resp.Body.String())
	}

	resp = doJSON(t, r, "GET", "/api/topic/topics?tags=physics", header, nil)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a non-numeric filter, got %d", resp.Code)
	}
}

func TestListTopicsFilterCombinesKindQueries(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Carries both",
		"tags":  []map[string]string{{"name": "physics"}},
		"resources": []map[string]interface{}{
			{"name": "Notes", "link": "https://example.com/notes.pdf"},
		},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Failed to create topic: %d %s", resp.Code, resp.Body.String())
	}
	var full models.Topic
	json.Unmarshal(resp.Body.Bytes(), &full)
	tagID := full.Tags[0].ID
	resourceID := full.Resources[0].ID

	doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Tag only",
		"tags":  []map[string]string{{"name": "physics"}},
	})

	// Both kinds supplied: only the topic matching each kind comes back
	resp = doJSON(t, r, "GET", fmt.Sprintf("/api/topic/topics?tags=%d&resources=%d", tagID, resourceID), header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var items []models.TopicListItem
	json.Unmarshal(resp.Body.Bytes(), &items)
	if len(items) != 1 || items[0].Title != "Carries both" {
		t.Errorf("Unexpected combined filter result: %s", resp.Body.String())
	}

	// The tag filter alone matches both topics
	resp = doJSON(t, r, "GET", fmt.Sprintf("/api/topic/topics?tags=%d", tagID), header, nil)
	items = nil
	json.Unmarshal(resp.Body.Bytes(), &items)
	if len(items) != 2 {
		t.Errorf("Expected 2 topics for the tag filter, got %s", resp.Body.String())
	}
}

func TestTopicOwnershipThroughAPI(t *testing.T) {
	_, r := setupTestServer(t)
	aliceHeader := registerUser(t, r, "alice@example.com")
	bobHeader := registerUser(t, r, "bob@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", aliceHeader, map[string]interface{}{
		"title": "Private",
	})
	var created models.Topic
	json.Unmarshal(resp.Body.Bytes(), &created)

	resp = doJSON(t, r, "GET", fmt.Sprintf("/api/topic/topics/%d", created.ID), bobHeader, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for foreign topic, got %d", resp.Code)
	}
	resp = doJSON(t, r, "DELETE", fmt.Sprintf("/api/topic/topics/%d", created.ID), bobHeader, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for foreign delete, got %d", resp.Code)
	}
}

func TestMalformedIDBehavesLikeMissing(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "GET", "/api/topic/topics/not-a-number", header, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a malformed id, got %d", resp.Code)
	}
}

func TestPatchTopicDetachesWithEmptyList(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"tags":  []map[string]string{{"name": "physics"}},
	})
	var created models.Topic
	json.Unmarshal(resp.Body.Bytes(), &created)

	resp = doJSON(t, r, "PATCH", fmt.Sprintf("/api/topic/topics/%d", created.ID), header, map[string]interface{}{
		"tags": []map[string]string{},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var updated models.Topic
	json.Unmarshal(resp.Body.Bytes(), &updated)
	if len(updated.Tags) != 0 || updated.Title != "Thermodynamics" {
		t.Errorf("Unexpected topic after detach: %s", resp.Body.String())
	}

	// The detached record survives and shows up in the tag list
	resp = doJSON(t, r, "GET", "/api/topic/tags", header, nil)
	var tags []models.Tag
	json.Unmarshal(resp.Body.Bytes(), &tags)
	if len(tags) != 1 || tags[0].Name != "physics" {
		t.Errorf("Expected detached tag to survive, got %s", resp.Body.String())
	}
}

func TestTagsAssignedOnlyQuery(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"tags":  []map[string]string{{"name": "physics"}, {"name": "orphan"}},
	})
	var created models.Topic
	json.Unmarshal(resp.Body.Bytes(), &created)

	// Detach "orphan" by rewriting the collection
	doJSON(t, r, "PATCH", fmt.Sprintf("/api/topic/topics/%d", created.ID), header, map[string]interface{}{
		"tags": []map[string]string{{"name": "physics"}},
	})

	resp = doJSON(t, r, "GET", "/api/topic/tags?assigned_only=1", header, nil)
	var tags []models.Tag
	json.Unmarshal(resp.Body.Bytes(), &tags)
	if len(tags) != 1 || tags[0].Name != "physics" {
		t.Errorf("Expected assigned_only=1 to return [physics], got %s", resp.Body.String())
	}
}

func TestUpdateQuestionThroughAPI(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	resp := doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"questions": []map[string]interface{}{
			{"name": "What is entropy?", "answer": "Disorder", "wrong_answers": []string{"heat"}},
		},
	})
	var created models.Topic
	json.Unmarshal(resp.Body.Bytes(), &created)
	questionID := created.Questions[0].ID

	// PATCH keeps absent fields
	resp = doJSON(t, r, "PATCH", fmt.Sprintf("/api/topic/questions/%d", questionID), header, map[string]interface{}{
		"answer": "A measure of disorder",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var question models.Question
	json.Unmarshal(resp.Body.Bytes(), &question)
	if question.Name != "What is entropy?" || len(question.WrongAnswers) != 1 {
		t.Errorf("Unexpected question after patch: %s", resp.Body.String())
	}

	// PUT resets them
	resp = doJSON(t, r, "PUT", fmt.Sprintf("/api/topic/questions/%d", questionID), header, map[string]interface{}{
		"name": "What is entropy?",
	})
	json.Unmarshal(resp.Body.Bytes(), &question)
	if question.Answer != "" || len(question.WrongAnswers) != 0 {
		t.Errorf("Expected full update to reset fields, got %s", resp.Body.String())
	}
}

func TestExportWorkbook(t *testing.T) {
	_, r := setupTestServer(t)
	header := registerUser(t, r, "test@example.com")

	doJSON(t, r, "POST", "/api/topic/topics", header, map[string]interface{}{
		"title": "Thermodynamics",
		"tags":  []map[string]string{{"name": "physics"}},
	})

	resp := doJSON(t, r, "GET", "/api/topic/topics/export", header, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 from export, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Errorf("Unexpected export content type %q", got)
	}
	if !strings.Contains(resp.Header().Get("Content-Disposition"), "attachment") {
		t.Errorf("Expected attachment disposition, got %q", resp.Header().Get("Content-Disposition"))
	}
	if resp.Body.Len() == 0 {
		t.Error("Expected a non-empty workbook body")
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, r := setupTestServer(t)

	resp := doJSON(t, r, "GET", "/api/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Errorf("Expected 200 from health check, got %d", resp.Code)
	}
}
