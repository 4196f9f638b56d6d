package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/repositories/memory"
	"github.com/EduFlow-2025/learning-service/internal/services"
	"github.com/EduFlow-2025/learning-service/internal/utils"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slogLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	logger := utils.NewSlogLogger(slogLogger)

	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret: "router-test-secret",
		Expiry: time.Hour,
		Issuer: "learning-service-test",
	})

	serviceManager := services.NewServiceManager(memory.New(), tokens, nil, slogLogger, validator.New())
	if err := serviceManager.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(serviceManager, tokens, logger).SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func registerUser(t *testing.T, router *gin.Engine, name, email, role string) (token string, userID string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decode(t, w, &resp)
	return resp.Token, resp.User.ID
}

// Full flow: an instructor publishes a course, a student enrolls and sees
// it in their enrollment list.
func TestEnrollmentFlow(t *testing.T) {
	router := newTestRouter(t)

	anaToken, _ := registerUser(t, router, "Ana", "ana@example.com", "instructor")

	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", anaToken, gin.H{
		"title":       "CS101",
		"description": "Intro to computing",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create course: status = %d, body = %s", w.Code, w.Body.String())
	}
	var course struct {
		ID string `json:"id"`
	}
	decode(t, w, &course)

	boToken, _ := registerUser(t, router, "Bo", "bo@example.com", "student")

	w = doJSON(t, router, http.MethodPost, "/api/v1/enrollments", boToken, gin.H{
		"course_id": course.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("enroll: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/enrollments/me", boToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list enrollments: status = %d", w.Code)
	}
	var enrollments []struct {
		Course struct {
			Title string `json:"title"`
		} `json:"course"`
	}
	decode(t, w, &enrollments)
	if len(enrollments) != 1 || enrollments[0].Course.Title != "CS101" {
		t.Errorf("enrollments = %s", w.Body.String())
	}
}

func TestStatusCodes(t *testing.T) {
	router := newTestRouter(t)
	anaToken, _ := registerUser(t, router, "Ana", "ana@example.com", "instructor")
	boToken, _ := registerUser(t, router, "Bo", "bo@example.com", "student")

	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", anaToken, gin.H{
		"title":       "CS101",
		"description": "Intro to computing",
	})
	var course struct {
		ID string `json:"id"`
	}
	decode(t, w, &course)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"missing token beats bad payload", http.MethodPost, "/api/v1/courses", "", gin.H{}, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/auth/me", "not-a-token", nil, http.StatusUnauthorized},
		{"student cannot create course", http.MethodPost, "/api/v1/courses", boToken, gin.H{"title": "X", "description": "Y"}, http.StatusForbidden},
		{"validation failure", http.MethodPost, "/api/v1/courses", anaToken, gin.H{"title": "", "description": ""}, http.StatusBadRequest},
		{"missing course", http.MethodGet, "/api/v1/courses/does-not-exist", "", nil, http.StatusNotFound},
		{"duplicate registration", http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Ana", "email": "ana@example.com", "password": "secret123"}, http.StatusConflict},
		{"wrong password", http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "ana@example.com", "password": "wrong"}, http.StatusUnauthorized},
		{"foreign instructor update", http.MethodPut, "/api/v1/courses/" + course.ID, boToken, gin.H{"title": "X", "description": "Y"}, http.StatusForbidden},
		{"public catalog", http.MethodGet, "/api/v1/courses", "", nil, http.StatusOK},
		{"health", http.MethodGet, "/health", "", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, tt.method, tt.path, tt.token, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestProfileRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	boToken, userID := registerUser(t, router, "Bo", "bo@example.com", "student")

	w := doJSON(t, router, http.MethodPut, "/api/v1/profiles/me", boToken, gin.H{
		"bio":        "Backend engineer",
		"avatar_url": "https://cdn.example.com/bo.png",
		"skills":     []string{"Go", "SQL"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update profile: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/profiles/me", boToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get profile: status = %d, body = %s", w.Code, w.Body.String())
	}
	var profile struct {
		UserID    string   `json:"user_id"`
		Bio       string   `json:"bio"`
		AvatarURL string   `json:"avatar_url"`
		Skills    []string `json:"skills"`
	}
	decode(t, w, &profile)
	if profile.UserID != userID || profile.Bio != "Backend engineer" {
		t.Errorf("profile = %s", w.Body.String())
	}
	if len(profile.Skills) != 2 || profile.Skills[0] != "Go" {
		t.Errorf("skills = %v", profile.Skills)
	}

	if w := doJSON(t, router, http.MethodGet, "/api/v1/profiles/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous profile read: status = %d, want 401", w.Code)
	}
}

// A 400 payload names the violated field in its message, not just the rule.
func TestValidationMessageNamesField(t *testing.T) {
	router := newTestRouter(t)
	anaToken, _ := registerUser(t, router, "Ana", "ana@example.com", "instructor")

	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", anaToken, gin.H{"description": "no title"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	if !strings.Contains(resp.Message, "title") {
		t.Errorf("message = %q, want the field name included", resp.Message)
	}
}

func TestCourseDeleteCascade(t *testing.T) {
	router := newTestRouter(t)
	anaToken, _ := registerUser(t, router, "Ana", "ana@example.com", "instructor")

	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", anaToken, gin.H{
		"title":       "CS101",
		"description": "Intro to computing",
	})
	var course struct {
		ID string `json:"id"`
	}
	decode(t, w, &course)

	for i, title := range []string{"Week 1", "Week 2"} {
		w = doJSON(t, router, http.MethodPost, "/api/v1/courses/"+course.ID+"/lessons", anaToken, gin.H{
			"title":   title,
			"content": "material",
			"order":   i + 1,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create lesson: status = %d, body = %s", w.Code, w.Body.String())
		}
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/courses/"+course.ID, anaToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete course: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted course read: status = %d, want 404", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID+"/lessons", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted course lessons: status = %d, want 404", w.Code)
	}
}

func TestRosterExportDownload(t *testing.T) {
	router := newTestRouter(t)
	anaToken, _ := registerUser(t, router, "Ana", "ana@example.com", "instructor")
	boToken, _ := registerUser(t, router, "Bo", "bo@example.com", "student")

	w := doJSON(t, router, http.MethodPost, "/api/v1/courses", anaToken, gin.H{
		"title":       "CS101",
		"description": "Intro to computing",
	})
	var course struct {
		ID string `json:"id"`
	}
	decode(t, w, &course)

	if w := doJSON(t, router, http.MethodPost, "/api/v1/enrollments", boToken, gin.H{"course_id": course.ID}); w.Code != http.StatusCreated {
		t.Fatalf("enroll: status = %d", w.Code)
	}

	t.Run("roster json", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID+"/roster", anaToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("roster: status = %d, body = %s", w.Code, w.Body.String())
		}
		var roster struct {
			Total    int64 `json:"total"`
			Students []struct {
				Email string `json:"email"`
			} `json:"students"`
		}
		decode(t, w, &roster)
		if roster.Total != 1 || roster.Students[0].Email != "bo@example.com" {
			t.Errorf("roster = %s", w.Body.String())
		}
	})

	t.Run("student is denied", func(t *testing.T) {
		if w := doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID+"/roster", boToken, nil); w.Code != http.StatusForbidden {
			t.Errorf("roster as student: status = %d, want 403", w.Code)
		}
	})

	t.Run("export headers", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/courses/"+course.ID+"/roster/export", anaToken, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("export: status = %d", w.Code)
		}
		if !strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx") {
			t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
		}
		if w.Body.Len() == 0 {
			t.Error("export body is empty")
		}
	})
}
