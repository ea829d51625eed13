package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"recruitment-buddy/internal/domain"
)

func TestCatalog_Majors(t *testing.T) {
	app := newTestApp(t)
	_, cookies := app.signup(t, "ada@example.com")

	rec := performRequest(app.router, http.MethodGet, "/api/majors", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var majors []domain.MajorProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &majors); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(majors) != len(testMajors()) || majors[0].ID != "cs" {
		t.Fatalf("unexpected majors %+v", majors)
	}

	app.majors.err = errors.New("db down")
	rec = performRequest(app.router, http.MethodGet, "/api/majors", nil, cookies...)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCatalog_MajorsRequiresLogin(t *testing.T) {
	app := newTestApp(t)

	rec := performRequest(app.router, http.MethodGet, "/api/majors", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d", rec.Code)
	}
}

func TestCatalog_SimilarMajors(t *testing.T) {
	app := newTestApp(t)
	_, cookies := app.signup(t, "ada@example.com")

	rec := performRequest(app.router, http.MethodGet, "/api/majors/cs/similar?limit=2", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var similar []domain.MajorProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &similar); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(similar) != 2 {
		t.Fatalf("expected 2 similar majors, got %d", len(similar))
	}
	for _, m := range similar {
		if m.ID == "cs" {
			t.Fatalf("similar majors must exclude the target")
		}
	}

	rec = performRequest(app.router, http.MethodGet, "/api/majors/nope/similar", nil, cookies...)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = performRequest(app.router, http.MethodGet, "/api/majors/cs/similar?limit=0", nil, cookies...)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCatalog_PersonalityTypes(t *testing.T) {
	app := newTestApp(t)
	_, cookies := app.signup(t, "ada@example.com")

	performRequest(app.router, http.MethodPost, "/submit_questionnaire", map[string]any{
		"scores": map[string]any{
			"analytical_score": 9, "creative_score": 9, "social_score": 9, "technical_score": 9,
		},
	}, cookies...)

	rec := performRequest(app.router, http.MethodGet, "/api/personality-types", nil, cookies...)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var types []domain.PersonalityTypeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(types) != 1 || types[0].Code != "ENTP" {
		t.Fatalf("expected the submitted type registered, got %+v", types)
	}
}

func TestCatalog_ResponseMatchesNotFound(t *testing.T) {
	app := newTestApp(t)
	_, cookies := app.signup(t, "ada@example.com")

	rec := performRequest(app.router, http.MethodGet, "/api/responses/missing/matches", nil, cookies...)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
