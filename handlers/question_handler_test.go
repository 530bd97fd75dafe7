package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yenthanh/chemistry_tutor/bank"
	"github.com/yenthanh/chemistry_tutor/models"
	"github.com/yenthanh/chemistry_tutor/services"
)

func newQuestionApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/questions", ListQuestions)
	app.Post("/api/questions/generate", GenerateQuestions)
	return app
}

func seedBank(t *testing.T) {
	t.Helper()
	bank.Store = bank.New([]models.Question{
		{ID: 1, Chapter: 1, Topic: "Atomic Structure", Question: "What is a proton?", Options: []string{"a", "b", "c", "d"}},
		{ID: 2, Chapter: 1, Topic: "Atomic Structure", Question: "Define isotope", Options: []string{"a", "b", "c", "d"}},
		{ID: 3, Chapter: 2, Topic: "Stoichiometry", Question: "Define the mole", Options: []string{"a", "b", "c", "d"}},
		{ID: 4, Chapter: 3, Topic: "Bonding", Question: "What is a dative bond?", Options: []string{"a", "b", "c", "d"}},
	})
}

type listResponse struct {
	Total     int               `json:"total"`
	Questions []models.Question `json:"questions"`
}

func TestListQuestions(t *testing.T) {
	seedBank(t)
	app := newQuestionApp()

	tests := []struct {
		name      string
		url       string
		wantTotal int
		wantLen   int
	}{
		{"all", "/api/questions", 4, 4},
		{"chapter filter", "/api/questions?chapter=1", 2, 2},
		{"search", "/api/questions?search=mole", 1, 1},
		{"search with chapter", "/api/questions?search=define&chapter=2", 1, 1},
		{"limit", "/api/questions?limit=2", 4, 2},
		{"offset", "/api/questions?offset=3", 4, 1},
		{"offset past end", "/api/questions?offset=10", 4, 0},
		{"no match", "/api/questions?search=entropy", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.url, nil))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			var got listResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", got.Total, tt.wantTotal)
			}
			if len(got.Questions) != tt.wantLen {
				t.Errorf("len(questions) = %d, want %d", len(got.Questions), tt.wantLen)
			}
		})
	}
}

func TestListQuestionsRejectsNegativeParams(t *testing.T) {
	seedBank(t)
	app := newQuestionApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/api/questions?limit=-1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func setGeminiService(t *testing.T, baseURL, apiKey string) {
	t.Helper()
	services.InitGeminiService()
	svc := services.GetGeminiService()
	svc.Client = &http.Client{Timeout: time.Second}
	svc.BaseURL = baseURL
	svc.APIKey = apiKey
}

func TestGenerateQuestionsEndpoint(t *testing.T) {
	seedBank(t)

	generated := `[{"question":"New q","options":["a","b","c","d"],"correctAnswer":1,"explanation":"e","topic":"Periodicity"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": generated}}}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()
	setGeminiService(t, srv.URL, "test-key")

	app := newQuestionApp()
	req := httptest.NewRequest("POST", "/api/questions/generate", strings.NewReader(`{"count":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		Added     int               `json:"added"`
		Questions []models.Question `json:"questions"`
		Total     int               `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Added != 1 || got.Total != 5 {
		t.Fatalf("added=%d total=%d, want 1/5", got.Added, got.Total)
	}
	if got.Questions[0].ID != 5 {
		t.Fatalf("new question ID = %d, want 5", got.Questions[0].ID)
	}
}

func TestGenerateQuestionsGeneratorDown(t *testing.T) {
	seedBank(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	setGeminiService(t, srv.URL, "test-key")

	app := newQuestionApp()
	// Empty body: defaults to 10 requested questions.
	resp, err := app.Test(httptest.NewRequest("POST", "/api/questions/generate", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"added":0`) {
		t.Fatalf("generator failure should report zero added: %s", body)
	}
	if bank.Store.Len() != 4 {
		t.Fatalf("bank grew to %d on generator failure", bank.Store.Len())
	}
}

func TestGenerateQuestionsRejectsBadCount(t *testing.T) {
	seedBank(t)
	setGeminiService(t, "http://127.0.0.1:0", "test-key")
	app := newQuestionApp()

	for _, body := range []string{`{"count":-3}`, `{"count":21}`, `not json`} {
		req := httptest.NewRequest("POST", "/api/questions/generate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}
