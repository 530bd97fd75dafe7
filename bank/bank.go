package bank

import (
	_ "embed"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/yenthanh/chemistry_tutor/models"
)

//go:embed questions.json
var bundled []byte

// Store is the process-wide question bank, set by Load() at startup.
var Store *QuestionStore

// QuestionStore holds the in-memory question bank. Bundled records are
// loaded once and never change; generated records are appended with
// freshly assigned sequential IDs. There is no update or delete path.
type QuestionStore struct {
	mu        sync.RWMutex
	questions []models.Question
}

// Load parses the bundled dataset into the package-level Store. Called
// once from main before the server starts listening.
func Load() {
	store, err := NewFromJSON(bundled)
	if err != nil {
		log.Fatalf("Failed to load bundled question bank: %v", err)
	}
	Store = store
	log.Printf("Question bank loaded with %d bundled questions", store.Len())
}

// NewFromJSON builds a store from a JSON array of questions.
func NewFromJSON(data []byte) (*QuestionStore, error) {
	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return New(questions), nil
}

// New builds a store seeded with the given questions. The slice is
// copied; callers keep ownership of theirs.
func New(questions []models.Question) *QuestionStore {
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	return &QuestionStore{questions: qs}
}

func (s *QuestionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions)
}

// All returns a copy of every question in insertion order.
func (s *QuestionStore) All() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// ByChapter returns the questions whose chapter matches. Chapter 0
// means no filter and returns everything.
func (s *QuestionStore) ByChapter(chapter int) []models.Question {
	if chapter == 0 {
		return s.All()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Question
	for _, q := range s.questions {
		if q.Chapter == chapter {
			out = append(out, q)
		}
	}
	return out
}

// Search filters by a case-insensitive substring match over question
// text and topic, optionally restricted to a chapter (0 = all).
func (s *QuestionStore) Search(term string, chapter int) []models.Question {
	term = strings.ToLower(strings.TrimSpace(term))
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Question
	for _, q := range s.questions {
		if chapter != 0 && q.Chapter != chapter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(q.Question), term) &&
			!strings.Contains(strings.ToLower(q.Topic), term) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Append adds generated records to the bank, assigning sequential IDs
// derived from the current length. Generated questions carry no
// chapter, so they keep chapter 0 and only appear in unfiltered pools.
// Returns the appended records with their assigned IDs.
func (s *QuestionStore) Append(generated []models.GeneratedQuestion) []models.Question {
	if len(generated) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]models.Question, 0, len(generated))
	for i, g := range generated {
		added = append(added, models.Question{
			ID:            len(s.questions) + i + 1,
			Topic:         g.Topic,
			Question:      g.Question,
			Options:       g.Options,
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
		})
	}
	s.questions = append(s.questions, added...)
	return added
}
