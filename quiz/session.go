package quiz

import (
	"math"
	"math/rand"

	"github.com/yenthanh/chemistry_tutor/models"
)

// DefaultSize is how many questions one quiz session draws from the
// pool when enough are available.
const DefaultSize = 30

// Session is the state of one bounded quiz run over a sampled subset
// of the question bank. All transitions are synchronous and
// deterministic given the sampled question order, so the session can
// be unit tested without any rendering layer.
type Session struct {
	Questions []models.Question
	Index     int
	Score     int
	Selected  int // index of the chosen option, -1 while unanswered
	Answered  bool
	Finished  bool
}

// NewSession samples a quiz from the pool. Chapter 0 means no filter;
// otherwise only questions from that chapter are eligible. The sample
// is a uniform random permutation truncated to min(size, pool). An
// empty pool yields a session that is already finished with a final
// score of 0.
func NewSession(pool []models.Question, chapter, size int) *Session {
	var eligible []models.Question
	for _, q := range pool {
		if chapter == 0 || q.Chapter == chapter {
			eligible = append(eligible, q)
		}
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > size {
		eligible = eligible[:size]
	}

	return &Session{
		Questions: eligible,
		Selected:  -1,
		Finished:  len(eligible) == 0,
	}
}

// Current returns the question under the cursor, or false when the
// session has no current question.
func (s *Session) Current() (models.Question, bool) {
	if s.Finished || s.Index >= len(s.Questions) {
		return models.Question{}, false
	}
	return s.Questions[s.Index], true
}

// SelectOption records the first answer for the current question and
// scores it. Further calls while the question is answered are ignored,
// so the score can move by at most 1 per question.
func (s *Session) SelectOption(i int) {
	q, ok := s.Current()
	if !ok || s.Answered {
		return
	}
	if i < 0 || i >= len(q.Options) {
		return
	}
	s.Selected = i
	s.Answered = true
	if i == q.CorrectAnswer {
		s.Score++
	}
}

// Advance moves to the next question, resetting the selection state.
// On the last question it transitions the session to its terminal
// results state instead.
func (s *Session) Advance() {
	if s.Finished {
		return
	}
	if s.Index < len(s.Questions)-1 {
		s.Index++
		s.Selected = -1
		s.Answered = false
		return
	}
	s.Finished = true
}

// FinalScore is the percentage of correct answers, rounded to the
// nearest integer. A session with no questions scores 0.
func (s *Session) FinalScore() int {
	if len(s.Questions) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Score) / float64(len(s.Questions))))
}
