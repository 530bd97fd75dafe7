package models

// Question is one multiple-choice record in the question bank.
// CorrectAnswer is an index into Options; the bundled data and the
// generator output contract both carry exactly 4 options.
type Question struct {
	ID            int      `json:"id"`
	Chapter       int      `json:"chapter"`
	Topic         string   `json:"topic"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GeneratedQuestion is what the generator backend returns: a Question
// without an ID or chapter. IDs are assigned by the bank on append.
type GeneratedQuestion struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0,lte=3"`
	Explanation   string   `json:"explanation" validate:"required"`
	Topic         string   `json:"topic" validate:"required"`
}
