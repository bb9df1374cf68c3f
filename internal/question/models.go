package question

import "strings"

// Difficulty and model vocabularies follow the labels the generation webhook
// emits; they are stored and exported verbatim.
const (
	DifficultyEasy   = "Fácil"
	DifficultyMedium = "Médio"
	DifficultyHard   = "Difícil"

	ModelMultipleChoice = "Múltipla Escolha"
	ModelEssay          = "Dissertativa"
)

type Choice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Command struct {
	Text string `json:"text"`
}

type Question struct {
	ID                string `json:"id"`
	Theme             string `json:"theme"`
	LearningObjective string `json:"learning_objective"`
	Difficulty        string `json:"difficulty"`
	Model             string `json:"model"`
	Statement         string `json:"statement"`
	Reference         string `json:"reference,omitempty"`

	// Multiple choice only. Choice order is positional: index 0 is
	// alternative A, index 4 is alternative E.
	Choices       []Choice `json:"choices,omitempty"`
	CorrectLetter string   `json:"correct_letter,omitempty"`

	// Essay only.
	Commands          []Command `json:"commands,omitempty"`
	ExpectedAnswer    string    `json:"expected_answer,omitempty"`
	ScoreDistribution string    `json:"score_distribution,omitempty"`

	Explanation string `json:"explanation,omitempty"`

	OwnerID   string `json:"owner_id,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// IsMultipleChoice reports whether the question routes through the
// multiple-choice path. The webhook's raw model label is trusted verbatim, so
// this is a substring test rather than an enum comparison.
func (q Question) IsMultipleChoice() bool {
	return strings.Contains(q.Model, ModelMultipleChoice)
}

// Letter maps a choice position to its display label: 0→A … 4→E.
func Letter(pos int) string {
	return string(rune('A' + pos))
}
