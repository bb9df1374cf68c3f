// Package generator turns the free-text output of the question-generation
// webhook into structured questions. The webhook's text is loosely templated
// markdown with bolded section labels; extraction is tolerant by design:
// optional sections default, missing alternatives degrade to labeled
// placeholders, and only an empty response fails the parse outright.
package generator

import (
	"strings"

	"github.com/md-ensino/medquest/internal/question"
)

// Options carries the per-deployment defaults applied when the webhook omits
// a section.
type Options struct {
	DefaultDifficulty string
	DefaultModel      string
}

func (o Options) withDefaults() Options {
	if o.DefaultDifficulty == "" {
		o.DefaultDifficulty = question.DifficultyMedium
	}
	if o.DefaultModel == "" {
		o.DefaultModel = question.ModelMultipleChoice
	}
	return o
}

// Result is a parsed question plus the soft-failure trail. Warnings flag
// degraded extractions (placeholder choices, guessed answer key, missing
// sections) so callers can route low-confidence questions to manual review.
type Result struct {
	Question question.Question
	Warnings []string
}

type Parser struct {
	opt Options
}

func NewParser(opt Options) *Parser {
	return &Parser{opt: opt.withDefaults()}
}

// Parse reduces a webhook envelope of arbitrary shape to one structured
// question. Pure and allocation-local: safe to call from concurrent requests.
func (p *Parser) Parse(envelope any) (Result, error) {
	raw, err := Unwrap(envelope)
	if err != nil {
		return Result{}, err
	}
	text := Normalize(raw)
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyResponse
	}

	secs, warnings := ExtractSections(text, p.opt)

	q := question.Question{
		Theme:             secs.Theme(),
		LearningObjective: secs.LearningObjective(),
		Difficulty:        secs.Difficulty(),
		Model:             secs.Model(),
		Statement:         secs.Statement(),
		Reference:         secs.Reference(),
	}

	if secs.IsMultipleChoice() {
		explanation := findSpan(text, labelExplanation, nil).value
		if explanation == "" {
			explanation = findSpan(text, labelComment, nil).value
		}
		choices, letter, warns := ExtractChoices(text, secs, explanation)
		q.Choices = choices
		q.CorrectLetter = letter
		q.Explanation = explanation
		warnings = append(warnings, warns...)
	} else {
		parts, warns := ExtractEssay(text)
		q.Commands = parts.Commands
		q.ExpectedAnswer = parts.ExpectedAnswer
		q.ScoreDistribution = parts.ScoreDistribution
		q.Explanation = parts.Explanation
		q.CorrectLetter = parts.AnswerText
		warnings = append(warnings, warns...)
	}

	return Result{Question: q, Warnings: warnings}, nil
}
