// Package export serializes assembled questions for the formats educators
// actually load elsewhere: a general CSV, the Socrative import CSV, and an
// HTML document usable as a Word file or a print-to-PDF page.
package export

import (
	"encoding/csv"
	"io"

	"github.com/md-ensino/medquest/internal/question"
)

// Options controls optional document furniture. The identity fields fill the
// header columns/blocks; empty values fall back to generic labels.
type Options struct {
	IncludeHeader    bool
	IncludeFooter    bool
	IncludeWatermark bool

	Professor   string
	Institution string
	Discipline  string
}

func (o Options) withDefaults() Options {
	if o.Professor == "" {
		o.Professor = "Professor"
	}
	if o.Institution == "" {
		o.Institution = "Faculdade de Medicina"
	}
	if o.Discipline == "" {
		o.Discipline = "Medicina"
	}
	return o
}

func choiceText(q question.Question, i int) string {
	if i < len(q.Choices) {
		return q.Choices[i].Text
	}
	return ""
}

func commandText(q question.Question) string {
	out := ""
	for i, c := range q.Commands {
		if i > 0 {
			out += "\n"
		}
		out += c.Text
	}
	return out
}

// WriteCSV writes the general gradebook layout, one row per question.
func WriteCSV(w io.Writer, qs []question.Question, opt Options) error {
	opt = opt.withDefaults()
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Professor", "Faculdade", "Disciplina", "Tema", "Objetivo de Aprendizagem",
		"Nível de Dificuldade", "Modelo da Questão", "Enunciado", "Comando",
		"Alternativa A", "Alternativa B", "Alternativa C", "Alternativa D", "Alternativa E",
		"Resposta Correta", "Comentário Explicativo",
	}); err != nil {
		return err
	}
	for _, q := range qs {
		row := []string{
			opt.Professor, opt.Institution, opt.Discipline,
			q.Theme, q.LearningObjective, q.Difficulty, q.Model,
			q.Statement, commandText(q),
			choiceText(q, 0), choiceText(q, 1), choiceText(q, 2), choiceText(q, 3), choiceText(q, 4),
			q.CorrectLetter, q.Explanation,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSocrativeCSV writes the layout Socrative's quiz import expects.
// Essay questions export as Short Answer rows with empty answer columns.
func WriteSocrativeCSV(w io.Writer, qs []question.Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Type", "Question", "Answer A", "Answer B", "Answer C", "Answer D", "Answer E",
		"Correct Answer", "Explanation",
	}); err != nil {
		return err
	}
	for _, q := range qs {
		prompt := q.Statement
		if cmd := commandText(q); cmd != "" {
			prompt += "\n" + cmd
		}
		var row []string
		if q.IsMultipleChoice() {
			row = []string{
				"Multiple Choice", prompt,
				choiceText(q, 0), choiceText(q, 1), choiceText(q, 2), choiceText(q, 3), choiceText(q, 4),
				q.CorrectLetter, q.Explanation,
			}
		} else {
			row = []string{"Short Answer", prompt, "", "", "", "", "", "", q.Explanation}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
