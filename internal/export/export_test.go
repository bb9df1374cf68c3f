package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/md-ensino/medquest/internal/export"
	"github.com/md-ensino/medquest/internal/question"
)

func sampleMC() question.Question {
	return question.Question{
		Theme:             "Asma",
		LearningObjective: "Avaliar o manejo da crise",
		Difficulty:        "Médio",
		Model:             "Múltipla Escolha",
		Statement:         "Paciente de 24 anos com dispneia.",
		Choices: []question.Choice{
			{Text: "Salbutamol"},
			{Text: "Corticoide oral", IsCorrect: true},
			{Text: "Antibiótico"},
		},
		CorrectLetter: "B",
		Explanation:   "O corticoide reduz recidiva.",
	}
}

func sampleEssay() question.Question {
	return question.Question{
		Theme:      "Diabetes",
		Difficulty: "Difícil",
		Model:      "Dissertativa",
		Statement:  "Paciente com polidipsia.",
		Commands: []question.Command{
			{Text: "Descreva a fisiopatologia"},
			{Text: "Cite dois exames confirmatórios"},
		},
		ExpectedAnswer:    "HbA1c e glicemia de jejum",
		ScoreDistribution: "50%/50%",
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	opt := export.Options{Professor: "Dr. Silva", Institution: "FMUSP", Discipline: "Clínica Médica"}
	if err := export.WriteCSV(&buf, []question.Question{sampleMC(), sampleEssay()}, opt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want header + 2", len(rows))
	}
	header := rows[0]
	if len(header) != 16 || header[0] != "Professor" || header[15] != "Comentário Explicativo" {
		t.Fatalf("unexpected header: %v", header)
	}

	mc := rows[1]
	if mc[0] != "Dr. Silva" || mc[1] != "FMUSP" || mc[2] != "Clínica Médica" {
		t.Fatalf("identity columns: %v", mc[:3])
	}
	if mc[3] != "Asma" || mc[10] != "Corticoide oral" || mc[14] != "B" {
		t.Fatalf("question columns: tema=%q altB=%q resposta=%q", mc[3], mc[10], mc[14])
	}

	essay := rows[2]
	if essay[8] != "Descreva a fisiopatologia\nCite dois exames confirmatórios" {
		t.Fatalf("command column %q", essay[8])
	}
	if essay[9] != "" || essay[14] != "" {
		t.Fatalf("essay row should leave choice columns empty: %v", essay)
	}
}

func TestWriteCSV_DefaultIdentity(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, []question.Question{sampleMC()}, export.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	row := rows[1]
	if row[0] != "Professor" || row[1] != "Faculdade de Medicina" || row[2] != "Medicina" {
		t.Fatalf("default identity columns: %v", row[:3])
	}
}

func TestWriteSocrativeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteSocrativeCSV(&buf, []question.Question{sampleMC(), sampleEssay()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows; want header + 2", len(rows))
	}
	if rows[0][0] != "Type" || rows[0][7] != "Correct Answer" {
		t.Fatalf("unexpected header: %v", rows[0])
	}

	mc := rows[1]
	if mc[0] != "Multiple Choice" || mc[7] != "B" {
		t.Fatalf("multiple choice row: type=%q answer=%q", mc[0], mc[7])
	}
	if mc[3] != "Corticoide oral" {
		t.Fatalf("answer B column %q", mc[3])
	}

	essay := rows[2]
	if essay[0] != "Short Answer" {
		t.Fatalf("essay type %q; want Short Answer", essay[0])
	}
	if !strings.Contains(essay[1], "Cite dois exames confirmatórios") {
		t.Fatalf("essay prompt should carry the commands: %q", essay[1])
	}
	if essay[7] != "" {
		t.Fatalf("essay row should have no correct answer, got %q", essay[7])
	}
}

func TestWriteWordHTML(t *testing.T) {
	var buf bytes.Buffer
	opt := export.Options{IncludeHeader: true, IncludeFooter: true, IncludeWatermark: true, Professor: "Dr. Silva"}
	if err := export.WriteWordHTML(&buf, []question.Question{sampleMC(), sampleEssay()}, opt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := buf.String()

	for _, want := range []string{
		"Questão 1", "Questão 2",
		"MD ACADÊMICO",
		"MD Ensino - Todos os direitos reservados",
		"Dr. Silva",
		`class="alternativa alternativa-correta">B) Corticoide oral`,
		"Resposta Esperada:</strong> HbA1c e glicemia de jejum",
		"Distribuição de Pontuação:</strong> 50%/50%",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q", want)
		}
	}
	if strings.Contains(doc, "window.print") {
		t.Fatalf("word document should not carry the print button")
	}
}

func TestWritePrintHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WritePrintHTML(&buf, []question.Question{sampleMC()}, export.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := buf.String()
	if !strings.Contains(doc, "window.print()") {
		t.Fatalf("print document missing print button")
	}
	if !strings.Contains(doc, "@media print") {
		t.Fatalf("print document missing print media rules")
	}
	if strings.Contains(doc, "MD ACADÊMICO") {
		t.Fatalf("watermark rendered without being requested")
	}
	if strings.Contains(doc, `class="footer"`) {
		t.Fatalf("footer rendered without being requested")
	}
}
