package generator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/md-ensino/medquest/internal/generator"
)

const cleanMC = "**Tema:** Asma\n**Objetivo:** Avaliar\n**Nível:** Médio\n**Modelo:** Múltipla Escolha\n**Enunciado:** Paciente...\n**Alternativas:** a) X b) Y✅ c) Z\n**Explicação:** Porque Y."

func mustParse(t *testing.T, envelope any) generator.Result {
	t.Helper()
	res, err := generator.NewParser(generator.Options{}).Parse(envelope)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return res
}

func TestParse_MultipleChoice(t *testing.T) {
	res := mustParse(t, cleanMC)
	q := res.Question

	if q.Theme != "Asma" {
		t.Fatalf("theme %q; want Asma", q.Theme)
	}
	if q.LearningObjective != "Avaliar" {
		t.Fatalf("objective %q; want Avaliar", q.LearningObjective)
	}
	if q.Difficulty != "Médio" {
		t.Fatalf("difficulty %q; want Médio", q.Difficulty)
	}
	if q.Model != "Múltipla Escolha" {
		t.Fatalf("model %q; want Múltipla Escolha", q.Model)
	}
	if q.Statement != "Paciente..." {
		t.Fatalf("statement %q; want Paciente...", q.Statement)
	}
	if len(q.Choices) != 3 {
		t.Fatalf("got %d choices; want 3", len(q.Choices))
	}
	for i, want := range []string{"X", "Y", "Z"} {
		if q.Choices[i].Text != want {
			t.Fatalf("choice %d text %q; want %q", i, q.Choices[i].Text, want)
		}
	}
	if !q.Choices[1].IsCorrect {
		t.Fatalf("expected choice 1 to be correct")
	}
	if q.CorrectLetter != "B" {
		t.Fatalf("correct letter %q; want B", q.CorrectLetter)
	}
	if q.Explanation != "Porque Y." {
		t.Fatalf("explanation %q; want Porque Y.", q.Explanation)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestParse_MissingAlternatives(t *testing.T) {
	const text = "**Tema:** Sepse\n**Modelo:** Múltipla Escolha\n**Enunciado:** Paciente em choque.\n**Explicação:** Conduta inicial."
	res := mustParse(t, text)
	q := res.Question

	if len(q.Choices) != 5 {
		t.Fatalf("got %d choices; want 5 placeholders", len(q.Choices))
	}
	if !q.Choices[0].IsCorrect {
		t.Fatalf("expected first placeholder marked correct")
	}
	if q.Choices[0].Text != "Alternativa A (padrão)" {
		t.Fatalf("placeholder text %q", q.Choices[0].Text)
	}
	if q.CorrectLetter != "A" {
		t.Fatalf("correct letter %q; want A", q.CorrectLetter)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected a degradation warning")
	}
}

func TestParse_EssayWithItemizedCommands(t *testing.T) {
	const text = "**Modelo:** Dissertativa\n**Comandos:** A) Descreva X B) Discuta Y\n**Resposta esperada:** HbA1c e glicemia de jejum.\n**Distribuição de pontuação:** 5 pontos por item."
	res := mustParse(t, text)
	q := res.Question

	if len(q.Commands) != 2 {
		t.Fatalf("got %d commands; want 2", len(q.Commands))
	}
	if !strings.HasPrefix(q.Commands[0].Text, "Descreva X") {
		t.Fatalf("command 0 %q; want prefix Descreva X", q.Commands[0].Text)
	}
	if q.Commands[1].Text != "Discuta Y" {
		t.Fatalf("command 1 %q; want Discuta Y", q.Commands[1].Text)
	}
	if q.ExpectedAnswer != "HbA1c e glicemia de jejum." {
		t.Fatalf("expected answer %q", q.ExpectedAnswer)
	}
	if q.ScoreDistribution != "5 pontos por item." {
		t.Fatalf("score distribution %q", q.ScoreDistribution)
	}
	if q.CorrectLetter != "" {
		t.Fatalf("correct letter %q; want empty for essay with dedicated answer label", q.CorrectLetter)
	}
	if len(q.Choices) != 0 {
		t.Fatalf("essay question should carry no choices, got %d", len(q.Choices))
	}
}

func TestParse_EssayCommentOverload(t *testing.T) {
	const text = "**Modelo:** Dissertativa\n**Comando:** Explique a fisiopatologia.\n**Resposta Correta:** Listar os mecanismos.\n**Comentário Explicativo:** Cada mecanismo vale 2 pontos."
	res := mustParse(t, text)
	q := res.Question

	if len(q.Commands) != 1 || q.Commands[0].Text != "Explique a fisiopatologia." {
		t.Fatalf("commands %+v; want single Explique a fisiopatologia.", q.Commands)
	}
	if q.ExpectedAnswer != "Listar os mecanismos." {
		t.Fatalf("expected answer %q", q.ExpectedAnswer)
	}
	// The overloaded answer label doubles as the answer text on this path.
	if q.CorrectLetter != "Listar os mecanismos." {
		t.Fatalf("answer text %q", q.CorrectLetter)
	}
	if q.Explanation != "Cada mecanismo vale 2 pontos." {
		t.Fatalf("explanation %q", q.Explanation)
	}
	// No dedicated distribution block: the comment stands in for it.
	if q.ScoreDistribution != "Cada mecanismo vale 2 pontos." {
		t.Fatalf("score distribution %q", q.ScoreDistribution)
	}
}

func TestParse_EssayFixedPromptFallback(t *testing.T) {
	const text = "**Tema:** IAM\n**Modelo:** Dissertativa\n**Enunciado:** Homem de 60 anos com dor torácica há 2 horas. Qual a conduta mais adequada para este paciente?\n**Resposta esperada:** MONA e ECG seriado."
	res := mustParse(t, text)
	q := res.Question

	if len(q.Commands) != 1 {
		t.Fatalf("got %d commands; want 1", len(q.Commands))
	}
	if q.Commands[0].Text != "Qual a conduta mais adequada para este paciente?" {
		t.Fatalf("command %q; want the closing question lifted from the statement", q.Commands[0].Text)
	}
	if q.ExpectedAnswer != "MONA e ECG seriado." {
		t.Fatalf("expected answer %q", q.ExpectedAnswer)
	}
	for _, w := range res.Warnings {
		if strings.Contains(w, "command") {
			t.Fatalf("unexpected missing-command warning: %v", res.Warnings)
		}
	}
}

func TestParse_EssayUnmarkedCommandBlock(t *testing.T) {
	const text = "**Modelo:** Dissertativa\n**Comandos:** Explique detalhadamente o manejo inicial do paciente.\n**Resposta esperada:** Via aérea, volume e antibiótico precoce."
	res := mustParse(t, text)
	q := res.Question

	if len(q.Commands) != 1 {
		t.Fatalf("got %d commands; want the whole block as one command", len(q.Commands))
	}
	if q.Commands[0].Text != "Explique detalhadamente o manejo inicial do paciente." {
		t.Fatalf("command %q", q.Commands[0].Text)
	}
	if q.ExpectedAnswer != "Via aérea, volume e antibiótico precoce." {
		t.Fatalf("expected answer %q", q.ExpectedAnswer)
	}
}

func TestParse_AnswerInferredFromExplanation(t *testing.T) {
	const text = "**Tema:** Hipertensão\n**Modelo:** Múltipla Escolha\n**Enunciado:** Caso clínico.\n**Alternativas:**\na) Losartana\nb) Enalapril\nc) Captopril\n**Explicação:** A alternativa correta é a B."
	res := mustParse(t, text)
	q := res.Question

	if len(q.Choices) != 3 {
		t.Fatalf("got %d choices; want 3", len(q.Choices))
	}
	if !q.Choices[1].IsCorrect || q.CorrectLetter != "B" {
		t.Fatalf("correct letter %q, correct[1]=%v; want B/true", q.CorrectLetter, q.Choices[1].IsCorrect)
	}
}

func TestParse_ArrayEnvelope(t *testing.T) {
	direct := mustParse(t, cleanMC)
	wrapped := mustParse(t, []any{map[string]any{"output": cleanMC}})

	if wrapped.Question.Theme != direct.Question.Theme {
		t.Fatalf("theme %q; want %q", wrapped.Question.Theme, direct.Question.Theme)
	}
	if wrapped.Question.CorrectLetter != direct.Question.CorrectLetter {
		t.Fatalf("letter %q; want %q", wrapped.Question.CorrectLetter, direct.Question.CorrectLetter)
	}
	if len(wrapped.Question.Choices) != len(direct.Question.Choices) {
		t.Fatalf("choice counts differ: %d vs %d", len(wrapped.Question.Choices), len(direct.Question.Choices))
	}
}

func TestParse_EmptyEnvelopes(t *testing.T) {
	p := generator.NewParser(generator.Options{})
	for _, env := range []any{nil, "", []any{}, map[string]any{}, "   \n  "} {
		if _, err := p.Parse(env); !errors.Is(err, generator.ErrEmptyResponse) {
			t.Fatalf("envelope %#v: expected ErrEmptyResponse, got %v", env, err)
		}
	}
}

func TestParse_DefaultsApplied(t *testing.T) {
	res := mustParse(t, "**Tema:** Choque\n**Enunciado:** Caso.\n**Alternativas:** a) um b) dois")
	if res.Question.Difficulty != "Médio" {
		t.Fatalf("difficulty %q; want default Médio", res.Question.Difficulty)
	}
	if res.Question.Model != "Múltipla Escolha" {
		t.Fatalf("model %q; want default Múltipla Escolha", res.Question.Model)
	}

	p := generator.NewParser(generator.Options{DefaultDifficulty: "Fácil", DefaultModel: "Dissertativa"})
	custom, err := p.Parse("**Tema:** Choque\n**Comando:** Explique o manejo.")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if custom.Question.Difficulty != "Fácil" {
		t.Fatalf("difficulty %q; want Fácil", custom.Question.Difficulty)
	}
	if custom.Question.Model != "Dissertativa" {
		t.Fatalf("model %q; want Dissertativa", custom.Question.Model)
	}
	if len(custom.Question.Commands) != 1 {
		t.Fatalf("expected the essay path under the configured default model")
	}
}
