package generator

import (
	"regexp"
	"strings"
)

// The webhook writes its output as markdown-ish free text with bolded labels
// ("**Tema:** ..."). Each field is located by its label (with synonyms) and
// runs until the next recognized label or end of text. Go's regexp has no
// lookahead, so the stop set is resolved by index instead of being embedded
// in the field pattern.

var (
	labelTheme      = regexp.MustCompile(`\*\*Tema( da Questão)?:\*\*`)
	labelObjective  = regexp.MustCompile(`\*\*Objetivo( de Aprendizagem)?:\*\*`)
	labelDifficulty = regexp.MustCompile(`\*\*Nível( de Dificuldade)?:\*\*`)
	labelReference  = regexp.MustCompile(`\*\*Referência( Científica)?:\*\*`)
	labelModel      = regexp.MustCompile(`\*\*Modelo( da Questão)?:\*\*`)
	labelStatement  = regexp.MustCompile(`\*\*Enunciado( Clínico)?( Detalhado)?:\*\*`)

	labelChoices        = regexp.MustCompile(`\*\*Alternativas:\*\*`)
	labelCommandPlural  = regexp.MustCompile(`\*\*Comandos:\*\*`)
	labelCommand        = regexp.MustCompile(`\*\*Comando:\*\*`)
	labelExplanation    = regexp.MustCompile(`\*\*Explicação:\*\*`)
	labelAnswer         = regexp.MustCompile(`(?i)\*\*Resposta( Correta)?:\*\*`)
	labelExpectedAnswer = regexp.MustCompile(`(?i)\*\*Resposta esperada:\*\*`)
	labelComment        = regexp.MustCompile(`(?i)\*\*Comentário( Explicativo)?:\*\*`)
	labelScoreDist      = regexp.MustCompile(`(?i)\*\*Distribuição de pontuação:\*\*`)
)

// Stop patterns are label prefixes: a span ends where the next recognized
// heading begins, whichever of its synonyms was used.
var (
	stopTheme       = regexp.MustCompile(`\*\*Tema`)
	stopObjective   = regexp.MustCompile(`\*\*Objetivo`)
	stopDifficulty  = regexp.MustCompile(`\*\*Nível`)
	stopReference   = regexp.MustCompile(`\*\*Referência`)
	stopModel       = regexp.MustCompile(`\*\*Modelo`)
	stopStatement   = regexp.MustCompile(`\*\*Enunciado`)
	stopChoices     = regexp.MustCompile(`\*\*Alternativas`)
	stopCommands    = regexp.MustCompile(`\*\*Comando`)
	stopExplanation = regexp.MustCompile(`\*\*Explicação`)
	stopAnswer      = regexp.MustCompile(`(?i)\*\*Resposta`)
	stopComment     = regexp.MustCompile(`(?i)\*\*Comentário`)
	stopScoreDist   = regexp.MustCompile(`(?i)\*\*Distribuição`)
)

// span is one extracted section with its location in the normalized text,
// kept so the residual-range choice fallback can slice between sections.
type span struct {
	ok        bool
	bodyStart int
	bodyEnd   int
	value     string
}

func findSpan(text string, label *regexp.Regexp, stops []*regexp.Regexp) span {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return span{}
	}
	rest := text[loc[1]:]
	end := len(rest)
	for _, st := range stops {
		if sl := st.FindStringIndex(rest); sl != nil && sl[0] < end {
			end = sl[0]
		}
	}
	return span{
		ok:        true,
		bodyStart: loc[1],
		bodyEnd:   loc[1] + end,
		value:     strings.TrimSpace(rest[:end]),
	}
}

// labelStart returns the index where the label match begins, or the text
// length when absent. Used to bound residual ranges.
func labelStart(text string, label *regexp.Regexp) int {
	if loc := label.FindStringIndex(text); loc != nil {
		return loc[0]
	}
	return len(text)
}

// recognizedStops is the fixed, priority-ordered set of headings; a field's
// span ends at the next heading from this set other than its own.
var recognizedStops = []*regexp.Regexp{
	stopTheme, stopObjective, stopDifficulty, stopReference, stopModel,
	stopStatement, stopChoices, stopCommands, stopExplanation, stopAnswer,
	stopComment, stopScoreDist,
}

func stopsExcluding(own *regexp.Regexp) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(recognizedStops)-1)
	for _, st := range recognizedStops {
		if st != own {
			out = append(out, st)
		}
	}
	return out
}

type fieldSpec struct {
	name  string
	label *regexp.Regexp
	own   *regexp.Regexp
}

var fieldTable = []fieldSpec{
	{"theme", labelTheme, stopTheme},
	{"objective", labelObjective, stopObjective},
	{"difficulty", labelDifficulty, stopDifficulty},
	{"reference", labelReference, stopReference},
	{"model", labelModel, stopModel},
	{"statement", labelStatement, stopStatement},
}

// Sections holds the labeled fields pulled from one normalized response text.
// Created fresh per parse and never mutated after extraction.
type Sections struct {
	fields map[string]span
	text   string
}

// ExtractSections runs the field table over the normalized text. Optional
// fields resolve to the configured defaults; empty theme/statement are the
// caller's problem and are reported as warnings, not errors.
func ExtractSections(text string, opt Options) (Sections, []string) {
	s := Sections{fields: make(map[string]span, len(fieldTable)), text: text}
	for _, f := range fieldTable {
		s.fields[f.name] = findSpan(text, f.label, stopsExcluding(f.own))
	}

	var warnings []string
	if s.Theme() == "" {
		warnings = append(warnings, "theme not found in response")
	}
	if s.Statement() == "" {
		warnings = append(warnings, "clinical statement not found in response")
	}
	if s.get("difficulty") == "" {
		s.fields["difficulty"] = span{ok: true, value: opt.DefaultDifficulty}
	}
	if s.get("model") == "" {
		s.fields["model"] = span{ok: true, value: opt.DefaultModel}
	}
	return s, warnings
}

func (s Sections) get(name string) string { return s.fields[name].value }

func (s Sections) Theme() string             { return s.get("theme") }
func (s Sections) LearningObjective() string { return s.get("objective") }
func (s Sections) Difficulty() string        { return s.get("difficulty") }
func (s Sections) Reference() string         { return s.get("reference") }
func (s Sections) Model() string             { return s.get("model") }
func (s Sections) Statement() string         { return s.get("statement") }

// statementEnd is the index just past the statement section, 0 when the
// statement was not found.
func (s Sections) statementEnd() int {
	sp := s.fields["statement"]
	if !sp.ok {
		return 0
	}
	return sp.bodyEnd
}

// IsMultipleChoice routes on the raw model label, as written by the webhook.
func (s Sections) IsMultipleChoice() bool {
	return strings.Contains(s.Model(), "Múltipla Escolha")
}
