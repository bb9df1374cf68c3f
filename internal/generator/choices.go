package generator

import (
	"regexp"
	"strings"

	"github.com/md-ensino/medquest/internal/question"
)

const correctGlyph = "✅"

// placeholderChoices is the degraded output when no alternatives can be
// located at all: five clearly fake entries, first one marked correct, so the
// caller always gets a structurally complete question and can spot the
// failure by the placeholder text.
func placeholderChoices() []question.Choice {
	out := make([]question.Choice, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, question.Choice{
			Text:      "Alternativa " + question.Letter(i) + " (padrão)",
			IsCorrect: i == 0,
		})
	}
	return out
}

var (
	// Free-standing lettered line, e.g. "\na) furosemida ...".
	looseChoicesStart = regexp.MustCompile(`\s[a-e]\)`)
	// Inline heading after the loose block that ends it.
	nextHeading = regexp.MustCompile(`\n\s*\*\*`)
	// Emergency: three lettered segments anywhere in the text.
	emergencyChoices = regexp.MustCompile(`(?s)[a-e]\).*?[a-e]\).*?[a-e]\)`)
)

// extractChoicesBlock locates the raw alternatives text. Strategies, first
// hit wins: the labeled block, a loose lettered line, the residual span
// between statement and explanation/answer/comment, and finally an emergency
// scan for three lettered segments. Empty return means nothing matched.
func extractChoicesBlock(text string, secs Sections) string {
	if sp := findSpan(text, labelChoices, []*regexp.Regexp{stopExplanation, stopAnswer, stopComment}); sp.ok {
		return sp.value
	}

	if loc := looseChoicesStart.FindStringIndex(text); loc != nil {
		rest := text[loc[0]+1:]
		end := len(rest)
		for _, st := range []*regexp.Regexp{stopExplanation, stopAnswer, stopComment, nextHeading} {
			if sl := st.FindStringIndex(rest); sl != nil && sl[0] < end {
				end = sl[0]
			}
		}
		if block := strings.TrimSpace(rest[:end]); block != "" {
			return block
		}
	}

	if from := secs.statementEnd(); from > 0 {
		to := len(text)
		for _, l := range []*regexp.Regexp{labelExplanation, labelAnswer, labelComment} {
			if at := labelStart(text, l); at < to {
				to = at
			}
		}
		if to > from {
			if block := strings.TrimSpace(text[from:to]); block != "" {
				return block
			}
		}
	}

	if m := emergencyChoices.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

type parsedChoice struct {
	letter byte // 'a'..'e'
	text   string
}

// Marker formats in priority order: lowercase "a)" (optionally "(a)"),
// uppercase "A)", then strictly parenthesized "(a)". A marker only counts at
// start of block or after whitespace, so letters inside words don't split.
var choiceMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|\s)\(?([a-e])\)\s*`),
	regexp.MustCompile(`(?:^|\s)\(?([A-E])\)\s*`),
	regexp.MustCompile(`\(([a-e])\)\s*`),
}

// Per-line fallback when no repeating marker splits the block.
var choiceLine = regexp.MustCompile(`(?i)^\s*\(?([a-e])\)\s*(.*)`)

func splitChoices(block string) []parsedChoice {
	for _, marker := range choiceMarkers {
		ms := marker.FindAllStringSubmatchIndex(block, -1)
		if len(ms) == 0 {
			continue
		}
		out := make([]parsedChoice, 0, len(ms))
		for i, m := range ms {
			end := len(block)
			if i+1 < len(ms) {
				end = ms[i+1][0]
			}
			letter := strings.ToLower(block[m[2]:m[3]])[0]
			out = append(out, parsedChoice{
				letter: letter,
				text:   strings.TrimSpace(block[m[1]:end]),
			})
		}
		return out
	}

	var out []parsedChoice
	for _, line := range strings.Split(block, "\n") {
		if m := choiceLine.FindStringSubmatch(line); m != nil {
			out = append(out, parsedChoice{
				letter: strings.ToLower(m[1])[0],
				text:   strings.TrimSpace(m[2]),
			})
		}
	}
	return out
}

// ExtractChoices parses the alternatives for a multiple-choice question and
// resolves which one is correct. Always returns 1–5 choices with exactly one
// marked correct, plus the correct choice's letter (A–E by position).
func ExtractChoices(text string, secs Sections, explanation string) ([]question.Choice, string, []string) {
	block := extractChoicesBlock(text, secs)
	if block == "" {
		return placeholderChoices(), "A", []string{"no alternatives found; placeholder choices synthesized"}
	}
	items := splitChoices(block)
	if len(items) == 0 {
		return placeholderChoices(), "A", []string{"alternatives block unparseable; placeholder choices synthesized"}
	}
	if len(items) > 5 {
		items = items[:5]
	}
	choices, letter, warns := resolveCorrectAnswer(items, explanation)
	return choices, letter, warns
}

// Phrase patterns that designate the correct letter inside the explanation
// text, in priority order. Capitalized variants come first so that a prose
// article ("é a B") does not shadow the intended letter.
var correctPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i:alternativa correta)[^A-E]*([A-E])`),
	regexp.MustCompile(`(?i)alternativa correta[^a-e]*([a-e])`),
	regexp.MustCompile(`(?i:correta)[^A-E]*([A-E])`),
	regexp.MustCompile(`(?i)correta[^a-e]*([a-e])`),
	regexp.MustCompile(`(?i:gabarito)[^A-E]*([A-E])`),
	regexp.MustCompile(`(?i)gabarito[^a-e]*([a-e])`),
	regexp.MustCompile(`(?i)resposta[^a-e]*([a-e])`),
	regexp.MustCompile(`(?i)letra ([a-e])`),
	regexp.MustCompile(`(?i)opção ([a-e])`),
	regexp.MustCompile(`(?i)\(([a-e])\)\s*está correta`),
}

// resolveCorrectAnswer decides which parsed choice is correct: a check-mark
// glyph in a choice wins (and is stripped from the stored text), then phrase
// patterns over the explanation, then position 0 as a documented guess.
func resolveCorrectAnswer(items []parsedChoice, explanation string) ([]question.Choice, string, []string) {
	var warnings []string
	var correct byte

	for i := range items {
		if strings.Contains(items[i].text, correctGlyph) {
			correct = items[i].letter
			items[i].text = strings.TrimSpace(strings.Replace(items[i].text, correctGlyph, "", 1))
			break
		}
	}

	if correct == 0 {
		for _, p := range correctPhrases {
			if m := p.FindStringSubmatch(explanation); m != nil {
				correct = strings.ToLower(m[1])[0]
				break
			}
		}
	}

	choices := make([]question.Choice, len(items))
	for i, it := range items {
		choices[i] = question.Choice{Text: it.text, IsCorrect: it.letter == correct && correct != 0}
	}

	idx := -1
	for i := range choices {
		if choices[i].IsCorrect {
			idx = i
			break
		}
	}
	// Never return zero correct choices; guessing the first is the documented
	// fallback when no signal was found.
	if idx < 0 {
		choices[0].IsCorrect = true
		idx = 0
		warnings = append(warnings, "correct answer not identified; defaulting to first choice")
	}
	// A glyph plus a conflicting explanation could in principle mark two; keep
	// only the first.
	for i := idx + 1; i < len(choices); i++ {
		choices[i].IsCorrect = false
	}
	return choices, question.Letter(idx), warnings
}
