package generator

import (
	"regexp"
	"strings"

	"github.com/md-ensino/medquest/internal/question"
)

// The webhook sometimes itemizes essay sub-prompts ("**Comandos:** A) ... B)
// ...") and sometimes emits a single "**Comando:**"; older outputs carry only
// the fixed closing question. All three shapes are accepted, in that order.

var (
	commandMarker = regexp.MustCompile(`[A-Z]\)\s*`)
	fixedPrompt   = regexp.MustCompile(`(?i)Qual a conduta mais adequada para este paciente\?`)
)

var essayAnswerStops = []*regexp.Regexp{stopScoreDist, stopExplanation, stopComment}

// EssayParts is the essay-specific portion of a parsed response.
type EssayParts struct {
	Commands       []question.Command
	ExpectedAnswer string

	// AnswerText is set when the expected answer came from the overloaded
	// "Resposta:"/"Resposta Correta:" label rather than "Resposta esperada:".
	AnswerText string

	ScoreDistribution string
	Explanation       string
}

// ExtractEssay pulls commands, expected answer, score distribution and
// explanation for a dissertative question.
func ExtractEssay(text string) (EssayParts, []string) {
	var parts EssayParts
	var warnings []string

	cmdStops := []*regexp.Regexp{stopAnswer, stopExplanation, stopComment}
	if sp := findSpan(text, labelCommandPlural, cmdStops); sp.ok {
		parts.Commands = splitCommands(sp.value)
	} else if sp := findSpan(text, labelCommand, cmdStops); sp.ok {
		parts.Commands = []question.Command{{Text: sp.value}}
	} else if m := fixedPrompt.FindString(text); m != "" {
		parts.Commands = []question.Command{{Text: m}}
	} else {
		warnings = append(warnings, "no command found in essay response")
	}

	if sp := findSpan(text, labelExpectedAnswer, essayAnswerStops); sp.ok {
		parts.ExpectedAnswer = sp.value
	} else if sp := findSpan(text, labelAnswer, essayAnswerStops); sp.ok {
		// Same label the webhook uses for the multiple-choice answer key;
		// on this path it holds the expected essay answer.
		parts.ExpectedAnswer = sp.value
		parts.AnswerText = sp.value
	}

	if sp := findSpan(text, labelScoreDist, []*regexp.Regexp{stopExplanation, stopComment}); sp.ok {
		parts.ScoreDistribution = sp.value
	}

	if sp := findSpan(text, labelExplanation, nil); sp.ok {
		parts.Explanation = sp.value
	} else if sp := findSpan(text, labelComment, nil); sp.ok {
		parts.Explanation = sp.value
		// The webhook sometimes merges scoring guidance into the explanatory
		// comment; reuse it when no dedicated distribution block exists.
		if parts.ScoreDistribution == "" {
			parts.ScoreDistribution = sp.value
		}
	}

	return parts, warnings
}

// splitCommands breaks an itemized block on repeating uppercase markers
// ("A) ... B) ..."); a block with no markers becomes a single command.
func splitCommands(block string) []question.Command {
	ms := commandMarker.FindAllStringIndex(block, -1)
	if len(ms) == 0 {
		return []question.Command{{Text: strings.TrimSpace(block)}}
	}
	out := make([]question.Command, 0, len(ms))
	for i, m := range ms {
		end := len(block)
		if i+1 < len(ms) {
			end = ms[i+1][0]
		}
		if text := strings.TrimSpace(block[m[1]:end]); text != "" {
			out = append(out, question.Command{Text: text})
		}
	}
	if len(out) == 0 {
		return []question.Command{{Text: strings.TrimSpace(block)}}
	}
	return out
}
