package export

import (
	"html/template"
	"io"
	"time"

	"github.com/md-ensino/medquest/internal/question"
)

const watermarkText = "MD ACADÊMICO"

// docTmpl renders the question sheet. The same document serves two exports:
// Word (served as application/msword) and print-to-PDF (adds a print button
// and print media rules).
var docTmpl = template.Must(template.New("doc").Funcs(template.FuncMap{
	"inc":    func(i int) int { return i + 1 },
	"letter": question.Letter,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Questões MEDQUEST PRO</title>
<style>
  body { font-family: Arial, sans-serif; }
  .header { text-align: center; color: #0a4d8c; margin-bottom: 20px; }
  .questao { margin-bottom: 30px; page-break-inside: avoid; }
  .questao-titulo { color: #0a4d8c; font-size: 16px; font-weight: bold; }
  .questao-info { margin-bottom: 10px; }
  .questao-enunciado, .questao-comando { margin-bottom: 10px; }
  .alternativas { margin-left: 20px; margin-top: 10px; margin-bottom: 10px; }
  .alternativa { margin-bottom: 5px; }
  .alternativa-correta { color: green; }
  .comentario { margin-top: 10px; border-left: 3px solid #0a4d8c; padding-left: 10px; }
  .footer { text-align: center; color: #666; font-size: 10px; margin-top: 30px; }
  .watermark {
    position: absolute; top: 50%; left: 50%;
    transform: translate(-50%, -50%) rotate(45deg);
    color: #f0f0f0; font-size: 100px; z-index: -1; opacity: 0.3;
  }
{{- if .Printable}}
  @media print {
    body { margin: 0; padding: 20px; }
    .no-print { display: none; }
  }
{{- end}}
</style>
</head>
<body>
{{- if .Opt.IncludeHeader}}
<div class="header">
  <h1>MEDQUEST PRO</h1>
  <h2>Questões Geradas</h2>
</div>
{{- end}}
{{- if .Opt.IncludeWatermark}}
<div class="watermark">{{.Watermark}}</div>
{{- end}}
{{- range $i, $q := .Questions}}
<div class="questao">
  <div class="questao-titulo">Questão {{inc $i}}</div>
  <div class="questao-info">
    <p><strong>Professor:</strong> {{$.Opt.Professor}}</p>
    <p><strong>Faculdade:</strong> {{$.Opt.Institution}}</p>
    <p><strong>Disciplina:</strong> {{$.Opt.Discipline}}</p>
    <p><strong>Tema:</strong> {{$q.Theme}}</p>
    <p><strong>Objetivo de Aprendizagem:</strong> {{$q.LearningObjective}}</p>
    <p><strong>Nível:</strong> {{$q.Difficulty}}</p>
    <p><strong>Tipo:</strong> {{$q.Model}}</p>
  </div>
  <div class="questao-enunciado">
    <p><strong>Enunciado:</strong></p>
    <p>{{$q.Statement}}</p>
  </div>
{{- range $q.Commands}}
  <div class="questao-comando">
    <p><strong>Comando:</strong></p>
    <p>{{.Text}}</p>
  </div>
{{- end}}
{{- if $q.IsMultipleChoice}}
  <div class="alternativas">
{{- range $j, $c := $q.Choices}}
{{- if $c.IsCorrect}}
    <div class="alternativa alternativa-correta">{{letter $j}}) {{$c.Text}}</div>
{{- else}}
    <div class="alternativa">{{letter $j}}) {{$c.Text}}</div>
{{- end}}
{{- end}}
  </div>
{{- if $q.CorrectLetter}}
  <div class="resposta">
    <p><strong>Resposta Correta:</strong> Alternativa {{$q.CorrectLetter}}</p>
  </div>
{{- end}}
{{- else if $q.ExpectedAnswer}}
  <div class="resposta">
    <p><strong>Resposta Esperada:</strong> {{$q.ExpectedAnswer}}</p>
  </div>
{{- end}}
{{- if $q.ScoreDistribution}}
  <div class="resposta">
    <p><strong>Distribuição de Pontuação:</strong> {{$q.ScoreDistribution}}</p>
  </div>
{{- end}}
{{- if $q.Explanation}}
  <div class="comentario">
    <p><strong>Comentário Explicativo:</strong></p>
    <p>{{$q.Explanation}}</p>
  </div>
{{- end}}
</div>
{{- end}}
{{- if .Opt.IncludeFooter}}
<div class="footer">
  <p>© {{.Year}} MD Ensino - Todos os direitos reservados</p>
</div>
{{- end}}
{{- if .Printable}}
<div class="no-print" style="text-align: center; margin-top: 20px;">
  <button onclick="window.print()">Imprimir PDF</button>
</div>
{{- end}}
</body>
</html>
`))

type docData struct {
	Questions []question.Question
	Opt       Options
	Printable bool
	Watermark string
	Year      int
}

// WriteWordHTML writes the document for download as a Word file.
func WriteWordHTML(w io.Writer, qs []question.Question, opt Options) error {
	return renderDoc(w, qs, opt, false)
}

// WritePrintHTML writes the printable document used for PDF generation via
// the browser's print dialog.
func WritePrintHTML(w io.Writer, qs []question.Question, opt Options) error {
	return renderDoc(w, qs, opt, true)
}

func renderDoc(w io.Writer, qs []question.Question, opt Options, printable bool) error {
	return docTmpl.Execute(w, docData{
		Questions: qs,
		Opt:       opt.withDefaults(),
		Printable: printable,
		Watermark: watermarkText,
		Year:      time.Now().Year(),
	})
}
