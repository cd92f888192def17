package rendering

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"
)

// Word export defaults.
const (
	DefaultFilename = "Resume.doc"
	WordContentType = "application/vnd.ms-word"
	wordTitle       = "Resume Export"
)

//go:embed word.html.tmpl
var defaultWordTemplate string

// WordData is passed to the document shell template.
type WordData struct {
	Title string
	Body  template.HTML
}

// WordExport is a downloadable Word-compatible document.
type WordExport struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ContentDisposition returns the attachment header value for the export.
func (w *WordExport) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", w.Filename)
}

// RenderWord wraps the preview fragment in the fixed-style Word HTML shell. The fragment
// is sanitized before embedding. An empty templatePath uses the built-in shell.
func RenderWord(fragment, filename, templatePath string) (*WordExport, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	if filename == "" {
		filename = DefaultFilename
	}

	data := WordData{
		Title: wordTitle,
		// Sanitized markup is safe to embed unescaped.
		Body: template.HTML(SanitizeFragment(fragment)),
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return nil, &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}

	return &WordExport{
		Filename:    filename,
		ContentType: WordContentType,
		Body:        []byte(result.String()),
	}, nil
}

// parseTemplate reads and parses a document shell template, or the built-in one
func parseTemplate(templatePath string) (*template.Template, error) {
	content := defaultWordTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, &TemplateError{
					Message: fmt.Sprintf("template file not found: %s", templatePath),
					Cause:   err,
				}
			}
			return nil, &TemplateError{
				Message: fmt.Sprintf("failed to read template file: %s", templatePath),
				Cause:   err,
			}
		}
		content = string(raw)
	}

	tmpl, err := template.New("word").Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}
