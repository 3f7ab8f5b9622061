// Package prompts renders the system and user prompts for the extraction
// agent from embedded templates.
package prompts

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// SystemPrompt renders the extraction agent's instructions.
func SystemPrompt() (string, error) {
	return render("system_prompt.tmpl", nil)
}

// UserPrompt renders the per-request prompt that accompanies the page images.
func UserPrompt(fileName string) (string, error) {
	return render("user_prompt.tmpl", struct{ FileName string }{FileName: fileName})
}

func render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return sb.String(), nil
}
