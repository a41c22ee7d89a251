// Package assets holds the templates reports are rendered with.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

const reportTemplateName = "learning-report.md.go.tmpl"

//go:embed templates/learning-report.md.go.tmpl
var fallbackReportTemplate string

// ParseReportTemplate parses the template at templatePath, falling back to the
// embedded report template when the path is empty, missing or invalid.
func ParseReportTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, reportTemplateName, fallbackReportTemplate)
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join":  strings.Join,
		"stars": Stars,
		"date": func(t *time.Time) string {
			if t == nil {
				return "never"
			}
			return t.Format("2006-01-02")
		},
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// Stars renders a level as filled and empty stars, e.g. ★★☆☆☆.
func Stars(level, maxLevel int) string {
	if level < 0 {
		level = 0
	}
	if level > maxLevel {
		level = maxLevel
	}
	return strings.Repeat("★", level) + strings.Repeat("☆", maxLevel-level)
}
