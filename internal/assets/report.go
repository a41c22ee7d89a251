package assets

import (
	"fmt"
	"io"
	"time"
)

// ReportTemplate is the data a learning report template is executed with.
type ReportTemplate struct {
	Title          string
	GeneratedAt    time.Time
	MaxLevel       int
	TotalItems     int
	MasteredItems  int
	TotalSessions  int
	RecentAccuracy int
	Streak         int
	Levels         []ReportLevel
	Months         []ReportMonth
	Due            []ReportBird
	Collection     []ReportBird
}

type ReportLevel struct {
	Level int
	Count int
}

// ReportMonth is the practice summary of one month, e.g. "2025-01".
type ReportMonth struct {
	Period      string
	Attempts    int
	Correct     int
	Accuracy    int
	UniqueItems int
}

type ReportBird struct {
	Name           string
	ScientificName string
	Level          int
	CorrectCount   int
	WrongCount     int
	LastPracticed  *time.Time
	NextReview     *time.Time
}

func WriteReport(output io.Writer, templatePath string, templateData ReportTemplate) error {
	tmpl, err := ParseReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
