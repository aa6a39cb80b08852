package domain

import (
	"strings"
	"time"
)

// Family identifica a rede social de um relatório do mLabs
type Family string

const (
	FamilyFacebook  Family = "facebook"
	FamilyInstagram Family = "instagram"
	FamilyUnknown   Family = "unknown"
)

// FamilyFromName classifica um relatório pelo nome exibido no dashboard
func FamilyFromName(name string) Family {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "facebook"):
		return FamilyFacebook
	case strings.Contains(lower, "instagram"):
		return FamilyInstagram
	default:
		return FamilyUnknown
	}
}

// ReportTarget representa um relatório a ser coletado
type ReportTarget struct {
	Code   string `json:"code" mapstructure:"code"`
	ID     string `json:"id" mapstructure:"id"`
	Name   string `json:"name" mapstructure:"name"`
	Family Family `json:"family" mapstructure:"family"`
	URL    string `json:"url" mapstructure:"url"`
}

// Period é o intervalo de datas (YYYY-MM-DD) ao qual os indicadores se referem
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SingleDayPeriod cria um período de um único dia
func SingleDayPeriod(day time.Time) Period {
	date := day.Format(time.DateOnly)
	return Period{Start: date, End: date}
}

// Indicator é uma métrica extraída do dashboard
type Indicator struct {
	Group string  `json:"group"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ReportResult é o registro coletado de um relatório.
// A identidade no armazenamento é (ReportName, Period.Start).
type ReportResult struct {
	CollectedOn string      `json:"collected_on"`
	ReportName  string      `json:"report_name"`
	Period      Period      `json:"period"`
	Indicators  []Indicator `json:"indicators"`
}

// StoredReport é um ReportResult persistido
type StoredReport struct {
	ID string `json:"id"`
	ReportResult
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FailureReason classifica a falha da coleta de um relatório
type FailureReason string

const (
	FailureNavigation     FailureReason = "navigation_failed"
	FailureSessionExpired FailureReason = "session_expired"
	FailureExtraction     FailureReason = "extraction_failed"
	FailureCanceled       FailureReason = "canceled"
)

// ReportOutcome é o resultado da coleta de um relatório: ou um ReportResult ou uma falha
type ReportOutcome struct {
	Target ReportTarget
	Result *ReportResult
	Reason FailureReason
	Err    error
}

// Succeeded indica se o relatório foi coletado
func (o ReportOutcome) Succeeded() bool {
	return o.Result != nil
}
