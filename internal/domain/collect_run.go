package domain

import "time"

// CollectFailure descreve um relatório que não pôde ser coletado
type CollectFailure struct {
	Report string        `json:"report"`
	Reason FailureReason `json:"reason"`
	Error  string        `json:"error"`
}

// CollectSummary é o resumo de uma execução de coleta
type CollectSummary struct {
	RunID            string           `json:"runId"`
	StartedAt        time.Time        `json:"startedAt"`
	FinishedAt       time.Time        `json:"finishedAt"`
	ExecutionTime    string           `json:"executionTime"`
	ReportsFound     int              `json:"reportsFound"`
	ReportsCollected int              `json:"reportsCollected"`
	ReportsFailed    int              `json:"reportsFailed"`
	ReportsSaved     int              `json:"reportsSaved"`
	Results          []ReportResult   `json:"results"`
	Failures         []CollectFailure `json:"failures,omitempty"`
}
