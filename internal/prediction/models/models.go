// Package models defines the prediction domain types. Records are immutable
// once assembled; the JSON tags are the service's wire and storage names.
package models

import "time"

// SubjectQuery is the input to one prediction: who to analyze and the
// research topic anchoring the bibliographic lookup.
type SubjectQuery struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Hospital string `json:"hospital"`
	Topic    string `json:"pubmed_topic"`
}

// EvidenceResult is the best-effort output of a bibliographic lookup.
// Found == false implies no signals and a zero publication count; Err is
// informational only and never aborts a prediction.
type EvidenceResult struct {
	Found              bool
	PublicationCount   int
	AffiliationSignals []string
	Err                string
}

// Attributes is the typed result of parsing the generation service's
// fixed-label response. Every field carries a defined default, so a zero
// parse still yields a usable value. Optional fields are nil when the
// response marked them unspecified.
type Attributes struct {
	Country    string
	City       *string
	Confidence float64
	Reasoning  string
	IsDoctor   bool
	Specialty  *string
	ProfileURL *string
}

// Record is the persisted outcome of one prediction, provenance included.
type Record struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Hospital   string    `json:"hospital"`
	Topic      string    `json:"pubmed_topic"`
	Country    string    `json:"predicted_country"`
	City       *string   `json:"city,omitempty"`
	Confidence float64   `json:"confidence_score"`
	Sources    []string  `json:"sources"`
	Reasoning  string    `json:"reasoning"`
	IsDoctor   bool      `json:"is_doctor"`
	Specialty  *string   `json:"specialty,omitempty"`
	ProfileURL *string   `json:"public_profile_url,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// RawRow is one data row from an uploaded spreadsheet, column presence
// already validated by the tabular reader.
type RawRow struct {
	FirstName string
	LastName  string
	Email     string
	Hospital  string
	Topic     string
}

// RowError attributes a batch failure to its spreadsheet row. Row uses
// 1-based numbering plus the header row, so the first data row is 2.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BatchOutcome aggregates a batch run. Successful + Failed always equals
// TotalProcessed; Results and Errors carry exactly the per-row outcomes.
type BatchOutcome struct {
	TotalProcessed int        `json:"total_processed"`
	Successful     int        `json:"successful"`
	Failed         int        `json:"failed"`
	Results        []Record   `json:"results"`
	Errors         []RowError `json:"errors"`
}
