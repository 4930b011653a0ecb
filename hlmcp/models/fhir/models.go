// fhir package contains structs representing FHIR data.
// These data models are a lighter weight definition containing only the fields
// the server needs to consume from data-plane responses.
package fhir

import (
	"fmt"
	"strings"
	"time"
)

type Resource struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
	Meta         struct {
		LastUpdated time.Time `json:"lastUpdated"`
	} `json:"meta"`
}

type Bundle struct {
	Resource
	Type  string `json:"type"`
	Total uint   `json:"total"`
	Links []struct {
		Relation string `json:"relation"`
		URL      string `json:"url"`
	} `json:"link"`
	Entries []BundleEntry `json:"entry"`
}

type BundleEntry map[string]interface{}

// OperationOutcome is FHIR's standard structured error payload. It is only
// produced by the remote service; the server consumes and flattens it.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string           `json:"severity"`
	Code        string           `json:"code"`
	Details     *CodeableConcept `json:"details"`
	Diagnostics string           `json:"diagnostics"`
	Location    []string         `json:"location"`
	Expression  []string         `json:"expression"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding"`
	Text   string   `json:"text"`
}

type Coding struct {
	System       string `json:"system"`
	Version      string `json:"version"`
	Code         string `json:"code"`
	Display      string `json:"display"`
	UserSelected bool   `json:"userSelected"`
}

// Flatten renders every issue as "<SEVERITY>: <code> - <details>" and joins
// them with "; " to produce a single descriptive error message.
func (oo *OperationOutcome) Flatten() string {
	lines := make([]string, 0, len(oo.Issue))
	for _, issue := range oo.Issue {
		detail := issue.Diagnostics
		if issue.Details != nil && issue.Details.Text != "" {
			detail = issue.Details.Text
		}
		if detail == "" {
			detail = "No details"
		}
		lines = append(lines, fmt.Sprintf("%s: %s - %s",
			strings.ToUpper(issue.Severity), issue.Code, detail))
	}
	return strings.Join(lines, "; ")
}
