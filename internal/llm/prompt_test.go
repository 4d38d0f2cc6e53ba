package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"geomed/internal/prediction/models"
)

func TestBuildPromptEmbedsSubjectAndEvidence(t *testing.T) {
	query := models.SubjectQuery{
		Name:     "Dr. Jane Doe",
		Email:    "jane.doe@ed.ac.uk",
		Hospital: "Royal Infirmary of Edinburgh",
		Topic:    "cardiac imaging",
	}
	evidence := models.EvidenceResult{
		Found:              true,
		PublicationCount:   4,
		AffiliationSignals: []string{"United Kingdom", "Germany"},
	}

	prompt := buildPrompt(query, evidence)

	assert.Contains(t, prompt, "Name: Dr. Jane Doe")
	assert.Contains(t, prompt, "Hospital Affiliation: Royal Infirmary of Edinburgh")
	assert.Contains(t, prompt, "Found publications: true")
	assert.Contains(t, prompt, "Number of publications: 4")
	assert.Contains(t, prompt, "Affiliations found: United Kingdom, Germany")

	for _, label := range []string{"COUNTRY:", "CITY:", "CONFIDENCE:", "REASONING:", "IS_DOCTOR:", "SPECIALTY:", "PROFILE_URL:"} {
		assert.Contains(t, prompt, label, "prompt must demand the %s label", label)
	}
}

func TestBuildPromptWithoutEvidence(t *testing.T) {
	prompt := buildPrompt(models.SubjectQuery{Name: "John Smith"}, models.EvidenceResult{})

	assert.Contains(t, prompt, "Found publications: false")
	assert.Contains(t, prompt, "Affiliations found: None")
	assert.True(t, strings.Contains(prompt, "constituent country") || strings.Contains(prompt, "England"),
		"prompt must carry the UK disambiguation rules")
}
