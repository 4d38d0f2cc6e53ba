package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"geomed/internal/prediction/models"
)

func TestBuildSources(t *testing.T) {
	t.Run("all contributors in order", func(t *testing.T) {
		sources := BuildSources(models.EvidenceResult{Found: true}, "a@b.edu")
		assert.Equal(t, []string{
			"AI Analysis",
			"PubMed Publications",
			"Email Domain (b.edu)",
			"Hospital Name Analysis",
		}, sources)
	})

	t.Run("no evidence and underivable email", func(t *testing.T) {
		sources := BuildSources(models.EvidenceResult{}, "not-an-address")
		assert.Equal(t, []string{"AI Analysis", "Hospital Name Analysis"}, sources)
	})

	t.Run("email without dot after at is skipped", func(t *testing.T) {
		sources := BuildSources(models.EvidenceResult{Found: true}, "a@localhost")
		assert.Equal(t, []string{
			"AI Analysis",
			"PubMed Publications",
			"Hospital Name Analysis",
		}, sources)
	})
}
