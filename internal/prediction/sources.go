package prediction

import (
	"fmt"

	"geomed/internal/prediction/models"
	"geomed/pkg/email"
)

// BuildSources derives the ordered provenance list for one prediction. The
// order is part of the contract: the generation-service analysis always
// leads, bibliographic evidence and the email domain follow when available,
// and the hospital-name analysis always closes the list.
func BuildSources(evidence models.EvidenceResult, address string) []string {
	sources := []string{"AI Analysis"}
	if evidence.Found {
		sources = append(sources, "PubMed Publications")
	}
	if domain, ok := email.Domain(address); ok {
		sources = append(sources, fmt.Sprintf("Email Domain (%s)", domain))
	}
	return append(sources, "Hospital Name Analysis")
}
