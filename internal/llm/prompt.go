package llm

import (
	"fmt"
	"strings"

	"geomed/internal/prediction/models"
)

// systemPrompt frames every call. UK professionals must come back as their
// constituent country, never just "United Kingdom"; downstream consumers
// rely on that granularity.
const systemPrompt = "You are a medical professional analyzer and geographic expert. " +
	"When analyzing UK-based professionals, always specify the constituent country " +
	"(England, Scotland, Wales, or Northern Ireland) rather than just 'United Kingdom'. " +
	"Analyze healthcare professional data to predict their specific location, verify " +
	"medical credentials, identify specialties, and suggest profile URLs accurately."

// buildPrompt embeds the subject, their affiliation, and the bibliographic
// evidence summary into a single instruction that demands the seven-label
// response format the parser understands.
func buildPrompt(query models.SubjectQuery, evidence models.EvidenceResult) string {
	signals := "None"
	if len(evidence.AffiliationSignals) > 0 {
		signals = strings.Join(evidence.AffiliationSignals, ", ")
	}

	return fmt.Sprintf(`Analyze the following information about a healthcare professional and provide detailed insights:

Name: %s
Email: %s
Hospital Affiliation: %s
PubMed Research Topic: %s

PubMed Data:
- Found publications: %t
- Number of publications: %d
- Affiliations found: %s

Based on the above information, provide:

1. **Country**: Most likely country. IMPORTANT: If UK/United Kingdom, specify the constituent country:
   - England (if in London, Manchester, Birmingham, Oxford, Cambridge, etc.)
   - Scotland (if in Edinburgh, Glasgow, Aberdeen, etc.)
   - Wales (if in Cardiff, Swansea, etc.)
   - Northern Ireland (if in Belfast, etc.)
   For other countries, provide the country name as normal (e.g., "United States", "Japan", "Germany")

2. **City**: If identifiable from hospital name or email, specify the city (e.g., "London", "Edinburgh", "Manchester"). If not identifiable, respond with "Not specified"

3. **Confidence**: Confidence score (0-100)

4. **Reasoning**: Brief reasoning for location prediction (max 2 sentences)

5. **Is Doctor**: Whether this person is a medical doctor (yes/no). Consider:
   - Name prefix (Dr., MD, Prof., etc.)
   - Hospital affiliation
   - Medical research publications
   - Medical specialty keywords

6. **Specialty**: Medical specialty if identifiable (e.g., Cardiology, Oncology, Neuroscience, Endocrinology, Pediatrics, etc.). Use "General Practice" if unclear. Use the PubMed topic and research area to determine specialty.

7. **Profile URL**: If you can infer a likely public profile URL (e.g., hospital staff page, LinkedIn, ResearchGate, Google Scholar), provide it. If unsure, respond with "Not found"

Format your response EXACTLY as:
COUNTRY: [country name - e.g., "England" not "United Kingdom" if in England]
CITY: [city name or "Not specified"]
CONFIDENCE: [number]
REASONING: [reasoning]
IS_DOCTOR: [yes/no]
SPECIALTY: [specialty name]
PROFILE_URL: [URL or "Not found"]`,
		query.Name, query.Email, query.Hospital, query.Topic,
		evidence.Found, evidence.PublicationCount, signals)
}
