package generatebriefing

import (
	"fmt"
	"strings"
)

const briefingShape = `{
  "companyInfo": {
    "name": "string",
    "industry": "string",
    "companySize": "string",
    "headquarters": "string",
    "revenue": "string",
    "founded": "string"
  },
  "crmData": {
    "contactName": "string",
    "contactEmail": "string",
    "contactPhone": "string",
    "contactTitle": "string",
    "accountStatus": "string",
    "lastContactDate": "string (date)",
    "accountOwner": "string",
    "region": "string",
    "pastInteractions": [{ "date": "string", "type": "string", "summary": "string" }]
  },
  "summary": "string (2-3 paragraphs, may cite [ref:N])",
  "context": "string (strategic context, may cite [ref:N])",
  "opportunities": [{ "title": "string", "description": "string", "date": "string" }],
  "painPoints": ["string"],
  "solutionMapping": [
    {
      "product": "string",
      "compatibility": integer (0-100),
      "shortDescription": "string",
      "reason": "string",
      "whyInteresting": "string",
      "whyNotInteresting": "string",
      "useCases": ["string"]
    }
  ],
  "keyQuestions": ["string"],
  "competitiveIntel": { "competitors": ["string"], "insights": ["string"] },
  "nextSteps": ["string"],
  "references": [{ "id": integer, "source": "string", "url": "string" }]
}`

// buildSystemPrompt returns the fixed instruction naming the target JSON shape.
func buildSystemPrompt(organization string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s sales intelligence assistant that writes client briefings for account teams.\n", organization)
	b.WriteString("Respond with a single JSON object and nothing else. Do not wrap it in prose.\n\n")
	b.WriteString("The JSON object must have this structure:\n")
	b.WriteString(briefingShape)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- When a narrative field relies on a source, cite it inline as [ref:N] and add an entry with id N to \"references\".\n")
	fmt.Fprintf(&b, "- Provide at least 6-8 \"solutionMapping\" entries for %s products.\n", organization)
	b.WriteString("- Spread compatibility scores realistically across 55-95; do not give every entry the same score.\n")
	b.WriteString("- Compatibility must be a whole number.\n")
	return b.String()
}

// buildUserPrompt carries the concrete client. The client name is passed verbatim.
func buildUserPrompt(input *Input, organization string) string {
	var b strings.Builder
	b.WriteString("Generate a comprehensive sales briefing for:\n")
	fmt.Fprintf(&b, "Company: %s\n", input.ClientName)
	fmt.Fprintf(&b, "Internal Code: %s\n", input.InternalCode)
	if ctx := strings.TrimSpace(input.AdditionalContext); ctx != "" {
		fmt.Fprintf(&b, "Additional Context: %s\n", ctx)
	}
	fmt.Fprintf(&b, "\nCover the company's industry, challenges and how %s solutions can help them.", organization)
	return b.String()
}
