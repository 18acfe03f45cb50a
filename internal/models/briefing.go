// internal/models/briefing.go
package models

// BriefingRequest is the body of the generate endpoint and the input of the
// generate CLI command.
type BriefingRequest struct {
	ClientName        string `json:"clientName"`
	InternalCode      string `json:"internalCode"`
	AdditionalContext string `json:"additionalContext,omitempty"`
}

// BriefingResult is the typed briefing returned by the model. Every group is
// optional; consumers must render absent groups as empty.
type BriefingResult struct {
	CompanyInfo      *CompanyInfo      `json:"companyInfo,omitempty"`
	CRMData          *CRMData          `json:"crmData,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Context          string            `json:"context,omitempty"`
	Opportunities    []Opportunity     `json:"opportunities,omitempty"`
	PainPoints       []string          `json:"painPoints,omitempty"`
	SolutionMapping  []Solution        `json:"solutionMapping,omitempty"`
	KeyQuestions     []string          `json:"keyQuestions,omitempty"`
	CompetitiveIntel *CompetitiveIntel `json:"competitiveIntel,omitempty"`
	NextSteps        []string          `json:"nextSteps,omitempty"`
	References       []Reference       `json:"references,omitempty"`
}

type CompanyInfo struct {
	Name         string `json:"name,omitempty"`
	Industry     string `json:"industry,omitempty"`
	CompanySize  string `json:"companySize,omitempty"`
	Headquarters string `json:"headquarters,omitempty"`
	Revenue      string `json:"revenue,omitempty"`
	Founded      string `json:"founded,omitempty"`
}

type CRMData struct {
	ContactName      string           `json:"contactName,omitempty"`
	ContactEmail     string           `json:"contactEmail,omitempty"`
	ContactPhone     string           `json:"contactPhone,omitempty"`
	ContactTitle     string           `json:"contactTitle,omitempty"`
	AccountStatus    string           `json:"accountStatus,omitempty"`
	LastContactDate  string           `json:"lastContactDate,omitempty"`
	AccountOwner     string           `json:"accountOwner,omitempty"`
	Region           string           `json:"region,omitempty"`
	PastInteractions []PastInteraction `json:"pastInteractions,omitempty"`
}

type PastInteraction struct {
	Date    string `json:"date,omitempty"`
	Type    string `json:"type,omitempty"`
	Summary string `json:"summary,omitempty"`
}

type Opportunity struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// Solution is one product-fit entry. Compatibility is an integer in [0,100];
// an entry the model left unscored decodes as 0, the lowest score.
type Solution struct {
	Product           string   `json:"product,omitempty"`
	Compatibility     int      `json:"compatibility"`
	ShortDescription  string   `json:"shortDescription,omitempty"`
	Reason            string   `json:"reason,omitempty"`
	WhyInteresting    string   `json:"whyInteresting,omitempty"`
	WhyNotInteresting string   `json:"whyNotInteresting,omitempty"`
	UseCases          []string `json:"useCases,omitempty"`
}

type CompetitiveIntel struct {
	Competitors []string `json:"competitors,omitempty"`
	Insights    []string `json:"insights,omitempty"`
}

// Reference backs an inline [ref:N] marker in narrative fields. A reference
// without an id decodes as 0.
type Reference struct {
	ID     int    `json:"id"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
}

// BriefingResponse is the success body of the generate endpoint.
type BriefingResponse struct {
	Briefing *BriefingResult `json:"briefing"`
}
