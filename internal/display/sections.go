// Package display renders briefings. Every function here is pure: it reads a
// possibly sparse BriefingResult and never fails on missing groups.
package display

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sales-briefing/internal/models"

	"github.com/montanaflynn/stats"
)

type SectionID string

const (
	SectionOverview      SectionID = "overview"
	SectionOpportunities SectionID = "opportunities"
	SectionPainPoints    SectionID = "pain-points"
	SectionSolutions     SectionID = "solutions"
	SectionQuestions     SectionID = "key-questions"
	SectionCompetitive   SectionID = "competitive-intel"
	SectionNextSteps     SectionID = "next-steps"
	SectionReferences    SectionID = "references"
)

// Item is one renderable entry of a section.
type Item struct {
	Title     string   `json:"title,omitempty"`
	Meta      string   `json:"meta,omitempty"`
	Body      string   `json:"body,omitempty"`
	Details   []string `json:"details,omitempty"`
	Highlight bool     `json:"highlight,omitempty"`
}

type Section struct {
	ID    SectionID `json:"id"`
	Title string    `json:"title"`
	Items []Item    `json:"items"`
}

func (s Section) Empty() bool { return len(s.Items) == 0 }

// Resolve returns b, or fallback when b is nil. The fallback is always
// supplied by the caller.
func Resolve(b, fallback *models.BriefingResult) *models.BriefingResult {
	if b != nil {
		return b
	}
	return fallback
}

// TopSolution returns the index of the highest compatibility. Ties keep the
// first occurrence. ok is false for an empty list.
func TopSolution(solutions []models.Solution) (idx int, ok bool) {
	if len(solutions) == 0 {
		return -1, false
	}
	idx = 0
	for i := 1; i < len(solutions); i++ {
		if solutions[i].Compatibility > solutions[idx].Compatibility {
			idx = i
		}
	}
	return idx, true
}

type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// CompatibilityStats summarizes the score spread. Empty input gives the zero value.
func CompatibilityStats(solutions []models.Solution) Stats {
	if len(solutions) == 0 {
		return Stats{}
	}
	data := make(stats.Float64Data, len(solutions))
	for i, s := range solutions {
		data[i] = float64(s.Compatibility)
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	rounded, _ := stats.Round(mean, 1)

	return Stats{
		Count:  len(solutions),
		Mean:   rounded,
		Median: median,
		Min:    lo,
		Max:    hi,
	}
}

var refMarker = regexp.MustCompile(`\[ref:\s*(\d+)\]`)

// ResolveReferences rewrites [ref:N] markers to [N] footnotes and returns the
// cited references in first-citation order. Unknown ids render as [N?].
func ResolveReferences(text string, refs []models.Reference) (string, []models.Reference) {
	byID := make(map[int]models.Reference, len(refs))
	for _, r := range refs {
		if _, dup := byID[r.ID]; !dup {
			byID[r.ID] = r
		}
	}

	var cited []models.Reference
	seen := make(map[int]bool)
	out := refMarker.ReplaceAllStringFunc(text, func(m string) string {
		id, err := strconv.Atoi(refMarker.FindStringSubmatch(m)[1])
		if err != nil {
			return m
		}
		ref, ok := byID[id]
		if !ok {
			return fmt.Sprintf("[%d?]", id)
		}
		if !seen[id] {
			seen[id] = true
			cited = append(cited, ref)
		}
		return fmt.Sprintf("[%d]", id)
	})
	return out, cited
}

// Sections lays the briefing out in display order. A nil briefing yields
// every section with no items.
func Sections(b *models.BriefingResult) []Section {
	if b == nil {
		b = &models.BriefingResult{}
	}
	sections := []Section{
		{ID: SectionOverview, Title: "Overview", Items: overviewItems(b)},
		{ID: SectionOpportunities, Title: "Opportunities", Items: opportunityItems(b)},
		{ID: SectionPainPoints, Title: "Pain Points", Items: stringItems(b.PainPoints, b.References)},
		{ID: SectionSolutions, Title: "Solutions", Items: solutionItems(b.SolutionMapping)},
		{ID: SectionQuestions, Title: "Key Questions", Items: stringItems(b.KeyQuestions, b.References)},
		{ID: SectionCompetitive, Title: "Competitive Intel", Items: competitiveItems(b.CompetitiveIntel)},
		{ID: SectionNextSteps, Title: "Next Steps", Items: stringItems(b.NextSteps, b.References)},
		{ID: SectionReferences, Title: "References", Items: referenceItems(b.References)},
	}
	for i := range sections {
		if sections[i].Items == nil {
			sections[i].Items = []Item{}
		}
	}
	return sections
}

func overviewItems(b *models.BriefingResult) []Item {
	var items []Item

	if ci := b.CompanyInfo; ci != nil {
		details := nonEmpty(
			labeled("Industry", ci.Industry),
			labeled("Size", ci.CompanySize),
			labeled("Headquarters", ci.Headquarters),
			labeled("Revenue", ci.Revenue),
			labeled("Founded", ci.Founded),
		)
		if ci.Name != "" || len(details) > 0 {
			items = append(items, Item{Title: orDefault(ci.Name, "Company"), Details: details})
		}
	}

	if b.Summary != "" {
		text, _ := ResolveReferences(b.Summary, b.References)
		items = append(items, Item{Title: "Summary", Body: text})
	}
	if b.Context != "" {
		text, _ := ResolveReferences(b.Context, b.References)
		items = append(items, Item{Title: "Strategic Context", Body: text})
	}

	if crm := b.CRMData; crm != nil {
		details := nonEmpty(
			labeled("Contact", crm.ContactName),
			labeled("Title", crm.ContactTitle),
			labeled("Email", crm.ContactEmail),
			labeled("Phone", crm.ContactPhone),
			labeled("Account status", crm.AccountStatus),
			labeled("Account owner", crm.AccountOwner),
			labeled("Region", crm.Region),
			labeled("Last contact", crm.LastContactDate),
		)
		for _, p := range crm.PastInteractions {
			details = append(details, strings.TrimSpace(fmt.Sprintf("%s %s: %s", p.Date, p.Type, p.Summary)))
		}
		if len(details) > 0 {
			items = append(items, Item{Title: "CRM", Details: details})
		}
	}
	return items
}

func opportunityItems(b *models.BriefingResult) []Item {
	items := make([]Item, 0, len(b.Opportunities))
	for _, o := range b.Opportunities {
		text, _ := ResolveReferences(o.Description, b.References)
		items = append(items, Item{Title: o.Title, Meta: o.Date, Body: text})
	}
	return items
}

func solutionItems(solutions []models.Solution) []Item {
	top, ok := TopSolution(solutions)
	items := make([]Item, 0, len(solutions))
	for i, s := range solutions {
		items = append(items, Item{
			Title:     orDefault(s.Product, "Unnamed solution"),
			Meta:      fmt.Sprintf("%d%%", s.Compatibility),
			Body:      s.ShortDescription,
			Highlight: ok && i == top,
			Details: nonEmpty(
				labeled("Why it fits", s.Reason),
				labeled("Why it's interesting", s.WhyInteresting),
				labeled("Possible objections", s.WhyNotInteresting),
				labeled("Use cases", strings.Join(s.UseCases, "; ")),
			),
		})
	}
	return items
}

func competitiveItems(ci *models.CompetitiveIntel) []Item {
	if ci == nil {
		return nil
	}
	var items []Item
	if len(ci.Competitors) > 0 {
		items = append(items, Item{Title: "Competitors", Body: strings.Join(ci.Competitors, ", ")})
	}
	for _, insight := range ci.Insights {
		items = append(items, Item{Body: insight})
	}
	return items
}

func stringItems(values []string, refs []models.Reference) []Item {
	items := make([]Item, 0, len(values))
	for _, v := range values {
		text, _ := ResolveReferences(v, refs)
		items = append(items, Item{Body: text})
	}
	return items
}

func referenceItems(refs []models.Reference) []Item {
	items := make([]Item, 0, len(refs))
	for _, r := range refs {
		items = append(items, Item{Title: fmt.Sprintf("[%d]", r.ID), Body: r.Source, Meta: r.URL})
	}
	return items
}

func labeled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
