package display

import (
	"fmt"
	"strings"

	"sales-briefing/internal/models"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText, "plain", "terminal":
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown or html)", s)
	}
}

// Render renders b in the given format. Text output uses st.
func Render(b *models.BriefingResult, format Format, st Styles) string {
	switch format {
	case FormatMarkdown:
		return RenderMarkdown(b)
	case FormatHTML:
		return RenderHTML(b)
	default:
		return RenderText(b, st)
	}
}

const neutralTopPick = "No solutions proposed yet"

// RenderText renders every section for a terminal.
func RenderText(b *models.BriefingResult, st Styles) string {
	var sb strings.Builder

	title := "Sales Briefing"
	if b != nil && b.CompanyInfo != nil && b.CompanyInfo.Name != "" {
		title += ": " + b.CompanyInfo.Name
	}
	sb.WriteString(st.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(topPickLine(b, st))
	sb.WriteString("\n")

	for _, sec := range Sections(b) {
		sb.WriteString("\n")
		sb.WriteString(st.Section.Render(sec.Title))
		sb.WriteString("\n")
		if sec.Empty() {
			sb.WriteString(st.Empty.Render("  (nothing to show)"))
			sb.WriteString("\n")
			continue
		}
		for _, it := range sec.Items {
			sb.WriteString(renderItemText(it, st, true))
		}
	}
	return sb.String()
}

func topPickLine(b *models.BriefingResult, st Styles) string {
	var solutions []models.Solution
	if b != nil {
		solutions = b.SolutionMapping
	}
	idx, ok := TopSolution(solutions)
	if !ok {
		return st.Empty.Render(neutralTopPick)
	}
	s := CompatibilityStats(solutions)
	top := solutions[idx]
	return fmt.Sprintf("%s %s  %s",
		st.TopPick.Render("Top pick:"),
		st.TopPick.Render(fmt.Sprintf("%s (%d%%)", orDefault(top.Product, "Unnamed solution"), top.Compatibility)),
		st.Meta.Render(fmt.Sprintf("mean %.1f%%, median %.0f%%, range %.0f-%.0f%%", s.Mean, s.Median, s.Min, s.Max)),
	)
}

func renderItemText(it Item, st Styles, withDetails bool) string {
	var parts []string
	if it.Title != "" {
		head := st.ItemHead
		if it.Highlight {
			head = st.TopPick
		}
		parts = append(parts, head.Render(it.Title))
	}
	if it.Meta != "" {
		parts = append(parts, st.Meta.Render(it.Meta))
	}
	marker := "  - "
	if it.Highlight {
		marker = "  * "
		parts = append(parts, st.TopPick.Render("TOP PICK"))
	}

	var sb strings.Builder
	if len(parts) > 0 {
		sb.WriteString(marker + strings.Join(parts, "  ") + "\n")
		if it.Body != "" {
			sb.WriteString("    " + st.Body.Render(it.Body) + "\n")
		}
	} else {
		sb.WriteString(marker + st.Body.Render(it.Body) + "\n")
	}
	if withDetails {
		for _, d := range it.Details {
			sb.WriteString("  " + st.Detail.Render(d) + "\n")
		}
	}
	return sb.String()
}

// RenderMarkdown renders every section as Markdown.
func RenderMarkdown(b *models.BriefingResult) string {
	var sb strings.Builder

	title := "Sales Briefing"
	if b != nil && b.CompanyInfo != nil && b.CompanyInfo.Name != "" {
		title += ": " + b.CompanyInfo.Name
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	var solutions []models.Solution
	if b != nil {
		solutions = b.SolutionMapping
	}
	if idx, ok := TopSolution(solutions); ok {
		fmt.Fprintf(&sb, "**Top pick:** %s (%d%%)\n\n", orDefault(solutions[idx].Product, "Unnamed solution"), solutions[idx].Compatibility)
	} else {
		fmt.Fprintf(&sb, "_%s_\n\n", neutralTopPick)
	}

	for _, sec := range Sections(b) {
		fmt.Fprintf(&sb, "## %s\n\n", sec.Title)
		if sec.Empty() {
			sb.WriteString("_Nothing to show._\n\n")
			continue
		}
		for _, it := range sec.Items {
			sb.WriteString(markdownItem(it))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func markdownItem(it Item) string {
	var sb strings.Builder
	line := "- "
	if it.Title != "" {
		line += "**" + it.Title + "**"
		if it.Highlight {
			line += " (top pick)"
		}
	}
	if it.Meta != "" {
		line += " _" + it.Meta + "_"
	}
	if it.Body != "" {
		if it.Title != "" || it.Meta != "" {
			line += ": "
		}
		line += it.Body
	}
	sb.WriteString(strings.TrimRight(line, " ") + "\n")
	for _, d := range it.Details {
		sb.WriteString("  - " + d + "\n")
	}
	return sb.String()
}

// RenderHTML converts the Markdown rendering to an HTML fragment.
func RenderHTML(b *models.BriefingResult) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML,
	})
	return string(markdown.ToHTML([]byte(RenderMarkdown(b)), p, renderer))
}
