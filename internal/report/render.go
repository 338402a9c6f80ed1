package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Fallback and footer copy.
const (
	Heading       = "Student Assessment Report"
	Subheading    = "AI-powered dropout prediction and counseling recommendations"
	NoDataTitle   = "No Report Data"
	NoDataMessage = "It seems you navigated here directly. Please complete the assessment first."
	Disclaimer    = "This assessment is generated using AI and should be used as guidance alongside professional counseling."
)

// Format selects an output encoding for CLI rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, markdown or html)", s)
	}
}

// Render writes r in the requested format.
func Render(r Report, f Format) (string, error) {
	switch f {
	case FormatText:
		return Text(r), nil
	case FormatMarkdown:
		return Markdown(r), nil
	case FormatHTML:
		return HTML(r)
	default:
		return "", fmt.Errorf("unknown format %q", f)
	}
}

// Text renders the report as plain text.
func Text(r Report) string {
	var b strings.Builder
	if !r.Available {
		fmt.Fprintf(&b, "%s\n\n%s\n", NoDataTitle, NoDataMessage)
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n%s\n\n", Heading, Subheading)
	fmt.Fprintf(&b, "%s\n", r.Headline())
	fmt.Fprintf(&b, "Prediction Confidence: %s\n", r.ConfidenceText())
	fmt.Fprintf(&b, "%s\n", r.Interpretation())

	if len(r.Panels) > 0 {
		b.WriteString("\nDetailed Analysis\n")
		for _, p := range r.Panels {
			fmt.Fprintf(&b, "  %s: %s\n", p.Title, p.Value)
		}
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("\nPersonalized Recommendations\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  %d. %s\n", rec.Number, rec.Text)
		}
	}
	if len(r.Summary) > 0 {
		b.WriteString("\nAssessment Summary\n")
		for _, s := range r.Summary {
			fmt.Fprintf(&b, "  %s: %s\n", s.Label, s.Value)
		}
	}
	fmt.Fprintf(&b, "\n%s\n", Disclaimer)
	return b.String()
}

// Markdown renders the report as GitHub-flavored markdown.
func Markdown(r Report) string {
	var b strings.Builder
	if !r.Available {
		fmt.Fprintf(&b, "# %s\n\n%s\n", NoDataTitle, NoDataMessage)
		return b.String()
	}

	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n", Heading, Subheading)
	fmt.Fprintf(&b, "## %s\n\n", r.Headline())
	fmt.Fprintf(&b, "**Prediction Confidence:** %s\n\n", r.ConfidenceText())
	fmt.Fprintf(&b, "%s\n\n", r.Interpretation())

	if len(r.Panels) > 0 {
		b.WriteString("## Detailed Analysis\n\n| Area | Status |\n| --- | --- |\n")
		for _, p := range r.Panels {
			fmt.Fprintf(&b, "| %s | %s |\n", p.Title, escapeCell(p.Value))
		}
		b.WriteString("\n")
	}
	if len(r.Recommendations) > 0 {
		b.WriteString("## Personalized Recommendations\n\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", rec.Number, rec.Text)
		}
		b.WriteString("\n")
	}
	if len(r.Summary) > 0 {
		b.WriteString("## Assessment Summary\n\n")
		for _, s := range r.Summary {
			fmt.Fprintf(&b, "- **%s:** %s\n", s.Label, s.Value)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "---\n\n%s\n", Disclaimer)
	return b.String()
}

// HTML renders the markdown form as a standalone HTML document.
func HTML(r Report) (string, error) {
	var body bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(Markdown(r)), &body); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	title := Heading
	if !r.Available {
		title = NoDataTitle
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(title) + "</title></head><body>" +
		body.String() + "</body></html>\n", nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
