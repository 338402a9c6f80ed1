// Package report turns a raw prediction response into a renderable report.
// Interpret accepts any input, including nil or malformed JSON, and never
// fails: missing or mistyped fields fall back to defaults.
package report

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// DefaultConfidence is shown when the response carries no confidence.
const DefaultConfidence = 75.0

// Risk levels returned by the prediction service.
const (
	RiskHigh = "High"
	RiskLow  = "Low"
)

// Report is the display model for a prediction result.
type Report struct {
	// Available is false when there was no result object at all.
	Available bool

	// RiskLevel is the raw "risk" value; empty when absent.
	RiskLevel string
	// HighRisk is true only for RiskLevel "High". Every other value,
	// including an empty one, uses the low-risk presentation.
	HighRisk bool

	Confidence      float64
	Recommendations []Recommendation
	Panels          []Panel
	Summary         []SummaryField

	// Issues records shape problems recovered by defaults. For logging only.
	Issues []string
}

// Recommendation is a numbered recommendation line.
type Recommendation struct {
	Number int
	Text   string
}

// PanelKind identifies an analysis sub-panel.
type PanelKind string

const (
	PanelAttendance PanelKind = "attendance_status"
	PanelAcademic   PanelKind = "academic_status"
	PanelEngagement PanelKind = "engagement_level"
)

// Panel is one analysis breakdown entry.
type Panel struct {
	Kind     PanelKind
	Title    string
	Value    string
	Positive bool
}

// SummaryField is one echoed student value.
type SummaryField struct {
	Key   string
	Label string
	Value string
}

var panelSpecs = []struct {
	kind     PanelKind
	title    string
	positive string
}{
	{PanelAttendance, "Attendance", "Good"},
	{PanelAcademic, "Academic Performance", "Good"},
	{PanelEngagement, "Engagement Level", "High"},
}

var summarySpecs = []struct {
	key    string
	label  string
	format func(string) string
}{
	{"age", "Age", func(v string) string { return v + " years" }},
	{"attendance_percent", "Attendance", func(v string) string { return v + "%" }},
	{"avg_marks", "Average Marks", func(v string) string { return v + "%" }},
	{"extracurricular", "Extracurricular Activities", func(v string) string { return v }},
}

// Interpret extracts a Report from raw. A nil, empty, null or non-object
// input yields a Report with Available set to false.
func Interpret(raw json.RawMessage) Report {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return Report{}
	}
	res := gjson.ParseBytes(raw)
	if !res.IsObject() {
		return Report{}
	}

	r := Report{Available: true}

	risk := res.Get("risk")
	switch {
	case !risk.Exists():
		r.Issues = append(r.Issues, "risk missing")
	case risk.Type != gjson.String:
		r.Issues = append(r.Issues, "risk is not a string")
		r.RiskLevel = risk.String()
	default:
		r.RiskLevel = risk.Str
	}
	r.HighRisk = r.RiskLevel == RiskHigh

	r.Confidence = DefaultConfidence
	if c := res.Get("confidence"); c.Type == gjson.Number {
		r.Confidence = c.Num
	} else {
		r.Issues = append(r.Issues, "confidence missing or not a number")
	}

	recs := res.Get("recommendations")
	switch {
	case !recs.Exists():
	case !recs.IsArray():
		r.Issues = append(r.Issues, "recommendations is not an array")
	default:
		recs.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.String {
				r.Issues = append(r.Issues, "recommendation item is not a string")
				return true
			}
			r.Recommendations = append(r.Recommendations, Recommendation{
				Number: len(r.Recommendations) + 1,
				Text:   item.Str,
			})
			return true
		})
	}

	if analysis := res.Get("analysis"); analysis.IsObject() {
		for _, def := range panelSpecs {
			v := analysis.Get(string(def.kind))
			if v.Type != gjson.String || v.Str == "" {
				continue
			}
			r.Panels = append(r.Panels, Panel{
				Kind:     def.kind,
				Title:    def.title,
				Value:    v.Str,
				Positive: v.Str == def.positive,
			})
		}
	} else if analysis.Exists() {
		r.Issues = append(r.Issues, "analysis is not an object")
	}

	if student := res.Get("student"); student.IsObject() {
		for _, def := range summarySpecs {
			v := student.Get(def.key)
			// Zero is a real value; only absent or null fields are skipped.
			if !v.Exists() || v.Type == gjson.Null {
				continue
			}
			r.Summary = append(r.Summary, SummaryField{
				Key:   def.key,
				Label: def.label,
				Value: def.format(scalarText(v)),
			})
		}
	} else if student.Exists() {
		r.Issues = append(r.Issues, "student is not an object")
	}

	return r
}

// Headline returns the risk title, e.g. "High Dropout Risk".
func (r Report) Headline() string {
	level := r.RiskLevel
	if level == "" {
		level = "Unknown"
	}
	return level + " Dropout Risk"
}

// Interpretation returns the one-line reading of the risk level.
func (r Report) Interpretation() string {
	if r.HighRisk {
		return "This student shows indicators that suggest intervention may be beneficial."
	}
	return "This student demonstrates positive indicators for academic success."
}

// ConfidenceText formats the confidence as a percentage.
func (r Report) ConfidenceText() string {
	return FormatNumber(r.Confidence) + "%"
}

// FormatNumber prints a number without a trailing ".0".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		return FormatNumber(v.Num)
	case gjson.String:
		return v.Str
	case gjson.True, gjson.False:
		return fmt.Sprint(v.Bool())
	default:
		return v.Raw
	}
}
