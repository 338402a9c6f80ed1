package assessment

import (
	"math"
	"strconv"
	"strings"
)

// Payload is the numeric request body sent to the prediction service.
type Payload struct {
	Age               float64 `json:"age"`
	AttendancePercent float64 `json:"attendance_percent"`
	AverageMarks      float64 `json:"avg_marks"`
	PreviousFailures  int     `json:"prev_failures"`
	ParentsEducation  int     `json:"parents_education"`
	FamilyIncome      int     `json:"family_income"`
	Extracurricular   int     `json:"extracurricular"`
	BehaviorIssues    int     `json:"behavior_issues"`
}

// BuildPayload encodes a complete answer record. It fails with a
// *FieldError when a numeric answer does not parse to a finite number or
// when an enum answer is unset or unrecognized.
func BuildPayload(a Answers) (Payload, error) {
	var p Payload
	var err error

	if p.Age, err = parseNumber(FieldAge, a.Age); err != nil {
		return Payload{}, err
	}
	if p.AttendancePercent, err = parseNumber(FieldAttendancePercent, a.AttendancePercent); err != nil {
		return Payload{}, err
	}
	if p.AverageMarks, err = parseNumber(FieldAverageMarks, a.AverageMarks); err != nil {
		return Payload{}, err
	}

	if p.PreviousFailures, err = ordinal(FieldPreviousFailures, string(a.PreviousFailures), a.PreviousFailures.Ordinal); err != nil {
		return Payload{}, err
	}
	if p.ParentsEducation, err = ordinal(FieldParentsEducation, string(a.ParentsEducation), a.ParentsEducation.Ordinal); err != nil {
		return Payload{}, err
	}
	if p.FamilyIncome, err = ordinal(FieldFamilyIncome, string(a.FamilyIncome), a.FamilyIncome.Ordinal); err != nil {
		return Payload{}, err
	}
	if p.BehaviorIssues, err = ordinal(FieldBehavior, string(a.Behavior), a.Behavior.Ordinal); err != nil {
		return Payload{}, err
	}

	p.Extracurricular = EncodeExtracurricular(a.Extracurriculars)
	return p, nil
}

func parseNumber(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FieldError{Field: field, Value: raw, Err: errNotNumeric}
	}
	return v, nil
}

func ordinal(field, token string, lookup func() (int, bool)) (int, error) {
	if token == "" {
		return 0, &FieldError{Field: field, Err: errUnset}
	}
	n, ok := lookup()
	if !ok {
		return 0, &FieldError{Field: field, Value: token, Err: errUnrecognized}
	}
	return n, nil
}
