package assessment

import "strings"

// Field names used in validation and payload errors.
const (
	FieldAge               = "age"
	FieldAttendancePercent = "attendance_percent"
	FieldAverageMarks      = "avg_marks"
	FieldParentsEducation  = "parents_education"
	FieldFamilyIncome      = "family_income"
	FieldPreviousFailures  = "prev_failures"
	FieldExtracurriculars  = "extracurricular"
	FieldBehavior          = "behavior_issues"
)

// ValidateStep checks that every answer required by step is present.
// It looks only at the current answers. Steps outside Step1..Step4 pass.
func ValidateStep(step Step, a Answers) error {
	var missing []string

	switch step {
	case Step1:
		if strings.TrimSpace(a.Age) == "" {
			missing = append(missing, FieldAge)
		}
		if strings.TrimSpace(a.AttendancePercent) == "" {
			missing = append(missing, FieldAttendancePercent)
		}
		if strings.TrimSpace(a.AverageMarks) == "" {
			missing = append(missing, FieldAverageMarks)
		}
	case Step2:
		if a.ParentsEducation == EducationUnset {
			missing = append(missing, FieldParentsEducation)
		}
		if a.FamilyIncome == IncomeUnset {
			missing = append(missing, FieldFamilyIncome)
		}
		if a.PreviousFailures == FailuresUnset {
			missing = append(missing, FieldPreviousFailures)
		}
	case Step3:
		if a.Extracurriculars.Len() < 1 {
			missing = append(missing, FieldExtracurriculars)
		}
	case Step4:
		if a.Behavior == BehaviorUnset {
			missing = append(missing, FieldBehavior)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Step: step, Fields: missing}
	}
	return nil
}

// StepComplete reports whether step passes validation.
func StepComplete(step Step, a Answers) bool {
	return ValidateStep(step, a) == nil
}

// ValidateAll runs every step's validation in order and returns the first failure.
func ValidateAll(a Answers) error {
	for _, s := range Steps() {
		if err := ValidateStep(s, a); err != nil {
			return err
		}
	}
	return nil
}
