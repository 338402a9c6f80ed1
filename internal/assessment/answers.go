// Package assessment holds the pure decision layer of the student risk
// assessment: the answer record, per-step validation, ordinal encoding,
// payload construction and the step wizard state machine.
package assessment

import "sort"

// Answers is the answer record collected by the wizard.
type Answers struct {
	// Numeric answers are kept as typed text until submission.
	Age               string
	AttendancePercent string
	AverageMarks      string

	ParentsEducation EducationLevel
	FamilyIncome     IncomeBand
	PreviousFailures FailureCategory
	Extracurriculars ActivitySet
	Behavior         BehaviorRating
}

// Clone returns a deep copy of the answers.
func (a Answers) Clone() Answers {
	c := a
	c.Extracurriculars = a.Extracurriculars.Clone()
	return c
}

// ActivitySet is an unordered set of activity names.
type ActivitySet map[string]struct{}

// NewActivitySet builds a set from names, dropping duplicates.
func NewActivitySet(names ...string) ActivitySet {
	s := make(ActivitySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s ActivitySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Toggle adds name when absent and removes it when present.
// The receiver must be non-nil.
func (s ActivitySet) Toggle(name string) {
	if s.Has(name) {
		delete(s, name)
		return
	}
	s[name] = struct{}{}
}

// Len returns the number of selected activities.
func (s ActivitySet) Len() int {
	return len(s)
}

// Names returns the selected activities sorted alphabetically.
func (s ActivitySet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the set.
func (s ActivitySet) Clone() ActivitySet {
	c := make(ActivitySet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}
