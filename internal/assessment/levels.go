package assessment

import "strings"

// Option is a selectable answer token with its display label.
type Option struct {
	Token       string
	Label       string
	Description string
}

// EducationLevel is the highest education level of the student's parents.
// The zero value is unset.
type EducationLevel string

const (
	EducationUnset      EducationLevel = ""
	EducationNoFormal   EducationLevel = "no-formal"
	EducationPrimary    EducationLevel = "primary"
	EducationSecondary  EducationLevel = "secondary"
	EducationHighSchool EducationLevel = "high-school"
	EducationDiploma    EducationLevel = "diploma"
	EducationBachelor   EducationLevel = "bachelor"
	EducationMaster     EducationLevel = "master"
	EducationPhD        EducationLevel = "phd"
)

var educationOrdinals = map[EducationLevel]int{
	EducationNoFormal:   0,
	EducationPrimary:    1,
	EducationSecondary:  2,
	EducationHighSchool: 3,
	EducationDiploma:    4,
	EducationBachelor:   5,
	EducationMaster:     6,
	EducationPhD:        7,
}

// Ordinal reports the encoded value and whether the token is recognized.
func (e EducationLevel) Ordinal() (int, bool) {
	n, ok := educationOrdinals[e]
	return n, ok
}

// IncomeBand is the family's monthly income range. The zero value is unset.
type IncomeBand string

const (
	IncomeUnset     IncomeBand = ""
	IncomeBelow10k  IncomeBand = "below-10k"
	Income10kTo25k  IncomeBand = "10k-25k"
	Income25kTo50k  IncomeBand = "25k-50k"
	Income50kTo75k  IncomeBand = "50k-75k"
	Income75kTo100k IncomeBand = "75k-100k"
	IncomeAbove100k IncomeBand = "above-100k"
)

var incomeOrdinals = map[IncomeBand]int{
	IncomeBelow10k:  0,
	Income10kTo25k:  1,
	Income25kTo50k:  2,
	Income50kTo75k:  3,
	Income75kTo100k: 4,
	IncomeAbove100k: 5,
}

// Ordinal reports the encoded value and whether the token is recognized.
func (b IncomeBand) Ordinal() (int, bool) {
	n, ok := incomeOrdinals[b]
	return n, ok
}

// FailureCategory counts previous academic failures. The zero value is unset.
type FailureCategory string

const (
	FailuresUnset    FailureCategory = ""
	FailuresNone     FailureCategory = "none"
	FailuresOne      FailureCategory = "one"
	FailuresTwo      FailureCategory = "two"
	FailuresMultiple FailureCategory = "multiple"
)

var failureOrdinals = map[FailureCategory]int{
	FailuresNone:     0,
	FailuresOne:      1,
	FailuresTwo:      2,
	FailuresMultiple: 3,
}

// Ordinal reports the encoded value and whether the token is recognized.
func (f FailureCategory) Ordinal() (int, bool) {
	n, ok := failureOrdinals[f]
	return n, ok
}

// BehaviorRating is the self-reported behavior severity. The zero value is unset.
type BehaviorRating string

const (
	BehaviorUnset      BehaviorRating = ""
	BehaviorExcellent  BehaviorRating = "excellent"
	BehaviorGood       BehaviorRating = "good"
	BehaviorAverage    BehaviorRating = "average"
	BehaviorConcerning BehaviorRating = "concerning"
	BehaviorSevere     BehaviorRating = "severe"
)

var behaviorOrdinals = map[BehaviorRating]int{
	BehaviorExcellent:  0,
	BehaviorGood:       1,
	BehaviorAverage:    2,
	BehaviorConcerning: 3,
	BehaviorSevere:     4,
}

// Ordinal reports the encoded value and whether the token is recognized.
func (b BehaviorRating) Ordinal() (int, bool) {
	n, ok := behaviorOrdinals[b]
	return n, ok
}

// EducationOptions lists education levels in ascending order.
func EducationOptions() []Option {
	return []Option{
		{Token: string(EducationNoFormal), Label: "No Formal Education"},
		{Token: string(EducationPrimary), Label: "Primary School"},
		{Token: string(EducationSecondary), Label: "Secondary School"},
		{Token: string(EducationHighSchool), Label: "High School"},
		{Token: string(EducationDiploma), Label: "Diploma/Certificate"},
		{Token: string(EducationBachelor), Label: "Bachelor's Degree"},
		{Token: string(EducationMaster), Label: "Master's Degree"},
		{Token: string(EducationPhD), Label: "PhD/Doctorate"},
	}
}

// IncomeOptions lists income bands in ascending order.
func IncomeOptions() []Option {
	return []Option{
		{Token: string(IncomeBelow10k), Label: "Below ₹10,000"},
		{Token: string(Income10kTo25k), Label: "₹10,000 - ₹25,000"},
		{Token: string(Income25kTo50k), Label: "₹25,000 - ₹50,000"},
		{Token: string(Income50kTo75k), Label: "₹50,000 - ₹75,000"},
		{Token: string(Income75kTo100k), Label: "₹75,000 - ₹100,000"},
		{Token: string(IncomeAbove100k), Label: "Above ₹100,000"},
	}
}

// FailureOptions lists failure categories in ascending order.
func FailureOptions() []Option {
	return []Option{
		{Token: string(FailuresNone), Label: "None"},
		{Token: string(FailuresOne), Label: "1 Subject/Year"},
		{Token: string(FailuresTwo), Label: "2 Subjects/Years"},
		{Token: string(FailuresMultiple), Label: "3+ Subjects/Years"},
	}
}

// BehaviorOptions lists behavior ratings from best to worst.
func BehaviorOptions() []Option {
	return []Option{
		{Token: string(BehaviorExcellent), Label: "Excellent", Description: "No behavioral issues"},
		{Token: string(BehaviorGood), Label: "Good", Description: "Minor occasional issues"},
		{Token: string(BehaviorAverage), Label: "Average", Description: "Some behavioral concerns"},
		{Token: string(BehaviorConcerning), Label: "Concerning", Description: "Frequent behavioral issues"},
		{Token: string(BehaviorSevere), Label: "Severe", Description: "Major behavioral problems"},
	}
}

// Activities is the fixed list of extracurricular activities offered in the form.
var Activities = []string{
	"Sports",
	"Music",
	"Drama/Theater",
	"Art",
	"Debate",
	"Science Club",
	"Student Government",
	"Volunteer Work",
	"Programming/Tech",
	"Language Clubs",
}

// CanonicalActivity returns the listed activity matching name, ignoring case
// and surrounding space.
func CanonicalActivity(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, a := range Activities {
		if strings.EqualFold(a, name) {
			return a, true
		}
	}
	return "", false
}
