package assessment

// The Encode* functions are total: any token outside the table, including
// the unset value, encodes to 0. BuildPayload uses Ordinal instead so that
// an unset answer is never mistaken for the lowest level.

// EncodeEducation maps a parents' education token to 0..7.
func EncodeEducation(token string) int {
	n, _ := EducationLevel(token).Ordinal()
	return n
}

// EncodeIncome maps a family income token to 0..5.
func EncodeIncome(token string) int {
	n, _ := IncomeBand(token).Ordinal()
	return n
}

// EncodeFailures maps a previous failures token to 0..3.
func EncodeFailures(token string) int {
	n, _ := FailureCategory(token).Ordinal()
	return n
}

// EncodeBehavior maps a behavior token to 0..4.
func EncodeBehavior(token string) int {
	n, _ := BehaviorRating(token).Ordinal()
	return n
}

// EncodeExtracurricular returns how many activities were selected.
// This is a count, not an ordinal category.
func EncodeExtracurricular(s ActivitySet) int {
	return s.Len()
}
