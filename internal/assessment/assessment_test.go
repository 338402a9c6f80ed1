package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeAnswers() Answers {
	return Answers{
		Age:               "20",
		AttendancePercent: "85",
		AverageMarks:      "90",
		ParentsEducation:  EducationBachelor,
		FamilyIncome:      Income10kTo25k,
		PreviousFailures:  FailuresNone,
		Extracurriculars:  NewActivitySet("Sports", "Music"),
		Behavior:          BehaviorGood,
	}
}

func TestValidateStep(t *testing.T) {
	full := completeAnswers()

	tests := []struct {
		name    string
		step    Step
		edit    func(a *Answers)
		wantErr bool
		fields  []string
	}{
		{"step1 complete", Step1, nil, false, nil},
		{"step1 blank age", Step1, func(a *Answers) { a.Age = "  " }, true, []string{FieldAge}},
		{"step1 all blank", Step1, func(a *Answers) { a.Age, a.AttendancePercent, a.AverageMarks = "", "", "" }, true,
			[]string{FieldAge, FieldAttendancePercent, FieldAverageMarks}},
		{"step2 complete", Step2, nil, false, nil},
		{"step2 missing income", Step2, func(a *Answers) { a.FamilyIncome = IncomeUnset }, true, []string{FieldFamilyIncome}},
		{"step3 complete", Step3, nil, false, nil},
		{"step3 no activities", Step3, func(a *Answers) { a.Extracurriculars = NewActivitySet() }, true, []string{FieldExtracurriculars}},
		{"step3 nil activities", Step3, func(a *Answers) { a.Extracurriculars = nil }, true, []string{FieldExtracurriculars}},
		{"step4 complete", Step4, nil, false, nil},
		{"step4 missing behavior", Step4, func(a *Answers) { a.Behavior = BehaviorUnset }, true, []string{FieldBehavior}},
		{"unknown step passes", Step(9), func(a *Answers) { *a = Answers{} }, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := full.Clone()
			if tt.edit != nil {
				tt.edit(&a)
			}
			err := ValidateStep(tt.step, a)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.True(t, StepComplete(tt.step, a))
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.step, ve.Step)
			assert.Equal(t, tt.fields, ve.Fields)
			assert.False(t, StepComplete(tt.step, a))
		})
	}
}

func TestEncodersAreTotal(t *testing.T) {
	assert.Equal(t, 0, EncodeEducation("no-formal"))
	assert.Equal(t, 5, EncodeEducation("bachelor"))
	assert.Equal(t, 7, EncodeEducation("phd"))
	assert.Equal(t, 0, EncodeEducation("wizardry"))
	assert.Equal(t, 0, EncodeEducation(""))

	assert.Equal(t, 1, EncodeIncome("10k-25k"))
	assert.Equal(t, 5, EncodeIncome("above-100k"))
	assert.Equal(t, 0, EncodeIncome("lots"))

	assert.Equal(t, 0, EncodeFailures("none"))
	assert.Equal(t, 3, EncodeFailures("multiple"))
	assert.Equal(t, 0, EncodeFailures("many"))

	assert.Equal(t, 1, EncodeBehavior("good"))
	assert.Equal(t, 4, EncodeBehavior("severe"))
	assert.Equal(t, 0, EncodeBehavior("unknown"))

	assert.Equal(t, 2, EncodeExtracurricular(NewActivitySet("Art", "Art", "Debate")))
	assert.Equal(t, 0, EncodeExtracurricular(nil))
}

func TestEncodersPreserveOrder(t *testing.T) {
	check := func(t *testing.T, opts []Option, enc func(string) int) {
		t.Helper()
		for i, o := range opts {
			assert.Equal(t, i, enc(o.Token), "token %q", o.Token)
		}
	}
	t.Run("education", func(t *testing.T) { check(t, EducationOptions(), EncodeEducation) })
	t.Run("income", func(t *testing.T) { check(t, IncomeOptions(), EncodeIncome) })
	t.Run("failures", func(t *testing.T) { check(t, FailureOptions(), EncodeFailures) })
	t.Run("behavior", func(t *testing.T) { check(t, BehaviorOptions(), EncodeBehavior) })
}

func TestBuildPayloadExample(t *testing.T) {
	a := completeAnswers()
	// Example answers use the 25k-50k band.
	a.FamilyIncome = Income25kTo50k

	p, err := BuildPayload(a)
	require.NoError(t, err)

	got, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"age": 20, "attendance_percent": 85, "avg_marks": 90, "prev_failures": 0,
		"parents_education": 5, "family_income": 2, "extracurricular": 2, "behavior_issues": 1
	}`, string(got))
	require.NoError(t, p.Validate())
}

func TestBuildPayloadRejectsUnsetAndUnknown(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(a *Answers)
		field string
	}{
		{"unset education", func(a *Answers) { a.ParentsEducation = EducationUnset }, FieldParentsEducation},
		{"unknown income", func(a *Answers) { a.FamilyIncome = "millions" }, FieldFamilyIncome},
		{"unset failures", func(a *Answers) { a.PreviousFailures = FailuresUnset }, FieldPreviousFailures},
		{"unknown behavior", func(a *Answers) { a.Behavior = "saintly" }, FieldBehavior},
		{"age not numeric", func(a *Answers) { a.Age = "twenty" }, FieldAge},
		{"attendance infinite", func(a *Answers) { a.AttendancePercent = "Inf" }, FieldAttendancePercent},
		{"marks NaN", func(a *Answers) { a.AverageMarks = "NaN" }, FieldAverageMarks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := completeAnswers()
			tt.edit(&a)
			_, err := BuildPayload(a)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBuildPayloadAcceptsLowestOrdinals(t *testing.T) {
	a := completeAnswers()
	a.ParentsEducation = EducationNoFormal
	a.FamilyIncome = IncomeBelow10k
	a.Behavior = BehaviorExcellent

	p, err := BuildPayload(a)
	require.NoError(t, err)
	assert.Equal(t, 0, p.ParentsEducation)
	assert.Equal(t, 0, p.FamilyIncome)
	assert.Equal(t, 0, p.BehaviorIssues)
}

func fillStep(w *Wizard, step Step) {
	full := completeAnswers()
	_ = w.Edit(func(a *Answers) {
		switch step {
		case Step1:
			a.Age, a.AttendancePercent, a.AverageMarks = full.Age, full.AttendancePercent, full.AverageMarks
		case Step2:
			a.ParentsEducation, a.FamilyIncome, a.PreviousFailures = full.ParentsEducation, full.FamilyIncome, full.PreviousFailures
		case Step3:
			a.Extracurriculars = full.Extracurriculars.Clone()
		case Step4:
			a.Behavior = full.Behavior
		}
	})
}

func TestWizardNextGatedByValidator(t *testing.T) {
	for _, step := range []Step{Step1, Step2, Step3} {
		t.Run(step.Title(), func(t *testing.T) {
			w := NewWizard()
			for s := Step1; s < step; s++ {
				fillStep(w, s)
				require.NoError(t, w.Next())
			}
			require.Equal(t, step, w.Step())

			// Incomplete: blocked, state unchanged.
			err := w.Next()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, step, w.Step())

			// Complete: advances.
			fillStep(w, step)
			require.NoError(t, w.Next())
			assert.Equal(t, step+1, w.Step())
		})
	}
}

func TestWizardNextAtFinalStep(t *testing.T) {
	w := NewWizard()
	for _, s := range []Step{Step1, Step2, Step3} {
		fillStep(w, s)
		require.NoError(t, w.Next())
	}
	fillStep(w, Step4)
	assert.ErrorIs(t, w.Next(), ErrFinalStep)
	assert.Equal(t, Step4, w.Step())
}

func TestWizardPrevious(t *testing.T) {
	w := NewWizard()
	assert.False(t, w.Previous(), "previous is a no-op on step 1")
	assert.Equal(t, Step1, w.Step())

	fillStep(w, Step1)
	require.NoError(t, w.Next())

	// Clearing answers does not block going back.
	require.NoError(t, w.Edit(func(a *Answers) { a.Age = "" }))
	assert.True(t, w.Previous())
	assert.Equal(t, Step1, w.Step())
}

func TestWizardAnswersAreCopies(t *testing.T) {
	w := NewWizard()
	fillStep(w, Step3)

	a := w.Answers()
	a.Extracurriculars.Toggle("Chess")
	a.Age = "99"

	assert.False(t, w.Answers().Extracurriculars.Has("Chess"))
	assert.Empty(t, w.Answers().Age)
}

func TestEmptyExtracurricularsNeverReachSubmit(t *testing.T) {
	w := NewWizard()
	fillStep(w, Step1)
	require.NoError(t, w.Next())
	fillStep(w, Step2)
	require.NoError(t, w.Next())

	err := w.Next()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, Step3, ve.Step)

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrNotFinalStep)
}

func readyWizard(t *testing.T) *Wizard {
	t.Helper()
	w := NewWizard()
	for _, s := range []Step{Step1, Step2, Step3} {
		fillStep(w, s)
		require.NoError(t, w.Next())
	}
	fillStep(w, Step4)
	return w
}

func TestWizardSubmitGuard(t *testing.T) {
	w := readyWizard(t)

	sub, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.True(t, w.Submitting())

	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.ErrorIs(t, w.Next(), ErrSubmitInFlight)
	assert.False(t, w.Previous())
	assert.ErrorIs(t, w.Edit(func(a *Answers) {}), ErrSubmitInFlight)

	assert.False(t, w.FinishSubmit("stale"), "stale ids are ignored")
	assert.True(t, w.Submitting())

	assert.True(t, w.FinishSubmit(sub.ID))
	assert.False(t, w.Submitting())
	assert.Equal(t, Step4, w.Step())
	assert.Equal(t, "20", w.Answers().Age)

	assert.False(t, w.FinishSubmit(sub.ID), "an id resolves only once")
}

func TestWizardSubmitRequiresBehavior(t *testing.T) {
	w := NewWizard()
	for _, s := range []Step{Step1, Step2, Step3} {
		fillStep(w, s)
		require.NoError(t, w.Next())
	}
	_, err := w.BeginSubmit()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, w.Submitting())
}

type fakePredictor struct {
	calls int
	got   Payload
	raw   json.RawMessage
	err   error
}

func (f *fakePredictor) Predict(_ context.Context, p Payload) (json.RawMessage, error) {
	f.calls++
	f.got = p
	return f.raw, f.err
}

func TestSubmit(t *testing.T) {
	w := readyWizard(t)
	sub, err := w.BeginSubmit()
	require.NoError(t, err)

	t.Run("success forwards the raw response", func(t *testing.T) {
		fp := &fakePredictor{raw: json.RawMessage(`{"risk":"Low","extra":true}`)}
		raw, err := Submit(context.Background(), fp, sub)
		require.NoError(t, err)
		assert.Equal(t, 1, fp.calls)
		assert.Equal(t, sub.Payload, fp.got)
		assert.JSONEq(t, `{"risk":"Low","extra":true}`, string(raw))
	})

	t.Run("failure is a network error", func(t *testing.T) {
		cause := errors.New("connection refused")
		fp := &fakePredictor{err: cause}
		_, err := Submit(context.Background(), fp, sub)
		var ne *NetworkError
		require.ErrorAs(t, err, &ne)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, SubmitFailedNotice, ne.UserMessage())
		assert.Equal(t, 1, fp.calls, "no retry")
	})
}

func TestPayloadValidateRejectsOutOfRange(t *testing.T) {
	p := Payload{Age: 20, AttendancePercent: 85, AverageMarks: 90, ParentsEducation: 9}
	assert.Error(t, p.Validate())
}

func TestCanonicalActivity(t *testing.T) {
	got, ok := CanonicalActivity("  sports ")
	assert.True(t, ok)
	assert.Equal(t, "Sports", got)

	_, ok = CanonicalActivity("Chess")
	assert.False(t, ok)
}
