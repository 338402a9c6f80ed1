package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edurisk/internal/assessment"
	"github.com/abhisek/edurisk/internal/report"
)

// predictFlags mirrors the wizard's four steps on the command line.
type predictFlags struct {
	age, attendance, marks string
	education, income      string
	failures, behavior     string
	activities             []string

	format string
	raw    bool
	dryRun bool
}

func (f predictFlags) answers() (assessment.Answers, error) {
	a := assessment.Answers{
		Age:               strings.TrimSpace(f.age),
		AttendancePercent: strings.TrimSpace(f.attendance),
		AverageMarks:      strings.TrimSpace(f.marks),
		ParentsEducation:  assessment.EducationLevel(f.education),
		FamilyIncome:      assessment.IncomeBand(f.income),
		PreviousFailures:  assessment.FailureCategory(f.failures),
		Behavior:          assessment.BehaviorRating(f.behavior),
	}

	names := make([]string, 0, len(f.activities))
	for _, raw := range f.activities {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			name, ok := assessment.CanonicalActivity(part)
			if !ok {
				return assessment.Answers{}, fmt.Errorf("unknown activity %q (want one of: %s)",
					strings.TrimSpace(part), strings.Join(assessment.Activities, ", "))
			}
			names = append(names, name)
		}
	}
	a.Extracurriculars = assessment.NewActivitySet(names...)
	return a, nil
}

func newPredictCmd(e *env) *cobra.Command {
	var f predictFlags

	c := &cobra.Command{
		Use:   "predict",
		Short: "Submit one assessment from flags and print the report",
		Example: "  edurisk predict --age 20 --attendance 85 --marks 90 \\\n" +
			"    --parents-education bachelor --income 25k-50k --failures none \\\n" +
			"    --activity Sports --activity Music --behavior good",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(f.format)
			if err != nil {
				return err
			}
			answers, err := f.answers()
			if err != nil {
				return err
			}
			if err := assessment.ValidateAll(answers); err != nil {
				return err
			}
			payload, err := assessment.BuildPayload(answers)
			if err != nil {
				return err
			}
			if err := payload.Validate(); err != nil {
				return fmt.Errorf("payload: %w", err)
			}

			out := cmd.OutOrStdout()
			if f.dryRun {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			sub := assessment.Submission{ID: uuid.NewString(), Payload: payload}
			raw, err := assessment.Submit(cmd.Context(), e.client(), sub)
			if err != nil {
				e.logger.Warn("prediction failed", zap.String("submission_id", sub.ID), zap.Error(err))
				return err
			}
			e.logger.Info("prediction received", zap.String("submission_id", sub.ID), zap.Int("bytes", len(raw)))

			if f.raw {
				_, err := fmt.Fprintln(out, string(raw))
				return err
			}
			return writeReport(out, raw, format)
		},
	}

	fl := c.Flags()
	fl.StringVar(&f.age, "age", "", "Student age in years")
	fl.StringVar(&f.attendance, "attendance", "", "Attendance percentage")
	fl.StringVar(&f.marks, "marks", "", "Average marks")
	fl.StringVar(&f.education, "parents-education", "", "Parents' education: "+tokens(assessment.EducationOptions()))
	fl.StringVar(&f.income, "income", "", "Family income: "+tokens(assessment.IncomeOptions()))
	fl.StringVar(&f.failures, "failures", "", "Previous failures: "+tokens(assessment.FailureOptions()))
	fl.StringArrayVar(&f.activities, "activity", nil, "Extracurricular activity, repeatable or comma separated")
	fl.StringVar(&f.behavior, "behavior", "", "Behavior rating: "+tokens(assessment.BehaviorOptions()))
	fl.StringVarP(&f.format, "format", "f", string(report.FormatText), "Output format: text, markdown or html")
	fl.BoolVar(&f.raw, "raw", false, "Print the service response without interpretation")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Print the encoded payload and exit without submitting")
	return c
}

func tokens(opts []assessment.Option) string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Token)
	}
	return strings.Join(out, ", ")
}
