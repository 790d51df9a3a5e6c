package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/ats-resume-optimizer/internal/analysis"
	"github.com/Veraticus/ats-resume-optimizer/internal/cli"
	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/config"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/model"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/themes"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/viewmodel"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputSummary = "summary"
	outputJSON    = "json"

	stdinPath = "-"
)

type analyzeOptions struct {
	resume  string
	job     string
	jobText string
	output  string
	width   int
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a resume against a job description",
		Long: `Send a resume and a job description to the analysis service and print
the match report.

The job description is read from --job-text, from the file given with --job,
or from standard input with --job -.`,
		Example: `  ats analyze --resume ~/cv.pdf --job posting.txt
  pbpaste | ats analyze --resume ~/cv.pdf --job - --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "resume file (PDF)")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "file holding the job description, - for stdin")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "job description text")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputSummary, "output format (summary, json)")
	cmd.Flags().IntVar(&opts.width, "width", 80, "report width in columns")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts analyzeOptions) error {
	if opts.output != outputSummary && opts.output != outputJSON {
		return fmt.Errorf("%w: invalid output format: %s", common.ErrInvalidConfig, opts.output)
	}

	jobDescription, err := readJobDescription(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}

	inputs := input.NewController()
	inputs.SetJobDescription(jobDescription)
	if opts.resume != "" {
		doc, err := loadResume(opts.resume)
		if err != nil {
			return common.NewUserError("Could not read the resume file", err)
		}
		inputs.SetDocument(doc)
	}

	session, err := newSession(inputs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx = interrupts.HandleInterrupts(ctx)

	busy := cli.NewBusyIndicator(cmd.ErrOrStderr(), viewmodel.BusyLabel)
	defer busy.Stop()
	defer session.Subscribe(busy.Listener())()
	defer session.Subscribe(func(snap analysis.Snapshot) {
		interrupts.SetInFlight(snap.Status == analysis.StatusInFlight)
	})()

	submitErr := session.Submit(ctx)
	busy.Stop()

	if interrupts.WasInterrupted() {
		return common.NewUserError("Analysis interrupted", context.Canceled)
	}

	snap := session.Snapshot()
	out := cmd.OutOrStdout()

	if submitErr != nil {
		// JSON output stays machine readable: errors go to stderr only.
		if opts.output == outputSummary {
			printReport(out, snap, inputs, opts.width)
		}
		if errors.Is(submitErr, common.ErrValidation) {
			return common.NewUserError(snap.Notice, submitErr)
		}
		return common.NewUserError(snap.ErrorMessage, submitErr)
	}

	if opts.output == outputJSON {
		return cli.WriteJSON(out, *snap.Result)
	}
	printReport(out, snap, inputs, opts.width)
	return nil
}

// newSession wires the analysis service client configured by flags, the
// config file and the environment into a session over inputs.
func newSession(inputs *input.Controller) (*analysis.Session, error) {
	svc, err := config.LoadServiceConfig()
	if err != nil {
		return nil, err
	}

	client, err := svc.NewClient()
	if err != nil {
		return nil, err
	}

	return analysis.NewSession(inputs, client, analysis.WithTimeout(svc.Timeout)), nil
}

func printReport(w io.Writer, snap analysis.Snapshot, inputs *input.Controller, width int) {
	formatter := cli.NewReportFormatter(themes.GetTheme(viper.GetString("ui.theme")), width)
	fmt.Fprintln(w, formatter.Format(viewmodel.Build(snap, inputs.Snapshot())))
}

func loadResume(path string) (*model.Document, error) {
	resolved, err := config.ResolveDocumentPath(path)
	if err != nil {
		return nil, err
	}
	return model.NewDocument(resolved)
}

func readJobDescription(stdin io.Reader, opts analyzeOptions) (string, error) {
	switch {
	case opts.jobText != "":
		return opts.jobText, nil
	case opts.job == stdinPath:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read job description from stdin: %w", err)
		}
		return string(data), nil
	case opts.job != "":
		data, err := os.ReadFile(config.ExpandPath(opts.job))
		if err != nil {
			return "", common.NewUserError("Could not read the job description file", err)
		}
		return string(data), nil
	default:
		return "", nil
	}
}
