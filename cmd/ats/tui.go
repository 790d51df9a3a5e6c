package main

import (
	"fmt"

	"github.com/Veraticus/ats-resume-optimizer/internal/config"
	"github.com/Veraticus/ats-resume-optimizer/internal/input"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type tuiOptions struct {
	resume  string
	job     string
	jobText string
	dir     string
	noMouse bool
}

func tuiCmd() *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
	addTUIFlags(cmd, &opts)

	return cmd
}

func addTUIFlags(cmd *cobra.Command, opts *tuiOptions) {
	cmd.Flags().StringVarP(&opts.resume, "resume", "r", "", "pre-fill the resume path")
	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "pre-fill the job description from a file")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "pre-fill the job description")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "starting directory of the file picker")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse support")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")
}

func runTUI(cmd *cobra.Command, opts tuiOptions) error {
	jobDescription, err := readJobDescription(cmd.InOrStdin(), analyzeOptions{job: opts.job, jobText: opts.jobText})
	if err != nil {
		return err
	}

	inputs := input.NewController()
	session, err := newSession(inputs)
	if err != nil {
		return err
	}

	closeLog, err := redirectLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := tui.Run(cmd.Context(),
		tui.WithSession(session, inputs),
		tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
		tui.WithResumePath(opts.resume),
		tui.WithJobDescription(jobDescription),
		tui.WithPickerDir(config.ExpandPath(opts.dir)),
		tui.WithMouse(!opts.noMouse),
	); err != nil {
		return fmt.Errorf("interactive client failed: %w", err)
	}
	return nil
}
