package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/ats-resume-optimizer/internal/cli"
	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/config"
	"github.com/spf13/cobra"
)

const defaultPingTimeout = 10 * time.Second

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the analysis service is reachable",
		RunE:  runPing,
	}
}

func runPing(cmd *cobra.Command, _ []string) error {
	svc, err := config.LoadServiceConfig()
	if err != nil {
		return err
	}

	client, err := svc.NewClient()
	if err != nil {
		return err
	}

	timeout := svc.Timeout
	if timeout == 0 {
		timeout = defaultPingTimeout
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	message, err := client.Ping(ctx)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("Analysis service at %s is unreachable", client.Endpoint()), err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s (%s)", message, client.Endpoint())))
	return nil
}
