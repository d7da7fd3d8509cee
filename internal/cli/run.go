package cli

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/lucrnz/durseq/internal/durations"
	"github.com/lucrnz/durseq/internal/logging"
	"github.com/lucrnz/durseq/internal/retry"
)

type runOptions struct {
	schedule durations.List
	named    string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [--schedule LIST | --named NAME] -- COMMAND [ARGS...]",
		Short: "Run a command, retrying on failure with waits from a duration list",
		Example: `  durseq run --schedule "1s*3,30s" -- curl -fsS https://example.com/health
  durseq --config durseq.yaml run --named default -- ./deploy.sh`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := opts.resolve(cmd, root)
			if err != nil {
				return err
			}
			r := &retry.Runner{
				Schedule: schedule,
				Logger:   logging.FromContext(cmd.Context()),
			}
			return r.Run(cmd.Context(), commandAttempt(cmd, args))
		},
	}

	cmd.Flags().Var(&opts.schedule, "schedule", "Waits between attempts (e.g., \"1s*3;30s\")")
	cmd.Flags().StringVar(&opts.named, "named", "", "Name of a schedule from the config file")
	cmd.MarkFlagsMutuallyExclusive("schedule", "named")
	cmd.MarkFlagsOneRequired("schedule", "named")

	return cmd
}

func (o *runOptions) resolve(cmd *cobra.Command, root *rootOptions) (durations.List, error) {
	if !cmd.Flags().Changed("named") {
		return o.schedule, nil
	}
	if root.cfg == nil {
		return nil, errors.New("--named requires --config")
	}
	return root.cfg.Schedule(o.named)
}

// commandAttempt returns a retry.Func that runs args as a child process
// wired to the command's stdio.
func commandAttempt(cmd *cobra.Command, args []string) retry.Func {
	return func(ctx context.Context, attempt int) error {
		logging.FromContext(ctx).Debug("attempt_start", "attempt", attempt, "command", args[0])

		c := exec.CommandContext(ctx, args[0], args[1:]...)
		c.Stdin = cmd.InOrStdin()
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		if err := c.Run(); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return nil
	}
}
