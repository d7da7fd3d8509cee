package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSchedulesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List the named schedules from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root.cfg == nil {
				return errors.New("schedules requires --config")
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tENTRIES\tTOTAL")
			for _, name := range root.cfg.ScheduleNames() {
				s, err := root.cfg.Schedule(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, humanize.Comma(int64(len(s))), s.Total())
			}
			return tw.Flush()
		},
	}
}
