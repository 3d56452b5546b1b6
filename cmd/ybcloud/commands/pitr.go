package commands

import (
	"context"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// NewPITRCommand creates the pitr command group.
func NewPITRCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitr",
		Short: "Read point-in-time-recovery schedules",
	}

	cmd.AddCommand(newPITRListCommand())

	return cmd
}

func newPITRListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List PITR schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				schedules, err := client.PITR().ListSchedules(ctx)
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), schedules, func(w io.Writer) error {
					if len(schedules.Schedules) == 0 {
						_, _ = io.WriteString(w, "No PITR schedules found\n")

						return nil
					}

					table := tablewriter.NewWriter(w)
					table.Header("ID", "Keyspace", "Interval", "Retention", "Earliest Recoverable")

					for _, schedule := range schedules.Schedules {
						_ = table.Append(
							strconv.Itoa(schedule.ID),
							schedule.DatabaseKeyspace,
							schedule.Interval,
							schedule.Retention,
							orNotAvailable(schedule.EarliestRecoverableTime),
						)
					}

					return renderTable(table)
				})
			})
		},
	}
}
