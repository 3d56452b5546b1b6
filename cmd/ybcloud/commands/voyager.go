package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// NewVoyagerCommand creates the voyager command group.
func NewVoyagerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voyager",
		Short: "Read voyager data migration state",
	}

	cmd.AddCommand(newVoyagerMetricsCommand())

	return cmd
}

func newVoyagerMetricsCommand() *cobra.Command {
	var migrationUUID string

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show data migration metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrationUUID == "" {
				return constants.ErrUUIDRequired
			}

			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				metrics, err := client.Voyager().GetMigrationMetrics(ctx, &ybapi.MigrationMetricsParams{UUID: migrationUUID})
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), metrics, func(w io.Writer) error {
					if len(metrics.Metrics) == 0 {
						_, _ = io.WriteString(w, "No migration metrics found\n")

						return nil
					}

					table := tablewriter.NewWriter(w)
					table.Header("Schema", "Table", "Phase", "Status", "Rows")

					for _, metric := range metrics.Metrics {
						_ = table.Append(
							metric.SchemaName,
							metric.TableName,
							fmt.Sprint(metric.MigrationPhase),
							fmt.Sprint(metric.Status),
							fmt.Sprintf("%d/%d", metric.CountLiveRows, metric.CountTotalRows),
						)
					}

					return renderTable(table)
				})
			})
		},
	}

	cmd.Flags().StringVar(&migrationUUID, "uuid", "", "migration UUID")

	return cmd
}
