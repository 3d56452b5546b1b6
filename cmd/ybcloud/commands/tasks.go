package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// NewTasksCommand creates the tasks command group.
func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage account tasks",
		Long:    "List account tasks and trigger scheduled tasks",
	}

	cmd.AddCommand(newTasksListCommand())
	cmd.AddCommand(newTasksRunCommand())

	return cmd
}

type tasksListFlags struct {
	projectID    string
	entityID     string
	entityType   string
	taskType     string
	locking      string
	internalTask string
	order        string
	orderBy      string
	limit        int
	pages        int
	allPages     bool
}

func (f *tasksListFlags) params(account string) (*ybapi.ListTasksParams, error) {
	if f.entityType != "" && !slices.Contains(ybapi.TaskEntityTypes(), ybapi.TaskEntityType(f.entityType)) {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidEntityType, f.entityType)
	}

	if f.taskType != "" && !slices.Contains(ybapi.TaskTypes(), ybapi.TaskType(f.taskType)) {
		return nil, fmt.Errorf("%w: %q", constants.ErrInvalidTaskType, f.taskType)
	}

	locking, err := optionalBool(f.locking, "locking")
	if err != nil {
		return nil, err
	}

	internalTask, err := optionalBool(f.internalTask, "internal")
	if err != nil {
		return nil, err
	}

	return &ybapi.ListTasksParams{
		AccountID:    account,
		ProjectID:    f.projectID,
		EntityID:     f.entityID,
		EntityType:   ybapi.TaskEntityType(f.entityType),
		TaskType:     ybapi.TaskType(f.taskType),
		Locking:      locking,
		InternalTask: internalTask,
		Order:        f.order,
		OrderBy:      f.orderBy,
		Limit:        f.limit,
	}, nil
}

func newTasksListCommand() *cobra.Command {
	flags := &tasksListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account tasks",
		Long: `List tasks of an account.

By default the first page is shown. --pages walks that many pages and
--all-pages walks every page.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := accountID()
			if err != nil {
				return err
			}

			params, err := flags.params(account)
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				tasks, err := fetchTasks(ctx, client.Tasks(), params, flags)
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), tasks, func(w io.Writer) error {
					return renderTasksTable(w, tasks)
				})
			})
		},
	}

	cmd.Flags().StringVar(&flags.projectID, "project", "", "filter by project ID")
	cmd.Flags().StringVar(&flags.entityID, "entity-id", "", "filter by entity ID")
	cmd.Flags().StringVar(&flags.entityType, "entity-type", "", "filter by entity type (BACKUP, CLUSTER, CLUSTER_ALLOW_LIST, PROJECT)")
	cmd.Flags().StringVar(&flags.taskType, "task-type", "", "filter by task type (e.g. CREATE_CLUSTER)")
	cmd.Flags().StringVar(&flags.locking, "locking", "", "filter by locking tasks (true or false)")
	cmd.Flags().StringVar(&flags.internalTask, "internal", "", "filter by internal tasks (true or false)")
	cmd.Flags().StringVar(&flags.order, "order", "", "sort order (asc or desc)")
	cmd.Flags().StringVar(&flags.orderBy, "order-by", "", "sort field")
	cmd.Flags().IntVar(&flags.limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&flags.pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().BoolVar(&flags.allPages, "all-pages", false, "fetch all pages")

	return cmd
}

func fetchTasks(
	ctx context.Context, tasks ybapi.TasksClient, params *ybapi.ListTasksParams, flags *tasksListFlags,
) ([]ybapi.TaskData, error) {
	if flags.allPages {
		return tasks.ListAll(ctx, params)
	}

	if flags.pages <= 1 {
		list, err := tasks.List(ctx, params)
		if err != nil {
			return nil, err
		}

		return list.Data, nil
	}

	query, err := tasks.Infinite(params)
	if err != nil {
		return nil, err
	}

	var items []ybapi.TaskData

	for range flags.pages {
		page, err := query.FetchNextPage(ctx)
		if errors.Is(err, ybapi.ErrNoMorePages) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("listing tasks: %w", err)
		}

		list, err := ybapi.Decode[ybapi.TaskListResponse](page.Data)
		if err != nil {
			return nil, fmt.Errorf("listing tasks: %w", err)
		}

		items = append(items, list.Data...)

		if !page.HasNext() {
			break
		}
	}

	return items, nil
}

func renderTasksTable(w io.Writer, tasks []ybapi.TaskData) error {
	if len(tasks) == 0 {
		_, _ = io.WriteString(w, "No tasks found\n")

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Type", "Entity Type", "Entity ID", "State", "Locking", "Created", "Completed")

	for _, task := range tasks {
		info := task.Info
		_ = table.Append(
			info.ID,
			string(info.TaskType),
			string(info.EntityType),
			orNotAvailable(info.EntityID),
			orNotAvailable(info.State),
			formatBool(info.Locking),
			formatTime(info.CreatedOn),
			formatTime(info.CompletedOn),
		)
	}

	return renderTable(table)
}

func newTasksRunCommand() *cobra.Command {
	var instance string

	cmd := &cobra.Command{
		Use:   "run TASK",
		Short: "Trigger a scheduled task",
		Long:  "Run a scheduled task immediately. Cached task lists are invalidated on success.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(ctx context.Context, client ybapi.Client) error {
				result, err := client.ScheduledTasks().Run(ctx, &ybapi.RunScheduledTaskParams{
					Task:         args[0],
					TaskInstance: instance,
				})
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					table := tablewriter.NewWriter(w)
					table.Header("Property", "Value")
					_ = table.Append("Task", result.Data.Task)
					_ = table.Append("Instance", orNotAvailable(result.Data.TaskInstance))
					_ = table.Append("State", orNotAvailable(result.Data.State))

					return renderTable(table)
				})
			})
		},
	}

	cmd.Flags().StringVar(&instance, "instance", "", "task instance")

	return cmd
}
