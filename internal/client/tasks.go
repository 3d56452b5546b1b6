package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// TasksClient implements ybapi.TasksClient.
type TasksClient struct {
	queries *ybapi.QueryClient
}

// NewTasksClient creates a new tasks client.
func NewTasksClient(queries *ybapi.QueryClient) *TasksClient {
	return &TasksClient{queries: queries}
}

// List implements ybapi.TasksClient.List.
func (c *TasksClient) List(ctx context.Context, params *ybapi.ListTasksParams) (*ybapi.TaskListResponse, error) {
	bag, err := listTasksParams(params)
	if err != nil {
		return nil, err
	}

	return fetchAs[ybapi.TaskListResponse](ctx, c.queries, ListTasksAll, bag, "listing tasks")
}

// ListAll implements ybapi.TasksClient.ListAll.
func (c *TasksClient) ListAll(ctx context.Context, params *ybapi.ListTasksParams) ([]ybapi.TaskData, error) {
	bag, err := listTasksParams(params)
	if err != nil {
		return nil, err
	}

	return collectPages[ybapi.TaskData](ctx, c.queries, ListTasksAll, bag, "listing all tasks")
}

// Infinite implements ybapi.TasksClient.Infinite.
func (c *TasksClient) Infinite(params *ybapi.ListTasksParams) (*ybapi.InfiniteQuery, error) {
	bag, err := listTasksParams(params)
	if err != nil {
		return nil, err
	}

	return c.queries.Infinite(ListTasksAll, bag), nil
}

func listTasksParams(params *ybapi.ListTasksParams) (ybapi.Params, error) {
	if params == nil {
		params = &ybapi.ListTasksParams{}
	}

	bag, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	return bag, nil
}
