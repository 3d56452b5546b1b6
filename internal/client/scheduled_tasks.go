package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// ScheduledTasksClient implements ybapi.ScheduledTasksClient.
type ScheduledTasksClient struct {
	mutations *ybapi.MutationClient
}

// NewScheduledTasksClient creates a new scheduled tasks client.
func NewScheduledTasksClient(mutations *ybapi.MutationClient) *ScheduledTasksClient {
	return &ScheduledTasksClient{mutations: mutations}
}

// Run implements ybapi.ScheduledTasksClient.Run. The task name is lifted into
// the path and the remaining fields are sent as the request body.
func (c *ScheduledTasksClient) Run(
	ctx context.Context, params *ybapi.RunScheduledTaskParams,
) (*ybapi.RunScheduledTaskResponse, error) {
	if params == nil {
		params = &ybapi.RunScheduledTaskParams{}
	}

	body, err := ybapi.ParamsFromStruct(params)
	if err != nil {
		return nil, fmt.Errorf("running scheduled task: %w", err)
	}

	payload, err := c.mutations.Mutate(ctx, RunScheduledTask, body)
	if err != nil {
		return nil, fmt.Errorf("running scheduled task: %w", err)
	}

	if len(payload) == 0 {
		return &ybapi.RunScheduledTaskResponse{
			Data: ybapi.ScheduledTaskRun{Task: params.Task, TaskInstance: params.TaskInstance},
		}, nil
	}

	result, err := ybapi.Decode[ybapi.RunScheduledTaskResponse](payload)
	if err != nil {
		return nil, fmt.Errorf("running scheduled task: %w", err)
	}

	return result, nil
}
