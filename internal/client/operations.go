package client

import (
	"net/http"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
)

// Endpoint catalog.
var (
	ListTasksAll = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "ListTasksAll",
		Method:     http.MethodGet,
		Path:       "/private/accounts/{accountId}/tasks",
		PathParams: []string{"accountId"},
		QueryParams: []string{
			"projectId", "entity_id", "entity_type", "task_type", "locking",
			"internal_task", "order", "order_by",
			constants.ParamLimit, constants.ParamContinuationToken,
		},
	})

	RunScheduledTask = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "RunScheduledTask",
		Method:     http.MethodPost,
		Path:       "/private/scheduled_tasks/{task}",
		PathParams: []string{"task"},
	})

	GetRelease = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "GetRelease",
		Method:     http.MethodGet,
		Path:       "/public/accounts/{accountId}/software/tracks/{trackId}/releases/{releaseId}",
		PathParams: []string{"accountId", "trackId", "releaseId"},
	})

	GetTrackByID = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "GetTrackById",
		Method:     http.MethodGet,
		Path:       "/public/accounts/{accountId}/software/tracks/{trackId}",
		PathParams: []string{"accountId", "trackId"},
	})

	ListReleases = ybapi.MustOperation(ybapi.OperationSpec{
		Name:        "ListReleases",
		Method:      http.MethodGet,
		Path:        "/public/accounts/{accountId}/software/tracks/{trackId}/releases",
		PathParams:  []string{"accountId", "trackId"},
		QueryParams: []string{constants.ParamLimit, constants.ParamContinuationToken},
	})

	ListTracksForAccount = ybapi.MustOperation(ybapi.OperationSpec{
		Name:       "ListTracksForAccount",
		Method:     http.MethodGet,
		Path:       "/public/accounts/{accountId}/software/tracks",
		PathParams: []string{"accountId"},
	})

	GetPITRSchedules = ybapi.MustOperation(ybapi.OperationSpec{
		Name:   "GetPITRSchedules",
		Method: http.MethodGet,
		Path:   "/pitr",
	})

	GetVoyagerDataMigrationMetrics = ybapi.MustOperation(ybapi.OperationSpec{
		Name:        "GetVoyagerDataMigrationMetrics",
		Method:      http.MethodGet,
		Path:        "/migration_metrics",
		QueryParams: []string{"uuid"},
	})
)

// Operations returns every operation in the catalog.
func Operations() []*ybapi.Operation {
	return []*ybapi.Operation{
		ListTasksAll,
		RunScheduledTask,
		GetRelease,
		GetTrackByID,
		ListReleases,
		ListTracksForAccount,
		GetPITRSchedules,
		GetVoyagerDataMigrationMetrics,
	}
}
