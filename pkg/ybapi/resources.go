package ybapi

import "time"

// TaskEntityType filters tasks by the kind of entity they act on.
type TaskEntityType string

// Task entity types.
const (
	TaskEntityBackup           TaskEntityType = "BACKUP"
	TaskEntityCluster          TaskEntityType = "CLUSTER"
	TaskEntityClusterAllowList TaskEntityType = "CLUSTER_ALLOW_LIST"
	TaskEntityProject          TaskEntityType = "PROJECT"
)

// TaskEntityTypes lists every TaskEntityType.
func TaskEntityTypes() []TaskEntityType {
	return []TaskEntityType{TaskEntityBackup, TaskEntityCluster, TaskEntityClusterAllowList, TaskEntityProject}
}

// TaskType filters tasks by operation.
type TaskType string

// Task types.
const (
	TaskTypeCreateCluster  TaskType = "CREATE_CLUSTER"
	TaskTypeEditCluster    TaskType = "EDIT_CLUSTER"
	TaskTypeDeleteCluster  TaskType = "DELETE_CLUSTER"
	TaskTypeEditAllowList  TaskType = "EDIT_ALLOW_LIST"
	TaskTypeCreateBackup   TaskType = "CREATE_BACKUP"
	TaskTypeRestoreBackup  TaskType = "RESTORE_BACKUP"
	TaskTypeDeleteProject  TaskType = "DELETE_PROJECT"
	TaskTypeUpgradeCluster TaskType = "UPGRADE_CLUSTER"
	TaskTypePauseCluster   TaskType = "PAUSE_CLUSTER"
	TaskTypeResumeCluster  TaskType = "RESUME_CLUSTER"
)

// TaskTypes lists every TaskType.
func TaskTypes() []TaskType {
	return []TaskType{
		TaskTypeCreateCluster, TaskTypeEditCluster, TaskTypeDeleteCluster,
		TaskTypeEditAllowList, TaskTypeCreateBackup, TaskTypeRestoreBackup,
		TaskTypeDeleteProject, TaskTypeUpgradeCluster, TaskTypePauseCluster,
		TaskTypeResumeCluster,
	}
}

// ListTasksParams filters ListTasksAll.
type ListTasksParams struct {
	AccountID         string         `schema:"accountId"                    validate:"required"`
	ProjectID         string         `schema:"projectId,omitempty"`
	EntityID          string         `schema:"entity_id,omitempty"`
	EntityType        TaskEntityType `schema:"entity_type,omitempty"        validate:"omitempty,oneof=BACKUP CLUSTER CLUSTER_ALLOW_LIST PROJECT"`
	TaskType          TaskType       `schema:"task_type,omitempty"          validate:"omitempty,oneof=CREATE_CLUSTER EDIT_CLUSTER DELETE_CLUSTER EDIT_ALLOW_LIST CREATE_BACKUP RESTORE_BACKUP DELETE_PROJECT UPGRADE_CLUSTER PAUSE_CLUSTER RESUME_CLUSTER"`
	Locking           *bool          `schema:"locking,omitempty"`
	InternalTask      *bool          `schema:"internal_task,omitempty"`
	Order             string         `schema:"order,omitempty"              validate:"omitempty,oneof=asc desc"`
	OrderBy           string         `schema:"order_by,omitempty"`
	Limit             int            `schema:"limit,omitempty"              validate:"omitempty,min=1,max=1000"`
	ContinuationToken string         `schema:"continuation_token,omitempty"`
}

// RunScheduledTaskParams identifies a scheduled task run.
type RunScheduledTaskParams struct {
	Task         string `schema:"task"                    validate:"required"`
	TaskInstance string `schema:"task_instance,omitempty"`
}

// GetReleaseParams identifies a software release.
type GetReleaseParams struct {
	AccountID string `schema:"accountId" validate:"required"`
	TrackID   string `schema:"trackId"   validate:"required"`
	ReleaseID string `schema:"releaseId" validate:"required"`
}

// GetTrackParams identifies a release track.
type GetTrackParams struct {
	AccountID string `schema:"accountId" validate:"required"`
	TrackID   string `schema:"trackId"   validate:"required"`
}

// ListReleasesParams filters ListReleases.
type ListReleasesParams struct {
	AccountID         string `schema:"accountId"                    validate:"required"`
	TrackID           string `schema:"trackId"                      validate:"required"`
	Limit             int    `schema:"limit,omitempty"              validate:"omitempty,min=1,max=1000"`
	ContinuationToken string `schema:"continuation_token,omitempty"`
}

// ListTracksParams identifies the account whose tracks are listed.
type ListTracksParams struct {
	AccountID string `schema:"accountId" validate:"required"`
}

// MigrationMetricsParams identifies a voyager migration.
type MigrationMetricsParams struct {
	UUID string `schema:"uuid" validate:"required,uuid"`
}

// TaskInfo describes a task.
type TaskInfo struct {
	ID          string         `json:"id"                     yaml:"id"`
	TaskType    TaskType       `json:"task_type"              yaml:"task_type"`
	EntityType  TaskEntityType `json:"entity_type"            yaml:"entity_type"`
	EntityID    string         `json:"entity_id"              yaml:"entity_id"`
	ProjectID   string         `json:"project_id,omitempty"   yaml:"project_id,omitempty"`
	State       string         `json:"state"                  yaml:"state"`
	Locking     bool           `json:"locking"                yaml:"locking"`
	Internal    bool           `json:"internal_task"          yaml:"internal_task"`
	CreatedOn   *time.Time     `json:"created_on,omitempty"   yaml:"created_on,omitempty"`
	CompletedOn *time.Time     `json:"completed_on,omitempty" yaml:"completed_on,omitempty"`
}

// TaskData is one entry of a task list.
type TaskData struct {
	Info TaskInfo `json:"info" yaml:"info"`
}

// TaskListResponse is the payload of ListTasksAll.
type TaskListResponse = ListResponse[TaskData]

// ScheduledTaskRun reports a triggered scheduled task.
type ScheduledTaskRun struct {
	Task         string `json:"task"                    yaml:"task"`
	TaskInstance string `json:"task_instance,omitempty" yaml:"task_instance,omitempty"`
	State        string `json:"state,omitempty"         yaml:"state,omitempty"`
}

// RunScheduledTaskResponse is the payload of RunScheduledTask.
type RunScheduledTaskResponse = ResourceResponse[ScheduledTaskRun]

// ReleaseSpec describes a software release.
type ReleaseSpec struct {
	Version     string     `json:"version"                yaml:"version"`
	ReleaseDate *time.Time `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	IsDefault   bool       `json:"is_default"             yaml:"is_default"`
	ReleaseNote string     `json:"release_note,omitempty" yaml:"release_note,omitempty"`
}

// ReleaseInfo holds server-assigned release fields.
type ReleaseInfo struct {
	ID      string `json:"id"       yaml:"id"`
	TrackID string `json:"track_id" yaml:"track_id"`
}

// SoftwareRelease is a release within a track.
type SoftwareRelease = Resource[ReleaseSpec, ReleaseInfo]

// SoftwareReleaseResponse is the payload of GetRelease.
type SoftwareReleaseResponse = ResourceResponse[SoftwareRelease]

// SoftwareReleaseListResponse is the payload of ListReleases.
type SoftwareReleaseListResponse = ListResponse[SoftwareRelease]

// TrackSpec describes a release track.
type TrackSpec struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TrackInfo holds server-assigned track fields.
type TrackInfo struct {
	ID        string `json:"id"         yaml:"id"`
	AccountID string `json:"account_id" yaml:"account_id"`
}

// SoftwareTrack is a release track.
type SoftwareTrack = Resource[TrackSpec, TrackInfo]

// SoftwareTrackResponse is the payload of GetTrackByID.
type SoftwareTrackResponse = ResourceResponse[SoftwareTrack]

// SoftwareTrackListResponse is the payload of ListTracksForAccount.
type SoftwareTrackListResponse = ListResponse[SoftwareTrack]

// PITRSchedule is a point-in-time-recovery schedule.
type PITRSchedule struct {
	ID                      int    `json:"id"                        yaml:"id"`
	DatabaseKeyspace        string `json:"databaseKeyspace"          yaml:"databaseKeyspace"`
	Interval                string `json:"interval"                  yaml:"interval"`
	Retention               string `json:"retention"                 yaml:"retention"`
	EarliestRecoverableTime string `json:"earliestRecoverableTime"   yaml:"earliestRecoverableTime"`
}

// PITRSchedulesResponse is the payload of GetPITRSchedules.
type PITRSchedulesResponse struct {
	Schedules []PITRSchedule `json:"schedules" yaml:"schedules"`
}

// MigrationMetric reports data migration progress for one table.
type MigrationMetric struct {
	MigrationUUID       string `json:"migration_uuid"       yaml:"migration_uuid"`
	TableName           string `json:"table_name"           yaml:"table_name"`
	SchemaName          string `json:"schema_name"          yaml:"schema_name"`
	MigrationPhase      int    `json:"migration_phase"      yaml:"migration_phase"`
	Status              int    `json:"status"               yaml:"status"`
	CountLiveRows       int64  `json:"count_live_rows"      yaml:"count_live_rows"`
	CountTotalRows      int64  `json:"count_total_rows"     yaml:"count_total_rows"`
	InvocationTimestamp string `json:"invocation_timestamp" yaml:"invocation_timestamp"`
}

// MigrationMetricsResponse is the payload of GetVoyagerDataMigrationMetrics.
type MigrationMetricsResponse struct {
	Metrics []MigrationMetric `json:"metrics" yaml:"metrics"`
}
