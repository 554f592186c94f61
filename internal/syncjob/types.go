package syncjob

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// JobType enumerates the supported schedule sync variants.
type JobType string

const (
	// JobTypeSeason syncs every active team's schedule from the league site.
	JobTypeSeason JobType = "season"

	// JobTypeTeam syncs the schedules of specific teams.
	JobTypeTeam JobType = "team"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job models the database representation of a schedule sync job.
type Job struct {
	JobID           string
	JobType         JobType
	Season          sql.NullString
	TeamIDs         pq.StringArray
	Status          JobStatus
	StatusMessage   sql.NullString
	ProgressCurrent int
	ProgressTotal   int
	LastError       sql.NullString
	RetryCount      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	StartedAt       sql.NullTime
	CompletedAt     sql.NullTime
}

// Copy returns a shallow copy to prevent external mutation.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	return &cpy
}

// JobSpec describes the work to be performed by the runner.
type JobSpec struct {
	Type    JobType
	Season  string
	TeamIDs []string
	DryRun  bool
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnTeamStart(teamName string, index int, total int)
	OnTeamSynced(teamName string, games int)
	OnProgress(message string, current int, total int)
	OnJobComplete()
	OnJobError(err error)
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
