package syncjob

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openrec/dugout/internal/store"
)

// Request represents a schedule sync invocation request.
type Request struct {
	Season  string
	TeamIDs []string
	DryRun  bool
}

// DeriveType infers the job type based on populated fields.
func (r Request) DeriveType() (JobType, error) {
	if len(r.TeamIDs) > 0 {
		return JobTypeTeam, nil
	}
	if r.Season != "" {
		return JobTypeSeason, nil
	}
	return "", fmt.Errorf("unable to determine job type from request")
}

// Service coordinates job persistence, execution, and status reporting.
type Service struct {
	repo   *Repository
	runner *Runner

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(db *store.Database, leagueBaseURL string, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	var runner *Runner
	if strings.TrimSpace(leagueBaseURL) != "" {
		runner = NewRunnerWithBaseURL(db, leagueBaseURL)
	} else {
		runner = NewRunner(db)
	}

	if logger == nil {
		logger = log.New(log.Writer(), "[schedulesync] ", log.LstdFlags)
	}

	return &Service{
		repo:         NewRepository(db),
		runner:       runner,
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		s.logger.Printf("failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()
	s.runner.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	jobType, err := req.DeriveType()
	if err != nil {
		return nil, err
	}

	job := &Job{
		JobID:         uuid.NewString(),
		JobType:       jobType,
		Status:        JobStatusQueued,
		StatusMessage: sql.NullString{String: "Queued", Valid: true},
	}

	switch jobType {
	case JobTypeTeam:
		job.TeamIDs = req.TeamIDs
		job.Season = sql.NullString{String: req.Season, Valid: req.Season != ""}
		job.ProgressTotal = len(req.TeamIDs)
	case JobTypeSeason:
		job.Season = sql.NullString{String: req.Season, Valid: true}
	}

	stored, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}

	_ = s.repo.AppendEvent(ctx, stored.JobID, "queued", "Job queued")

	return stored, nil
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				s.logger.Printf("claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	spec, err := s.buildSpec(job)
	if err != nil {
		s.logger.Printf("invalid job spec %s: %v", job.JobID, err)
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Invalid job specification", err)
		return
	}

	reporter := &jobReporter{
		ctx:   s.ctx,
		repo:  s.repo,
		jobID: job.JobID,
		total: job.ProgressTotal,
	}

	if err := s.runner.Run(s.ctx, spec, reporter); err != nil {
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Job failed", err)
		return
	}

	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, "Job completed", nil)
}

func (s *Service) buildSpec(job *Job) (JobSpec, error) {
	spec := JobSpec{
		Type:   job.JobType,
		Season: job.Season.String,
	}

	switch job.JobType {
	case JobTypeTeam:
		if len(job.TeamIDs) == 0 {
			return spec, fmt.Errorf("team job missing team_ids")
		}
		spec.TeamIDs = job.TeamIDs
	case JobTypeSeason:
		if !job.Season.Valid || job.Season.String == "" {
			return spec, fmt.Errorf("season job missing season")
		}
	default:
		return spec, fmt.Errorf("unknown job type %s", job.JobType)
	}

	return spec, nil
}

type jobReporter struct {
	ctx   context.Context
	repo  *Repository
	jobID string
	total int
}

func (r *jobReporter) OnJobStart(spec JobSpec) {
	if r.total == 0 {
		r.total = len(spec.TeamIDs)
	}
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, 0, r.total, "Job starting")
}

func (r *jobReporter) OnTeamStart(teamName string, index int, total int) {
	if total > 0 {
		r.total = total
	}
	msg := fmt.Sprintf("Syncing %s (%d/%d)", teamName, index+1, total)
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, index, r.total, msg)
}

func (r *jobReporter) OnTeamSynced(teamName string, games int) {
	_ = r.repo.AppendEvent(r.ctx, r.jobID, "team", fmt.Sprintf("%s: %d games synced", teamName, games))
}

func (r *jobReporter) OnProgress(message string, current int, total int) {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, current, valueOr(total, r.total), message)
}

func (r *jobReporter) OnJobComplete() {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, r.total, r.total, "Job complete")
}

func (r *jobReporter) OnJobError(err error) {
	_ = r.repo.AppendEvent(r.ctx, r.jobID, "error", err.Error())
}

func valueOr(val, fallback int) int {
	if val > 0 {
		return val
	}
	return fallback
}
