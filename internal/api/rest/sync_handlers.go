package rest

import (
	"encoding/json"
	"net/http"

	"github.com/openrec/dugout/internal/syncjob"
)

// SyncHandler proxies API calls to the schedule sync service.
type SyncHandler struct {
	service *syncjob.Service
}

// NewSyncHandler wires the REST layer to the sync service.
func NewSyncHandler(service *syncjob.Service) *SyncHandler {
	return &SyncHandler{service: service}
}

type apiSyncRequest struct {
	Season  string   `json:"season"`
	TeamID  string   `json:"team_id"`
	TeamIDs []string `json:"team_ids"`
	DryRun  bool     `json:"dry_run"`
}

// HandleSyncRequest handles POST /api/v1/sync
func (h *SyncHandler) HandleSyncRequest(w http.ResponseWriter, r *http.Request) {
	var req apiSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	syncReq := syncjob.Request{
		Season: req.Season,
		DryRun: req.DryRun,
	}
	if len(req.TeamIDs) > 0 {
		syncReq.TeamIDs = append(syncReq.TeamIDs, req.TeamIDs...)
	}
	if req.TeamID != "" {
		syncReq.TeamIDs = append(syncReq.TeamIDs, req.TeamID)
	}

	job, err := h.service.Enqueue(r.Context(), syncReq)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue sync job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": jobPayload(job),
	})
}

// HandleSyncStatus handles GET /api/v1/sync/status
func (h *SyncHandler) HandleSyncStatus(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch status", err)
		return
	}

	respondJSON(w, http.StatusOK, buildStatusPayload(summary))
}

func buildStatusPayload(summary *syncjob.StatusSummary) map[string]interface{} {
	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"history": []map[string]interface{}{},
	}

	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		if summary.ActiveJob.StatusMessage.Valid {
			response["message"] = summary.ActiveJob.StatusMessage.String
		}
		response["active_job"] = jobPayload(summary.ActiveJob)
	}

	history := make([]map[string]interface{}, 0, len(summary.History))
	for _, job := range summary.History {
		history = append(history, jobPayload(job))
	}

	response["history"] = history
	return response
}

func jobPayload(job *syncjob.Job) map[string]interface{} {
	if job == nil {
		return nil
	}

	payload := map[string]interface{}{
		"job_id":           job.JobID,
		"job_type":         job.JobType,
		"status":           job.Status,
		"progress_current": job.ProgressCurrent,
		"progress_total":   job.ProgressTotal,
		"created_at":       job.CreatedAt,
		"updated_at":       job.UpdatedAt,
	}

	if job.StatusMessage.Valid {
		payload["status_message"] = job.StatusMessage.String
	}
	if job.Season.Valid {
		payload["season"] = job.Season.String
	}
	if len(job.TeamIDs) > 0 {
		payload["team_ids"] = job.TeamIDs
	}
	if job.StartedAt.Valid {
		payload["started_at"] = job.StartedAt.Time
	}
	if job.CompletedAt.Valid {
		payload["completed_at"] = job.CompletedAt.Time
	}
	if job.LastError.Valid {
		payload["last_error"] = job.LastError.String
	}

	return payload
}
