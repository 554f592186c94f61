package syncjob

import (
	"database/sql"
	"testing"
)

func TestDeriveType(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    JobType
		wantErr bool
	}{
		{"team ids take precedence", Request{Season: "Summer 2026", TeamIDs: []string{"t-77"}}, JobTypeTeam, false},
		{"season only", Request{Season: "Summer 2026"}, JobTypeSeason, false},
		{"empty request", Request{}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.DeriveType()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DeriveType: %v", err)
			}
			if got != tt.want {
				t.Errorf("DeriveType = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJobCopy(t *testing.T) {
	var nilJob *Job
	if nilJob.Copy() != nil {
		t.Error("copy of nil job should be nil")
	}

	job := &Job{
		JobID:  "abc",
		Status: JobStatusRunning,
		Season: sql.NullString{String: "Summer 2026", Valid: true},
	}
	cpy := job.Copy()
	if cpy == job {
		t.Error("copy should be a distinct value")
	}
	cpy.Status = JobStatusFailed
	if job.Status != JobStatusRunning {
		t.Error("mutating the copy changed the original")
	}
}
