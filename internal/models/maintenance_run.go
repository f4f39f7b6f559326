package models

import "time"

// MaintenanceRun records one execution of a maintenance operation
type MaintenanceRun struct {
	ID        string `json:"id" db:"id"`
	Operation string `json:"operation" db:"operation"` // prune_incomplete_sessions
	Status    string `json:"status" db:"status"`       // running, completed, failed

	MinRecords      int `json:"minRecords" db:"min_records"`
	Candidates      int `json:"candidates" db:"candidates"`
	Deleted         int `json:"deleted" db:"deleted"`
	Failed          int `json:"failed" db:"failed"`
	SessionsRemoved int `json:"sessionsRemoved" db:"sessions_removed"`

	ErrorMessage string     `json:"errorMessage,omitempty" db:"error_message"`
	StartedAt    time.Time  `json:"startedAt" db:"started_at"`
	CompletedAt  *time.Time `json:"completedAt,omitempty" db:"completed_at"`
}

// PruneReport summarizes a prune run
type PruneReport struct {
	RunID           string   `json:"runId"`
	MinRecords      int      `json:"minRecords"`
	Candidates      int      `json:"candidates"`
	Deleted         int      `json:"deleted"`
	Failed          int      `json:"failed"`
	SessionsRemoved int      `json:"sessionsRemoved"`
	FailedIDs       []string `json:"failedIds,omitempty"`
}

// Operation constants
const (
	OperationPruneIncomplete = "prune_incomplete_sessions"
)

// RunStatus constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
