package v1alpha1

import "time"

// FollowUpComment is one threaded comment on a follow-up item.
type FollowUpComment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowUpItem is a finding an auditor tracks to disposition. The client
// holds these only for the session; the analytics service owns the record.
type FollowUpItem struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Notes       string            `json:"notes,omitempty"`
	Severity    Severity          `json:"severity"`
	Disposition Disposition       `json:"disposition"`
	ToolSource  string            `json:"tool_source"`
	AssignedTo  string            `json:"assigned_to,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Comments    []FollowUpComment `json:"comments,omitempty"`
}

// FollowUpUpdate is the PATCH /followups/{id} body. Nil fields are left
// untouched by the service.
type FollowUpUpdate struct {
	Notes       *string      `json:"notes,omitempty"`
	Disposition *Disposition `json:"disposition,omitempty"`
	AssignedTo  *string      `json:"assigned_to,omitempty"`
}
