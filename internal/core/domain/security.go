package domain

import "time"

// SecurityEventKind classifies authentication and authorization decisions
// recorded for intrusion detection. This log is distinct from the entity
// audit trail: it captures access attempts, not entity mutations.
type SecurityEventKind string

const (
	SecurityLogin      SecurityEventKind = "login"
	SecurityTokenCheck SecurityEventKind = "token_check"
	SecurityRoleCheck  SecurityEventKind = "role_check"
)

// SecurityEvent is one access decision: who tried what, from where, and how
// it was resolved.
type SecurityEvent struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	Kind        SecurityEventKind `json:"kind" bson:"kind"`
	Allowed     bool              `json:"allowed" bson:"allowed"`
	PrincipalID string            `json:"principal_id,omitempty" bson:"principal_id,omitempty"`
	Username    string            `json:"username,omitempty" bson:"username,omitempty"`
	IPAddress   string            `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent   string            `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Path        string            `json:"path,omitempty" bson:"path,omitempty"`
	Detail      string            `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}
