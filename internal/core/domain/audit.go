package domain

import "time"

// EntityType enumerates the tracked entities whose mutations are audited.
type EntityType string

const (
	EntityUser      EntityType = "user"
	EntityClient    EntityType = "client"
	EntityProject   EntityType = "project"
	EntityPoint     EntityType = "point"
	EntityMaterial  EntityType = "material"
	EntityWorkOrder EntityType = "work_order"
)

// ValidEntityType reports whether t names a tracked entity.
func ValidEntityType(t EntityType) bool {
	switch t {
	case EntityUser, EntityClient, EntityProject, EntityPoint, EntityMaterial, EntityWorkOrder:
		return true
	}
	return false
}

// AuditAction enumerates the mutation kinds recorded in the audit trail.
type AuditAction string

const (
	ActionCreate         AuditAction = "create"
	ActionUpdate         AuditAction = "update"
	ActionDelete         AuditAction = "delete"
	ActionStatusChange   AuditAction = "status_change"
	ActionPasswordChange AuditAction = "password_change"
)

// AuditRecord is one immutable entry in the change history of a tracked
// entity. Records are append-only: no update or delete operation exists
// anywhere in the codebase. ActorID and EntityID are weak references; a
// record outlives the entities it points at.
type AuditRecord struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	EntityType EntityType     `json:"entity_type" bson:"entity_type"`
	EntityID   string         `json:"entity_id" bson:"entity_id"`
	Action     AuditAction    `json:"action" bson:"action"`
	Changes    map[string]any `json:"changes" bson:"changes"`
	Previous   map[string]any `json:"previous,omitempty" bson:"previous,omitempty"`
	ActorID    string         `json:"actor_id" bson:"actor_id"`
	IPAddress  string         `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	Notes      string         `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// RequestMeta carries the client metadata attached to every audit record and
// security event: who acted, from where, with what agent.
type RequestMeta struct {
	ActorID   string
	IPAddress string
	UserAgent string
}
