package domain

import "time"

// Client is a customer whose installations are maintained.
type Client struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	TaxID     string    `json:"tax_id,omitempty" bson:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Project groups the maintenance points installed for one client.
type Project struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ClientID  string    `json:"client_id" bson:"client_id"`
	Name      string    `json:"name" bson:"name"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	CreatedBy string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Point is a physical maintenance point (an installed asset) within a project.
type Point struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	ProjectID string    `json:"project_id" bson:"project_id"`
	Code      string    `json:"code" bson:"code"`
	Kind      string    `json:"kind,omitempty" bson:"kind,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Material is a consumable or spare part referenced by work orders.
type Material struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Code      string    `json:"code" bson:"code"`
	Name      string    `json:"name" bson:"name"`
	Unit      string    `json:"unit,omitempty" bson:"unit,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// WorkOrderStatus is the lifecycle state of a maintenance work order.
type WorkOrderStatus string

const (
	WorkOrderPending    WorkOrderStatus = "pending"
	WorkOrderAssigned   WorkOrderStatus = "assigned"
	WorkOrderInProgress WorkOrderStatus = "in_progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderCancelled  WorkOrderStatus = "cancelled"
)

// workOrderTransitions defines the allowed state machine transitions.
var workOrderTransitions = map[WorkOrderStatus][]WorkOrderStatus{
	WorkOrderPending:    {WorkOrderAssigned, WorkOrderCancelled},
	WorkOrderAssigned:   {WorkOrderInProgress, WorkOrderCancelled},
	WorkOrderInProgress: {WorkOrderCompleted, WorkOrderCancelled},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s WorkOrderStatus) CanTransitionTo(next WorkOrderStatus) bool {
	for _, allowed := range workOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WorkOrder is a maintenance task on a point, optionally assigned to a
// technician and consuming materials.
type WorkOrder struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	ProjectID   string          `json:"project_id" bson:"project_id"`
	PointID     string          `json:"point_id,omitempty" bson:"point_id,omitempty"`
	Title       string          `json:"title" bson:"title"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Status      WorkOrderStatus `json:"status" bson:"status"`
	AssigneeID  string          `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	MaterialIDs []string        `json:"material_ids,omitempty" bson:"material_ids,omitempty"`
	ScheduledAt time.Time       `json:"scheduled_at,omitempty" bson:"scheduled_at,omitempty"`
	CreatedBy   string          `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at"`
}
