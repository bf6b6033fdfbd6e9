package handler

import "time"

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the historical wire contract: "user" carries the
// decoy value, "dataUser" the actual public profile.
type loginResponse struct {
	AccessToken  string       `json:"accessToken"`
	Exp          int64        `json:"exp"`
	RefreshToken string       `json:"refreshToken"`
	User         string       `json:"user"`
	DataUser     profileModel `json:"dataUser"`
}

type profileModel struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Users ---

type createUserRequest struct {
	Username    string `json:"username"     validate:"required"`
	Password    string `json:"password"     validate:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"         validate:"required,oneof=admin supervisor technician viewer"`
}

type updateUserRequest struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role" validate:"omitempty,oneof=admin supervisor technician viewer"`
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive deleted"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// --- Clients ---

type createClientRequest struct {
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type updateClientRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// --- Projects ---

type createProjectRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	Name     string `json:"name"      validate:"required"`
	Location string `json:"location"`
}

type updateProjectRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// --- Work orders ---

type createWorkOrderRequest struct {
	ProjectID   string    `json:"project_id" validate:"required"`
	PointID     string    `json:"point_id"`
	Title       string    `json:"title"      validate:"required"`
	Description string    `json:"description"`
	AssigneeID  string    `json:"assignee_id"`
	MaterialIDs []string  `json:"material_ids"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type updateWorkOrderRequest struct {
	PointID     string    `json:"point_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AssigneeID  string    `json:"assignee_id"`
	MaterialIDs []string  `json:"material_ids"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type changeWorkOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=assigned in_progress completed cancelled"`
	Notes  string `json:"notes"`
}

// --- History ---

type auditRecordModel struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes"`
	Previous   map[string]any `json:"previous,omitempty"`
	ActorID    string         `json:"actor_id"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

type paginationModel struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type historyResponse struct {
	History    []auditRecordModel `json:"history"`
	Pagination paginationModel    `json:"pagination"`
}
