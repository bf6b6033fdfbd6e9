package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/auth"
	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// UserService implements principal management. Every mutation performs the
// domain write first, then appends one audit record through the recorder.
type UserService struct {
	repo   ports.UserRepository
	hasher auth.Hasher
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

// NewUserService wires principal management.
func NewUserService(repo ports.UserRepository, hasher auth.Hasher, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, audit: audit, log: log}
}

// Create registers a new principal. The password policy is enforced here
// regardless of any client-side validation.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput, meta domain.RequestMeta) (*domain.Profile, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, domain.ErrValidation
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       domain.StatusActive,
		CreatedBy:    meta.ActorID,
		UpdatedBy:    meta.ActorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	cs.set("username", created.Username)
	cs.set("display_name", created.DisplayName)
	cs.set("role", string(created.Role))
	cs.set("status", string(created.Status))
	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityUser,
		EntityID:   created.ID,
		Action:     domain.ActionCreate,
		Changes:    cs.changes,
		Meta:       meta,
	})

	profile := created.PublicProfile()
	return &profile, nil
}

// Get returns the public profile of one principal.
func (s *UserService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := user.PublicProfile()
	return &profile, nil
}

// Update changes profile fields and/or role. Unset input fields are kept.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput, meta domain.RequestMeta) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	if in.DisplayName != "" {
		cs.diff("display_name", user.DisplayName, in.DisplayName)
		user.DisplayName = in.DisplayName
	}
	if in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, domain.ErrInvalidRole
		}
		cs.diff("role", string(user.Role), string(in.Role))
		user.Role = in.Role
	}

	if !cs.empty() {
		user.UpdatedBy = meta.ActorID
		user.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, ports.AuditEntry{
			EntityType: domain.EntityUser,
			EntityID:   user.ID,
			Action:     domain.ActionUpdate,
			Changes:    cs.changes,
			Previous:   cs.previous,
			Meta:       meta,
		})
	}

	profile := user.PublicProfile()
	return &profile, nil
}

// ChangeStatus moves the account through its lifecycle. StatusDeleted is the
// soft-delete: the row is never removed.
func (s *UserService) ChangeStatus(ctx context.Context, id string, status domain.UserStatus, meta domain.RequestMeta) error {
	if !domain.ValidUserStatus(status) {
		return domain.ErrInvalidStatus
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Status == status {
		return nil
	}

	previous := user.Status
	user.Status = status
	user.UpdatedBy = meta.ActorID
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityUser,
		EntityID:   user.ID,
		Action:     domain.ActionStatusChange,
		Changes:    map[string]any{"status": string(status)},
		Previous:   map[string]any{"status": string(previous)},
		Meta:       meta,
	})
	return nil
}

// ChangePassword replaces the stored digest after re-validating the policy.
// The audit record carries a marker only, never password material.
func (s *UserService) ChangePassword(ctx context.Context, id, newPassword string, meta domain.RequestMeta) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedBy = meta.ActorID
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityUser,
		EntityID:   user.ID,
		Action:     domain.ActionPasswordChange,
		Changes:    map[string]any{"password": "changed"},
		Meta:       meta,
	})
	return nil
}
