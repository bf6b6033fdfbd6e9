package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// ClientService implements client management through the audit pipeline.
type ClientService struct {
	repo  ports.ClientRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, audit ports.AuditRecorder, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, audit: audit, log: log}
}

func (s *ClientService) Create(ctx context.Context, in ports.ClientInput, meta domain.RequestMeta) (*domain.Client, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	client := &domain.Client{
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedBy: meta.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	cs.set("name", created.Name)
	cs.set("tax_id", created.TaxID)
	cs.set("email", created.Email)
	cs.set("phone", created.Phone)
	cs.set("address", created.Address)
	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityClient,
		EntityID:   created.ID,
		Action:     domain.ActionCreate,
		Changes:    cs.changes,
		Meta:       meta,
	})
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, id string, in ports.ClientInput, meta domain.RequestMeta) (*domain.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	if in.Name != "" {
		cs.diff("name", client.Name, in.Name)
		client.Name = in.Name
	}
	if in.TaxID != "" {
		cs.diff("tax_id", client.TaxID, in.TaxID)
		client.TaxID = in.TaxID
	}
	if in.Email != "" {
		cs.diff("email", client.Email, in.Email)
		client.Email = in.Email
	}
	if in.Phone != "" {
		cs.diff("phone", client.Phone, in.Phone)
		client.Phone = in.Phone
	}
	if in.Address != "" {
		cs.diff("address", client.Address, in.Address)
		client.Address = in.Address
	}

	if !cs.empty() {
		client.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, client); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, ports.AuditEntry{
			EntityType: domain.EntityClient,
			EntityID:   client.ID,
			Action:     domain.ActionUpdate,
			Changes:    cs.changes,
			Previous:   cs.previous,
			Meta:       meta,
		})
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id string, meta domain.RequestMeta) error {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityClient,
		EntityID:   id,
		Action:     domain.ActionDelete,
		Changes:    map[string]any{"deleted": true},
		Previous:   map[string]any{"name": client.Name},
		Meta:       meta,
	})
	return nil
}
