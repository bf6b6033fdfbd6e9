package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// ProjectService implements project management through the audit pipeline.
type ProjectService struct {
	repo    ports.ProjectRepository
	clients ports.ClientRepository
	audit   ports.AuditRecorder
	log     zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, clients ports.ClientRepository, audit ports.AuditRecorder, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, clients: clients, audit: audit, log: log}
}

func (s *ProjectService) Create(ctx context.Context, in ports.ProjectInput, meta domain.RequestMeta) (*domain.Project, error) {
	if in.Name == "" || in.ClientID == "" {
		return nil, domain.ErrValidation
	}
	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ClientID:  in.ClientID,
		Name:      in.Name,
		Location:  in.Location,
		CreatedBy: meta.ActorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	cs.set("client_id", created.ClientID)
	cs.set("name", created.Name)
	cs.set("location", created.Location)
	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityProject,
		EntityID:   created.ID,
		Action:     domain.ActionCreate,
		Changes:    cs.changes,
		Meta:       meta,
	})
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id string, in ports.ProjectInput, meta domain.RequestMeta) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	if in.Name != "" {
		cs.diff("name", project.Name, in.Name)
		project.Name = in.Name
	}
	if in.Location != "" {
		cs.diff("location", project.Location, in.Location)
		project.Location = in.Location
	}

	if !cs.empty() {
		project.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, project); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, ports.AuditEntry{
			EntityType: domain.EntityProject,
			EntityID:   project.ID,
			Action:     domain.ActionUpdate,
			Changes:    cs.changes,
			Previous:   cs.previous,
			Meta:       meta,
		})
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string, meta domain.RequestMeta) error {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, ports.AuditEntry{
		EntityType: domain.EntityProject,
		EntityID:   id,
		Action:     domain.ActionDelete,
		Changes:    map[string]any{"deleted": true},
		Previous:   map[string]any{"name": project.Name},
		Meta:       meta,
	})
	return nil
}
