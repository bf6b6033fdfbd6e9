package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

type stubClientRepo struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
	nextID  int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func cloneClient(c *domain.Client) *domain.Client {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneClient(client)
	r.nextID++
	copy.ID = "client_" + string(rune('0'+r.nextID))
	r.clients[copy.ID] = cloneClient(copy)
	return cloneClient(copy), nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	return cloneClient(c), nil
}

func (r *stubClientRepo) Update(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return domain.ErrEntityNotFound
	}
	r.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return domain.ErrEntityNotFound
	}
	delete(r.clients, id)
	return nil
}

func TestClientService_CreateUpdateDelete(t *testing.T) {
	repo := newStubClientRepo()
	audit := &captureAudit{}
	svc := NewClientService(repo, audit, zerolog.Nop())
	meta := domain.RequestMeta{ActorID: "admin_1", IPAddress: "10.0.0.1"}

	client, err := svc.Create(context.Background(), ports.ClientInput{Name: "Acme", Email: "ops@acme.test"}, meta)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if audit.last().Action != domain.ActionCreate {
		t.Fatalf("expected create record, got %s", audit.last().Action)
	}
	if audit.last().Meta.IPAddress != "10.0.0.1" {
		t.Fatalf("request meta not recorded: %+v", audit.last().Meta)
	}

	if _, err := svc.Update(context.Background(), client.ID, ports.ClientInput{Name: "Acme Corp"}, meta); err != nil {
		t.Fatalf("update: %v", err)
	}
	entry := audit.last()
	if entry.Changes["name"] != "Acme Corp" || entry.Previous["name"] != "Acme" {
		t.Fatalf("name diff missing: changes=%v previous=%v", entry.Changes, entry.Previous)
	}

	if err := svc.Delete(context.Background(), client.ID, meta); err != nil {
		t.Fatalf("delete: %v", err)
	}
	entry = audit.last()
	if entry.Action != domain.ActionDelete || entry.Previous["name"] != "Acme Corp" {
		t.Fatalf("delete record wrong: %+v", entry)
	}
	if audit.count() != 3 {
		t.Fatalf("expected 3 records for 3 mutations, got %d", audit.count())
	}
}

func TestClientService_Create_Validation(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), &captureAudit{}, zerolog.Nop())
	if _, err := svc.Create(context.Background(), ports.ClientInput{}, domain.RequestMeta{}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

type stubProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *project
	r.nextID++
	clone.ID = "project_" + string(rune('0'+r.nextID))
	r.projects[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return domain.ErrEntityNotFound
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrEntityNotFound
	}
	delete(r.projects, id)
	return nil
}

// A project cannot reference a client that does not exist.
func TestProjectService_Create_RequiresClient(t *testing.T) {
	clients := newStubClientRepo()
	svc := NewProjectService(newStubProjectRepo(), clients, &captureAudit{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.ProjectInput{ClientID: "ghost", Name: "Plant A"}, domain.RequestMeta{})
	if !errors.Is(err, domain.ErrEntityNotFound) {
		t.Fatalf("expected ErrEntityNotFound, got %v", err)
	}

	client, err := clients.Create(context.Background(), &domain.Client{Name: "Acme"})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	project, err := svc.Create(context.Background(), ports.ProjectInput{ClientID: client.ID, Name: "Plant A"}, domain.RequestMeta{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.ClientID != client.ID {
		t.Fatalf("client reference lost: %+v", project)
	}
}
