package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fieldtrace/maintenance-api/internal/core/domain"
	"github.com/fieldtrace/maintenance-api/internal/core/ports"
)

// --- user repository ---

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	// findErr, when set, is returned from every lookup to simulate a store
	// outage.
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.nextID++
		copy.ID = "user_" + string(rune('0'+r.nextID))
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

// --- audit recorder (capture) ---

type captureAudit struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (a *captureAudit) Record(_ context.Context, entry ports.AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *captureAudit) History(context.Context, domain.EntityType, string, int, int) (*ports.HistoryResult, error) {
	return nil, errors.New("not implemented")
}

func (a *captureAudit) last() ports.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.entries[len(a.entries)-1]
}

func (a *captureAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// --- audit repository ---

type stubAuditRepo struct {
	mu        sync.Mutex
	records   []*domain.AuditRecord
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, record *domain.AuditRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	// Prepend: the store sorts newest first.
	r.records = append([]*domain.AuditRecord{record}, r.records...)
	return nil
}

func (r *stubAuditRepo) FindByEntity(_ context.Context, entityType domain.EntityType, entityID string, page, limit int) ([]*domain.AuditRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.AuditRecord
	for _, rec := range r.records {
		if rec.EntityType == entityType && rec.EntityID == entityID {
			matched = append(matched, rec)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// --- work-order repository ---

type stubWorkOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.WorkOrder
	nextID int
}

func newStubWorkOrderRepo() *stubWorkOrderRepo {
	return &stubWorkOrderRepo{orders: make(map[string]*domain.WorkOrder)}
}

func cloneOrder(o *domain.WorkOrder) *domain.WorkOrder {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}

func (r *stubWorkOrderRepo) Create(_ context.Context, order *domain.WorkOrder) (*domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneOrder(order)
	r.nextID++
	copy.ID = "wo_" + string(rune('0'+r.nextID))
	r.orders[copy.ID] = cloneOrder(copy)
	return cloneOrder(copy), nil
}

func (r *stubWorkOrderRepo) FindByID(_ context.Context, id string) (*domain.WorkOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubWorkOrderRepo) Update(_ context.Context, order *domain.WorkOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		return domain.ErrEntityNotFound
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *stubWorkOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrEntityNotFound
	}
	delete(r.orders, id)
	return nil
}

// --- login throttle ---

type stubThrottle struct {
	mu       sync.Mutex
	failures map[string]int
	blocked  bool
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) TooManyAttempts(_ context.Context, username, ip string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.blocked, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username, ip string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures[username+":"+ip]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username, ip string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, username+":"+ip)
	return nil
}

// --- security notifier ---

type captureNotifier struct {
	mu     sync.Mutex
	events []domain.SecurityEvent
}

func (n *captureNotifier) Notify(event domain.SecurityEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *captureNotifier) last() domain.SecurityEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}
