package service

import (
	"context"
	"sync"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub resource client
// ---------------------------------------------------------------------------

type clientCall struct {
	Op      string
	ID      string
	Payload domain.Payload
	Opts    ports.ListOptions
}

type stubClient struct {
	mu    sync.Mutex
	calls []clientCall

	listFn    func(ctx context.Context, opts ports.ListOptions) ([]domain.Row, error)
	createErr error
	updateErr error
	deleteErr error
}

func (c *stubClient) record(call clientCall) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *stubClient) List(ctx context.Context, _ domain.Resource, _ domain.Session, opts ports.ListOptions) ([]domain.Row, error) {
	c.record(clientCall{Op: "list", Opts: opts})
	if c.listFn == nil {
		return []domain.Row{}, nil
	}
	return c.listFn(ctx, opts)
}

func (c *stubClient) Create(_ context.Context, _ domain.Resource, _ domain.Session, p domain.Payload) error {
	c.record(clientCall{Op: "create", Payload: p})
	return c.createErr
}

func (c *stubClient) Update(_ context.Context, _ domain.Resource, _ domain.Session, id string, p domain.Payload) error {
	c.record(clientCall{Op: "update", ID: id, Payload: p})
	return c.updateErr
}

func (c *stubClient) Delete(_ context.Context, _ domain.Resource, _ domain.Session, id string) error {
	c.record(clientCall{Op: "delete", ID: id})
	return c.deleteErr
}

func (c *stubClient) count(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

func (c *stubClient) last(op string) (clientCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.calls) - 1; i >= 0; i-- {
		if c.calls[i].Op == op {
			return c.calls[i], true
		}
	}
	return clientCall{}, false
}

// ---------------------------------------------------------------------------
// Stub notifier, refresh counter and authorizer
// ---------------------------------------------------------------------------

type stubNotifier struct {
	mu  sync.Mutex
	got []domain.Notification
}

func (n *stubNotifier) Notify(_ context.Context, note domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, note)
}

func (n *stubNotifier) only() (domain.Notification, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.got) == 0 {
		return domain.Notification{}, 0
	}
	return n.got[len(n.got)-1], len(n.got)
}

type refreshCounter struct {
	mu sync.Mutex
	n  int
}

func (r *refreshCounter) refresh(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return nil
}

func (r *refreshCounter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

type stubAuthorizer map[domain.Role][]string

func (a stubAuthorizer) Can(s domain.Session, _ string, subject string) bool {
	for _, allowed := range a[s.Role] {
		if allowed == subject {
			return true
		}
	}
	return false
}

var superAdmin = domain.Session{Role: domain.RoleSuperAdmin, Token: "tok"}
