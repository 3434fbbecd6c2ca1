// Package testutil provides an in-memory, tenant-scoped stand-in for the
// Postgres repositories.
package testutil

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/domain"
)

// Store mirrors the SQL of the repository package over slices. Set Err to
// make every call fail with it.
type Store struct {
	mu          sync.Mutex
	projects    []*domain.Project
	tasks       []*domain.Task
	nextProject int64
	nextTask    int64

	Err error
}

func NewStore() *Store {
	return &Store{}
}

// ProjectStore and TaskStore expose the two halves of Store with the method
// sets the handlers expect.
type ProjectStore struct{ s *Store }
type TaskStore struct{ s *Store }

func (s *Store) ProjectStore() ProjectStore { return ProjectStore{s} }
func (s *Store) TaskStore() TaskStore { return TaskStore{s} }

// ProjectCount returns the number of stored projects across all tenants.
func (s *Store) ProjectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.projects)
}

func (p ProjectStore) ListByTenant(_ context.Context, tenantID int64) ([]*domain.Project, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	res := make([]*domain.Project, 0)
	for i := len(s.projects) - 1; i >= 0; i-- {
		if s.projects[i].TenantID == tenantID {
			cp := *s.projects[i]
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (p ProjectStore) Create(_ context.Context, tenantID int64, name string) (*domain.Project, error) {
	s := p.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	s.nextProject++
	pr := &domain.Project{ID: s.nextProject, TenantID: tenantID, Name: name, CreatedAt: time.Now().UTC()}
	s.projects = append(s.projects, pr)
	cp := *pr
	return &cp, nil
}

func (s *Store) ownsProject(tenantID, projectID int64) bool {
	for _, p := range s.projects {
		if p.ID == projectID && p.TenantID == tenantID {
			return true
		}
	}
	return false
}

func (t TaskStore) ListByProject(_ context.Context, tenantID, projectID int64) ([]*domain.Task, error) {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if !s.ownsProject(tenantID, projectID) {
		return nil, domain.ErrProjectNotFound
	}

	res := make([]*domain.Task, 0)
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if s.tasks[i].ProjectID == projectID {
			cp := *s.tasks[i]
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (t TaskStore) Create(_ context.Context, tenantID, projectID int64, title string) (*domain.Task, error) {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if !s.ownsProject(tenantID, projectID) {
		return nil, domain.ErrProjectNotFound
	}

	s.nextTask++
	task := &domain.Task{ID: s.nextTask, ProjectID: projectID, Title: title, CreatedAt: time.Now().UTC()}
	s.tasks = append(s.tasks, task)
	cp := *task
	return &cp, nil
}

func (t TaskStore) Toggle(_ context.Context, tenantID, taskID int64) (*domain.Task, error) {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	for _, task := range s.tasks {
		if task.ID == taskID && s.ownsProject(tenantID, task.ProjectID) {
			task.Done = !task.Done
			cp := *task
			return &cp, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

// Probe is a health prober with a fixed answer.
type Probe struct {
	Err error
}

func (p Probe) Check(context.Context) (bool, error) {
	if p.Err != nil {
		return false, p.Err
	}
	return true, nil
}

func (p Probe) Ping(context.Context) error { return p.Err }

// Recorder collects published events.
type Recorder struct {
	mu     sync.Mutex
	events map[int64][]domain.Event
}

func NewRecorder() *Recorder {
	return &Recorder{events: make(map[int64][]domain.Event)}
}

func (r *Recorder) Publish(tenantID int64, ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[tenantID] = append(r.events[tenantID], ev)
}

// Events returns what was published to tenantID.
func (r *Recorder) Events(tenantID int64) []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events[tenantID]...)
}
