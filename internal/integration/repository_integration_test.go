package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	b, err := os.ReadFile(filepath.Join("testdata", "schema.sql"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(context.Background(), string(b)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// freshTenants returns two tenant ids no other run has used.
func freshTenants() (int64, int64) {
	base := time.Now().UnixNano()
	return base, base + 1
}

func TestProjectsTenantIsolation(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	repo := repository.NewProjectRepository(db)
	t1, t2 := freshTenants()

	a, err := repo.Create(ctx, t1, "alpha")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := repo.Create(ctx, t1, "beta")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.CreatedAt.IsZero() || a.TenantID != t1 {
		t.Fatalf("unexpected row %+v", a)
	}

	got, err := repo.ListByTenant(ctx, t1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("unexpected listing %+v", got)
	}

	other, err := repo.ListByTenant(ctx, t2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if other == nil || len(other) != 0 {
		t.Fatalf("tenant %d should see an empty list, got %+v", t2, other)
	}
}

func TestTasksOwnership(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)
	t1, t2 := freshTenants()

	p, err := projects.Create(ctx, t1, "owned")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	task, err := tasks.Create(ctx, t1, p.ID, "write tests")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Done || task.ProjectID != p.ID || task.CreatedAt.IsZero() {
		t.Fatalf("unexpected task %+v", task)
	}

	if _, err := tasks.Create(ctx, t2, p.ID, "intruder"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("foreign create: %v", err)
	}
	if _, err := tasks.ListByProject(ctx, t2, p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("foreign list: %v", err)
	}
	if _, err := tasks.ListByProject(ctx, t1, -1); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("missing list: %v", err)
	}
	if _, err := tasks.Toggle(ctx, t2, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign toggle: %v", err)
	}

	list, err := tasks.ListByProject(ctx, t1, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Title != "write tests" || list[0].Done {
		t.Fatalf("intruder insert or toggle leaked: %+v", list)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	t1, _ := freshTenants()
	p, _ := repository.NewProjectRepository(db).Create(ctx, t1, "p")
	tasks := repository.NewTaskRepository(db)
	task, err := tasks.Create(ctx, t1, p.ID, "flip")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	first, err := tasks.Toggle(ctx, t1, task.ID)
	if err != nil || !first.Done {
		t.Fatalf("first toggle: %+v %v", first, err)
	}
	second, err := tasks.Toggle(ctx, t1, task.ID)
	if err != nil || second.Done {
		t.Fatalf("second toggle: %+v %v", second, err)
	}
}

func TestConcurrentTogglesCompose(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	t1, _ := freshTenants()
	p, _ := repository.NewProjectRepository(db).Create(ctx, t1, "p")
	tasks := repository.NewTaskRepository(db)
	task, err := tasks.Create(ctx, t1, p.ID, "race")
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	const n = 20 // even: the task must end where it started
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tasks.Toggle(ctx, t1, task.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("toggle: %v", err)
	}

	list, err := tasks.ListByProject(ctx, t1, p.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].Done {
		t.Fatalf("after %d toggles done should be false", n)
	}
}

func TestProbe(t *testing.T) {
	db := openDB(t)
	ok, err := repository.NewProbeRepository(db).Check(context.Background())
	if err != nil || !ok {
		t.Fatalf("Check = %v, %v", ok, err)
	}
}
