package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"taskboard/internal/db"
	"taskboard/internal/repository"
	"taskboard/internal/tenant"
)

func main() {
	tenantID := flag.Int64("tenant", tenant.DefaultID, "tenant to seed")
	name := flag.String("project", "Demo project", "project name")
	flag.Parse()

	// expects DATABASE_URL env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn, 2)
	defer pool.Close()

	projects := repository.NewProjectRepository(pool)
	tasks := repository.NewTaskRepository(pool)
	ctx := context.Background()

	p, err := projects.Create(ctx, *tenantID, *name)
	if err != nil {
		log.Fatalf("create project failed: %v", err)
	}
	log.Printf("project created id=%d tenant=%d\n", p.ID, *tenantID)

	for _, title := range []string{"Write the brief", "Review designs", "Ship it"} {
		t, err := tasks.Create(ctx, *tenantID, p.ID, title)
		if err != nil {
			log.Fatalf("create task failed: %v", err)
		}
		log.Printf("task created id=%d title=%q\n", t.ID, t.Title)
	}

	// verify read and the toggle path
	first, err := tasks.ListByProject(ctx, *tenantID, p.ID)
	if err != nil {
		log.Fatalf("list tasks failed: %v", err)
	}
	if len(first) > 0 {
		toggled, err := tasks.Toggle(ctx, *tenantID, first[0].ID)
		if err != nil {
			log.Fatalf("toggle failed: %v", err)
		}
		log.Printf("task id=%d done=%v\n", toggled.ID, toggled.Done)
	}

	// print a tenant token when the server runs with TENANT_RESOLVER=token
	if secret := os.Getenv("TENANT_TOKEN_SECRET"); secret != "" {
		r, err := tenant.NewTokenResolver(secret)
		if err != nil {
			log.Fatalf("token resolver: %v", err)
		}
		token, err := r.Issue(*tenantID, 24*time.Hour)
		if err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
		log.Printf("token=%s\n", token)
	}
}
