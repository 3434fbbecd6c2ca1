package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"taskboard/internal/domain"
)

func main() {
	tenantID := flag.String("tenant", "1", "tenant id sent in X-Tenant-Id")
	flag.Parse()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "5000"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := "127.0.0.1:" + port

	conn, _, err := websocket.DefaultDialer.Dial(fmt.Sprintf("ws://%s/api/events?tenant_id=%s", base, *tenantID), nil)
	if err != nil {
		log.Fatalf("dial events: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, msg, err := conn.ReadMessage(); err != nil {
		log.Fatalf("read ready: %v", err)
	} else {
		log.Printf("got: %s", msg)
	}

	project := post[domain.Project](base, *tenantID, "/api/projects", map[string]any{"name": "smoke"})
	task := post[domain.Task](base, *tenantID, "/api/tasks", map[string]any{"project_id": project.ID, "title": "smoke task"})

	// drain until the task frame shows up
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(deadline)
		var ev domain.Event
		if err := conn.ReadJSON(&ev); err != nil {
			log.Fatalf("read event: %v", err)
		}
		log.Printf("got event type=%s", ev.Type)
		if ev.Type == domain.EventTaskCreated && ev.Task != nil && ev.Task.ID == task.ID {
			log.Println("smoke test finished")
			return
		}
	}
	log.Fatal("task.created event not received")
}

func post[T any](base, tenantID, path string, body any) T {
	var out T
	b, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, "http://"+base+path, bytes.NewReader(b))
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-Id", tenantID)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("POST %s: %v", path, err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusCreated {
		log.Fatalf("POST %s: %d %s", path, res.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	return out
}
