package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"taskboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListTasks returns tasks of ?project_id= when the project belongs to the tenant
func (h *Handler) ListTasks(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		tenantMissing(c)
		return
	}

	projectID, ok := parseInteger(c.Query("project_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required (number)"})
		return
	}

	tasks, err := h.Tasks.ListByProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask expects {project_id:int|string, title:string}
func (h *Handler) CreateTask(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		tenantMissing(c)
		return
	}

	var req struct {
		ProjectID json.RawMessage `json:"project_id"`
		Title     string          `json:"title"`
	}
	err := c.ShouldBindJSON(&req)
	projectID, idOK := parseIntField(req.ProjectID)
	if err != nil || !idOK || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id (number) and title are required"})
		return
	}

	t, err := h.Tasks.Create(c.Request.Context(), tenantID, projectID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(tenantID, domain.Event{Type: domain.EventTaskCreated, Task: t})
	c.JSON(http.StatusCreated, t)
}

// ToggleTask flips done on /tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		tenantMissing(c)
		return
	}

	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	t, err := h.Tasks.Toggle(c.Request.Context(), tenantID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(tenantID, domain.Event{Type: domain.EventTaskToggled, Task: t})
	c.JSON(http.StatusOK, t)
}

// parseIntField accepts a JSON number or a string holding one, as long as
// its value is integral.
func parseIntField(raw json.RawMessage) (int64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		s = str
	}
	return parseInteger(s)
}

// parseInteger reads s as an integer, allowing integral decimals like "1.0"
// or "1e2".
func parseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	// 2^63 is not representable as int64
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
