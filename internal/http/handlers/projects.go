package handlers

import (
	"net/http"
	"strings"

	"taskboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListProjects returns the tenant's projects, newest first
func (h *Handler) ListProjects(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		tenantMissing(c)
		return
	}

	projects, err := h.Projects.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// CreateProject expects {name:string}
func (h *Handler) CreateProject(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		tenantMissing(c)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	p, err := h.Projects.Create(c.Request.Context(), tenantID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(tenantID, domain.Event{Type: domain.EventProjectCreated, Project: p})
	c.JSON(http.StatusCreated, p)
}
