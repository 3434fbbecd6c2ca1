package handlers

import (
	"context"
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/tenant"

	"github.com/gin-gonic/gin"
)

type ProjectStore interface {
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Project, error)
	Create(ctx context.Context, tenantID int64, name string) (*domain.Project, error)
}

type TaskStore interface {
	ListByProject(ctx context.Context, tenantID, projectID int64) ([]*domain.Task, error)
	Create(ctx context.Context, tenantID, projectID int64, title string) (*domain.Task, error)
	Toggle(ctx context.Context, tenantID, taskID int64) (*domain.Task, error)
}

// Publisher receives change events after successful writes.
type Publisher interface {
	Publish(tenantID int64, ev domain.Event)
}

type Handler struct {
	Projects  ProjectStore
	Tasks     TaskStore
	Publisher Publisher
}

func NewHandler(projects ProjectStore, tasks TaskStore, publisher Publisher) *Handler {
	return &Handler{
		Projects:  projects,
		Tasks:     tasks,
		Publisher: publisher,
	}
}

// getTenantID reads the id stored by middleware.Tenant
func getTenantID(c *gin.Context) (int64, bool) {
	return tenant.FromContext(c.Request.Context())
}

func (h *Handler) publish(tenantID int64, ev domain.Event) {
	if h.Publisher != nil {
		h.Publisher.Publish(tenantID, ev)
	}
}

// respondError maps store errors: ownership misses are 404, anything else is
// a 500 carrying the underlying message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("store error", "route", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func tenantMissing(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "tenant not resolved"})
}
