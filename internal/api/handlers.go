package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/leadscout/internal/database"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

const defaultPageSize = 50

// LeadReader is the lead query surface the API consumes.
type LeadReader interface {
	List(ctx context.Context, filter database.LeadFilter) ([]*domain.Lead, error)
	GetByUsername(ctx context.Context, platform domain.Platform, username string) (*domain.Lead, error)
}

// RejectionManager lists and clears rejection verdicts.
type RejectionManager interface {
	List(ctx context.Context, limit, offset int) ([]*domain.RejectionRecord, error)
	Delete(ctx context.Context, platform domain.Platform, username string) error
}

// RunReader lists pipeline run records.
type RunReader interface {
	List(ctx context.Context, limit, offset int) ([]*domain.Run, error)
	Get(ctx context.Context, id string) (*domain.Run, error)
}

// Sweeper starts a pipeline sweep on demand.
type Sweeper interface {
	StartSweep() error
}

// Handler serves the v1 API.
type Handler struct {
	leads      LeadReader
	rejections RejectionManager
	runs       RunReader
	sweeper    Sweeper
	logger     logger.Logger
}

// NewHandler creates the API handler. sweeper may be nil when the service
// runs without a pipeline attached.
func NewHandler(leads LeadReader, rejections RejectionManager, runs RunReader, sweeper Sweeper, log logger.Logger) *Handler {
	return &Handler{
		leads:      leads,
		rejections: rejections,
		runs:       runs,
		sweeper:    sweeper,
		logger:     log,
	}
}

// ListLeads returns qualified leads, filterable by platform, minimum
// score and email presence.
func (h *Handler) ListLeads(c *gin.Context) {
	limit, offset := pagination(c)
	minScore, _ := strconv.Atoi(c.Query("min_score"))

	filter := database.LeadFilter{
		Platform:  domain.Platform(c.Query("platform")),
		MinScore:  minScore,
		WithEmail: c.Query("with_email") == "true",
		Limit:     limit,
		Offset:    offset,
	}

	leads, err := h.leads.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list leads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

// GetLead returns one lead by its identity pair.
func (h *Handler) GetLead(c *gin.Context) {
	platform := domain.Platform(c.Param("platform"))
	username := c.Param("username")

	lead, err := h.leads.GetByUsername(c.Request.Context(), platform, username)
	if err != nil {
		if errors.Is(err, database.ErrLeadNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to get lead",
			logger.String("username", username),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get lead"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

// ListRejections returns rejection verdicts, newest first.
func (h *Handler) ListRejections(c *gin.Context) {
	limit, offset := pagination(c)

	records, err := h.rejections.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list rejections", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rejections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rejections": records,
		"count":      len(records),
	})
}

// DeleteRejection clears a verdict so the account is re-evaluated on its
// next encounter.
func (h *Handler) DeleteRejection(c *gin.Context) {
	platform := domain.Platform(c.Param("platform"))
	username := c.Param("username")

	if err := h.rejections.Delete(c.Request.Context(), platform, username); err != nil {
		if errors.Is(err, database.ErrRejectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rejection not found"})
			return
		}
		h.logger.Error("Failed to delete rejection",
			logger.String("username", username),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rejection"})
		return
	}

	h.logger.Info("Rejection cleared",
		logger.String("platform", string(platform)),
		logger.String("username", username))

	c.JSON(http.StatusNoContent, nil)
}

// ListRuns returns pipeline runs, newest first.
func (h *Handler) ListRuns(c *gin.Context) {
	limit, offset := pagination(c)

	runs, err := h.runs.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list runs", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun returns one run by id.
func (h *Handler) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := h.runs.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
			return
		}
		h.logger.Error("Failed to get run",
			logger.String("run_id", id),
			logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get run"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// StartRun kicks off a sweep in the background.
func (h *Handler) StartRun(c *gin.Context) {
	if h.sweeper == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Pipeline not attached"})
		return
	}

	if err := h.sweeper.StartSweep(); err != nil {
		h.logger.Error("Failed to start sweep", logger.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset, _ = strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
