package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restodash/lossledger/internal/domain"
	"github.com/restodash/lossledger/internal/ledger"
)

type LossHandler struct {
	service *ledger.Service
}

func NewLossHandler(service *ledger.Service) *LossHandler {
	return &LossHandler{service: service}
}

func (h *LossHandler) parseDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		return 30
	}
	return days
}

// Detect runs one detection cycle immediately.
func (h *LossHandler) Detect(c *gin.Context) {
	result, err := h.service.DetectAndRecord(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "detection cycle failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// List returns the events recorded in the requested window.
func (h *LossHandler) List(c *gin.Context) {
	events, err := h.service.Query(c.Request.Context(), h.parseDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch losses", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}

// Record appends a manually reported loss event.
func (h *LossHandler) Record(c *gin.Context) {
	var event domain.LossEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loss event payload", "details": err.Error()})
		return
	}
	if event.LossDate.IsZero() {
		event.LossDate = time.Now()
	}
	if event.Reason == "" {
		event.Reason = domain.LossReasonExpiration
	}

	err := h.service.Record(c.Request.Context(), &event)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, event)
	case errors.Is(err, domain.ErrDuplicateLoss):
		c.JSON(http.StatusConflict, gin.H{"error": "loss already recorded for this ingredient today"})
	default:
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record loss", "details": err.Error()})
	}
}

// Statistics returns the derived reporting aggregate.
func (h *LossHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context(), h.parseDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch statistics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Categories returns the per-category aggregation.
func (h *LossHandler) Categories(c *gin.Context) {
	buckets, err := h.service.AggregateByCategory(c.Request.Context(), h.parseDays(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch category losses", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": buckets})
}

// Metrics returns the financial projection.
func (h *LossHandler) Metrics(c *gin.Context) {
	metrics, err := h.service.Metrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch metrics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// Inventory returns the read-only inventory snapshot.
func (h *LossHandler) Inventory(c *gin.Context) {
	items, err := h.service.Inventory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// Reset clears the ledger. Demo data only.
func (h *LossHandler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset ledger", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
