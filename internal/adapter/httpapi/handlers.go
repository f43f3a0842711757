package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hurricanecontrol/bulletin-notifier/internal/domain"
	"github.com/hurricanecontrol/bulletin-notifier/internal/observability"
	"github.com/hurricanecontrol/bulletin-notifier/internal/registry"
)

type handlers struct {
	registry  Registry
	analyzer  Analyzer
	snapshots SnapshotReader
	logger    *slog.Logger
	metrics   *observability.Metrics
}

type registerRequest struct {
	Contact  string `json:"contact"`
	Location string `json:"location"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.Registrations.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Contact = strings.TrimSpace(req.Contact)
	if req.Contact == "" || strings.TrimSpace(req.Location) == "" {
		h.metrics.Registrations.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact and location are required"})
		return
	}

	sub, err := h.registry.Register(c.Request.Context(), req.Contact, req.Location)
	switch {
	case errors.Is(err, registry.ErrUnknownLocation):
		h.metrics.Registrations.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
	case errors.Is(err, registry.ErrDuplicateContact):
		h.metrics.Registrations.WithLabelValues("duplicate").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered"})
	case err != nil:
		h.metrics.Registrations.WithLabelValues("error").Inc()
		h.logger.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
	default:
		h.metrics.Registrations.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, gin.H{
			"message":    "Successfully registered for hurricane notifications",
			"subscriber": sub,
		})
	}
}

type unsubscribeRequest struct {
	Contact string `json:"contact"`
}

func (h *handlers) unsubscribe(c *gin.Context) {
	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.Unsubscribes.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Contact = strings.TrimSpace(req.Contact)
	if req.Contact == "" {
		h.metrics.Unsubscribes.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "contact is required"})
		return
	}

	err := h.registry.Unsubscribe(c.Request.Context(), req.Contact)
	switch {
	case errors.Is(err, registry.ErrContactNotFound):
		h.metrics.Unsubscribes.WithLabelValues("not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, registry.ErrUnknownLocation):
		h.metrics.Unsubscribes.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location"})
	case err != nil:
		h.metrics.Unsubscribes.WithLabelValues("error").Inc()
		h.logger.Error("unsubscribe failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unsubscribe failed"})
	default:
		h.metrics.Unsubscribes.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, gin.H{"message": "You have been successfully unsubscribed."})
	}
}

func (h *handlers) analyze(c *gin.Context) {
	outcomes, err := h.analyzer.Run(c.Request.Context())
	if err != nil && outcomes == nil {
		h.logger.Error("analysis run failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis run failed"})
		return
	}

	resp := gin.H{
		"summary":  domain.Summary(outcomes),
		"outcomes": outcomes,
	}
	if err != nil {
		// Partial failure: the analysis completed but some notifications
		// did not go out.
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) summary(c *gin.Context) {
	doc, found, err := h.snapshots.GetSummary(c.Request.Context())
	if err != nil {
		h.logger.Error("read summary failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary unavailable"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary yet"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *handlers) outlookImage(c *gin.Context) {
	data, contentType, found, err := h.snapshots.GetOutlookImage(c.Request.Context())
	if err != nil {
		h.logger.Error("read outlook image failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "outlook image unavailable"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "no outlook image yet"})
		return
	}
	c.Data(http.StatusOK, contentType, data)
}
