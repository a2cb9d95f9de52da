package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v5"

	"github.com/datallboy/gofetch/internal/domain"
)

// BatchRunner runs a batch over the given names, or the configured list when empty.
type BatchRunner interface {
	ConfiguredTargets(names []string) ([]domain.Target, error)
	RunBatch(ctx context.Context, targets []domain.Target) (*domain.BatchReport, error)
}

type ReportStore interface {
	GetReport(ctx context.Context, id string) (*domain.BatchReport, error)
	ListReports(ctx context.Context, limit int) ([]*domain.BatchReport, error)
}

type BatchController struct {
	Runner BatchRunner
	Store  ReportStore
}

// Create runs a batch synchronously and returns its report. Partial failure
// is still a 200; the report says what failed.
func (ctrl *BatchController) Create(c *echo.Context) error {
	var req CreateBatchRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
	}

	targets, err := ctrl.Runner.ConfiguredTargets(req.Targets)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	report, err := ctrl.Runner.RunBatch(c.Request().Context(), targets)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidConfig):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case report == nil:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, newBatchResponse(report))
}

func (ctrl *BatchController) List(c *echo.Context) error {
	if ctrl.Store == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "history is disabled"})
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
		}
		limit = n
	}

	reports, err := ctrl.Store.ListReports(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	out := make([]BatchResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, newBatchResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (ctrl *BatchController) Get(c *echo.Context) error {
	if ctrl.Store == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "history is disabled"})
	}

	id := c.Param("id")
	report, err := ctrl.Store.GetReport(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	if report == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "batch not found"})
	}

	return c.JSON(http.StatusOK, newBatchResponse(report))
}
