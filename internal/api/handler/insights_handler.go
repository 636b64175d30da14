package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taskflow/task-manager/internal/api/metrics"
	"github.com/taskflow/task-manager/internal/core/ports"
)

type InsightsHandler struct {
	service ports.InsightsService
}

func NewInsightsHandler(service ports.InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// Get handles GET /tasks/insights.
//
// @Summary      Task insights
// @Description  Status and priority breakdowns, overdue count, 30-day completion figures and the next deadlines.
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=insightsData}
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /tasks/insights [get]
func (h *InsightsHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	timer := prometheus.NewTimer(metrics.InsightsDuration)
	report, err := h.service.Insights(c.Request().Context(), user.ID)
	timer.ObserveDuration()
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", toInsightsData(report))
}
