package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trustme-ai/trustme/internal/trust"
)

// AnalyzeHandler serves the analysis endpoint.
type AnalyzeHandler struct {
	Orch *trust.Orchestrator
}

type analyzeRequest struct {
	Subject  string `json:"subject"`
	Context  string `json:"context"`
	Language string `json:"language"`
}

type analyzeResponse struct {
	TrustScore float64       `json:"trust_score"`
	Details    string        `json:"details"`
	Outcome    trust.Outcome `json:"outcome"`
	Iterations int           `json:"iterations"`
}

func (h *AnalyzeHandler) Register(e *echo.Echo) {
	e.POST("/analyze", h.analyze)
}

// analyze runs one full trust analysis. Terminal zero-score outcomes are
// normal responses; only collaborator failures surface as 500s.
func (h *AnalyzeHandler) analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subject is required")
	}

	res, err := h.Orch.Run(c.Request().Context(), trust.AnalysisRequest{
		Subject:  req.Subject,
		Context:  req.Context,
		Language: req.Language,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analyzeResponse{
		TrustScore: res.Score,
		Details:    res.Details,
		Outcome:    res.Outcome,
		Iterations: res.Iterations,
	})
}
