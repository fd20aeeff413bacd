package api

import (
	"errors"
	"time"

	models "PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	mid "PriceScout/internal/middleware"
	svcmetrics "PriceScout/internal/service/metrics"
	"PriceScout/internal/services/research"
	"PriceScout/internal/usecase"
	xhttp "PriceScout/pkg/http"
	xlogger "PriceScout/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

// PricingHandler exposes the pricing engine over HTTP.
type PricingHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	research *research.Generator
	store    domrepo.AnalysisStore
	hub      *mid.ProgressHub
}

func NewPricingHandler(
	logger *xlogger.Logger,
	analyzer *usecase.Analyzer,
	gen *research.Generator,
	store domrepo.AnalysisStore,
	hub *mid.ProgressHub,
) *PricingHandler {
	svcmetrics.Register()
	return &PricingHandler{logger: logger, analyzer: analyzer, research: gen, store: store, hub: hub}
}

func (h *PricingHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/analyze", h.Analyze)
	g.GET("/research-aids", h.ResearchAids)
	g.GET("/history", h.History)
	g.GET("/progress", h.Progress)
}

func (h *PricingHandler) Analyze(c echo.Context) error {
	start := time.Now()
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	in := usecase.AnalyzeInput{
		Terms:         req.Terms,
		Item:          req.Item,
		MarkupPercent: &req.MarkupPercent,
		SampleLimit:   &req.SampleLimit,
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), in)
	if err != nil {
		svcmetrics.PricingErrors.WithLabelValues("analyze").Inc()
		if errors.Is(err, usecase.ErrNoSearchTerms) {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("no search terms could be derived from the request").WithError(err))
		}
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	res.AnalysisID = ulid.Make().String()
	res.AnalyzedAt = time.Now().UTC()

	if h.store != nil {
		// history persistence is best-effort; the caller still gets a result
		if serr := h.store.Store(c.Request().Context(), res); serr != nil {
			h.logger.Warn("analysis store failed", xlogger.String("analysis_id", res.AnalysisID), xlogger.Error(serr))
		}
	}
	if h.hub != nil {
		h.hub.Publish(mid.ProgressEvent{
			Stage:       mid.StageAnalysisDone,
			AnalysisID:  res.AnalysisID,
			Terms:       res.SearchTermsUsed,
			SampleCount: res.Summary.SampleCount,
			Success:     res.Success,
		})
	}

	svcmetrics.PricingLatency.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	return xhttp.SuccessResponse(c, res)
}

func (h *PricingHandler) ResearchAids(c echo.Context) error {
	req := &models.ResearchAidsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	aids := h.research.Aids(req.Terms, research.Params{
		Condition: string(domrepo.NormalizeCondition(req.Condition)),
		Category:  req.Category,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
	})
	return xhttp.SuccessResponse(c, aids)
}

func (h *PricingHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.store == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("analysis history is not enabled"))
	}

	now := time.Now().UTC()
	rows, err := h.store.History(c.Request().Context(), req.Terms, now.AddDate(-1, 0, 0), now, req.Limit)
	if err != nil {
		svcmetrics.PricingErrors.WithLabelValues("history").Inc()
		h.logger.Error("history query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}
