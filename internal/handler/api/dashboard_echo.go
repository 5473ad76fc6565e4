package api

import (
	"errors"
	"net/http"
	"time"

	"MetalPulse/internal/render"
	"MetalPulse/internal/usecase"
	"MetalPulse/internal/view"
	xhttp "MetalPulse/pkg/http"
	xlogger "MetalPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler serves the dashboard page, its charts and the JSON view model.
type DashboardEchoHandler struct {
	logger   *xlogger.Logger
	loader   *usecase.DashboardLoader
	registry *render.Registry
	opts     view.Options
	cache    Invalidator
}

func NewDashboardEchoHandler(logger *xlogger.Logger, loader *usecase.DashboardLoader, registry *render.Registry, opts view.Options, cache Invalidator) *DashboardEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &DashboardEchoHandler{logger: logger, loader: loader, registry: registry, opts: opts, cache: cache}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	e.GET("/charts/:slot", h.Chart)
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.GET("/dashboard", h.Dashboard)
}

// Page renders the dashboard. A failed load still renders the empty shell.
func (h *DashboardEchoHandler) Page(c echo.Context) error {
	page := view.Page{Title: h.opts.Title}
	var (
		mounted  []*render.Instance
		loadedAt time.Time
	)

	session, err := h.loader.Load(c.Request().Context())
	if err == nil {
		page = view.BuildPage(session.Data, session.Analysis, h.opts)
		mounted = h.registry.MountAll(page.Charts)
		loadedAt = session.LoadedAt
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	c.Response().WriteHeader(http.StatusOK)
	if err := render.RenderPage(c.Response(), render.NewPageData(page, mounted, loadedAt)); err != nil {
		h.logger.Error("page render error", xlogger.Error(err))
		return err
	}
	return nil
}

// Chart renders the live chart of a slot.
func (h *DashboardEchoHandler) Chart(c echo.Context) error {
	req := &ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	inst, ok := h.registry.Get(req.Slot)
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no chart mounted for %s", req.Slot))
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if err := inst.Render(c.Response()); err != nil {
		if errors.Is(err, render.ErrDestroyed) {
			h.logger.Debug("chart replaced during render", xlogger.String("slot", req.Slot))
			return nil
		}
		h.logger.Error("chart render error", xlogger.String("slot", req.Slot), xlogger.Error(err))
		return err
	}
	return nil
}

// Dashboard returns the JSON view model, or 502 when the upstream load fails.
func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	req := &DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	ctx := c.Request().Context()

	if req.Refresh && h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			h.logger.Warn("cache invalidate failed", xlogger.Error(err))
		}
	}

	session, err := h.loader.Load(ctx)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("failed to load market data").WithError(err))
	}

	page := view.BuildPage(session.Data, session.Analysis, h.opts)
	h.registry.MountAll(page.Charts)
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return xhttp.SuccessResponse(c, DashboardResponse{Page: page, LoadedAt: session.LoadedAt.UTC().Format(time.RFC3339)})
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, HealthResponse{Status: "ok", Charts: h.registry.Live()})
}

var _ xhttp.Handler = (*DashboardEchoHandler)(nil)
