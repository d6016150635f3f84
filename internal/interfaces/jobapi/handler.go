package jobapi

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
	"github.com/riskibarqy/fpl-datacollector/internal/usecase"
)

const internalTokenHeader = "X-Internal-Job-Token"

// Handler exposes the collector's jobs behind a token-guarded endpoint, so a
// scheduler can trigger runs without talking to the process directly.
type Handler struct {
	jobs      *usecase.JobService
	token     string
	validator *validator.Validate
	logger    *logging.Logger
}

func NewHandler(jobs *usecase.JobService, token string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		jobs:      jobs,
		token:     token,
		validator: validator.New(),
		logger:    logger,
	}
}

type runJobsRequest struct {
	Jobs []string `json:"jobs" validate:"omitempty,dive,oneof=refresh backfill collect"`
}

type runJobsResponse struct {
	Response int                `json:"response"`
	Report   *usecase.RunReport `json:"report,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		if !ctx.IsGet() {
			h.writeJSON(ctx, http.StatusMethodNotAllowed, runJobsResponse{Response: http.StatusMethodNotAllowed, Error: "method not allowed"})
			return
		}
		h.writeJSON(ctx, http.StatusOK, map[string]string{"status": "ok"})
	case "/v1/internal/jobs/run":
		if !ctx.IsPost() {
			h.writeJSON(ctx, http.StatusMethodNotAllowed, runJobsResponse{Response: http.StatusMethodNotAllowed, Error: "method not allowed"})
			return
		}
		h.runJobs(ctx)
	default:
		h.writeJSON(ctx, http.StatusNotFound, runJobsResponse{Response: http.StatusNotFound, Error: "not found"})
	}
}

func (h *Handler) runJobs(ctx *fasthttp.RequestCtx) {
	if err := h.authorize(ctx); err != nil {
		h.writeError(ctx, err)
		return
	}

	req, err := h.decodeRunJobsRequest(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}

	report, err := h.jobs.Run(ctx, req.Jobs)
	if err != nil {
		h.logger.ErrorContext(ctx, "job run failed", "jobs", req.Jobs, "error", err)
		h.writeError(ctx, err)
		return
	}

	h.writeJSON(ctx, http.StatusOK, runJobsResponse{Response: http.StatusOK, Report: &report})
}

func (h *Handler) authorize(ctx *fasthttp.RequestCtx) error {
	if h.token == "" {
		return nil
	}
	presented := ctx.Request.Header.Peek(internalTokenHeader)
	if subtle.ConstantTimeCompare(presented, []byte(h.token)) != 1 {
		return fmt.Errorf("%w: invalid job token", usecase.ErrUnauthorized)
	}
	return nil
}

func (h *Handler) decodeRunJobsRequest(ctx *fasthttp.RequestCtx) (runJobsRequest, error) {
	var req runJobsRequest
	body := ctx.PostBody()
	if len(body) == 0 {
		return req, nil
	}
	if err := sonic.Unmarshal(body, &req); err != nil {
		return req, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		return req, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFromError(err)
	h.writeJSON(ctx, status, runJobsResponse{Response: status, Error: err.Error()})
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	raw, err := sonic.Marshal(payload)
	if err != nil {
		ctx.SetStatusCode(http.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"response":500,"error":"encode response"}`)
		return
	}
	_, _ = buf.Write(raw)

	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(buf.B)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
