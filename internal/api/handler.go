package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stowage-io/stowage/internal/packing"
	"github.com/stowage-io/stowage/internal/render"
	"github.com/stowage-io/stowage/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the packing engine and the segregation rule store into HTTP
// handlers.
type Handler struct {
	storage         storage.Store
	logger          *zap.Logger
	minSupportRatio float64

	clock func() time.Time
	runID func() string

	mu             sync.RWMutex
	rulesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithRunIDSource overrides the pack run ID generator, primarily for tests.
func WithRunIDSource(source func() string) HandlerOption {
	return func(h *Handler) {
		h.runID = source
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Store, logger *zap.Logger, minSupportRatio float64, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage:         store,
		logger:          logger,
		minSupportRatio: minSupportRatio,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		runID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.rulesUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetRules(w http.ResponseWriter, r *http.Request) {
	_ = r
	rules, err := h.storage.GetRules()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := rulesResponse{
		Rules:     rules,
		UpdatedAt: h.currentRulesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutRules(w http.ResponseWriter, r *http.Request) {
	var req rulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if err := h.storage.SetRules(req.Rules); err != nil {
		if errors.Is(err, storage.ErrInvalidRule) || errors.Is(err, storage.ErrDuplicatePair) {
			writeError(w, http.StatusBadRequest, "Invalid segregation rules", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markRulesUpdated()

	rules, err := h.storage.GetRules()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := rulesResponse{
		Rules:     rules,
		UpdatedAt: h.currentRulesUpdatedAt(),
		Message:   "Segregation rules updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePack(w http.ResponseWriter, r *http.Request) {
	run, status, errResp := h.executePack(r)
	if errResp != nil {
		writeJSON(w, status, errResp)
		return
	}

	results, packed, unfit := placementResponses(run.results)
	resp := packResponse{
		RunID:       run.id,
		Results:     results,
		Bins:        binResponses(run.containers),
		PackedCount: packed,
		UnfitCount:  unfit,
		DurationMs:  run.duration.Milliseconds(),
	}
	h.logger.Info("pack run completed",
		zap.String("run_id", run.id),
		zap.Int("packed", packed),
		zap.Int("unfit", unfit),
		zap.Duration("duration", run.duration),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePackRender(w http.ResponseWriter, r *http.Request) {
	run, status, errResp := h.executePack(r)
	if errResp != nil {
		writeJSON(w, status, errResp)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(w, run.id, run.containers); err != nil {
		h.logger.Error("render failed", zap.Error(err), zap.String("run_id", run.id))
	}
}

// packRun carries the outcome of one engine invocation between the transport
// handlers.
type packRun struct {
	id         string
	results    []packing.Result
	containers []packing.Container
	duration   time.Duration
}

func (h *Handler) executePack(r *http.Request) (*packRun, int, *errorResponse) {
	var req packRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, http.StatusBadRequest, &errorResponse{Error: "Invalid request", Details: "unable to parse JSON payload"}
	}
	if len(req.Items) == 0 {
		return nil, http.StatusBadRequest, &errorResponse{Error: "Invalid request", Details: "items must contain at least one entry"}
	}
	if len(req.Containers) == 0 {
		return nil, http.StatusBadRequest, &errorResponse{Error: "Invalid request", Details: "containers must contain at least one entry"}
	}

	items, err := buildItems(req.Items)
	if err != nil {
		return nil, http.StatusBadRequest, &errorResponse{Error: "Invalid items", Details: err.Error()}
	}

	table, err := h.storage.Table()
	if err != nil {
		return nil, http.StatusInternalServerError, &errorResponse{Error: "Internal error", Details: err.Error()}
	}
	containers, err := buildContainers(req.Containers, table)
	if err != nil {
		return nil, http.StatusBadRequest, &errorResponse{Error: "Invalid containers", Details: err.Error()}
	}

	ratio := h.minSupportRatio
	if req.MinSupportRatio != nil {
		ratio = *req.MinSupportRatio
	}
	packer := packing.New(packing.WithMinSupportRatio(ratio))

	start := time.Now()
	results, err := packer.Pack(items, containers)
	if err != nil {
		// Only contract violations reach here; surface them as server faults.
		return nil, http.StatusInternalServerError, &errorResponse{Error: "Internal error", Details: err.Error()}
	}

	return &packRun{
		id:         h.runID(),
		results:    results,
		containers: containers,
		duration:   time.Since(start),
	}, http.StatusOK, nil
}

func (h *Handler) currentRulesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rulesUpdatedAt
}

func (h *Handler) markRulesUpdated() {
	h.mu.Lock()
	h.rulesUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
