package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/ChemReactivity/internal/application/descriptor"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemReactivity/pkg/errors"
	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
)

// DescriptorHandler handles HTTP requests for reactivity descriptor sets.
type DescriptorHandler struct {
	svc    descriptor.Service
	logger logging.Logger
}

// NewDescriptorHandler creates a new DescriptorHandler.
func NewDescriptorHandler(svc descriptor.Service, logger logging.Logger) *DescriptorHandler {
	return &DescriptorHandler{
		svc:    svc,
		logger: logger,
	}
}

// ComputeRequest is the request body for a descriptor computation.
type ComputeRequest struct {
	Name     string              `json:"name"`
	Model    string              `json:"model"`
	Energies ctypes.EnergyTriple `json:"energies"`
}

// Compute handles POST /api/v1/descriptors
func (h *DescriptorHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.NewValidationError("body", "invalid request body"))
		return
	}

	set, err := h.svc.Compute(r.Context(), &descriptor.ComputeInput{
		Name:     req.Name,
		Model:    req.Model,
		Energies: req.Energies,
	})
	if err != nil {
		h.logger.Error("descriptor computation failed",
			logging.String("model", req.Model), logging.Err(err))
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, set)
}

// List handles GET /api/v1/descriptors
func (h *DescriptorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	result, err := h.svc.List(r.Context(), &descriptor.ListInput{
		Page:     page,
		PageSize: pageSize,
		Model:    r.URL.Query().Get("model"),
	})
	if err != nil {
		h.logger.Error("failed to list descriptor sets", logging.Err(err))
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/descriptors/{setID}
func (h *DescriptorHandler) Get(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setID")
	if setID == "" {
		writeError(w, http.StatusBadRequest, errors.NewValidationError("id", "descriptor set id is required"))
		return
	}

	set, err := h.svc.GetByID(r.Context(), setID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, set)
}

// Delete handles DELETE /api/v1/descriptors/{setID}
func (h *DescriptorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setID")
	if setID == "" {
		writeError(w, http.StatusBadRequest, errors.NewValidationError("id", "descriptor set id is required"))
		return
	}

	if err := h.svc.Delete(r.Context(), setID); err != nil {
		h.logger.Error("failed to delete descriptor set",
			logging.String("set_id", setID), logging.Err(err))
		writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GrandPotential handles GET /api/v1/descriptors/{setID}/grand-potential
//
// Query parameters: exactly one of n or mu selects the evaluation point,
// order (default 0) selects Ω itself or its order-th derivative with
// respect to mu.
func (h *DescriptorHandler) GrandPotential(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setID")
	if setID == "" {
		writeError(w, http.StatusBadRequest, errors.NewValidationError("id", "descriptor set id is required"))
		return
	}

	input := &descriptor.GrandPotentialInput{ID: setID}
	q := r.URL.Query()

	if v := q.Get("n"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.NewValidationError("n", "must be a number"))
			return
		}
		input.N = &n
	}
	if v := q.Get("mu"); v != "" {
		mu, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.NewValidationError("mu", "must be a number"))
			return
		}
		input.Mu = &mu
	}
	if v := q.Get("order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.NewValidationError("order", "must be an integer"))
			return
		}
		input.Order = order
	}

	result, err := h.svc.EvaluateGrandPotential(r.Context(), input)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
