package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ebroker/src/models"
	"ebroker/src/schemas"
	"ebroker/src/utils"

	"github.com/go-chi/chi/v5"
)

// Administrative equity CRUD. PUT is the reference-data price update; prices
// never move from trading activity.

func (h *Handler) GetAllEquities(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	equities, err := h.Store.Equities().GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	res := make([]schemas.EquityResponse, 0, len(equities))
	for _, e := range equities {
		res = append(res, schemas.EquityResponse{ID: e.ID, Name: e.Name, Price: e.Price})
	}
	h.respond(w, r, res, http.StatusOK)
}

func (h *Handler) CreateEquity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateEquityRequest
	if err := decodeBody(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if req.Name == nil {
		h.HandleErrors(w, missingField("name"))
		return
	}
	if req.Price == nil {
		h.HandleErrors(w, missingField("price"))
		return
	}
	if !req.Price.IsPositive() {
		h.HandleErrors(w, utils.BadRequest("price must be positive"))
		return
	}

	equity := &models.Equity{Name: *req.Name, Price: *req.Price}
	if err := h.Store.Equities().Create(ctx, equity, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.EquityResponse{ID: equity.ID, Name: equity.Name, Price: equity.Price}, http.StatusCreated)
}

func (h *Handler) UpdateEquity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid equity id"))
		return
	}

	var req schemas.UpdateEquityRequest
	if err := decodeBody(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	equity, err := h.Store.Equities().GetByID(ctx, id, nil)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if equity == nil {
		h.HandleErrors(w, utils.NotFound("No such equity exists"))
		return
	}

	if req.Name != nil {
		equity.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			h.HandleErrors(w, utils.BadRequest("price must be positive"))
			return
		}
		equity.Price = *req.Price
	}

	if err := h.Store.Equities().Update(ctx, equity, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.EquityResponse{ID: equity.ID, Name: equity.Name, Price: equity.Price}, http.StatusOK)
}

func (h *Handler) DeleteEquity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid equity id"))
		return
	}
	if err := h.Store.Equities().Delete(ctx, id, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
