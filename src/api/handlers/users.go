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

// Administrative user CRUD. These sit outside the trading flow: rows are
// seeded or managed here and only mutated by the broking service afterwards.

func (h *Handler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := h.Store.Users().GetAll(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	res := make([]schemas.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, schemas.UserResponse{ID: u.ID, Name: u.Name, Balance: u.Balance})
	}
	h.respond(w, r, res, http.StatusOK)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if req.Name == nil {
		h.HandleErrors(w, missingField("name"))
		return
	}
	if req.Balance == nil {
		h.HandleErrors(w, missingField("balance"))
		return
	}
	if req.Balance.IsNegative() {
		h.HandleErrors(w, utils.BadRequest("balance cannot be negative"))
		return
	}

	user := &models.User{Name: *req.Name, Balance: *req.Balance}
	if err := h.Store.Users().Create(ctx, user, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.UserResponse{ID: user.ID, Name: user.Name, Balance: user.Balance}, http.StatusCreated)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}
	if err := h.Store.Users().Delete(ctx, id, nil); err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetUserHoldings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	user, err := h.Store.Users().GetByID(ctx, id, nil)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if user == nil {
		h.HandleErrors(w, utils.NotFound("No such user exists"))
		return
	}

	holdings, err := h.Store.Holdings().GetByUserID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	res := make([]schemas.HoldingResponse, 0, len(holdings))
	for _, hold := range holdings {
		res = append(res, schemas.HoldingResponse{
			ID:          hold.ID,
			UserID:      hold.UserID,
			EquityID:    hold.EquityID,
			TotalShares: hold.TotalShares,
		})
	}
	h.respond(w, r, res, http.StatusOK)
}
