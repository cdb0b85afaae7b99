package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ebroker/src/schemas"
	"ebroker/src/utils"
)

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.TradeRequest
	if err := decodeBody(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := validateTradeRequest(&req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	message, err := h.Broker.BuyEquity(ctx, *req.UserID, *req.EquityID, *req.NumOfShares, *req.TimeStamp)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.TradeRequest
	if err := decodeBody(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if err := validateTradeRequest(&req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	message, err := h.Broker.SellEquity(ctx, *req.UserID, *req.EquityID, *req.NumOfShares, *req.TimeStamp)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: message}, http.StatusOK)
}

func validateTradeRequest(req *schemas.TradeRequest) error {
	if req.UserID == nil {
		return missingField("userId")
	}
	if req.EquityID == nil {
		return missingField("equityId")
	}
	if req.NumOfShares == nil {
		return missingField("numOfShares")
	}
	if req.TimeStamp == nil {
		return missingField("timeStamp")
	}
	return nil
}

func (h *Handler) AddAmount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.AddAmountRequest
	if err := decodeBody(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if req.UserID == nil {
		h.HandleErrors(w, missingField("userId"))
		return
	}
	if req.Amount == nil {
		h.HandleErrors(w, missingField("amount"))
		return
	}

	message, err := h.Broker.AddFund(ctx, *req.UserID, *req.Amount)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userIDStr := r.URL.Query().Get("userId")
	if userIDStr == "" {
		h.HandleErrors(w, missingField("userId"))
		return
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.HandleErrors(w, utils.NewHTTPError(http.StatusInternalServerError, "invalid 'userId' in request"))
		return
	}

	balance, err := h.Broker.GetBalance(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.BalanceResponse{UserID: userIDStr, Balance: balance}, http.StatusOK)
}
