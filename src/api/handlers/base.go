package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ebroker/src/repositories"
	"ebroker/src/services"
	"ebroker/src/utils"
)

type Handler struct {
	Broker *services.BrokingService
	Store  repositories.Store
}

func NewHandler(store repositories.Store) *Handler {
	return &Handler{
		Broker: services.NewBrokingService(store),
		Store:  store,
	}
}

func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	utils.WriteError(w, err)
}

// missingField mirrors the boundary contract: absent request fields are the
// only failures reported as 400, everything from the core comes back as 500.
func missingField(name string) error {
	return utils.BadRequest(fmt.Sprintf("'%s' not found in request", name))
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.BadRequest("invalid request body")
	}
	return nil
}
