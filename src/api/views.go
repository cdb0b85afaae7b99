package api

import (
	"net/http"
	"time"

	handlers "ebroker/src/api/handlers"
	"ebroker/src/repositories"
	"ebroker/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(store repositories.Store, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(store),
	}
	server.Router.Use(loggerMiddleware(logger))
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/broker/api", func(r chi.Router) {
		r.Post("/buy", s.Handler.Buy)
		r.Post("/sell", s.Handler.Sell)
		r.Post("/addAmount", s.Handler.AddAmount)
		r.Get("/getBalance", s.Handler.GetBalance)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllUsers)
			r.Post("/", s.Handler.CreateUser)
			r.Delete("/{id}", s.Handler.DeleteUser)
			r.Get("/{id}/holdings", s.Handler.GetUserHoldings)
		})

		r.Route("/equities", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllEquities)
			r.Post("/", s.Handler.CreateEquity)
			r.Put("/{id}", s.Handler.UpdateEquity)
			r.Delete("/{id}", s.Handler.DeleteEquity)
		})
	})
}

// loggerMiddleware makes the service logger reachable from every request
// context via utils.LoggerFromContext.
func loggerMiddleware(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), logger)))
		})
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
