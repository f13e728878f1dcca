package worker

import (
	"net/http"
	"time"

	"assetserver/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(handler *handlers.Handler) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/imports", func(r chi.Router) {
		r.Post("/all", s.Handler.LoadAllImportSchedules)
		r.Post("/{name}", s.Handler.RunImportByName)
	})
}

func NewHTTPServer(server *Server, port string, importTimeout time.Duration) *http.Server {
	if port == "" {
		port = "8000"
	}
	writeTimeout := 30 * time.Second
	if importTimeout+5*time.Second > writeTimeout {
		writeTimeout = importTimeout + 5*time.Second
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		Handler:      server,
	}
	return httpServer
}
