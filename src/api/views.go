package api

import (
	"net/http"
	"time"

	"assetserver/src/api/handlers"
	"assetserver/src/config"
	"assetserver/src/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Logger  *logrus.Logger
	origins []string
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewServerWithHandler(handler, logger, cfg.Service.CorsAllowedOrigins), nil
}

func NewServerWithHandler(handler *handlers.Handler, logger *logrus.Logger, origins []string) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
		Logger:  logger,
		origins: origins,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(requestLogger(s.Logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Get("/retail-asset-id", s.Handler.GetNextRetailAssetID)
		r.Get("/it-asset-id", s.Handler.GetNextITAssetID)
		r.Get("/outlets", s.Handler.GetOutlets)
		r.Get("/stats", s.Handler.GetStats)

		r.Route("/retail-assets", func(r chi.Router) {
			r.Get("/", s.Handler.GetRetailAssets)
			r.Post("/", s.Handler.CreateRetailAsset)
			r.Get("/{id}", s.Handler.GetRetailAssetByID)
			r.Put("/{id}", s.Handler.UpdateRetailAsset)
			r.Get("/{id}/services", s.Handler.GetServiceRecords)
			r.Post("/{id}/services", s.Handler.CreateServiceRecord)
		})

		r.Route("/it-assets", func(r chi.Router) {
			r.Get("/", s.Handler.GetITAssets)
			r.Post("/", s.Handler.CreateITAsset)
			r.Get("/{id}", s.Handler.GetITAssetByID)
			r.Put("/{id}", s.Handler.UpdateITAsset)
		})
		r.Get("/cpu-assets", s.Handler.GetITAssetsByType(models.AssetTypeCPU))
		r.Get("/cctv-assets", s.Handler.GetITAssetsByType(models.AssetTypeCCTV))
		r.Get("/network-assets", s.Handler.GetITAssetsByType(models.AssetTypeNetwork))

		r.Post("/assets/bulk", s.Handler.BulkAction)
		r.Post("/assets/{kind}/{id}/activate", s.Handler.ActivateAsset)

		r.Post("/imports/{dialect}", s.Handler.ImportSheet)
	})
}

// requestLogger writes one structured line per request.
func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
			}).Info("request")
		})
	}
}

func NewHTTPServer(server *Server, port string) *http.Server {
	if port == "" {
		port = "8000"
	}
	// Imports may run longer than ordinary requests.
	writeTimeout := 30 * time.Second
	if server.Handler != nil && server.Handler.ImportTimeout+5*time.Second > writeTimeout {
		writeTimeout = server.Handler.ImportTimeout + 5*time.Second
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		Handler:      server,
	}
	return httpServer
}
