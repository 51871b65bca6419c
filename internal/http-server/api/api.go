package api

import (
	"StaffGate/internal/config"
	"StaffGate/internal/http-server/handlers/errors"
	"StaffGate/internal/http-server/handlers/files"
	"StaffGate/internal/http-server/handlers/food"
	"StaffGate/internal/http-server/handlers/webhook"
	"StaffGate/internal/http-server/middleware/authenticate"
	"StaffGate/internal/lib/sl"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Handlers bundles the service entry points the router dispatches to.
type Handlers struct {
	Registration webhook.Registration
	Approval     webhook.Approval
	Catalog      food.Core
	Files        files.Core
}

func New(conf *config.Config, log *slog.Logger, handlers Handlers) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Post("/webhook", webhook.Handle(log, handlers.Registration, handlers.Approval))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(authenticate.New(log, conf.Api.Token))
		v1.Route("/foods", func(r chi.Router) {
			r.Get("/", food.ListFoods(log, handlers.Catalog))
			r.Post("/", food.CreateFood(log, handlers.Catalog))
		})
	})

	router.Get("/files/{name}", files.Serve(log, handlers.Files))

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
