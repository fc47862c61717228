package cli

import (
	"errors"
	"net/http"

	"nuggetube-backend/internal/classifier"
	"nuggetube-backend/internal/config"
	"nuggetube-backend/internal/handler"
	"nuggetube-backend/internal/reference"
	"nuggetube-backend/internal/responder"
	"nuggetube-backend/internal/service"
	"nuggetube-backend/internal/storage"
	"nuggetube-backend/internal/tools"
	"nuggetube-backend/pkg/logger"
)

// app holds the wired services for one process.
type app struct {
	cfg      *config.Config
	counters storage.CounterStore

	chat     *service.ChatService
	drawing  *service.DrawingService
	flock    *service.FlockService
	maps     *service.MapService
	adoption *service.AdoptionService
}

func newCounterStore(cfg config.CountersConfig) (storage.CounterStore, error) {
	if cfg.Type == "sqlite" {
		return storage.NewSQLiteCounterStore(cfg.Path)
	}
	return storage.NewMemoryCounterStore(), nil
}

func newApp(cfg *config.Config) (*app, error) {
	counters, err := newCounterStore(cfg.Counters)
	if err != nil {
		return nil, err
	}

	store := service.NewStorage(cfg.Storage)
	speaker := service.NewSpeaker(cfg.Speech.Enabled)
	table := reference.Default

	logger.WithFields(logger.Fields{
		"storage":  cfg.Storage.Type,
		"counters": cfg.Counters.Type,
		"speech":   cfg.Speech.Enabled,
	}).Info("Services initialized")

	return &app{
		cfg:      cfg,
		counters: counters,
		chat:     service.NewChatService(store, responder.New(table, nil), speaker, cfg.Chat, cfg.Session),
		drawing:  service.NewDrawingService(classifier.New(nil), table, speaker, cfg.Drawing),
		flock:    service.NewFlockService(counters, nil, cfg.Leaderboard.Size),
		maps:     service.NewMapService(table),
		adoption: service.NewAdoptionService(table),
	}, nil
}

func (a *app) router() http.Handler {
	handlers := handler.Handlers{
		Chat:     handler.NewChatHandler(a.chat),
		Drawing:  handler.NewDrawingHandler(a.drawing, a.cfg.Drawing),
		Flock:    handler.NewFlockHandler(a.flock),
		Map:      handler.NewMapHandler(a.maps),
		Adoption: handler.NewAdoptionHandler(a.adoption),
	}

	if a.cfg.MCP.Enabled {
		mcpServer := tools.NewServer(tools.Services{Chat: a.chat, Drawing: a.drawing, Map: a.maps}, a.cfg.Drawing)
		handlers.MCP = tools.NewHTTPHandler(mcpServer, a.cfg.MCP.BasePath)
	}

	return handler.SetupRouter(a.cfg, handlers)
}

func (a *app) Close() error {
	return errors.Join(a.chat.Close(), a.counters.Close())
}
