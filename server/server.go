package server

import (
	"context"
	"errors"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	contractx "github.com/azka-labs/agent-gateway/agent/contract"
	posx "github.com/azka-labs/agent-gateway/agent/pos"
)

type Config struct {
	Port string `envconfig:"PORT" split_words:"true" default:"8080"`
}

// ChatDispatcher is the dispatch surface the transport needs.
type ChatDispatcher interface {
	Dispatch(ctx context.Context, message string, capabilityID contractx.CapabilityID, attachments []contractx.Attachment) string
}

type Server struct {
	dispatcher ChatDispatcher
	registry   contractx.Registry
	engine     *posx.Engine
	port       string
}

func New(dispatcher ChatDispatcher, registry contractx.Registry, engine *posx.Engine, cfg Config) (*Server, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if registry == nil {
		return nil, errors.New("capability registry is required")
	}
	if engine == nil {
		return nil, errors.New("pos engine is required")
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	return &Server{
		dispatcher: dispatcher,
		registry:   registry,
		engine:     engine,
		port:       port,
	}, nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/", s.root)
	r.GET("/agents", s.agents)
	r.POST("/chat", s.chat)

	pos := r.Group("/pos")
	{
		pos.POST("/add", s.addItem)
		pos.GET("/cart", s.getCart)
		pos.POST("/checkout", s.checkout)
		pos.DELETE("/cart", s.clearCart)
	}

	return r
}

func (s *Server) Run() error {
	log.Info().Str("port", s.port).Msg("agent gateway listening")
	return s.Router().Run(":" + s.port)
}
