package main

import (
	"context"

	"github.com/rs/zerolog/log"

	capabilityx "github.com/azka-labs/agent-gateway/agent/capability"
	dispatchx "github.com/azka-labs/agent-gateway/agent/dispatch"
	documentx "github.com/azka-labs/agent-gateway/agent/document"
	llmx "github.com/azka-labs/agent-gateway/agent/llm"
	posx "github.com/azka-labs/agent-gateway/agent/pos"
	configx "github.com/azka-labs/agent-gateway/pkg/config"
	groqx "github.com/azka-labs/agent-gateway/pkg/groq"
	_ "github.com/azka-labs/agent-gateway/pkg/logger/autoload"
	serverx "github.com/azka-labs/agent-gateway/server"
)

func main() {
	ctx := context.Background()

	groqCfg := configx.MustNew[groqx.Config]("GROQ")
	if groqx.NewClient(*groqCfg) == nil {
		panic("failed to initialize groq client")
	}

	llmCfg := configx.MustNew[llmx.Config]("GROQ")
	registry, err := capabilityx.NewRegistry(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build capability registry")
	}

	engine := posx.NewEngine()

	dispatchCfg := configx.MustNew[dispatchx.Config]("DISPATCH")
	dispatcher, err := dispatchx.New(registry, documentx.NewPDFExtractor(), engine, *dispatchCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dispatcher")
	}

	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	srv, err := serverx.New(dispatcher, registry, engine, *serverCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
