package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Shopping-Assistant/agent/agents/shopping"
	conversationx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/conversation"
	formatterx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/formatter"
	llmx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/prompt"
	toolx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/tool"
	"github.com/tanpawarit/Chative-Shopping-Assistant/api"
	"github.com/tanpawarit/Chative-Shopping-Assistant/pkg/commerce"
	configx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/config"
	providerx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/llmprovider"
	"github.com/tanpawarit/Chative-Shopping-Assistant/pkg/logbuffer"
	logx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/logger"
	"github.com/tanpawarit/Chative-Shopping-Assistant/pkg/vectorsearch"
)

const shutdownTimeout = 10 * time.Second

func main() {
	appCfg := configx.MustNew[api.Config]("APP")
	logCfg := configx.MustNew[logx.Config]("LOG")

	logFile, err := logx.OpenFile(appCfg.LogFilePath)
	if err != nil {
		panic(err)
	}
	defer logFile.Close()

	logs := logbuffer.New(logbuffer.DefaultCapacity)
	logx.Init(*logCfg, logFile, logs)

	llmCfg := configx.MustNew[llmx.Config]("OPENAI")
	commerceCfg := configx.MustNew[commerce.Config]("COMMERCE")
	vectorCfg := configx.MustNew[vectorsearch.Config]("VECTOR")
	conversationCfg := configx.MustNew[conversationx.Config]("CONVERSATION")

	ctx := context.Background()

	openaiClient := providerx.NewClient(llmCfg.Config)
	if openaiClient == nil {
		log.Fatal().Msg("failed to initialize openai client")
	}

	commerceClient := commerce.MustNew(*commerceCfg)

	embedder, err := vectorsearch.NewOpenAIEmbedder(openaiClient, llmCfg.EmbeddingModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create embedder")
	}
	searcher, err := vectorsearch.NewSearcher(ctx, *vectorCfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", vectorCfg.Backend).Msg("failed to connect vector backend")
	}
	retriever, err := vectorsearch.NewRetriever(embedder, searcher)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create retriever")
	}

	store, err := conversationx.NewStore(ctx, *conversationCfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", conversationCfg.Driver).Msg("failed to open conversation store")
	}

	prompts := promptx.LoadPromptSet()
	formatter, err := formatterx.New(openaiClient, formatterx.Config{
		Model:         llmCfg.FormatterModel,
		FallbackModel: llmCfg.FormatterFallbackModel,
		SystemPrompt:  prompts.Formatter,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create formatter")
	}

	models, err := shopping.NewModels(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat models")
	}

	svc, err := shopping.New(store, models, toolx.Deps{
		Catalog:   commerceClient,
		Cart:      commerceClient,
		Retriever: retriever,
	}, formatter, shopping.Config{MaxTurns: appCfg.MaxTurns}, shopping.WithPrompts(prompts))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create shopping service")
	}

	server := api.NewServer(api.NewHandler(svc, logs, *appCfg))

	go func() {
		addr := fmt.Sprintf(":%d", appCfg.Port)
		log.Info().Str("addr", addr).Msg("shopping assistant listening")
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
	}
	if err := retriever.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to close vector backend")
	}
	if err := store.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close conversation store")
	}

	log.Info().Msg("stopped")
}
