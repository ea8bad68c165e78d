package bootstrap

import (
	"context"
	"fmt"

	"github.com/seanebones-lang/Parts-Dept/internal/config"
	"github.com/seanebones-lang/Parts-Dept/internal/core/ports"
	"github.com/seanebones-lang/Parts-Dept/internal/core/usecase"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/graph/neo4j"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/llm"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/llm/anthropic"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/llm/mistral"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/llm/ollama"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/queue/nats"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/repository/postgres"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/resilience"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/vector/qdrant"
	"github.com/seanebones-lang/Parts-Dept/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.EmailRepository
	Inventory ports.InventoryStore
	Indexer   ports.RetrievalIndexer
	ProcessUC *usecase.ProcessEmailUseCase

	Metrics *metrics.PipelineMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewEmailRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	graph, err := neo4j.New(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		return nil, fmt.Errorf("init inventory graph: %w", err)
	}

	pipelineMetrics := metrics.NewPipelineMetrics("partsdept")

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel)
	anthropicClient := anthropic.New(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	mistralClient := mistral.New(cfg.MistralAPIKey, cfg.MistralModel)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	router := llm.NewRouter(ollamaClient, mistralClient, anthropicClient, executor,
		llm.WithObserver(pipelineMetrics))

	vectorStore := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection, ollamaClient)

	classifier := usecase.NewIntentClassifier(router)
	extractor := usecase.NewEntityExtractor(router)
	contexts := usecase.NewContextBuilder(vectorStore)
	composer := usecase.NewResponseComposer(router, contexts, graph, cfg.ConfidenceThreshold)
	processUC := usecase.NewProcessEmailUseCase(classifier, extractor, composer, repo)

	return &App{
		Config: cfg,

		Queue:     queue,
		Repo:      repo,
		Inventory: graph,
		Indexer:   vectorStore,
		ProcessUC: processUC,

		Metrics: pipelineMetrics,

		closeFn: func() {
			queue.Close()
			_ = graph.Close(context.Background())
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
