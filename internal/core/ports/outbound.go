package ports

import (
	"context"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

// TextGenerator produces completions through the tiered provider router.
type TextGenerator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error)
}

// RetrievalStore performs semantic search over the knowledge base.
type RetrievalStore interface {
	Search(ctx context.Context, query string, limit int, filter domain.SearchFilter) ([]domain.RetrievedPassage, error)
}

// RetrievalIndexer upserts knowledge-base documents (seed path).
type RetrievalIndexer interface {
	IndexDocuments(ctx context.Context, docs []domain.CatalogDocument) error
}

// InventoryStore reads and mutates per-location stock in the parts graph.
type InventoryStore interface {
	Check(ctx context.Context, sku, locationID string) ([]domain.StockLevel, error)
	FindParts(ctx context.Context, searchTerm string, limit int) ([]domain.PartSummary, error)
	LowStock(ctx context.Context, locationID string) ([]domain.LowStockItem, error)
	Transfer(ctx context.Context, fromLocationID, toLocationID, sku string, quantity int) error
	AddInventory(ctx context.Context, item domain.InventoryItem) error
}

// EmailRepository persists inbound emails and their pipeline outcomes.
type EmailRepository interface {
	Create(ctx context.Context, record *domain.EmailRecord) error
	GetByEmailID(ctx context.Context, emailID string) (*domain.EmailRecord, error)
	SaveOutcome(ctx context.Context, emailID string, result *domain.PipelineResult) error
	ListRecent(ctx context.Context, limit int) ([]domain.EmailRecord, error)
}

// MessageQueue hands received emails to the worker pool.
type MessageQueue interface {
	PublishEmailReceived(ctx context.Context, emailID string) error
	SubscribeEmailReceived(ctx context.Context, handler func(context.Context, string) error) error
}
