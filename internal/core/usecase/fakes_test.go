package usecase

import (
	"context"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

type fakeGenerator struct {
	calls    []domain.GenerationRequest
	generate func(req domain.GenerationRequest) (*domain.GenerationResult, error)
}

func (f *fakeGenerator) Generate(_ context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	f.calls = append(f.calls, req)
	return f.generate(req)
}

func textResult(text string) func(domain.GenerationRequest) (*domain.GenerationResult, error) {
	return func(req domain.GenerationRequest) (*domain.GenerationResult, error) {
		return &domain.GenerationResult{Text: text, ModelUsed: "llama3", Tier: req.Tier}, nil
	}
}

type searchCall struct {
	query  string
	limit  int
	filter domain.SearchFilter
}

type fakeRetrievalStore struct {
	calls    []searchCall
	passages []domain.RetrievedPassage
	err      error
}

func (f *fakeRetrievalStore) Search(_ context.Context, query string, limit int, filter domain.SearchFilter) ([]domain.RetrievedPassage, error) {
	f.calls = append(f.calls, searchCall{query: query, limit: limit, filter: filter})
	return f.passages, f.err
}

type fakeInventoryStore struct {
	checked []string
	levels  map[string][]domain.StockLevel
	err     error
}

func (f *fakeInventoryStore) Check(_ context.Context, sku, _ string) ([]domain.StockLevel, error) {
	f.checked = append(f.checked, sku)
	if f.err != nil {
		return nil, f.err
	}
	return f.levels[sku], nil
}

func (f *fakeInventoryStore) FindParts(context.Context, string, int) ([]domain.PartSummary, error) {
	return nil, nil
}

func (f *fakeInventoryStore) LowStock(context.Context, string) ([]domain.LowStockItem, error) {
	return nil, nil
}

func (f *fakeInventoryStore) Transfer(context.Context, string, string, string, int) error {
	return nil
}

func (f *fakeInventoryStore) AddInventory(context.Context, domain.InventoryItem) error {
	return nil
}

type fakeEmailRepository struct {
	records  map[string]*domain.EmailRecord
	outcomes map[string]*domain.PipelineResult
	getErr   error
	saveErr  error
}

func newFakeEmailRepository() *fakeEmailRepository {
	return &fakeEmailRepository{
		records:  map[string]*domain.EmailRecord{},
		outcomes: map[string]*domain.PipelineResult{},
	}
}

func (f *fakeEmailRepository) Create(_ context.Context, record *domain.EmailRecord) error {
	f.records[record.EmailID] = record
	return nil
}

func (f *fakeEmailRepository) GetByEmailID(_ context.Context, emailID string) (*domain.EmailRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	record, ok := f.records[emailID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (f *fakeEmailRepository) SaveOutcome(_ context.Context, emailID string, result *domain.PipelineResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.outcomes[emailID] = result
	return nil
}

func (f *fakeEmailRepository) ListRecent(context.Context, int) ([]domain.EmailRecord, error) {
	return nil, nil
}
