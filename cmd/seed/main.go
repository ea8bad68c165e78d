package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/seanebones-lang/Parts-Dept/internal/config"
	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/graph/neo4j"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/llm/ollama"
	"github.com/seanebones-lang/Parts-Dept/internal/infrastructure/vector/qdrant"
	"github.com/seanebones-lang/Parts-Dept/internal/observability/logging"
)

// Seeds the inventory graph and the retrieval collection with the
// demo dataset: three Springfield locations, a small parts catalog
// and the FAQ entries the response composer grounds on.
func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("seed", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graph, err := neo4j.New(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
	if err != nil {
		log.Fatalf("init inventory graph: %v", err)
	}
	defer graph.Close(context.Background())

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel)
	vectorStore := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection, ollamaClient)

	for _, location := range seedLocations() {
		if err := graph.CreateLocation(ctx, location); err != nil {
			log.Fatalf("seed location %s: %v", location.ID, err)
		}
	}
	for _, part := range seedParts() {
		if err := graph.CreatePart(ctx, part); err != nil {
			log.Fatalf("seed part %s: %v", part.SKU, err)
		}
	}
	for _, item := range seedInventory() {
		if err := graph.AddInventory(ctx, item); err != nil {
			log.Fatalf("seed inventory %s at %s: %v", item.PartSKU, item.LocationID, err)
		}
	}
	if err := vectorStore.IndexDocuments(ctx, seedDocuments()); err != nil {
		log.Fatalf("seed retrieval documents: %v", err)
	}

	log.Println("seed complete")
}

func seedLocations() []domain.Location {
	return []domain.Location{
		{ID: "loc-001", Name: "Downtown Service Center", Address: "100 Main Street", City: "Springfield", State: "IL", ZipCode: "62701", Phone: "555-0100", Email: "downtown@dealer.com", Manager: "John Smith"},
		{ID: "loc-002", Name: "Westside Auto Parts", Address: "2500 West Avenue", City: "Springfield", State: "IL", ZipCode: "62702", Phone: "555-0200", Email: "westside@dealer.com", Manager: "Sarah Johnson"},
		{ID: "loc-003", Name: "Eastside Parts Depot", Address: "3800 East Boulevard", City: "Springfield", State: "IL", ZipCode: "62703", Phone: "555-0300", Email: "eastside@dealer.com", Manager: "Mike Williams"},
	}
}

func seedParts() []domain.Part {
	return []domain.Part{
		{SKU: "BRK-PAD-001", Name: "Ceramic Brake Pads - Front", Description: "High-performance ceramic brake pads for most sedans", Manufacturer: "Brembo", Category: "Brakes", ListPrice: 89.99, Cost: 45.00},
		{SKU: "BRK-PAD-002", Name: "Ceramic Brake Pads - Rear", Description: "High-performance ceramic brake pads for rear wheels", Manufacturer: "Brembo", Category: "Brakes", ListPrice: 79.99, Cost: 40.00},
		{SKU: "OIL-FILTER-001", Name: "Premium Oil Filter", Description: "High-efficiency oil filter for most vehicles", Manufacturer: "Mobil 1", Category: "Filters", ListPrice: 12.99, Cost: 6.50},
		{SKU: "AIR-FILTER-001", Name: "Engine Air Filter", Description: "Standard engine air filter", Manufacturer: "K&N", Category: "Filters", ListPrice: 24.99, Cost: 12.50},
		{SKU: "WIPER-001", Name: "Windshield Wiper Blades (Pair)", Description: "All-season wiper blades", Manufacturer: "Bosch", Category: "Accessories", ListPrice: 34.99, Cost: 17.50},
		{SKU: "BATTERY-001", Name: "12V Car Battery", Description: "700 CCA automotive battery", Manufacturer: "Interstate", Category: "Electrical", ListPrice: 159.99, Cost: 95.00},
		{SKU: "TIRE-001", Name: "All-Season Tire 205/55R16", Description: "All-season tire for compact and mid-size vehicles", Manufacturer: "Michelin", Category: "Tires", ListPrice: 119.99, Cost: 75.00},
	}
}

func seedInventory() []domain.InventoryItem {
	return []domain.InventoryItem{
		{LocationID: "loc-001", PartSKU: "BRK-PAD-001", Quantity: 50, MinStock: 10, ReorderPoint: 15},
		{LocationID: "loc-001", PartSKU: "BRK-PAD-002", Quantity: 40, MinStock: 10, ReorderPoint: 15},
		{LocationID: "loc-001", PartSKU: "OIL-FILTER-001", Quantity: 100, MinStock: 20, ReorderPoint: 30},
		{LocationID: "loc-001", PartSKU: "AIR-FILTER-001", Quantity: 75, MinStock: 15, ReorderPoint: 25},
		{LocationID: "loc-001", PartSKU: "WIPER-001", Quantity: 30, MinStock: 10, ReorderPoint: 15},
		{LocationID: "loc-001", PartSKU: "BATTERY-001", Quantity: 25, MinStock: 5, ReorderPoint: 10},
		{LocationID: "loc-001", PartSKU: "TIRE-001", Quantity: 60, MinStock: 16, ReorderPoint: 20},
		{LocationID: "loc-002", PartSKU: "BRK-PAD-001", Quantity: 35, MinStock: 10, ReorderPoint: 15},
		{LocationID: "loc-002", PartSKU: "OIL-FILTER-001", Quantity: 80, MinStock: 20, ReorderPoint: 30},
		{LocationID: "loc-002", PartSKU: "AIR-FILTER-001", Quantity: 50, MinStock: 15, ReorderPoint: 25},
		{LocationID: "loc-002", PartSKU: "BATTERY-001", Quantity: 15, MinStock: 5, ReorderPoint: 10},
		{LocationID: "loc-003", PartSKU: "BRK-PAD-002", Quantity: 25, MinStock: 10, ReorderPoint: 15},
		{LocationID: "loc-003", PartSKU: "OIL-FILTER-001", Quantity: 90, MinStock: 20, ReorderPoint: 30},
		{LocationID: "loc-003", PartSKU: "WIPER-001", Quantity: 20, MinStock: 10, ReorderPoint: 15},
		{LocationID: "loc-003", PartSKU: "TIRE-001", Quantity: 40, MinStock: 16, ReorderPoint: 20},
	}
}

func seedDocuments() []domain.CatalogDocument {
	docs := make([]domain.CatalogDocument, 0, len(seedParts())+4)
	for _, part := range seedParts() {
		docs = append(docs, domain.CatalogDocument{
			Content: fmt.Sprintf("%s (SKU: %s). %s. Category: %s. Manufacturer: %s. Price: $%.2f.",
				part.Name, part.SKU, part.Description, part.Category, part.Manufacturer, part.ListPrice),
			Metadata: map[string]string{
				"type":     "parts_catalog",
				"sku":      part.SKU,
				"category": part.Category,
			},
		})
	}

	faqs := []struct {
		question string
		answer   string
		category string
	}{
		{"What types of brake pads do you carry?", "We carry ceramic, semi-metallic, and organic brake pads from top manufacturers like Brembo, Wagner, and Akebono. Ceramic pads offer the best performance with minimal noise and dust.", "products"},
		{"Do you offer installation services?", "Yes, we offer professional installation services at all our locations. Please call ahead to schedule an appointment.", "services"},
		{"What is your return policy?", "We accept returns within 30 days of purchase with original receipt. Parts must be unused and in original packaging. Some restrictions apply to special order items.", "policy"},
		{"Can I transfer parts between locations?", "Yes, we can transfer parts between our locations. Transfers typically take 1-2 business days. Please contact us to arrange a transfer.", "inventory"},
	}
	for _, faq := range faqs {
		docs = append(docs, domain.CatalogDocument{
			Content: fmt.Sprintf("Q: %s\nA: %s", faq.question, faq.answer),
			Metadata: map[string]string{
				"type":     "faq",
				"category": faq.category,
			},
		})
	}
	return docs
}
