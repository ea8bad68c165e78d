package neo4j

import (
	"context"
	"errors"
	"fmt"

	driver "github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/seanebones-lang/Parts-Dept/internal/core/domain"
)

// Store reads and mutates the parts graph: Location and Part nodes
// joined by HAS_INVENTORY relationships carrying stock levels.
type Store struct {
	driver   driver.DriverWithContext
	database string
}

func New(ctx context.Context, uri, user, password, database string) (*Store, error) {
	drv, err := driver.NewDriverWithContext(uri, driver.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := drv.VerifyConnectivity(ctx); err != nil {
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}
	return &Store{driver: drv, database: database}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) Check(ctx context.Context, sku, locationID string) ([]domain.StockLevel, error) {
	query := `
MATCH (l:Location)-[r:HAS_INVENTORY]->(p:Part {sku: $part_sku})
RETURN l.name AS location, l.id AS location_id, p.sku AS sku,
       p.name AS part_name, r.quantity AS quantity,
       r.min_stock AS min_stock, p.list_price AS price
ORDER BY r.quantity DESC`
	params := map[string]any{"part_sku": sku}
	if locationID != "" {
		query = `
MATCH (l:Location {id: $location_id})-[r:HAS_INVENTORY]->(p:Part {sku: $part_sku})
RETURN l.name AS location, l.id AS location_id, p.sku AS sku,
       p.name AS part_name, r.quantity AS quantity,
       r.min_stock AS min_stock, p.list_price AS price`
		params["location_id"] = locationID
	}

	records, err := s.read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("check inventory: %w", err)
	}

	out := make([]domain.StockLevel, 0, len(records))
	for _, record := range records {
		fields := record.AsMap()
		out = append(out, domain.StockLevel{
			Location:   asString(fields["location"]),
			LocationID: asString(fields["location_id"]),
			SKU:        asString(fields["sku"]),
			PartName:   asString(fields["part_name"]),
			Quantity:   asInt(fields["quantity"]),
			MinStock:   asInt(fields["min_stock"]),
			Price:      asFloat(fields["price"]),
		})
	}
	return out, nil
}

func (s *Store) FindParts(ctx context.Context, searchTerm string, limit int) ([]domain.PartSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
MATCH (p:Part)
WHERE toLower(p.name) CONTAINS toLower($search_term)
   OR toLower(p.description) CONTAINS toLower($search_term)
   OR p.sku CONTAINS $search_term
RETURN p.sku AS sku, p.name AS name, p.description AS description,
       p.category AS category, p.list_price AS price
LIMIT $limit`

	records, err := s.read(ctx, query, map[string]any{"search_term": searchTerm, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("find parts: %w", err)
	}

	out := make([]domain.PartSummary, 0, len(records))
	for _, record := range records {
		fields := record.AsMap()
		out = append(out, domain.PartSummary{
			SKU:         asString(fields["sku"]),
			Name:        asString(fields["name"]),
			Description: asString(fields["description"]),
			Category:    asString(fields["category"]),
			Price:       asFloat(fields["price"]),
		})
	}
	return out, nil
}

func (s *Store) LowStock(ctx context.Context, locationID string) ([]domain.LowStockItem, error) {
	query := `
MATCH (l:Location)-[r:HAS_INVENTORY]->(p:Part)
WHERE r.quantity <= r.reorder_point
RETURN l.name AS location, l.id AS location_id, p.sku AS sku,
       p.name AS part_name, r.quantity AS current_quantity,
       r.reorder_point AS reorder_point, r.min_stock AS min_stock
ORDER BY r.quantity ASC`
	params := map[string]any{}
	if locationID != "" {
		query = `
MATCH (l:Location {id: $location_id})-[r:HAS_INVENTORY]->(p:Part)
WHERE r.quantity <= r.reorder_point
RETURN l.name AS location, l.id AS location_id, p.sku AS sku,
       p.name AS part_name, r.quantity AS current_quantity,
       r.reorder_point AS reorder_point, r.min_stock AS min_stock
ORDER BY r.quantity ASC`
		params["location_id"] = locationID
	}

	records, err := s.read(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("low stock query: %w", err)
	}

	out := make([]domain.LowStockItem, 0, len(records))
	for _, record := range records {
		fields := record.AsMap()
		out = append(out, domain.LowStockItem{
			Location:     asString(fields["location"]),
			LocationID:   asString(fields["location_id"]),
			SKU:          asString(fields["sku"]),
			PartName:     asString(fields["part_name"]),
			Quantity:     asInt(fields["current_quantity"]),
			ReorderPoint: asInt(fields["reorder_point"]),
			MinStock:     asInt(fields["min_stock"]),
		})
	}
	return out, nil
}

// Transfer moves stock between locations and records the movement as a
// TRANSFERRED relationship. Guarded: it only applies when the source
// holds at least the requested quantity.
func (s *Store) Transfer(ctx context.Context, fromLocationID, toLocationID, sku string, quantity int) error {
	if quantity <= 0 {
		return domain.WrapError(domain.ErrInvalidInput, "transfer inventory", errors.New("quantity must be positive"))
	}

	const query = `
MATCH (from:Location {id: $from_location_id})-[r1:HAS_INVENTORY]->(p:Part {sku: $part_sku})
MATCH (to:Location {id: $to_location_id})-[r2:HAS_INVENTORY]->(p)
WHERE r1.quantity >= $quantity
SET r1.quantity = r1.quantity - $quantity,
    r2.quantity = r2.quantity + $quantity,
    r1.last_updated = datetime(),
    r2.last_updated = datetime()
CREATE (from)-[:TRANSFERRED {
    part_sku: $part_sku,
    quantity: $quantity,
    timestamp: datetime()
}]->(to)
RETURN r1.quantity AS remaining`

	records, err := s.write(ctx, query, map[string]any{
		"from_location_id": fromLocationID,
		"to_location_id":   toLocationID,
		"part_sku":         sku,
		"quantity":         quantity,
	})
	if err != nil {
		return fmt.Errorf("transfer inventory: %w", err)
	}
	if len(records) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "transfer inventory",
			fmt.Errorf("insufficient stock of %s at %s", sku, fromLocationID))
	}
	return nil
}

func (s *Store) CreateLocation(ctx context.Context, location domain.Location) error {
	const query = `
MERGE (l:Location {id: $id})
SET l.name = $name, l.address = $address, l.city = $city,
    l.state = $state, l.zip_code = $zip_code, l.phone = $phone,
    l.email = $email, l.manager = $manager`

	_, err := s.write(ctx, query, map[string]any{
		"id":       location.ID,
		"name":     location.Name,
		"address":  location.Address,
		"city":     location.City,
		"state":    location.State,
		"zip_code": location.ZipCode,
		"phone":    location.Phone,
		"email":    location.Email,
		"manager":  location.Manager,
	})
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (s *Store) CreatePart(ctx context.Context, part domain.Part) error {
	const query = `
MERGE (p:Part {sku: $sku})
SET p.name = $name, p.description = $description,
    p.manufacturer = $manufacturer, p.category = $category,
    p.list_price = $list_price, p.cost = $cost`

	_, err := s.write(ctx, query, map[string]any{
		"sku":          part.SKU,
		"name":         part.Name,
		"description":  part.Description,
		"manufacturer": part.Manufacturer,
		"category":     part.Category,
		"list_price":   part.ListPrice,
		"cost":         part.Cost,
	})
	if err != nil {
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

func (s *Store) AddInventory(ctx context.Context, item domain.InventoryItem) error {
	const query = `
MATCH (l:Location {id: $location_id})
MATCH (p:Part {sku: $part_sku})
MERGE (l)-[r:HAS_INVENTORY]->(p)
SET r.quantity = $quantity,
    r.min_stock = $min_stock,
    r.max_stock = $max_stock,
    r.reorder_point = $reorder_point,
    r.last_updated = datetime()
RETURN r.quantity AS quantity`

	records, err := s.write(ctx, query, map[string]any{
		"location_id":   item.LocationID,
		"part_sku":      item.PartSKU,
		"quantity":      item.Quantity,
		"min_stock":     item.MinStock,
		"max_stock":     item.MaxStock,
		"reorder_point": item.ReorderPoint,
	})
	if err != nil {
		return fmt.Errorf("add inventory: %w", err)
	}
	if len(records) == 0 {
		return domain.WrapError(domain.ErrNotFound, "add inventory",
			fmt.Errorf("location %s or part %s missing", item.LocationID, item.PartSKU))
	}
	return nil
}

func (s *Store) read(ctx context.Context, query string, params map[string]any) ([]*driver.Record, error) {
	result, err := driver.ExecuteQuery(ctx, s.driver, query, params,
		driver.EagerResultTransformer,
		driver.ExecuteQueryWithDatabase(s.database),
		driver.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func (s *Store) write(ctx context.Context, query string, params map[string]any) ([]*driver.Record, error) {
	result, err := driver.ExecuteQuery(ctx, s.driver, query, params,
		driver.EagerResultTransformer,
		driver.ExecuteQueryWithDatabase(s.database),
	)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
