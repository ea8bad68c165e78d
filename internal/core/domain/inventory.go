package domain

// StockLevel is one location's stock of one part.
type StockLevel struct {
	Location   string  `json:"location"`
	LocationID string  `json:"location_id"`
	SKU        string  `json:"sku"`
	PartName   string  `json:"part_name"`
	Quantity   int     `json:"quantity"`
	MinStock   int     `json:"min_stock"`
	Price      float64 `json:"price"`
}

type PartSummary struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

type LowStockItem struct {
	Location     string `json:"location"`
	LocationID   string `json:"location_id,omitempty"`
	SKU          string `json:"sku"`
	PartName     string `json:"part_name"`
	Quantity     int    `json:"current_quantity"`
	ReorderPoint int    `json:"reorder_point"`
	MinStock     int    `json:"min_stock"`
}

// Location is one branch of the dealer network (seed path).
type Location struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Manager string `json:"manager"`
}

// Part is a catalog entry (seed path).
type Part struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Manufacturer string  `json:"manufacturer"`
	Category     string  `json:"category"`
	ListPrice    float64 `json:"list_price"`
	Cost         float64 `json:"cost"`
}

type InventoryItem struct {
	LocationID   string `json:"location_id"`
	PartSKU      string `json:"part_sku"`
	Quantity     int    `json:"quantity"`
	MinStock     int    `json:"min_stock"`
	MaxStock     int    `json:"max_stock"`
	ReorderPoint int    `json:"reorder_point"`
}
