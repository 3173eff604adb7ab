package models

// StockStatus is a display label derived from stock vs reorder level
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// InventoryItem associates one hospital with one medicine
type InventoryItem struct {
	ID                uint    `json:"id"`
	Hospital          uint    `json:"hospital"`
	HospitalName      string  `json:"hospital_name,omitempty"`
	Medicine          uint    `json:"medicine"`
	MedicineName      string  `json:"medicine_name,omitempty"`
	CurrentStock      int     `json:"current_stock"`
	ReorderLevel      int     `json:"reorder_level"`
	MaxCapacity       int     `json:"max_capacity,omitempty"`
	AverageDailyUsage Decimal `json:"average_daily_usage,omitempty"`
	LastUpdated       string  `json:"last_updated,omitempty"`
	StockStatus       string  `json:"stock_status,omitempty"`
}

// InventoryUpdate is a PATCH body; a zero CurrentStock is sent when set
type InventoryUpdate struct {
	CurrentStock      *int     `json:"current_stock,omitempty"`
	ReorderLevel      *int     `json:"reorder_level,omitempty"`
	MaxCapacity       *int     `json:"max_capacity,omitempty"`
	AverageDailyUsage *Decimal `json:"average_daily_usage,omitempty"`
}

// Status classifies the row for display. The backend's own stock_status
// field is not consulted.
func (i InventoryItem) Status() StockStatus {
	return ClassifyStock(i.CurrentStock, i.ReorderLevel)
}

// ClassifyStock checks empty stock before the reorder threshold, so a row
// with zero stock is never reported as merely low.
func ClassifyStock(current, reorderLevel int) StockStatus {
	switch {
	case current == 0:
		return StockStatusOutOfStock
	case current <= reorderLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

func (s StockStatus) Label() string {
	switch s {
	case StockStatusOutOfStock:
		return "Out of Stock"
	case StockStatusLowStock:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// IntPtr is a helper for building partial updates
func IntPtr(v int) *int { return &v }
