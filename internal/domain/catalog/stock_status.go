package catalog

// StockStatus classifies a product's on-hand quantity against its reorder
// threshold. The same rule backs list filters, API badges, and report
// aggregates; there is exactly one implementation.
type StockStatus string

const (
	StockStatusIn  StockStatus = "in_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusOut StockStatus = "out_of_stock"
)

// ClassifyStock returns the stock status for a quantity and minimum level.
// The low-stock boundary is inclusive: quantity == minLevel is low stock.
func ClassifyStock(quantity, minLevel int64) StockStatus {
	switch {
	case quantity == 0:
		return StockStatusOut
	case quantity <= minLevel:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
