package report

import (
	"context"
	"time"

	"github.com/provenderie/ledger/internal/domain/entity"
)

// StockSnapshot foto del stock de una tienda en un instante.
type StockSnapshot struct {
	ShopID      int64
	ShopLabel   string
	GeneratedAt time.Time
	Lines       []*entity.StockLine
	TotalKg     float64
}

// Low líneas bajo umbral (inclusive), en el mismo orden que Lines.
func (s *StockSnapshot) Low() []*entity.StockLine {
	low := make([]*entity.StockLine, 0)
	for _, l := range s.Lines {
		if l.IsLow() {
			low = append(low, l)
		}
	}
	return low
}

// StockPDFGenerator puerto para la representación PDF del inventario.
type StockPDFGenerator interface {
	GenerateStockPDF(ctx context.Context, snapshot *StockSnapshot) ([]byte, error)
}
