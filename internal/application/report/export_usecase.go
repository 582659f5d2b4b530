// Package report genera los exports del inventario: CSV del stock, PDF del stock
// y snapshots periódicos en disco.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// ErrPDFUnavailable no hay generador PDF configurado.
var ErrPDFUnavailable = errors.New("generador PDF no configurado")

// ExportUseCase arma los snapshots de stock y los serializa.
type ExportUseCase struct {
	stock    repository.StockRepository
	shops    repository.ShopRepository
	pdf      StockPDFGenerator
	encoding string
	now      func() time.Time
}

// NewExportUseCase construye el caso de uso. pdf puede ser nil (solo CSV).
func NewExportUseCase(stock repository.StockRepository, shops repository.ShopRepository, pdf StockPDFGenerator, encoding string) *ExportUseCase {
	return &ExportUseCase{stock: stock, shops: shops, pdf: pdf, encoding: encoding, now: time.Now}
}

// Snapshot lee el stock de todos los productos activos de la tienda.
func (uc *ExportUseCase) Snapshot(ctx context.Context, shopID int64) (*StockSnapshot, error) {
	shop, err := uc.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("export: tienda: %w", err)
	}
	if shop == nil {
		return nil, fmt.Errorf("tienda %d: %w", shopID, domain.ErrNotFound)
	}
	lines, err := uc.stock.ListStocks(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("export: stock: %w", err)
	}
	snap := &StockSnapshot{ShopID: shop.ID, ShopLabel: shop.Label, GeneratedAt: uc.now(), Lines: lines}
	for _, l := range lines {
		snap.TotalKg += l.StockKg
	}
	return snap, nil
}

// StockCSV devuelve el CSV del stock y un nombre de archivo sugerido.
func (uc *ExportUseCase) StockCSV(ctx context.Context, shopID int64) ([]byte, string, error) {
	snap, err := uc.Snapshot(ctx, shopID)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := WriteStockCSV(&buf, snap.Lines, uc.encoding); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), snapshotName(snap, "csv"), nil
}

// StockPDF devuelve el PDF del stock y un nombre de archivo sugerido.
func (uc *ExportUseCase) StockPDF(ctx context.Context, shopID int64) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", ErrPDFUnavailable
	}
	snap, err := uc.Snapshot(ctx, shopID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateStockPDF(ctx, snap)
	if err != nil {
		return nil, "", fmt.Errorf("export: pdf: %w", err)
	}
	return doc, snapshotName(snap, "pdf"), nil
}

// WriteSnapshotFile guarda el CSV del stock en dir y devuelve la ruta escrita.
func (uc *ExportUseCase) WriteSnapshotFile(ctx context.Context, shopID int64, dir string) (string, error) {
	data, name, err := uc.StockCSV(ctx, shopID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: crear directorio: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("snapshot: escribir %s: %w", path, err)
	}
	return path, nil
}

// snapshotName ej: "stocks-shop1-20240317-1530.csv".
func snapshotName(s *StockSnapshot, ext string) string {
	return fmt.Sprintf("stocks-shop%d-%s.%s", s.ShopID, s.GeneratedAt.Format("20060102-1504"), ext)
}
