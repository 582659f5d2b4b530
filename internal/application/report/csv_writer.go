package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Codificaciones soportadas para el CSV.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// stockHeader cabecera fija del export de stock.
var stockHeader = []string{"ID", "Produit", "Stock (kg)", "Stock (sacs+kg)", "Seuil (kg)", "1 sac (kg)"}

// ValidEncoding indica si el nombre de codificación es soportado.
func ValidEncoding(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EncodingUTF8, "utf8", EncodingWindows1252, "cp1252":
		return true
	}
	return false
}

// encodeWriter envuelve w con la codificación pedida. Windows-1252 reemplaza los
// caracteres que no puede representar en vez de fallar.
func encodeWriter(w io.Writer, name string) io.Writer {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case EncodingWindows1252, "cp1252":
		return transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
	default:
		return w
	}
}

// WriteStockCSV escribe una fila por línea con ';' como separador y dos decimales.
func WriteStockCSV(w io.Writer, lines []*entity.StockLine, enc string) error {
	out := encodeWriter(w, enc)
	cw := csv.NewWriter(out)
	cw.Comma = ';'

	if err := cw.Write(stockHeader); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, l := range lines {
		rec := []string{
			strconv.FormatInt(l.Product.ID, 10),
			l.Product.Label,
			fmt.Sprintf("%.2f", l.StockKg),
			inv.KgToBagRepr(l.StockKg, l.Product.BagWeightKg),
			fmt.Sprintf("%.2f", l.Product.ThresholdKg),
			fmt.Sprintf("%.2f", l.Product.BagWeightKg),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: producto %d: %w", l.Product.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if tw, ok := out.(*transform.Writer); ok {
		return tw.Close()
	}
	return nil
}
