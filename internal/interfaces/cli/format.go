package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// resolveProduct acepta un id numérico, un código o una etiqueta exacta.
func resolveProduct(ctx context.Context, a *App, ref string) (*dto.ProductResponse, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: falta --product", domain.ErrInvalidInput)
	}
	var (
		p   *dto.ProductResponse
		err error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		p, err = a.Products.GetByID(ctx, id)
	} else if p, err = a.Products.GetByCode(ctx, ref); err == nil && p == nil {
		p, err = a.Products.GetByLabel(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %q: %w", ref, domain.ErrNotFound)
	}
	return p, nil
}

// resolveShop acepta un id numérico o una etiqueta; vacío es la tienda por defecto.
func resolveShop(ctx context.Context, a *App, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return a.Config.Ledger.DefaultShopID, nil
	}
	var (
		s   *dto.ShopResponse
		err error
	)
	if id, perr := strconv.ParseInt(ref, 10, 64); perr == nil {
		s, err = a.Shops.GetByID(ctx, id)
	} else {
		s, err = a.Shops.GetByLabel(ctx, ref)
	}
	if err != nil {
		return 0, err
	}
	if s == nil {
		return 0, fmt.Errorf("tienda %q: %w", ref, domain.ErrNotFound)
	}
	return s.ID, nil
}

// optionalAmount interpreta un flag de cantidad/precio opcional; vacío es nil.
func optionalAmount(s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := inv.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	f := v.InexactFloat64()
	return &f, nil
}
