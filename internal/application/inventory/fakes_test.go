package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// ledgerFake libro en memoria que implementa movimientos, stock y productos.
type ledgerFake struct {
	products  map[int64]*entity.Product
	shops     map[int64]bool
	movements []*entity.Movement
	now       time.Time
}

func newLedgerFake() *ledgerFake {
	return &ledgerFake{
		products: map[int64]*entity.Product{},
		shops:    map[int64]bool{1: true},
		now:      time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local),
	}
}

func (f *ledgerFake) addProduct(p entity.Product) *entity.Product {
	p.ID = int64(len(f.products) + 1)
	f.products[p.ID] = &p
	return &p
}

// MovementRepository

func (f *ledgerFake) Create(_ context.Context, m *entity.Movement) error {
	if _, ok := f.products[m.ProductID]; !ok || !f.shops[m.ShopID] {
		return domain.ErrConstraint
	}
	m.ID = int64(len(f.movements) + 1)
	m.CreatedAt = f.now
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *ledgerFake) GetByID(_ context.Context, id int64) (*entity.MovementView, error) {
	for _, m := range f.movements {
		if m.ID == id {
			p := f.products[m.ProductID]
			return &entity.MovementView{Movement: *m, ProductLabel: p.Label, BagWeightKg: p.BagWeightKg, ShopLabel: "Main Shop"}, nil
		}
	}
	return nil, nil
}

func (f *ledgerFake) List(_ context.Context, flt repository.MovementFilter) ([]*entity.MovementView, error) {
	var out []*entity.MovementView
	for i := len(f.movements) - 1; i >= 0; i-- {
		m := f.movements[i]
		if flt.Type != "" && m.Type != flt.Type {
			continue
		}
		out = append(out, &entity.MovementView{Movement: *m})
	}
	return out, nil
}

// MovementEditor

type editorFake struct{ l *ledgerFake }

func (e editorFake) Update(_ context.Context, m *entity.Movement) error {
	for i, x := range e.l.movements {
		if x.ID == m.ID {
			cp := *m
			e.l.movements[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

// StockRepository

type stockFake struct{ l *ledgerFake }

func (s stockFake) StockKg(_ context.Context, productID, shopID int64) (float64, error) {
	var sum float64
	for _, m := range s.l.movements {
		if m.ProductID == productID && m.ShopID == shopID {
			sum += m.QtyKg
		}
	}
	return sum, nil
}

func (s stockFake) TotalStockKg(_ context.Context, shopID int64) (float64, error) {
	var sum float64
	for _, m := range s.l.movements {
		if m.ShopID == shopID {
			sum += m.QtyKg
		}
	}
	return sum, nil
}

func (s stockFake) ListStocks(ctx context.Context, shopID int64) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	for _, p := range s.l.products {
		if !p.Active {
			continue
		}
		kg, _ := s.StockKg(ctx, p.ID, shopID)
		out = append(out, &entity.StockLine{Product: *p, StockKg: kg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.Label < out[j].Product.Label })
	return out, nil
}

// ProductRepository (solo lectura en estos tests)

type productsFake struct{ l *ledgerFake }

func (p productsFake) Create(context.Context, *entity.Product) error { return nil }
func (p productsFake) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return p.l.products[id], nil
}
func (p productsFake) GetByLabel(context.Context, string) (*entity.Product, error) { return nil, nil }
func (p productsFake) GetByCode(context.Context, string) (*entity.Product, error)  { return nil, nil }
func (p productsFake) Update(context.Context, *entity.Product) error               { return nil }
func (p productsFake) Archive(context.Context, int64) error                        { return nil }
func (p productsFake) List(context.Context, string, bool) ([]*entity.Product, error) {
	return nil, nil
}

func newUseCase(l *ledgerFake, opts ...Option) *RegisterMovementUseCase {
	return NewRegisterMovementUseCase(l, productsFake{l}, stockFake{l}, opts...)
}
