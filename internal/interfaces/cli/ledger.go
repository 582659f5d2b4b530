package cli

import (
	"fmt"
	"strings"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/application/inventory"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
	"github.com/spf13/cobra"
)

func newStockCmd(o *rootOptions) *cobra.Command {
	var (
		shop string
		low  bool
	)
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Muestra el stock derivado por producto",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return o.withApp(ctx, func(a *App) error {
				shopID, err := resolveShop(ctx, a, shop)
				if err != nil {
					return err
				}
				var lines []*entity.StockLine
				if low {
					lines, err = a.Stock.LowStockProducts(ctx, shopID)
				} else {
					lines, err = a.Stock.AllStocks(ctx, shopID)
				}
				if err != nil {
					return err
				}
				total, err := a.Stock.TotalStockKg(ctx, shopID)
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tPRODUIT\tSTOCK (kg)\tSACS\tSEUIL (kg)\t")
				for _, r := range inventory.ToStockLineResponses(lines) {
					mark := ""
					if r.Low {
						mark = "!"
					}
					fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%.2f\t%s\n", r.ProductID, r.ProductLabel, r.StockKg, r.StockDisplay, r.ThresholdKg, mark)
				}
				fmt.Fprintf(tw, "\tTOTAL\t%.2f\t\t\t\n", total)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&shop, "shop", "", "tienda (id o etiqueta)")
	cmd.Flags().BoolVar(&low, "low", false, "solo productos en o por debajo del umbral")
	return cmd
}

type moveFlags struct {
	product, shop, typ      string
	qty, bags, kg           string
	priceKg, priceBag, cost string
	note                    string
}

func newMoveCmd(o *rootOptions) *cobra.Command {
	var f moveFlags
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Registra una entrada, salida o ajuste en el libro",
		Example: `  provenderie move --product "Maïs" --type out --bags 2 --kg 5
  provenderie move --product 3 --type in --qty 500 --cost 12500`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return o.withApp(ctx, func(a *App) error {
				t, ok := entity.ParseMovementType(f.typ)
				if !ok {
					return fmt.Errorf("%w: tipo %q (IN, OUT o ADJ)", domain.ErrInvalidInput, f.typ)
				}
				p, err := resolveProduct(ctx, a, f.product)
				if err != nil {
					return err
				}
				shopID, err := resolveShop(ctx, a, f.shop)
				if err != nil {
					return err
				}
				priceKg, err := optionalAmount(f.priceKg)
				if err != nil {
					return err
				}
				priceBag, err := optionalAmount(f.priceBag)
				if err != nil {
					return err
				}
				cost, err := optionalAmount(f.cost)
				if err != nil {
					return err
				}

				var m *entity.Movement
				if strings.TrimSpace(f.qty) != "" {
					qty, err := inv.ParseAmount(f.qty)
					if err != nil {
						return err
					}
					m, err = a.Movements.RegisterMovement(ctx, inventory.MovementInput{
						ProductID:    p.ID,
						ShopID:       shopID,
						Type:         t,
						QtyKg:        qty.InexactFloat64(),
						UnitPriceKg:  priceKg,
						UnitPriceBag: priceBag,
						Cost:         cost,
						Note:         f.note,
					})
					if err != nil {
						return err
					}
				} else {
					bags, err := inv.ParseAmountOr(f.bags, 0)
					if err != nil {
						return err
					}
					kg, err := inv.ParseAmountOr(f.kg, 0)
					if err != nil {
						return err
					}
					m, err = a.Movements.RegisterPricedMovement(ctx, inventory.PricedInput{
						ProductID:    p.ID,
						ShopID:       shopID,
						Type:         t,
						Bags:         bags,
						Kg:           kg,
						UnitPriceKg:  priceKg,
						UnitPriceBag: priceBag,
						Cost:         cost,
						Note:         f.note,
					})
					if err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "movimiento #%d %s %s: %.2f kg (%s), costo %.2f\n",
					m.ID, m.Type, p.Label, m.QtyKg, inv.KgToBagRepr(m.QtyKg, p.BagWeightKg), m.CostOrZero())
				return nil
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.product, "product", "", "producto (id, código o etiqueta)")
	fl.StringVar(&f.shop, "shop", "", "tienda (id o etiqueta)")
	fl.StringVar(&f.typ, "type", "", "IN, OUT o ADJ")
	fl.StringVar(&f.qty, "qty", "", "cantidad firmada en kg (se guarda tal cual)")
	fl.StringVar(&f.bags, "bags", "", "sacos (se valoriza con el peso y precios del producto)")
	fl.StringVar(&f.kg, "kg", "", "kilos sueltos")
	fl.StringVar(&f.priceKg, "price-kg", "", "precio por kg")
	fl.StringVar(&f.priceBag, "price-bag", "", "precio por saco")
	fl.StringVar(&f.cost, "cost", "", "costo total (reemplaza el calculado)")
	fl.StringVar(&f.note, "note", "", "nota libre")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func newAdjustCmd(o *rootOptions) *cobra.Command {
	var product, shop, target, unit string
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Ajusta el stock de un producto a un valor objetivo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return o.withApp(ctx, func(a *App) error {
				p, err := resolveProduct(ctx, a, product)
				if err != nil {
					return err
				}
				shopID, err := resolveShop(ctx, a, shop)
				if err != nil {
					return err
				}
				t, err := inv.ParseAmount(target)
				if err != nil {
					return err
				}
				res, err := a.Movements.AdjustToTarget(ctx, inventory.AdjustInput{
					ProductID: p.ID,
					ShopID:    shopID,
					Target:    t.InexactFloat64(),
					Unit:      unit,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !res.Adjusted {
					fmt.Fprintf(out, "%s ya está en %.2f kg, sin ajuste\n", p.Label, res.PreviousKg)
					return nil
				}
				fmt.Fprintf(out, "%s: %.2f kg -> %.2f kg (delta %+.2f kg), movimiento #%d\n",
					p.Label, res.PreviousKg, res.TargetKg, res.DeltaKg, res.Movement.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&product, "product", "", "producto (id, código o etiqueta)")
	cmd.Flags().StringVar(&shop, "shop", "", "tienda (id o etiqueta)")
	cmd.Flags().StringVar(&target, "target", "", "stock objetivo")
	cmd.Flags().StringVar(&unit, "unit", "kg", "unidad del objetivo: kg o sac")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newSalesCmd(o *rootOptions) *cobra.Command {
	var q dto.MovementQuery
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Ventas, costo de lo vendido (costo medio ponderado) y margen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return o.withApp(ctx, func(a *App) error {
				if q.ShopID != "" {
					id, err := resolveShop(ctx, a, q.ShopID)
					if err != nil {
						return err
					}
					q.ShopID = fmt.Sprint(id)
				}
				filter, err := q.ToFilter()
				if err != nil {
					return err
				}
				rep, err := a.Sales.Report(ctx, filter)
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "PRODUIT\tVENTES\tSORTI (kg)\tCMP/kg\tCOGS\tMARGE\t")
				for _, p := range rep.Products {
					fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.4f\t%.2f\t%.2f\t\n", p.ProductLabel, p.Revenue, p.QtyOutKg, p.AvgCostPerKg, p.COGS, p.Profit)
				}
				fmt.Fprintf(tw, "TOTAL\t%.2f\t\t\t%.2f\t%.2f\t\n", rep.TotalSales, rep.TotalCOGS, rep.Profit)
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&q.DateFrom, "from", "", "fecha inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.DateTo, "to", "", "fecha final inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.Q, "q", "", "filtro por etiqueta o código de producto")
	cmd.Flags().StringVar(&q.ShopID, "shop", "", "tienda (id o etiqueta); vacío = todas")
	return cmd
}
