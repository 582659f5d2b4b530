package cli

import (
	"fmt"
	"strconv"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
	"github.com/spf13/cobra"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}

func newShopsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shops",
		Short: "Gestión de tiendas",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista las tiendas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd.Context(), func(a *App) error {
				shops, err := a.Shops.List(cmd.Context())
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tETIQUETTE")
				for _, s := range shops {
					fmt.Fprintf(tw, "%d\t%s\n", s.ID, s.Label)
				}
				return tw.Flush()
			})
		},
	}

	add := &cobra.Command{
		Use:   "add LABEL",
		Short: "Crea una tienda",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(cmd.Context(), func(a *App) error {
				s, err := a.Shops.Create(cmd.Context(), dto.CreateShopRequest{Label: args[0]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tienda #%d %s creada\n", s.ID, s.Label)
				return nil
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename ID LABEL",
		Short: "Renombra una tienda",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(cmd.Context(), func(a *App) error {
				s, err := a.Shops.Rename(cmd.Context(), id, dto.RenameShopRequest{Label: args[1]})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tienda #%d renombrada a %s\n", s.ID, s.Label)
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Borra una tienda sin movimientos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(cmd.Context(), func(a *App) error {
				deleted, err := a.Shops.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("tienda #%d tiene movimientos, no se puede borrar", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "tienda #%d borrada\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, rename, del)
	return cmd
}

func newProductsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Catálogo de productos",
	}

	var (
		query string
		all   bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "Lista los productos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withApp(cmd.Context(), func(a *App) error {
				products, err := a.Products.List(cmd.Context(), query, all)
				if err != nil {
					return err
				}
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "ID\tCODE\tPRODUIT\tSAC (kg)\tPRIX/kg\tPRIX/sac\tSEUIL (kg)\tACTIF")
				for _, p := range products {
					code := ""
					if p.Code != nil {
						code = *p.Code
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%t\n",
						p.ID, code, p.Label, p.BagWeightKg, p.PricePerKg, p.PricePerBag, p.ThresholdKg, p.Active)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().StringVar(&query, "q", "", "filtro por etiqueta o código")
	list.Flags().BoolVar(&all, "all", false, "incluir archivados")

	var code, bagWeight, priceKg, priceBag, threshold string
	add := &cobra.Command{
		Use:   "add LABEL",
		Short: "Crea un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := dto.CreateProductRequest{Label: args[0]}
			if code != "" {
				in.Code = &code
			}
			var err error
			if in.BagWeightKg, err = optionalAmount(bagWeight); err != nil {
				return err
			}
			if in.PricePerKg, err = inv.ParseAmountOr(priceKg, 0); err != nil {
				return err
			}
			if in.PricePerBag, err = inv.ParseAmountOr(priceBag, 0); err != nil {
				return err
			}
			if in.ThresholdKg, err = inv.ParseAmountOr(threshold, 0); err != nil {
				return err
			}
			if err := dto.Validate(in); err != nil {
				return err
			}
			return o.withApp(cmd.Context(), func(a *App) error {
				p, err := a.Products.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "producto #%d %s creado (saco de %.2f kg)\n", p.ID, p.Label, p.BagWeightKg)
				return nil
			})
		},
	}
	fl := add.Flags()
	fl.StringVar(&code, "code", "", "código corto")
	fl.StringVar(&bagWeight, "bag-weight", "", "peso del saco en kg (por defecto 50)")
	fl.StringVar(&priceKg, "price-kg", "", "precio por kg")
	fl.StringVar(&priceBag, "price-bag", "", "precio por saco")
	fl.StringVar(&threshold, "threshold", "", "umbral de stock bajo en kg")

	archive := &cobra.Command{
		Use:   "archive ID",
		Short: "Archiva un producto (su historial se conserva)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(cmd.Context(), func(a *App) error {
				if err := a.Products.Archive(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "producto #%d archivado\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, archive)
	return cmd
}
