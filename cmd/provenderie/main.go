package main

import (
	"os"

	"github.com/provenderie/ledger/internal/interfaces/cli"
)

// @title                       Provenderie Ledger API
// @version                     1.0
// @description                 Libro de inventario de granos y piensos: tiendas, productos, movimientos IN/OUT/ADJ, stock derivado y ventas con costo medio ponderado.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Bearer <token> obtenido en /api/auth/login
func main() {
	os.Exit(cli.Execute())
}
