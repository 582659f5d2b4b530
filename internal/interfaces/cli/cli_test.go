package cli_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/interfaces/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t       *testing.T
	envFile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "ledger.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SCHEDULER_SNAPSHOT_DIR", filepath.Join(dir, "snapshots"))
	return &harness{t: t, envFile: filepath.Join(dir, "missing.env")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--env-file", h.envFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "provenderie %s", strings.Join(args, " "))
	return out
}

func TestMigrate_ReportsSchemaVersion(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("migrate")
	assert.Contains(t, out, "esquema sqlite en versión")
}

func TestLedgerWorkflow(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("products", "add", "Maïs", "--code", "MA", "--bag-weight", "25", "--price-bag", "100", "--price-kg", "4,5")
	assert.Contains(t, out, "producto #1 Maïs creado (saco de 25.00 kg)")

	out = h.mustRun("move", "--product", "MA", "--type", "in", "--qty", "100", "--cost", "300")
	assert.Contains(t, out, "IN Maïs: 100.00 kg (4 sac(s)), costo 300.00")

	out = h.mustRun("move", "--product", "Maïs", "--type", "out", "--bags", "2", "--kg", "5")
	assert.Contains(t, out, "OUT Maïs: -55.00 kg (-2 sac(s) + 5.00 kg)")

	out = h.mustRun("stock")
	assert.Contains(t, out, "Maïs")
	assert.Contains(t, out, "45.00")
	assert.Contains(t, out, "1 sac(s) + 20.00 kg")

	out = h.mustRun("adjust", "--product", "1", "--target", "2", "--unit", "sac")
	assert.Contains(t, out, "45.00 kg -> 50.00 kg (delta +5.00 kg)")

	out = h.mustRun("adjust", "--product", "1", "--target", "50")
	assert.Contains(t, out, "sin ajuste")

	out = h.mustRun("sales")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "Maïs")
}

func TestMove_Errors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("products", "add", "Son")

	_, err := h.run("move", "--product", "Son", "--type", "sideways", "--qty", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.run("move", "--product", "Son", "--type", "in", "--qty", "douze")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = h.run("move", "--product", "Inconnu", "--type", "in", "--qty", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.run("move", "--product", "Son", "--type", "in", "--qty", "1", "--shop", "Nulle part")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShops(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("shops", "add", "Annexe")
	assert.Contains(t, out, "tienda #2 Annexe creada")

	h.mustRun("shops", "rename", "2", "Dépôt")
	out = h.mustRun("shops", "list")
	assert.Contains(t, out, "Dépôt")

	h.mustRun("products", "add", "Orge")
	h.mustRun("move", "--product", "Orge", "--type", "in", "--qty", "10", "--shop", "Dépôt")
	_, err := h.run("shops", "delete", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tiene movimientos")

	h.mustRun("shops", "add", "Vide")
	out = h.mustRun("shops", "delete", "3")
	assert.Contains(t, out, "tienda #3 borrada")

	_, err = h.run("shops", "delete", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("products", "add", "Blé", "--threshold", "20")
	h.mustRun("move", "--product", "Blé", "--type", "in", "--qty", "12,5")

	out := h.mustRun("export", "csv", "--out", "-")
	assert.True(t, strings.HasPrefix(out, "ID;Produit;Stock (kg)"))
	assert.Contains(t, out, "Blé;12.50")

	dir := t.TempDir()
	out = h.mustRun("export", "csv", "--out", dir)
	assert.Contains(t, out, dir)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".csv"))

	_, err = h.run("export", "xls")
	assert.Error(t, err)
}

func TestCron_RunSingleJob(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("cron", "--job", "snapshot")
	assert.Contains(t, out, "ejecutando tarea: snapshot")

	_, err := h.run("cron", "--job", "nope")
	assert.Error(t, err)

	_, err = h.run("cron")
	assert.Error(t, err)
}

func TestHashCode(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("hash-code", "1234")
	assert.True(t, strings.HasPrefix(out, "$2"))

	_, err := h.run("hash-code", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServe_RefusesOpenAccessOutsideLoopback(t *testing.T) {
	h := newHarness(t)
	t.Setenv("HTTP_HOST", "0.0.0.0")

	_, err := h.run("serve", "--cron=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestServe_ReturnsListenError(t *testing.T) {
	h := newHarness(t)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", strconv.Itoa(busy.Addr().(*net.TCPAddr).Port))

	done := make(chan error, 1)
	go func() {
		_, err := h.run("serve", "--cron=false")
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http:")
	case <-time.After(5 * time.Second):
		t.Fatal("serve no terminó con el puerto ocupado")
	}
}
