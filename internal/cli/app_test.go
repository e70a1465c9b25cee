package cli

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

type harness struct {
	dir string
	out *bytes.Buffer
	err *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return &harness{dir: t.TempDir(), out: &bytes.Buffer{}, err: &bytes.Buffer{}}
}

// run executes one command line against a fresh App, like a separate process would.
func (h *harness) run(t *testing.T, stdin string, args ...string) subcommands.ExitStatus {
	t.Helper()
	h.out.Reset()
	h.err.Reset()

	app := &App{
		DataDir:  filepath.Join(h.dir, "inventory"),
		LogDir:   filepath.Join(h.dir, "logs"),
		Currency: "USD",
		Out:      h.out,
		Err:      h.err,
		In:       strings.NewReader(stdin),
	}

	fs := flag.NewFlagSet("stockbook", flag.ContinueOnError)
	require.NoError(t, fs.Parse(args))
	cdr := subcommands.NewCommander(fs, "stockbook")
	Register(cdr, app)
	return cdr.Execute(context.Background())
}

func TestAddAndListProducts(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Laptop", "-price", "1200", "-stock", "10"))
	assert.Contains(t, h.out.String(), "Product Laptop saved: price $1,200.00, stock 10")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Mouse", "-price", "25.50", "-stock", "100"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "products", "-plain"))
	out := h.out.String()
	assert.Contains(t, out, "| Laptop | $1,200.00 | 10 |")
	assert.Contains(t, out, "| Mouse | $25.50 | 100 |")
	assert.Less(t, strings.Index(out, "Laptop"), strings.Index(out, "Mouse"))

	_, err := os.Stat(filepath.Join(h.dir, "inventory", "products.json"))
	assert.NoError(t, err)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, "", "add", "-name", "Laptop", "-price", "abc", "-stock", "1"))
	assert.Contains(t, h.err.String(), "invalid price")

	assert.Equal(t, subcommands.ExitFailure, h.run(t, "", "add", "-name", "Laptop", "-price", "0", "-stock", "1"))
	assert.Contains(t, h.err.String(), "Error:")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Laptop", "-price", "10", "-stock", "1"))
	assert.Equal(t, subcommands.ExitFailure, h.run(t, "", "add", "-name", "Laptop", "-price", "10", "-stock", "1"))
}

func TestSellAndSummary(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Laptop", "-price", "1200", "-stock", "10"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "sell", "-product", "Laptop", "-qty", "2", "-date", "2024-01-15"))
	out := h.out.String()
	assert.Contains(t, out, "Total: $2,400.00")
	assert.Contains(t, out, "Remaining Stock: 8")

	assert.Equal(t, subcommands.ExitFailure, h.run(t, "", "sell", "-product", "Laptop", "-qty", "9", "-date", "2024-01-15"))
	assert.Contains(t, h.err.String(), "insufficient stock")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "sales", "-plain"))
	assert.Contains(t, h.out.String(), "| 2024-01-15 | Laptop | 2 | $2,400.00 |")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "summary", "-start", "2024-01-01", "-end", "2024-01-31", "-text"))
	out = h.out.String()
	assert.Contains(t, out, "Summary Report (2024-01-01 to 2024-01-31)")
	assert.Contains(t, out, "Total Transactions: 1")
	assert.Contains(t, out, "Total Amount: $2,400.00")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "summary", "-start", "2024-01-01", "-end", "2024-01-31", "-plain"))
	assert.Contains(t, h.out.String(), "| Laptop | 2 | $2,400.00 |")

	assert.Equal(t, subcommands.ExitFailure, h.run(t, "", "summary", "-start", "2024-02-01", "-end", "2024-01-01"))
	assert.Equal(t, subcommands.ExitUsageError, h.run(t, "", "summary", "-start", "yesterday"))
}

func TestSellDefaultsToToday(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Pen", "-price", "1", "-stock", "5"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "sell", "-product", "Pen", "-qty", "1"))
	assert.Contains(t, h.out.String(), "Date: "+models.Today().String())
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Laptop", "-price", "1200", "-stock", "10"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "n\n", "delete", "-name", "Laptop"))
	assert.Contains(t, h.out.String(), "Aborted.")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "products", "-plain"))
	assert.Contains(t, h.out.String(), "Laptop")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "y\n", "delete", "-name", "Laptop"))
	assert.Contains(t, h.out.String(), "Product Laptop deleted")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "products", "-plain"))
	assert.Contains(t, h.out.String(), "No products found.")

	assert.Equal(t, subcommands.ExitFailure, h.run(t, "", "delete", "-name", "Laptop", "-y"))
	assert.Contains(t, h.err.String(), "not found")
}

func TestEditAndSearch(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Laptop", "-price", "1200", "-stock", "10"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Mouse", "-price", "25", "-stock", "100"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "edit", "-name", "Laptop", "-price", "1100", "-stock", "7"))
	assert.Contains(t, h.out.String(), "Product Laptop updated: price $1,100.00, stock 7")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "search", "-plain", "lap"))
	out := h.out.String()
	assert.Contains(t, out, "| Laptop | $1,100.00 | 7 |")
	assert.NotContains(t, out, "Mouse")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "sell", "-product", "Mouse", "-qty", "3", "-date", "2024-03-01"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "search", "-mode", "transaction", "-plain", "MOU"))
	assert.Contains(t, h.out.String(), "| 2024-03-01 | Mouse | 3 | $75.00 |")

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, "", "search", "-mode", "supplier", "x"))
}

func TestActivityLogWritten(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "Laptop", "-price", "1200", "-stock", "10"))

	entries, err := os.ReadDir(filepath.Join(h.dir, "logs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	body, err := os.ReadFile(filepath.Join(h.dir, "logs", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Added product: Laptop")
}

func TestMarkdownEscapesPipes(t *testing.T) {
	md := productsMarkdown([]models.Product{{Name: "A|B", Stock: 1}}, "USD")
	assert.Contains(t, md, `| A\|B |`)
}

func TestOpenRejectsUnknownCurrency(t *testing.T) {
	errOut := &bytes.Buffer{}
	app := &App{DataDir: t.TempDir(), LogDir: t.TempDir(), Currency: "XXQ", Out: &bytes.Buffer{}, Err: errOut}

	_, _, err := app.Open()
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, subcommands.ExitFailure, app.exitStatus(err))
	assert.Contains(t, errOut.String(), "XXQ")
}

func TestOpenCreatesDataAndLogDirectories(t *testing.T) {
	dir := t.TempDir()
	app := &App{
		DataDir:  filepath.Join(dir, "inventory"),
		LogDir:   filepath.Join(dir, "logs"),
		Currency: "USD",
		Out:      &bytes.Buffer{},
		Err:      &bytes.Buffer{},
	}

	_, _, err := app.Open()
	require.NoError(t, err)
	assert.DirExists(t, app.DataDir)
	assert.DirExists(t, app.LogDir)
}

func TestOpenFailsWhenLogDirectoryIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	app := &App{DataDir: filepath.Join(dir, "inventory"), LogDir: blocker, Currency: "USD", Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	_, _, err := app.Open()
	assert.ErrorIs(t, err, models.ErrPersistence)
}

func TestEditRequiresPriceAndStock(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "add", "-name", "A", "-price", "5", "-stock", "9"))

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, "", "edit", "-name", "A", "-price", "6"))
	assert.Contains(t, h.err.String(), "-stock is required")

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, "", "edit", "-name", "A", "-stock", "3"))
	assert.Contains(t, h.err.String(), "-price is required")

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, "", "add", "-name", "B", "-price", "1"))

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "products", "-plain"))
	assert.Contains(t, h.out.String(), "| A | $5.00 | 9 |")
	assert.NotContains(t, h.out.String(), "| B |")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, "", "edit", "-name", "A", "-price", "6", "-stock", "0"))
	assert.Contains(t, h.out.String(), "Product A updated: price $6.00, stock 0")
}
