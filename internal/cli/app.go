// Package cli implements the stockbook command-line front end on top of the
// inventory ledger.
package cli

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/activitylog"
	"github.com/mamadbah2/stockbook/internal/domain/models"
	"github.com/mamadbah2/stockbook/internal/repository/jsonfile"
	"github.com/mamadbah2/stockbook/internal/service/ledger"
	"github.com/mamadbah2/stockbook/internal/service/reporting"
)

// App carries the shared state of all subcommands. The ledger is opened
// lazily so global flags can change the data location first.
type App struct {
	DataDir  string
	LogDir   string
	Currency string

	Out    io.Writer
	Err    io.Writer
	In     io.Reader
	Logger *zap.Logger

	once    sync.Once
	ledger  *ledger.Ledger
	reports *reporting.Service
	openErr error
}

// Open creates the data and log directories and loads the ledger.
func (a *App) Open() (*ledger.Ledger, *reporting.Service, error) {
	a.once.Do(func() {
		logger := a.logger()

		if money.GetCurrency(a.Currency) == nil {
			a.openErr = models.Invalid("currency", "%q is not a known ISO 4217 code", a.Currency)
			return
		}

		store := jsonfile.New(a.DataDir)
		if err := store.EnsureDir(); err != nil {
			a.openErr = err
			return
		}

		journal := activitylog.New(a.LogDir)
		if err := journal.EnsureDir(); err != nil {
			a.openErr = err
			return
		}

		l, err := ledger.New(store, journal, logger.Named("svc.ledger"))
		if err != nil {
			a.openErr = err
			return
		}
		a.ledger = l
		a.reports = reporting.NewService(l, a.Currency, logger.Named("svc.reporting"))
	})
	return a.ledger, a.reports, a.openErr
}

// Register adds every inventory subcommand to c.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&productsCmd{app: app}, "products")
	c.Register(&addCmd{app: app}, "products")
	c.Register(&editCmd{app: app}, "products")
	c.Register(&deleteCmd{app: app}, "products")

	c.Register(&sellCmd{app: app}, "sales")
	c.Register(&salesCmd{app: app}, "sales")

	c.Register(&searchCmd{app: app}, "reports")
	c.Register(&summaryCmd{app: app}, "reports")
}

// printMarkdown renders md for the terminal, or writes it untouched when plain is set.
func (a *App) printMarkdown(md string, plain bool) {
	if plain {
		fmt.Fprint(a.Out, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		a.logger().Debug("markdown rendering failed, printing raw", zap.Error(err))
		fmt.Fprint(a.Out, md)
		return
	}
	fmt.Fprint(a.Out, out)
}

// exitStatus reports err to the user and maps it to an exit status. A
// LogWriteError is only a warning since the change itself was saved.
func (a *App) exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, models.ErrLogWrite):
		fmt.Fprintf(a.Err, "Warning: %v\n", err)
		return subcommands.ExitSuccess
	case errors.Is(err, models.ErrPersistence):
		fmt.Fprintf(a.Err, "Error: inventory files could not be read or written: %v\n", err)
		return subcommands.ExitFailure
	default:
		fmt.Fprintf(a.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
