package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

// sellCmd records a sale.
type sellCmd struct {
	app      *App
	product  string
	quantity int
	date     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale and decrement stock" }
func (*sellCmd) Usage() string {
	return `stockbook sell -product <name> -qty <units> [-date YYYY-MM-DD]

  Records a sale. The date defaults to today.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "product sold")
	f.IntVar(&c.quantity, "qty", 0, "units sold")
	f.StringVar(&c.date, "date", "", "sale date, defaults to today")
}

func (c *sellCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var on models.Date
	if c.date != "" {
		d, err := models.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(c.app.Err, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		on = d
	}

	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}

	tx, err := l.RecordSale(c.product, c.quantity, on)
	if status := c.app.exitStatus(err); status != subcommands.ExitSuccess {
		return status
	}

	remaining := 0
	if p, ok := l.Product(tx.Product); ok {
		remaining = p.Stock
	}
	fmt.Fprintf(c.app.Out, "Sale recorded\nDate: %s\nProduct: %s\nQuantity: %d\nTotal: %s\nRemaining Stock: %d\n",
		tx.Date, tx.Product, tx.Quantity, c.app.amount(tx.Total), remaining)
	return subcommands.ExitSuccess
}

// salesCmd lists transactions.
type salesCmd struct {
	app   *App
	plain bool
}

func (*salesCmd) Name() string     { return "sales" }
func (*salesCmd) Synopsis() string { return "list recorded sales" }
func (*salesCmd) Usage() string {
	return `stockbook sales [-plain]

  Lists every recorded sale in the order it was recorded.
`
}

func (c *salesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it")
}

func (c *salesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}
	c.app.printMarkdown(transactionsMarkdown(l.Transactions(), c.app.Currency), c.plain)
	return subcommands.ExitSuccess
}
