package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/mamadbah2/stockbook/internal/service/ledger"
)

// searchCmd filters products or sales by product name.
type searchCmd struct {
	app   *App
	mode  string
	plain bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search products or sales by name" }
func (*searchCmd) Usage() string {
	return `stockbook search [-mode product|transaction] [-plain] <keyword>

  Lists products, or sales, whose product name contains keyword, ignoring case.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "product", "what to search: product or transaction")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	mode, err := ledger.ParseSearchMode(c.mode)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}

	result, err := l.Search(mode, strings.Join(f.Args(), " "))
	if err != nil {
		return c.app.exitStatus(err)
	}

	if mode == ledger.SearchTransactions {
		c.app.printMarkdown(transactionsMarkdown(result.Transactions, c.app.Currency), c.plain)
	} else {
		c.app.printMarkdown(productsMarkdown(result.Products, c.app.Currency), c.plain)
	}
	return subcommands.ExitSuccess
}
