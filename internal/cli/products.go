package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// productsCmd lists the products.
type productsCmd struct {
	app   *App
	plain bool
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "list products with their price and stock" }
func (*productsCmd) Usage() string {
	return `stockbook products [-plain]

  Lists every product sorted by name.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it")
}

func (c *productsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}
	c.app.printMarkdown(productsMarkdown(l.Products(), c.app.Currency), c.plain)
	return subcommands.ExitSuccess
}

// productFlags are shared by add and edit.
type productFlags struct {
	name  string
	price string
	stock int
}

func (p *productFlags) set(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "product name (case-sensitive)")
	f.StringVar(&p.price, "price", "", "unit price, a positive decimal such as 19999.50")
	f.IntVar(&p.stock, "stock", 0, "units in stock")
}

// checkSet reports a usage error unless both -price and -stock were given,
// so an omitted -stock is never read as zero.
func (p *productFlags) checkSet(f *flag.FlagSet) error {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for _, name := range []string{"price", "stock"} {
		if !set[name] {
			return fmt.Errorf("-%s is required", name)
		}
	}
	return nil
}

func (p *productFlags) parsePrice() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(p.price))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q: %w", p.price, err)
	}
	return price, nil
}

// addCmd registers a product.
type addCmd struct {
	app *App
	productFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new product" }
func (*addCmd) Usage() string {
	return `stockbook add -name <name> -price <price> -stock <units>

  Adds a product. The name must not already exist.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.productFlags.set(f) }

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.checkSet(f); err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := c.parsePrice()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}

	p, err := l.AddProduct(c.name, price, c.stock)
	if status := c.app.exitStatus(err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(c.app.Out, "Product %s saved: price %s, stock %d\n", p.Name, c.app.amount(p.Price), p.Stock)
	return subcommands.ExitSuccess
}

// editCmd changes price and stock of a product.
type editCmd struct {
	app *App
	productFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the price and stock of a product" }
func (*editCmd) Usage() string {
	return `stockbook edit -name <name> -price <price> -stock <units>

  Replaces the price and stock of an existing product.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) { c.productFlags.set(f) }

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.checkSet(f); err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := c.parsePrice()
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}

	p, err := l.EditProduct(c.name, price, c.stock)
	if status := c.app.exitStatus(err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(c.app.Out, "Product %s updated: price %s, stock %d\n", p.Name, c.app.amount(p.Price), p.Stock)
	return subcommands.ExitSuccess
}

// deleteCmd removes a product after confirmation.
type deleteCmd struct {
	app  *App
	name string
	yes  bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a product" }
func (*deleteCmd) Usage() string {
	return `stockbook delete -name <name> [-y]

  Deletes a product. Recorded sales of that product are kept.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "product to delete")
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *deleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, _, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}

	if _, ok := l.Product(c.name); ok && !c.yes && !c.app.confirm(fmt.Sprintf("Are you sure you want to delete %s?", c.name)) {
		fmt.Fprintln(c.app.Out, "Aborted.")
		return subcommands.ExitSuccess
	}

	p, err := l.DeleteProduct(c.name)
	if status := c.app.exitStatus(err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(c.app.Out, "Product %s deleted (price %s, stock %d)\n", p.Name, c.app.amount(p.Price), p.Stock)
	return subcommands.ExitSuccess
}

func (a *App) confirm(question string) bool {
	if a.In == nil {
		return false
	}
	fmt.Fprintf(a.Out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(a.In).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
