package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

// summaryCmd prints the sales summary of a date range.
type summaryCmd struct {
	app   *App
	start string
	end   string
	text  bool
	plain bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "summarize sales over a date range" }
func (*summaryCmd) Usage() string {
	return `stockbook summary [-start YYYY-MM-DD] [-end YYYY-MM-DD] [-text | -plain]

  Summarizes sales between start and end, both included. Both default to today.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	today := models.Today().String()
	f.StringVar(&c.start, "start", today, "first day of the range")
	f.StringVar(&c.end, "end", today, "last day of the range")
	f.BoolVar(&c.text, "text", false, "print the plain-text report")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering it")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := models.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := models.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(c.app.Err, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, reports, err := c.app.Open()
	if err != nil {
		return c.app.exitStatus(err)
	}

	report, err := reports.Summarize(start, end)
	if err != nil {
		return c.app.exitStatus(err)
	}

	if c.text {
		fmt.Fprint(c.app.Out, reports.FormatText(report))
		return subcommands.ExitSuccess
	}
	c.app.printMarkdown(reportMarkdown(report, c.app.Currency), c.plain)
	return subcommands.ExitSuccess
}
