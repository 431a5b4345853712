package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"portfoliotracker/internal/app"
	"portfoliotracker/internal/config"
	"portfoliotracker/internal/logging"
	"portfoliotracker/internal/provider"
	"portfoliotracker/internal/symbols"
)

type pricesCmd struct {
	out        io.Writer
	configPath string
	asJSON     bool
	timeout    time.Duration
	verbose    bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "fetch current prices for symbols" }
func (*pricesCmd) Usage() string {
	return `prices [-json] [-config <file>] [-timeout <d>] <symbol>[,<symbol>...] ...

  Prices every symbol once, crypto through CoinGecko and equities through
  Yahoo with Stooq as fallback. Symbols nobody could price are left out.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	f.BoolVar(&c.asJSON, "json", false, "print the response as JSON")
	f.DurationVar(&c.timeout, "timeout", 0, "overall timeout (defaults to server.request_timeout_sec)")
	f.BoolVar(&c.verbose, "v", false, "log upstream failures to stderr")
}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	syms := symbols.SplitParam(f.Args()...)
	if len(syms) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required.")
		return subcommands.ExitUsageError
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.verbose {
		cfg.Log.Level, cfg.Log.Development = "debug", true
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = logger.Sync() }()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() { _ = a.Close() }()

	timeout := c.timeout
	if timeout <= 0 {
		timeout = cfg.Server.RequestTimeout()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := a.Aggregator.Aggregate(ctx, syms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	writeTable(c.out, resp.Quotes)
	return subcommands.ExitSuccess
}

func writeTable(out io.Writer, quotes []provider.Quote) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tCHANGE\tSOURCE\tTIME")
	for _, q := range quotes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", q.Symbol, usd(q.Price), change(q.ChangePercent), q.Source, q.Timestamp)
	}
	_ = w.Flush()
}

var oneCent = decimal.New(1, -2)

// usd renders v in cents precision, e.g. $43,250.00. Sub-cent prices keep
// their full digits.
func usd(v float64) string {
	d := decimal.NewFromFloat(v)
	if !d.IsZero() && d.Abs().LessThan(oneCent) {
		if d.IsNegative() {
			return "-$" + d.Abs().String()
		}
		return "$" + d.String()
	}
	return money.New(d.Shift(2).Round(0).IntPart(), "USD").Display()
}

func change(pct *float64) string {
	if pct == nil {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", *pct)
}
