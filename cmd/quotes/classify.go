package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"portfoliotracker/internal/symbols"
)

type classifyCmd struct {
	out io.Writer
}

func (*classifyCmd) Name() string     { return "classify" }
func (*classifyCmd) Synopsis() string { return "show which feed would price each symbol" }
func (*classifyCmd) Usage() string {
	return `classify <symbol>[,<symbol>...] ...

  Prints whether each symbol is priced as crypto or as an equity, without
  any network access.
`
}

func (*classifyCmd) SetFlags(*flag.FlagSet) {}

func (c *classifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	syms := symbols.Normalize(symbols.SplitParam(f.Args()...))
	if len(syms) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required.")
		return subcommands.ExitUsageError
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tKIND\tFEED")
	for _, s := range syms {
		if id, ok := symbols.AssetID(s); ok {
			fmt.Fprintf(w, "%s\tcrypto\tcoingecko:%s\n", s, id)
			continue
		}
		fmt.Fprintf(w, "%s\tequity\tyahoo, stooq\n", s)
	}
	_ = w.Flush()
	return subcommands.ExitSuccess
}
