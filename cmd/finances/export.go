package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the full dataset as a JSON snapshot" }
func (*exportCmd) Usage() string {
	return `export [-out <file>]

  Writes the complete dataset as one JSON document. With -out - (the
  default) the snapshot goes to standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "-", "Output file, or - for stdout")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	data, err := json.MarshalIndent(a.Snapshots.Export(), "", "  ")
	if err != nil {
		return fail(err)
	}
	data = append(data, '\n')

	if c.out == "-" {
		os.Stdout.Write(data)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.out, data, 0o600); err != nil {
		return fail(err)
	}
	fmt.Printf("Exported snapshot to %s\n", c.out)
	return subcommands.ExitSuccess
}
