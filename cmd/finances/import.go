package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

type importCmd struct {
	file string
	mode string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a JSON snapshot into the dataset" }
func (*importCmd) Usage() string {
	return `import -file <file> [-mode merge|replace]

  Reads a snapshot produced by export and applies it. Merge adds entities
  whose IDs are new and keeps everything already present; replace drops the
  current dataset first. Settings are always taken from the snapshot.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Snapshot file to import (required)")
	f.StringVar(&c.mode, "mode", string(snapshot.Merge), "Import mode: merge or replace")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		return fail(err)
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fail(fmt.Errorf("parse snapshot: %w", err))
	}
	if snap.Version == 0 || snap.Version > snapshot.Version {
		return fail(fmt.Errorf("unsupported snapshot version %d", snap.Version))
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if err := a.Snapshots.Import(ctx, snap, snapshot.ImportMode(c.mode)); err != nil {
		return fail(err)
	}
	fmt.Printf("Imported %d entities (%s)\n", snap.EntityCount(), c.mode)
	return subcommands.ExitSuccess
}
