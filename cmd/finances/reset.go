package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

type resetCmd struct {
	cloud bool
	yes   bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "drop all data and restore default settings" }
func (*resetCmd) Usage() string {
	return `reset -yes [-cloud]

  Deletes every entity and restores default settings. With -cloud the
  remote snapshot is deleted as well. Refuses to run without -yes.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.cloud, "cloud", false, "Also delete the cloud snapshot")
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Error: reset is destructive, pass -yes to confirm")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	empty := snapshot.Snapshot{Version: snapshot.Version, Settings: core.DefaultSettings()}
	if err := a.Snapshots.Import(ctx, empty, snapshot.Replace); err != nil {
		return fail(err)
	}
	fmt.Println("Local dataset reset")

	if c.cloud {
		if a.Cloud == nil {
			return fail(fmt.Errorf("no cloud backend configured"))
		}
		if err := a.Cloud.DeleteCloudData(ctx); err != nil {
			return fail(err)
		}
		fmt.Println("Cloud snapshot deleted")
	}
	return subcommands.ExitSuccess
}
