package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

type syncCmd struct {
	pull bool
	mode string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "push the dataset to the cloud, or pull it back" }
func (*syncCmd) Usage() string {
	return `sync [-pull [-mode merge|replace]]

  Without flags, exports the dataset and uploads it as the cloud snapshot.
  With -pull, downloads the cloud snapshot and imports it (replace by
  default). Requires CLOUD_BACKEND to be configured.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.pull, "pull", false, "Download the cloud snapshot instead of uploading")
	f.StringVar(&c.mode, "mode", string(snapshot.Replace), "Import mode for -pull: merge or replace")
}

func (c *syncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	if a.Cloud == nil {
		return fail(fmt.Errorf("no cloud backend configured"))
	}

	if c.pull {
		snap, err := a.Cloud.LoadFromCloud(ctx)
		if errors.Is(err, cloud.ErrNoData) {
			return fail(fmt.Errorf("cloud holds no snapshot yet"))
		}
		if err != nil {
			return fail(err)
		}
		if err := a.Snapshots.Import(ctx, snap, snapshot.ImportMode(c.mode)); err != nil {
			return fail(err)
		}
		fmt.Printf("Pulled %d entities (%s)\n", snap.EntityCount(), c.mode)
		return subcommands.ExitSuccess
	}

	snap := a.Snapshots.Export()
	if err := a.Cloud.SaveToCloud(ctx, snap); err != nil {
		return fail(err)
	}
	fmt.Printf("Pushed %d entities\n", snap.EntityCount())
	return subcommands.ExitSuccess
}
