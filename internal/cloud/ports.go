package cloud

import (
	"context"
	"errors"

	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

// ErrNoData is returned by LoadFromCloud when the remote side holds no
// snapshot yet.
var ErrNoData = errors.New("no cloud data")

// Store is the outbound port for the remote sync collaborator. The core
// pushes and pulls whole snapshots; transport and identity are the
// adapter's business.
type Store interface {
	SaveToCloud(ctx context.Context, snap snapshot.Snapshot) error
	LoadFromCloud(ctx context.Context) (snapshot.Snapshot, error)
	HasCloudData(ctx context.Context) (bool, error)
	DeleteCloudData(ctx context.Context) error
}
