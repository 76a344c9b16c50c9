// Package google stores snapshots in the Google Drive application data
// folder, a per-app space hidden from the user's regular Drive view.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"

	"github.com/tzoee/personal-finance-manager-sub001/internal/cloud"
	"github.com/tzoee/personal-finance-manager-sub001/internal/snapshot"
)

const (
	appDataFolder = "appDataFolder"
	snapshotName  = "finances-snapshot.json"
)

type Client struct {
	svc *gdrive.Service
}

var _ cloud.Store = (*Client)(nil)

// New creates a Drive client. An OAuth token produced by cmd/oauth-init
// takes precedence; without one the adapter falls back to service-account
// credentials from the environment.
func New(ctx context.Context, creds Credentials) (*Client, error) {
	svc, err := newDriveService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	return &Client{svc: svc}, nil
}

func newDriveService(ctx context.Context, creds Credentials) (*gdrive.Service, error) {
	var auth goption.ClientOption
	if creds.hasToken() {
		ts, err := creds.tokenSource(ctx)
		if err != nil {
			return nil, err
		}
		auth = goption.WithTokenSource(ts)
	} else {
		credentialsJSON, err := serviceAccountJSON()
		if err != nil {
			return nil, err
		}
		auth = goption.WithCredentialsJSON(credentialsJSON)
	}

	svc, err := gdrive.NewService(ctx, auth,
		goption.WithScopes(gdrive.DriveAppdataScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}

// SaveToCloud uploads snap, replacing the previous remote snapshot if one
// exists. There is at most one snapshot file per account.
func (c *Client) SaveToCloud(ctx context.Context, snap snapshot.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	existingID, err := c.findSnapshot(ctx)
	if err != nil {
		return err
	}

	if existingID != "" {
		_, err = c.svc.Files.Update(existingID, &gdrive.File{}).
			Context(ctx).
			Media(strings.NewReader(string(body))).
			Do()
		if err != nil {
			return fmt.Errorf("update remote snapshot: %w", err)
		}
		slog.InfoContext(ctx, "remote snapshot updated", "bytes", len(body))
		return nil
	}

	_, err = c.svc.Files.Create(&gdrive.File{
		Name:    snapshotName,
		Parents: []string{appDataFolder},
	}).
		Context(ctx).
		Media(strings.NewReader(string(body))).
		Do()
	if err != nil {
		return fmt.Errorf("create remote snapshot: %w", err)
	}
	slog.InfoContext(ctx, "remote snapshot created", "bytes", len(body))
	return nil
}

func (c *Client) LoadFromCloud(ctx context.Context) (snapshot.Snapshot, error) {
	id, err := c.findSnapshot(ctx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	if id == "" {
		return snapshot.Snapshot{}, cloud.ErrNoData
	}

	resp, err := c.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("download remote snapshot: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("read remote snapshot: %w", err)
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("decode remote snapshot: %w", err)
	}
	return snap, nil
}

func (c *Client) HasCloudData(ctx context.Context) (bool, error) {
	id, err := c.findSnapshot(ctx)
	if err != nil {
		return false, err
	}
	return id != "", nil
}

func (c *Client) DeleteCloudData(ctx context.Context) error {
	id, err := c.findSnapshot(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	if err := c.svc.Files.Delete(id).Context(ctx).Do(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return nil
		}
		return fmt.Errorf("delete remote snapshot: %w", err)
	}
	return nil
}

// findSnapshot returns the file ID of the remote snapshot, or "" when none
// exists.
func (c *Client) findSnapshot(ctx context.Context) (string, error) {
	list, err := c.svc.Files.List().
		Context(ctx).
		Spaces(appDataFolder).
		Q(fmt.Sprintf("name = '%s'", snapshotName)).
		Fields("files(id, name, modifiedTime)").
		PageSize(1).
		Do()
	if err != nil {
		return "", fmt.Errorf("list app data: %w", err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}
