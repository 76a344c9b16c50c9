package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

func TestSettingsStoreDefaultsOnFirstRun(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewSettingsStore(db.Table("settings"), testOptions())
	require.NoError(t, s.Initialize(ctx))

	got := s.Get()
	require.Equal(t, "USD", got.Currency)
	require.Equal(t, "system", got.Theme)
	require.Equal(t, 6, got.EmergencyFundMonths)
	require.True(t, got.MonthlySavingsRate.IsZero())
}

func TestSettingsStoreUpdatePersists(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewSettingsStore(db.Table("settings"), testOptions())
	require.NoError(t, s.Initialize(ctx))

	err := s.Update(ctx, func(cfg *core.Settings) {
		cfg.Currency = "EUR"
		cfg.MonthlySavingsRate = core.MustAmount("500")
	})
	require.NoError(t, err)

	reloaded := NewSettingsStore(db.Table("settings"), testOptions())
	require.NoError(t, reloaded.Initialize(ctx))
	got := reloaded.Get()
	require.Equal(t, "EUR", got.Currency)
	require.True(t, got.MonthlySavingsRate.Equal(core.MustAmount("500")))

	require.NoError(t, reloaded.Reset(ctx))
	require.Equal(t, "USD", reloaded.Get().Currency)
}
