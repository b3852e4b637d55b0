//go:build integration

package rod_test

import (
	"context"
	"testing"

	"github.com/akash-new/reviewscout"
	"github.com/akash-new/reviewscout/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAndClose(t *testing.T, bm *rod.BrowserManager, n int) {
	t.Helper()
	for range n {
		page, err := bm.NewPage(context.Background())
		require.NoError(t, err)
		require.NoError(t, page.Close())
	}
}

func TestBrowserManager_NewPage(t *testing.T) {
	t.Parallel()

	t.Run("replaces the browser once the budget is spent", func(t *testing.T) {
		t.Parallel()

		bm, err := rod.NewBrowserManager(rod.WithPageBudget(2))
		require.NoError(t, err)
		defer bm.Close()
		firstPID := bm.LauncherPID()

		openAndClose(t, bm, 3)

		assert.Equal(t, 1, bm.Rotations())
		assert.NotEqual(t, firstPID, bm.LauncherPID())
	})

	t.Run("keeps the browser within budget", func(t *testing.T) {
		t.Parallel()

		bm, err := rod.NewBrowserManager(rod.WithPageBudget(5))
		require.NoError(t, err)
		defer bm.Close()
		firstPID := bm.LauncherPID()

		openAndClose(t, bm, 5)

		assert.Zero(t, bm.Rotations())
		assert.Equal(t, firstPID, bm.LauncherPID())
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		bm, err := rod.NewBrowserManager()
		require.NoError(t, err)
		require.NoError(t, bm.Close())

		_, err = bm.NewPage(context.Background())

		assert.Equal(t, reviewscout.EINVALID, reviewscout.ErrorCode(err))
		assert.Zero(t, bm.LauncherPID())
	})
}
