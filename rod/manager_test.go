//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/pagemd/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.IncrementPageCount()
	manager.IncrementPageCount()
	manager.IncrementPageCount()

	secondBrowser := manager.Browser()
	require.NotNil(t, secondBrowser)

	assert.NotSame(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.IncrementPageCount()
	manager.IncrementPageCount()

	sameBrowser := manager.Browser()
	assert.Same(t, firstBrowser, sameBrowser)
}
