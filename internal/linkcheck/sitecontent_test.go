package linkcheck

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgpuguide/internal/content"
)

// TestShippedContent runs the checker over the chapters this repository
// actually serves. A broken cross-reference in content/ fails the build.
func TestShippedContent(t *testing.T) {
	store := content.NewStore(os.DirFS("../../content"), nil)
	require.NoError(t, store.Load(context.Background()))
	require.NotZero(t, store.Len(), "no chapters found; run from the repository root")

	issues, err := New(store, os.DirFS("../../static")).Run(context.Background())
	require.NoError(t, err)

	for _, issue := range issues {
		t.Errorf("broken link: %s", issue)
	}
	assert.Equal(t, 22, store.Len())
}
