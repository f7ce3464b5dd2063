package mapper

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for Mapper Types:
// - Size classes split at the documented byte thresholds
// - Token estimates round up
// - relID produces slash paths with "." for the root itself
// - relID rejects paths outside the root
// - Edge IDs join source and target

func TestSizeClassFromBytes(t *testing.T) {
	assert.Equal(t, "small", sizeClassFromBytes(0))
	assert.Equal(t, "small", sizeClassFromBytes(199_999))
	assert.Equal(t, "medium", sizeClassFromBytes(200_000))
	assert.Equal(t, "medium", sizeClassFromBytes(1_499_999))
	assert.Equal(t, "large", sizeClassFromBytes(1_500_000))
}

func TestEstTokensFromBytes(t *testing.T) {
	assert.Equal(t, int64(0), estTokensFromBytes(0))
	assert.Equal(t, int64(1), estTokensFromBytes(1))
	assert.Equal(t, int64(1), estTokensFromBytes(4))
	assert.Equal(t, int64(2), estTokensFromBytes(5))
	assert.Equal(t, int64(250), estTokensFromBytes(1000))
}

func TestRelID(t *testing.T) {
	root := filepath.Join("/", "repo")

	id, ok := relID(root, root)
	assert.True(t, ok)
	assert.Equal(t, ".", id)

	id, ok = relID(root, filepath.Join(root, "src", "lib.rs"))
	assert.True(t, ok)
	assert.Equal(t, "src/lib.rs", id)

	_, ok = relID(root, filepath.Join("/", "elsewhere", "file.ts"))
	assert.False(t, ok)
}

func TestEdgeID(t *testing.T) {
	assert.Equal(t, "src->src/lib.rs", edgeID("src", "src/lib.rs"))
}
