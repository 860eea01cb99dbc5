package merkle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerkleTree_UpdateBucket(t *testing.T) {
	tree, err := NewMerkleTree(4)
	assert.NoError(t, err)
	assert.Equal(t, 4, tree.NumLeaves())
	assert.Equal(t, 7, len(tree.nodes)) // 2*4 - 1

	// Initially all empty
	assert.Equal(t, "", tree.GetRoot())

	// Update leaf 0
	h0 := "hash0"
	err = tree.UpdateBucket(0, h0)
	assert.NoError(t, err)

	root1 := tree.GetRoot()
	assert.NotEmpty(t, root1)

	// Update leaf 1
	h1 := "hash1"
	err = tree.UpdateBucket(1, h1)
	assert.NoError(t, err)

	root2 := tree.GetRoot()
	assert.NotEqual(t, root1, root2)

	// Leaves store exactly what was written; untouched buckets stay empty.
	assert.Equal(t, h0, tree.nodes[tree.leafOffset])
	assert.Equal(t, h1, tree.nodes[tree.leafOffset+1])
	assert.Equal(t, "", tree.nodes[tree.leafOffset+2])

	// Same content, same root.
	other, _ := NewMerkleTree(4)
	_ = other.UpdateBucket(0, h0)
	_ = other.UpdateBucket(1, h1)
	assert.Equal(t, root2, other.GetRoot())
}

func TestMerkleTree_UpdateBucketOutOfRange(t *testing.T) {
	tree, _ := NewMerkleTree(4)
	assert.Error(t, tree.UpdateBucket(-1, "x"))
	assert.Error(t, tree.UpdateBucket(4, "x"))
}

func TestMerkleTree_PowerOfTwo(t *testing.T) {
	_, err := NewMerkleTree(3)
	assert.Error(t, err)

	_, err = NewMerkleTree(1024)
	assert.NoError(t, err)
}
