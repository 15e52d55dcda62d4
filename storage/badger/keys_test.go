package badger

import (
	"bytes"
	"testing"

	"github.com/poiesic/termgraph/core"
	"github.com/stretchr/testify/assert"
)

func TestMakeIDKey_Layout(t *testing.T) {
	key := makeTermFrequencyKey(core.ID(1), core.ID(0x0102))

	assert.Equal(t, len(termFrequencyPrefix)+16, len(key))
	assert.True(t, bytes.HasPrefix(key, []byte(termFrequencyPrefix)))
	assert.True(t, bytes.HasPrefix(key, makeIDKey(termFrequencyPrefix, core.ID(1))))
	assert.Equal(t, core.ID(0x0102), trailingID(key))
}

func TestMakeIDKey_OrderFollowsIDs(t *testing.T) {
	low := makeTermKey(core.ID(255))
	high := makeTermKey(core.ID(256))
	assert.Equal(t, -1, bytes.Compare(low, high))
}

func TestCheckpointKeys(t *testing.T) {
	key := makeCheckpointKey("news", "index-files")
	assert.True(t, bytes.HasPrefix(key, makeCheckpointCorpusPrefix("news")))
	assert.False(t, bytes.HasPrefix(key, makeCheckpointCorpusPrefix("new")))
}
