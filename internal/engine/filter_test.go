package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lazypower/flow/internal/store"
)

func TestFilter(t *testing.T) {
	entries := []store.PathEntry{
		{Path: "/home/u/src/flow", Entry: store.Entry{Score: 3}},
		{Path: "/home/u/docs", Entry: store.Entry{Score: 2}},
		{Path: "/tmp", Entry: store.Entry{Score: 1}},
	}

	got := Filter(entries, "flw")
	if assert.Len(t, got, 1) {
		assert.Equal(t, "/home/u/src/flow", got[0].Path)
		assert.Equal(t, 3.0, got[0].Score)
	}

	assert.Equal(t, entries, Filter(entries, ""))
	assert.Empty(t, Filter(entries, "qqq"))
}
