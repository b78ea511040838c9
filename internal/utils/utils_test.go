package utils

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMonotonicIDs_SameMillisecond(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	g := NewMonotonicIDs(fixedClock(now))

	assert.Equal(t, int64(1700000000000), g.NextID())
	assert.Equal(t, int64(1700000000001), g.NextID())
	assert.Equal(t, int64(1700000000002), g.NextID())
}

func TestMonotonicIDs_Observe(t *testing.T) {
	g := NewMonotonicIDs(fixedClock(time.UnixMilli(1000)))
	g.Observe(5000)

	assert.Equal(t, int64(5001), g.NextID())

	g.Observe(10)
	assert.Equal(t, int64(5002), g.NextID(), "observing a smaller id has no effect")
}

func TestMonotonicIDs_ConcurrentUnique(t *testing.T) {
	g := NewMonotonicIDs(nil)

	const n = 500
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, n)
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %d", id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestSessionTokens_MintToken(t *testing.T) {
	m := NewSessionTokens(fixedClock(time.UnixMilli(1700000000000)), func() string { return "abc" })
	assert.Equal(t, "simulated_jwt_token_1700000000000_abc", m.MintToken())

	random := NewSessionTokens(nil, nil)
	first, second := random.MintToken(), random.MintToken()
	assert.True(t, strings.HasPrefix(first, "simulated_jwt_token_"))
	assert.NotEqual(t, first, second)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"1700000000000", 1700000000000, true},
		{"12abc", 12, true},
		{"  7", 7, true},
		{"-3", -3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
