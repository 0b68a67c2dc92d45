package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBucketsKeepNewKeyAcrossSweep(t *testing.T) {
	limit := Limit{Requests: 1, Window: time.Minute, Burst: 1}
	b := &buckets{limit: limit, every: limit.Every(), lastSweep: time.Now().Add(-2 * sweepInterval)}

	l := b.get("alice")
	require.True(t, l.Allow())

	stored, ok := b.m.Load("alice")
	require.True(t, ok, "new key must survive the sweep it triggered")
	require.Same(t, l, stored)
	require.False(t, b.get("alice").Allow(), "second request hits the drained bucket")
}

func TestBucketsSweepDropsIdleKeys(t *testing.T) {
	limit := Limit{Requests: 10, Window: time.Minute, Burst: 10}
	b := &buckets{limit: limit, every: limit.Every(), lastSweep: time.Now()}

	b.get("idle")
	b.lastSweep = time.Now().Add(-2 * sweepInterval)
	b.get("fresh")

	_, ok := b.m.Load("idle")
	require.False(t, ok)
	_, ok = b.m.Load("fresh")
	require.True(t, ok)
}
