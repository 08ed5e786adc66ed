package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokedata/internal/kv"
	"github.com/albapepper/pokedata/internal/ranking"
)

type entry struct {
	ID   int `json:"id"`
	Form int `json:"form"`
}

// recordingStore records the TTL of every Put.
type recordingStore struct {
	*kv.Memory
	ttls   []time.Duration
	getErr error
	putErr error
}

func (r *recordingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.Memory.Get(ctx, key)
}

func (r *recordingStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.ttls = append(r.ttls, ttl)
	if r.putErr != nil {
		return r.putErr
	}
	return r.Memory.Put(ctx, key, value, ttl)
}

func producer(calls *int, v []entry) func(context.Context) []entry {
	return func(context.Context) []entry {
		*calls++
		return v
	}
}

func TestGetMissThenHit(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{Memory: kv.NewMemory()}
	c := New(store, TTLRanking, nil)

	first := []entry{{ID: 1, Form: 0}, {ID: 2, Form: 1}}
	var calls int
	got := Get(ctx, c, "k", producer(&calls, first))
	assert.Equal(t, first, got)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []time.Duration{86400 * time.Second}, store.ttls)

	stored, err := store.Memory.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"form":0},{"id":2,"form":1}]`, string(stored))

	var secondCalls int
	got = Get(ctx, c, "k", producer(&secondCalls, []entry{{ID: 99}}))
	assert.Equal(t, first, got)
	assert.Zero(t, secondCalls)
	assert.Len(t, store.ttls, 1)
}

func TestGetNilResultIsStoredButRetried(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{Memory: kv.NewMemory()}
	c := New(store, TTLRanking, nil)

	var calls int
	got := Get(ctx, c, "k", producer(&calls, nil))
	assert.Nil(t, got)

	stored, err := store.Memory.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "null", string(stored))

	got = Get(ctx, c, "k", producer(&calls, []entry{{ID: 7}}))
	assert.Equal(t, []entry{{ID: 7}}, got)
	assert.Equal(t, 2, calls)
}

func TestGetEmptySliceIsAHit(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemory(), TTLRanking, nil)

	var calls int
	Get(ctx, c, "k", producer(&calls, []entry{}))
	got := Get(ctx, c, "k", producer(&calls, []entry{{ID: 1}}))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, calls)
}

func TestGetStorageFailures(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{
		Memory: kv.NewMemory(),
		getErr: errors.New("read timeout"),
		putErr: errors.New("write timeout"),
	}
	c := New(store, TTLRanking, nil)

	var calls int
	got := Get(ctx, c, "k", producer(&calls, []entry{{ID: 3}}))
	assert.Equal(t, []entry{{ID: 3}}, got)
	got = Get(ctx, c, "k", producer(&calls, []entry{{ID: 3}}))
	assert.Equal(t, []entry{{ID: 3}}, got)
	assert.Equal(t, 2, calls)
}

func TestGetCorruptEntryIsAMiss(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Put(ctx, "k", []byte(`{"oops"`), 0))
	c := New(mem, TTLRanking, nil)

	var calls int
	got := Get(ctx, c, "k", producer(&calls, []entry{{ID: 4}}))
	assert.Equal(t, []entry{{ID: 4}}, got)
	assert.Equal(t, 1, calls)
}

func TestGetRankingKeepsUpstreamFields(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := New(store, TTLRanking, nil)

	upstream := `[{"id":445,"form":0,"rank":1},{"id":887,"form":0,"rank":2}]`
	var fetched []ranking.Entry
	require.NoError(t, json.Unmarshal([]byte(upstream), &fetched))

	var calls int
	produce := func(context.Context) []ranking.Entry {
		calls++
		return fetched
	}
	Get(ctx, c, "ranking", produce)

	stored, err := store.Get(ctx, "ranking")
	require.NoError(t, err)
	assert.JSONEq(t, upstream, string(stored))

	hit := Get(ctx, c, "ranking", produce)
	assert.Equal(t, 1, calls)
	require.Len(t, hit, 2)
	assert.Equal(t, 887, hit[1].ID)
	assert.JSONEq(t, `{"id":887,"form":0,"rank":2}`, string(hit[1].Raw))
}
