package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokedata/internal/provider/home"
)

type fakeUpstream struct {
	mu sync.Mutex

	list    []byte
	listErr error
	ranking []byte
	rankErr error
	shards  map[int][]byte

	rankingCalls []home.Descriptor
}

func (f *fakeUpstream) RankMatchList(context.Context) ([]byte, error) {
	return f.list, f.listErr
}

func (f *fakeUpstream) UsageRanking(_ context.Context, d home.Descriptor) ([]byte, error) {
	f.mu.Lock()
	f.rankingCalls = append(f.rankingCalls, d)
	f.mu.Unlock()
	return f.ranking, f.rankErr
}

func (f *fakeUpstream) DetailShard(_ context.Context, _ home.Descriptor, shard int) ([]byte, error) {
	b, ok := f.shards[shard]
	if !ok {
		return nil, errors.New("404")
	}
	return b, nil
}

const doublesListing = `{"list":{"12":{"s":{"cId":"c12","rst":0,"ts2":99,"rule":1}}}}`

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestMergeShardsLaterWins(t *testing.T) {
	got := MergeShards([]Detail{
		{"a": raw("1")},
		{"b": raw("2")},
		nil,
		{"a": raw("3")},
		{"c": raw("4")},
	})
	assert.Equal(t, Detail{"a": raw("3"), "b": raw("2"), "c": raw("4")}, got)
}

func TestMergeShardsEmpty(t *testing.T) {
	got := MergeShards(make([]Detail, 5))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchDetailSkipsFailedShards(t *testing.T) {
	up := &fakeUpstream{shards: map[int][]byte{
		1: []byte(`{"a":1}`),
		2: []byte(`{"b":2}`),
		// 3 fails
		4: []byte(`{"a":3}`),
		5: []byte(`not json`),
	}}
	f := NewFetcher(up, nil)

	got := f.FetchDetail(context.Background(), home.Descriptor{})
	assert.Equal(t, Detail{"a": raw("3"), "b": raw("2")}, got)
}

func TestLatestUsageRanking(t *testing.T) {
	up := &fakeUpstream{
		list:    []byte(doublesListing),
		ranking: []byte(`[{"id":1000,"form":0},{"id":149,"form":1,"rank":2}]`),
	}
	f := NewFetcher(up, nil)

	got := f.LatestUsageRanking(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, 1000, got[0].ID)
	assert.Equal(t, 149, got[1].ID)
	assert.Equal(t, 1, got[1].Form)
	assert.JSONEq(t, `{"id":149,"form":1,"rank":2}`, string(got[1].Raw))
	require.Len(t, up.rankingCalls, 1)
	assert.Equal(t, home.Descriptor{CompetitionID: "c12", ResultSetID: "0", Timestamp: "99"}, up.rankingCalls[0])
}

func TestLatestUsageRankingListingFailure(t *testing.T) {
	up := &fakeUpstream{listErr: errors.New("connection refused")}
	f := NewFetcher(up, nil)

	assert.Nil(t, f.LatestUsageRanking(context.Background()))
	assert.Empty(t, up.rankingCalls)
}

func TestLatestUsageRankingNoDoubles(t *testing.T) {
	up := &fakeUpstream{list: []byte(`{"list":{"12":{"s":{"cId":"c","rule":0}}}}`)}
	f := NewFetcher(up, nil)

	assert.Nil(t, f.LatestUsageRanking(context.Background()))
	assert.Empty(t, up.rankingCalls)
}

func TestFetchUsageRankingFailures(t *testing.T) {
	f := NewFetcher(&fakeUpstream{rankErr: errors.New("500")}, nil)
	assert.Nil(t, f.FetchUsageRanking(context.Background(), home.Descriptor{}))

	f = NewFetcher(&fakeUpstream{ranking: []byte(`{"not":"an array"}`)}, nil)
	assert.Nil(t, f.FetchUsageRanking(context.Background(), home.Descriptor{}))
}

func TestLatestDetail(t *testing.T) {
	up := &fakeUpstream{
		list:   []byte(doublesListing),
		shards: map[int][]byte{2: []byte(`{"25-0":{"temoti":{}}}`)},
	}
	f := NewFetcher(up, nil)

	got := f.LatestDetail(context.Background())
	assert.Equal(t, Detail{"25-0": raw(`{"temoti":{}}`)}, got)

	assert.Nil(t, NewFetcher(&fakeUpstream{listErr: errors.New("x")}, nil).LatestDetail(context.Background()))
}

func TestEntryRoundTripKeepsUsageFields(t *testing.T) {
	in := `[{"id":445,"form":0,"rank":1,"usage":31.2},{"id":1}]`
	var entries []Entry
	require.NoError(t, json.Unmarshal([]byte(in), &entries))
	assert.Equal(t, 445, entries[0].ID)
	assert.Equal(t, 0, entries[1].Form)

	out, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	built, err := json.Marshal(Entry{ID: 3, Form: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"form":2}`, string(built))
}

func TestEntryRejectsNonObject(t *testing.T) {
	var entries []Entry
	assert.Error(t, json.Unmarshal([]byte(`["x"]`), &entries))
}
