package ranking

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedata/internal/provider/home"
)

// Entry is one usage-ranking row. Only the species number and form are
// consumed downstream; Raw keeps the upstream record so re-encoding an
// Entry writes every usage field back unchanged.
type Entry struct {
	ID   int
	Form int
	Raw  json.RawMessage
}

type entryKey struct {
	ID   int `json:"id"`
	Form int `json:"form"`
}

// UnmarshalJSON reads id and form and keeps the whole record.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var k entryKey
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}
	e.ID, e.Form = k.ID, k.Form
	e.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes the upstream record, or just id and form for an
// Entry built in code.
func (e Entry) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}
	return json.Marshal(entryKey{ID: e.ID, Form: e.Form})
}

// Detail is a merged per-Pokemon detail set keyed as the upstream keys it.
type Detail map[string]json.RawMessage

// Upstream is the battle-data API surface the fetcher depends on.
// *home.Client satisfies it.
type Upstream interface {
	RankMatchList(ctx context.Context) ([]byte, error)
	UsageRanking(ctx context.Context, d home.Descriptor) ([]byte, error)
	DetailShard(ctx context.Context, d home.Descriptor, shard int) ([]byte, error)
}

// Fetcher turns upstream failures into absent values: every failure is
// logged and reported as nil (or false), never returned as an error.
type Fetcher struct {
	upstream Upstream
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(upstream Upstream, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{upstream: upstream, logger: logger}
}

// ResolveLatestDoubles fetches the listing and resolves the latest doubles
// descriptor. A transport failure is treated the same as not found.
func (f *Fetcher) ResolveLatestDoubles(ctx context.Context) (home.Descriptor, bool) {
	body, err := f.upstream.RankMatchList(ctx)
	if err != nil {
		f.logger.Warn("Rank match listing request failed", "error", err)
		return home.Descriptor{}, false
	}

	listing, err := ParseListing(body)
	if err != nil {
		f.logger.Warn("Rank match listing unreadable", "error", err)
		return home.Descriptor{}, false
	}
	if len(listing.Skipped) > 0 {
		f.logger.Warn("Ignoring non-numeric season keys", "keys", listing.Skipped)
	}

	d, err := listing.ResolveDoubles()
	if err != nil {
		f.logger.Info("No doubles competition in latest season", "error", err)
		return home.Descriptor{}, false
	}
	return d, true
}

// FetchUsageRanking returns the usage ranking for d, or nil on failure.
func (f *Fetcher) FetchUsageRanking(ctx context.Context, d home.Descriptor) []Entry {
	body, err := f.upstream.UsageRanking(ctx, d)
	if err != nil {
		f.logger.Warn("Usage ranking request failed", "competition", d.CompetitionID, "error", err)
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		f.logger.Warn("Usage ranking unreadable", "competition", d.CompetitionID, "error", err)
		return nil
	}
	return entries
}

// FetchDetail requests all detail shards for d and merges them in shard
// order. Failed shards are skipped; the result is never nil.
func (f *Fetcher) FetchDetail(ctx context.Context, d home.Descriptor) Detail {
	shards := make([]Detail, home.DetailShards)

	var g errgroup.Group
	for i := range shards {
		g.Go(func() error {
			shards[i] = f.fetchShard(ctx, d, i+1)
			return nil
		})
	}
	_ = g.Wait()

	return MergeShards(shards)
}

func (f *Fetcher) fetchShard(ctx context.Context, d home.Descriptor, shard int) Detail {
	body, err := f.upstream.DetailShard(ctx, d, shard)
	if err != nil {
		f.logger.Warn("Detail shard request failed", "shard", shard, "error", err)
		return nil
	}
	var detail Detail
	if err := json.Unmarshal(body, &detail); err != nil {
		f.logger.Warn("Detail shard unreadable", "shard", shard, "error", err)
		return nil
	}
	return detail
}

// MergeShards unions shards into a new map. A later shard overwrites an
// earlier one on key collision; nil shards contribute nothing.
func MergeShards(shards []Detail) Detail {
	merged := Detail{}
	for _, shard := range shards {
		for k, v := range shard {
			merged[k] = v
		}
	}
	return merged
}

// LatestUsageRanking resolves the latest doubles snapshot and fetches its
// usage ranking. nil means unavailable.
func (f *Fetcher) LatestUsageRanking(ctx context.Context) []Entry {
	d, ok := f.ResolveLatestDoubles(ctx)
	if !ok {
		return nil
	}
	return f.FetchUsageRanking(ctx, d)
}

// LatestDetail resolves the latest doubles snapshot and fetches its merged
// detail set. nil means the snapshot could not be resolved.
func (f *Fetcher) LatestDetail(ctx context.Context) Detail {
	d, ok := f.ResolveLatestDoubles(ctx)
	if !ok {
		return nil
	}
	return f.FetchDetail(ctx, d)
}
