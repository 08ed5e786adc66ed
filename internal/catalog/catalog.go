// Package catalog loads the static reference tables (species names, types,
// type map, base stats) and joins ranking entries against them.
//
// A Catalog is built per request and never mutated after Load returns.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/kv"
)

// ErrMalformedReference marks a reference blob that is missing or cannot be
// parsed.
var ErrMalformedReference = errors.New("catalog: malformed reference data")

// Source holds the raw reference blobs as stored.
type Source struct {
	BaseStat    []byte
	Names       []byte
	Types       []byte
	Tokusei     []byte
	PokeTypeMap []byte
}

// Catalog is the parsed reference data.
type Catalog struct {
	Names     []string
	Types     json.RawMessage
	Tokusei   string
	BaseStats []Row

	typeMap   []byte
	statIndex map[statKey]BaseStat
}

// LoadAll reads every reference key from store and parses them. BASE_STAT,
// names and poke_type_map are required; types and tokusei may be absent.
func LoadAll(ctx context.Context, store kv.Store) (*Catalog, error) {
	var src Source
	reads := []struct {
		key      string
		dst      *[]byte
		required bool
	}{
		{config.KeyBaseStat, &src.BaseStat, true},
		{config.KeyNames, &src.Names, true},
		{config.KeyTypes, &src.Types, false},
		{config.KeyTokusei, &src.Tokusei, false},
		{config.KeyPokeTypeMap, &src.PokeTypeMap, true},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range reads {
		g.Go(func() error {
			data, err := store.Get(gctx, r.key)
			if errors.Is(err, kv.ErrNotFound) {
				if r.required {
					return fmt.Errorf("%w: %s is not provisioned", ErrMalformedReference, r.key)
				}
				return nil
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", r.key, err)
			}
			*r.dst = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Parse(src)
}

// Parse builds a Catalog from raw blobs.
func Parse(src Source) (*Catalog, error) {
	c := &Catalog{
		Tokusei:   string(src.Tokusei),
		BaseStats: ParseDelimited(string(src.BaseStat)),
		typeMap:   src.PokeTypeMap,
	}

	if err := json.Unmarshal(src.Names, &c.Names); err != nil {
		return nil, fmt.Errorf("%w: names: %v", ErrMalformedReference, err)
	}
	if len(src.Types) > 0 {
		if !json.Valid(src.Types) {
			return nil, fmt.Errorf("%w: types is not valid JSON", ErrMalformedReference)
		}
		c.Types = json.RawMessage(src.Types)
	}
	if !gjson.ValidBytes(src.PokeTypeMap) {
		return nil, fmt.Errorf("%w: poke_type_map is not valid JSON", ErrMalformedReference)
	}

	c.statIndex = indexBaseStats(c.BaseStats)
	return c, nil
}

// Name returns the species name for a national dex number.
func (c *Catalog) Name(id int) (string, bool) {
	if id < 1 || id > len(c.Names) {
		return "", false
	}
	return c.Names[id-1], true
}

// TypesOf returns the raw type list for a species form, or nil.
func (c *Catalog) TypesOf(id, form int) json.RawMessage {
	res := gjson.GetBytes(c.typeMap, strconv.Itoa(id)+"."+strconv.Itoa(form))
	if !res.Exists() {
		return nil
	}
	return json.RawMessage(res.Raw)
}

// BaseStat returns the base stats for a species form. Absence is not an
// error: the result is simply empty.
func (c *Catalog) BaseStat(id, form int) BaseStat {
	return c.statIndex[statKey{id: id, form: form}]
}
