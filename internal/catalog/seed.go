package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/kv"
)

// ReferenceKeys lists every reference key in load order.
var ReferenceKeys = []string{
	config.KeyBaseStat,
	config.KeyNames,
	config.KeyTypes,
	config.KeyTokusei,
	config.KeyPokeTypeMap,
}

var seedExtensions = []string{"", ".csv", ".json", ".txt"}

// SeedResult reports which reference keys were written by Seed.
type SeedResult struct {
	Written []string
	Missing []string
}

// Seed writes reference files from dir into store without expiry. A file is
// matched by key name, optionally with a .csv, .json or .txt extension.
// Keys with no file are reported as missing, not as an error.
func Seed(ctx context.Context, store kv.Store, dir string) (SeedResult, error) {
	var res SeedResult
	for _, key := range ReferenceKeys {
		data, err := readReference(dir, key)
		if errors.Is(err, fs.ErrNotExist) {
			res.Missing = append(res.Missing, key)
			continue
		}
		if err != nil {
			return res, err
		}
		if err := store.Put(ctx, key, data, 0); err != nil {
			return res, fmt.Errorf("store %s: %w", key, err)
		}
		res.Written = append(res.Written, key)
	}
	return res, nil
}

func readReference(dir, key string) ([]byte, error) {
	for _, ext := range seedExtensions {
		data, err := os.ReadFile(filepath.Join(dir, key+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
	}
	return nil, fs.ErrNotExist
}
