// Package abicache keeps recently used contract ABIs in memory.
//
// ABIs come from a Fetcher, normally a chain API client; DirFetcher reads them from disk.
// A Cache is safe for concurrent use.
package abicache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Wire-Network/sdk-core-sub000/abi"
	"github.com/Wire-Network/sdk-core-sub000/encode"
)

// DefaultSize is the number of ABIs a Cache holds when created with a size of 0.
const DefaultSize = 128

// ErrNotFound is returned when a contract has no ABI.
var ErrNotFound = errors.New("abi not found")

// Fetcher retrieves a contract's ABI.
type Fetcher interface {
	FetchABI(ctx context.Context, contract string) (*abi.Def, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, contract string) (*abi.Def, error)

// FetchABI implements Fetcher.
func (f FetcherFunc) FetchABI(ctx context.Context, contract string) (*abi.Def, error) {
	return f(ctx, contract)
}

// DirFetcher loads <Dir>/<contract>.abi, written as JSON or YAML.
type DirFetcher struct {
	Dir string
}

// FetchABI implements Fetcher.
func (f DirFetcher) FetchABI(ctx context.Context, contract string) (*abi.Def, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(f.Dir, contract+".abi")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%v", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %v", path)
	}

	return Parse(data)
}

// Parse reads an ABI in either JSON or YAML form.
func Parse(data []byte) (*abi.Def, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return abi.FromJSON(trimmed)
	}

	def := new(abi.Def)
	if err := yaml.Unmarshal(data, def); err != nil {
		return nil, errors.Wrap(err, "parsing abi yaml")
	}
	return def, nil
}

// New returns a Cache holding up to size ABIs from fetcher. logger may be nil.
func New(size int, fetcher Fetcher, logger *zap.Logger) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Cache{
		fetcher: fetcher,
		logger:  logger,
	}

	cache, err := lru.NewWithEvict(size, c.evicted)
	if err != nil {
		return nil, err
	}
	c.lru = cache
	return c, nil
}

// Cache is an LRU cache of validated ABIs keyed by contract account name.
type Cache struct {
	lru     *lru.Cache
	fetcher Fetcher
	logger  *zap.Logger
}

func (c *Cache) evicted(key, _ interface{}) {
	c.logger.Debug("evicted abi", zap.String("contract", key.(string)))
}

// Get returns the ABI of contract, fetching and validating it if it isn't cached.
// Concurrent misses for the same contract may each fetch it.
func (c *Cache) Get(ctx context.Context, contract string) (*abi.Def, error) {
	if _, err := encode.NameFromString(contract); err != nil || contract == "" {
		return nil, errors.Wrapf(ErrNotFound, "%q is not an account name", contract)
	}

	if def, ok := c.lru.Get(contract); ok {
		return def.(*abi.Def), nil
	}

	if c.fetcher == nil {
		return nil, errors.Wrapf(ErrNotFound, "%v isn't cached", contract)
	}

	def, err := c.fetcher.FetchABI(ctx, contract)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching abi of %v", contract)
	}
	if def == nil {
		return nil, errors.Wrapf(ErrNotFound, "%v", contract)
	}
	if err := def.Validate(); err != nil {
		return nil, errors.Wrapf(err, "abi of %v", contract)
	}

	c.logger.Debug("fetched abi",
		zap.String("contract", contract),
		zap.Int("structs", len(def.Structs)),
		zap.Int("actions", len(def.Actions)),
	)
	c.lru.Add(contract, def)
	return def, nil
}

// Add caches def for contract without validating it.
func (c *Cache) Add(contract string, def *abi.Def) {
	c.lru.Add(contract, def)
}

// Remove drops contract from the cache, reporting whether it was there.
func (c *Cache) Remove(contract string) bool {
	if !c.lru.Contains(contract) {
		return false
	}
	c.lru.Remove(contract)
	return true
}

// Len returns the number of cached ABIs.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge empties the cache.
func (c *Cache) Purge() { c.lru.Purge() }
