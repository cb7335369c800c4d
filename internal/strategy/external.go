package strategy

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
	"github.com/sugawarayuuta/sonnet"

	"github.com/devlongs/spookybrew/internal/brewerr"
	"github.com/devlongs/spookybrew/pkg/types"
)

// pairRecord is one entry of the external pair document.
// Pointers distinguish a missing field from an empty one.
type pairRecord struct {
	TokenA *string `json:"token_a"`
	TokenB *string `json:"token_b"`
	Amount *string `json:"amount"`
}

// External loads pairs from a JSON document on disk.
// Loading is all-or-nothing: one bad record rejects the whole document.
type External struct {
	path string

	mu    sync.RWMutex
	pairs []types.PairSpec
}

// NewExternal reads and validates the pair document at path
func NewExternal(path string) (*External, error) {
	pairs, err := LoadPairs(path)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("pairs", len(pairs)).
		Msg("Loaded external pair config")

	return &External{
		path:  path,
		pairs: pairs,
	}, nil
}

// Reload re-reads the document. The current pairs are replaced only when the
// whole document validates; on error they are left untouched.
func (s *External) Reload() error {
	pairs, err := LoadPairs(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pairs = pairs
	s.mu.Unlock()

	log.Debug().
		Str("path", s.path).
		Int("pairs", len(pairs)).
		Msg("Reloaded external pair config")
	return nil
}

// Path returns the document location
func (s *External) Path() string {
	return s.path
}

func (s *External) Pairs() []types.PairSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePairs(s.pairs)
}

func (s *External) Name() string {
	return "Dynamic External Pair Strategy"
}

func (s *External) Description() string {
	return "A strategy that loads LP token pairs from an external JSON configuration file"
}

// LoadPairs reads and validates a pair document
func LoadPairs(path string) ([]types.PairSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: pairs file %s: %w", brewerr.ErrConfigMissing, path, err)
	}

	pairs, err := ParsePairs(data)
	if err != nil {
		return nil, fmt.Errorf("pairs file %s: %w", path, err)
	}
	return pairs, nil
}

// ParsePairs validates every record of a pair document, in order
func ParsePairs(data []byte) ([]types.PairSpec, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top level must be an array of pair records", brewerr.ErrConfigMalformed)
	}

	var records []pairRecord
	if err := sonnet.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", brewerr.ErrConfigMalformed, err)
	}

	pairs := make([]types.PairSpec, 0, len(records))
	for i, rec := range records {
		p, err := rec.toPairSpec(i)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func (r pairRecord) toPairSpec(index int) (types.PairSpec, error) {
	if r.TokenA == nil {
		return types.PairSpec{}, fmt.Errorf("%w: pair %d is missing token_a", brewerr.ErrConfigMalformed, index)
	}
	if r.TokenB == nil {
		return types.PairSpec{}, fmt.Errorf("%w: pair %d is missing token_b", brewerr.ErrConfigMalformed, index)
	}

	tokenA, err := types.ParseAddress(*r.TokenA)
	if err != nil {
		return types.PairSpec{}, &brewerr.AddressError{Field: "token_a", Index: index, Value: *r.TokenA}
	}
	tokenB, err := types.ParseAddress(*r.TokenB)
	if err != nil {
		return types.PairSpec{}, &brewerr.AddressError{Field: "token_b", Index: index, Value: *r.TokenB}
	}

	p := types.PairSpec{TokenA: tokenA, TokenB: tokenB}
	if r.Amount != nil {
		amount, err := ParseAmount(*r.Amount)
		if err != nil {
			return types.PairSpec{}, &brewerr.AmountError{Index: index, Value: *r.Amount}
		}
		p.Amount = amount
	}
	return p, nil
}

// ParseAmount parses a base-10 unsigned integer that fits in 256 bits
func ParseAmount(s string) (*big.Int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return nil, brewerr.ErrAmountInvalid
	}
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", brewerr.ErrAmountInvalid, err)
	}
	return u.ToBig(), nil
}
