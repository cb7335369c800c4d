package types

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInvalidAddress is returned by ParseAddress
var ErrInvalidAddress = errors.New("address must be 40 hex digits and not zero")

// ParseAddress accepts 40 hex digits, with or without 0x, in any case.
// The zero address is rejected.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, ErrInvalidAddress
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, ErrInvalidAddress
	}
	return addr, nil
}

// PairSpec describes one LP token pair handed to convertMultiple.
// TokenA and TokenB are positional; the contract does not reorder them.
type PairSpec struct {
	TokenA common.Address
	TokenB common.Address
	Amount *big.Int // nil means "use contract default"
}

// AmountOrZero returns a copy of the amount, or zero when absent
func (p PairSpec) AmountOrZero() *big.Int {
	if p.Amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(p.Amount)
}

// Clone returns a deep copy so callers cannot mutate a strategy's pairs
func (p PairSpec) Clone() PairSpec {
	out := PairSpec{TokenA: p.TokenA, TokenB: p.TokenB}
	if p.Amount != nil {
		out.Amount = new(big.Int).Set(p.Amount)
	}
	return out
}

// ConvertArgs holds the three index-aligned vectors of a convertMultiple call
type ConvertArgs struct {
	TokenA  []common.Address
	TokenB  []common.Address
	Amounts []*big.Int
}

// Len returns the number of pairs in the call
func (a ConvertArgs) Len() int {
	return len(a.TokenA)
}

// SplitPairs projects pairs into parallel vectors, substituting zero for absent amounts
func SplitPairs(pairs []PairSpec) ConvertArgs {
	args := ConvertArgs{
		TokenA:  make([]common.Address, 0, len(pairs)),
		TokenB:  make([]common.Address, 0, len(pairs)),
		Amounts: make([]*big.Int, 0, len(pairs)),
	}
	for _, p := range pairs {
		args.TokenA = append(args.TokenA, p.TokenA)
		args.TokenB = append(args.TokenB, p.TokenB)
		args.Amounts = append(args.Amounts, p.AmountOrZero())
	}
	return args
}

// Version identifies a BrewBoo contract deployment
type Version uint32

const (
	VersionV2 Version = 2
	VersionV3 Version = 3
)

// ParseVersion parses a "v<positive integer>" token.
// It only checks the syntax; whether a version is usable is decided elsewhere.
func ParseVersion(s string) (Version, error) {
	if len(s) < 2 || s[0] != 'v' {
		return 0, fmt.Errorf("version %q must look like v2, v3, v4", s)
	}
	digits := s[1:]
	if strings.TrimLeft(digits, "0123456789") != "" {
		return 0, fmt.Errorf("version %q must look like v2, v3, v4", s)
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("version %q must look like v2, v3, v4", s)
	}
	return Version(n), nil
}

// String returns the lower-case token form, e.g. "v2"
func (v Version) String() string {
	return "v" + strconv.FormatUint(uint64(v), 10)
}

// Label returns the upper-case form used in operator logs, e.g. "V2"
func (v Version) Label() string {
	return strings.ToUpper(v.String())
}
