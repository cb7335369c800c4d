// Package secret carries the signing key through a run without exposing it.
//
// A PrivateKey never renders its contents: every fmt verb, JSON and text
// marshalling prints a redaction marker instead. The raw scalar leaves the
// carrier only through ECDSA, which is called once when the signer is built.
package secret

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/devlongs/spookybrew/internal/brewerr"
)

const redacted = "[REDACTED]"

// PrivateKey is a scoped carrier for a secp256k1 private key
type PrivateKey struct {
	b []byte
}

// Parse validates a hex key of 64 digits, optionally prefixed with 0x.
// Errors never include the key text.
func Parse(text string) (*PrivateKey, error) {
	if len(text) != 64 && len(text) != 66 {
		return nil, brewerr.ErrKeyFormatInvalid
	}
	if len(text) == 66 {
		if !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
			return nil, brewerr.ErrKeyFormatInvalid
		}
		text = text[2:]
	}

	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, brewerr.ErrKeyFormatInvalid
	}

	k := &PrivateKey{b: b}
	runtime.SetFinalizer(k, (*PrivateKey).Destroy)
	return k, nil
}

// ECDSA reveals the key as a signer-ready value
func (k *PrivateKey) ECDSA() (*ecdsa.PrivateKey, error) {
	if k == nil || k.b == nil {
		return nil, fmt.Errorf("%w: key already destroyed", brewerr.ErrKeyFormatInvalid)
	}
	prv, err := crypto.ToECDSA(k.b)
	if err != nil {
		return nil, brewerr.ErrKeyFormatInvalid
	}
	return prv, nil
}

// Destroy zeroes the key material. Safe to call more than once.
func (k *PrivateKey) Destroy() {
	if k == nil {
		return
	}
	for i := range k.b {
		k.b[i] = 0
	}
	k.b = nil
}

// Destroyed reports whether the key material has been wiped
func (k *PrivateKey) Destroyed() bool {
	return k == nil || k.b == nil
}

func (k *PrivateKey) String() string   { return redacted }
func (k *PrivateKey) GoString() string { return redacted }

// Format keeps %x, %v, %+v and friends from printing the bytes
func (k *PrivateKey) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(redacted))
}

func (k *PrivateKey) MarshalText() ([]byte, error) { return []byte(redacted), nil }
func (k *PrivateKey) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }
