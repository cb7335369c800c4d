package secret

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/devlongs/spookybrew/internal/brewerr"
)

// ReadKeyFile loads a private key from path. On Unix the file must not be
// readable, writable or executable by group or others.
func ReadKeyFile(path string) (*PrivateKey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("private key file: %w", err)
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o077 != 0 {
		return nil, fmt.Errorf("%w: %s has mode %04o", brewerr.ErrPermissionsTooOpen, path, info.Mode().Perm())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("private key file: %w", err)
	}
	defer wipe(raw)

	return Parse(strings.TrimSpace(string(raw)))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
