package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
)

// Fingerprint identifies the current content of the input file pair by
// path, size, and modification time. A changed file on disk produces a new
// fingerprint, so stale cached snapshots are never served.
//
// Size+mtime is a deliberate trade-off against hashing file content: the
// datasets are small but re-hashing them on every request would still cost
// more than two stats, and the upstream export scripts always rewrite the
// files (fresh mtime) rather than patching them in place.
func Fingerprint(primaryPath, annotationsPath string) (string, error) {
	h := sha256.New()

	if err := writeFileStamp(h, primaryPath); err != nil {
		return "", fmt.Errorf("stat primary file: %w", err)
	}

	if annotationsPath == "" {
		h.Write([]byte("annotations:none"))
	} else if err := writeFileStamp(h, annotationsPath); err != nil {
		// A missing annotation file is a legitimate state, not an error;
		// it still has to produce a distinct fingerprint so that the file
		// appearing later triggers a rebuild.
		h.Write([]byte("annotations:absent"))
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeFileStamp(h interface{ Write([]byte) (int, error) }, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatInt(info.Size(), 10)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strconv.FormatInt(info.ModTime().UnixNano(), 10)))
	_, _ = h.Write([]byte{0})
	return nil
}
