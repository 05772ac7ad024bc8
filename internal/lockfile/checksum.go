package lockfile

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// checksumChunkSize is the read size for incremental hashing, so memory
// stays constant regardless of input size.
const checksumChunkSize = 4096

// ChecksumFile returns the 64-character lowercase hex SHA-256 digest of
// the file at path, hashing in fixed-size chunks.
func ChecksumFile(path string) (string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for checksum: %w", path, err)
	}
	defer fh.Close()

	return checksumReader(fh)
}

func checksumReader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, checksumChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read for checksum: %w", err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func checksumBytes(b []byte) string {
	// bytes.Reader never errors, so neither does checksumReader here.
	digest, _ := checksumReader(bytes.NewReader(b))
	return digest
}
