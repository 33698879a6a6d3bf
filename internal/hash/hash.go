// Package hash computes content fingerprints. A fingerprint is the lowercase
// hex encoding of a digest; callers only compare fingerprints for equality.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	gohash "hash"
	"io"

	"github.com/zeebo/xxh3"
)

// Algorithm names a fingerprint algorithm.
type Algorithm string

const (
	XXH3   Algorithm = "xxh3"   // xxh3-128, 32 hex chars
	SHA256 Algorithm = "sha256" // 64 hex chars
)

// Default is used when no algorithm is selected.
const Default = XXH3

// Digest accumulates written bytes and returns their fingerprint.
type Digest interface {
	io.Writer
	Sum() string
}

// Supported lists the accepted algorithm names.
func Supported() []Algorithm {
	return []Algorithm{XXH3, SHA256}
}

// Parse maps a name to an Algorithm. The empty name selects Default.
func Parse(name string) (Algorithm, error) {
	if name == "" {
		return Default, nil
	}
	for _, a := range Supported() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported hash algorithm %q (supported: %v)", name, Supported())
}

// New returns an empty digest for the algorithm.
func (a Algorithm) New() (Digest, error) {
	switch a {
	case XXH3:
		return &xxh3Digest{h: xxh3.New()}, nil
	case SHA256:
		return &stdDigest{h: sha256.New()}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", string(a))
	}
}

// SumReader fingerprints everything readable from r and reports the byte count.
func (a Algorithm) SumReader(r io.Reader) (string, int64, error) {
	d, err := a.New()
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(d, r)
	if err != nil {
		return "", n, err
	}
	return d.Sum(), n, nil
}

// SumBytes fingerprints data.
func (a Algorithm) SumBytes(data []byte) (string, error) {
	switch a {
	case XXH3:
		h := xxh3.Hash128(data).Bytes()
		return hex.EncodeToString(h[:]), nil
	case SHA256:
		h := sha256.Sum256(data)
		return hex.EncodeToString(h[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", string(a))
	}
}

type xxh3Digest struct {
	h *xxh3.Hasher
}

func (d *xxh3Digest) Write(p []byte) (int, error) { return d.h.Write(p) }

func (d *xxh3Digest) Sum() string {
	h := d.h.Sum128().Bytes()
	return hex.EncodeToString(h[:])
}

type stdDigest struct {
	h gohash.Hash
}

func (d *stdDigest) Write(p []byte) (int, error) { return d.h.Write(p) }

func (d *stdDigest) Sum() string { return hex.EncodeToString(d.h.Sum(nil)) }
