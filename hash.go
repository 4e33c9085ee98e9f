package chainhash

import (
	"errors"
	"fmt"
	"unicode/utf16"

	"github.com/cespare/xxhash/v2"
)

// HashFunc computes a non-negative hash over the full content of a key.
// The table reduces it modulo its size to pick a bucket.
type HashFunc func(key string) uint64

// ErrUnknownHashFunc is returned by HashFuncByName for unsupported names
var ErrUnknownHashFunc = errors.New("unknown hash function")

// JavaHash is the polynomial rolling hash h = 31*h + c over the UTF-16 code
// units of the key, with 32-bit wraparound and the sign bit masked off.
// Probe counts reported by this package depend on it, so it is the default.
func JavaHash(key string) uint64 {
	var h int32
	for _, r := range key {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = 31*h + int32(hi)
			h = 31*h + int32(lo)
			continue
		}
		h = 31*h + int32(r)
	}
	return uint64(uint32(h) & 0x7fffffff)
}

const (
	offset32 = 2166136261
	prime32  = 16777619
)

// FNV1a computes a 32-bit FNV-1a hash of the key bytes
func FNV1a(key string) uint64 {
	hash := uint32(offset32)
	for i := 0; i < len(key); i++ {
		hash ^= uint32(key[i])
		hash *= prime32
	}
	return uint64(hash)
}

// XXHash computes the 64-bit xxHash of the key
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

var hashFuncs = map[string]HashFunc{
	"java":   JavaHash,
	"fnv1a":  FNV1a,
	"xxhash": XXHash,
}

// HashFuncNames lists the names accepted by HashFuncByName
func HashFuncNames() []string {
	return []string{"java", "fnv1a", "xxhash"}
}

// HashFuncByName resolves "java", "fnv1a" or "xxhash"
func HashFuncByName(name string) (HashFunc, error) {
	fn, ok := hashFuncs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHashFunc, name)
	}
	return fn, nil
}
