// Package digest provides the key hashing functions used to place values in
// the directory tree. Every function returns a string that is safe to use as
// a sequence of path segments.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/cespare/xxhash/v2"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Func maps a key to its digest.
type Func func(key string) string

// MD5 returns the lowercase hex MD5 of the key.
func MD5(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// SHA1 returns the lowercase hex SHA-1 of the key.
func SHA1(key string) string {
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// SHA256 returns the lowercase hex SHA-256 of the key.
func SHA256(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// BLAKE2b256 returns the lowercase hex BLAKE2b-256 of the key.
func BLAKE2b256(key string) string {
	sum := blake2b.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// SHA3256 returns the lowercase hex SHA3-256 of the key.
func SHA3256(key string) string {
	sum := sha3.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Hash160 returns the lowercase hex RIPEMD160(SHA256(key)).
func Hash160(key string) string {
	return hex.EncodeToString(bsvhash.Hash160([]byte(key)))
}

// XXHash64 returns the 64-bit xxHash of the key as 16 lowercase hex chars.
func XXHash64(key string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(key))
}

// Base58SHA256 returns the base58 encoding of SHA-256(key).
// The alphabet is mixed-case, so it should not be used on case-insensitive
// filesystems.
func Base58SHA256(key string) string {
	sum := sha256.Sum256([]byte(key))
	return base58.Encode(sum[:])
}

var registry = map[string]Func{
	"md5":     MD5,
	"sha1":    SHA1,
	"sha256":  SHA256,
	"blake2b": BLAKE2b256,
	"sha3":    SHA3256,
	"hash160": Hash160,
	"xxhash":  XXHash64,
	"base58":  Base58SHA256,
}

// Lookup returns the digest function registered under name.
func Lookup(name string) (Func, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return f, nil
}

// Names returns the registered digest names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
