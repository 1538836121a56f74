package utils

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrUnsupportedHashAlgorithm is returned for an algorithm name missing from
// the supported set.
var ErrUnsupportedHashAlgorithm = errors.New("unsupported hash algorithm")

// hashFactories maps lower-case algorithm names, as stored in service
// configurations, to hash constructors.
var hashFactories = map[string]func() hash.Hash{
	"md5":      md5.New,
	"sha1":     sha1.New,
	"sha224":   sha256.New224,
	"sha256":   sha256.New,
	"sha384":   sha512.New384,
	"sha512":   sha512.New,
	"sha3-256": func() hash.Hash { return sha3.New256() },
	"sha3-512": func() hash.Hash { return sha3.New512() },
}

// IsSupportedHMACAlgorithm reports whether algo can be passed to [HMACHex].
// The comparison is case-insensitive.
func IsSupportedHMACAlgorithm(algo string) bool {
	_, ok := hashFactories[strings.ToLower(algo)]
	return ok
}

// SupportedHMACAlgorithms returns the supported algorithm names in sorted
// order.
func SupportedHMACAlgorithms() []string {
	names := make([]string, 0, len(hashFactories))
	for name := range hashFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HMACHex computes an HMAC over data with the given algorithm and key and
// returns the lower-case hex digest.
//
// Example usage:
//
//	digest, err := utils.HMACHex("sha256", body, "my-secret-key")
func HMACHex(algo string, data []byte, key string) (string, error) {
	factory, ok := hashFactories[strings.ToLower(algo)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedHashAlgorithm, algo)
	}

	hasher := hmac.New(factory, []byte(key))
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// ConstantTimeEqual compares two strings in time independent of where they
// first differ. Strings of different length return false immediately, which
// only leaks the length.
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
