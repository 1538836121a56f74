// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACHex_MatchesDirectComputation(t *testing.T) {
	key := "secret-key"
	data := []byte(`{"action":"opened"}`)

	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	expected := hex.EncodeToString(h.Sum(nil))

	got, err := HMACHex("sha256", data, key)
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	// algorithm names are case-insensitive
	got, err = HMACHex("SHA256", data, key)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestHMACHex_DigestLengths(t *testing.T) {
	tests := []struct {
		algo   string
		hexLen int
	}{
		{"md5", 32},
		{"sha1", 40},
		{"sha224", 56},
		{"sha256", 64},
		{"sha384", 96},
		{"sha512", 128},
		{"sha3-256", 64},
		{"sha3-512", 128},
	}

	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			got, err := HMACHex(tt.algo, []byte("payload"), "k")
			require.NoError(t, err)
			assert.Len(t, got, tt.hexLen)
			assert.True(t, IsSupportedHMACAlgorithm(tt.algo))
		})
	}
}

func TestHMACHex_DifferentInputs(t *testing.T) {
	a, err := HMACHex("sha256", []byte("a"), "k")
	require.NoError(t, err)
	b, err := HMACHex("sha256", []byte("b"), "k")
	require.NoError(t, err)
	c, err := HMACHex("sha256", []byte("a"), "other")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHMACHex_Unsupported(t *testing.T) {
	_, err := HMACHex("crc32", []byte("x"), "k")

	assert.ErrorIs(t, err, ErrUnsupportedHashAlgorithm)
	assert.False(t, IsSupportedHMACAlgorithm("crc32"))
}

func TestSupportedHMACAlgorithms_Sorted(t *testing.T) {
	algos := SupportedHMACAlgorithms()

	assert.Len(t, algos, 8)
	assert.IsNonDecreasing(t, algos)
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("abc", "abc"))
	assert.False(t, ConstantTimeEqual("abc", "abd"))
	assert.False(t, ConstantTimeEqual("abc", "abcd"))
	assert.True(t, ConstantTimeEqual("", ""))
}
