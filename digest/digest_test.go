package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		in   string
		want string
	}{
		{"md5 empty", MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"md5 abc", MD5, "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha1 abc", SHA1, "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha256 abc", SHA256, "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha3 abc", SHA3256, "abc", "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{"blake2b abc", BLAKE2b256, "abc", "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
		{"xxhash empty", XXHash64, "", "ef46db3751d8e999"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.f(tc.in))
		})
	}
}

func TestHash160(t *testing.T) {
	d := Hash160("testkey1")
	assert.Len(t, d, 40)
	_, err := hex.DecodeString(d)
	assert.NoError(t, err)
	assert.Equal(t, d, Hash160("testkey1"))
	assert.NotEqual(t, d, Hash160("testkey2"))
}

func TestXXHash64_FixedWidth(t *testing.T) {
	for _, k := range []string{"a", "b", "testkey1", "testkey9999"} {
		assert.Len(t, XXHash64(k), 16, "key %q", k)
	}
}

func TestBase58SHA256(t *testing.T) {
	d := Base58SHA256("abc")
	raw, err := base58.Decode(d)
	require.NoError(t, err)
	sum := sha256.Sum256([]byte("abc"))
	assert.Equal(t, sum[:], raw)
	assert.NotContains(t, d, "/")
}

// --- Lookup tests ---

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		f, err := Lookup(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, f("testkey"), name)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("crc32")
	assert.ErrorIs(t, err, ErrUnknownHash)
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "md5")
}
