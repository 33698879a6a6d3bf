package hash_test

import (
	"strings"
	"testing"

	"github.com/keshon/dircmp/internal/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		want    hash.Algorithm
		wantErr bool
	}{
		{"", hash.XXH3, false},
		{"xxh3", hash.XXH3, false},
		{"sha256", hash.SHA256, false},
		{"md5", "", true},
		{"XXH3", "", true},
	}

	for _, tt := range cases {
		got, err := hash.Parse(tt.name)
		if tt.wantErr {
			assert.Error(t, err, "Parse(%q)", tt.name)
			continue
		}
		require.NoError(t, err, "Parse(%q)", tt.name)
		assert.Equal(t, tt.want, got)
	}
}

func TestSHA256KnownVector(t *testing.T) {
	const abc = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	got, err := hash.SHA256.SumBytes([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, abc, got)

	streamed, n, err := hash.SHA256.SumReader(strings.NewReader("abc"))
	require.NoError(t, err)
	assert.Equal(t, abc, streamed)
	assert.EqualValues(t, 3, n)
}

func TestStreamingMatchesOneShot(t *testing.T) {
	payload := strings.Repeat("dircmp fingerprint ", 10_000)

	for _, algo := range hash.Supported() {
		oneShot, err := algo.SumBytes([]byte(payload))
		require.NoError(t, err)

		streamed, n, err := algo.SumReader(strings.NewReader(payload))
		require.NoError(t, err)

		assert.Equal(t, oneShot, streamed, "algorithm %s", algo)
		assert.EqualValues(t, len(payload), n)
	}
}

func TestFingerprintShape(t *testing.T) {
	lengths := map[hash.Algorithm]int{hash.XXH3: 32, hash.SHA256: 64}

	for algo, want := range lengths {
		fp, err := algo.SumBytes([]byte("content A"))
		require.NoError(t, err)
		assert.Len(t, fp, want)
		assert.Equal(t, strings.ToLower(fp), fp)

		other, err := algo.SumBytes([]byte("content B"))
		require.NoError(t, err)
		assert.NotEqual(t, fp, other, "algorithm %s", algo)
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	bogus := hash.Algorithm("crc1")

	_, err := bogus.New()
	assert.Error(t, err)

	_, err = bogus.SumBytes(nil)
	assert.Error(t, err)

	_, _, err = bogus.SumReader(strings.NewReader("x"))
	assert.Error(t, err)
}
