package gtfsrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedGroupForStop(t *testing.T) {
	cases := map[string]string{
		"127N":  "MAIN",
		"631S":  "MAIN",
		"725N":  "MAIN",
		"A41N":  "ACE",
		"E01S":  "ACE",
		"D21N":  "BDFM",
		"F18S":  "BDFM",
		"G22N":  "G",
		"J27N":  "JZ",
		"Z01S":  "JZ",
		"R16N":  "NQRW",
		"Q05S":  "NQRW",
		"L14N":  "L",
		"S09N":  "SI",
		"H04S":  "SI",
		"l14n":  "L", // case-insensitive
		"":      "MAIN",
		"X99":   "MAIN", // unknown designator falls back to the main feed
	}
	for stopID, want := range cases {
		assert.Equal(t, want, FeedGroupForStop(stopID), "stop %q", stopID)
	}
}

func TestResolveFeedURL(t *testing.T) {
	url, err := ResolveFeedURL("L")
	require.NoError(t, err)
	assert.Equal(t, feedBase+"-l", url)

	url, err = ResolveFeedURL(" main ")
	require.NoError(t, err)
	assert.Equal(t, feedBase, url)

	_, err = ResolveFeedURL("XYZ")
	assert.Error(t, err)
	_, err = ResolveFeedURL("")
	assert.Error(t, err)
}

func TestResolverCoversEveryGroup(t *testing.T) {
	for _, stopID := range []string{"127N", "A41N", "D21N", "G22N", "J27N", "R16N", "L14N", "S09N"} {
		url, err := Resolver{}.FeedURL(stopID)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
	}
}
