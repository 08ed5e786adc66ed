package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokedata/internal/provider/home"
)

func TestResolveDoublesPicksLatestSeason(t *testing.T) {
	body := []byte(`{"list":{
		"9":  {"10091":{"cId":"old","rst":0,"ts2":111,"rule":1}},
		"10": {"10101":{"cId":"single","rst":0,"ts2":222,"rule":0},
		       "10102":{"cId":"double","rst":0,"ts2":333,"rule":1},
		       "10103":{"cId":"later-double","rst":0,"ts2":444,"rule":1}}
	}}`)

	l, err := ParseListing(body)
	require.NoError(t, err)

	d, err := l.ResolveDoubles()
	require.NoError(t, err)
	assert.Equal(t, home.Descriptor{CompetitionID: "double", ResultSetID: "0", Timestamp: "333"}, d)
}

func TestResolveDoublesComparesSeasonsNumerically(t *testing.T) {
	// "9" sorts after "10" as a string; the numeric maximum must win.
	body := []byte(`{"list":{"10":{"a":{"cId":"ten","rst":1,"ts2":1,"rule":1}},"9":{"a":{"cId":"nine","rst":1,"ts2":1,"rule":1}}}}`)
	l, err := ParseListing(body)
	require.NoError(t, err)

	d, err := l.ResolveDoubles()
	require.NoError(t, err)
	assert.Equal(t, "ten", d.CompetitionID)
}

func TestResolveDoublesNoDoublesSlot(t *testing.T) {
	body := []byte(`{"list":{
		"9":  {"a":{"cId":"old","rst":0,"ts2":1,"rule":1}},
		"10": {"a":{"cId":"single","rst":0,"ts2":2,"rule":0}}
	}}`)
	l, err := ParseListing(body)
	require.NoError(t, err)

	_, err = l.ResolveDoubles()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveDoublesRuleMustBeNumeric(t *testing.T) {
	body := []byte(`{"list":{"1":{"a":{"cId":"x","rst":0,"ts2":1,"rule":"1"}}}}`)
	l, err := ParseListing(body)
	require.NoError(t, err)

	_, err = l.ResolveDoubles()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveDoublesEmptyListing(t *testing.T) {
	for name, body := range map[string]string{
		"no list":    `{}`,
		"null list":  `{"list":null}`,
		"empty list": `{"list":{}}`,
	} {
		t.Run(name, func(t *testing.T) {
			l, err := ParseListing([]byte(body))
			require.NoError(t, err)
			_, err = l.ResolveDoubles()
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestParseListingSkipsNonNumericSeasons(t *testing.T) {
	body := []byte(`{"list":{"beta":{"a":{"cId":"b","rule":1}},"3":{"a":{"cId":"c","rst":"r","ts2":"t","rule":1}}}}`)
	l, err := ParseListing(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"beta"}, l.Skipped)
	require.Len(t, l.Seasons, 1)

	d, err := l.ResolveDoubles()
	require.NoError(t, err)
	assert.Equal(t, home.Descriptor{CompetitionID: "c", ResultSetID: "r", Timestamp: "t"}, d)
}

func TestParseListingInvalidJSON(t *testing.T) {
	_, err := ParseListing([]byte(`{"list":`))
	assert.Error(t, err)
}
