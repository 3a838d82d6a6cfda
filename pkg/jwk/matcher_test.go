package jwk

import (
	"testing"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
	"github.com/stretchr/testify/require"
)

func testSet(t *testing.T) *Set {
	t.Helper()

	signing, err := NewOct(base64.Encode([]byte("signing-key-bytes"))).
		KeyID("1").
		Use(UseSignature).
		Algorithm(jwa.HS256.Algorithm).
		Build()
	require.NoError(t, err)

	encryption, err := NewOct(base64.Encode([]byte("encryption-key-bytes"))).
		KeyID("2").
		Use(UseEncryption).
		Build()
	require.NoError(t, err)

	ec, err := NewEC(jwa.P256,
		"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4",
		"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM").
		KeyID("3").
		Operations(OpVerify).
		Build()
	require.NoError(t, err)

	return NewSet(signing, encryption, ec)
}

func TestMatcherCriteria(t *testing.T) {
	set := testSet(t)

	tests := []struct {
		Name    string
		Matcher *Matcher
		KeyIDs  []string
	}{
		{
			Name:    "no criteria matches everything",
			Matcher: NewMatcher(),
			KeyIDs:  []string{"1", "2", "3"},
		},
		{
			Name:    "by key type",
			Matcher: NewMatcher(WithKeyTypes(jwa.EC)),
			KeyIDs:  []string{"3"},
		},
		{
			Name:    "by use",
			Matcher: NewMatcher(WithUses(UseSignature)),
			KeyIDs:  []string{"1"},
		},
		{
			Name: "use sentinel matches keys without a use",
			// The EC key declares no use at all.
			Matcher: NewMatcher(WithUses(UseSignature, UseUnspecified)),
			KeyIDs:  []string{"1", "3"},
		},
		{
			Name:    "by algorithm",
			Matcher: NewMatcher(WithAlgorithms(jwa.HS256.Algorithm)),
			KeyIDs:  []string{"1"},
		},
		{
			Name:    "algorithm sentinel matches keys without an alg",
			Matcher: NewMatcher(WithAlgorithms(jwa.Algorithm{})),
			KeyIDs:  []string{"2", "3"},
		},
		{
			Name:    "by key id",
			Matcher: NewMatcher(WithKeyIDs("2", "3")),
			KeyIDs:  []string{"2", "3"},
		},
		{
			Name:    "by operation",
			Matcher: NewMatcher(WithOperations(OpVerify)),
			KeyIDs:  []string{"3"},
		},
		{
			Name:    "operation sentinel matches keys without key_ops",
			Matcher: NewMatcher(WithOperations(OpUnspecified)),
			KeyIDs:  []string{"1", "2"},
		},
		{
			Name:    "by curve",
			Matcher: NewMatcher(WithCurves(jwa.P256)),
			KeyIDs:  []string{"3"},
		},
		{
			Name:    "curve criterion never matches non-EC keys",
			Matcher: NewMatcher(WithCurves(jwa.P256, jwa.P384)),
			KeyIDs:  []string{"3"},
		},
		{
			Name:    "conjunction of criteria",
			Matcher: NewMatcher(WithKeyTypes(jwa.Oct), WithUses(UseSignature)),
			KeyIDs:  []string{"1"},
		},
		{
			Name:    "no match is empty, not an error",
			Matcher: NewMatcher(WithKeyIDs("nope")),
			KeyIDs:  []string{},
		},
		{
			Name:    "private only",
			Matcher: NewMatcher(PrivateOnly()),
			KeyIDs:  []string{"1", "2"},
		},
		{
			Name:    "public only",
			Matcher: NewMatcher(PublicOnly()),
			KeyIDs:  []string{"3"},
		},
		{
			Name:    "private and public together match nothing",
			Matcher: NewMatcher(PrivateOnly(), PublicOnly()),
			KeyIDs:  []string{},
		},
		{
			Name:    "by minimum size",
			Matcher: NewMatcher(WithMinSize(256)),
			KeyIDs:  []string{"3"},
		},
		{
			Name:    "by maximum size",
			Matcher: NewMatcher(WithMaxSize(160)),
			KeyIDs:  []string{"1", "2"},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			selected := test.Matcher.Select(set)

			kids := make([]string, 0, len(selected))
			for _, key := range selected {
				kids = append(kids, key.KeyID())
			}
			require.Equal(t, test.KeyIDs, kids)
		})
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	set := testSet(t)

	selected := NewMatcher(WithKeyIDs("3", "1")).Select(set)
	require.Len(t, selected, 2)
	require.Equal(t, "1", selected[0].KeyID())
	require.Equal(t, "3", selected[1].KeyID())
}

func TestMatchesSingleKey(t *testing.T) {
	key, err := NewOct(base64.Encode([]byte("key-bytes"))).
		KeyID("1").
		Use(UseSignature).
		Build()
	require.NoError(t, err)

	require.True(t, NewMatcher(WithUses(UseSignature)).Matches(key))
	require.False(t, NewMatcher(WithUses(UseEncryption)).Matches(key))
	require.True(t, NewMatcher().Matches(key))
}
