package compact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Require func(t *testing.T, parts []string, err error)
	}{
		{
			Name:  "three parts",
			Input: "aaa.bbb.ccc",
			Require: func(t *testing.T, parts []string, err error) {
				require.NoError(t, err)
				require.Equal(t, []string{"aaa", "bbb", "ccc"}, parts)
			},
		},
		{
			Name:  "four parts",
			Input: "aaa.bbb.ccc.ddd",
			Require: func(t *testing.T, parts []string, err error) {
				require.NoError(t, err)
				require.Equal(t, []string{"aaa", "bbb", "ccc", "ddd"}, parts)
			},
		},
		{
			Name:  "empty segments are preserved",
			Input: "aaa.bbb.",
			Require: func(t *testing.T, parts []string, err error) {
				require.NoError(t, err)
				require.Equal(t, []string{"aaa", "bbb", ""}, parts)
			},
		},
		{
			Name:  "all empty segments",
			Input: "...",
			Require: func(t *testing.T, parts []string, err error) {
				require.NoError(t, err)
				require.Equal(t, []string{"", "", "", ""}, parts)
			},
		},
		{
			Name:  "too few delimiters",
			Input: "aaa.bbb",
			Require: func(t *testing.T, parts []string, err error) {
				require.ErrorIs(t, err, ErrInvalidSerialization)
				require.Nil(t, parts)
			},
		},
		{
			Name:  "no delimiters",
			Input: "aaa",
			Require: func(t *testing.T, parts []string, err error) {
				require.ErrorIs(t, err, ErrInvalidSerialization)
			},
		},
		{
			Name:  "too many delimiters",
			Input: "a.b.c.d.e",
			Require: func(t *testing.T, parts []string, err error) {
				require.ErrorIs(t, err, ErrInvalidSerialization)
			},
		},
		{
			Name:  "empty input",
			Input: "",
			Require: func(t *testing.T, parts []string, err error) {
				require.ErrorIs(t, err, ErrInvalidSerialization)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			parts, err := Split(test.Input)
			test.Require(t, parts, err)
		})
	}
}

func TestJoin(t *testing.T) {
	require.Equal(t, "a.b.c", Join("a", "b", "c"))
	require.Equal(t, "a.b.c.d", Join("a", "b", "c", "d"))
	require.Equal(t, "a.b.", Join("a", "b", ""))
}
