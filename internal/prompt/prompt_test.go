package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskTrimsInput(t *testing.T) {
	p := New(strings.NewReader("  hello  \n"), &bytes.Buffer{})
	got, err := p.Ask("question")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestChooseAcceptsExactMatch(t *testing.T) {
	p := New(strings.NewReader("Globex\n"), &bytes.Buffer{})
	got, err := p.Choose("pick", []string{"Acme", "Globex"})
	require.NoError(t, err)
	assert.Equal(t, "Globex", got)
}

func TestChooseRefusesUnlistedName(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(strings.NewReader("Umbrella\nAcme\n"), out)

	got, err := p.Choose("pick", []string{"Acme", "Globex"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", got, "an unlisted name must be refused, never silently mapped")
	assert.Contains(t, out.String(), `"Umbrella" is not one of the available choices`)
}

func TestChooseErrorsOnEOF(t *testing.T) {
	p := New(strings.NewReader("Umbrella\n"), &bytes.Buffer{})
	_, err := p.Choose("pick", []string{"Acme"})
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tc := range cases {
		p := New(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := p.Confirm("sure?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestAskSecretFallsBackWithoutTerminal(t *testing.T) {
	p := New(strings.NewReader("s3cret\n"), &bytes.Buffer{})
	got, err := p.AskSecret("key")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}
