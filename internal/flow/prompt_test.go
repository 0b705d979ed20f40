package flow

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter_Select(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("1\r\n"), &out)

	got, err := p.Select("Select your station", []string{"wlan0", "wlan1"})
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.Equal(t, "0: wlan0\n1: wlan1\nSelect your station: ", out.String())
}

func TestLinePrompter_Input(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("\nhunter2\n  spaced  \ntail"), &out)

	got, err := p.Input("Is there a password? Y/n", false)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	// Not a terminal, so the secret is read as a plain line.
	got, err = p.Input("Password", true)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)

	got, err = p.Input("Label", false)
	require.NoError(t, err)
	assert.Equal(t, "  spaced  ", got)

	// A last line without a newline is still an answer.
	got, err = p.Input("Label", false)
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = p.Input("Label", false)
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Is there a password? Y/n: Password: Label: Label: Label: ", out.String())
}

func TestLinePrompter_SecretTypedAhead(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("0\nhunter2\n"), &out)
	// Pretend the input is a terminal; a real read from this fd would fail.
	p.fd = 1 << 20

	got, err := p.Input("Select your network", false)
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	// The rest of the input was buffered with the first line.
	got, err = p.Input("Password", true)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}
