package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	oldRead, oldIs := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldIs })
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	if err == nil {
		t.Fatal("expected EOF error on empty input")
	}
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)

	var out bytes.Buffer
	pw, err := GetPassword(rdr("ignored\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), &out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPassword_Piped(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	var out bytes.Buffer
	pw, err := GetPassword(rdr("  spaced pw \r\nrest\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("  spaced pw "), pw)

	_, err = GetPassword(rdr(""), &out)
	require.Error(t, err)
}
