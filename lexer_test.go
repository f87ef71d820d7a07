package rcs_test

import (
	"testing"

	rcs "github.com/bcohen/editrcs"
	"github.com/stretchr/testify/require"
)

func TestLexerTokens(t *testing.T) {
	l := rcs.NewLexer([]byte("head\t1.3;\n"), 0)
	ok, err := l.GetKeyword("head", true)
	require.NoError(t, err)
	require.True(t, ok)

	num, ok, err := l.GetNum(true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1.3", num)

	ok, err = l.GetSemicolon(true)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLexerAtString(t *testing.T) {
	l := rcs.NewLexer([]byte("@hello @@world@@!@"), 0)
	s, ok, err := l.GetString(true)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello @world@!", s)
}

func TestLexerUnterminatedString(t *testing.T) {
	l := rcs.NewLexer([]byte("@unterminated"), 0)
	_, _, err := l.GetString(true)
	require.Error(t, err)
	require.True(t, rcs.IsLexError(err))
}

func TestLexerMaxStringBytes(t *testing.T) {
	l := rcs.NewLexer([]byte("@toolong@"), 4)
	_, _, err := l.GetString(true)
	require.Error(t, err)
	require.True(t, rcs.IsLexError(err))
}
