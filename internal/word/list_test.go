package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got := Parse([]byte("CRANE\n slate \nhouse\ntoolong\nab1de\ntiny\n\n"), 5)
	assert.Equal(t, []string{"crane", "slate", "house"}, got)
}

func TestNewList(t *testing.T) {
	l, err := NewList([]string{"crane", "slate"}, []string{"adieu"}, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "crane", l.Answer(0))

	// Answers are always allowed; extras extend the guess set only.
	assert.True(t, l.IsAllowed("crane"))
	assert.True(t, l.IsAllowed("SLATE"))
	assert.True(t, l.IsAllowed("adieu"))
	assert.False(t, l.IsAllowed("mound"))
}

func TestNewListRejectsEmptyAnswers(t *testing.T) {
	_, err := NewList(nil, []string{"adieu"}, 5)
	assert.ErrorIs(t, err, ErrEmptyList)

	// Malformed answers are dropped, which can empty the list too.
	_, err = NewList([]string{"toolong", "ab1de"}, nil, 5)
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestRandomStaysInList(t *testing.T) {
	l, err := NewList([]string{"crane", "slate", "house"}, nil, 5)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.True(t, l.IsAllowed(l.Random()))
	}
}
