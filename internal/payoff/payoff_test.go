package payoff

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchedule(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNextReadsFirstColumn(t *testing.T) {
	s := NewReader(strings.NewReader("1,ignored\n3\n 0 ,x,y\n"))

	for _, want := range []int{1, 3, 0} {
		got, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 3, s.Position())

	_, err := s.Next()
	assert.ErrorIs(t, err, ErrScheduleExhausted)
}

func TestNextInvalidRow(t *testing.T) {
	for _, content := range []string{"abc\n", "-2\n", "1.5\n"} {
		s := NewReader(strings.NewReader(content))
		_, err := s.Next()
		assert.ErrorIs(t, err, ErrInvalidRow, "content %q", content)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := NewReader(strings.NewReader("4\n9\n"))

	for i := 0; i < 2; i++ {
		got, err := s.Peek()
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	}
	assert.Equal(t, 0, s.Position())

	got, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, 1, s.Position())

	got, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, 9, got)

	_, err = s.Peek()
	assert.ErrorIs(t, err, ErrScheduleExhausted)
}

func TestSkipConsumesPeekedRow(t *testing.T) {
	s := NewReader(strings.NewReader("1\n2\n3\n"))
	_, err := s.Peek()
	require.NoError(t, err)
	require.NoError(t, s.Skip(2))

	got, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestSkip(t *testing.T) {
	s := NewReader(strings.NewReader("1\n2\n3\n4\n"))
	require.NoError(t, s.Skip(2))
	got, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	assert.ErrorIs(t, s.Skip(5), ErrScheduleExhausted)
}

func TestSkipZero(t *testing.T) {
	s := NewReader(strings.NewReader("7\n"))
	require.NoError(t, s.Skip(0))
	got, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenPairResumes(t *testing.T) {
	safe := writeSchedule(t, "safe.csv", "1\n1\n1\n2\n")
	risky := writeSchedule(t, "risky.csv", "0\n0\n6\n0\n")

	p, err := OpenPair(safe, risky, 2)
	require.NoError(t, err)
	defer p.Close()

	n, err := p.Safe.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = p.Risky.Next()
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, safe, p.Safe.Path())
}

func TestOpenPairShortSchedule(t *testing.T) {
	safe := writeSchedule(t, "safe.csv", "1\n1\n1\n")
	risky := writeSchedule(t, "risky.csv", "0\n")

	_, err := OpenPair(safe, risky, 2)
	assert.ErrorIs(t, err, ErrScheduleExhausted)
}
