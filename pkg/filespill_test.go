package pkg

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spillRow struct {
	Name  string
	Count int
}

func TestFileSpill_AppendAndRange(t *testing.T) {
	spill, err := NewFileSpill[spillRow]("filespill-test-*.gob")
	require.NoError(t, err)

	defer func() { _ = spill.Close() }()

	rows := []spillRow{{"a", 1}, {"b", 2}, {"c", 3}}
	for _, row := range rows {
		require.NoError(t, spill.Append(row))
	}

	assert.Equal(t, uint64(3), spill.Len())

	var got []spillRow

	err = spill.Range(func(index uint64, item spillRow) error {
		assert.Equal(t, uint64(len(got)), index)
		got = append(got, item)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestFileSpill_EmptyRange(t *testing.T) {
	spill, err := NewFileSpill[spillRow]("filespill-test-*.gob")
	require.NoError(t, err)

	defer func() { _ = spill.Close() }()

	calls := 0
	require.NoError(t, spill.Range(func(uint64, spillRow) error {
		calls++
		return nil
	}))
	assert.Zero(t, calls)
}

func TestFileSpill_RangeStopsOnCallbackError(t *testing.T) {
	spill, err := NewFileSpill[spillRow]("filespill-test-*.gob")
	require.NoError(t, err)

	defer func() { _ = spill.Close() }()

	require.NoError(t, spill.Append(spillRow{"a", 1}))
	require.NoError(t, spill.Append(spillRow{"b", 2}))

	calls := 0
	err = spill.Range(func(uint64, spillRow) error {
		calls++
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestFileSpill_RangeIsRepeatable(t *testing.T) {
	spill, err := NewFileSpill[spillRow]("filespill-test-*.gob")
	require.NoError(t, err)

	defer func() { _ = spill.Close() }()

	require.NoError(t, spill.Append(spillRow{"a", 1}))

	for i := 0; i < 2; i++ {
		count := 0
		require.NoError(t, spill.Range(func(uint64, spillRow) error {
			count++
			return nil
		}))
		assert.Equal(t, 1, count)
	}
}

func TestFileSpill_CloseRemovesBackingFile(t *testing.T) {
	spill, err := NewFileSpill[spillRow]("filespill-test-*.gob")
	require.NoError(t, err)

	path := spill.Path()
	require.FileExists(t, path)

	require.NoError(t, spill.Close())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Closing twice is a no-op.
	assert.NoError(t, spill.Close())
}
