package sweep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncedIndexMaterializes(t *testing.T) {
	a, err := New(WithShape(5))
	require.NoError(t, err)

	idx, err := a.SyncedIndex()
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
	assert.NotNil(t, a.Values(), "first access initializes the buffer")

	// Stable on repeat access.
	idx, err = a.SyncedIndex()
	require.NoError(t, err)
	assert.Equal(t, -1, idx)
}

func TestGetChangesNone(t *testing.T) {
	a := newInitialized(t, 5)

	ch, err := a.GetChanges(-1)
	require.NoError(t, err)
	assert.Nil(t, ch, "untouched array has no changes")
}

func TestGetChangesFromSaveCursor(t *testing.T) {
	a := newFullyModified(t, 10)
	a.MarkSaved(9) // modified range now empty, save cursor at 9

	ch, err := a.GetChanges(4)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, 5, ch.Start)
	assert.Equal(t, 9, ch.Stop)
	assert.Equal(t, []float64{5, 6, 7, 8, 9}, ch.Values)
}

func TestGetChangesFromModifiedRange(t *testing.T) {
	a := newInitialized(t, 10)
	require.NoError(t, a.SetScalar(7, 7))

	ch, err := a.GetChanges(-1)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, 0, ch.Start)
	assert.Equal(t, 7, ch.Stop)
	assert.Len(t, ch.Values, 8)
	assert.Equal(t, 7.0, ch.Values[7])
}

func TestGetChangesCaughtUp(t *testing.T) {
	a := newFullyModified(t, 10)

	ch, err := a.GetChanges(9)
	require.NoError(t, err)
	assert.Nil(t, ch)
}

func TestApplyChangesRoundTrip(t *testing.T) {
	producer := newFullyModified(t, 10)
	producer.MarkSaved(9)

	consumer, err := New(WithShape(10))
	require.NoError(t, err)

	since, err := consumer.SyncedIndex()
	require.NoError(t, err)
	assert.Equal(t, -1, since)

	// First pull: pretend the consumer had already seen index 4.
	ch, err := producer.GetChanges(4)
	require.NoError(t, err)
	require.NotNil(t, ch)

	require.NoError(t, consumer.ApplyChanges(ch.Start, ch.Stop, ch.Values))

	for i := 5; i <= 9; i++ {
		v, err := consumer.Get(i)
		require.NoError(t, err)
		assert.Equal(t, float64(i), v)
	}
	for i := 0; i < 5; i++ {
		v, err := consumer.Get(i)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v), "undelivered slot %d stays NaN", i)
	}

	idx, err := consumer.SyncedIndex()
	require.NoError(t, err)
	assert.Equal(t, 9, idx, "sync cursor advances to the run's stop")
}

func TestApplyChangesMultiDim(t *testing.T) {
	consumer := newInitialized(t, 2, 3)

	require.NoError(t, consumer.ApplyChanges(2, 4, []float64{20, 30, 40}))

	// Flat 2 is (0,2); flat 4 is (1,1).
	v, err := consumer.Get(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)
	v, err = consumer.Get(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, v)
}

func TestApplyChangesErrors(t *testing.T) {
	a := newInitialized(t, 5)

	err := a.ApplyChanges(0, 2, []float64{1})
	require.ErrorIs(t, err, ErrShapeMismatch, "value count must match the run")

	err = a.ApplyChanges(3, 6, []float64{1, 2, 3, 4})
	require.Error(t, err, "run beyond the buffer is rejected")

	uninit, err := New(WithShape(5))
	require.NoError(t, err)
	err = uninit.ApplyChanges(0, 0, []float64{1})
	require.ErrorIs(t, err, ErrUninitialized)
}
