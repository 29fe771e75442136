package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNestSelfSetpoint(t *testing.T) {
	a, err := New(WithName("x"), AsSetpoint())
	require.NoError(t, err)

	ret, err := a.Nest(5)
	require.NoError(t, err)
	assert.Same(t, a, ret, "Nest returns the array for chaining")

	assert.Equal(t, []int{5}, a.Shape())

	ids := a.SetArrayIDs()
	require.Len(t, ids, 1)
	assert.Equal(t, a.ArrayID(), ids[0], "a setpoint array references itself")
}

func TestNestOrderOutermostLast(t *testing.T) {
	inner, err := New(WithName("x"), AsSetpoint())
	require.NoError(t, err)
	_, err = inner.Nest(3)
	require.NoError(t, err)

	outer, err := New(WithName("y"), AsSetpoint())
	require.NoError(t, err)
	_, err = outer.Nest(4)
	require.NoError(t, err)

	measured, err := New(WithName("signal"))
	require.NoError(t, err)
	_, err = measured.NestWith(3, 0, inner)
	require.NoError(t, err)
	_, err = measured.NestWith(4, 1, outer)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 3}, measured.Shape())
	assert.Equal(t, []string{outer.ArrayID(), inner.ArrayID()}, measured.SetArrayIDs())
	assert.Equal(t, []int{1, 0}, measured.ActionIndices())
}

func TestNestBareSetpointAlreadyNested(t *testing.T) {
	a, err := New(WithName("x"), AsSetpoint())
	require.NoError(t, err)
	_, err = a.Nest(3)
	require.NoError(t, err)

	_, err = a.Nest(4)
	require.ErrorIs(t, err, ErrInvalidNesting,
		"an already-nested array cannot become a bare setpoint")
}

func TestNestAfterInitNotPreset(t *testing.T) {
	a, err := New(WithName("v"), WithShape(3))
	require.NoError(t, err)
	require.NoError(t, a.InitData())

	_, err = a.Nest(2)
	require.ErrorIs(t, err, ErrInvalidNesting)
}

func TestNestPresetBroadcast(t *testing.T) {
	a, err := New(WithName("x"), WithPresetData([]float64{1, 2, 3}, nil))
	require.NoError(t, err)

	_, err = a.Nest(2)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, []float64{1, 2, 3, 1, 2, 3}, a.Values(),
		"preset data is copied into every outer slice")

	r, ok := a.ModifiedRange()
	require.True(t, ok)
	assert.Equal(t, Range{Low: 0, High: 5}, r, "whole buffer marked modified")
}

func TestNestPresetBroadcastTwice(t *testing.T) {
	sp, err := New(WithName("outer"), AsSetpoint())
	require.NoError(t, err)
	_, err = sp.Nest(2)
	require.NoError(t, err)

	sp2, err := New(WithName("outer2"), AsSetpoint())
	require.NoError(t, err)
	_, err = sp2.Nest(2)
	require.NoError(t, err)

	a, err := New(WithName("x"), WithPresetData([]float64{7, 8}, nil))
	require.NoError(t, err)
	_, err = a.NestWith(2, 0, sp)
	require.NoError(t, err)
	_, err = a.NestWith(2, 0, sp2)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 2, 2}, a.Shape())
	assert.Equal(t, []float64{7, 8, 7, 8, 7, 8, 7, 8}, a.Values())
}

func TestNestInvalidSize(t *testing.T) {
	a, err := New(WithName("x"))
	require.NoError(t, err)

	_, err = a.Nest(0)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNestWithNilSetArrayRecordsAction(t *testing.T) {
	a, err := New(WithName("x"), AsSetpoint())
	require.NoError(t, err)

	_, err = a.NestWith(5, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{3}, a.ActionIndices())
	assert.Equal(t, []string{a.ArrayID()}, a.SetArrayIDs())
}
