package preprocessing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/nbayes/preprocessing"
)

func TestBinarizer_Transform(t *testing.T) {
	X := mat.NewDense(2, 3, []float64{
		0, 3, -1,
		2, 0, 0.5,
	})

	got, err := preprocessing.NewBinarizer().Transform(X)
	require.NoError(t, err)

	want := mat.NewDense(2, 3, []float64{
		0, 1, 1,
		1, 0, 1,
	})
	assert.True(t, mat.Equal(want, got))
	assert.Equal(t, 3.0, X.At(0, 1), "input must not be modified")
}

func TestBinarizer_PresenceAbsence(t *testing.T) {
	X := mat.NewDense(1, 2, []float64{4, 0})

	got, err := preprocessing.NewBinarizer().PresenceAbsence(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDense(1, 4, []float64{1, 0, 0, 1}), got))
}

func TestBinarizer_Empty(t *testing.T) {
	_, err := preprocessing.NewBinarizer().Transform(&mat.Dense{})
	assert.Error(t, err)
}
