package dataset

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/ffnn/internal/nn"
)

func TestSine(t *testing.T) {
	d, err := Sine(100, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 100, d.Samples())
	assert.Equal(t, 1, d.Features())
	assert.Equal(t, 1, d.Outputs())
	for j := 0; j < d.Samples(); j++ {
		assert.Equal(t, math.Sin(d.X.At(0, j)), d.Y.At(0, j))
	}

	_, err = Sine(0, rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, nn.ErrInvalidConfiguration))
}

func TestSine_Seeded(t *testing.T) {
	a, err := Sine(10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Sine(10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.X, b.X))
}

func TestLine(t *testing.T) {
	d, err := Line(50, 2, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	for j := 0; j < d.Samples(); j++ {
		x := d.X.At(0, j)
		assert.GreaterOrEqual(t, x, -1.0)
		assert.Less(t, x, 1.0)
		assert.InDelta(t, 2*x+1, d.Y.At(0, j), 1e-15)
	}
}

func TestFranke(t *testing.T) {
	d, err := Franke(200, 0, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Features())
	assert.Equal(t, 1, d.Outputs())
	for j := 0; j < d.Samples(); j++ {
		x, y := d.X.At(0, j), d.X.At(1, j)
		assert.True(t, x >= 0 && x < 1 && y >= 0 && y < 1)
		assert.Equal(t, FrankeFunction(x, y), d.Y.At(0, j))
	}

	noisy, err := Franke(200, 0.1, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.False(t, mat.Equal(d.Y, noisy.Y))

	_, err = Franke(10, -1, rand.New(rand.NewSource(3)))
	assert.True(t, errors.Is(err, nn.ErrInvalidConfiguration))
}

func TestFrankeFunction(t *testing.T) {
	// Reference values of the closed form.
	assert.InDelta(t, 0.7664206, FrankeFunction(0, 0), 1e-6)
	assert.InDelta(t, 0.0, FrankeFunction(1, 1), 1e-1)
}

func TestNew(t *testing.T) {
	_, err := New(mat.NewDense(2, 3, nil), mat.NewDense(1, 4, nil))
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))

	d, err := New(mat.NewDense(2, 3, nil), mat.NewDense(1, 3, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Samples())
	assert.False(t, d.Empty())
	assert.True(t, Dataset{}.Empty())
}

func TestSplit(t *testing.T) {
	x := mat.NewDense(1, 20, nil)
	y := mat.NewDense(1, 20, nil)
	for j := 0; j < 20; j++ {
		x.Set(0, j, float64(j))
		y.Set(0, j, float64(-j))
	}
	d, err := New(x, y)
	require.NoError(t, err)

	s, err := Split(d, 0.7, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 14, s.Train.Samples())
	assert.Equal(t, 2, s.Validation.Samples())
	assert.Equal(t, 4, s.Test.Samples())

	// Blocks are consecutive and keep feature/target pairs aligned.
	assert.Equal(t, 0.0, s.Train.X.At(0, 0))
	assert.Equal(t, 14.0, s.Validation.X.At(0, 0))
	assert.Equal(t, 16.0, s.Test.X.At(0, 0))
	assert.Equal(t, -16.0, s.Test.Y.At(0, 0))

	noVal, err := Split(d, 0.5, 0)
	require.NoError(t, err)
	assert.True(t, noVal.Validation.Empty())
	assert.Equal(t, 10, noVal.Test.Samples())
}

func TestSplit_Invalid(t *testing.T) {
	d, err := New(mat.NewDense(1, 3, nil), mat.NewDense(1, 3, nil))
	require.NoError(t, err)

	for _, tc := range [][2]float64{{0, 0.1}, {0.9, 0.1}, {0.5, -0.1}, {0.2, 0}} {
		_, err := Split(d, tc[0], tc[1])
		assert.True(t, errors.Is(err, nn.ErrInvalidConfiguration), "%v", tc)
	}
}

func TestReadCSV(t *testing.T) {
	input := `# Franke samples
x0, x1, z
0.1, 0.2, 0.3
0.4, 0.5, 0.6
`
	d, err := ReadCSV(strings.NewReader(input), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Samples())
	assert.Equal(t, 2, d.Features())
	assert.Equal(t, 1, d.Outputs())
	assert.Equal(t, 0.4, d.X.At(0, 1))
	assert.Equal(t, 0.5, d.X.At(1, 1))
	assert.Equal(t, 0.6, d.Y.At(0, 1))

	twoTargets, err := ReadCSV(strings.NewReader("1,2,3\n4,5,6\n"), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, twoTargets.Features())
	assert.Equal(t, 2, twoTargets.Outputs())
	assert.Equal(t, 6.0, twoTargets.Y.At(1, 1))
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		targets int
		is      error
	}{
		{"no targets", "1,2\n", 0, nn.ErrInvalidConfiguration},
		{"header only", "a,b\n", 1, nn.ErrShapeMismatch},
		{"no features", "1,2\n", 2, nn.ErrShapeMismatch},
		{"bad number", "1,2\n3,x\n", 1, nil},
		{"ragged", "1,2\n3,4,5\n", 1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), tt.targets)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4\n5,6\n"), 0o600))

	d, err := LoadCSV(path, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Samples())
	assert.Equal(t, 6.0, d.Y.At(0, 2))

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), 1)
	assert.Error(t, err)
}

func TestStandardizer(t *testing.T) {
	X := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		5, 5, 5, 5,
	})
	s := FitStandardizer(X)
	assert.Equal(t, 2.5, s.Mean[0])
	assert.Equal(t, 1.0, s.Std[1], "zero variance keeps unit scale")

	out, err := s.Transform(X)
	require.NoError(t, err)
	assert.InDelta(t, 0, stat.Mean(out.RawRowView(0), nil), 1e-12)
	assert.InDelta(t, 1, stat.StdDev(out.RawRowView(0), nil), 1e-12)
	assert.Equal(t, []float64{0, 0, 0, 0}, out.RawRowView(1))

	back, err := s.Inverse(out)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))

	_, err = s.Transform(mat.NewDense(3, 1, nil))
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))
}
