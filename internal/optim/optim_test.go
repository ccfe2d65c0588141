package optim_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/optim"
)

func scalarParam(name string, value, grad float64) *nn.Parameter {
	p := nn.NewParameter(name, mat.NewDense(1, 1, []float64{value}))
	p.Grad().Set(0, 0, grad)
	return p
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	param := scalarParam("x", 2.0, 1.0)
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	opt.Step([]*nn.Parameter{param})

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	assert.InDelta(t, 1.9, param.Value().At(0, 0), 1e-12)
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	param := scalarParam("x", 1.0, 1.0)
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	params := []*nn.Parameter{param}

	// v_1 = 0.9 * 0 - 0.1 * 1.0 = -0.1
	// x_1 = 1.0 - 0.1 = 0.9
	opt.Step(params)
	assert.InDelta(t, 0.9, param.Value().At(0, 0), 1e-12)

	// v_2 = 0.9 * -0.1 - 0.1 * 1.0 = -0.19
	// x_2 = 0.9 - 0.19 = 0.71
	opt.Step(params)
	assert.InDelta(t, 0.71, param.Value().At(0, 0), 1e-12)

	// After Reset the buffer starts from zero again.
	opt.Reset()
	opt.Step(params)
	assert.InDelta(t, 0.61, param.Value().At(0, 0), 1e-12)
}

func TestSGD_MatrixParameter(t *testing.T) {
	p := nn.NewParameter("w", mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	p.Grad().Copy(mat.NewDense(2, 2, []float64{1, -1, 0, 2}))

	opt := optim.NewSGD(optim.SGDConfig{LR: 0.5})
	opt.Step([]*nn.Parameter{p})

	want := mat.NewDense(2, 2, []float64{0.5, 2.5, 3, 3})
	assert.True(t, mat.EqualApprox(want, p.Value(), 1e-12))
}

func TestSGD_Config(t *testing.T) {
	opt := optim.NewSGD(optim.SGDConfig{})
	assert.Equal(t, 0.01, opt.GetLR())

	opt.SetLR(0.2)
	assert.Equal(t, 0.2, opt.GetLR())

	err := optim.SGDConfig{LR: 0.1, Momentum: 1}.Validate()
	assert.True(t, errors.Is(err, nn.ErrInvalidConfiguration))
	err = optim.SGDConfig{LR: -1}.Validate()
	assert.True(t, errors.Is(err, nn.ErrInvalidConfiguration))
	assert.NoError(t, optim.SGDConfig{LR: 0.1, Momentum: 0.5}.Validate())

	var _ optim.Optimizer = opt
}

func TestSGD_StateDict(t *testing.T) {
	param := scalarParam("x", 1.0, 1.0)
	params := []*nn.Parameter{param}
	opt := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	opt.Step(params)

	state := opt.StateDict(params)
	require.Contains(t, state, "velocity.0")
	assert.InDelta(t, -0.1, state["velocity.0"].At(0, 0), 1e-12)

	other := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, other.LoadStateDict(params, state))

	// Both optimizers now take the same second step.
	clone := scalarParam("x", param.Value().At(0, 0), 1.0)
	opt.Step(params)
	require.NoError(t, other.LoadStateDict([]*nn.Parameter{clone}, state))
	other.Step([]*nn.Parameter{clone})
	assert.InDelta(t, param.Value().At(0, 0), clone.Value().At(0, 0), 1e-12)

	bad := map[string]*mat.Dense{"velocity.0": mat.NewDense(2, 1, nil)}
	err := other.LoadStateDict(params, bad)
	assert.True(t, errors.Is(err, nn.ErrShapeMismatch))
}
