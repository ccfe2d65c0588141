package ffnn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/ffnn/internal/nn"
)

// Task selects the loss, the output activation and the evaluation metric.
type Task uint8

// Supported tasks.
const (
	// Regression trains an identity output on the halved MSE and is scored
	// with R².
	Regression Task = iota
	// Classification trains a sigmoid (one output) or softmax (several
	// outputs) output on cross-entropy and is scored with accuracy.
	Classification
)

// ParseTask resolves a task by name (case-insensitive).
func ParseTask(name string) (Task, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "regression":
		return Regression, nil
	case "classification":
		return Classification, nil
	default:
		return 0, errors.Wrapf(nn.ErrInvalidConfiguration, "unknown task %q", name)
	}
}

func (t Task) String() string {
	switch t {
	case Regression:
		return "regression"
	case Classification:
		return "classification"
	default:
		return fmt.Sprintf("Task(%d)", uint8(t))
	}
}

// Validate reports whether t is a supported task.
func (t Task) Validate() error {
	if t > Classification {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "unknown task %v", t)
	}
	return nil
}

// outputActivation returns the activation of the last layer.
func (t Task) outputActivation(outputs int) nn.Activation {
	if t == Regression {
		return nn.Identity
	}
	if outputs == 1 {
		return nn.Sigmoid
	}
	return nn.Softmax
}

// loss returns the training loss for the task.
func (t Task) loss() nn.Loss {
	if t == Regression {
		return nn.NewMSELoss()
	}
	return nn.NewCrossEntropyLoss()
}
