package ffnn

import "fmt"

// State is the lifecycle stage of a Network.
//
//	Unconfigured → LayersAdded → DataBound → Trained
type State uint8

// Lifecycle stages.
const (
	// Unconfigured: no layers yet.
	Unconfigured State = iota
	// LayersAdded: at least one layer, no training data.
	LayersAdded
	// DataBound: layers and training data are present.
	DataBound
	// Trained: Fit has completed at least once.
	Trained
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case LayersAdded:
		return "layers-added"
	case DataBound:
		return "data-bound"
	case Trained:
		return "trained"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
