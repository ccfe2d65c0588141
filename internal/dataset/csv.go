package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/tensor"
)

// LoadCSV reads a dataset from a CSV file.
//
// See ReadCSV for the format.
func LoadCSV(path string, targets int) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "dataset: open csv")
	}
	defer f.Close()

	d, err := ReadCSV(f, targets)
	if err != nil {
		return Dataset{}, errors.Wrap(err, path)
	}
	return d, nil
}

// ReadCSV reads one sample per row. The last targets columns are the
// targets, every column before them is a feature:
//
//	x0,x1,z
//	0.12,0.80,0.31
//	0.55,0.07,0.42
//
// A first row that does not parse as numbers is treated as a header.
// Lines starting with '#' are skipped.
func ReadCSV(r io.Reader, targets int) (Dataset, error) {
	if targets <= 0 {
		return Dataset{}, errors.Wrapf(nn.ErrInvalidConfiguration, "dataset: target column count must be positive, got %d", targets)
	}

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return Dataset{}, errors.Wrap(err, "dataset: read csv")
	}
	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return Dataset{}, errors.Wrap(nn.ErrShapeMismatch, "dataset: csv holds no samples")
	}

	width := len(records[0])
	if width <= targets {
		return Dataset{}, errors.Wrapf(nn.ErrShapeMismatch,
			"dataset: %d columns leave no features for %d targets", width, targets)
	}

	features := make([][]float64, len(records))
	outputs := make([][]float64, len(records))
	for i, record := range records {
		if len(record) != width {
			return Dataset{}, errors.Wrapf(nn.ErrShapeMismatch, "dataset: row %d has %d columns, want %d", i+1, len(record), width)
		}
		values := make([]float64, width)
		for k, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Dataset{}, errors.Wrapf(err, "dataset: row %d column %d", i+1, k)
			}
			values[k] = v
		}
		features[i] = values[:width-targets]
		outputs[i] = values[width-targets:]
	}

	x, err := tensor.FromColumns(features)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "dataset")
	}
	y, err := tensor.FromColumns(outputs)
	if err != nil {
		return Dataset{}, errors.Wrap(err, "dataset")
	}
	return Dataset{X: x, Y: y}, nil
}

func isHeader(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return true
		}
	}
	return false
}
