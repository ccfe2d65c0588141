// Package config holds the YAML run configuration of the ffnn CLI.
package config

import (
	"bytes"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/ffnn/internal/dataset"
	"github.com/born-ml/ffnn/internal/ffnn"
	"github.com/born-ml/ffnn/internal/nn"
	"github.com/born-ml/ffnn/internal/parallel"
)

// Dataset kinds.
const (
	KindSine   = "sine"
	KindLine   = "line"
	KindFranke = "franke"
	KindCSV    = "csv"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	Task             string  `yaml:"task"`
	HiddenActivation string  `yaml:"hidden_activation"`
	HiddenLayers     []int   `yaml:"hidden_layers"`
	Lambda           float64 `yaml:"lambda"`
	Gamma            float64 `yaml:"gamma"`
	Epochs           int     `yaml:"epochs"`
	BatchSize        int     `yaml:"batch_size"`
	LearningRate     float64 `yaml:"learning_rate"`
	Seed             int64   `yaml:"seed"`
	LogEvery         int     `yaml:"log_every"`
	NumWorkers       int     `yaml:"num_workers"`

	Dataset DatasetConfig `yaml:"dataset"`
}

// DatasetConfig selects and splits the data.
type DatasetConfig struct {
	Kind        string  `yaml:"kind"`
	Path        string  `yaml:"path"`
	Targets     int     `yaml:"targets"`
	Samples     int     `yaml:"samples"`
	Noise       float64 `yaml:"noise"`
	Train       float64 `yaml:"train"`
	Validation  float64 `yaml:"validation"`
	Standardize bool    `yaml:"standardize"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	Task             string
	HiddenActivation string
	Epochs           int
	BatchSize        int
	LearningRate     float64
	Lambda           float64
	Gamma            float64
	Seed             int64
	LogEvery         int
	Dataset          string
	CSVPath          string
}

// Default returns the sin(x) regression run: 1000 training and 1000 test
// samples, one hidden layer of 100 ReLU units, full-batch gradient descent.
func Default() *Config {
	return &Config{
		Task:             "regression",
		HiddenActivation: "relu",
		HiddenLayers:     []int{100},
		Epochs:           1000,
		BatchSize:        1000,
		LearningRate:     0.001,
		Seed:             1,
		LogEvery:         100,
		Dataset: DatasetConfig{
			Kind:    KindSine,
			Samples: 2000,
			Targets: 1,
			Train:   0.5,
		},
	}
}

// Load reads and validates a Config from YAML. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Task != "" {
		c.Task = o.Task
	}
	if o.HiddenActivation != "" {
		c.HiddenActivation = o.HiddenActivation
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if o.Lambda > 0 {
		c.Lambda = o.Lambda
	}
	if o.Gamma > 0 {
		c.Gamma = o.Gamma
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.Dataset != "" {
		c.Dataset.Kind = o.Dataset
	}
	if o.CSVPath != "" {
		c.Dataset.Kind = KindCSV
		c.Dataset.Path = o.CSVPath
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(nn.ErrInvalidConfiguration, "config is nil")
	}
	if _, err := ffnn.ParseTask(c.Task); err != nil {
		return err
	}
	hidden, err := nn.ParseActivation(c.HiddenActivation)
	if err != nil {
		return errors.Wrap(err, "hidden_activation")
	}
	if !hidden.Elementwise() {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "hidden_activation %v is output-only", hidden)
	}
	for i, width := range c.HiddenLayers {
		if width <= 0 {
			return errors.Wrapf(nn.ErrInvalidConfiguration, "hidden_layers[%d] must be > 0 (got %d)", i, width)
		}
	}
	if c.Lambda < 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "lambda must be >= 0 (got %g)", c.Lambda)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "gamma must be in [0, 1) (got %g)", c.Gamma)
	}
	if c.Epochs <= 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if !(c.LearningRate > 0) {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "learning_rate must be > 0 (got %g)", c.LearningRate)
	}
	if c.NumWorkers < 0 {
		return errors.Wrapf(nn.ErrInvalidConfiguration, "num_workers must be >= 0 (got %d)", c.NumWorkers)
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 100
	}
	return c.Dataset.validate()
}

func (d *DatasetConfig) validate() error {
	d.Kind = strings.ToLower(strings.TrimSpace(d.Kind))
	switch d.Kind {
	case KindSine, KindLine, KindFranke:
		if d.Samples <= 0 {
			return errors.Wrapf(nn.ErrInvalidConfiguration, "dataset.samples must be > 0 (got %d)", d.Samples)
		}
		if d.Noise < 0 {
			return errors.Wrapf(nn.ErrInvalidConfiguration, "dataset.noise must be >= 0 (got %g)", d.Noise)
		}
	case KindCSV:
		if d.Path == "" {
			return errors.Wrap(nn.ErrInvalidConfiguration, "dataset.path is required for csv data")
		}
		if d.Targets <= 0 {
			return errors.Wrapf(nn.ErrInvalidConfiguration, "dataset.targets must be > 0 (got %d)", d.Targets)
		}
	default:
		return errors.Wrapf(nn.ErrInvalidConfiguration, "unknown dataset kind %q", d.Kind)
	}
	if d.Train <= 0 || d.Validation < 0 || d.Train+d.Validation >= 1 {
		return errors.Wrapf(nn.ErrInvalidConfiguration,
			"dataset.train=%g and dataset.validation=%g must leave room for a test split", d.Train, d.Validation)
	}
	return nil
}

// LoadData generates or reads the configured dataset and splits it. With
// Standardize set, features of every split are scaled with statistics of
// the training split.
func (c *Config) LoadData(rng *rand.Rand) (dataset.Splits, error) {
	d := c.Dataset

	var (
		all dataset.Dataset
		err error
	)
	switch d.Kind {
	case KindSine:
		all, err = dataset.Sine(d.Samples, rng)
	case KindLine:
		all, err = dataset.Line(d.Samples, 2, 1, rng)
	case KindFranke:
		all, err = dataset.Franke(d.Samples, d.Noise, rng)
	case KindCSV:
		all, err = dataset.LoadCSV(d.Path, d.Targets)
	default:
		err = errors.Wrapf(nn.ErrInvalidConfiguration, "unknown dataset kind %q", d.Kind)
	}
	if err != nil {
		return dataset.Splits{}, err
	}

	splits, err := dataset.Split(all, d.Train, d.Validation)
	if err != nil {
		return dataset.Splits{}, err
	}
	if !d.Standardize {
		return splits, nil
	}

	scaler := dataset.FitStandardizer(splits.Train.X)
	for _, part := range []*dataset.Dataset{&splits.Train, &splits.Validation, &splits.Test} {
		if part.Empty() {
			continue
		}
		if part.X, err = scaler.Transform(part.X); err != nil {
			return dataset.Splits{}, err
		}
	}
	return splits, nil
}

// Build creates the network described by c for the given data shape.
func (c *Config) Build(features, outputs int) (*ffnn.Network, error) {
	task, err := ffnn.ParseTask(c.Task)
	if err != nil {
		return nil, err
	}
	hidden, err := nn.ParseActivation(c.HiddenActivation)
	if err != nil {
		return nil, err
	}

	opts := []ffnn.Option{ffnn.WithSeed(c.Seed)}
	if c.NumWorkers > 0 {
		par := parallel.DefaultConfig()
		par.Enabled = c.NumWorkers > 1
		par.NumWorkers = c.NumWorkers
		opts = append(opts, ffnn.WithParallel(par))
	}

	net, err := ffnn.New(features, outputs, task, c.Lambda, c.Gamma, hidden, opts...)
	if err != nil {
		return nil, err
	}
	in := features
	for _, width := range c.HiddenLayers {
		if err := net.AddLayer(width, in); err != nil {
			return nil, err
		}
		in = width
	}
	if err := net.AddLayer(outputs, in); err != nil {
		return nil, err
	}
	return net, nil
}
