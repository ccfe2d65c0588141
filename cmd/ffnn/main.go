// Package main provides the ffnn training CLI.
//
// Usage:
//
//	ffnn [-config run.yaml] [-epochs N] [-batch-size N] [-lr F] [-dataset sine|line|franke] [-csv data.csv] ...
//	ffnn version
//
// Without -config the sin(x) regression run of config.Default is used.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/ffnn/internal/config"
	"github.com/born-ml/ffnn/internal/dataset"
	"github.com/born-ml/ffnn/internal/ffnn"
	"github.com/born-ml/ffnn/internal/nn"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("ffnn %s\n", version)
		return
	}

	cfgPath := flag.String("config", "", "Path to YAML config (defaults to the sin(x) run)")
	task := flag.String("task", "", "Override task: regression or classification")
	hidden := flag.String("hidden", "", "Override hidden activation")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	batchSize := flag.Int("batch-size", 0, "Mini-batch size")
	lr := flag.Float64("lr", 0, "Learning rate")
	lambda := flag.Float64("lambda", 0, "L2 penalty strength")
	gamma := flag.Float64("gamma", 0, "Momentum coefficient")
	seed := flag.Int64("seed", 0, "PRNG seed")
	logEvery := flag.Int("log-every", 0, "Log the training loss every N epochs")
	datasetKind := flag.String("dataset", "", "Override dataset kind: sine, line or franke")
	csvPath := flag.String("csv", "", "Train on a CSV file instead of synthetic data")
	dump := flag.Bool("dump-config", false, "Print the effective config and exit")

	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		Task:             *task,
		HiddenActivation: *hidden,
		Epochs:           *epochs,
		BatchSize:        *batchSize,
		LearningRate:     *lr,
		Lambda:           *lambda,
		Gamma:            *gamma,
		Seed:             *seed,
		LogEvery:         *logEvery,
		Dataset:          *datasetKind,
		CSVPath:          *csvPath,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if *dump {
		out, err := cfg.Marshal()
		if err != nil {
			log.Fatalf("marshal config: %v", err)
		}
		fmt.Print(string(out))
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("training failed: %v", err)
	}
}

func run(cfg *config.Config) error {
	splits, err := cfg.LoadData(rand.New(rand.NewSource(cfg.Seed))) //nolint:gosec // Not security-critical.
	if err != nil {
		return err
	}
	log.Printf("dataset=%s train=%d validation=%d test=%d",
		cfg.Dataset.Kind, splits.Train.Samples(), validationSamples(splits), splits.Test.Samples())

	net, err := cfg.Build(splits.Train.Features(), splits.Train.Outputs())
	if err != nil {
		return err
	}
	log.Printf("model=%v", net)

	if err := net.InitData(splits.Train.X, splits.Train.Y); err != nil {
		return err
	}

	baseline, err := score(net, splits.Test)
	if err != nil {
		return err
	}
	log.Printf("untrained test %s=%s", metricName(net), baseline)

	start := time.Now()
	if err := net.Fit(cfg.Epochs, cfg.BatchSize, cfg.LearningRate); err != nil {
		return err
	}
	elapsed := time.Since(start)

	for epoch, loss := range net.History() {
		if (epoch+1)%cfg.LogEvery == 0 || epoch == 0 || epoch == cfg.Epochs-1 {
			log.Printf("epoch=%d loss=%.6f", epoch+1, loss)
		}
	}
	log.Printf("trained %d epochs in %s", cfg.Epochs, elapsed.Round(time.Millisecond))

	for _, part := range []struct {
		name string
		data dataset.Dataset
	}{
		{"train", splits.Train},
		{"validation", splits.Validation},
		{"test", splits.Test},
	} {
		if part.data.Empty() {
			continue
		}
		s, err := score(net, part.data)
		if err != nil {
			return err
		}
		log.Printf("%s %s=%s", part.name, metricName(net), s)
	}
	return nil
}

// score formats the evaluation metric; a degenerate R² is reported, not
// treated as fatal.
func score(net *ffnn.Network, d dataset.Dataset) (string, error) {
	v, err := net.Evaluate(d.X, d.Y)
	if err != nil {
		if errors.Is(err, nn.ErrDegenerateMetric) {
			return "undefined (constant target)", nil
		}
		return "", err
	}
	return fmt.Sprintf("%.4f", v), nil
}

func metricName(net *ffnn.Network) string {
	if net.Task() == ffnn.Classification {
		return "accuracy"
	}
	return "R2"
}

func validationSamples(s dataset.Splits) int {
	if s.Validation.Empty() {
		return 0
	}
	return s.Validation.Samples()
}
