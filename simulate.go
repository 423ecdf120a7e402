package main

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/stat/distuv"
)

// SimConfig describes a synthetic detector trace. Every Slot samples a photon
// number is drawn; each photon adds a pulse decaying over Decay samples.
type SimConfig struct {
	DataDir   string
	Model     string
	Mean      float64
	Slot      int
	Samples   int
	Dt        float64
	Amplitude float64
	Decay     float64
	Noise     float64
	Seed      uint64
	Format    string
}

func defaultSimConfig() SimConfig {
	return SimConfig{
		DataDir:   "Data",
		Model:     "poisson",
		Mean:      1,
		Slot:      1000,
		Samples:   1000000,
		Dt:        1e-9,
		Amplitude: -0.01,
		Decay:     3,
		Noise:     1e-4,
		Seed:      1,
		Format:    "csv",
	}
}

var simConf = defaultSimConfig()

var simulateCmd = &cobra.Command{
	Use:   "simulate <measurement>",
	Short: "Write a synthetic Poisson or Bose-Einstein photon trace",
	Long: `simulate writes <data-dir>/<measurement>.<format> with a synthetic detector
trace. Bose-Einstein photon numbers are drawn as Poisson numbers whose mean is
itself exponentially distributed, as for thermal light.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(simConf.DataDir, args[0]+"."+simConf.Format)
		return simulate(simConf, path)
	},
}

func initSimulateFlags(flags *pflag.FlagSet) {
	flags.StringVar(&simConf.DataDir, "data-dir", simConf.DataDir, "Folder the trace is written to")
	flags.StringVar(&simConf.Model, "model", simConf.Model, "Photon statistics: poisson or bose")
	flags.Float64Var(&simConf.Mean, "mean", simConf.Mean, "Mean photons per slot")
	flags.IntVar(&simConf.Slot, "slot", simConf.Slot, "Samples per slot")
	flags.IntVar(&simConf.Samples, "samples", simConf.Samples, "Trace length in samples")
	flags.Float64Var(&simConf.Dt, "dt", simConf.Dt, "Sample spacing in seconds")
	flags.Float64Var(&simConf.Amplitude, "amplitude", simConf.Amplitude, "Pulse amplitude")
	flags.Float64Var(&simConf.Decay, "decay", simConf.Decay, "Pulse decay constant in samples")
	flags.Float64Var(&simConf.Noise, "noise", simConf.Noise, "Gaussian noise standard deviation")
	flags.Uint64Var(&simConf.Seed, "seed", simConf.Seed, "Random seed")
	flags.StringVar(&simConf.Format, "format", simConf.Format, "Trace format: csv or wav")
}

func simulate(
	conf SimConfig,
	path string,
) (
	error,
) {

	s, err := simulateTrace(conf)
	if err != nil {
		return err
	}

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	switch strings.ToLower(conf.Format) {
	case "csv":
		err = writeTraceCSV(path, s)
	case "wav":
		err = writeTraceWAV(path, s, conf.Dt)
	default:
		err = errors.Errorf("unknown trace format %q (csv or wav)", conf.Format)
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"path":    path,
		"model":   conf.Model,
		"mean":    conf.Mean,
		"samples": conf.Samples,
	}).Info("Saved synthetic trace")

	return nil
}

// simulateTrace builds the trace in memory. Time runs from 0 in steps of Dt.
func simulateTrace(
	conf SimConfig,
) (
	Series, error,
) {

	if conf.Mean <= 0 {
		return Series{}, errors.Errorf("mean photons per slot must be positive, got %g", conf.Mean)
	}
	if conf.Slot <= 0 || conf.Samples <= 0 {
		return Series{}, errors.Errorf("slot and samples must be positive, got %d and %d", conf.Slot, conf.Samples)
	}
	if conf.Dt <= 0 || conf.Decay <= 0 {
		return Series{}, errors.Errorf("sample spacing and decay must be positive, got %g and %g", conf.Dt, conf.Decay)
	}

	src := rand.NewPCG(conf.Seed, conf.Seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)

	var photons func() int
	switch strings.ToLower(conf.Model) {
	case "poisson":
		dist := distuv.Poisson{Lambda: conf.Mean, Src: src}
		photons = func() int { return int(dist.Rand()) }
	case "bose", "bose-einstein", "thermal":
		intensity := distuv.Exponential{Rate: 1 / conf.Mean, Src: src}
		photons = func() int {
			mu := intensity.Rand()
			if mu <= 0 {
				return 0
			}
			return int(distuv.Poisson{Lambda: mu, Src: src}.Rand())
		}
	default:
		return Series{}, errors.Errorf("unknown model %q (poisson or bose)", conf.Model)
	}

	x := make([]float64, conf.Samples)
	y := make([]float64, conf.Samples)
	for i := range x {
		x[i] = float64(i) * conf.Dt
	}

	tail := int(math.Ceil(5 * conf.Decay))
	for start := 0; start < conf.Samples; start += conf.Slot {
		for n := photons(); n > 0; n-- {
			at := start + rng.IntN(conf.Slot)
			for j := 0; j <= tail && at+j < conf.Samples; j++ {
				y[at+j] += conf.Amplitude * math.Exp(-float64(j)/conf.Decay)
			}
		}
	}

	if conf.Noise > 0 {
		noise := distuv.Normal{Mu: 0, Sigma: conf.Noise, Src: src}
		for i := range y {
			y[i] += noise.Rand()
		}
	}

	return Series{X: x, Y: y}, nil
}

func writeTraceCSV(
	path string,
	s Series,
) (
	error,
) {

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "amplitude"}); err != nil {
		return err
	}
	for i := range s.X {
		row := []string{
			strconv.FormatFloat(s.X[i], 'g', -1, 64),
			strconv.FormatFloat(s.Y[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return f.Close()
}

// writeTraceWAV writes a mono IEEE float32 WAV so negative amplitudes survive
// without rescaling.
func writeTraceWAV(
	path string,
	s Series,
	dt float64,
) (
	error,
) {

	sampleRate := math.Round(1 / dt)
	if sampleRate < 1 || sampleRate*4 > math.MaxUint32 {
		return errors.Errorf("sample spacing %g s does not fit a WAV header", dt)
	}

	const bytesPerSample = 4
	dataSize := len(s.Y) * bytesPerSample

	header := make([]byte, 44)

	// RIFF header
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+dataSize))
	copy(header[8:], "WAVE")

	// fmt chunk
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 3) // IEEE float
	binary.LittleEndian.PutUint16(header[22:], 1) // mono
	binary.LittleEndian.PutUint32(header[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:], uint32(sampleRate)*bytesPerSample)
	binary.LittleEndian.PutUint16(header[32:], bytesPerSample)
	binary.LittleEndian.PutUint16(header[34:], 8*bytesPerSample)

	// data chunk
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(dataSize))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, bytesPerSample)
	for _, v := range s.Y {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(float32(v)))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return f.Close()
}
