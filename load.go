package main

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mjibson/go-dsp/wav"
	"github.com/pkg/errors"
)

// Series is a recovered measurement: time samples X and amplitudes Y.
type Series struct {
	Name string
	X, Y []float64
}

// AxisLoader recovers the time and amplitude axes of a measurement.
type AxisLoader interface {
	Load(name string) (Series, error)
}

var ErrNotFound = errors.New("measurement not found")

// dirLoader looks for <dir>/<name>.csv, then <dir>/<name>.wav.
type dirLoader struct {
	dir string
}

func (l dirLoader) Load(name string) (Series, error) {

	for _, ext := range []string{".csv", ".wav"} {
		path := filepath.Join(l.dir, name+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		var x, y []float64
		var err error
		if ext == ".csv" {
			x, y, err = getCSVData(path)
		} else {
			x, y, err = getWAVData(path)
		}
		if err != nil {
			return Series{}, errors.Wrapf(err, "load %s", path)
		}

		if len(x) != len(y) {
			return Series{}, errors.Errorf("load %s: %d time samples, %d amplitudes", path, len(x), len(y))
		}
		if len(y) < 2 {
			return Series{}, errors.Errorf("load %s: need at least 2 samples, got %d", path, len(y))
		}

		return Series{Name: name, X: x, Y: y}, nil
	}

	return Series{}, errors.Wrapf(ErrNotFound, "%q in %s", name, l.dir)
}

// getCSVData reads time,amplitude rows after a header row.
func getCSVData(
	csvName string,
) (
	[]float64, []float64, error,
) {

	f, err := os.Open(csvName)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := readCSV(f)
	if err != nil {
		return nil, nil, err
	}

	x := make([]float64, 0, len(rows))
	y := make([]float64, 0, len(rows))

	for i, row := range rows {
		if len(row) < 2 {
			return nil, nil, errors.Errorf("row %d: expected 2 columns, got %d", i+2, len(row))
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "row %d time", i+2)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "row %d amplitude", i+2)
		}

		x = append(x, t)
		y = append(y, a)
	}

	return x, y, nil
}

func readCSV(
	rs io.ReadSeeker,
) (
	[][]string, error,
) {
	// Skip first row (line)
	row1, err := bufio.NewReader(rs).ReadSlice('\n')
	if err != nil {
		return nil, err
	}
	_, err = rs.Seek(int64(len(row1)), io.SeekStart)
	if err != nil {
		return nil, err
	}

	// Read remaining rows
	r := csv.NewReader(rs)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// getWAVData decodes the first channel of a PCM or float WAV file. Amplitudes
// are signed, PCM scaled to [-1, 1).
func getWAVData(
	wavName string,
) (
	[]float64, []float64, error,
) {

	f, err := os.Open(wavName)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	w, err := wav.New(bufio.NewReader(f))
	if err != nil {
		return nil, nil, err
	}
	if w.NumChannels == 0 || w.SampleRate == 0 {
		return nil, nil, errors.Errorf("bad header: %d channels at %d Hz", w.NumChannels, w.SampleRate)
	}

	// go-dsp rounds the sample count down to a multiple of 8, so read the
	// remainder one sample at a time until the data chunk ends.
	var all []float64
	if w.Samples > 0 {
		if all, err = readWAVSamples(w, w.Samples, all); err != nil {
			return nil, nil, err
		}
	}
	for {
		all, err = readWAVSamples(w, 1, all)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
	}

	channels := int(w.NumChannels)
	n := len(all) / channels
	dt := 1 / float64(w.SampleRate)

	x := make([]float64, n)
	y := make([]float64, n)
	for i := range y {
		x[i] = float64(i) * dt
		y[i] = all[i*channels]
	}

	return x, y, nil
}

// readWAVSamples reads n samples and appends them to dst as signed
// amplitudes, PCM scaled to [-1, 1).
func readWAVSamples(
	w *wav.Wav,
	n int,
	dst []float64,
) (
	[]float64, error,
) {

	samples, err := w.ReadSamples(n)
	if err != nil {
		return dst, err
	}

	switch s := samples.(type) {
	case []uint8:
		for _, v := range s {
			dst = append(dst, (float64(v)-128)/128)
		}
	case []int16:
		for _, v := range s {
			dst = append(dst, float64(v)/32768)
		}
	case []float32:
		for _, v := range s {
			dst = append(dst, float64(v))
		}
	default:
		return dst, errors.Errorf("unsupported sample type %T", samples)
	}

	return dst, nil
}
