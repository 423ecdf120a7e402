package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable of an analysis run.
type Config struct {
	ConfigFile string
	DataDir    string
	OutDir     string
	Note       string

	Windows []int
	// Threshold is the counting threshold: peaks strictly below it count.
	Threshold float64
	// DetectThreshold is handed to the peak detector only.
	DetectThreshold float64
	Bins            int
	Polarity        string
	FitPoisson      bool
	FitBose         bool

	Formats     []string
	Interactive bool
	GIF         bool
	Summary     bool
	Slide       bool
	LogLevel    string
}

var defaultMeasurements = []string{"poisson", "bose"}

func defaultConfig() Config {
	return Config{
		DataDir:         "Data",
		OutDir:          "plots",
		Windows:         []int{500, 1000, 2000, 5000},
		Threshold:       -0.001,
		DetectThreshold: defaultDetectThreshold,
		Bins:            defaultBins,
		Polarity:        Negative.String(),
		FitPoisson:      true,
		FitBose:         true,
		Formats:         []string{"png"},
		LogLevel:        "info",
	}
}

var supportedFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true,
	"svg": true, "pdf": true, "eps": true, "tex": true,
}

func initAnalysisFlags(flags *pflag.FlagSet) {

	d := defaultConfig()

	windows := make([]string, len(d.Windows))
	for i, w := range d.Windows {
		windows[i] = strconv.Itoa(w)
	}

	flags.String("config", "", "Configuration file (toml, yaml or json)")
	flags.String("data-dir", d.DataDir, "Folder holding <measurement>.csv or <measurement>.wav traces")
	flags.String("out-dir", d.OutDir, "Folder figures are saved under")
	flags.String("note", "", "Note appended to the output folder name")
	flags.StringSlice("windows", windows, "Window sizes in samples")
	flags.Float64("threshold", d.Threshold, "Counting threshold: peaks strictly below it are counted")
	flags.Float64("detect-threshold", d.DetectThreshold, "Threshold handed to the peak detector")
	flags.Int("bins", d.Bins, "Histogram bin edges 0..bins-1")
	flags.String("polarity", d.Polarity, "Pulse polarity: negative or positive")
	flags.Bool("fit-poisson", d.FitPoisson, "Fit a Poisson distribution")
	flags.Bool("fit-bose", d.FitBose, "Fit a Bose-Einstein distribution from the histogram mode")
	flags.StringSlice("formats", d.Formats, "Figure formats: png, svg, pdf, ...")
	flags.Bool("interactive", d.Interactive, "Open persistent gnuplot windows (needs a build with -tags gnuplot)")
	flags.Bool("gif", d.GIF, "Save an animation sweeping the window sizes")
	flags.Bool("summary", d.Summary, "Save count box plots and a peak height histogram")
	flags.Bool("slide", d.Slide, "Format figures for slide presentation")
	flags.String("log-level", d.LogLevel, "Log level: debug, info, warning, error")
}

// loadConfig reads flags, then the optional configuration file, into a
// Config. Flags set on the command line win over the file.
func loadConfig(
	v *viper.Viper,
	flags *pflag.FlagSet,
) (
	Config, error,
) {

	if err := v.BindPFlags(flags); err != nil {
		return Config{}, err
	}

	conf := Config{ConfigFile: v.GetString("config")}
	if conf.ConfigFile != "" {
		v.SetConfigFile(conf.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", conf.ConfigFile)
		}
	}

	windows, err := parseInts(v.GetStringSlice("windows"))
	if err != nil {
		return Config{}, errors.Wrap(err, "windows")
	}

	conf.DataDir = v.GetString("data-dir")
	conf.OutDir = v.GetString("out-dir")
	conf.Note = v.GetString("note")
	conf.Windows = windows
	conf.Threshold = v.GetFloat64("threshold")
	conf.DetectThreshold = v.GetFloat64("detect-threshold")
	conf.Bins = v.GetInt("bins")
	conf.Polarity = v.GetString("polarity")
	conf.FitPoisson = v.GetBool("fit-poisson")
	conf.FitBose = v.GetBool("fit-bose")
	conf.Formats = splitList(v.GetStringSlice("formats"))
	conf.Interactive = v.GetBool("interactive")
	conf.GIF = v.GetBool("gif")
	conf.Summary = v.GetBool("summary")
	conf.Slide = v.GetBool("slide")
	conf.LogLevel = v.GetString("log-level")

	return conf, conf.validate()
}

func (conf Config) validate() error {

	if len(conf.Windows) == 0 {
		return errors.New("no window sizes given")
	}
	for _, w := range conf.Windows {
		if w <= 0 {
			return errors.Wrapf(ErrWindowSize, "windows: got %d", w)
		}
	}

	if conf.Bins < 2 {
		return errors.Wrapf(ErrBins, "bins: got %d", conf.Bins)
	}

	if _, err := parsePolarity(conf.Polarity); err != nil {
		return err
	}

	for _, f := range conf.Formats {
		if !supportedFormats[f] {
			return errors.Errorf("unsupported figure format %q", f)
		}
	}

	if _, err := log.ParseLevel(conf.LogLevel); err != nil {
		return err
	}

	return nil
}

// splitList flattens entries that still hold comma separated values, as
// lists written as a single string in a config file do.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.Trim(part, "[] "); part != "" {
				out = append(out, strings.ToLower(part))
			}
		}
	}
	return out
}

func parseInts(in []string) ([]int, error) {
	var out []int
	for _, s := range splitList(in) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
