package main

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

func init() {

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	initAnalysisFlags(rootCmd.Flags())
	initSimulateFlags(simulateCmd.Flags())

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "photonstats [measurement...]",
	Short: "Counting statistics of photon detector traces",
	Long: `photonstats slices each measurement trace into windows, counts the detected
peaks below a threshold in every window, histograms the counts per window and
fits Poisson and Bose-Einstein distributions to the histogram.

Without arguments the "poisson" and "bose" measurements are analyzed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(viper.New(), cmd.Flags())
		if err != nil {
			return err
		}
		return runAnalysis(conf, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the photonstats version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("photonstats " + Version)
	},
}

func runAnalysis(
	conf Config,
	measurements []string,
) (
	error,
) {

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if len(measurements) == 0 {
		measurements = defaultMeasurements
	}

	logHeader(conf, measurements)

	polarity, err := parsePolarity(conf.Polarity)
	if err != nil {
		return err
	}

	counter := newWindowCounter(extremaDetector{polarity: polarity}, conf.Threshold)
	counter.DetectThreshold = conf.DetectThreshold

	opts := Options{
		Bins:        conf.Bins,
		FitPoisson:  conf.FitPoisson,
		FitBose:     conf.FitBose,
		PeakHeights: conf.Summary,
	}

	renderer, err := newRenderer(conf, logpath(conf.OutDir, conf.Note, time.Now()))
	if err != nil {
		return err
	}

	loader := dirLoader{dir: conf.DataDir}

	for _, name := range measurements {
		fig, err := analyzeMeasurement(loader, name, conf.Windows, counter, opts)
		if err != nil {
			return err
		}
		if err := renderer.Render(fig); err != nil {
			return err
		}
	}

	return nil
}

func newRenderer(
	conf Config,
	logpath string,
) (
	Renderer, error,
) {

	var r multiRenderer
	if len(conf.Formats) > 0 {
		r = append(r, plotRenderer{logpath: logpath, formats: conf.Formats, slide: conf.Slide})
	}
	if conf.Summary {
		r = append(r, summaryRenderer{logpath: logpath, formats: conf.Formats, slide: conf.Slide})
	}
	if conf.GIF {
		r = append(r, gifRenderer{logpath: logpath, slide: conf.Slide})
	}
	if conf.Interactive {
		g, err := newGlotRenderer()
		if err != nil {
			return nil, err
		}
		r = append(r, g)
	}

	return r, nil
}
