package main

import (
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// logpath is the folder a run saves its figures in:
// <out>/<date>/<time>[: <note>].
func logpath(
	outDir, note string,
	now time.Time,
) (
	string,
) {

	name := now.Format("15:04:05")
	if note != "" {
		name += ": " + note
	}

	return filepath.Join(outDir, now.Format("2006-Jan-02"), name)
}

func logHeader(
	conf Config,
	measurements []string,
) {

	fields := log.Fields{
		"data":             conf.DataDir,
		"measurements":     measurements,
		"windows":          conf.Windows,
		"threshold":        conf.Threshold,
		"detect-threshold": conf.DetectThreshold,
		"bins":             conf.Bins,
		"polarity":         conf.Polarity,
	}
	if conf.Note != "" {
		fields["note"] = conf.Note
	}

	var fits []string
	if conf.FitPoisson {
		fits = append(fits, poissonModel.Name)
	}
	if conf.FitBose {
		fits = append(fits, boseModel.Name)
	}
	fields["fits"] = fits

	log.WithFields(fields).Info("Photon counting statistics")

	if conf.Slide {
		log.Info("Figures formatted for slide presentation")
	}
}
