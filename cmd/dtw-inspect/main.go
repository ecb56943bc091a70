// Command dtw-inspect runs the alignment pipeline and dumps its
// intermediate stages as CSV for plotting: the chroma feature matrices,
// the pairwise cost matrix, and the warp path in seconds.
package main

import (
	"encoding/csv"
	"flag"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/aheidt/dtw-app/align"
	"github.com/aheidt/dtw-app/chroma"
	"github.com/aheidt/dtw-app/internal/audiofile"
	"github.com/aheidt/dtw-app/project"
)

func main() {
	refPath := flag.String("reference", "", "Reference WAV")
	perfPath := flag.String("performance", "", "Performance WAV")
	sampleRate := flag.Int("sample-rate", 22050, "Analysis sample rate")
	featuresOut := flag.String("features", "", "CSV prefix for the chroma matrices (<prefix>_ref.csv, <prefix>_perf.csv)")
	costOut := flag.String("cost", "", "CSV path for the cost matrix")
	pathOut := flag.String("path", "", "CSV path for the warp path in seconds")
	flag.Parse()

	log := logrus.New()
	if *refPath == "" || *perfPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	p := project.New()
	p.Reference = loadTrack(log, *refPath, *sampleRate)
	p.Performance = loadTrack(log, *perfPath, *sampleRate)

	a, err := p.Align()
	if err != nil {
		log.Fatalf("align: %v", err)
	}
	log.WithFields(logrus.Fields{
		"ref_frames":  a.RefFeatures.Frames(),
		"perf_frames": a.PerfFeatures.Frames(),
		"path_len":    len(a.Path),
	}).Info("alignment done")

	if *featuresOut != "" {
		must(log, writeFeatures(*featuresOut+"_ref.csv", a.RefFeatures))
		must(log, writeFeatures(*featuresOut+"_perf.csv", a.PerfFeatures))
		log.WithField("prefix", *featuresOut).Info("chroma matrices written")
	}
	if *costOut != "" {
		must(log, writeMatrix(*costOut, a.Cost))
		log.WithField("file", *costOut).Info("cost matrix written")
	}
	if *pathOut != "" {
		must(log, writePathSeconds(*pathOut, a, *sampleRate))
		log.WithField("file", *pathOut).Info("warp path written")
	}
}

func must(log *logrus.Logger, err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func loadTrack(log *logrus.Logger, path string, rate int) project.Signal {
	samples, fileRate, err := audiofile.ReadMono(path)
	if err != nil {
		log.Fatalf("load %s: %v", path, err)
	}
	samples, err = audiofile.ResampleIfNeeded(samples, fileRate, rate)
	if err != nil {
		log.Fatalf("resample %s: %v", path, err)
	}
	return project.Signal{Samples: samples, SampleRate: rate}
}

// writeFeatures dumps one row per pitch class, one column per frame.
func writeFeatures(path string, f *chroma.Features) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	rec := make([]string, f.Frames())
	for pc := 0; pc < f.Bins(); pc++ {
		row := f.Row(pc)
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeMatrix(path string, m align.CostMatrix) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	for _, row := range m {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

func writePathSeconds(path string, a *project.Alignment, rate int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	if err := w.Write([]string{"ref_sec", "perf_sec"}); err != nil {
		return err
	}
	scale := float64(chroma.HopSize) / float64(rate)
	for _, c := range a.Path {
		if err := w.Write([]string{
			strconv.FormatFloat(float64(c.I)*scale, 'g', -1, 64),
			strconv.FormatFloat(float64(c.J)*scale, 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	return w.Error()
}
