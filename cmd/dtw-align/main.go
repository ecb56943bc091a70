// Command dtw-align aligns a MIDI performance against a reference audio
// recording and writes the warped MIDI. Both tracks are loaded as mono WAV,
// resampled to a common rate, reduced to chroma features, and aligned with
// a step-constrained DTW; the resulting remap function is applied to every
// MIDI event in one pass.
package main

import (
	"encoding/csv"
	"flag"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/aheidt/dtw-app/internal/audiofile"
	"github.com/aheidt/dtw-app/midievent"
	"github.com/aheidt/dtw-app/project"
)

func main() {
	refPath := flag.String("reference", "", "Reference WAV (the recording to align to)")
	perfPath := flag.String("performance", "", "Performance WAV (the rendered MIDI take)")
	midiPath := flag.String("midi", "", "MIDI file whose events follow the performance")
	outPath := flag.String("out", "aligned.mid", "Output MIDI path")
	sampleRate := flag.Int("sample-rate", 22050, "Analysis sample rate")
	clipStart := flag.Bool("clip-start", false, "Shift MIDI so the first event is at t=0")
	dumpPath := flag.String("dump-path", "", "Optional CSV dump of the warp path")
	flag.Parse()

	log := logrus.New()
	if *refPath == "" || *perfPath == "" || *midiPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	p := project.New()
	p.Reference = loadTrack(log, *refPath, *sampleRate)
	p.Performance = loadTrack(log, *perfPath, *sampleRate)

	events, err := midievent.ReadSMF(*midiPath, midievent.ReadOptions{
		ClipStart:         *clipStart,
		VelocityZeroAsOff: true,
	})
	if err != nil {
		log.Fatalf("load midi: %v", err)
	}
	log.WithFields(logrus.Fields{"events": len(events), "end": events.End()}).Info("midi loaded")
	p.SetEvents(events)

	log.Info("aligning")
	a, err := p.Align()
	if err != nil {
		log.Fatalf("align: %v", err)
	}
	log.WithFields(logrus.Fields{
		"ref_frames":  a.RefFeatures.Frames(),
		"perf_frames": a.PerfFeatures.Frames(),
		"path_len":    len(a.Path),
		"table_len":   len(a.Table),
	}).Info("alignment done")

	if *dumpPath != "" {
		if err := dumpWarpPath(*dumpPath, a); err != nil {
			log.Fatalf("dump path: %v", err)
		}
		log.WithField("file", *dumpPath).Info("warp path dumped")
	}

	p.Apply(a)
	if err := midievent.WriteSMF(*outPath, p.Events); err != nil {
		log.Fatalf("write midi: %v", err)
	}
	log.WithFields(logrus.Fields{"file": *outPath, "end": p.Events.End()}).Info("aligned midi written")
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
	log.WithFields(logrus.Fields{
		"file":    path,
		"rate":    rate,
		"seconds": float64(len(samples)) / float64(rate),
	}).Info("track loaded")
	return project.Signal{Samples: samples, SampleRate: rate}
}

func dumpWarpPath(path string, a *project.Alignment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"ref_frame", "perf_frame"}); err != nil {
		return err
	}
	for _, c := range a.Path {
		if err := w.Write([]string{strconv.Itoa(c.I), strconv.Itoa(c.J)}); err != nil {
			return err
		}
	}
	return w.Error()
}
