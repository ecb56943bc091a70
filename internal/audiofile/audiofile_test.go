package audiofile

import (
	"math"
	"path/filepath"
	"testing"
)

func TestReadWriteRoundTrip(t *testing.T) {
	const sr = 22050
	path := filepath.Join(t.TempDir(), "tone.wav")

	in := make([]float64, sr/2)
	for i := range in {
		in[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/sr)
	}
	if err := WriteMono(path, in, sr); err != nil {
		t.Fatalf("WriteMono: %v", err)
	}

	out, rate, err := ReadMono(path)
	if err != nil {
		t.Fatalf("ReadMono: %v", err)
	}
	if rate != sr {
		t.Fatalf("sample rate = %d, want %d", rate, sr)
	}
	if len(out) != len(in) {
		t.Fatalf("length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if d := math.Abs(out[i] - in[i]); d > 1.0/32000 {
			t.Fatalf("sample %d off by %f after 16-bit quantization", i, d)
		}
	}
}

func TestReadMono_MissingFile(t *testing.T) {
	if _, _, err := ReadMono(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResampleIfNeeded_SameRatePassthrough(t *testing.T) {
	in := []float64{0, 0.5, -0.5}
	out, err := ResampleIfNeeded(in, 22050, 22050)
	if err != nil {
		t.Fatalf("ResampleIfNeeded: %v", err)
	}
	if &out[0] != &in[0] {
		t.Fatal("matching rates must pass the input through")
	}
}

func TestResampleIfNeeded_HalvesLength(t *testing.T) {
	in := make([]float64, 44100)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * 220 * float64(i) / 44100)
	}
	out, err := ResampleIfNeeded(in, 44100, 22050)
	if err != nil {
		t.Fatalf("ResampleIfNeeded: %v", err)
	}
	if len(out) < 21000 || len(out) > 23000 {
		t.Fatalf("resampled length = %d, want about 22050", len(out))
	}
}
