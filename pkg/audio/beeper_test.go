package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

// readSamples decodes n float32 samples from a Beeper without an audio
// device; Read only touches the generator state.
func readSamples(b *Beeper, n int) []float32 {
	buf := make([]byte, n*4)
	if _, err := b.Read(buf); err != nil {
		panic(err)
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}

func TestReadGeneratesSquareWave(t *testing.T) {
	b := &Beeper{sampleRate: 100, freq: 10} // 10 samples per period
	samples := readSamples(b, 20)

	for i, s := range samples {
		want := float32(amplitude)
		if (i/5)%2 == 1 { // second half of each period is negative
			want = -amplitude
		}
		if s != want {
			t.Fatalf("sample %d: expected %v, got %v", i, want, s)
		}
	}
}

func TestReadPhaseContinuity(t *testing.T) {
	b := &Beeper{sampleRate: 100, freq: 10}
	first := readSamples(b, 3)
	second := readSamples(b, 3)

	// 6 samples into a 10-sample period: 2 positive then 1 negative.
	want := []float32{amplitude, amplitude, -amplitude}
	for i := range second {
		if second[i] != want[i] {
			t.Fatalf("sample %d after split read: expected %v, got %v (first read %v)", i, want[i], second[i], first)
		}
	}
}

func TestReadReportsFullBuffer(t *testing.T) {
	b := &Beeper{sampleRate: 44100, freq: 40}
	buf := make([]byte, 4096)
	n, err := b.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4096 {
		t.Errorf("expected %d bytes, got %d", 4096, n)
	}
}
