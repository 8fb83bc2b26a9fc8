// Package audio provides the tone generator gated by the machine's sound
// timer, backed by oto.
package audio

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const (
	// DefaultSampleRate is the output sample rate in Hz.
	DefaultSampleRate = 44100

	// amplitude keeps the square wave well below clipping.
	amplitude = 0.25
)

// Beeper plays a continuous square-wave tone. It implements chip8.Beeper:
// Play starts the tone if it is not already sounding, Stop releases it.
type Beeper struct {
	ctx        *oto.Context
	sampleRate int

	mu     sync.Mutex // guards player, freq and phase against the oto read goroutine
	player *oto.Player
	freq   float64
	phase  float64
}

// NewBeeper creates an audio context and returns a silent Beeper. It blocks
// until the audio device is ready.
func NewBeeper(sampleRate int) (*Beeper, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Beeper{ctx: ctx, sampleRate: sampleRate}, nil
}

// Play starts a continuous tone at freq Hz. Calling Play while a tone is
// already sounding is a no-op.
func (b *Beeper) Play(freq float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player != nil {
		return
	}
	b.freq = freq
	b.phase = 0
	b.player = b.ctx.NewPlayer(b)
	b.player.Play()
}

// Stop silences the tone and releases the player.
func (b *Beeper) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return
	}
	_ = b.player.Close()
	b.player = nil
}

// Read generates float32 LE square-wave samples. It is called from oto's
// playback goroutine.
func (b *Beeper) Read(p []byte) (int, error) {
	b.mu.Lock()
	freq := b.freq
	phase := b.phase
	b.mu.Unlock()

	numSamples := len(p) / 4
	step := freq / float64(b.sampleRate)
	for i := 0; i < numSamples; i++ {
		sample := float32(amplitude)
		if phase >= 0.5 {
			sample = -amplitude
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
		phase += step
		if phase >= 1 {
			phase -= 1
		}
	}

	b.mu.Lock()
	b.phase = phase
	b.mu.Unlock()

	return numSamples * 4, nil
}
