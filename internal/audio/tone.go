// Package audio synthesizes the keep-alive tone and encodes it as PCM or WAV.
// Playing it is left to the playback package so that tools which only need
// the tone parameters do not link an audio backend.
package audio

import (
	"errors"
	"math"
	"time"
)

// ErrPlayback is wrapped by every error a tone player returns: no usable
// output device, or a failure inside the audio backend.
var ErrPlayback = errors.New("playback failed")

// Compiled-in keep-alive tone. 60 Hz is below what most listeners notice at
// this level, and 0.05 keeps the signal far from clipping.
const (
	DefaultFrequency  = 60.0
	DefaultDuration   = 5 * time.Second
	DefaultAmplitude  = 0.05
	DefaultSampleRate = 44100
)

// fadeMillis is the length of the linear fade applied at both ends of a tone.
const fadeMillis = 5

// Tone describes a single sine burst. Values are policy supplied by the
// caller and are not validated here.
type Tone struct {
	Frequency  float64       // Hz
	Duration   time.Duration // playback length
	Amplitude  float64       // 0 < a <= 1
	SampleRate int           // Hz
}

// DefaultTone returns the compiled-in keep-alive tone.
func DefaultTone() Tone {
	return Tone{
		Frequency:  DefaultFrequency,
		Duration:   DefaultDuration,
		Amplitude:  DefaultAmplitude,
		SampleRate: DefaultSampleRate,
	}
}

// Samples returns the number of mono samples the tone synthesizes to.
func (t Tone) Samples() int {
	n := int(math.Round(t.Duration.Seconds() * float64(t.SampleRate)))
	if n < 0 {
		return 0
	}
	return n
}

// Synthesize renders the tone as mono float64 samples. Every sample lies
// within [-Amplitude, Amplitude].
func Synthesize(t Tone) []float64 {
	n := t.Samples()
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	// Envelope to avoid clicks; shrinks for very short tones.
	fade := t.SampleRate * fadeMillis / 1000
	if fade*2 > n {
		fade = n / 2
	}

	step := 2 * math.Pi * t.Frequency / float64(t.SampleRate)
	for i := range n {
		envelope := 1.0
		if fade > 0 {
			if i < fade {
				envelope = float64(i) / float64(fade)
			} else if i > n-fade {
				envelope = float64(n-i) / float64(fade)
			}
		}
		out[i] = t.Amplitude * envelope * math.Sin(step*float64(i))
	}
	return out
}

// EncodeStereo16 converts mono samples in [-1, 1] to stereo 16-bit signed
// little-endian PCM, duplicating each sample into both channels.
func EncodeStereo16(samples []float64) []byte {
	// 4 bytes per frame (2 channels x 2 bytes per sample)
	buf := make([]byte, 0, len(samples)*4)
	for _, s := range samples {
		v := clamp16(s)
		lo := byte(v)
		hi := byte(v >> 8)
		buf = append(buf, lo, hi, lo, hi) // L + R
	}
	return buf
}

// Resample converts mono samples from srcRate to dstRate using linear
// interpolation.
func Resample(samples []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(srcRate) / float64(dstRate)
	dstLen := int(math.Ceil(float64(len(samples)) / ratio))
	out := make([]float64, dstLen)

	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := pos - float64(idx)

		if idx+1 < len(samples) {
			out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
		} else if idx < len(samples) {
			out[i] = samples[idx]
		}
	}
	return out
}

// clamp16 converts a float64 in [-1, 1] to int16, clamping to avoid overflow.
func clamp16(f float64) int16 {
	s := f * 32767.0
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}
