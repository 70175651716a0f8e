// Package playback plays audio tones on the default output device through
// oto.
package playback

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/Mavwarf/standby/internal/audio"
)

// oto allows a single context per process. It is opened on first use with
// the sample rate of the first tone; later tones are resampled to match.
var (
	ctxMu      sync.Mutex
	otoCtx     *oto.Context
	otoRate    int
	otoInitErr error
)

func getContext(sampleRate int) (*oto.Context, int, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()
	if otoCtx != nil || otoInitErr != nil {
		return otoCtx, otoRate, otoInitErr
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		otoInitErr = err
		return nil, 0, err
	}
	<-readyChan
	otoCtx, otoRate = ctx, sampleRate
	return otoCtx, otoRate, nil
}

// Player plays tones on the default output device.
type Player struct{}

// NewPlayer returns a Player backed by the shared oto context.
func NewPlayer() *Player {
	return &Player{}
}

// PlayTone synthesizes t and blocks until playback completes.
func (p *Player) PlayTone(t audio.Tone) error {
	return PlayTone(t)
}

// PlayTone synthesizes t and plays it on the default output device, blocking
// until playback completes. Errors wrap audio.ErrPlayback.
func PlayTone(t audio.Tone) error {
	if t.SampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate %d", audio.ErrPlayback, t.SampleRate)
	}
	ctx, rate, err := getContext(t.SampleRate)
	if err != nil {
		return fmt.Errorf("%w: initializing audio: %v", audio.ErrPlayback, err)
	}

	samples := audio.Resample(audio.Synthesize(t), t.SampleRate, rate)
	return playStereo16(ctx, audio.EncodeStereo16(samples))
}

// playStereo16 plays stereo 16-bit signed LE PCM through ctx.
func playStereo16(ctx *oto.Context, pcm []byte) error {
	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	for player.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}

	if err := player.Err(); err != nil {
		player.Close()
		return fmt.Errorf("%w: %v", audio.ErrPlayback, err)
	}
	if err := player.Close(); err != nil {
		return fmt.Errorf("%w: %v", audio.ErrPlayback, err)
	}
	return nil
}
