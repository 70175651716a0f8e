package playback

import (
	"errors"
	"testing"

	"github.com/Mavwarf/standby/internal/audio"
)

func TestPlayToneRejectsBadSampleRate(t *testing.T) {
	tone := audio.DefaultTone()
	tone.SampleRate = 0
	err := PlayTone(tone)
	if !errors.Is(err, audio.ErrPlayback) {
		t.Fatalf("err = %v, want ErrPlayback", err)
	}
}
