package idle

import (
	"errors"
	"testing"
	"time"
)

func TestPresent(t *testing.T) {
	tests := []struct {
		name      string
		idle      time.Duration
		err       error
		threshold time.Duration
		want      bool
	}{
		{"active", 5 * time.Second, nil, time.Minute, true},
		{"idle past threshold", 2 * time.Hour, nil, 30 * time.Minute, false},
		{"exactly at threshold", time.Minute, nil, time.Minute, false},
		{"probe error fails open", 0, errors.New("boom"), time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := func() (time.Duration, error) { return tt.idle, tt.err }
			if got := present(probe, tt.threshold); got != tt.want {
				t.Errorf("present() = %t, want %t", got, tt.want)
			}
		})
	}
}
