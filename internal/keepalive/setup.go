package keepalive

import (
	"time"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/config"
	"github.com/Mavwarf/standby/internal/eventlog"
	"github.com/Mavwarf/standby/internal/idle"
	"github.com/Mavwarf/standby/internal/mqtt"
)

// FromConfig builds a Loop from cfg. store may be nil. When present_only is
// set the loop skips pulses while the user is idle past the AFK threshold;
// when an MQTT broker is set every pulse is also published.
func FromConfig(cfg config.Config, p Player, store eventlog.Store) *Loop {
	l := New(p, cfg.AudioTone(), cfg.Interval())
	l.Store = store
	if cfg.PresentOnly {
		l.Gate = PresenceGate(idle.Present, cfg.AFKThreshold())
	}
	if cfg.MQTT.Enabled() {
		l.Publish = Heartbeat(mqtt.Options{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			Topic:    cfg.MQTT.Topic,
			QoS:      cfg.MQTT.QoS,
			Retain:   cfg.MQTT.Retain,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		})
	}
	return l
}

// PresenceGate skips pulses while present(threshold) is false.
func PresenceGate(present func(time.Duration) bool, threshold time.Duration) Gate {
	return func() (bool, string) {
		if present(threshold) {
			return false, ""
		}
		return true, "user idle for more than " + threshold.String()
	}
}

// Heartbeat publishes a pulse message to the broker in o.
func Heartbeat(o mqtt.Options) func(audio.Tone) error {
	return func(t audio.Tone) error {
		return mqtt.Publish(o, mqtt.PulseMessage(t, time.Now()))
	}
}

// Chain combines gates; the first one that skips wins.
func Chain(gates ...Gate) Gate {
	return func() (bool, string) {
		for _, g := range gates {
			if g == nil {
				continue
			}
			if skip, reason := g(); skip {
				return true, reason
			}
		}
		return false, ""
	}
}
