package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Mavwarf/standby/internal/audio"
)

const timeout = 5 * time.Second

// Options identifies the broker and topic a heartbeat is published to.
type Options struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool
	Username string
	Password string
}

// Publish connects to the broker, publishes message, and disconnects. Each
// call uses a fresh connection; pulses are minutes apart.
func Publish(o Options, message string) error {
	opts := pahomqtt.NewClientOptions().
		AddBroker(o.Broker).
		SetClientID(o.ClientID).
		SetConnectTimeout(timeout)

	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(o.Topic, o.QoS, o.Retain, message)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}

type heartbeat struct {
	Event      string  `json:"event"`
	Time       string  `json:"time"`
	Frequency  float64 `json:"frequency"`
	Duration   float64 `json:"duration_seconds"`
	Amplitude  float64 `json:"amplitude"`
	SampleRate int     `json:"sample_rate"`
}

// PulseMessage renders the JSON payload announcing a played tone.
func PulseMessage(t audio.Tone, at time.Time) string {
	data, _ := json.Marshal(heartbeat{
		Event:      "pulse",
		Time:       at.Format(time.RFC3339),
		Frequency:  t.Frequency,
		Duration:   t.Duration.Seconds(),
		Amplitude:  t.Amplitude,
		SampleRate: t.SampleRate,
	})
	return string(data)
}
