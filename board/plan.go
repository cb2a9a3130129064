// Package board holds the wiring and operating parameters of the target
// board. The plan is chosen by build tag (see plan_*.go).
package board

import (
	"time"

	"co2gateway-go/hw"
)

// Plan specifies wiring and operating parameters chosen by a setup.
type Plan struct {
	Name string `yaml:"name"`

	LEDPin uint8 `yaml:"led_pin"` // P0 pin number

	// Sensor bus (TWIM0).
	SensorSDA uint8  `yaml:"sensor_sda"`
	SensorSCL uint8  `yaml:"sensor_scl"`
	SensorHz  uint32 `yaml:"sensor_hz"`

	// Oscillators.
	LFSource      hw.LFSource `yaml:"-"`
	LFAccuracyPPM uint16      `yaml:"lf_accuracy_ppm"`
	HFAccuracyPPM uint16      `yaml:"hf_accuracy_ppm"`

	// Gateway identity.
	HostName string  `yaml:"host_name"`
	MAC      [6]byte `yaml:"-"`

	BlinkPeriod  time.Duration `yaml:"-"`
	SamplePeriod time.Duration `yaml:"-"`
}

// Defaults used when a plan leaves a field zero.
const (
	DefaultSensorHz      = 100_000
	DefaultLFAccuracyPPM = 50
	DefaultHFAccuracyPPM = 30
	DefaultHostName      = "co2-sensor-gateway"
	DefaultBlinkPeriod   = time.Second
	DefaultSamplePeriod  = 5 * time.Second
)

// DefaultMAC is the locally administered address used by the USB Ethernet
// function.
var DefaultMAC = [6]byte{0xCC, 0xCC, 0xCC, 0xCC, 0xCC, 0xCC}

// WithDefaults fills zero fields. The LF source is left alone: its zero
// value (RC) is a valid choice.
func (p Plan) WithDefaults() Plan {
	if p.SensorHz == 0 {
		p.SensorHz = DefaultSensorHz
	}
	if p.LFAccuracyPPM == 0 {
		p.LFAccuracyPPM = DefaultLFAccuracyPPM
	}
	if p.HFAccuracyPPM == 0 {
		p.HFAccuracyPPM = DefaultHFAccuracyPPM
	}
	if p.HostName == "" {
		p.HostName = DefaultHostName
	}
	if p.MAC == ([6]byte{}) {
		p.MAC = DefaultMAC
	}
	if p.BlinkPeriod <= 0 {
		p.BlinkPeriod = DefaultBlinkPeriod
	}
	if p.SamplePeriod <= 0 {
		p.SamplePeriod = DefaultSamplePeriod
	}
	return p
}
