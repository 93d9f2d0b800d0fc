package climate

import (
	"context"
	"sync"

	"heating_scheduler/internal/clock"
	"heating_scheduler/internal/models"
)

// Simulation constants for a single radiator valve heating a room.
const (
	AmbientC          = 16.0  // room temperature with heating off °C
	DefaultTargetC    = 21.0  // TRV set point °C
	MinTargetC        = 5.0   // lowest accepted set point °C
	MaxTargetC        = 30.0  // highest accepted set point °C
	RampUpCPerSec     = 0.005 // °C per second while heating
	CoolDownCPerSec   = 0.002 // °C per second drift toward ambient
	SoakToleranceC    = 0.2   // °C band for "at target"
	simulatedMaxStepS = 3600  // cap on elapsed seconds per step
)

// SimulatedDevice is an in-process stand-in for a heating valve. Time is taken
// from the clock so the thermal model advances between observations.
type SimulatedDevice struct {
	mu      sync.Mutex
	clock   clock.Clock
	tempC   float64
	targetC float64
	heating bool
	last    int64 // unix nanos of last step
	fault   error
}

func NewSimulatedDevice(c clock.Clock) *SimulatedDevice {
	return &SimulatedDevice{
		clock:   c,
		tempC:   AmbientC,
		targetC: DefaultTargetC,
		last:    c.Now().UnixNano(),
	}
}

// SetFault makes every subsequent device operation return err. nil clears it.
func (d *SimulatedDevice) SetFault(err error) {
	d.mu.Lock()
	d.fault = err
	d.mu.Unlock()
}

// Read returns the current temperature and whether the valve is heating.
func (d *SimulatedDevice) Read() (float64, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fault != nil {
		return 0, false, d.fault
	}
	d.step()
	return d.tempC, d.heating, nil
}

func (d *SimulatedDevice) SetHeating(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fault != nil {
		return d.fault
	}
	d.step()
	d.heating = on
	return nil
}

func (d *SimulatedDevice) SetTarget(celsius float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fault != nil {
		return d.fault
	}
	d.step()
	d.targetC = min(max(celsius, MinTargetC), MaxTargetC)
	return nil
}

// step advances the thermal model to now. Caller holds mu.
func (d *SimulatedDevice) step() {
	now := d.clock.Now().UnixNano()
	elapsed := float64(now-d.last) / 1e9
	if elapsed <= 0 {
		return
	}
	d.last = now
	if elapsed > simulatedMaxStepS {
		elapsed = simulatedMaxStepS
	}

	if d.heating && d.tempC < d.targetC-SoakToleranceC {
		d.tempC = min(d.tempC+RampUpCPerSec*elapsed, d.targetC)
		return
	}
	floor := AmbientC
	if d.heating {
		// Thermostat holds the room at target.
		floor = d.targetC - SoakToleranceC
	}
	if d.tempC > floor {
		d.tempC = max(d.tempC-CoolDownCPerSec*elapsed, floor)
	}
}

// SimulatedEntity drives a SimulatedDevice. Clones share the device.
type SimulatedEntity struct {
	record
	device *SimulatedDevice
}

var (
	_ Entity            = (*SimulatedEntity)(nil)
	_ TemperatureSetter = (*SimulatedEntity)(nil)
)

func NewSimulatedEntity(entityID string, device *SimulatedDevice) *SimulatedEntity {
	return &SimulatedEntity{record: record{id: entityID}, device: device}
}

func (e *SimulatedEntity) Device() *SimulatedDevice { return e.device }

func (e *SimulatedEntity) FetchAndUpdateState(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	temp, heating, err := e.device.Read()
	if err != nil {
		return err
	}
	state := models.HeatingOff
	if heating {
		state = models.HeatingOn
	}
	e.cached = &models.ClimateInfo{CurrentTemperature: temp, State: state}
	return nil
}

func (e *SimulatedEntity) TurnOn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.device.SetHeating(true)
}

func (e *SimulatedEntity) TurnOff(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.device.SetHeating(false)
}

func (e *SimulatedEntity) SetTemperature(ctx context.Context, celsius float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.device.SetTarget(celsius)
}

func (e *SimulatedEntity) Clone() Entity {
	return &SimulatedEntity{record: e.record.clone(), device: e.device}
}
