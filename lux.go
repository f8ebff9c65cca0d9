package ariston

import "context"

// LuxDevice is the handle for Velis Lux electric water heaters. It behaves
// like an Evo with a boost mode; while boosting, the reported target is the
// configured setpoint ceiling.
type LuxDevice struct {
	EvoDevice
}

var _ Device = (*LuxDevice)(nil)

// luxModeTable is shared by the Lux and Lydos Wi-Fi subfamilies.
func luxModeTable() ([]int, []string) {
	options := []int{int(LuxPlantModeManual), int(LuxPlantModeProgram), int(LuxPlantModeBoost)}
	texts := []string{LuxPlantModeManual.String(), LuxPlantModeProgram.String(), LuxPlantModeBoost.String()}
	return options, texts
}

func newLuxDevice(api API, gateway Gateway, opts ...DeviceOption) *LuxDevice {
	d := &LuxDevice{EvoDevice: *newEvoDevice(api, gateway, opts...)}
	d.modeOptions, d.modeTexts = luxModeTable()
	return d
}

// WaterHeaterTargetTemperature returns the requested temperature, or the
// setpoint ceiling while the heater is boosting.
func (d *LuxDevice) WaterHeaterTargetTemperature() *float64 {
	if mode := d.WaterHeaterModeValue(); mode != nil && *mode == int(LuxPlantModeBoost) {
		return d.MaxSetpointTemperatureMaximum()
	}
	if d.evoLydos == nil {
		return nil
	}
	return d.evoLydos.ReqTemp
}

// Lux2Device is the handle for Velis Lux2 electric water heaters: a Lux-era
// Evo with a writable power option.
type Lux2Device struct {
	EvoDevice
}

var _ Device = (*Lux2Device)(nil)

func newLux2Device(api API, gateway Gateway, opts ...DeviceOption) *Lux2Device {
	return &Lux2Device{EvoDevice: *newEvoDevice(api, gateway, opts...)}
}

// SetPowerOption switches the dual-power heating element.
func (d *Lux2Device) SetPowerOption(powerOption bool) error {
	return d.SetPowerOptionContext(context.Background(), powerOption)
}

// SetPowerOptionContext switches the dual-power heating element.
func (d *Lux2Device) SetPowerOptionContext(ctx context.Context, powerOption bool) error {
	if err := d.api.SetLuxPowerOptionContext(ctx, d.gateway.ID, powerOption); err != nil {
		return err
	}
	if d.data != nil {
		d.data.PwrOpt = &powerOption
	}
	return nil
}

// LydosDevice is the handle for Lydos Wi-Fi electric water heaters. Same
// document family and endpoints as Evo, with the Lux mode table.
type LydosDevice struct {
	EvoDevice
}

var _ Device = (*LydosDevice)(nil)

func newLydosDevice(api API, gateway Gateway, opts ...DeviceOption) *LydosDevice {
	d := &LydosDevice{EvoDevice: *newEvoDevice(api, gateway, opts...)}
	d.modeOptions, d.modeTexts = luxModeTable()
	return d
}
