package ariston

import "context"

// NuosSplitDevice is the handle for Nuos Split heat pump water heaters,
// served by the slpPlantData document family. The operation mode lives in
// the opMode field; the mode field of the shared base holds the separate
// manual/program plant mode.
type NuosSplitDevice struct {
	velisDevice

	data *SlpPlantData
}

var _ Device = (*NuosSplitDevice)(nil)

func newNuosSplitDevice(api API, gateway Gateway, opts ...DeviceOption) *NuosSplitDevice {
	d := &NuosSplitDevice{}
	d.deviceBase = newDeviceBase(api, gateway)
	for _, opt := range opts {
		opt(&d.deviceBase)
	}
	d.plantData = PlantDataSlp
	d.antiLegionellaKey = SlpAntilegionellaOnOff
	d.maxSetpointKey = SlpMaxSetpointTemperature
	d.maxSetpointMinKey = SlpMaxSetpointTemperatureMin
	d.maxSetpointMaxKey = SlpMaxSetpointTemperatureMax
	d.modeOptions = []int{
		int(NuosSplitOperativeModeGreen),
		int(NuosSplitOperativeModeComfort),
		int(NuosSplitOperativeModeFast),
		int(NuosSplitOperativeModeIMemory),
	}
	d.modeTexts = []string{
		NuosSplitOperativeModeGreen.String(),
		NuosSplitOperativeModeComfort.String(),
		NuosSplitOperativeModeFast.String(),
		NuosSplitOperativeModeIMemory.String(),
	}
	return d
}

// UpdateState refreshes the slp plant-data document.
func (d *NuosSplitDevice) UpdateState() error {
	return d.UpdateStateContext(context.Background())
}

// UpdateStateContext refreshes the slp plant-data document. An appliance
// the service has no data for yields an empty document, not an error.
func (d *NuosSplitDevice) UpdateStateContext(ctx context.Context) error {
	data, err := d.api.GetSlpPlantDataContext(ctx, d.gateway.ID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &SlpPlantData{}
	}
	d.data = data
	d.plantBase = &data.VelisPlantBase
	return nil
}

// UpdateEnergy refreshes the heat pump and resistor consumption sequences.
func (d *NuosSplitDevice) UpdateEnergy() error {
	return d.UpdateEnergyContext(context.Background())
}

// UpdateEnergyContext refreshes the heat pump and resistor consumption
// sequences.
func (d *NuosSplitDevice) UpdateEnergyContext(ctx context.Context) error {
	return d.updateEnergy(ctx, UsagesDhwHeatingPump)
}

// WaterHeaterCurrentTemperature returns the cached water temperature.
func (d *NuosSplitDevice) WaterHeaterCurrentTemperature() *float64 {
	if d.data == nil {
		return nil
	}
	return d.data.WaterTemp
}

// WaterHeaterTargetTemperature returns the cached comfort setpoint.
func (d *NuosSplitDevice) WaterHeaterTargetTemperature() *float64 {
	if d.data == nil {
		return nil
	}
	return d.data.ComfortTemp
}

// WaterHeaterReducedTemperature returns the cached reduced setpoint.
func (d *NuosSplitDevice) WaterHeaterReducedTemperature() *float64 {
	if d.data == nil {
		return nil
	}
	return d.data.ReducedTemp
}

// WaterHeaterModeValue returns the cached operation mode. Nuos reports it
// in the opMode field, not the shared mode field.
func (d *NuosSplitDevice) WaterHeaterModeValue() *int {
	if d.data == nil {
		return nil
	}
	return d.data.OpMode
}

// WaterHeaterCurrentModeText returns the display name of the cached
// operation mode.
func (d *NuosSplitDevice) WaterHeaterCurrentModeText() string {
	return modeText(d.WaterHeaterModeValue(), d.modeOptions, d.modeTexts)
}

// Boost returns the cached boost state.
func (d *NuosSplitDevice) Boost() *bool {
	if d.data == nil {
		return nil
	}
	return d.data.BoostOn
}

// MinSetpointTemperature returns the configured lower bound for the target
// temperature.
func (d *NuosSplitDevice) MinSetpointTemperature() *float64 {
	return d.settingFloat(SlpMinSetpointTemperature)
}

// MinSetpointTemperatureMinimum returns the lowest accepted value for the
// min setpoint.
func (d *NuosSplitDevice) MinSetpointTemperatureMinimum() *float64 {
	return d.settingFloat(SlpMinSetpointTemperatureMin)
}

// MinSetpointTemperatureMaximum returns the highest accepted value for the
// min setpoint.
func (d *NuosSplitDevice) MinSetpointTemperatureMaximum() *float64 {
	return d.settingFloat(SlpMinSetpointTemperatureMax)
}

// Preheating returns the cached preheating setting.
func (d *NuosSplitDevice) Preheating() *bool {
	v, ok := d.settings.Bool(SlpPreHeatingOnOff)
	if !ok {
		return nil
	}
	return &v
}

// HeatingRate returns the cached heating rate setting.
func (d *NuosSplitDevice) HeatingRate() *float64 {
	return d.settingFloat(SlpHeatingRate)
}

// SetBoost switches the one-shot boost cycle.
func (d *NuosSplitDevice) SetBoost(boost bool) error {
	return d.SetBoostContext(context.Background(), boost)
}

// SetBoostContext switches the one-shot boost cycle.
func (d *NuosSplitDevice) SetBoostContext(ctx context.Context, boost bool) error {
	if err := d.api.SetNuosBoostContext(ctx, d.gateway.ID, boost); err != nil {
		return err
	}
	if d.data != nil {
		d.data.BoostOn = &boost
	}
	return nil
}

// setTemperatures writes the comfort and reduced setpoints as the pair the
// service expects, sending the cached pair as the old values.
func (d *NuosSplitDevice) setTemperatures(ctx context.Context, comfort, reduced float64) error {
	var oldComfort, oldReduced *float64
	if d.data != nil {
		oldComfort = d.data.ComfortTemp
		oldReduced = d.data.ReducedTemp
	}
	if err := d.api.SetNuosTemperatureContext(ctx, d.gateway.ID, comfort, reduced, oldComfort, oldReduced); err != nil {
		return err
	}
	if d.data != nil {
		d.data.ComfortTemp = &comfort
		d.data.ProcReqTemp = &comfort
		d.data.ReducedTemp = &reduced
	}
	return nil
}

// SetWaterHeaterTemperature writes the comfort setpoint, keeping the
// reduced setpoint as cached.
func (d *NuosSplitDevice) SetWaterHeaterTemperature(temperature float64) error {
	return d.SetWaterHeaterTemperatureContext(context.Background(), temperature)
}

// SetWaterHeaterTemperatureContext writes the comfort setpoint. The state
// document is fetched first when the handle does not hold one yet, because
// the service wants both setpoints in every write.
func (d *NuosSplitDevice) SetWaterHeaterTemperatureContext(ctx context.Context, temperature float64) error {
	if d.data == nil {
		if err := d.UpdateStateContext(ctx); err != nil {
			return err
		}
	}
	reduced := 0.0
	if v := d.WaterHeaterReducedTemperature(); v != nil {
		reduced = *v
	}
	return d.setTemperatures(ctx, temperature, reduced)
}

// SetWaterHeaterReducedTemperature writes the reduced setpoint, keeping the
// comfort setpoint as cached.
func (d *NuosSplitDevice) SetWaterHeaterReducedTemperature(temperature float64) error {
	return d.SetWaterHeaterReducedTemperatureContext(context.Background(), temperature)
}

// SetWaterHeaterReducedTemperatureContext writes the reduced setpoint.
func (d *NuosSplitDevice) SetWaterHeaterReducedTemperatureContext(ctx context.Context, temperature float64) error {
	if d.data == nil {
		if err := d.UpdateStateContext(ctx); err != nil {
			return err
		}
	}
	comfort := d.WaterHeaterMinimumTemperature()
	if v := d.WaterHeaterTargetTemperature(); v != nil {
		comfort = *v
	}
	return d.setTemperatures(ctx, comfort, temperature)
}

// SetWaterHeaterMode switches the operation mode by its display name, as
// listed by WaterHeaterModeOperationTexts. Names match case-insensitively.
func (d *NuosSplitDevice) SetWaterHeaterMode(mode string) error {
	return d.SetWaterHeaterModeContext(context.Background(), mode)
}

// SetWaterHeaterModeContext switches the operation mode by its display
// name. The accepted value is recorded in opMode, where the mode readers
// look.
func (d *NuosSplitDevice) SetWaterHeaterModeContext(ctx context.Context, mode string) error {
	value, err := d.modeValueForText(mode)
	if err != nil {
		return err
	}
	if err := d.api.SetNuosModeContext(ctx, d.gateway.ID, value); err != nil {
		return err
	}
	if d.data != nil {
		d.data.OpMode = &value
	}
	return nil
}

// SetMinSetpointTemperature reconfigures the lower bound for the target
// temperature.
func (d *NuosSplitDevice) SetMinSetpointTemperature(temperature float64) error {
	return d.SetMinSetpointTemperatureContext(context.Background(), temperature)
}

// SetMinSetpointTemperatureContext reconfigures the lower bound for the
// target temperature.
func (d *NuosSplitDevice) SetMinSetpointTemperatureContext(ctx context.Context, temperature float64) error {
	return d.setSettingFloat(ctx, SlpMinSetpointTemperature, temperature)
}

// SetPreheating switches the preheating setting.
func (d *NuosSplitDevice) SetPreheating(preheating bool) error {
	return d.SetPreheatingContext(context.Background(), preheating)
}

// SetPreheatingContext switches the preheating setting.
func (d *NuosSplitDevice) SetPreheatingContext(ctx context.Context, preheating bool) error {
	return d.setSettingBool(ctx, SlpPreHeatingOnOff, preheating)
}

// SetHeatingRate writes the heating rate setting.
func (d *NuosSplitDevice) SetHeatingRate(rate float64) error {
	return d.SetHeatingRateContext(context.Background(), rate)
}

// SetHeatingRateContext writes the heating rate setting.
func (d *NuosSplitDevice) SetHeatingRateContext(ctx context.Context, rate float64) error {
	return d.setSettingFloat(ctx, SlpHeatingRate, rate)
}
