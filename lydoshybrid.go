package ariston

import "context"

// LydosHybridDevice is the handle for Lydos Hybrid heat pump water heaters,
// served by the sePlantData document family. Beyond the shared velis
// surface it exposes the permanent boost, anti-cooling and night mode
// settings.
type LydosHybridDevice struct {
	evoLydosDevice

	data *SePlantData
}

var _ Device = (*LydosHybridDevice)(nil)

func newLydosHybridDevice(api API, gateway Gateway, opts ...DeviceOption) *LydosHybridDevice {
	d := &LydosHybridDevice{}
	d.deviceBase = newDeviceBase(api, gateway)
	for _, opt := range opts {
		opt(&d.deviceBase)
	}
	d.plantData = PlantDataSe
	d.antiLegionellaKey = SeAntilegionellaOnOff
	d.maxSetpointKey = SeMaxSetpointTemperature
	d.maxSetpointMinKey = SeMaxSetpointTemperatureMin
	d.maxSetpointMaxKey = SeMaxSetpointTemperatureMax
	d.modeOptions = []int{
		int(LydosPlantModeIMemory),
		int(LydosPlantModeGreen),
		int(LydosPlantModeProgram),
		int(LydosPlantModeBoost),
	}
	d.modeTexts = []string{
		LydosPlantModeIMemory.String(),
		LydosPlantModeGreen.String(),
		LydosPlantModeProgram.String(),
		LydosPlantModeBoost.String(),
	}
	return d
}

// UpdateState refreshes the se plant-data document.
func (d *LydosHybridDevice) UpdateState() error {
	return d.UpdateStateContext(context.Background())
}

// UpdateStateContext refreshes the se plant-data document. An appliance the
// service has no data for yields an empty document, not an error.
func (d *LydosHybridDevice) UpdateStateContext(ctx context.Context) error {
	data, err := d.api.GetSePlantDataContext(ctx, d.gateway.ID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &SePlantData{}
	}
	d.data = data
	d.evoLydos = &data.EvoLydosPlantData
	d.plantBase = &data.VelisPlantBase
	return nil
}

// UpdateEnergy refreshes the heat pump and resistor consumption sequences.
func (d *LydosHybridDevice) UpdateEnergy() error {
	return d.UpdateEnergyContext(context.Background())
}

// UpdateEnergyContext refreshes the heat pump and resistor consumption
// sequences.
func (d *LydosHybridDevice) UpdateEnergyContext(ctx context.Context) error {
	return d.updateEnergy(ctx, UsagesDhwHeatingPump)
}

// BoostRequestTemperature returns the setpoint the boost cycle drives to.
func (d *LydosHybridDevice) BoostRequestTemperature() *float64 {
	if d.data == nil {
		return nil
	}
	return d.data.BoostReqTemp
}

// ElectricConsumptionForWaterLastTwoHours returns the most recent heat pump
// electricity reading.
func (d *LydosHybridDevice) ElectricConsumptionForWaterLastTwoHours() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeDhwHeatingPumpElec, ConsumptionTimeIntervalLastDay)
}

// PermanentBoost returns the cached permanent boost setting.
func (d *LydosHybridDevice) PermanentBoost() bool {
	v, _ := d.settings.Bool(SePermanentBoostOnOff)
	return v
}

// AntiCooling returns the cached anti-cooling setting.
func (d *LydosHybridDevice) AntiCooling() bool {
	v, _ := d.settings.Bool(SeAntiCoolingOnOff)
	return v
}

// AntiCoolingTemperature returns the cached anti-cooling threshold.
func (d *LydosHybridDevice) AntiCoolingTemperature() *float64 {
	return d.settingFloat(SeAntiCoolingTemperature)
}

// AntiCoolingTemperatureMinimum returns the lowest accepted anti-cooling
// threshold.
func (d *LydosHybridDevice) AntiCoolingTemperatureMinimum() *float64 {
	return d.settingFloat(SeAntiCoolingTemperatureMin)
}

// AntiCoolingTemperatureMaximum returns the highest accepted anti-cooling
// threshold.
func (d *LydosHybridDevice) AntiCoolingTemperatureMaximum() *float64 {
	return d.settingFloat(SeAntiCoolingTemperatureMax)
}

// NightMode returns the cached night mode setting.
func (d *LydosHybridDevice) NightMode() bool {
	v, _ := d.settings.Bool(SeNightModeOnOff)
	return v
}

// NightModeBeginMinutes returns the night window start, minutes after
// midnight.
func (d *LydosHybridDevice) NightModeBeginMinutes() *float64 {
	return d.settingFloat(SeNightBeginAsMinutes)
}

// NightModeBeginMinutesMinimum returns the earliest accepted window start.
func (d *LydosHybridDevice) NightModeBeginMinutesMinimum() *float64 {
	return d.settingFloat(SeNightBeginMinAsMinutes)
}

// NightModeBeginMinutesMaximum returns the latest accepted window start.
func (d *LydosHybridDevice) NightModeBeginMinutesMaximum() *float64 {
	return d.settingFloat(SeNightBeginMaxAsMinutes)
}

// NightModeEndMinutes returns the night window end, minutes after midnight.
func (d *LydosHybridDevice) NightModeEndMinutes() *float64 {
	return d.settingFloat(SeNightEndAsMinutes)
}

// NightModeEndMinutesMinimum returns the earliest accepted window end.
func (d *LydosHybridDevice) NightModeEndMinutesMinimum() *float64 {
	return d.settingFloat(SeNightEndMinAsMinutes)
}

// NightModeEndMinutesMaximum returns the latest accepted window end.
func (d *LydosHybridDevice) NightModeEndMinutesMaximum() *float64 {
	return d.settingFloat(SeNightEndMaxAsMinutes)
}

// SetWaterHeaterTemperature writes the requested temperature.
func (d *LydosHybridDevice) SetWaterHeaterTemperature(temperature float64) error {
	return d.SetWaterHeaterTemperatureContext(context.Background(), temperature)
}

// SetWaterHeaterTemperatureContext writes the requested temperature.
func (d *LydosHybridDevice) SetWaterHeaterTemperatureContext(ctx context.Context, temperature float64) error {
	if err := d.api.SetLydosTemperatureContext(ctx, d.gateway.ID, temperature); err != nil {
		return err
	}
	if d.evoLydos != nil {
		d.evoLydos.ReqTemp = &temperature
	}
	return nil
}

// SetWaterHeaterMode switches the operation mode by its display name, as
// listed by WaterHeaterModeOperationTexts. Names match case-insensitively.
func (d *LydosHybridDevice) SetWaterHeaterMode(mode string) error {
	return d.SetWaterHeaterModeContext(context.Background(), mode)
}

// SetWaterHeaterModeContext switches the operation mode by its display
// name.
func (d *LydosHybridDevice) SetWaterHeaterModeContext(ctx context.Context, mode string) error {
	value, err := d.modeValueForText(mode)
	if err != nil {
		return err
	}
	if err := d.api.SetLydosModeContext(ctx, d.gateway.ID, value); err != nil {
		return err
	}
	d.storeMode(value)
	return nil
}

// SetPermanentBoost switches the permanent boost setting.
func (d *LydosHybridDevice) SetPermanentBoost(boost bool) error {
	return d.SetPermanentBoostContext(context.Background(), boost)
}

// SetPermanentBoostContext switches the permanent boost setting.
func (d *LydosHybridDevice) SetPermanentBoostContext(ctx context.Context, boost bool) error {
	return d.setSettingBool(ctx, SePermanentBoostOnOff, boost)
}

// SetAntiCooling switches the anti-cooling setting.
func (d *LydosHybridDevice) SetAntiCooling(antiCooling bool) error {
	return d.SetAntiCoolingContext(context.Background(), antiCooling)
}

// SetAntiCoolingContext switches the anti-cooling setting.
func (d *LydosHybridDevice) SetAntiCoolingContext(ctx context.Context, antiCooling bool) error {
	return d.setSettingBool(ctx, SeAntiCoolingOnOff, antiCooling)
}

// SetAntiCoolingTemperature writes the anti-cooling threshold.
func (d *LydosHybridDevice) SetAntiCoolingTemperature(temperature float64) error {
	return d.SetAntiCoolingTemperatureContext(context.Background(), temperature)
}

// SetAntiCoolingTemperatureContext writes the anti-cooling threshold.
func (d *LydosHybridDevice) SetAntiCoolingTemperatureContext(ctx context.Context, temperature float64) error {
	return d.setSettingFloat(ctx, SeAntiCoolingTemperature, temperature)
}

// SetNightMode switches the night mode setting.
func (d *LydosHybridDevice) SetNightMode(nightMode bool) error {
	return d.SetNightModeContext(context.Background(), nightMode)
}

// SetNightModeContext switches the night mode setting.
func (d *LydosHybridDevice) SetNightModeContext(ctx context.Context, nightMode bool) error {
	return d.setSettingBool(ctx, SeNightModeOnOff, nightMode)
}

// SetNightModeBeginMinutes writes the night window start, minutes after
// midnight.
func (d *LydosHybridDevice) SetNightModeBeginMinutes(minutes int) error {
	return d.SetNightModeBeginMinutesContext(context.Background(), minutes)
}

// SetNightModeBeginMinutesContext writes the night window start.
func (d *LydosHybridDevice) SetNightModeBeginMinutesContext(ctx context.Context, minutes int) error {
	return d.setSettingFloat(ctx, SeNightBeginAsMinutes, float64(minutes))
}

// SetNightModeEndMinutes writes the night window end, minutes after
// midnight.
func (d *LydosHybridDevice) SetNightModeEndMinutes(minutes int) error {
	return d.SetNightModeEndMinutesContext(context.Background(), minutes)
}

// SetNightModeEndMinutesContext writes the night window end.
func (d *LydosHybridDevice) SetNightModeEndMinutesContext(ctx context.Context, minutes int) error {
	return d.setSettingFloat(ctx, SeNightEndAsMinutes, float64(minutes))
}
