package ariston

import (
	"context"
	"time"
)

// evoLydosDevice adds the readers shared by the med and se document
// families, which report the same temperature block.
type evoLydosDevice struct {
	velisDevice

	// evoLydos aliases the shared section of the family state document,
	// nil until the first UpdateState.
	evoLydos *EvoLydosPlantData
}

// WaterHeaterCurrentTemperature returns the cached water temperature.
func (d *evoLydosDevice) WaterHeaterCurrentTemperature() *float64 {
	if d.evoLydos == nil {
		return nil
	}
	return d.evoLydos.Temp
}

// WaterHeaterTargetTemperature returns the cached requested temperature.
func (d *evoLydosDevice) WaterHeaterTargetTemperature() *float64 {
	if d.evoLydos == nil {
		return nil
	}
	return d.evoLydos.ReqTemp
}

// AvailableShowers returns the cached shower estimate.
func (d *evoLydosDevice) AvailableShowers() *int {
	if d.evoLydos == nil {
		return nil
	}
	return d.evoLydos.AvShw
}

// IsHeating returns the cached heat request flag.
func (d *evoLydosDevice) IsHeating() *bool {
	if d.evoLydos == nil {
		return nil
	}
	return d.evoLydos.HeatReq
}

// EvoDevice is the handle for Velis Evo, Andris2 and Evo2 electric water
// heaters, served by the medPlantData document family.
type EvoDevice struct {
	evoLydosDevice

	data *MedPlantData
}

var _ Device = (*EvoDevice)(nil)

func newEvoDevice(api API, gateway Gateway, opts ...DeviceOption) *EvoDevice {
	d := &EvoDevice{}
	d.deviceBase = newDeviceBase(api, gateway)
	for _, opt := range opts {
		opt(&d.deviceBase)
	}
	d.plantData = PlantDataMed
	d.antiLegionellaKey = MedAntilegionellaOnOff
	d.maxSetpointKey = MedMaxSetpointTemperature
	d.maxSetpointMinKey = MedMaxSetpointTemperatureMin
	d.maxSetpointMaxKey = MedMaxSetpointTemperatureMax
	d.modeOptions = []int{int(EvoPlantModeManual), int(EvoPlantModeProgram)}
	d.modeTexts = []string{EvoPlantModeManual.String(), EvoPlantModeProgram.String()}
	return d
}

// UpdateState refreshes the med plant-data document.
func (d *EvoDevice) UpdateState() error {
	return d.UpdateStateContext(context.Background())
}

// UpdateStateContext refreshes the med plant-data document. An appliance
// the service has no data for yields an empty document, not an error.
func (d *EvoDevice) UpdateStateContext(ctx context.Context) error {
	data, err := d.api.GetMedPlantDataContext(ctx, d.gateway.ID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &MedPlantData{}
	}
	d.data = data
	d.evoLydos = &data.EvoLydosPlantData
	d.plantBase = &data.VelisPlantBase
	return nil
}

// UpdateEnergy refreshes the hot water consumption sequences.
func (d *EvoDevice) UpdateEnergy() error {
	return d.UpdateEnergyContext(context.Background())
}

// UpdateEnergyContext refreshes the hot water consumption sequences.
func (d *EvoDevice) UpdateEnergyContext(ctx context.Context) error {
	return d.updateEnergy(ctx, UsagesDhw)
}

// Eco returns the cached eco-mode state.
func (d *EvoDevice) Eco() *bool {
	if d.data == nil {
		return nil
	}
	return d.data.Eco
}

// PowerOption returns the cached power option state.
func (d *EvoDevice) PowerOption() *bool {
	if d.data == nil {
		return nil
	}
	return d.data.PwrOpt
}

// RemainingTimeText returns the raw heat-up countdown, formatted HH:MM:SS.
func (d *EvoDevice) RemainingTimeText() *string {
	if d.data == nil {
		return nil
	}
	return d.data.RemainingTime
}

// RemainingTimeMinutes returns the heat-up countdown in minutes, -1 when
// unknown or unparseable.
func (d *EvoDevice) RemainingTimeMinutes() int {
	if d.data == nil || d.data.RemainingTime == nil {
		return -1
	}
	t, err := time.Parse("15:04:05", *d.data.RemainingTime)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// SetEcoMode switches eco mode.
func (d *EvoDevice) SetEcoMode(eco bool) error {
	return d.SetEcoModeContext(context.Background(), eco)
}

// SetEcoModeContext switches eco mode.
func (d *EvoDevice) SetEcoModeContext(ctx context.Context, eco bool) error {
	if err := d.api.SetEvoEcoModeContext(ctx, d.gateway.ID, eco); err != nil {
		return err
	}
	if d.data != nil {
		d.data.Eco = &eco
	}
	return nil
}

// SetWaterHeaterTemperature writes the requested temperature.
func (d *EvoDevice) SetWaterHeaterTemperature(temperature float64) error {
	return d.SetWaterHeaterTemperatureContext(context.Background(), temperature)
}

// SetWaterHeaterTemperatureContext writes the requested temperature.
func (d *EvoDevice) SetWaterHeaterTemperatureContext(ctx context.Context, temperature float64) error {
	if err := d.api.SetEvoTemperatureContext(ctx, d.gateway.ID, temperature); err != nil {
		return err
	}
	if d.evoLydos != nil {
		d.evoLydos.ReqTemp = &temperature
	}
	return nil
}

// SetWaterHeaterMode switches the operation mode by its display name, as
// listed by WaterHeaterModeOperationTexts. Names match case-insensitively.
func (d *EvoDevice) SetWaterHeaterMode(mode string) error {
	return d.SetWaterHeaterModeContext(context.Background(), mode)
}

// SetWaterHeaterModeContext switches the operation mode by its display
// name. The Lux and Lydos subfamilies share this endpoint with their own
// mode tables.
func (d *EvoDevice) SetWaterHeaterModeContext(ctx context.Context, mode string) error {
	value, err := d.modeValueForText(mode)
	if err != nil {
		return err
	}
	if err := d.api.SetEvoModeContext(ctx, d.gateway.ID, value); err != nil {
		return err
	}
	d.storeMode(value)
	return nil
}
