package ariston

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// velisDevice is the handle base shared by the velis water heater families.
// Each family sets the plant-data segment, the setting keys and the mode
// tables at construction, and points plantBase at its typed state document
// on every refresh so the shared readers and optimistic writes see it.
type velisDevice struct {
	deviceBase

	plantData PlantData
	settings  PlantSettings

	antiLegionellaKey string
	maxSetpointKey    string
	maxSetpointMinKey string
	maxSetpointMaxKey string

	modeOptions []int
	modeTexts   []string

	// plantBase aliases the family state document, nil until the first
	// UpdateState.
	plantBase *VelisPlantBase
}

// GetFeatures fetches the feature document, marks the hot water
// capabilities every velis appliance has and refreshes the plant settings.
func (d *velisDevice) GetFeatures() (*Features, error) {
	return d.GetFeaturesContext(context.Background())
}

// GetFeaturesContext fetches the feature document, marks the hot water
// capabilities every velis appliance has and refreshes the plant settings.
func (d *velisDevice) GetFeaturesContext(ctx context.Context) (*Features, error) {
	features, err := d.getFeatures(ctx)
	if err != nil {
		return nil, err
	}
	d.custom[CustomFeatureHasDhw] = true
	features.DhwModeChangeable = true
	if err := d.UpdateSettingsContext(ctx); err != nil {
		return nil, err
	}
	return features, nil
}

// UpdateSettings refreshes the writable plant settings document.
func (d *velisDevice) UpdateSettings() error {
	return d.UpdateSettingsContext(context.Background())
}

// UpdateSettingsContext refreshes the writable plant settings document.
func (d *velisDevice) UpdateSettingsContext(ctx context.Context) error {
	settings, err := d.api.GetVelisPlantSettingsContext(ctx, d.plantData, d.gateway.ID)
	if err != nil {
		return err
	}
	d.settings = settings
	return nil
}

// Settings returns the cached plant settings document.
func (d *velisDevice) Settings() PlantSettings {
	return d.settings
}

// On returns the cached power state, nil before the first UpdateState.
func (d *velisDevice) On() *bool {
	if d.plantBase == nil {
		return nil
	}
	return d.plantBase.On
}

// SetPower switches the water heater on or off.
func (d *velisDevice) SetPower(power bool) error {
	return d.SetPowerContext(context.Background(), power)
}

// SetPowerContext switches the water heater on or off.
func (d *velisDevice) SetPowerContext(ctx context.Context, power bool) error {
	if err := d.api.SetVelisPowerContext(ctx, d.plantData, d.gateway.ID, power); err != nil {
		return err
	}
	if d.plantBase != nil {
		d.plantBase.On = &power
	}
	return nil
}

// WaterHeaterModeValue returns the cached operation mode wire value, nil
// before the first UpdateState.
func (d *velisDevice) WaterHeaterModeValue() *int {
	if d.plantBase == nil {
		return nil
	}
	return d.plantBase.Mode
}

// WaterHeaterModeOptions returns the wire values of the family's operation
// modes.
func (d *velisDevice) WaterHeaterModeOptions() []int {
	return slices.Clone(d.modeOptions)
}

// WaterHeaterModeOperationTexts returns the display names of the family's
// operation modes, index-aligned with WaterHeaterModeOptions.
func (d *velisDevice) WaterHeaterModeOperationTexts() []string {
	return slices.Clone(d.modeTexts)
}

// WaterHeaterCurrentModeText returns the display name of the cached mode.
func (d *velisDevice) WaterHeaterCurrentModeText() string {
	return modeText(d.WaterHeaterModeValue(), d.modeOptions, d.modeTexts)
}

// modeValueForText resolves a mode display name, case-insensitively, to its
// wire value.
func (d *velisDevice) modeValueForText(mode string) (int, error) {
	for i, text := range d.modeTexts {
		if i < len(d.modeOptions) && strings.EqualFold(text, mode) {
			return d.modeOptions[i], nil
		}
	}
	return 0, fmt.Errorf("ariston: unknown water heater mode %q", mode)
}

// storeMode records an accepted mode write in the cached state.
func (d *velisDevice) storeMode(mode int) {
	if d.plantBase != nil {
		d.plantBase.Mode = &mode
	}
}

// AntiLegionellaOn returns the cached anti-legionella setting, nil before
// the first UpdateSettings.
func (d *velisDevice) AntiLegionellaOn() *bool {
	v, ok := d.settings.Bool(d.antiLegionellaKey)
	if !ok {
		return nil
	}
	return &v
}

// SetAntiLegionella switches the periodic anti-legionella cycle.
func (d *velisDevice) SetAntiLegionella(antiLeg bool) error {
	return d.SetAntiLegionellaContext(context.Background(), antiLeg)
}

// SetAntiLegionellaContext switches the periodic anti-legionella cycle.
func (d *velisDevice) SetAntiLegionellaContext(ctx context.Context, antiLeg bool) error {
	return d.setSettingBool(ctx, d.antiLegionellaKey, antiLeg)
}

// MaxSetpointTemperature returns the configured upper bound for the target
// temperature, nil before the first UpdateSettings.
func (d *velisDevice) MaxSetpointTemperature() *float64 {
	return d.settingFloat(d.maxSetpointKey)
}

// MaxSetpointTemperatureMinimum returns the lowest accepted value for the
// max setpoint.
func (d *velisDevice) MaxSetpointTemperatureMinimum() *float64 {
	return d.settingFloat(d.maxSetpointMinKey)
}

// MaxSetpointTemperatureMaximum returns the highest accepted value for the
// max setpoint.
func (d *velisDevice) MaxSetpointTemperatureMaximum() *float64 {
	return d.settingFloat(d.maxSetpointMaxKey)
}

// SetMaxSetpointTemperature reconfigures the upper bound for the target
// temperature.
func (d *velisDevice) SetMaxSetpointTemperature(temperature float64) error {
	return d.SetMaxSetpointTemperatureContext(context.Background(), temperature)
}

// SetMaxSetpointTemperatureContext reconfigures the upper bound for the
// target temperature.
func (d *velisDevice) SetMaxSetpointTemperatureContext(ctx context.Context, temperature float64) error {
	return d.setSettingFloat(ctx, d.maxSetpointKey, temperature)
}

// WaterHeaterMinimumTemperature returns the fixed lower bound velis
// targets accept.
func (d *velisDevice) WaterHeaterMinimumTemperature() float64 {
	return 40
}

// WaterHeaterMaximumTemperature returns the configured max setpoint.
func (d *velisDevice) WaterHeaterMaximumTemperature() *float64 {
	return d.MaxSetpointTemperature()
}

// WaterHeaterTemperatureStep returns the target resolution in degrees.
func (d *velisDevice) WaterHeaterTemperatureStep() float64 {
	return 1
}

// WaterHeaterTemperatureDecimals returns the display precision of
// temperatures.
func (d *velisDevice) WaterHeaterTemperatureDecimals() int {
	return 0
}

// WaterHeaterTemperatureUnit returns the temperature unit symbol.
func (d *velisDevice) WaterHeaterTemperatureUnit() string {
	return "°C"
}

// settingFloat reads one numeric plant setting, nil when absent.
func (d *velisDevice) settingFloat(key string) *float64 {
	v, ok := d.settings.Float(key)
	if !ok {
		return nil
	}
	return &v
}

// setSettingFloat writes one numeric plant setting and records the
// accepted value in the cache.
func (d *velisDevice) setSettingFloat(ctx context.Context, key string, value float64) error {
	old, _ := d.settings.Float(key)
	if err := d.api.SetVelisPlantSettingContext(ctx, d.plantData, d.gateway.ID, key, value, old); err != nil {
		return err
	}
	if d.settings == nil {
		d.settings = PlantSettings{}
	}
	d.settings[key] = value
	return nil
}

// setSettingBool writes one boolean plant setting. Booleans travel as 1
// and 0 on the wire.
func (d *velisDevice) setSettingBool(ctx context.Context, key string, value bool) error {
	var newVal, oldVal float64
	if value {
		newVal = 1
	}
	if cur, ok := d.settings.Bool(key); ok && cur {
		oldVal = 1
	}
	if err := d.api.SetVelisPlantSettingContext(ctx, d.plantData, d.gateway.ID, key, newVal, oldVal); err != nil {
		return err
	}
	if d.settings == nil {
		d.settings = PlantSettings{}
	}
	d.settings[key] = value
	return nil
}
