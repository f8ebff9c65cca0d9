package ariston

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BSB zone setpoint bounds the service omits from the document; the vendor
// app hard-codes these.
const (
	bsbComfortTempMinDefault = 15.0
	bsbComfortTempMaxDefault = 24.0
	bsbReducedTempMinDefault = 10.0
	bsbReducedTempMaxDefault = 18.0
	bsbZoneTempStepDefault   = 0.5
)

// BsbDevice is the handle for BSB-platform boilers. State lives in a single
// typed document with per-zone sub-documents keyed by zone number.
type BsbDevice struct {
	deviceBase

	data *BsbPlantData
}

var _ Device = (*BsbDevice)(nil)

func newBsbDevice(api API, gateway Gateway, opts ...DeviceOption) *BsbDevice {
	d := &BsbDevice{deviceBase: newDeviceBase(api, gateway)}
	for _, opt := range opts {
		opt(&d.deviceBase)
	}
	return d
}

// GetFeatures fetches the feature document. Every BSB plant heats water and
// reports an outdoor temperature, so both capabilities are marked directly.
func (d *BsbDevice) GetFeatures() (*Features, error) {
	return d.GetFeaturesContext(context.Background())
}

// GetFeaturesContext fetches the feature document. Every BSB plant heats
// water and reports an outdoor temperature, so both capabilities are marked
// directly.
func (d *BsbDevice) GetFeaturesContext(ctx context.Context) (*Features, error) {
	features, err := d.getFeatures(ctx)
	if err != nil {
		return nil, err
	}
	d.custom[CustomFeatureHasDhw] = true
	d.custom[CustomFeatureHasOutsideTemp] = true
	return features, nil
}

// UpdateState refreshes the bsb plant-data document.
func (d *BsbDevice) UpdateState() error {
	return d.UpdateStateContext(context.Background())
}

// UpdateStateContext refreshes the bsb plant-data document. An appliance
// the service has no data for yields an empty document, not an error.
func (d *BsbDevice) UpdateStateContext(ctx context.Context) error {
	data, err := d.api.GetBsbPlantDataContext(ctx, d.gateway.ID)
	if err != nil {
		return err
	}
	if data == nil {
		data = &BsbPlantData{}
	}
	d.data = data
	return nil
}

// UpdateEnergy refreshes the heating and hot water consumption sequences.
func (d *BsbDevice) UpdateEnergy() error {
	return d.UpdateEnergyContext(context.Background())
}

// UpdateEnergyContext refreshes the heating and hot water consumption
// sequences.
func (d *BsbDevice) UpdateEnergyContext(ctx context.Context) error {
	return d.updateEnergy(ctx, UsagesChDhw)
}

// Zones returns the cached zone documents, keyed by zone number rendered as
// a string.
func (d *BsbDevice) Zones() map[string]*BsbZoneData {
	if d.data == nil {
		return nil
	}
	return d.data.Zones
}

// ZoneNumbers returns the zone numbers present in the state document, in
// ascending order.
func (d *BsbDevice) ZoneNumbers() []int {
	if d.data == nil {
		return nil
	}
	nums := make([]int, 0, len(d.data.Zones))
	for key := range d.data.Zones {
		if n, err := strconv.Atoi(key); err == nil {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums
}

// zone returns one cached zone document, nil when absent.
func (d *BsbDevice) zone(zone int) *BsbZoneData {
	if d.data == nil {
		return nil
	}
	return d.data.Zones[strconv.Itoa(zone)]
}

// ZoneMode returns a zone's cached operating mode.
func (d *BsbDevice) ZoneMode(zone int) BsbZoneMode {
	z := d.zone(zone)
	if z == nil || z.Mode == nil {
		return BsbZoneModeUndefined
	}
	return BsbZoneMode(z.Mode.Value)
}

// ZoneModeOptions returns the modes a zone accepts.
func (d *BsbDevice) ZoneModeOptions(zone int) []int {
	z := d.zone(zone)
	if z == nil || z.Mode == nil {
		return nil
	}
	return z.Mode.AllowedOptions
}

// IsPlantInCoolMode reports whether the first zone is cooling.
func (d *BsbDevice) IsPlantInCoolMode() bool {
	nums := d.ZoneNumbers()
	if len(nums) == 0 {
		return false
	}
	z := d.zone(nums[0])
	return z != nil && z.CoolingOn
}

// IsPlantInHeatMode reports whether the plant heats in its current mode.
func (d *BsbDevice) IsPlantInHeatMode() bool {
	return !d.IsPlantInCoolMode()
}

// IsZoneInManualMode reports whether the zone follows a manual setpoint.
func (d *BsbDevice) IsZoneInManualMode(zone int) bool {
	mode := d.ZoneMode(zone)
	return mode == BsbZoneModeManual || mode == BsbZoneModeManualNight
}

// IsZoneInTimeProgramMode reports whether the zone follows its schedule.
func (d *BsbDevice) IsZoneInTimeProgramMode(zone int) bool {
	return d.ZoneMode(zone) == BsbZoneModeTimeProgram
}

// ZoneModeOptionsContainsManual reports whether the zone accepts a manual
// mode.
func (d *BsbDevice) ZoneModeOptionsContainsManual(zone int) bool {
	options := d.ZoneModeOptions(zone)
	for _, option := range options {
		if option == int(BsbZoneModeManual) || option == int(BsbZoneModeManualNight) {
			return true
		}
	}
	return false
}

// ZoneModeOptionsContainsTimeProgram reports whether the zone accepts a
// scheduled mode.
func (d *BsbDevice) ZoneModeOptionsContainsTimeProgram(zone int) bool {
	for _, option := range d.ZoneModeOptions(zone) {
		if option == int(BsbZoneModeTimeProgram) {
			return true
		}
	}
	return false
}

// ZoneModeOptionsContainsOff reports whether the zone can be switched off.
func (d *BsbDevice) ZoneModeOptionsContainsOff(zone int) bool {
	for _, option := range d.ZoneModeOptions(zone) {
		if option == int(BsbZoneModeOff) {
			return true
		}
	}
	return false
}

// IsFlameOn returns the cached burner state.
func (d *BsbDevice) IsFlameOn() bool {
	return d.data != nil && d.data.Flame
}

// OutsideTemp returns the cached outdoor temperature, 0 when unknown.
func (d *BsbDevice) OutsideTemp() float64 {
	if d.data == nil || d.data.OutTemp == nil {
		return 0
	}
	return *d.data.OutTemp
}

// OutsideTempUnit returns the outdoor temperature unit symbol.
func (d *BsbDevice) OutsideTempUnit() string {
	return "°C"
}

// WaterHeaterCurrentTemperature returns the cached hot water temperature.
func (d *BsbDevice) WaterHeaterCurrentTemperature() *float64 {
	if d.data == nil {
		return nil
	}
	return d.data.DhwTemp
}

// WaterHeaterTargetTemperature returns the cached comfort setpoint.
func (d *BsbDevice) WaterHeaterTargetTemperature() *float64 {
	if d.data == nil || d.data.DhwComfTemp == nil {
		return nil
	}
	return &d.data.DhwComfTemp.Value
}

// WaterHeaterMinimumTemperature returns the lowest accepted comfort
// setpoint.
func (d *BsbDevice) WaterHeaterMinimumTemperature() float64 {
	if d.data == nil || d.data.DhwComfTemp == nil {
		return 0
	}
	return d.data.DhwComfTemp.Min
}

// WaterHeaterMaximumTemperature returns the highest accepted comfort
// setpoint.
func (d *BsbDevice) WaterHeaterMaximumTemperature() *float64 {
	if d.data == nil || d.data.DhwComfTemp == nil {
		return nil
	}
	return &d.data.DhwComfTemp.Max
}

// WaterHeaterTemperatureStep returns the comfort setpoint resolution.
func (d *BsbDevice) WaterHeaterTemperatureStep() float64 {
	if d.data == nil || d.data.DhwComfTemp == nil {
		return 0
	}
	return d.data.DhwComfTemp.Step
}

// WaterHeaterTemperatureDecimals returns the hot water display precision.
func (d *BsbDevice) WaterHeaterTemperatureDecimals() int {
	return 1
}

// WaterHeaterTemperatureUnit returns the hot water temperature unit symbol.
func (d *BsbDevice) WaterHeaterTemperatureUnit() string {
	return "°C"
}

// WaterHeaterReducedTemperature returns the cached reduced setpoint.
func (d *BsbDevice) WaterHeaterReducedTemperature() *float64 {
	if d.data == nil || d.data.DhwReduTemp == nil {
		return nil
	}
	return &d.data.DhwReduTemp.Value
}

// WaterHeaterReducedMinimumTemperature returns the lowest accepted reduced
// setpoint.
func (d *BsbDevice) WaterHeaterReducedMinimumTemperature() *float64 {
	if d.data == nil || d.data.DhwReduTemp == nil {
		return nil
	}
	return &d.data.DhwReduTemp.Min
}

// WaterHeaterReducedMaximumTemperature returns the highest accepted reduced
// setpoint.
func (d *BsbDevice) WaterHeaterReducedMaximumTemperature() *float64 {
	if d.data == nil || d.data.DhwReduTemp == nil {
		return nil
	}
	return &d.data.DhwReduTemp.Max
}

// WaterHeaterReducedTemperatureStep returns the reduced setpoint
// resolution.
func (d *BsbDevice) WaterHeaterReducedTemperatureStep() *float64 {
	if d.data == nil || d.data.DhwReduTemp == nil {
		return nil
	}
	return &d.data.DhwReduTemp.Step
}

// WaterHeaterModeOptions returns the hot water modes BSB plants accept.
func (d *BsbDevice) WaterHeaterModeOptions() []int {
	return []int{int(BsbOperativeModeOff), int(BsbOperativeModeOn)}
}

// WaterHeaterModeOperationTexts returns the hot water mode display names.
func (d *BsbDevice) WaterHeaterModeOperationTexts() []string {
	return []string{BsbOperativeModeOff.String(), BsbOperativeModeOn.String()}
}

// WaterHeaterModeValue returns the cached hot water mode wire value.
func (d *BsbDevice) WaterHeaterModeValue() *int {
	if d.data == nil || d.data.DhwMode == nil {
		return nil
	}
	return &d.data.DhwMode.Value
}

// WaterHeaterCurrentModeText returns the display name of the cached hot
// water mode.
func (d *BsbDevice) WaterHeaterCurrentModeText() string {
	return modeText(d.WaterHeaterModeValue(), d.WaterHeaterModeOptions(), d.WaterHeaterModeOperationTexts())
}

// ZoneComfortTemp returns a zone's comfort setpoint, 0 when unknown.
func (d *BsbDevice) ZoneComfortTemp(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChComfTemp != nil {
		return z.ChComfTemp.Value
	}
	return 0
}

// ZoneComfortTempMin returns the lowest accepted comfort setpoint.
func (d *BsbDevice) ZoneComfortTempMin(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChComfTemp != nil && z.ChComfTemp.Min != 0 {
		return z.ChComfTemp.Min
	}
	return bsbComfortTempMinDefault
}

// ZoneComfortTempMax returns the highest accepted comfort setpoint.
func (d *BsbDevice) ZoneComfortTempMax(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChComfTemp != nil && z.ChComfTemp.Max != 0 {
		return z.ChComfTemp.Max
	}
	return bsbComfortTempMaxDefault
}

// ZoneComfortTempStep returns the comfort setpoint resolution.
func (d *BsbDevice) ZoneComfortTempStep(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChComfTemp != nil && z.ChComfTemp.Step != 0 {
		return z.ChComfTemp.Step
	}
	return bsbZoneTempStepDefault
}

// ZoneReducedTemp returns a zone's reduced setpoint, 0 when unknown.
func (d *BsbDevice) ZoneReducedTemp(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChRedTemp != nil {
		return z.ChRedTemp.Value
	}
	return 0
}

// ZoneReducedTempMin returns the lowest accepted reduced setpoint.
func (d *BsbDevice) ZoneReducedTempMin(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChRedTemp != nil && z.ChRedTemp.Min != 0 {
		return z.ChRedTemp.Min
	}
	return bsbReducedTempMinDefault
}

// ZoneReducedTempMax returns the highest accepted reduced setpoint.
func (d *BsbDevice) ZoneReducedTempMax(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChRedTemp != nil && z.ChRedTemp.Max != 0 {
		return z.ChRedTemp.Max
	}
	return bsbReducedTempMaxDefault
}

// ZoneReducedTempStep returns the reduced setpoint resolution.
func (d *BsbDevice) ZoneReducedTempStep(zone int) float64 {
	if z := d.zone(zone); z != nil && z.ChRedTemp != nil && z.ChRedTemp.Step != 0 {
		return z.ChRedTemp.Step
	}
	return bsbZoneTempStepDefault
}

// ZoneMeasuredTemp returns a zone's room temperature, 0 when unknown.
func (d *BsbDevice) ZoneMeasuredTemp(zone int) float64 {
	if z := d.zone(zone); z != nil && z.RoomTemp != nil {
		return *z.RoomTemp
	}
	return 0
}

// ZoneMeasuredTempDecimals returns a zone's room temperature display
// precision.
func (d *BsbDevice) ZoneMeasuredTempDecimals(zone int) int {
	return 1
}

// ZoneMeasuredTempUnit returns a zone's room temperature unit symbol.
func (d *BsbDevice) ZoneMeasuredTempUnit(zone int) string {
	return "°C"
}

// ZoneHeatRequest returns whether the zone is calling for heating or
// cooling.
func (d *BsbDevice) ZoneHeatRequest(zone int) bool {
	z := d.zone(zone)
	return z != nil && z.HeatOrCoolReq
}

// setTemperatures writes the hot water comfort and reduced setpoints as the
// pair the service expects, sending the cached pair as the old values.
func (d *BsbDevice) setTemperatures(ctx context.Context, comfort, reduced float64) error {
	oldComfort := d.WaterHeaterTargetTemperature()
	oldReduced := d.WaterHeaterReducedTemperature()
	if err := d.api.SetBsbTemperatureContext(ctx, d.gateway.ID, comfort, reduced, oldComfort, oldReduced); err != nil {
		return err
	}
	if d.data != nil {
		if d.data.DhwComfTemp != nil {
			d.data.DhwComfTemp.Value = comfort
		}
		if d.data.DhwReduTemp != nil {
			d.data.DhwReduTemp.Value = reduced
		}
	}
	return nil
}

// SetWaterHeaterTemperature writes the hot water comfort setpoint, keeping
// the reduced setpoint as cached.
func (d *BsbDevice) SetWaterHeaterTemperature(temperature float64) error {
	return d.SetWaterHeaterTemperatureContext(context.Background(), temperature)
}

// SetWaterHeaterTemperatureContext writes the hot water comfort setpoint.
// The state document is fetched first when the handle does not hold one
// yet, because the service wants both setpoints in every write.
func (d *BsbDevice) SetWaterHeaterTemperatureContext(ctx context.Context, temperature float64) error {
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

// SetWaterHeaterReducedTemperature writes the hot water reduced setpoint,
// keeping the comfort setpoint as cached.
func (d *BsbDevice) SetWaterHeaterReducedTemperature(temperature float64) error {
	return d.SetWaterHeaterReducedTemperatureContext(context.Background(), temperature)
}

// SetWaterHeaterReducedTemperatureContext writes the hot water reduced
// setpoint.
func (d *BsbDevice) SetWaterHeaterReducedTemperatureContext(ctx context.Context, temperature float64) error {
	if d.data == nil {
		if err := d.UpdateStateContext(ctx); err != nil {
			return err
		}
	}
	comfort := 0.0
	if v := d.WaterHeaterTargetTemperature(); v != nil {
		comfort = *v
	}
	return d.setTemperatures(ctx, comfort, temperature)
}

// SetWaterHeaterMode switches the hot water mode by its display name, as
// listed by WaterHeaterModeOperationTexts. Names match case-insensitively.
func (d *BsbDevice) SetWaterHeaterMode(mode string) error {
	return d.SetWaterHeaterModeContext(context.Background(), mode)
}

// SetWaterHeaterModeContext switches the hot water mode by its display
// name.
func (d *BsbDevice) SetWaterHeaterModeContext(ctx context.Context, mode string) error {
	options := d.WaterHeaterModeOptions()
	for i, text := range d.WaterHeaterModeOperationTexts() {
		if !strings.EqualFold(text, mode) {
			continue
		}
		if err := d.api.SetBsbModeContext(ctx, d.gateway.ID, options[i]); err != nil {
			return err
		}
		if d.data != nil && d.data.DhwMode != nil {
			d.data.DhwMode.Value = options[i]
		}
		return nil
	}
	return fmt.Errorf("ariston: unknown water heater mode %q", mode)
}

// SetZoneMode switches one zone's operating mode.
func (d *BsbDevice) SetZoneMode(mode BsbZoneMode, zone int) error {
	return d.SetZoneModeContext(context.Background(), mode, zone)
}

// SetZoneModeContext switches one zone's operating mode and records the
// accepted value in the zone document.
func (d *BsbDevice) SetZoneModeContext(ctx context.Context, mode BsbZoneMode, zone int) error {
	if err := d.api.SetBsbZoneModeContext(ctx, d.gateway.ID, zone, int(mode)); err != nil {
		return err
	}
	if z := d.zone(zone); z != nil && z.Mode != nil {
		z.Mode.Value = int(mode)
	}
	return nil
}

// SetComfortTemp writes one zone's comfort setpoint, keeping the reduced
// setpoint as cached.
func (d *BsbDevice) SetComfortTemp(temperature float64, zone int) error {
	return d.SetComfortTempContext(context.Background(), temperature, zone)
}

// SetComfortTempContext writes one zone's comfort setpoint. The state
// document is fetched first when the handle does not hold one yet.
func (d *BsbDevice) SetComfortTempContext(ctx context.Context, temperature float64, zone int) error {
	if d.data == nil {
		if err := d.UpdateStateContext(ctx); err != nil {
			return err
		}
	}
	reduced := d.ZoneReducedTemp(zone)
	if err := d.api.SetBsbZoneTemperatureContext(ctx, d.gateway.ID, zone, temperature, reduced); err != nil {
		return err
	}
	if z := d.zone(zone); z != nil && z.ChComfTemp != nil {
		z.ChComfTemp.Value = temperature
	}
	return nil
}

// SetReducedTemp writes one zone's reduced setpoint, keeping the comfort
// setpoint as cached.
func (d *BsbDevice) SetReducedTemp(temperature float64, zone int) error {
	return d.SetReducedTempContext(context.Background(), temperature, zone)
}

// SetReducedTempContext writes one zone's reduced setpoint.
func (d *BsbDevice) SetReducedTempContext(ctx context.Context, temperature float64, zone int) error {
	if d.data == nil {
		if err := d.UpdateStateContext(ctx); err != nil {
			return err
		}
	}
	comfort := d.ZoneComfortTemp(zone)
	if err := d.api.SetBsbZoneTemperatureContext(ctx, d.gateway.ID, zone, comfort, temperature); err != nil {
		return err
	}
	if z := d.zone(zone); z != nil && z.ChRedTemp != nil {
		z.ChRedTemp.Value = temperature
	}
	return nil
}
