package ariston

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// DefaultLocale is the culture tag used for localized option texts when no
// Locale option is given.
const DefaultLocale = "en-US"

// Custom feature keys computed by the handles rather than reported by the
// service. The energy kinds (ConsumptionType String names) are added to the
// same set after the first energy refresh.
const (
	CustomFeatureHasDhw         = "hasDhw"
	CustomFeatureHasOutsideTemp = "hasOutsideTemp"
)

// Device is the family-independent surface of one appliance handle.
// NewDevice returns the concrete family type behind it; assert to
// *GalevoDevice, *EvoDevice, *BsbDevice and so on for the family-specific
// reads and writes.
//
// A handle caches the last fetched documents and is not safe for concurrent
// use; give each goroutine its own handle or synchronize externally. The
// underlying Client is safe to share.
type Device interface {
	// Identity, from the discovery document.
	Gateway() string
	Name() string
	SerialNumber() string
	FirmwareVersion() string
	SystemType() SystemType
	WheType() WheType
	WheModelType() int

	// Cached metadata readers. No network.
	Features() *Features
	HasMetering() bool
	DhwModeChangeable() bool
	BusErrors() []BusError
	EnergyLastChanged() time.Time
	FeaturesAvailable(featureNames []string, systemTypes []SystemType, wheTypes []WheType) bool

	// Cached consumption readers. No network.
	ConsumptionLastValue(kind ConsumptionType, interval ConsumptionTimeInterval) *float64
	CentralHeatingTotalEnergyConsumption() *float64
	DomesticHotWaterTotalEnergyConsumption() *float64
	CentralHeatingGasConsumption() *float64
	DomesticHotWaterHeatingPumpElectricityConsumption() *float64
	DomesticHotWaterResistorElectricityConsumption() *float64
	DomesticHotWaterGasConsumption() *float64
	CentralHeatingElectricityConsumption() *float64
	DomesticHotWaterElectricityConsumption() *float64

	// Refresh operations.
	GetFeatures() (*Features, error)
	GetFeaturesContext(ctx context.Context) (*Features, error)
	UpdateState() error
	UpdateStateContext(ctx context.Context) error
	UpdateEnergy() error
	UpdateEnergyContext(ctx context.Context) error
	GetBusErrors() ([]BusError, error)
	GetBusErrorsContext(ctx context.Context) ([]BusError, error)

	// Water heater surface. Reads are cached; call UpdateState first.
	WaterHeaterCurrentTemperature() *float64
	WaterHeaterTargetTemperature() *float64
	WaterHeaterMinimumTemperature() float64
	WaterHeaterMaximumTemperature() *float64
	WaterHeaterTemperatureStep() float64
	WaterHeaterTemperatureDecimals() int
	WaterHeaterTemperatureUnit() string
	WaterHeaterModeOptions() []int
	WaterHeaterModeOperationTexts() []string
	WaterHeaterModeValue() *int
	WaterHeaterCurrentModeText() string
	SetWaterHeaterTemperature(temperature float64) error
	SetWaterHeaterTemperatureContext(ctx context.Context, temperature float64) error
	SetWaterHeaterMode(mode string) error
	SetWaterHeaterModeContext(ctx context.Context, mode string) error
}

// DeviceOption configures a device handle.
type DeviceOption func(*deviceBase)

// Metric selects metric (true, default) or US customary (false) units.
// Only galevo devices consult it; it maps to the umsys query parameter.
func Metric(metric bool) DeviceOption {
	return func(d *deviceBase) {
		d.metric = metric
	}
}

// Locale sets the culture tag used to localize galevo option texts.
// Defaults to DefaultLocale.
func Locale(locale string) DeviceOption {
	return func(d *deviceBase) {
		if locale != "" {
			d.locale = locale
		}
	}
}

// NewDevice builds the family-specific handle for a discovered gateway.
// The system type picks the platform; velis gateways further dispatch on
// their whe type. Unrecognized types return ErrUnsupportedDevice.
func NewDevice(client API, gateway Gateway, opts ...DeviceOption) (Device, error) {
	switch gateway.SystemType {
	case SystemTypeGalevo:
		return newGalevoDevice(client, gateway, opts...), nil
	case SystemTypeVelis:
		switch gateway.WheType {
		case WheTypeEvo, WheTypeAndris2, WheTypeEvo2:
			return newEvoDevice(client, gateway, opts...), nil
		case WheTypeLux2:
			return newLux2Device(client, gateway, opts...), nil
		case WheTypeLux:
			return newLuxDevice(client, gateway, opts...), nil
		case WheTypeLydos:
			return newLydosDevice(client, gateway, opts...), nil
		case WheTypeLydosHybrid:
			return newLydosHybridDevice(client, gateway, opts...), nil
		case WheTypeNuosSplit:
			return newNuosSplitDevice(client, gateway, opts...), nil
		default:
			return nil, fmt.Errorf("%w: whe type %d", ErrUnsupportedDevice, gateway.WheType)
		}
	case SystemTypeBsb:
		return newBsbDevice(client, gateway, opts...), nil
	default:
		return nil, fmt.Errorf("%w: system type %d", ErrUnsupportedDevice, gateway.SystemType)
	}
}

// deviceBase carries the state every family shares: the API handle, the
// discovery document and the cached feature, consumption and fault data.
type deviceBase struct {
	api     API
	gateway Gateway
	metric  bool
	locale  string

	features          *Features
	custom            map[string]bool
	sequences         []ConsumptionSequence
	energyLastChanged time.Time
	busErrors         []BusError
}

func newDeviceBase(api API, gateway Gateway) deviceBase {
	return deviceBase{
		api:     api,
		gateway: gateway,
		metric:  true,
		locale:  DefaultLocale,
		custom:  make(map[string]bool),
		// Epoch, not the zero time: consumers diff against their own
		// timestamps.
		energyLastChanged: time.Unix(0, 0).UTC(),
	}
}

// Gateway returns the gateway id binding this handle to its appliance.
func (d *deviceBase) Gateway() string {
	return d.gateway.ID
}

// Name returns the plant name assigned in the vendor app.
func (d *deviceBase) Name() string {
	return d.gateway.Name
}

// SerialNumber returns the gateway serial number.
func (d *deviceBase) SerialNumber() string {
	return d.gateway.SerialNumber
}

// FirmwareVersion returns the gateway firmware version, when reported.
func (d *deviceBase) FirmwareVersion() string {
	return d.gateway.FirmwareVersion
}

// SystemType returns the platform family of the gateway.
func (d *deviceBase) SystemType() SystemType {
	return d.gateway.SystemType
}

// WheType returns the water heater subfamily, WheTypeUnknown for boilers.
func (d *deviceBase) WheType() WheType {
	if d.gateway.SystemType != SystemTypeVelis {
		return WheTypeUnknown
	}
	return d.gateway.WheType
}

// WheModelType returns the raw water heater model code.
func (d *deviceBase) WheModelType() int {
	return d.gateway.WheModelType
}

// Features returns the cached feature document, nil before the first
// GetFeatures call.
func (d *deviceBase) Features() *Features {
	return d.features
}

// HasMetering reports whether the appliance meters its consumption.
func (d *deviceBase) HasMetering() bool {
	return d.features != nil && d.features.HasMetering
}

// DhwModeChangeable reports whether the hot water mode accepts writes.
func (d *deviceBase) DhwModeChangeable() bool {
	return d.features != nil && d.features.DhwModeChangeable
}

// BusErrors returns the cached fault list from the last GetBusErrors call.
func (d *deviceBase) BusErrors() []BusError {
	return d.busErrors
}

// EnergyLastChanged returns the instant the consumption sequences were last
// observed to differ, backdated one hour to cover the service's reporting
// lag. Handles start at the Unix epoch.
func (d *deviceBase) EnergyLastChanged() time.Time {
	return d.energyLastChanged
}

// getFeatures fetches and caches the feature document.
func (d *deviceBase) getFeatures(ctx context.Context) (*Features, error) {
	features, err := d.api.GetDeviceFeaturesContext(ctx, d.gateway.ID)
	if err != nil {
		return nil, err
	}
	if features == nil {
		features = &Features{}
	}
	d.features = features
	return features, nil
}

// GetBusErrors fetches, caches and returns the appliance fault list.
func (d *deviceBase) GetBusErrors() ([]BusError, error) {
	return d.GetBusErrorsContext(context.Background())
}

// GetBusErrorsContext fetches, caches and returns the appliance fault list.
func (d *deviceBase) GetBusErrorsContext(ctx context.Context) ([]BusError, error) {
	busErrors, err := d.api.GetBusErrorsContext(ctx, d.gateway.ID)
	if err != nil {
		return nil, err
	}
	d.busErrors = busErrors
	return busErrors, nil
}

// ConsumptionLastValue returns the most recent value of one consumption
// sequence, nil when the sequence is absent or ends in a gap.
func (d *deviceBase) ConsumptionLastValue(kind ConsumptionType, interval ConsumptionTimeInterval) *float64 {
	for _, seq := range d.sequences {
		if seq.Kind == kind && seq.Period == interval {
			if len(seq.Values) == 0 {
				return nil
			}
			return seq.Values[len(seq.Values)-1]
		}
	}
	return nil
}

// CentralHeatingTotalEnergyConsumption returns yesterday's total heating
// energy use.
func (d *deviceBase) CentralHeatingTotalEnergyConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeChTotal, ConsumptionTimeIntervalLastDay)
}

// DomesticHotWaterTotalEnergyConsumption returns yesterday's total hot
// water energy use.
func (d *deviceBase) DomesticHotWaterTotalEnergyConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeDhwTotal, ConsumptionTimeIntervalLastDay)
}

// CentralHeatingGasConsumption returns yesterday's heating gas use.
func (d *deviceBase) CentralHeatingGasConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeChGas, ConsumptionTimeIntervalLastDay)
}

// DomesticHotWaterHeatingPumpElectricityConsumption returns yesterday's hot
// water heat pump electricity use.
func (d *deviceBase) DomesticHotWaterHeatingPumpElectricityConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeDhwHeatingPumpElec, ConsumptionTimeIntervalLastDay)
}

// DomesticHotWaterResistorElectricityConsumption returns yesterday's hot
// water resistor electricity use.
func (d *deviceBase) DomesticHotWaterResistorElectricityConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeDhwResistorElec, ConsumptionTimeIntervalLastDay)
}

// DomesticHotWaterGasConsumption returns yesterday's hot water gas use.
func (d *deviceBase) DomesticHotWaterGasConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeDhwGas, ConsumptionTimeIntervalLastDay)
}

// CentralHeatingElectricityConsumption returns yesterday's heating
// electricity use.
func (d *deviceBase) CentralHeatingElectricityConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeChElec, ConsumptionTimeIntervalLastDay)
}

// DomesticHotWaterElectricityConsumption returns yesterday's hot water
// electricity use.
func (d *deviceBase) DomesticHotWaterElectricityConsumption() *float64 {
	return d.ConsumptionLastValue(ConsumptionTypeDhwElec, ConsumptionTimeIntervalLastDay)
}

// updateEnergy replaces the consumption sequences with a fresh fetch for
// the given usages selector. The first refresh records which energy kinds
// the appliance actually reports; later refreshes that change a previously
// non-empty sequence list bump EnergyLastChanged.
func (d *deviceBase) updateEnergy(ctx context.Context, usages string) error {
	old := d.sequences

	sequences, err := d.api.GetConsumptionsSequencesContext(ctx, d.gateway.ID, usages)
	if err != nil {
		return err
	}
	d.sequences = sequences

	if _, seen := d.custom[ConsumptionTypeDhwElec.String()]; !seen {
		d.setEnergyFeatures()
	}

	if len(old) > 0 && !sequencesEqual(old, d.sequences) {
		d.energyLastChanged = time.Now().UTC().Add(-time.Hour)
	}
	return nil
}

// setEnergyFeatures marks each consumption kind the appliance reported a
// value for. Computed once, on the first energy refresh.
func (d *deviceBase) setEnergyFeatures() {
	for _, kind := range consumptionTypes {
		d.custom[kind.String()] = d.ConsumptionLastValue(kind, ConsumptionTimeIntervalLastDay) != nil
	}
}

// sequencesEqual compares two sequence lists value by value.
func sequencesEqual(a, b []ConsumptionSequence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Period != b[i].Period {
			return false
		}
		if len(a[i].Values) != len(b[i].Values) {
			return false
		}
		for j := range a[i].Values {
			av, bv := a[i].Values[j], b[i].Values[j]
			switch {
			case av == nil && bv == nil:
			case av == nil || bv == nil:
				return false
			case *av != *bv:
				return false
			}
		}
	}
	return true
}

// FeaturesAvailable reports whether this appliance supports all the named
// features. A nil system or whe type list skips that check; feature names
// match when either the feature document or the computed custom set holds
// them true.
func (d *deviceBase) FeaturesAvailable(featureNames []string, systemTypes []SystemType, wheTypes []WheType) bool {
	if systemTypes != nil && !slices.Contains(systemTypes, d.SystemType()) {
		return false
	}
	if wheTypes != nil && !slices.Contains(wheTypes, d.WheType()) {
		return false
	}
	for _, name := range featureNames {
		if d.featureFlag(name) || d.custom[name] {
			continue
		}
		return false
	}
	return true
}

// featureFlag reads one boolean out of the feature document.
func (d *deviceBase) featureFlag(name string) bool {
	return d.features != nil && d.features.Flag(name)
}

// modeText resolves a mode value to its display text through the parallel
// options/texts tables, "UNKNOWN" when the value is absent or unlisted.
func modeText(value *int, options []int, texts []string) string {
	if value == nil {
		return "UNKNOWN"
	}
	for i, option := range options {
		if option == *value && i < len(texts) {
			return texts[i]
		}
	}
	return "UNKNOWN"
}
