package ariston

import "context"

// API defines the interface for Ariston NET operations. Client implements
// it, and the device handles consume it, enabling test doubles.
//
// Only the Context forms appear here; the blocking convenience wrappers on
// Client are one-line adapters over these.
type API interface {
	// ============================================================================
	// Session
	// ============================================================================

	ConnectContext(ctx context.Context) error

	// ============================================================================
	// Plant Operations
	// ============================================================================

	ListGatewaysContext(ctx context.Context) ([]Gateway, error)
	ListLiteGatewaysContext(ctx context.Context) ([]Gateway, error)
	GetDeviceFeaturesContext(ctx context.Context, gatewayID string) (*Features, error)

	// ============================================================================
	// Data Item Operations (galevo)
	// ============================================================================

	GetDevicePropertiesContext(ctx context.Context, gatewayID string, features *Features, culture, umsys string) ([]DataItem, error)
	SetDevicePropertyContext(ctx context.Context, gatewayID, property string, zone int, value, prevValue float64, features *Features, umsys string) error
	SetHolidayContext(ctx context.Context, gatewayID string, endDate *string) error
	GetThermostatTimeProgsContext(ctx context.Context, gatewayID string, zone int, umsys string) (TimeProgram, error)

	// ============================================================================
	// Report Operations
	// ============================================================================

	GetConsumptionsSequencesContext(ctx context.Context, gatewayID, usages string) ([]ConsumptionSequence, error)
	GetEnergyAccountContext(ctx context.Context, gatewayID string) (*EnergyAccount, error)
	GetConsumptionsSettingsContext(ctx context.Context, gatewayID string) (*ConsumptionsSettings, error)
	SetConsumptionsSettingsContext(ctx context.Context, gatewayID string, settings ConsumptionsSettings) error
	GetBusErrorsContext(ctx context.Context, gatewayID string) ([]BusError, error)

	// ============================================================================
	// Velis Operations
	// ============================================================================

	GetMedPlantDataContext(ctx context.Context, gatewayID string) (*MedPlantData, error)
	GetSePlantDataContext(ctx context.Context, gatewayID string) (*SePlantData, error)
	GetSlpPlantDataContext(ctx context.Context, gatewayID string) (*SlpPlantData, error)
	GetVelisPlantSettingsContext(ctx context.Context, plantData PlantData, gatewayID string) (PlantSettings, error)
	SetVelisPlantSettingContext(ctx context.Context, plantData PlantData, gatewayID, setting string, value, oldValue float64) error
	SetEvoModeContext(ctx context.Context, gatewayID string, mode int) error
	SetLydosModeContext(ctx context.Context, gatewayID string, mode int) error
	SetNuosModeContext(ctx context.Context, gatewayID string, mode int) error
	SetEvoTemperatureContext(ctx context.Context, gatewayID string, value float64) error
	SetLydosTemperatureContext(ctx context.Context, gatewayID string, value float64) error
	SetNuosTemperatureContext(ctx context.Context, gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error
	SetNuosBoostContext(ctx context.Context, gatewayID string, boost bool) error
	SetEvoEcoModeContext(ctx context.Context, gatewayID string, eco bool) error
	SetLuxPowerOptionContext(ctx context.Context, gatewayID string, powerOption bool) error
	SetVelisPowerContext(ctx context.Context, plantData PlantData, gatewayID string, power bool) error

	// ============================================================================
	// BSB Operations
	// ============================================================================

	GetBsbPlantDataContext(ctx context.Context, gatewayID string) (*BsbPlantData, error)
	SetBsbModeContext(ctx context.Context, gatewayID string, mode int) error
	SetBsbTemperatureContext(ctx context.Context, gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error
	SetBsbZoneModeContext(ctx context.Context, gatewayID string, zone, mode int) error
	SetBsbZoneTemperatureContext(ctx context.Context, gatewayID string, zone int, comfort, reduced float64) error
}

// Compile-time check that Client implements API.
var _ API = (*Client)(nil)
