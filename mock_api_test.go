package ariston

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockAPI is a testify double for the API interface. Device handle tests
// use it to script service responses without an HTTP server.
type mockAPI struct {
	mock.Mock
}

var _ API = (*mockAPI)(nil)

func (m *mockAPI) ConnectContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAPI) ListGatewaysContext(ctx context.Context) ([]Gateway, error) {
	args := m.Called(ctx)
	gateways, _ := args.Get(0).([]Gateway)
	return gateways, args.Error(1)
}

func (m *mockAPI) ListLiteGatewaysContext(ctx context.Context) ([]Gateway, error) {
	args := m.Called(ctx)
	gateways, _ := args.Get(0).([]Gateway)
	return gateways, args.Error(1)
}

func (m *mockAPI) GetDeviceFeaturesContext(ctx context.Context, gatewayID string) (*Features, error) {
	args := m.Called(ctx, gatewayID)
	features, _ := args.Get(0).(*Features)
	return features, args.Error(1)
}

func (m *mockAPI) GetDevicePropertiesContext(ctx context.Context, gatewayID string, features *Features, culture, umsys string) ([]DataItem, error) {
	args := m.Called(ctx, gatewayID, features, culture, umsys)
	items, _ := args.Get(0).([]DataItem)
	return items, args.Error(1)
}

func (m *mockAPI) SetDevicePropertyContext(ctx context.Context, gatewayID, property string, zone int, value, prevValue float64, features *Features, umsys string) error {
	return m.Called(ctx, gatewayID, property, zone, value, prevValue, features, umsys).Error(0)
}

func (m *mockAPI) SetHolidayContext(ctx context.Context, gatewayID string, endDate *string) error {
	return m.Called(ctx, gatewayID, endDate).Error(0)
}

func (m *mockAPI) GetThermostatTimeProgsContext(ctx context.Context, gatewayID string, zone int, umsys string) (TimeProgram, error) {
	args := m.Called(ctx, gatewayID, zone, umsys)
	prog, _ := args.Get(0).(TimeProgram)
	return prog, args.Error(1)
}

func (m *mockAPI) GetConsumptionsSequencesContext(ctx context.Context, gatewayID, usages string) ([]ConsumptionSequence, error) {
	args := m.Called(ctx, gatewayID, usages)
	sequences, _ := args.Get(0).([]ConsumptionSequence)
	return sequences, args.Error(1)
}

func (m *mockAPI) GetEnergyAccountContext(ctx context.Context, gatewayID string) (*EnergyAccount, error) {
	args := m.Called(ctx, gatewayID)
	account, _ := args.Get(0).(*EnergyAccount)
	return account, args.Error(1)
}

func (m *mockAPI) GetConsumptionsSettingsContext(ctx context.Context, gatewayID string) (*ConsumptionsSettings, error) {
	args := m.Called(ctx, gatewayID)
	settings, _ := args.Get(0).(*ConsumptionsSettings)
	return settings, args.Error(1)
}

func (m *mockAPI) SetConsumptionsSettingsContext(ctx context.Context, gatewayID string, settings ConsumptionsSettings) error {
	return m.Called(ctx, gatewayID, settings).Error(0)
}

func (m *mockAPI) GetBusErrorsContext(ctx context.Context, gatewayID string) ([]BusError, error) {
	args := m.Called(ctx, gatewayID)
	busErrors, _ := args.Get(0).([]BusError)
	return busErrors, args.Error(1)
}

func (m *mockAPI) GetMedPlantDataContext(ctx context.Context, gatewayID string) (*MedPlantData, error) {
	args := m.Called(ctx, gatewayID)
	data, _ := args.Get(0).(*MedPlantData)
	return data, args.Error(1)
}

func (m *mockAPI) GetSePlantDataContext(ctx context.Context, gatewayID string) (*SePlantData, error) {
	args := m.Called(ctx, gatewayID)
	data, _ := args.Get(0).(*SePlantData)
	return data, args.Error(1)
}

func (m *mockAPI) GetSlpPlantDataContext(ctx context.Context, gatewayID string) (*SlpPlantData, error) {
	args := m.Called(ctx, gatewayID)
	data, _ := args.Get(0).(*SlpPlantData)
	return data, args.Error(1)
}

func (m *mockAPI) GetVelisPlantSettingsContext(ctx context.Context, plantData PlantData, gatewayID string) (PlantSettings, error) {
	args := m.Called(ctx, plantData, gatewayID)
	settings, _ := args.Get(0).(PlantSettings)
	return settings, args.Error(1)
}

func (m *mockAPI) SetVelisPlantSettingContext(ctx context.Context, plantData PlantData, gatewayID, setting string, value, oldValue float64) error {
	return m.Called(ctx, plantData, gatewayID, setting, value, oldValue).Error(0)
}

func (m *mockAPI) SetEvoModeContext(ctx context.Context, gatewayID string, mode int) error {
	return m.Called(ctx, gatewayID, mode).Error(0)
}

func (m *mockAPI) SetLydosModeContext(ctx context.Context, gatewayID string, mode int) error {
	return m.Called(ctx, gatewayID, mode).Error(0)
}

func (m *mockAPI) SetNuosModeContext(ctx context.Context, gatewayID string, mode int) error {
	return m.Called(ctx, gatewayID, mode).Error(0)
}

func (m *mockAPI) SetEvoTemperatureContext(ctx context.Context, gatewayID string, value float64) error {
	return m.Called(ctx, gatewayID, value).Error(0)
}

func (m *mockAPI) SetLydosTemperatureContext(ctx context.Context, gatewayID string, value float64) error {
	return m.Called(ctx, gatewayID, value).Error(0)
}

func (m *mockAPI) SetNuosTemperatureContext(ctx context.Context, gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error {
	return m.Called(ctx, gatewayID, comfort, reduced, oldComfort, oldReduced).Error(0)
}

func (m *mockAPI) SetNuosBoostContext(ctx context.Context, gatewayID string, boost bool) error {
	return m.Called(ctx, gatewayID, boost).Error(0)
}

func (m *mockAPI) SetEvoEcoModeContext(ctx context.Context, gatewayID string, eco bool) error {
	return m.Called(ctx, gatewayID, eco).Error(0)
}

func (m *mockAPI) SetLuxPowerOptionContext(ctx context.Context, gatewayID string, powerOption bool) error {
	return m.Called(ctx, gatewayID, powerOption).Error(0)
}

func (m *mockAPI) SetVelisPowerContext(ctx context.Context, plantData PlantData, gatewayID string, power bool) error {
	return m.Called(ctx, plantData, gatewayID, power).Error(0)
}

func (m *mockAPI) GetBsbPlantDataContext(ctx context.Context, gatewayID string) (*BsbPlantData, error) {
	args := m.Called(ctx, gatewayID)
	data, _ := args.Get(0).(*BsbPlantData)
	return data, args.Error(1)
}

func (m *mockAPI) SetBsbModeContext(ctx context.Context, gatewayID string, mode int) error {
	return m.Called(ctx, gatewayID, mode).Error(0)
}

func (m *mockAPI) SetBsbTemperatureContext(ctx context.Context, gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error {
	return m.Called(ctx, gatewayID, comfort, reduced, oldComfort, oldReduced).Error(0)
}

func (m *mockAPI) SetBsbZoneModeContext(ctx context.Context, gatewayID string, zone, mode int) error {
	return m.Called(ctx, gatewayID, zone, mode).Error(0)
}

func (m *mockAPI) SetBsbZoneTemperatureContext(ctx context.Context, gatewayID string, zone int, comfort, reduced float64) error {
	return m.Called(ctx, gatewayID, zone, comfort, reduced).Error(0)
}
