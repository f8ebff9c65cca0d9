package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eclipse/paho.golang/paho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ariston "github.com/tj-smith47/ariston-go"
)

// fakeAppliance implements the appliance slice the bridge consumes.
type fakeAppliance struct {
	gateway  string
	name     string
	system   ariston.SystemType
	wheType  ariston.WheType
	metering bool

	stateErr  error
	energyErr error

	current     *float64
	target      *float64
	unit        string
	mode        *int
	modeText    string
	consumption map[ariston.ConsumptionType]*float64
	lastChanged time.Time
	busErrors   []ariston.BusError

	stateCalls  int
	energyCalls int
}

func (f *fakeAppliance) Gateway() string {
	return f.gateway
}

func (f *fakeAppliance) Name() string {
	return f.name
}

func (f *fakeAppliance) SerialNumber() string {
	return "SN-" + f.gateway
}

func (f *fakeAppliance) FirmwareVersion() string {
	return "1.0"
}

func (f *fakeAppliance) SystemType() ariston.SystemType {
	return f.system
}

func (f *fakeAppliance) WheType() ariston.WheType {
	return f.wheType
}

func (f *fakeAppliance) HasMetering() bool {
	return f.metering
}

func (f *fakeAppliance) EnergyLastChanged() time.Time {
	return f.lastChanged
}

func (f *fakeAppliance) BusErrors() []ariston.BusError {
	return f.busErrors
}

func (f *fakeAppliance) GetFeaturesContext(ctx context.Context) (*ariston.Features, error) {
	return &ariston.Features{}, nil
}

func (f *fakeAppliance) UpdateStateContext(ctx context.Context) error {
	f.stateCalls++
	return f.stateErr
}

func (f *fakeAppliance) UpdateEnergyContext(ctx context.Context) error {
	f.energyCalls++
	return f.energyErr
}

func (f *fakeAppliance) GetBusErrorsContext(ctx context.Context) ([]ariston.BusError, error) {
	return f.busErrors, nil
}

func (f *fakeAppliance) WaterHeaterCurrentTemperature() *float64 {
	return f.current
}

func (f *fakeAppliance) WaterHeaterTargetTemperature() *float64 {
	return f.target
}

func (f *fakeAppliance) WaterHeaterTemperatureUnit() string {
	return f.unit
}

func (f *fakeAppliance) WaterHeaterModeValue() *int {
	return f.mode
}

func (f *fakeAppliance) WaterHeaterCurrentModeText() string {
	return f.modeText
}

func (f *fakeAppliance) ConsumptionLastValue(kind ariston.ConsumptionType, interval ariston.ConsumptionTimeInterval) *float64 {
	if interval != ariston.ConsumptionTimeIntervalLastDay {
		return nil
	}
	return f.consumption[kind]
}

// fakePublisher records published packets.
type fakePublisher struct {
	mu       sync.Mutex
	err      error
	messages []*paho.Publish
}

func (p *fakePublisher) Publish(ctx context.Context, pub *paho.Publish) (*paho.PublishResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.messages = append(p.messages, pub)
	return &paho.PublishResponse{}, nil
}

func (p *fakePublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.Topic
	}
	return out
}

func quietLogger() ariston.Logger {
	return ariston.NewSlogLogger(slog.NewTextHandler(io.Discard, nil))
}

func testBridge(t *testing.T) *Bridge {
	t.Helper()
	cfg, err := ParseConfig([]byte(`
username: user@example.com
password: secret
mqtt:
  url: mqtt://localhost:1883
`))
	require.NoError(t, err)
	return New(cfg, WithLogger(quietLogger()))
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func velisFake() *fakeAppliance {
	return &fakeAppliance{
		gateway:  "AB123",
		name:     "Bathroom heater",
		system:   ariston.SystemTypeVelis,
		wheType:  ariston.WheTypeEvo,
		metering: true,
		current:  floatPtr(42.5),
		target:   floatPtr(55),
		unit:     "°C",
		mode:     intPtr(1),
		modeText: "MANUAL",
		consumption: map[ariston.ConsumptionType]*float64{
			ariston.ConsumptionTypeDhwElec: floatPtr(1.25),
		},
		lastChanged: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTopicLayout(t *testing.T) {
	assert.Equal(t, "ariston/AB123/state", stateTopic("ariston", "AB123"))
	assert.Equal(t, "ariston/AB123/energy", energyTopic("ariston", "AB123"))
	assert.Equal(t, "ariston/bridge/availability", availabilityTopic("ariston"))
	assert.Equal(t, "home/heating/AB123/state", stateTopic("home/heating", "AB123"))
}

func TestNewStateDocument(t *testing.T) {
	doc := newStateDocument(velisFake(), true)

	assert.Equal(t, "AB123", doc.Gateway)
	assert.Equal(t, "Bathroom heater", doc.Name)
	assert.Equal(t, "Velis", doc.System)
	assert.Equal(t, "Evo", doc.WheType)
	assert.True(t, doc.Online)
	require.NotNil(t, doc.CurrentTemperature)
	assert.Equal(t, 42.5, *doc.CurrentTemperature)
	require.NotNil(t, doc.TargetTemperature)
	assert.Equal(t, 55.0, *doc.TargetTemperature)
	assert.Equal(t, "MANUAL", doc.ModeText)
	assert.False(t, doc.UpdatedAt.IsZero())
}

func TestNewStateDocumentBoiler(t *testing.T) {
	boiler := &fakeAppliance{
		gateway: "GW1",
		system:  ariston.SystemTypeGalevo,
		wheType: ariston.WheTypeUnknown,
	}
	doc := newStateDocument(boiler, false)

	assert.Equal(t, "Galevo", doc.System)
	assert.Empty(t, doc.WheType, "boilers have no water heater subfamily")
	assert.False(t, doc.Online)
	assert.Nil(t, doc.CurrentTemperature)
}

func TestNewEnergyDocument(t *testing.T) {
	dev := velisFake()
	dev.consumption[ariston.ConsumptionTypeChTotal] = floatPtr(9.5)

	doc := newEnergyDocument(dev)

	assert.Equal(t, "AB123", doc.Gateway)
	assert.Equal(t, map[string]float64{
		"ChTotal": 9.5,
		"DhwElec": 1.25,
	}, doc.Consumption, "only reported kinds appear")
	assert.Equal(t, dev.lastChanged, doc.LastChanged)
}

func TestPollOncePublishesStateAndEnergy(t *testing.T) {
	b := testBridge(t)
	dev := velisFake()
	b.addDevice(dev)

	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	require.Equal(t, []string{"ariston/AB123/state", "ariston/AB123/energy"}, pub.topics())
	for _, msg := range pub.messages {
		assert.True(t, msg.Retain, "documents are retained")
		assert.Equal(t, byte(1), msg.QoS)
	}

	var state StateDocument
	require.NoError(t, json.Unmarshal(pub.messages[0].Payload, &state))
	assert.Equal(t, "AB123", state.Gateway)
	assert.True(t, state.Online)

	var energy EnergyDocument
	require.NoError(t, json.Unmarshal(pub.messages[1].Payload, &energy))
	assert.Equal(t, 1.25, energy.Consumption["DhwElec"])

	assert.Equal(t, 1, dev.stateCalls)
	assert.Equal(t, 1, dev.energyCalls)
}

func TestPollOnceEnergyCadence(t *testing.T) {
	b := testBridge(t)
	dev := velisFake()
	b.addDevice(dev)

	pub := &fakePublisher{}
	lastEnergy := make(map[string]time.Time)

	b.pollOnce(context.Background(), pub, lastEnergy)
	b.pollOnce(context.Background(), pub, lastEnergy)

	// Second cycle refreshes state again but the energy interval has not
	// elapsed yet.
	assert.Equal(t, []string{
		"ariston/AB123/state",
		"ariston/AB123/energy",
		"ariston/AB123/state",
	}, pub.topics())
	assert.Equal(t, 2, dev.stateCalls)
	assert.Equal(t, 1, dev.energyCalls)
}

func TestPollOnceSkipsEnergyWithoutMetering(t *testing.T) {
	b := testBridge(t)
	dev := velisFake()
	dev.metering = false
	b.addDevice(dev)

	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	assert.Equal(t, []string{"ariston/AB123/state"}, pub.topics())
	assert.Equal(t, 0, dev.energyCalls)
}

func TestPollOnceStateFailureMarksOffline(t *testing.T) {
	b := testBridge(t)
	dev := velisFake()
	dev.stateErr = errors.New("service unavailable")
	b.addDevice(dev)

	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	var state StateDocument
	require.NotEmpty(t, pub.messages)
	require.NoError(t, json.Unmarshal(pub.messages[0].Payload, &state))
	assert.False(t, state.Online)
	// Last known readings survive the failure.
	require.NotNil(t, state.CurrentTemperature)
	assert.Equal(t, 42.5, *state.CurrentTemperature)

	stored, ok := b.stateFor("AB123")
	require.True(t, ok)
	assert.False(t, stored.Online)
}

func TestPollOnceEnergyFailureRetriesNextCycle(t *testing.T) {
	b := testBridge(t)
	dev := velisFake()
	dev.energyErr = errors.New("service unavailable")
	b.addDevice(dev)

	pub := &fakePublisher{}
	lastEnergy := make(map[string]time.Time)
	b.pollOnce(context.Background(), pub, lastEnergy)

	assert.Equal(t, []string{"ariston/AB123/state"}, pub.topics())
	_, ok := b.energyFor("AB123")
	assert.False(t, ok, "failed refresh stores nothing")

	// Once the service recovers the next cycle publishes energy.
	dev.energyErr = nil
	b.pollOnce(context.Background(), pub, lastEnergy)
	assert.Contains(t, pub.topics(), "ariston/AB123/energy")
}

func TestPublishAvailability(t *testing.T) {
	b := testBridge(t)
	pub := &fakePublisher{}

	b.publishAvailability(context.Background(), pub, payloadOnline)
	b.publishAvailability(context.Background(), pub, payloadOffline)

	require.Len(t, pub.messages, 2)
	assert.Equal(t, "ariston/bridge/availability", pub.messages[0].Topic)
	assert.Equal(t, []byte("online"), pub.messages[0].Payload)
	assert.True(t, pub.messages[0].Retain)
	assert.Equal(t, []byte("offline"), pub.messages[1].Payload)
}

func TestDeviceSummaries(t *testing.T) {
	b := testBridge(t)
	b.addDevice(velisFake())
	b.addDevice(&fakeAppliance{
		gateway: "GW2",
		name:    "Cellar boiler",
		system:  ariston.SystemTypeGalevo,
		wheType: ariston.WheTypeUnknown,
	})

	pub := &fakePublisher{}
	b.pollOnce(context.Background(), pub, make(map[string]time.Time))

	summaries := b.deviceSummaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "AB123", summaries[0].Gateway, "discovery order is stable")
	assert.Equal(t, "Evo", summaries[0].WheType)
	assert.True(t, summaries[0].Online)
	assert.True(t, summaries[0].Metering)
	assert.Equal(t, "GW2", summaries[1].Gateway)
	assert.Empty(t, summaries[1].WheType)
}

func TestAddDeviceReplacesWithoutDuplicating(t *testing.T) {
	b := testBridge(t)
	b.addDevice(velisFake())
	b.addDevice(velisFake())

	assert.Equal(t, []string{"AB123"}, b.gatewayIDs())
}

func TestPublishJSONSurvivesPublishError(t *testing.T) {
	b := testBridge(t)
	pub := &fakePublisher{err: errors.New("connection lost")}

	// Must not panic or block; the next cycle repairs the retained value.
	b.publishJSON(context.Background(), pub, "ariston/AB123/state", &StateDocument{Gateway: "AB123"})
	assert.Empty(t, pub.messages)
}
