package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/google/uuid"

	ariston "github.com/tj-smith47/ariston-go"
)

// Availability payloads published to the bridge availability topic.
const (
	payloadOnline  = "online"
	payloadOffline = "offline"
)

// appliance is the slice of ariston.Device the bridge consumes. Tests
// substitute fakes.
type appliance interface {
	Gateway() string
	Name() string
	SerialNumber() string
	FirmwareVersion() string
	SystemType() ariston.SystemType
	WheType() ariston.WheType
	HasMetering() bool
	EnergyLastChanged() time.Time
	BusErrors() []ariston.BusError

	GetFeaturesContext(ctx context.Context) (*ariston.Features, error)
	UpdateStateContext(ctx context.Context) error
	UpdateEnergyContext(ctx context.Context) error
	GetBusErrorsContext(ctx context.Context) ([]ariston.BusError, error)

	WaterHeaterCurrentTemperature() *float64
	WaterHeaterTargetTemperature() *float64
	WaterHeaterTemperatureUnit() string
	WaterHeaterModeValue() *int
	WaterHeaterCurrentModeText() string

	ConsumptionLastValue(kind ariston.ConsumptionType, interval ariston.ConsumptionTimeInterval) *float64
}

var _ appliance = (ariston.Device)(nil)

// publisher is the MQTT surface the poll loop needs. Satisfied by
// *autopaho.ConnectionManager.
type publisher interface {
	Publish(ctx context.Context, p *paho.Publish) (*paho.PublishResponse, error)
}

// StateDocument is the retained per-gateway state payload.
type StateDocument struct {
	Gateway            string             `json:"gw"`
	Name               string             `json:"name,omitempty"`
	SerialNumber       string             `json:"sn,omitempty"`
	FirmwareVersion    string             `json:"fwVer,omitempty"`
	System             string             `json:"system"`
	WheType            string             `json:"wheType,omitempty"`
	Online             bool               `json:"online"`
	CurrentTemperature *float64           `json:"currentTemperature,omitempty"`
	TargetTemperature  *float64           `json:"targetTemperature,omitempty"`
	TemperatureUnit    string             `json:"temperatureUnit,omitempty"`
	Mode               *int               `json:"mode,omitempty"`
	ModeText           string             `json:"modeText,omitempty"`
	Errors             []ariston.BusError `json:"errors,omitempty"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// EnergyDocument is the retained per-gateway energy payload. Consumption
// holds the latest daily figure of each sequence the appliance reports,
// keyed by consumption family name.
type EnergyDocument struct {
	Gateway     string             `json:"gw"`
	Consumption map[string]float64 `json:"consumption,omitempty"`
	LastChanged time.Time          `json:"lastChanged"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// DeviceSummary is one row of the status API device listing.
type DeviceSummary struct {
	Gateway   string    `json:"gw"`
	Name      string    `json:"name,omitempty"`
	System    string    `json:"system"`
	WheType   string    `json:"wheType,omitempty"`
	Online    bool      `json:"online"`
	Metering  bool      `json:"metering"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Bridge polls the account's appliances and republishes their state over
// MQTT. Build one with New, then Run it; Run blocks until the context is
// cancelled.
type Bridge struct {
	cfg        *Config
	logger     ariston.Logger
	clientOpts []ariston.Option

	mu      sync.RWMutex
	order   []string
	devices map[string]appliance
	states  map[string]*StateDocument
	energy  map[string]*EnergyDocument
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the bridge's structured logger. slog's process default is
// used otherwise.
func WithLogger(logger ariston.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithClientOptions passes extra options to the underlying API client, e.g.
// ariston.WithTimeout or ariston.WithBaseURL.
func WithClientOptions(opts ...ariston.Option) Option {
	return func(b *Bridge) {
		b.clientOpts = append(b.clientOpts, opts...)
	}
}

// New builds a Bridge from a parsed config.
func New(cfg *Config, opts ...Option) *Bridge {
	b := &Bridge{
		cfg:     cfg,
		logger:  ariston.NewSlogLogger(nil),
		devices: make(map[string]appliance),
		states:  make(map[string]*StateDocument),
		energy:  make(map[string]*EnergyDocument),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run connects to the vendor service and the broker, then polls until ctx
// is cancelled. The bridge availability topic reads "online" while the poll
// loop runs and "offline" after a clean shutdown.
func (b *Bridge) Run(ctx context.Context) error {
	if b.cfg.MQTT.Embedded {
		broker, err := NewEmbeddedBroker(b.cfg.MQTT.EmbeddedAddress, b.cfg.MQTT.Username, b.cfg.MQTT.Password)
		if err != nil {
			return err
		}
		if err := broker.Start(); err != nil {
			return fmt.Errorf("bridge: starting embedded broker: %w", err)
		}
		defer broker.Close()
		b.logger.Info("embedded broker listening", "address", b.cfg.MQTT.EmbeddedAddress)
	}

	if err := b.discoverDevices(ctx); err != nil {
		return err
	}

	conn, err := b.connectMQTT(ctx)
	if err != nil {
		return err
	}

	if b.cfg.HTTP.Address != "" {
		e := b.newStatusAPI()
		go func() {
			if err := e.Start(b.cfg.HTTP.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
				b.logger.Error("status api stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = e.Shutdown(shutdownCtx)
		}()
		b.logger.Info("status api listening", "address", b.cfg.HTTP.Address)
	}

	b.publishAvailability(ctx, conn, payloadOnline)
	defer func() {
		// The run context is done by now; the farewell gets its own
		// deadline so the retained status still flips.
		offCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b.publishAvailability(offCtx, conn, payloadOffline)
		_ = conn.Disconnect(offCtx)
	}()

	b.poll(ctx, conn)
	return nil
}

// discoverDevices authenticates, lists the account's gateways and builds a
// handle per pollable appliance. Feature documents are fetched up front so
// metering support is known before the first energy cycle.
func (b *Bridge) discoverDevices(ctx context.Context) error {
	client, err := ariston.NewClient(b.cfg.Username, b.cfg.Password, b.clientOpts...)
	if err != nil {
		return err
	}
	if err := client.ConnectContext(ctx); err != nil {
		return err
	}
	gateways, err := client.ListGatewaysContext(ctx)
	if err != nil {
		return err
	}

	opts := []ariston.DeviceOption{ariston.Metric(b.cfg.Units != UnitsUS)}
	if b.cfg.Locale != "" {
		opts = append(opts, ariston.Locale(b.cfg.Locale))
	}

	included := make(map[string]bool, len(b.cfg.Gateways))
	for _, gw := range b.cfg.Gateways {
		included[gw] = true
	}

	for _, gw := range gateways {
		if len(included) > 0 && !included[gw.ID] {
			continue
		}
		dev, err := ariston.NewDevice(client, gw, opts...)
		if err != nil {
			b.logger.Warn("skipping unsupported gateway", "gateway", gw.ID, "error", err)
			continue
		}
		if _, err := dev.GetFeaturesContext(ctx); err != nil {
			b.logger.Warn("features fetch failed", "gateway", gw.ID, "error", err)
		}
		b.addDevice(dev)
		b.logger.Info("polling gateway", "gateway", gw.ID, "name", gw.Name, "system", gw.SystemType.String())
	}

	if len(b.gatewayIDs()) == 0 {
		return errors.New("bridge: no pollable gateways found")
	}
	return nil
}

func (b *Bridge) addDevice(dev appliance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.devices[dev.Gateway()]; !ok {
		b.order = append(b.order, dev.Gateway())
	}
	b.devices[dev.Gateway()] = dev
}

func (b *Bridge) gatewayIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.order)
}

func (b *Bridge) device(gateway string) appliance {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.devices[gateway]
}

// connectMQTT opens the managed MQTT session and waits for the first
// connection to come up.
func (b *Bridge) connectMQTT(ctx context.Context) (*autopaho.ConnectionManager, error) {
	u, err := url.Parse(b.cfg.MQTT.URL)
	if err != nil {
		return nil, fmt.Errorf("bridge: invalid broker url: %w", err)
	}

	clientID := b.cfg.MQTT.ClientID
	if clientID == "" {
		clientID = "ariston-bridge-" + uuid.New().String()
	}

	cliCfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{u},
		KeepAlive:                     20,
		CleanStartOnInitialConnection: false,
		SessionExpiryInterval:         60,
		OnConnectionUp: func(cm *autopaho.ConnectionManager, connAck *paho.Connack) {
			b.logger.Info("mqtt connection up", "broker", u.String())
		},
		OnConnectError: func(err error) {
			b.logger.Error("mqtt connect failed", "error", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: clientID,
			OnClientError: func(err error) {
				b.logger.Error("mqtt client error", "error", err)
			},
			OnServerDisconnect: func(d *paho.Disconnect) {
				b.logger.Warn("mqtt server disconnect", "reason", d.ReasonCode)
			},
		},
	}
	if b.cfg.MQTT.Username != "" {
		cliCfg.ConnectUsername = b.cfg.MQTT.Username
		cliCfg.ConnectPassword = []byte(b.cfg.MQTT.Password)
	}

	conn, err := autopaho.NewConnection(ctx, cliCfg)
	if err != nil {
		return nil, fmt.Errorf("bridge: starting mqtt session: %w", err)
	}
	if err := conn.AwaitConnection(ctx); err != nil {
		return nil, fmt.Errorf("bridge: awaiting mqtt connection: %w", err)
	}
	return conn, nil
}

// poll runs refresh cycles until ctx is cancelled. The first cycle runs
// immediately.
func (b *Bridge) poll(ctx context.Context, pub publisher) {
	ticker := time.NewTicker(b.cfg.PollInterval.Std())
	defer ticker.Stop()

	lastEnergy := make(map[string]time.Time)

	b.pollOnce(ctx, pub, lastEnergy)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.pollOnce(ctx, pub, lastEnergy)
		}
	}
}

// pollOnce refreshes and publishes every device. State refreshes run each
// cycle; energy refreshes only once per EnergyInterval, and only for
// metering appliances.
func (b *Bridge) pollOnce(ctx context.Context, pub publisher, lastEnergy map[string]time.Time) {
	for _, gw := range b.gatewayIDs() {
		if ctx.Err() != nil {
			return
		}
		dev := b.device(gw)
		if dev == nil {
			continue
		}

		state := b.refreshState(ctx, dev)
		b.publishJSON(ctx, pub, stateTopic(b.cfg.MQTT.TopicPrefix, gw), state)

		if !dev.HasMetering() {
			continue
		}
		if time.Since(lastEnergy[gw]) < b.cfg.EnergyInterval.Std() {
			continue
		}
		if energy := b.refreshEnergy(ctx, dev); energy != nil {
			lastEnergy[gw] = time.Now()
			b.publishJSON(ctx, pub, energyTopic(b.cfg.MQTT.TopicPrefix, gw), energy)
		}
	}
}

// refreshState updates one device's state and fault list, stores the
// resulting document and returns it. A failed refresh marks the appliance
// offline but keeps the last known readings.
func (b *Bridge) refreshState(ctx context.Context, dev appliance) *StateDocument {
	err := dev.UpdateStateContext(ctx)
	if err != nil {
		b.logger.Warn("state refresh failed", "gateway", dev.Gateway(), "error", err)
	}
	if _, berr := dev.GetBusErrorsContext(ctx); berr != nil {
		b.logger.Warn("bus errors fetch failed", "gateway", dev.Gateway(), "error", berr)
	}

	doc := newStateDocument(dev, err == nil)
	b.mu.Lock()
	b.states[dev.Gateway()] = doc
	b.mu.Unlock()
	return doc
}

// refreshEnergy updates one device's consumption sequences and stores the
// resulting document. Returns nil when the refresh fails; the previous
// document stays published.
func (b *Bridge) refreshEnergy(ctx context.Context, dev appliance) *EnergyDocument {
	if err := dev.UpdateEnergyContext(ctx); err != nil {
		b.logger.Warn("energy refresh failed", "gateway", dev.Gateway(), "error", err)
		return nil
	}

	doc := newEnergyDocument(dev)
	b.mu.Lock()
	b.energy[dev.Gateway()] = doc
	b.mu.Unlock()
	return doc
}

// newStateDocument snapshots the family-independent readings of a handle.
func newStateDocument(dev appliance, online bool) *StateDocument {
	doc := &StateDocument{
		Gateway:            dev.Gateway(),
		Name:               dev.Name(),
		SerialNumber:       dev.SerialNumber(),
		FirmwareVersion:    dev.FirmwareVersion(),
		System:             dev.SystemType().String(),
		Online:             online,
		CurrentTemperature: dev.WaterHeaterCurrentTemperature(),
		TargetTemperature:  dev.WaterHeaterTargetTemperature(),
		TemperatureUnit:    dev.WaterHeaterTemperatureUnit(),
		Mode:               dev.WaterHeaterModeValue(),
		ModeText:           dev.WaterHeaterCurrentModeText(),
		Errors:             dev.BusErrors(),
		UpdatedAt:          time.Now().UTC(),
	}
	if dev.WheType() != ariston.WheTypeUnknown {
		doc.WheType = dev.WheType().String()
	}
	return doc
}

// newEnergyDocument snapshots the daily consumption figures of a handle.
func newEnergyDocument(dev appliance) *EnergyDocument {
	kinds := []ariston.ConsumptionType{
		ariston.ConsumptionTypeChTotal,
		ariston.ConsumptionTypeDhwTotal,
		ariston.ConsumptionTypeChGas,
		ariston.ConsumptionTypeDhwHeatingPumpElec,
		ariston.ConsumptionTypeDhwResistorElec,
		ariston.ConsumptionTypeDhwGas,
		ariston.ConsumptionTypeChElec,
		ariston.ConsumptionTypeDhwElec,
	}

	consumption := make(map[string]float64)
	for _, kind := range kinds {
		if v := dev.ConsumptionLastValue(kind, ariston.ConsumptionTimeIntervalLastDay); v != nil {
			consumption[kind.String()] = *v
		}
	}

	return &EnergyDocument{
		Gateway:     dev.Gateway(),
		Consumption: consumption,
		LastChanged: dev.EnergyLastChanged(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// publishJSON publishes one document retained at QoS 1. Publish errors are
// logged, not returned; the next cycle repairs the retained value.
func (b *Bridge) publishJSON(ctx context.Context, pub publisher, topic string, doc any) {
	payload, err := json.Marshal(doc)
	if err != nil {
		b.logger.Error("encoding payload", "topic", topic, "error", err)
		return
	}
	if _, err := pub.Publish(ctx, &paho.Publish{
		QoS:     1,
		Topic:   topic,
		Payload: payload,
		Retain:  true,
	}); err != nil && ctx.Err() == nil {
		b.logger.Error("publish failed", "topic", topic, "error", err)
	}
}

// publishAvailability publishes the retained bridge availability marker.
func (b *Bridge) publishAvailability(ctx context.Context, pub publisher, status string) {
	if _, err := pub.Publish(ctx, &paho.Publish{
		QoS:     1,
		Topic:   availabilityTopic(b.cfg.MQTT.TopicPrefix),
		Payload: []byte(status),
		Retain:  true,
	}); err != nil && ctx.Err() == nil {
		b.logger.Error("availability publish failed", "status", status, "error", err)
	}
}

// Topic layout under the configured prefix.

func stateTopic(prefix, gateway string) string {
	return prefix + "/" + gateway + "/state"
}

func energyTopic(prefix, gateway string) string {
	return prefix + "/" + gateway + "/energy"
}

func availabilityTopic(prefix string) string {
	return prefix + "/bridge/availability"
}

// stateFor returns the last stored state document for one gateway.
func (b *Bridge) stateFor(gateway string) (*StateDocument, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.states[gateway]
	return doc, ok
}

// energyFor returns the last stored energy document for one gateway.
func (b *Bridge) energyFor(gateway string) (*EnergyDocument, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	doc, ok := b.energy[gateway]
	return doc, ok
}

// deviceSummaries lists every polled appliance with its last known status,
// in discovery order.
func (b *Bridge) deviceSummaries() []DeviceSummary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]DeviceSummary, 0, len(b.order))
	for _, gw := range b.order {
		dev := b.devices[gw]
		summary := DeviceSummary{
			Gateway:  gw,
			Name:     dev.Name(),
			System:   dev.SystemType().String(),
			Metering: dev.HasMetering(),
		}
		if dev.WheType() != ariston.WheTypeUnknown {
			summary.WheType = dev.WheType().String()
		}
		if state, ok := b.states[gw]; ok {
			summary.Online = state.Online
			summary.UpdatedAt = state.UpdatedAt
		}
		out = append(out, summary)
	}
	return out
}
