package ariston

import (
	"context"
	"fmt"
)

// Ariston is a convenience facade over Client for the usual
// connect, discover, hello sequence. The zero value is ready to use.
//
// Discover caches the gateway list, so Hello can resolve handles without
// another exchange. The facade is not safe for concurrent use; the Client
// it wraps is.
type Ariston struct {
	client   *Client
	gateways []Gateway
}

// Connect builds the underlying client and authenticates.
func (a *Ariston) Connect(username, password string, opts ...Option) error {
	return a.ConnectContext(context.Background(), username, password, opts...)
}

// ConnectContext builds the underlying client and authenticates. Any
// client options are applied before the login exchange.
func (a *Ariston) ConnectContext(ctx context.Context, username, password string, opts ...Option) error {
	client, err := NewClient(username, password, opts...)
	if err != nil {
		return err
	}
	if err := client.ConnectContext(ctx); err != nil {
		return err
	}
	a.client = client
	a.gateways = nil
	return nil
}

// Client returns the underlying client, nil before Connect succeeds.
func (a *Ariston) Client() *Client {
	return a.client
}

// Gateways returns the gateway list cached by the last Discover.
func (a *Ariston) Gateways() []Gateway {
	return a.gateways
}

// Discover lists the account's gateways and caches the result.
func (a *Ariston) Discover() ([]Gateway, error) {
	return a.DiscoverContext(context.Background())
}

// DiscoverContext lists the account's gateways and caches the result.
// Returns ErrNotConnected before Connect succeeds.
func (a *Ariston) DiscoverContext(ctx context.Context) ([]Gateway, error) {
	if a.client == nil {
		return nil, ErrNotConnected
	}
	gateways, err := a.client.ListGatewaysContext(ctx)
	if err != nil {
		return nil, err
	}
	a.gateways = gateways
	return gateways, nil
}

// Hello returns the device handle for one gateway id.
func (a *Ariston) Hello(gateway string, opts ...DeviceOption) (Device, error) {
	return a.HelloContext(context.Background(), gateway, opts...)
}

// HelloContext returns the device handle for one gateway id, discovering
// first when no gateway list is cached yet. An id the account does not own
// yields ErrGatewayNotFound.
func (a *Ariston) HelloContext(ctx context.Context, gateway string, opts ...DeviceOption) (Device, error) {
	if a.client == nil {
		return nil, ErrNotConnected
	}
	if len(a.gateways) == 0 {
		if _, err := a.DiscoverContext(ctx); err != nil {
			return nil, err
		}
	}
	return deviceForGateway(a.client, a.gateways, gateway, opts...)
}

// deviceForGateway resolves a gateway id against a discovery list and
// builds its handle.
func deviceForGateway(client API, gateways []Gateway, gateway string, opts ...DeviceOption) (Device, error) {
	for _, gw := range gateways {
		if gw.ID == gateway {
			return NewDevice(client, gw, opts...)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrGatewayNotFound, gateway)
}

// Discover connects with the given credentials and lists the account's
// gateways in one call.
func Discover(username, password string, opts ...Option) ([]Gateway, error) {
	return DiscoverContext(context.Background(), username, password, opts...)
}

// DiscoverContext connects with the given credentials and lists the
// account's gateways in one call.
func DiscoverContext(ctx context.Context, username, password string, opts ...Option) ([]Gateway, error) {
	client, err := NewClient(username, password, opts...)
	if err != nil {
		return nil, err
	}
	if err := client.ConnectContext(ctx); err != nil {
		return nil, err
	}
	return client.ListGatewaysContext(ctx)
}

// Hello connects, discovers and returns the handle for one gateway id in
// one call. For repeated lookups keep an Ariston value instead, which
// caches the discovery list.
func Hello(username, password, gateway string, opts ...DeviceOption) (Device, error) {
	return HelloContext(context.Background(), username, password, gateway, opts...)
}

// HelloContext connects, discovers and returns the handle for one gateway
// id in one call.
func HelloContext(ctx context.Context, username, password, gateway string, opts ...DeviceOption) (Device, error) {
	client, err := NewClient(username, password)
	if err != nil {
		return nil, err
	}
	if err := client.ConnectContext(ctx); err != nil {
		return nil, err
	}
	gateways, err := client.ListGatewaysContext(ctx)
	if err != nil {
		return nil, err
	}
	return deviceForGateway(client, gateways, gateway, opts...)
}
