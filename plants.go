package ariston

import "context"

// ListGateways returns every gateway registered to the account.
func (c *Client) ListGateways() ([]Gateway, error) {
	return c.ListGatewaysContext(context.Background())
}

// ListGatewaysContext returns every gateway registered to the account,
// combining the remote (boiler) and velis (water heater) plant listings.
// The two listings are disjoint: each physical appliance shows up in
// exactly one of them.
func (c *Client) ListGatewaysContext(ctx context.Context) ([]Gateway, error) {
	var gateways []Gateway

	data, err := c.get(ctx, "remote/plants")
	if err != nil {
		return nil, err
	}
	if data != nil {
		parsed, err := unmarshalResponse[[]Gateway](data, "plants")
		if err != nil {
			return nil, err
		}
		gateways = append(gateways, *parsed...)
	}

	data, err = c.get(ctx, "velis/plants")
	if err != nil {
		return nil, err
	}
	if data != nil {
		parsed, err := unmarshalResponse[[]Gateway](data, "velis plants")
		if err != nil {
			return nil, err
		}
		gateways = append(gateways, *parsed...)
	}

	return gateways, nil
}

// ListLiteGateways returns the lightweight gateway listing.
func (c *Client) ListLiteGateways() ([]Gateway, error) {
	return c.ListLiteGatewaysContext(context.Background())
}

// ListLiteGatewaysContext returns the lightweight gateway listing. Lite
// documents carry identity and link state only, which is cheaper for the
// service to produce; velis appliances are not included.
func (c *Client) ListLiteGatewaysContext(ctx context.Context) ([]Gateway, error) {
	data, err := c.get(ctx, "remote/plants/lite")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	parsed, err := unmarshalResponse[[]Gateway](data, "lite plants")
	if err != nil {
		return nil, err
	}
	return *parsed, nil
}

// GetDeviceFeatures returns the feature document for a gateway.
func (c *Client) GetDeviceFeatures(gatewayID string) (*Features, error) {
	return c.GetDeviceFeaturesContext(context.Background(), gatewayID)
}

// GetDeviceFeaturesContext returns the feature document for a gateway.
// When the client was built with WithFeaturesCache, the document is served
// from cache within its TTL. A gateway without a published document yields
// an empty (non-nil) Features.
func (c *Client) GetDeviceFeaturesContext(ctx context.Context, gatewayID string) (*Features, error) {
	fetch := func() (any, error) {
		data, err := c.get(ctx, "remote/plants/"+gatewayID+"/features")
		if err != nil {
			return nil, err
		}
		if data == nil {
			return &Features{}, nil
		}
		return unmarshalResponse[Features](data, "features")
	}

	cached, err := c.getCached(cacheKey("features", gatewayID), c.featuresTTL, fetch)
	if err != nil {
		return nil, err
	}
	return cached.(*Features), nil
}
