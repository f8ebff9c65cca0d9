package ariston

import "context"

// Usage selectors for GetConsumptionsSequences. Multi-usage selectors keep
// the comma percent-encoded; the service expects it that way.
const (
	UsagesCh             = "Ch"
	UsagesDhw            = "Dhw"
	UsagesChDhw          = "Ch%2CDhw"
	UsagesDhwHeatingPump = "DhwHeatingPumpElec%2CDhwResistorElec"
)

// GetConsumptionsSequences returns the consumption history for a gateway.
func (c *Client) GetConsumptionsSequences(gatewayID, usages string) ([]ConsumptionSequence, error) {
	return c.GetConsumptionsSequencesContext(context.Background(), gatewayID, usages)
}

// GetConsumptionsSequencesContext returns the consumption history for a
// gateway. The usages selector limits the reply to the requested meters;
// use the Usages* constants.
func (c *Client) GetConsumptionsSequencesContext(ctx context.Context, gatewayID, usages string) ([]ConsumptionSequence, error) {
	data, err := c.get(ctx, "remote/reports/"+gatewayID+"/consSequencesApi8?usages="+usages)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	parsed, err := unmarshalResponse[[]ConsumptionSequence](data, "consumption sequences")
	if err != nil {
		return nil, err
	}
	return *parsed, nil
}

// GetEnergyAccount returns monthly gas/electricity totals for a gateway.
func (c *Client) GetEnergyAccount(gatewayID string) (*EnergyAccount, error) {
	return c.GetEnergyAccountContext(context.Background(), gatewayID)
}

// GetEnergyAccountContext returns monthly gas/electricity totals for a
// gateway. LastMonth holds the heating bucket first, domestic hot water
// second.
func (c *Client) GetEnergyAccountContext(ctx context.Context, gatewayID string) (*EnergyAccount, error) {
	data, err := c.get(ctx, "remote/reports/"+gatewayID+"/energyAccount")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalResponse[EnergyAccount](data, "energy account")
}

// GetConsumptionsSettings returns the billing parameters for a gateway.
func (c *Client) GetConsumptionsSettings(gatewayID string) (*ConsumptionsSettings, error) {
	return c.GetConsumptionsSettingsContext(context.Background(), gatewayID)
}

// GetConsumptionsSettingsContext returns the billing parameters (currency,
// gas type, unit costs) for a gateway. The service models this read as a
// POST with an empty body.
func (c *Client) GetConsumptionsSettingsContext(ctx context.Context, gatewayID string) (*ConsumptionsSettings, error) {
	data, err := c.post(ctx, "remote/plants/"+gatewayID+"/getConsumptionsSettings", map[string]any{})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalResponse[ConsumptionsSettings](data, "consumptions settings")
}

// SetConsumptionsSettings writes the billing parameters for a gateway.
func (c *Client) SetConsumptionsSettings(gatewayID string, settings ConsumptionsSettings) error {
	return c.SetConsumptionsSettingsContext(context.Background(), gatewayID, settings)
}

// SetConsumptionsSettingsContext writes the billing parameters for a
// gateway. Send the complete document as returned by
// GetConsumptionsSettingsContext with the changed fields updated.
func (c *Client) SetConsumptionsSettingsContext(ctx context.Context, gatewayID string, settings ConsumptionsSettings) error {
	_, err := c.post(ctx, "remote/plants/"+gatewayID+"/consumptionsSettings", settings)
	return err
}

// GetBusErrors returns the fault history for a gateway.
func (c *Client) GetBusErrors(gatewayID string) ([]BusError, error) {
	return c.GetBusErrorsContext(context.Background(), gatewayID)
}

// GetBusErrorsContext returns the fault history for a gateway, resolved
// entries included.
func (c *Client) GetBusErrorsContext(ctx context.Context, gatewayID string) ([]BusError, error) {
	data, err := c.get(ctx, "busErrors?gatewayId="+gatewayID+"&blockingOnly=False&culture=en-US")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	parsed, err := unmarshalResponse[[]BusError](data, "bus errors")
	if err != nil {
		return nil, err
	}
	return *parsed, nil
}
