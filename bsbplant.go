package ariston

import (
	"context"
	"fmt"
)

// GetBsbPlantData returns the state document of a BSB boiler.
func (c *Client) GetBsbPlantData(gatewayID string) (*BsbPlantData, error) {
	return c.GetBsbPlantDataContext(context.Background(), gatewayID)
}

// GetBsbPlantDataContext returns the state document of a BSB boiler,
// including its embedded zones.
func (c *Client) GetBsbPlantDataContext(ctx context.Context, gatewayID string) (*BsbPlantData, error) {
	data, err := c.get(ctx, "remote/"+string(PlantDataBsb)+"/"+gatewayID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalResponse[BsbPlantData](data, "bsb plant data")
}

// SetBsbMode sets the domestic hot water operative mode of a BSB boiler.
// mode is the wire value of BsbOperativeMode.
func (c *Client) SetBsbMode(gatewayID string, mode int) error {
	return c.SetBsbModeContext(context.Background(), gatewayID, mode)
}

// SetBsbModeContext sets the domestic hot water operative mode of a BSB
// boiler.
func (c *Client) SetBsbModeContext(ctx context.Context, gatewayID string, mode int) error {
	_, err := c.post(ctx, "remote/"+string(PlantDataBsb)+"/"+gatewayID+"/dhwMode", map[string]int{"new": mode})
	return err
}

// bsbTemperatures is the comfort/economy pair of a BSB temperature write.
type bsbTemperatures struct {
	Comf any `json:"comf"`
	Econ any `json:"econ"`
}

// SetBsbTemperature sets the domestic hot water comfort and reduced target
// temperatures of a BSB boiler.
func (c *Client) SetBsbTemperature(gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error {
	return c.SetBsbTemperatureContext(context.Background(), gatewayID, comfort, reduced, oldComfort, oldReduced)
}

// SetBsbTemperatureContext sets the domestic hot water comfort and reduced
// target temperatures of a BSB boiler. The old values may be nil when the
// current state is unknown.
func (c *Client) SetBsbTemperatureContext(ctx context.Context, gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error {
	body := map[string]bsbTemperatures{
		"new": {Comf: comfort, Econ: reduced},
		"old": {Comf: oldComfort, Econ: oldReduced},
	}
	_, err := c.post(ctx, "remote/"+string(PlantDataBsb)+"/"+gatewayID+"/dhwTemp", body)
	return err
}

// SetBsbZoneMode sets the mode of one BSB heating zone.
// mode is the wire value of BsbZoneMode.
func (c *Client) SetBsbZoneMode(gatewayID string, zone, mode int) error {
	return c.SetBsbZoneModeContext(context.Background(), gatewayID, zone, mode)
}

// SetBsbZoneModeContext sets the mode of one BSB heating zone.
func (c *Client) SetBsbZoneModeContext(ctx context.Context, gatewayID string, zone, mode int) error {
	path := fmt.Sprintf("remote/bsbZones/%s/%d/mode", gatewayID, zone)
	_, err := c.post(ctx, path, map[string]int{"new": mode})
	return err
}

// SetBsbZoneTemperature sets the comfort and reduced room temperatures of
// one BSB heating zone.
func (c *Client) SetBsbZoneTemperature(gatewayID string, zone int, comfort, reduced float64) error {
	return c.SetBsbZoneTemperatureContext(context.Background(), gatewayID, zone, comfort, reduced)
}

// SetBsbZoneTemperatureContext sets the comfort and reduced room
// temperatures of one BSB heating zone. Unlike the DHW write, the zone
// endpoint takes no previous values.
func (c *Client) SetBsbZoneTemperatureContext(ctx context.Context, gatewayID string, zone int, comfort, reduced float64) error {
	path := fmt.Sprintf("remote/bsbZones/%s/%d/temperatures", gatewayID, zone)
	body := map[string]bsbTemperatures{
		"new": {Comf: comfort, Econ: reduced},
	}
	_, err := c.post(ctx, path, body)
	return err
}
