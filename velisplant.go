package ariston

import "context"

// GetMedPlantData returns the state document of an Evo-family water heater.
func (c *Client) GetMedPlantData(gatewayID string) (*MedPlantData, error) {
	return c.GetMedPlantDataContext(context.Background(), gatewayID)
}

// GetMedPlantDataContext returns the state document of an Evo-family water
// heater (Evo, Andris2, Evo2, Lux, Lux2, Lydos Wi-Fi).
func (c *Client) GetMedPlantDataContext(ctx context.Context, gatewayID string) (*MedPlantData, error) {
	data, err := c.get(ctx, "velis/"+string(PlantDataMed)+"/"+gatewayID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalResponse[MedPlantData](data, "med plant data")
}

// GetSePlantData returns the state document of a Lydos Hybrid water heater.
func (c *Client) GetSePlantData(gatewayID string) (*SePlantData, error) {
	return c.GetSePlantDataContext(context.Background(), gatewayID)
}

// GetSePlantDataContext returns the state document of a Lydos Hybrid water
// heater.
func (c *Client) GetSePlantDataContext(ctx context.Context, gatewayID string) (*SePlantData, error) {
	data, err := c.get(ctx, "velis/"+string(PlantDataSe)+"/"+gatewayID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalResponse[SePlantData](data, "se plant data")
}

// GetSlpPlantData returns the state document of a Nuos Split water heater.
func (c *Client) GetSlpPlantData(gatewayID string) (*SlpPlantData, error) {
	return c.GetSlpPlantDataContext(context.Background(), gatewayID)
}

// GetSlpPlantDataContext returns the state document of a Nuos Split heat
// pump water heater.
func (c *Client) GetSlpPlantDataContext(ctx context.Context, gatewayID string) (*SlpPlantData, error) {
	data, err := c.get(ctx, "velis/"+string(PlantDataSlp)+"/"+gatewayID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return unmarshalResponse[SlpPlantData](data, "slp plant data")
}

// GetVelisPlantSettings returns the tunable plant settings of a water heater.
func (c *Client) GetVelisPlantSettings(plantData PlantData, gatewayID string) (PlantSettings, error) {
	return c.GetVelisPlantSettingsContext(context.Background(), plantData, gatewayID)
}

// GetVelisPlantSettingsContext returns the tunable plant settings of a
// water heater. Keys are family-prefixed (Med*/Se*/Slp*).
func (c *Client) GetVelisPlantSettingsContext(ctx context.Context, plantData PlantData, gatewayID string) (PlantSettings, error) {
	data, err := c.get(ctx, "velis/"+string(plantData)+"/"+gatewayID+"/plantSettings")
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	parsed, err := unmarshalResponse[PlantSettings](data, "plant settings")
	if err != nil {
		return nil, err
	}
	return *parsed, nil
}

// newOldValue is the {"new": x, "old": y} envelope most velis writes use.
type newOldValue struct {
	New float64 `json:"new"`
	Old float64 `json:"old"`
}

// SetVelisPlantSetting writes one plant setting.
func (c *Client) SetVelisPlantSetting(plantData PlantData, gatewayID, setting string, value, oldValue float64) error {
	return c.SetVelisPlantSettingContext(context.Background(), plantData, gatewayID, setting, value, oldValue)
}

// SetVelisPlantSettingContext writes one plant setting. The service wants
// the previous value alongside the new one; boolean settings travel as 1/0.
func (c *Client) SetVelisPlantSettingContext(ctx context.Context, plantData PlantData, gatewayID, setting string, value, oldValue float64) error {
	body := map[string]newOldValue{
		setting: {New: value, Old: oldValue},
	}
	_, err := c.post(ctx, "velis/"+string(plantData)+"/"+gatewayID+"/plantSettings", body)
	return err
}

// SetEvoMode sets the operation mode of an Evo-family water heater.
// mode is the wire value of the family's plant-mode enum (EvoPlantMode,
// or LuxPlantMode for Lux models).
func (c *Client) SetEvoMode(gatewayID string, mode int) error {
	return c.SetEvoModeContext(context.Background(), gatewayID, mode)
}

// SetEvoModeContext sets the operation mode of an Evo-family water heater.
func (c *Client) SetEvoModeContext(ctx context.Context, gatewayID string, mode int) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataMed)+"/"+gatewayID+"/mode", map[string]int{"new": mode})
	return err
}

// SetLydosMode sets the operation mode of a Lydos Hybrid water heater.
// mode is the wire value of LydosPlantMode.
func (c *Client) SetLydosMode(gatewayID string, mode int) error {
	return c.SetLydosModeContext(context.Background(), gatewayID, mode)
}

// SetLydosModeContext sets the operation mode of a Lydos Hybrid water heater.
func (c *Client) SetLydosModeContext(ctx context.Context, gatewayID string, mode int) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataSe)+"/"+gatewayID+"/mode", map[string]int{"new": mode})
	return err
}

// SetNuosMode sets the operative mode of a Nuos Split water heater.
// mode is the wire value of NuosSplitOperativeMode.
func (c *Client) SetNuosMode(gatewayID string, mode int) error {
	return c.SetNuosModeContext(context.Background(), gatewayID, mode)
}

// SetNuosModeContext sets the operative mode of a Nuos Split water heater.
func (c *Client) SetNuosModeContext(ctx context.Context, gatewayID string, mode int) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataSlp)+"/"+gatewayID+"/operativeMode", map[string]int{"new": mode})
	return err
}

// SetEvoTemperature sets the target temperature of an Evo-family water
// heater.
func (c *Client) SetEvoTemperature(gatewayID string, value float64) error {
	return c.SetEvoTemperatureContext(context.Background(), gatewayID, value)
}

// SetEvoTemperatureContext sets the target temperature of an Evo-family
// water heater.
func (c *Client) SetEvoTemperatureContext(ctx context.Context, gatewayID string, value float64) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataMed)+"/"+gatewayID+"/temperature", map[string]float64{"new": value})
	return err
}

// SetLydosTemperature sets the target temperature of a Lydos Hybrid water
// heater.
func (c *Client) SetLydosTemperature(gatewayID string, value float64) error {
	return c.SetLydosTemperatureContext(context.Background(), gatewayID, value)
}

// SetLydosTemperatureContext sets the target temperature of a Lydos Hybrid
// water heater.
func (c *Client) SetLydosTemperatureContext(ctx context.Context, gatewayID string, value float64) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataSe)+"/"+gatewayID+"/temperature", map[string]float64{"new": value})
	return err
}

// nuosTemperatures is the comfort/reduced pair of a Nuos temperature write.
type nuosTemperatures struct {
	Comfort any `json:"comfort"`
	Reduced any `json:"reduced"`
}

// SetNuosTemperature sets the comfort and reduced target temperatures of a
// Nuos Split water heater.
func (c *Client) SetNuosTemperature(gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error {
	return c.SetNuosTemperatureContext(context.Background(), gatewayID, comfort, reduced, oldComfort, oldReduced)
}

// SetNuosTemperatureContext sets the comfort and reduced target
// temperatures of a Nuos Split water heater. The old values may be nil
// when the current state is unknown.
func (c *Client) SetNuosTemperatureContext(ctx context.Context, gatewayID string, comfort, reduced float64, oldComfort, oldReduced *float64) error {
	body := map[string]nuosTemperatures{
		"new": {Comfort: comfort, Reduced: reduced},
		"old": {Comfort: oldComfort, Reduced: oldReduced},
	}
	_, err := c.post(ctx, "velis/"+string(PlantDataSlp)+"/"+gatewayID+"/temperatures", body)
	return err
}

// SetNuosBoost switches the boost function of a Nuos Split water heater.
func (c *Client) SetNuosBoost(gatewayID string, boost bool) error {
	return c.SetNuosBoostContext(context.Background(), gatewayID, boost)
}

// SetNuosBoostContext switches the boost function of a Nuos Split water
// heater. The body is a bare JSON boolean.
func (c *Client) SetNuosBoostContext(ctx context.Context, gatewayID string, boost bool) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataSlp)+"/"+gatewayID+"/boost", boost)
	return err
}

// SetEvoEcoMode switches eco mode on an Evo-family water heater.
func (c *Client) SetEvoEcoMode(gatewayID string, eco bool) error {
	return c.SetEvoEcoModeContext(context.Background(), gatewayID, eco)
}

// SetEvoEcoModeContext switches eco mode on an Evo-family water heater.
func (c *Client) SetEvoEcoModeContext(ctx context.Context, gatewayID string, eco bool) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataMed)+"/"+gatewayID+"/switchEco", eco)
	return err
}

// SetLuxPowerOption switches the power option of a Lux2 water heater.
func (c *Client) SetLuxPowerOption(gatewayID string, powerOption bool) error {
	return c.SetLuxPowerOptionContext(context.Background(), gatewayID, powerOption)
}

// SetLuxPowerOptionContext switches the power option of a Lux2 water heater.
func (c *Client) SetLuxPowerOptionContext(ctx context.Context, gatewayID string, powerOption bool) error {
	_, err := c.post(ctx, "velis/"+string(PlantDataMed)+"/"+gatewayID+"/switchPowerOption", powerOption)
	return err
}

// SetVelisPower switches a water heater on or off.
func (c *Client) SetVelisPower(plantData PlantData, gatewayID string, power bool) error {
	return c.SetVelisPowerContext(context.Background(), plantData, gatewayID, power)
}

// SetVelisPowerContext switches a water heater on or off.
func (c *Client) SetVelisPowerContext(ctx context.Context, plantData PlantData, gatewayID string, power bool) error {
	_, err := c.post(ctx, "velis/"+string(plantData)+"/"+gatewayID+"/switch", power)
	return err
}
