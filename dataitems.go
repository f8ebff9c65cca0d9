package ariston

import (
	"context"
	"fmt"
)

// Plant-scoped data item ids, requested with zone 0.
const (
	PropertyPlantMode                        = "PlantMode"
	PropertyIsFlameOn                        = "IsFlameOn"
	PropertyIsHeatingPumpOn                  = "IsHeatingPumpOn"
	PropertyHoliday                          = "Holiday"
	PropertyOutsideTemp                      = "OutsideTemp"
	PropertyWeather                          = "Weather"
	PropertyHeatingCircuitPressure           = "HeatingCircuitPressure"
	PropertyChFlowTemp                       = "ChFlowTemp"
	PropertyChFlowSetpointTemp               = "ChFlowSetpointTemp"
	PropertyDhwTemp                          = "DhwTemp"
	PropertyDhwStorageTemperature            = "DhwStorageTemperature"
	PropertyDhwTimeProgComfortTemp           = "DhwTimeProgComfortTemp"
	PropertyDhwTimeProgEconomyTemp           = "DhwTimeProgEconomyTemp"
	PropertyDhwMode                          = "DhwMode"
	PropertyAutomaticThermoregulation        = "AutomaticThermoregulation"
	PropertyAntilegionellaOnOff              = "AntilegionellaOnOff"
	PropertyAntilegionellaTemp               = "AntilegionellaTemp"
	PropertyAntilegionellaFreq               = "AntilegionellaFreq"
	PropertyHybridMode                       = "HybridMode"
	PropertyBufferControlMode                = "BufferControlMode"
	PropertyBufferTimeProgComfortHeatingTemp = "BufferTimeProgComfortHeatingTemp"
	PropertyBufferTimeProgEconomyHeatingTemp = "BufferTimeProgEconomyHeatingTemp"
	PropertyBufferTimeProgComfortCoolingTemp = "BufferTimeProgComfortCoolingTemp"
	PropertyBufferTimeProgEconomyCoolingTemp = "BufferTimeProgEconomyCoolingTemp"
	PropertyIsQuite                          = "IsQuite"
)

// Zone-scoped data item ids, requested once per declared zone.
const (
	PropertyZoneMeasuredTemp     = "ZoneMeasuredTemp"
	PropertyZoneDesiredTemp      = "ZoneDesiredTemp"
	PropertyZoneComfortTemp      = "ZoneComfortTemp"
	PropertyZoneMode             = "ZoneMode"
	PropertyZoneHeatRequest      = "ZoneHeatRequest"
	PropertyZoneEconomyTemp      = "ZoneEconomyTemp"
	PropertyZoneDeroga           = "ZoneDeroga"
	PropertyIsZonePilotOn        = "IsZonePilotOn"
	PropertyVirtTempOffsetHeat   = "VirtTempOffsetHeat"
	PropertyHeatingFlowTemp      = "HeatingFlowTemp"
	PropertyHeatingFlowOffset    = "HeatingFlowOffset"
	PropertyCoolingFlowTemp      = "CoolingFlowTemp"
	PropertyCoolingFlowOffset    = "CoolingFlowOffset"
	PropertyZoneName             = "ZoneName"
	PropertyVirtTempSetpointHeat = "VirtTempSetpointHeat"
	PropertyVirtTempSetpointCool = "VirtTempSetpointCool"
	PropertyVirtComfortTemp      = "VirtComfortTemp"
	PropertyVirtReducedTemp      = "VirtReducedTemp"
	PropertyVirtTempOffsetCool   = "VirtTempOffsetCool"
)

var plantProperties = []string{
	PropertyPlantMode,
	PropertyIsFlameOn,
	PropertyIsHeatingPumpOn,
	PropertyHoliday,
	PropertyOutsideTemp,
	PropertyWeather,
	PropertyHeatingCircuitPressure,
	PropertyChFlowTemp,
	PropertyChFlowSetpointTemp,
	PropertyDhwTemp,
	PropertyDhwStorageTemperature,
	PropertyDhwTimeProgComfortTemp,
	PropertyDhwTimeProgEconomyTemp,
	PropertyDhwMode,
	PropertyAutomaticThermoregulation,
	PropertyAntilegionellaOnOff,
	PropertyAntilegionellaTemp,
	PropertyAntilegionellaFreq,
	PropertyHybridMode,
	PropertyBufferControlMode,
	PropertyBufferTimeProgComfortHeatingTemp,
	PropertyBufferTimeProgEconomyHeatingTemp,
	PropertyBufferTimeProgComfortCoolingTemp,
	PropertyBufferTimeProgEconomyCoolingTemp,
	PropertyIsQuite,
}

var zoneProperties = []string{
	PropertyZoneMeasuredTemp,
	PropertyZoneDesiredTemp,
	PropertyZoneComfortTemp,
	PropertyZoneMode,
	PropertyZoneHeatRequest,
	PropertyZoneEconomyTemp,
	PropertyZoneDeroga,
	PropertyIsZonePilotOn,
	PropertyVirtTempOffsetHeat,
	PropertyHeatingFlowTemp,
	PropertyHeatingFlowOffset,
	PropertyCoolingFlowTemp,
	PropertyCoolingFlowOffset,
	PropertyZoneName,
	PropertyVirtTempSetpointHeat,
	PropertyVirtTempSetpointCool,
	PropertyVirtComfortTemp,
	PropertyVirtReducedTemp,
	PropertyVirtTempOffsetCool,
}

// UnitMetric and UnitUS are the accepted umsys query values.
const (
	UnitMetric = "si"
	UnitUS     = "us"
)

// umsysParam maps the metric flag to the unit-system query value.
func umsysParam(metric bool) string {
	if metric {
		return UnitMetric
	}
	return UnitUS
}

// dataItemRef identifies one requested item. The get endpoint spells the
// zone key "zn" while the set endpoint spells it "zone".
type dataItemRef struct {
	ID   string `json:"id"`
	Zone int    `json:"zn"`
}

type dataItemsRequest struct {
	UseCache bool          `json:"useCache"`
	Items    []dataItemRef `json:"items"`
	Features *Features     `json:"features"`
	Culture  string        `json:"culture"`
}

type dataItemsResponse struct {
	Items []DataItem `json:"items"`
}

// itemsForFeatures builds the full item request list for a feature document:
// every plant-scoped property once, and every zone-scoped property for each
// declared zone.
func itemsForFeatures(features *Features) []dataItemRef {
	var zones []int
	if features != nil {
		zones = features.ZoneNumbers()
	}

	items := make([]dataItemRef, 0, len(plantProperties)+len(zones)*len(zoneProperties))
	for _, id := range plantProperties {
		items = append(items, dataItemRef{ID: id, Zone: 0})
	}
	for _, zone := range zones {
		for _, id := range zoneProperties {
			items = append(items, dataItemRef{ID: id, Zone: zone})
		}
	}
	return items
}

// GetDeviceProperties fetches the current value of every known data item.
func (c *Client) GetDeviceProperties(gatewayID string, features *Features, culture, umsys string) ([]DataItem, error) {
	return c.GetDevicePropertiesContext(context.Background(), gatewayID, features, culture, umsys)
}

// GetDevicePropertiesContext fetches the current value of every known data
// item for a gateway. The feature document steers which zones are queried
// and rides along in the request body, exactly as the service received it;
// culture localizes option texts and umsys selects the unit system
// (UnitMetric or UnitUS).
func (c *Client) GetDevicePropertiesContext(ctx context.Context, gatewayID string, features *Features, culture, umsys string) ([]DataItem, error) {
	body := dataItemsRequest{
		UseCache: false,
		Items:    itemsForFeatures(features),
		Features: features,
		Culture:  culture,
	}

	data, err := c.post(ctx, "remote/dataItems/"+gatewayID+"/get?umsys="+umsys, body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	parsed, err := unmarshalResponse[dataItemsResponse](data, "data items")
	if err != nil {
		return nil, err
	}
	return parsed.Items, nil
}

type setDataItem struct {
	ID        string  `json:"id"`
	PrevValue float64 `json:"prevValue"`
	Value     float64 `json:"value"`
	Zone      int     `json:"zone"`
}

type setDataItemsRequest struct {
	Items    []setDataItem `json:"items"`
	Features *Features     `json:"features"`
}

// SetDeviceProperty writes one data item value.
func (c *Client) SetDeviceProperty(gatewayID, property string, zone int, value, prevValue float64, features *Features, umsys string) error {
	return c.SetDevicePropertyContext(context.Background(), gatewayID, property, zone, value, prevValue, features, umsys)
}

// SetDevicePropertyContext writes one data item value. The service requires
// the previous value alongside the new one and rejects stale writes, so
// callers should refresh state first.
func (c *Client) SetDevicePropertyContext(ctx context.Context, gatewayID, property string, zone int, value, prevValue float64, features *Features, umsys string) error {
	body := setDataItemsRequest{
		Items: []setDataItem{
			{
				ID:        property,
				PrevValue: prevValue,
				Value:     value,
				Zone:      zone,
			},
		},
		Features: features,
	}

	_, err := c.post(ctx, "remote/dataItems/"+gatewayID+"/set?umsys="+umsys, body)
	return err
}

// SetHoliday schedules or clears holiday mode.
func (c *Client) SetHoliday(gatewayID string, endDate *string) error {
	return c.SetHolidayContext(context.Background(), gatewayID, endDate)
}

// SetHolidayContext schedules holiday mode until the given end date, or
// clears it when endDate is nil. The service expects a local midnight
// timestamp in the form "2006-01-02T00:00:00".
func (c *Client) SetHolidayContext(ctx context.Context, gatewayID string, endDate *string) error {
	body := map[string]*string{"new": endDate}
	_, err := c.post(ctx, "remote/plantData/"+gatewayID+"/holiday", body)
	return err
}

// GetThermostatTimeProgs returns the heating time program of one zone.
func (c *Client) GetThermostatTimeProgs(gatewayID string, zone int, umsys string) (TimeProgram, error) {
	return c.GetThermostatTimeProgsContext(context.Background(), gatewayID, zone, umsys)
}

// GetThermostatTimeProgsContext returns the heating time program of one zone.
func (c *Client) GetThermostatTimeProgsContext(ctx context.Context, gatewayID string, zone int, umsys string) (TimeProgram, error) {
	path := fmt.Sprintf("remote/timeProgs/%s/ChZn%d?umsys=%s", gatewayID, zone, umsys)
	data, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	parsed, err := unmarshalResponse[TimeProgram](data, "time program")
	if err != nil {
		return nil, err
	}
	return *parsed, nil
}
