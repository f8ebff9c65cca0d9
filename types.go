package ariston

import (
	"encoding/json"
	"fmt"
)

// SystemType identifies the platform family a gateway belongs to. It drives
// device-handle dispatch in NewDevice.
type SystemType int

// System type wire values.
const (
	SystemTypeUnknown  SystemType = -1
	SystemTypeGalileo1 SystemType = 1
	SystemTypeGalileo2 SystemType = 2
	SystemTypeGalevo   SystemType = 3
	SystemTypeVelis    SystemType = 4
	SystemTypeBsb      SystemType = 5
)

// String returns the platform family name.
func (t SystemType) String() string {
	switch t {
	case SystemTypeGalileo1:
		return "Galileo1"
	case SystemTypeGalileo2:
		return "Galileo2"
	case SystemTypeGalevo:
		return "Galevo"
	case SystemTypeVelis:
		return "Velis"
	case SystemTypeBsb:
		return "Bsb"
	}
	return fmt.Sprintf("SystemType(%d)", int(t))
}

// WheType identifies the water-heater model subfamily of a velis gateway.
type WheType int

// Whe type wire values.
const (
	WheTypeUnknown     WheType = -1
	WheTypeEvo         WheType = 1
	WheTypeLydosHybrid WheType = 2
	WheTypeLydos       WheType = 3
	WheTypeNuosSplit   WheType = 4
	WheTypeAndris2     WheType = 5
	WheTypeEvo2        WheType = 6
	WheTypeLux2        WheType = 7
	WheTypeLux         WheType = 8
)

// String returns the water heater subfamily name.
func (t WheType) String() string {
	switch t {
	case WheTypeEvo:
		return "Evo"
	case WheTypeLydosHybrid:
		return "LydosHybrid"
	case WheTypeLydos:
		return "Lydos"
	case WheTypeNuosSplit:
		return "NuosSplit"
	case WheTypeAndris2:
		return "Andris2"
	case WheTypeEvo2:
		return "Evo2"
	case WheTypeLux2:
		return "Lux2"
	case WheTypeLux:
		return "Lux"
	}
	return fmt.Sprintf("WheType(%d)", int(t))
}

// PlantMode is the overall operating mode of a galevo plant.
type PlantMode int

// Plant mode wire values.
const (
	PlantModeUndefined   PlantMode = -1
	PlantModeSummer      PlantMode = 0
	PlantModeWinter      PlantMode = 1
	PlantModeHeatingOnly PlantMode = 2
	PlantModeCooling     PlantMode = 3
	PlantModeCoolingOnly PlantMode = 4
	PlantModeOff         PlantMode = 5
	PlantModeHoliday     PlantMode = 6
)

// String returns the mode name.
func (m PlantMode) String() string {
	switch m {
	case PlantModeUndefined:
		return "Undefined"
	case PlantModeSummer:
		return "Summer"
	case PlantModeWinter:
		return "Winter"
	case PlantModeHeatingOnly:
		return "HeatingOnly"
	case PlantModeCooling:
		return "Cooling"
	case PlantModeCoolingOnly:
		return "CoolingOnly"
	case PlantModeOff:
		return "Off"
	case PlantModeHoliday:
		return "Holiday"
	}
	return fmt.Sprintf("PlantMode(%d)", int(m))
}

// ZoneMode is the operating mode of a galevo heating zone.
type ZoneMode int

// Zone mode wire values.
const (
	ZoneModeUndefined   ZoneMode = -1
	ZoneModeOff         ZoneMode = 0
	ZoneModeManualNight ZoneMode = 1
	ZoneModeManual      ZoneMode = 2
	ZoneModeTimeProgram ZoneMode = 3
)

// String returns the mode name.
func (m ZoneMode) String() string {
	switch m {
	case ZoneModeUndefined:
		return "Undefined"
	case ZoneModeOff:
		return "Off"
	case ZoneModeManualNight:
		return "ManualNight"
	case ZoneModeManual:
		return "Manual"
	case ZoneModeTimeProgram:
		return "TimeProgram"
	}
	return fmt.Sprintf("ZoneMode(%d)", int(m))
}

// BsbZoneMode is the operating mode of a BSB heating zone. Note the wire
// values differ from ZoneMode.
type BsbZoneMode int

// BSB zone mode wire values.
const (
	BsbZoneModeUndefined   BsbZoneMode = -1
	BsbZoneModeOff         BsbZoneMode = 0
	BsbZoneModeTimeProgram BsbZoneMode = 1
	BsbZoneModeManual      BsbZoneMode = 2
	BsbZoneModeManualNight BsbZoneMode = 3
)

// String returns the mode name.
func (m BsbZoneMode) String() string {
	switch m {
	case BsbZoneModeUndefined:
		return "Undefined"
	case BsbZoneModeOff:
		return "Off"
	case BsbZoneModeTimeProgram:
		return "TimeProgram"
	case BsbZoneModeManual:
		return "Manual"
	case BsbZoneModeManualNight:
		return "ManualNight"
	}
	return fmt.Sprintf("BsbZoneMode(%d)", int(m))
}

// DhwMode is the domestic hot water mode of a galevo plant.
type DhwMode int

// Dhw mode wire values.
const (
	DhwModeDisabled     DhwMode = 0
	DhwModeTimeBased    DhwMode = 1
	DhwModeAlwaysActive DhwMode = 2
	DhwModeHcHp         DhwMode = 3
	DhwModeHcHp40       DhwMode = 4
	DhwModeGreen        DhwMode = 5
)

// BsbOperativeMode is the water-heater mode set of BSB plants.
type BsbOperativeMode int

// BSB operative mode wire values.
const (
	BsbOperativeModeOff BsbOperativeMode = 0
	BsbOperativeModeOn  BsbOperativeMode = 1
)

// String returns the mode name.
func (m BsbOperativeMode) String() string {
	switch m {
	case BsbOperativeModeOff:
		return "Off"
	case BsbOperativeModeOn:
		return "On"
	}
	return fmt.Sprintf("BsbOperativeMode(%d)", int(m))
}

// EvoPlantMode is the operation mode set of velis Evo-family water heaters.
type EvoPlantMode int

// Evo plant mode wire values.
const (
	EvoPlantModeManual  EvoPlantMode = 1
	EvoPlantModeProgram EvoPlantMode = 5
)

// String returns the mode name.
func (m EvoPlantMode) String() string {
	switch m {
	case EvoPlantModeManual:
		return "Manual"
	case EvoPlantModeProgram:
		return "Program"
	}
	return fmt.Sprintf("EvoPlantMode(%d)", int(m))
}

// LuxPlantMode is the operation mode set of velis Lux and Lydos Wi-Fi water
// heaters.
type LuxPlantMode int

// Lux plant mode wire values.
const (
	LuxPlantModeManual  LuxPlantMode = 1
	LuxPlantModeProgram LuxPlantMode = 5
	LuxPlantModeBoost   LuxPlantMode = 9
)

// String returns the mode name.
func (m LuxPlantMode) String() string {
	switch m {
	case LuxPlantModeManual:
		return "Manual"
	case LuxPlantModeProgram:
		return "Program"
	case LuxPlantModeBoost:
		return "Boost"
	}
	return fmt.Sprintf("LuxPlantMode(%d)", int(m))
}

// VelisPlantMode is the plant mode set reported by velis base documents.
type VelisPlantMode int

// Velis plant mode wire values.
const (
	VelisPlantModeManual  VelisPlantMode = 1
	VelisPlantModeProgram VelisPlantMode = 5
	VelisPlantModeNight   VelisPlantMode = 8
)

// String returns the mode name.
func (m VelisPlantMode) String() string {
	switch m {
	case VelisPlantModeManual:
		return "Manual"
	case VelisPlantModeProgram:
		return "Program"
	case VelisPlantModeNight:
		return "Night"
	}
	return fmt.Sprintf("VelisPlantMode(%d)", int(m))
}

// LydosPlantMode is the operation mode set of Lydos Hybrid water heaters.
type LydosPlantMode int

// Lydos plant mode wire values.
const (
	LydosPlantModeIMemory LydosPlantMode = 1
	LydosPlantModeGreen   LydosPlantMode = 2
	LydosPlantModeProgram LydosPlantMode = 6
	LydosPlantModeBoost   LydosPlantMode = 7
)

// String returns the mode name.
func (m LydosPlantMode) String() string {
	switch m {
	case LydosPlantModeIMemory:
		return "IMemory"
	case LydosPlantModeGreen:
		return "Green"
	case LydosPlantModeProgram:
		return "Program"
	case LydosPlantModeBoost:
		return "Boost"
	}
	return fmt.Sprintf("LydosPlantMode(%d)", int(m))
}

// NuosSplitPlantMode is the plant mode set of Nuos Split water heaters.
type NuosSplitPlantMode int

// Nuos split plant mode wire values.
const (
	NuosSplitPlantModeManual  NuosSplitPlantMode = 1
	NuosSplitPlantModeProgram NuosSplitPlantMode = 2
)

// NuosSplitOperativeMode is the operation mode set of Nuos Split water
// heaters.
type NuosSplitOperativeMode int

// Nuos split operative mode wire values.
const (
	NuosSplitOperativeModeGreen   NuosSplitOperativeMode = 0
	NuosSplitOperativeModeComfort NuosSplitOperativeMode = 1
	NuosSplitOperativeModeFast    NuosSplitOperativeMode = 2
	NuosSplitOperativeModeIMemory NuosSplitOperativeMode = 3
)

// String returns the mode name.
func (m NuosSplitOperativeMode) String() string {
	switch m {
	case NuosSplitOperativeModeGreen:
		return "Green"
	case NuosSplitOperativeModeComfort:
		return "Comfort"
	case NuosSplitOperativeModeFast:
		return "Fast"
	case NuosSplitOperativeModeIMemory:
		return "IMemory"
	}
	return fmt.Sprintf("NuosSplitOperativeMode(%d)", int(m))
}

// Weather is the galevo weather condition code.
type Weather int

// Weather wire values.
const (
	WeatherUnavailable     Weather = 0
	WeatherClear           Weather = 1
	WeatherVariable        Weather = 2
	WeatherCloudy          Weather = 3
	WeatherRainy           Weather = 4
	WeatherRainstorm       Weather = 5
	WeatherSnow            Weather = 6
	WeatherFog             Weather = 7
	WeatherWindy           Weather = 8
	WeatherClearByNight    Weather = 129
	WeatherVariableByNight Weather = 130
)

// GasEnergyUnit is the unit gas consumption is billed in.
type GasEnergyUnit int

// Gas energy unit wire values.
const (
	GasEnergyUnitKWh       GasEnergyUnit = 0
	GasEnergyUnitGigaJoule GasEnergyUnit = 1
	GasEnergyUnitTherm     GasEnergyUnit = 2
	GasEnergyUnitMegaBtu   GasEnergyUnit = 3
	GasEnergyUnitSmc       GasEnergyUnit = 4
	GasEnergyUnitCubeMeter GasEnergyUnit = 5
)

// GasType is the fuel type configured for consumption estimates.
type GasType int

// Gas type wire values.
const (
	GasTypeNaturalGas  GasType = 0
	GasTypeLPG         GasType = 1
	GasTypeAirPropaned GasType = 2
	GasTypeGPO         GasType = 3
	GasTypePropane     GasType = 4
)

// Currency is the billing currency configured for consumption estimates.
type Currency int

// Currency wire values.
const (
	CurrencyARS Currency = 1
	CurrencyEUR Currency = 2
	CurrencyBYN Currency = 3
	CurrencyCNY Currency = 4
	CurrencyHRK Currency = 5
	CurrencyCZK Currency = 6
	CurrencyDKK Currency = 7
	CurrencyHKD Currency = 8
	CurrencyHUF Currency = 9
	CurrencyIRR Currency = 10
	CurrencyKZT Currency = 11
	CurrencyCHF Currency = 12
	CurrencyMOP Currency = 13
	CurrencyPLZ Currency = 14
	CurrencyRON Currency = 15
	CurrencyRUB Currency = 16
	CurrencyTRY Currency = 17
	CurrencyUAH Currency = 18
	CurrencyGBP Currency = 19
	CurrencyUSD Currency = 20
)

// Brand identifies the appliance manufacturer brand.
type Brand int

// Brand wire values.
const (
	BrandAriston     Brand = 1
	BrandChaffoteaux Brand = 2
	BrandElco        Brand = 3
	BrandAtag        Brand = 4
	BrandNti         Brand = 5
	BrandHtp         Brand = 6
	BrandRacold      Brand = 7
)

// ConsumptionType identifies one consumption sequence family.
type ConsumptionType int

// Consumption type wire values.
const (
	ConsumptionTypeChTotal            ConsumptionType = 1
	ConsumptionTypeDhwTotal           ConsumptionType = 2
	ConsumptionTypeChGas              ConsumptionType = 7
	ConsumptionTypeDhwHeatingPumpElec ConsumptionType = 8
	ConsumptionTypeDhwResistorElec    ConsumptionType = 9
	ConsumptionTypeDhwGas             ConsumptionType = 10
	ConsumptionTypeChElec             ConsumptionType = 20
	ConsumptionTypeDhwElec            ConsumptionType = 21
)

// consumptionTypes lists every sequence family, in wire-value order.
var consumptionTypes = []ConsumptionType{
	ConsumptionTypeChTotal,
	ConsumptionTypeDhwTotal,
	ConsumptionTypeChGas,
	ConsumptionTypeDhwHeatingPumpElec,
	ConsumptionTypeDhwResistorElec,
	ConsumptionTypeDhwGas,
	ConsumptionTypeChElec,
	ConsumptionTypeDhwElec,
}

// String returns the consumption family name.
func (t ConsumptionType) String() string {
	switch t {
	case ConsumptionTypeChTotal:
		return "ChTotal"
	case ConsumptionTypeDhwTotal:
		return "DhwTotal"
	case ConsumptionTypeChGas:
		return "ChGas"
	case ConsumptionTypeDhwHeatingPumpElec:
		return "DhwHeatingPumpElec"
	case ConsumptionTypeDhwResistorElec:
		return "DhwResistorElec"
	case ConsumptionTypeDhwGas:
		return "DhwGas"
	case ConsumptionTypeChElec:
		return "ChElec"
	case ConsumptionTypeDhwElec:
		return "DhwElec"
	}
	return fmt.Sprintf("ConsumptionType(%d)", int(t))
}

// ConsumptionTimeInterval identifies the reporting window of a consumption
// sequence.
type ConsumptionTimeInterval int

// Consumption time interval wire values.
const (
	ConsumptionTimeIntervalLastDay   ConsumptionTimeInterval = 1
	ConsumptionTimeIntervalLastWeek  ConsumptionTimeInterval = 2
	ConsumptionTimeIntervalLastMonth ConsumptionTimeInterval = 3
	ConsumptionTimeIntervalLastYear  ConsumptionTimeInterval = 4
)

// PlantData selects which plant-data document family an endpoint addresses.
type PlantData string

// Plant data document families.
const (
	PlantDataMed PlantData = "medPlantData"
	PlantDataSe  PlantData = "sePlantData"
	PlantDataSlp PlantData = "slpPlantData"
	PlantDataBsb PlantData = "bsbPlantData"
)

// Zone describes one heating zone as reported in plant lists and feature
// documents.
type Zone struct {
	Num            int    `json:"num"`
	Name           string `json:"name,omitempty"`
	RoomSens       bool   `json:"roomSens,omitempty"`
	GeofenceDeroga bool   `json:"geofenceDeroga,omitempty"`
	IsHidden       bool   `json:"isHidden,omitempty"`
}

// Gateway describes one appliance gateway as returned by the plant list
// endpoints. Galevo and velis gateways populate different subsets of the
// optional fields.
type Gateway struct {
	ID              string          `json:"gw"`
	Name            string          `json:"name,omitempty"`
	SerialNumber    string          `json:"sn,omitempty"`
	SystemType      SystemType      `json:"sys,omitempty"`
	Link            bool            `json:"lnk,omitempty"`
	Location        string          `json:"loc,omitempty"`
	UTCOffset       int             `json:"utcOft,omitempty"`
	IsOffline48H    bool            `json:"isOffline48H,omitempty"`
	HpmpSys         bool            `json:"hpmpSys,omitempty"`
	TcByGuest       bool            `json:"tcByGuest,omitempty"`
	MqttAPIVersion  int             `json:"mqttApiVersion,omitempty"`
	WeatherProvider int             `json:"weatherProvider,omitempty"`
	GeofenceConfig  json.RawMessage `json:"geofenceConfig,omitempty"`
	ConsSettings    json.RawMessage `json:"consumptionsSettings,omitempty"`

	// Galevo gateways only.
	FirmwareVersion  string `json:"fwVer,omitempty"`
	Zones            []Zone `json:"zones,omitempty"`
	Solar            bool   `json:"solar,omitempty"`
	ConvBoiler       bool   `json:"convBoiler,omitempty"`
	HybridSys        bool   `json:"hybridSys,omitempty"`
	DhwProgSupported bool   `json:"dhwProgSupported,omitempty"`
	VirtualZones     bool   `json:"virtualZones,omitempty"`
	HasVmc           bool   `json:"hasVmc,omitempty"`
	HasExtTP         bool   `json:"hasExtTP,omitempty"`
	HasBoiler        bool   `json:"hasBoiler,omitempty"`
	PilotSupported   bool   `json:"pilotSupported,omitempty"`
	UnitSystem       int    `json:"umsys,omitempty"`
	IsVmcR2          bool   `json:"isVmcR2,omitempty"`
	IsEvo2           bool   `json:"isEvo2,omitempty"`

	// Velis gateways only.
	WheType                    WheType `json:"wheType,omitempty"`
	WheModelType               int     `json:"wheModelType,omitempty"`
	NotifyOnCondensateTankFull bool    `json:"notifyOnCondensateTankFull,omitempty"`
	NotifyOnErrors             bool    `json:"notifyOnErrors,omitempty"`
	NotifyOnReadyShowers       bool    `json:"notifyOnReadyShowers,omitempty"`
}

// Features is the capability descriptor of one gateway
// (remote/plants/{gw}/features). The document is mostly static for the life
// of an installation. The raw JSON is retained because galevo dataItems
// requests echo the document back to the service verbatim.
type Features struct {
	AutoThermoReg             bool   `json:"autoThermoReg,omitempty"`
	BmsActive                 bool   `json:"bmsActive,omitempty"`
	BufferTimeProgAvailable   bool   `json:"bufferTimeProgAvailable,omitempty"`
	CascadeSys                bool   `json:"cascadeSys,omitempty"`
	ConvBoiler                bool   `json:"convBoiler,omitempty"`
	DhwBoilerPresent          bool   `json:"dhwBoilerPresent,omitempty"`
	DhwHidden                 bool   `json:"dhwHidden,omitempty"`
	DhwModeChangeable         bool   `json:"dhwModeChangeable,omitempty"`
	DhwProgSupported          bool   `json:"dhwProgSupported,omitempty"`
	DistinctHeatCoolSetpoints bool   `json:"distinctHeatCoolSetpoints,omitempty"`
	ExtendedTimeProg          bool   `json:"extendedTimeProg,omitempty"`
	HasBoiler                 bool   `json:"hasBoiler,omitempty"`
	HasEm20                   bool   `json:"hasEm20,omitempty"`
	HasFireplace              bool   `json:"hasFireplace,omitempty"`
	HasMetering               bool   `json:"hasMetering,omitempty"`
	HasSlp                    bool   `json:"hasSlp,omitempty"`
	HasTwoCoolingTemp         bool   `json:"hasTwoCoolingTemp,omitempty"`
	HasVmc                    bool   `json:"hasVmc,omitempty"`
	HasZoneNames              bool   `json:"hasZoneNames,omitempty"`
	HpCascadeConfig           any    `json:"hpCascadeConfig,omitempty"`
	HpCascadeSys              bool   `json:"hpCascadeSys,omitempty"`
	HpSys                     bool   `json:"hpSys,omitempty"`
	HvInputOff                bool   `json:"hvInputOff,omitempty"`
	HybridSys                 bool   `json:"hybridSys,omitempty"`
	IsEvo2                    bool   `json:"isEvo2,omitempty"`
	IsVmcR2                   bool   `json:"isVmcR2,omitempty"`
	PilotSupported            bool   `json:"pilotSupported,omitempty"`
	PreHeatingSupported       bool   `json:"preHeatingSupported,omitempty"`
	Solar                     bool   `json:"solar,omitempty"`
	VirtualZones              bool   `json:"virtualZones,omitempty"`
	WeatherProvider           int    `json:"weatherProvider,omitempty"`
	Zones                     []Zone `json:"zones,omitempty"`

	raw   json.RawMessage
	flags map[string]any
}

// UnmarshalJSON decodes the typed fields and retains the raw document.
func (f *Features) UnmarshalJSON(data []byte) error {
	type alias Features
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = Features(a)
	f.raw = append(json.RawMessage(nil), data...)
	return json.Unmarshal(data, &f.flags)
}

// MarshalJSON emits the retained raw document when present, so feature
// documents round-trip into dataItems requests byte for byte.
func (f Features) MarshalJSON() ([]byte, error) {
	if len(f.raw) > 0 {
		return f.raw, nil
	}
	type alias Features
	return json.Marshal(alias(f))
}

// Raw returns the feature document as received from the service, or nil for
// a hand-built value.
func (f *Features) Raw() json.RawMessage {
	if f == nil {
		return nil
	}
	return f.raw
}

// Flag reports whether the named capability boolean is present and true in
// the feature document. Safe on a nil receiver.
func (f *Features) Flag(name string) bool {
	if f == nil {
		return false
	}
	v, ok := f.flags[name]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// ZoneNumbers returns the zone numbers declared by the feature document.
func (f *Features) ZoneNumbers() []int {
	if f == nil {
		return nil
	}
	nums := make([]int, 0, len(f.Zones))
	for _, z := range f.Zones {
		nums = append(nums, z.Num)
	}
	return nums
}

// DataItem is one entry of a galevo dataItems snapshot. Value is a number,
// boolean or string depending on the item; use the typed accessors.
type DataItem struct {
	ID        string   `json:"id"`
	Zone      int      `json:"zone"`
	Value     any      `json:"value,omitempty"`
	Options   []int    `json:"options,omitempty"`
	OptTexts  []string `json:"optTexts,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Min       float64  `json:"min,omitempty"`
	Max       float64  `json:"max,omitempty"`
	Step      float64  `json:"step,omitempty"`
	Decimals  int      `json:"decimals,omitempty"`
	ExpiresOn string   `json:"expiresOn,omitempty"`
}

// Float64 returns the item value as a float. Safe on a nil item.
func (i *DataItem) Float64() (float64, bool) {
	if i == nil {
		return 0, false
	}
	return toFloat64(i.Value)
}

// Int returns the item value as an int. Safe on a nil item.
func (i *DataItem) Int() (int, bool) {
	if i == nil {
		return 0, false
	}
	return toInt(i.Value)
}

// Bool returns the item value as a boolean; numeric values map 1 to true and
// 0 to false. Safe on a nil item.
func (i *DataItem) Bool() (bool, bool) {
	if i == nil {
		return false, false
	}
	return toBool(i.Value)
}

// Text returns the item value as a string. Safe on a nil item.
func (i *DataItem) Text() (string, bool) {
	if i == nil {
		return "", false
	}
	return toString(i.Value)
}

// VelisPlantBase carries the fields shared by every velis plant-data
// document.
type VelisPlantBase struct {
	Gateway     string   `json:"gw,omitempty"`
	Mode        *int     `json:"mode,omitempty"`
	On          *bool    `json:"on,omitempty"`
	ProcReqTemp *float64 `json:"procReqTemp,omitempty"`
}

// EvoLydosPlantData carries the fields shared by med and se plant-data
// documents.
type EvoLydosPlantData struct {
	VelisPlantBase
	AntiLeg *bool    `json:"antiLeg,omitempty"`
	AvShw   *int     `json:"avShw,omitempty"`
	HeatReq *bool    `json:"heatReq,omitempty"`
	ReqTemp *float64 `json:"reqTemp,omitempty"`
	Temp    *float64 `json:"temp,omitempty"`
}

// MedPlantData is the velis/medPlantData document (Evo, Andris2, Evo2, Lux,
// Lux2 and Lydos Wi-Fi water heaters).
type MedPlantData struct {
	EvoLydosPlantData
	Eco           *bool   `json:"eco,omitempty"`
	PwrOpt        *bool   `json:"pwrOpt,omitempty"`
	RemainingTime *string `json:"rmTm,omitempty"`
}

// SePlantData is the velis/sePlantData document (Lydos Hybrid water
// heaters).
type SePlantData struct {
	EvoLydosPlantData
	BoostReqTemp *float64 `json:"boostReqTemp,omitempty"`
}

// SlpPlantData is the velis/slpPlantData document (Nuos Split water
// heaters).
type SlpPlantData struct {
	VelisPlantBase
	WaterTemp   *float64 `json:"waterTemp,omitempty"`
	ComfortTemp *float64 `json:"comfortTemp,omitempty"`
	ReducedTemp *float64 `json:"reducedTemp,omitempty"`
	OpMode      *int     `json:"opMode,omitempty"`
	BoostOn     *bool    `json:"boostOn,omitempty"`
	HpState     *int     `json:"hpState,omitempty"`
}

// PlantSettings is a velis plantSettings document: a flat map keyed by the
// family-prefixed setting names (Med*/Se*/Slp*).
type PlantSettings map[string]any

// Float returns the named setting as a float.
func (s PlantSettings) Float(key string) (float64, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	return toFloat64(v)
}

// Bool returns the named setting as a boolean; numeric values map 1 to true
// and 0 to false.
func (s PlantSettings) Bool(key string) (bool, bool) {
	v, ok := s[key]
	if !ok {
		return false, false
	}
	return toBool(v)
}

// Velis plant setting keys, by family prefix.
const (
	// medPlantData (Evo family)
	MedAntilegionellaOnOff       = "MedAntilegionellaOnOff"
	MedHeatingRate               = "MedHeatingRate"
	MedMaxSetpointTemperature    = "MedMaxSetpointTemperature"
	MedMaxSetpointTemperatureMax = "MedMaxSetpointTemperatureMax"
	MedMaxSetpointTemperatureMin = "MedMaxSetpointTemperatureMin"

	// sePlantData (Lydos Hybrid)
	SeAntilegionellaOnOff         = "SeAntilegionellaOnOff"
	SeAntiCoolingOnOff            = "SeAntiCoolingOnOff"
	SeNightModeOnOff              = "SeNightModeOnOff"
	SePermanentBoostOnOff         = "SePermanentBoostOnOff"
	SeMaxSetpointTemperature      = "SeMaxSetpointTemperature"
	SeMaxSetpointTemperatureMax   = "SeMaxSetpointTemperatureMax"
	SeMaxSetpointTemperatureMin   = "SeMaxSetpointTemperatureMin"
	SeAntiCoolingTemperature      = "SeAntiCoolingTemperature"
	SeMaxGreenSetpointTemperature = "SeMaxGreenSetpointTemperature"
	SeHeatingRate                 = "SeHeatingRate"
	SeNightBeginAsMinutes         = "SeNightBeginAsMinutes"
	SeNightBeginMinAsMinutes      = "SeNightBeginMinAsMinutes"
	SeNightBeginMaxAsMinutes      = "SeNightBeginMaxAsMinutes"
	SeNightEndAsMinutes           = "SeNightEndAsMinutes"
	SeNightEndMinAsMinutes        = "SeNightEndMinAsMinutes"
	SeNightEndMaxAsMinutes        = "SeNightEndMaxAsMinutes"

	// The service transposes the bound keys for the anti-cooling
	// temperature; kept as transmitted.
	SeAntiCoolingTemperatureMax = "SeAntiCoolingTemperatureMin"
	SeAntiCoolingTemperatureMin = "SeAntiCoolingTemperatureMax"

	// slpPlantData (Nuos Split)
	SlpMaxGreenTemperature       = "SlpMaxGreenTemperature"
	SlpMaxSetpointTemperature    = "SlpMaxSetpointTemperature"
	SlpMaxSetpointTemperatureMax = "SlpMaxSetpointTemperatureMax"
	SlpMaxSetpointTemperatureMin = "SlpMaxSetpointTemperatureMin"
	SlpMinSetpointTemperature    = "SlpMinSetpointTemperature"
	SlpMinSetpointTemperatureMax = "SlpMinSetpointTemperatureMax"
	SlpMinSetpointTemperatureMin = "SlpMinSetpointTemperatureMin"
	SlpAntilegionellaOnOff       = "SlpAntilegionellaOnOff"
	SlpPreHeatingOnOff           = "SlpPreHeatingOnOff"
	SlpHeatingRate               = "SlpHeatingRate"
	SlpHcHpMode                  = "SlpHcHpMode"
)

// BsbTemperature is a BSB temperature field with its allowed range.
type BsbTemperature struct {
	Value float64 `json:"value"`
	Min   float64 `json:"min,omitempty"`
	Max   float64 `json:"max,omitempty"`
	Step  float64 `json:"step,omitempty"`
}

// BsbModeField is a BSB mode field with its allowed options.
type BsbModeField struct {
	Value          int   `json:"value"`
	AllowedOptions []int `json:"allowedOptions,omitempty"`
}

// BsbZoneData is one zone of a BSB plant-data document.
type BsbZoneData struct {
	ChComfTemp                       *BsbTemperature `json:"chComfTemp,omitempty"`
	ChRedTemp                        *BsbTemperature `json:"chRedTemp,omitempty"`
	ChProtTemp                       *BsbTemperature `json:"chProtTemp,omitempty"`
	CoolComfTemp                     *BsbTemperature `json:"coolComfTemp,omitempty"`
	CoolRedTemp                      *BsbTemperature `json:"coolRedTemp,omitempty"`
	CoolProtTemp                     *BsbTemperature `json:"coolProtTemp,omitempty"`
	Mode                             *BsbModeField   `json:"mode,omitempty"`
	DesiredRoomTemp                  *float64        `json:"desiredRoomTemp,omitempty"`
	RoomTemp                         *float64        `json:"roomTemp,omitempty"`
	RoomTempError                    bool            `json:"roomTempError,omitempty"`
	HasRoomSens                      bool            `json:"hasRoomSens,omitempty"`
	HeatingOn                        bool            `json:"heatingOn,omitempty"`
	CoolingOn                        bool            `json:"coolingOn,omitempty"`
	HeatOrCoolReq                    bool            `json:"heatOrCoolReq,omitempty"`
	Holidays                         json.RawMessage `json:"holidays,omitempty"`
	UseReducedOperationModeOnHoliday bool            `json:"useReducedOperationModeOnHoliday,omitempty"`
}

// BsbPlantData is the remote/bsbPlantData document. Zones are keyed by the
// zone number rendered as a string.
type BsbPlantData struct {
	Gateway             string                  `json:"gw,omitempty"`
	DhwTemp             *float64                `json:"dhwTemp,omitempty"`
	DhwComfTemp         *BsbTemperature         `json:"dhwComfTemp,omitempty"`
	DhwReduTemp         *BsbTemperature         `json:"dhwReduTemp,omitempty"`
	DhwMode             *BsbModeField           `json:"dhwMode,omitempty"`
	DhwEnabled          *bool                   `json:"dhwEnabled,omitempty"`
	DhwProgReadOnly     bool                    `json:"dhwProgReadOnly,omitempty"`
	DhwStorageTempError bool                    `json:"dhwStorageTempError,omitempty"`
	HasDhwTemp          bool                    `json:"hasDhwTemp,omitempty"`
	HasOutTemp          bool                    `json:"hasOutTemp,omitempty"`
	OutTemp             *float64                `json:"outTemp,omitempty"`
	OutsideTempError    bool                    `json:"outsideTempError,omitempty"`
	Flame               bool                    `json:"flame,omitempty"`
	HpOn                bool                    `json:"hpOn,omitempty"`
	Zones               map[string]*BsbZoneData `json:"zones,omitempty"`
}

// ConsumptionSequence is one consumption report series. Values may contain
// nulls for samples the service has no reading for.
type ConsumptionSequence struct {
	Kind   ConsumptionType         `json:"k"`
	Period ConsumptionTimeInterval `json:"p"`
	Values []*float64              `json:"v"`
}

// EnergyBucket is one month bucket of a galevo energy account.
type EnergyBucket struct {
	Gas   *float64 `json:"gas,omitempty"`
	Elect *float64 `json:"elect,omitempty"`
}

// EnergyAccount is the galevo energyAccount report. LastMonth[0] covers
// heating, LastMonth[1] domestic hot water.
type EnergyAccount struct {
	LastMonth []EnergyBucket `json:"LastMonth,omitempty"`
}

// ConsumptionsSettings is the galevo consumption-estimate configuration.
// Setters post the full merged document, so fields are pointers and omitted
// when unset.
type ConsumptionsSettings struct {
	Currency      *Currency      `json:"currency,omitempty"`
	GasType       *GasType       `json:"gasType,omitempty"`
	GasEnergyUnit *GasEnergyUnit `json:"gasEnergyUnit,omitempty"`
	ElecCost      *float64       `json:"elecCost,omitempty"`
	GasCost       *float64       `json:"gasCost,omitempty"`
}

// BusError is one appliance bus error report.
type BusError struct {
	Gateway   string `json:"gw,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Fault     int    `json:"fault,omitempty"`
	Mult      int    `json:"mult,omitempty"`
	Code      string `json:"code,omitempty"`
	Priority  int    `json:"pri,omitempty"`
	ErrDex    string `json:"errDex,omitempty"`
	Resolved  bool   `json:"res,omitempty"`
	Blocking  bool   `json:"blk,omitempty"`
}

// TimeProgram is a thermostat time-program document for one zone. The plan
// layout varies by installation and is exposed undecoded beyond the top
// level.
type TimeProgram map[string]any
