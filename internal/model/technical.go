package model

import "time"

// BTUToKW converte BTU/h em kW.
const BTUToKW = 0.00029307107

// TechnicalData holds what is known about an air conditioner. A nil field is
// unknown, which is not the same as zero.
type TechnicalData struct {
	ConsumptionKW  *float64 `json:"consumption_kw"`
	CoolingPowerKW *float64 `json:"cooling_power_kw"`
	Inverter       *bool    `json:"inverter"`
}

func Float(v float64) *float64 { return &v }

func Bool(v bool) *bool { return &v }

// Complete reports whether all three fields are known.
func (d TechnicalData) Complete() bool {
	return d.ConsumptionKW != nil && d.CoolingPowerKW != nil && d.Inverter != nil
}

// Missing lists the json names of the unknown fields.
func (d TechnicalData) Missing() []string {
	var missing []string
	if d.ConsumptionKW == nil {
		missing = append(missing, "consumption_kw")
	}
	if d.CoolingPowerKW == nil {
		missing = append(missing, "cooling_power_kw")
	}
	if d.Inverter == nil {
		missing = append(missing, "inverter")
	}
	return missing
}

// Clone returns a copy that shares no pointers with d.
func (d TechnicalData) Clone() TechnicalData {
	var c TechnicalData
	if d.ConsumptionKW != nil {
		c.ConsumptionKW = Float(*d.ConsumptionKW)
	}
	if d.CoolingPowerKW != nil {
		c.CoolingPowerKW = Float(*d.CoolingPowerKW)
	}
	if d.Inverter != nil {
		c.Inverter = Bool(*d.Inverter)
	}
	return c
}

// Technology is the label shown for the inverter flag.
func (d TechnicalData) Technology() string {
	switch {
	case d.Inverter == nil:
		return "Unknown"
	case *d.Inverter:
		return "Inverter"
	default:
		return "Standard"
	}
}

// FormState is the whole state of the form for one user session.
type FormState struct {
	ModelName string         `json:"model_name"`
	Data      *TechnicalData `json:"data,omitempty"`
	Validated bool           `json:"validated"`
}

// ManualInput are the values typed in the manual entry form.
type ManualInput struct {
	ConsumptionKW  float64 `json:"consumption_kw"`
	CoolingPowerKW float64 `json:"cooling_power_kw"`
	Inverter       bool    `json:"inverter"`
}

type RawResponse struct {
	ID             string
	ModelName      string
	Content        string
	ExtractionPath string
	CreatedAt      time.Time
}
