package model

import "time"

// CatalogEntry is a stored snapshot of the technical data of one model.
type CatalogEntry struct {
	ModelName      string
	ConsumptionKW  *float64
	CoolingPowerKW *float64
	Inverter       *bool
	Source         string // "llm", "manual" ou "crawler"
	UpdatedAt      time.Time
}

func NewCatalogEntry(modelName, source string, d TechnicalData) CatalogEntry {
	c := d.Clone()
	return CatalogEntry{
		ModelName:      modelName,
		ConsumptionKW:  c.ConsumptionKW,
		CoolingPowerKW: c.CoolingPowerKW,
		Inverter:       c.Inverter,
		Source:         source,
	}
}

func (e CatalogEntry) TechnicalData() TechnicalData {
	return TechnicalData{
		ConsumptionKW:  e.ConsumptionKW,
		CoolingPowerKW: e.CoolingPowerKW,
		Inverter:       e.Inverter,
	}.Clone()
}
