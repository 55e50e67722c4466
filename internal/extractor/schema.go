package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"acdata/internal/model"
)

// Accepted keys per field, primary name first. The French names are what the
// provider answers with when the model name is French.
var (
	consumptionKeys = []string{"consumption_kW", "consommation_kW"}
	coolingKeys     = []string{"cooling_power_kW", "puissance_frigorifique_kW"}
	inverterKeys    = []string{"inverter"}
)

var (
	errNull      = errors.New("null value")
	errNegative  = errors.New("negative value")
	errNotFinite = errors.New("not a finite number")
)

// parseStructured decodes the first brace-delimited span and maps it onto
// TechnicalData. Any issue discards the whole record.
func parseStructured(raw string) (model.TechnicalData, []string, bool) {
	block := reBlock.FindString(raw)
	if block == "" {
		return model.TechnicalData{}, nil, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(block), &fields); err != nil {
		return model.TechnicalData{}, []string{"structured block: " + err.Error()}, false
	}

	var issues []string
	consumption, err := toFloat(lookup(fields, consumptionKeys))
	if err != nil {
		issues = append(issues, fmt.Sprintf("%s: %v", consumptionKeys[0], err))
	}
	cooling, err := toFloat(lookup(fields, coolingKeys))
	if err != nil {
		issues = append(issues, fmt.Sprintf("%s: %v", coolingKeys[0], err))
	}
	if len(issues) > 0 {
		return model.TechnicalData{}, issues, false
	}

	inverter, _ := lookup(fields, inverterKeys)
	return model.TechnicalData{
		ConsumptionKW:  model.Float(consumption),
		CoolingPowerKW: model.Float(cooling),
		Inverter:       model.Bool(truthy(inverter)),
	}, nil, true
}

func lookup(fields map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// toFloat coerces a decoded JSON value to kilowatts. A missing key counts as 0.
func toFloat(v any, present bool) (float64, error) {
	if !present {
		return 0, nil
	}

	var f float64
	switch val := v.(type) {
	case nil:
		return 0, errNull
	case float64:
		f = val
	case bool:
		if val {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("not numeric: %q", val)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
