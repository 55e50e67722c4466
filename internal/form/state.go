package form

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"acdata/internal/model"
	"acdata/internal/specs"
)

var ErrInvalidInput = errors.New("invalid manual input")

const (
	UnknownModel = "Unknown model"

	MinConsumptionKW = 0.1
	MaxConsumptionKW = 10.0
	MinCoolingKW     = 0.1
	MaxCoolingKW     = 20.0

	DefaultConsumptionKW = 1.5
	DefaultCoolingKW     = 3.5
)

type NoticeLevel string

const (
	NoticeNone    NoticeLevel = ""
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ApplyLookup folds the outcome of a lookup into the form state. The state
// passed in is never modified.
func ApplyLookup(state model.FormState, modelName string, res specs.Result, err error) (model.FormState, Notice) {
	switch {
	case errors.Is(err, specs.ErrNotConfigured):
		return state, Notice{Level: NoticeError, Message: "Language model API key is not configured."}
	case err != nil:
		return model.FormState{ModelName: strings.TrimSpace(modelName)}, Notice{Level: NoticeError, Message: "The technical data service is unavailable. Enter the values manually."}
	}

	data := res.Data.Clone()
	next := model.FormState{
		ModelName: strings.TrimSpace(modelName),
		Data:      &data,
		Validated: data.Complete(),
	}
	if !next.Validated {
		return next, Notice{Level: NoticeWarning, Message: "Some data could not be retrieved. Complete manually."}
	}
	return next, Notice{Level: NoticeSuccess, Message: "Technical data validated."}
}

// ManualDefaults pre-fills the manual form with what is already known,
// kept inside the accepted ranges. Inverter defaults to yes on a blank form
// but to no once a lookup left it unknown.
func ManualDefaults(state model.FormState) model.ManualInput {
	in := model.ManualInput{
		ConsumptionKW:  DefaultConsumptionKW,
		CoolingPowerKW: DefaultCoolingKW,
		Inverter:       true,
	}
	if state.Data == nil {
		return in
	}
	if v := state.Data.ConsumptionKW; v != nil {
		in.ConsumptionKW = clamp(*v, MinConsumptionKW, MaxConsumptionKW)
	}
	if v := state.Data.CoolingPowerKW; v != nil {
		in.CoolingPowerKW = clamp(*v, MinCoolingKW, MaxCoolingKW)
	}
	in.Inverter = false
	if v := state.Data.Inverter; v != nil {
		in.Inverter = *v
	}
	return in
}

// ApplyManual validates the manual entry and returns the validated state.
func ApplyManual(state model.FormState, modelName string, in model.ManualInput) (model.FormState, error) {
	if !inRange(in.ConsumptionKW, MinConsumptionKW, MaxConsumptionKW) {
		return state, fmt.Errorf("%w: consumption must be between %g and %g kW", ErrInvalidInput, MinConsumptionKW, MaxConsumptionKW)
	}
	if !inRange(in.CoolingPowerKW, MinCoolingKW, MaxCoolingKW) {
		return state, fmt.Errorf("%w: cooling power must be between %g and %g kW", ErrInvalidInput, MinCoolingKW, MaxCoolingKW)
	}

	name := strings.TrimSpace(modelName)
	if name == "" {
		name = UnknownModel
	}

	return model.FormState{
		ModelName: name,
		Data: &model.TechnicalData{
			ConsumptionKW:  model.Float(in.ConsumptionKW),
			CoolingPowerKW: model.Float(in.CoolingPowerKW),
			Inverter:       model.Bool(in.Inverter),
		},
		Validated: true,
	}, nil
}

func Reset() model.FormState {
	return model.FormState{}
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
