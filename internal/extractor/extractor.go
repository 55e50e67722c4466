// Package extractor pulls consumption, cooling power and inverter technology
// out of the free text a language model returns for an air conditioner.
package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"acdata/internal/model"
)

type Path string

const (
	PathStructured Path = "structured"
	PathFallback   Path = "fallback"
)

// Report tells which path produced a result and what was discarded on the way.
type Report struct {
	Path   Path
	Issues []string
}

var (
	// guloso: do primeiro '{' ao último '}'
	reBlock = regexp.MustCompile(`(?s)\{.*\}`)

	// \p{Zs}: respostas em francês usam espaço inseparável antes da unidade
	reConsumption = regexp.MustCompile(`(?i)(consumption|electrical power|electric power|consommation|puissance électrique)\D*([\d,.]+)[\s\p{Zs}]*kW`)
	reCooling     = regexp.MustCompile(`(?i)(cooling power|cooling capacity|puissance frigorifique|capacité de refroidissement)\D*([\d,.]+)[\s\p{Zs}]*kW`)
	reBTU         = regexp.MustCompile(`(?i)(\d+)[\s\p{Zs}]*BTU`)

	// group 1 is set when the inverter token is the tail of "non inverter"
	reInverter    = regexp.MustCompile(`(?i)(\bnon[- ]?)?inverter|variable[- ]speed technology|technologie à vitesse variable`)
	reNonInverter = regexp.MustCompile(`(?i)non[- ]?inverter|fixed[- ]speed technology|technologie fixe`)
)

// Extract never fails: whatever cannot be read is left nil.
func Extract(raw string) model.TechnicalData {
	data, _ := ExtractWithReport(raw)
	return data
}

// ExtractWithReport tries the structured block first and only falls back to
// pattern matching when that block is absent or does not fit the schema.
func ExtractWithReport(raw string) (model.TechnicalData, Report) {
	data, issues, ok := parseStructured(raw)
	if ok {
		return data, Report{Path: PathStructured}
	}

	data, more := parseFallback(raw)
	return data, Report{Path: PathFallback, Issues: append(issues, more...)}
}

func parseFallback(raw string) (model.TechnicalData, []string) {
	var data model.TechnicalData
	var issues []string

	if match := reConsumption.FindStringSubmatch(raw); len(match) > 2 {
		if v, err := parseDecimal(match[2]); err == nil {
			data.ConsumptionKW = model.Float(v)
		} else {
			issues = append(issues, "consumption: "+err.Error())
		}
	}

	if match := reCooling.FindStringSubmatch(raw); len(match) > 2 {
		if v, err := parseDecimal(match[2]); err == nil {
			data.CoolingPowerKW = model.Float(v)
		} else {
			issues = append(issues, "cooling power: "+err.Error())
		}
	} else if match := reBTU.FindStringSubmatch(raw); len(match) > 1 {
		btu, err := strconv.ParseFloat(match[1], 64)
		if err == nil {
			data.CoolingPowerKW = model.Float(round2(btu * model.BTUToKW))
		} else {
			issues = append(issues, "btu: "+err.Error())
		}
	}

	if hasInverter(raw) {
		data.Inverter = model.Bool(true)
	} else if reNonInverter.MatchString(raw) {
		data.Inverter = model.Bool(false)
	}

	return data, issues
}

// hasInverter looks for an inverter token that is not the tail of a
// "non inverter" phrase, in a single pass over raw.
func hasInverter(raw string) bool {
	for _, loc := range reInverter.FindAllStringSubmatchIndex(raw, -1) {
		if loc[2] < 0 {
			return true
		}
	}
	return false
}

func parseDecimal(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
