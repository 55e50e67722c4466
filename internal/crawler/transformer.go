package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reTags = regexp.MustCompile(`<[^>]*>`)
	// "12.000 BTUs": separador de milhar brasileiro
	reThousandsBTU = regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d{3})+)([\s\p{Zs}]*BTU)`)
)

func stripHTML(s string) string {
	return reTags.ReplaceAllString(s, "")
}

// normalizeText drops thousands separators in BTU figures so free text reads
// "12000 BTU" instead of "12.000 BTU".
func normalizeText(s string) string {
	return reThousandsBTU.ReplaceAllStringFunc(s, func(m string) string {
		sub := reThousandsBTU.FindStringSubmatch(m)
		return strings.ReplaceAll(sub[1], ".", "") + sub[2]
	})
}

// ProductToText renders a storefront product as a spec sheet the extractor
// understands.
func ProductToText(p *OCCProduct) string {
	var sb strings.Builder

	sb.WriteString("--- Technical specifications ---\n")
	if p.Brand != "" {
		sb.WriteString("Brand: " + p.Brand + "\n")
	}
	if btus := normalizeBTU(p.Btus); btus != "" {
		sb.WriteString("Cooling capacity: " + btus + " BTU\n")
	}
	if kw, ok := consumptionKW(p.Potencia); ok {
		sb.WriteString("Consumption: " + strconv.FormatFloat(kw, 'f', -1, 64) + " kW\n")
	}
	if tech := technology(p.Tecnologia); tech != "" {
		sb.WriteString("Technology: " + tech + "\n")
	}
	if p.Ciclo != "" {
		sb.WriteString("Cycle: " + p.Ciclo + "\n")
	}
	if p.Voltagem != "" {
		sb.WriteString("Voltage: " + p.Voltagem + "\n")
	}
	sb.WriteString("-----------------------------\n\n")

	sb.WriteString(normalizeText(p.DisplayName) + "\n\n")

	if p.LongDesc != "" {
		sb.WriteString("Description:\n" + normalizeText(stripHTML(p.LongDesc)) + "\n")
	} else if p.Description != "" { // Fallback para descrição curta
		sb.WriteString("Description:\n" + normalizeText(stripHTML(p.Description)) + "\n")
	}

	return sb.String()
}

// normalizeBTU turns "12.000" or "12000 BTUs" into "12000".
func normalizeBTU(s string) string {
	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '.' || r == ' ':
		default:
			return digits.String()
		}
	}
	return digits.String()
}

// consumptionKW reads "1.090 W", "1090W" or "1,09 kW".
func consumptionKW(s string) (float64, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0, false
	}

	if strings.HasSuffix(lower, "kw") {
		num := strings.TrimSpace(strings.TrimSuffix(lower, "kw"))
		v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
		return v, err == nil && v > 0
	}

	num := strings.TrimSpace(strings.TrimSuffix(lower, "w"))
	num = strings.ReplaceAll(num, ".", "")
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v / 1000, true
}

func technology(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case lower == "":
		return ""
	case strings.Contains(lower, "inverter"):
		return "Inverter"
	case strings.Contains(lower, "on/off"), strings.Contains(lower, "convencional"):
		return "non-inverter (fixed-speed technology)"
	default:
		return s
	}
}
