package llm

import "fmt"

// Prompt asks for the three fields as a bare JSON object.
func Prompt(modelName string) string {
	return fmt.Sprintf(`
For the air conditioner %s, provide STRICTLY the following information in JSON format:
{
    "consumption_kW": "float (electrical power input in kilowatts)",
    "cooling_power_kW": "float (cooling capacity in kilowatts)",
    "inverter": "boolean"
}
If a piece of information is unknown, use null.
`, modelName)
}
