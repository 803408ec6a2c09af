package toolserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Physical bounds on accepted temperature inputs, in the source scale.
const (
	minTemperature = -273.15
	maxTemperature = 100000
)

// Conversion is the structured result of one temperature conversion.
type Conversion struct {
	OriginalValue  float64 `json:"original_value"`
	OriginalScale  string  `json:"original_scale"`
	ConvertedValue float64 `json:"converted_value"`
	ConvertedScale string  `json:"converted_scale"`
	Formula        string  `json:"formula"`
}

// conversionSpec describes one registered conversion tool.
type conversionSpec struct {
	name        string
	description string
	fromScale   string
	toScale     string
	formula     string
	convert     func(v float64) float64
}

var conversions = []conversionSpec{
	{
		name:        "celsius_to_fahrenheit",
		description: "Convert temperature from Celsius to Fahrenheit",
		fromScale:   "C",
		toScale:     "F",
		formula:     "F = (C * 9/5) + 32",
		convert:     func(c float64) float64 { return (c * 9 / 5) + 32 },
	},
	{
		name:        "fahrenheit_to_celsius",
		description: "Convert temperature from Fahrenheit to Celsius",
		fromScale:   "F",
		toScale:     "C",
		formula:     "C = (F - 32) * 5/9",
		convert:     func(f float64) float64 { return (f - 32) * 5 / 9 },
	},
	{
		name:        "celsius_to_kelvin",
		description: "Convert temperature from Celsius to Kelvin",
		fromScale:   "C",
		toScale:     "K",
		formula:     "K = C + 273.15",
		convert:     func(c float64) float64 { return c + 273.15 },
	},
	{
		name:        "kelvin_to_celsius",
		description: "Convert temperature from Kelvin to Celsius",
		fromScale:   "K",
		toScale:     "C",
		formula:     "C = K - 273.15",
		convert:     func(k float64) float64 { return k - 273.15 },
	},
	{
		name:        "fahrenheit_to_kelvin",
		description: "Convert temperature from Fahrenheit to Kelvin",
		fromScale:   "F",
		toScale:     "K",
		formula:     "K = (F - 32) * 5/9 + 273.15",
		convert:     func(f float64) float64 { return (f-32)*5/9 + 273.15 },
	},
	{
		name:        "kelvin_to_fahrenheit",
		description: "Convert temperature from Kelvin to Fahrenheit",
		fromScale:   "K",
		toScale:     "F",
		formula:     "F = (K - 273.15) * 9/5 + 32",
		convert:     func(k float64) float64 { return (k-273.15)*9/5 + 32 },
	},
}

// NewTemperatureServer creates the temperature conversion tool server with
// its six scale-pair conversions.
func NewTemperatureServer() *Server {
	s := NewServer("temperature-server", "1.0.0")

	for _, spec := range conversions {
		s.AddTool(&mcp.Tool{
			Name:        spec.name,
			Description: spec.description,
			InputSchema: SimpleSchema(map[string]string{"temperature": "float64"}),
		}, conversionHandler(spec))
	}

	return s
}

// conversionHandler builds the tool handler for one conversion spec.
func conversionHandler(spec conversionSpec) mcp.ToolHandler {
	return func(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := ParseArguments(req)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}

		value, ok := args["temperature"].(float64)
		if !ok {
			return ErrorResult("temperature must be a number"), nil
		}

		if value < minTemperature || value > maxTemperature {
			return ErrorResult(fmt.Sprintf(
				"Temperature must be between %g and %g", minTemperature, float64(maxTemperature))), nil
		}

		return JSONResult(&Conversion{
			OriginalValue:  value,
			OriginalScale:  spec.fromScale,
			ConvertedValue: spec.convert(value),
			ConvertedScale: spec.toScale,
			Formula:        spec.formula,
		}), nil
	}
}
