package builtin

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/agentkit/core"
	"github.com/hupe1980/agentkit/tool"
)

// CalculatorArgs are the calculator tool arguments.
type CalculatorArgs struct {
	Operation string   `json:"operation" jsonschema:"Operation: add, subtract, multiply, divide, power or sqrt"`
	A         float64  `json:"a" jsonschema:"First number"`
	B         *float64 `json:"b,omitempty" jsonschema:"Second number (unused for sqrt)"`
}

// CalculatorResult is the calculator tool output.
type CalculatorResult struct {
	Result float64 `json:"result"`
}

var operations = []any{"add", "subtract", "multiply", "divide", "power", "sqrt"}

// Calculator performs basic arithmetic.
func Calculator() tool.Tool {
	calc := tool.MustFunctionTool("calculator", "Perform basic math operations (add, subtract, multiply, divide, power, sqrt)", calculate)
	calc.Parameters().Properties["operation"].Enum = operations
	return calc
}

func calculate(tc *core.ToolContext, in CalculatorArgs) (CalculatorResult, error) {
	tc.Logger().Debug("calculator.eval", "operation", in.Operation)

	if in.Operation == "sqrt" {
		if in.A < 0 {
			return CalculatorResult{}, errors.New("sqrt of a negative number")
		}
		return CalculatorResult{Result: math.Sqrt(in.A)}, nil
	}

	if in.B == nil {
		return CalculatorResult{}, fmt.Errorf("operation %s requires b", in.Operation)
	}
	a, b := in.A, *in.B

	switch in.Operation {
	case "add":
		return CalculatorResult{Result: a + b}, nil
	case "subtract":
		return CalculatorResult{Result: a - b}, nil
	case "multiply":
		return CalculatorResult{Result: a * b}, nil
	case "divide":
		if b == 0 {
			return CalculatorResult{}, errors.New("division by zero")
		}
		return CalculatorResult{Result: a / b}, nil
	case "power":
		return CalculatorResult{Result: math.Pow(a, b)}, nil
	}

	return CalculatorResult{}, fmt.Errorf("unsupported operation %q", in.Operation)
}
