package roster

import "fmt"

// Operation identifies an extraordinary duty program.
type Operation string

const (
	// OpPMF is the "Polícia Mais Forte" operation (3 slots per day).
	OpPMF Operation = "pmf"

	// OpEscolaSegura is the "Escola Segura" operation (2 slots per day).
	OpEscolaSegura Operation = "escolaSegura"
)

// Operations returns every known operation in canonical order.
func Operations() []Operation {
	return []Operation{OpPMF, OpEscolaSegura}
}

// ParseOperation converts an identifier into an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OpPMF, OpEscolaSegura:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown operation %q (expected %q or %q)", s, OpPMF, OpEscolaSegura)
}

// Width returns the fixed number of slots per day.
func (o Operation) Width() int {
	switch o {
	case OpPMF:
		return 3
	case OpEscolaSegura:
		return 2
	default:
		return 0
	}
}

// Label returns the display name used in reports.
func (o Operation) Label() string {
	switch o {
	case OpPMF:
		return "PMF"
	case OpEscolaSegura:
		return "ESCOLA SEGURA"
	default:
		return string(o)
	}
}

// Capped reports whether occurrences in this operation count toward the
// monthly cap. Both operations share the same accounting.
func (o Operation) Capped() bool {
	return o == OpPMF || o == OpEscolaSegura
}

// Order returns the canonical sort position of the operation.
func (o Operation) Order() int {
	for i, op := range Operations() {
		if op == o {
			return i
		}
	}
	return len(Operations())
}

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	return o.Width() > 0
}
