package fixture

import (
	_ "embed"
	"fmt"
)

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the built-in fixture shown when no file is given: two source
// chunks spliced into a derived program, with a gap for the generated text
// between them.
func Demo() *Fixture {
	f, err := Parse(demoYAML)
	if err != nil {
		panic(fmt.Sprintf("fixture: demo does not parse: %v", err))
	}
	return f
}
