package embedded

import (
	_ "embed"
)

// Static harmony data shipped inside the binary
//
//go:embed data/transitions.yaml
var TransitionsYAML []byte
