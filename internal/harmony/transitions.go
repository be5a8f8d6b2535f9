package harmony

import (
	"fmt"

	"github.com/Conceptual-Machines/harmony-api/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// Transition is a weighted move to a 0-based target scale degree
type Transition struct {
	Target int
	Weight float64
}

// TransitionTable maps a source degree to its weighted next degrees, per
// mode. It is read-only once loaded.
type TransitionTable struct {
	rows map[Mode][scaleLength][]Transition
}

type transitionFile struct {
	Major []transitionRowDTO `yaml:"major"`
	Minor []transitionRowDTO `yaml:"minor"`
}

type transitionRowDTO struct {
	From int                 `yaml:"from"`
	To   []transitionEdgeDTO `yaml:"to"`
}

type transitionEdgeDTO struct {
	Degree int     `yaml:"degree"`
	Weight float64 `yaml:"weight"`
}

var defaultTransitions = mustLoadTransitionTable(embedded.TransitionsYAML)

// DefaultTransitions returns the table compiled into the binary
func DefaultTransitions() *TransitionTable {
	return defaultTransitions
}

// LoadTransitionTable parses and validates a YAML transition table.
// Every degree of both modes must have a non-empty row.
func LoadTransitionTable(data []byte) (*TransitionTable, error) {
	var file transitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse transition table: %w", err)
	}

	table := &TransitionTable{rows: make(map[Mode][scaleLength][]Transition, 2)}
	for mode, dtoRows := range map[Mode][]transitionRowDTO{ModeMajor: file.Major, ModeMinor: file.Minor} {
		rows, err := buildRows(dtoRows)
		if err != nil {
			return nil, fmt.Errorf("%s transitions: %w", mode, err)
		}
		table.rows[mode] = rows
	}
	return table, nil
}

func buildRows(dtoRows []transitionRowDTO) ([scaleLength][]Transition, error) {
	var rows [scaleLength][]Transition

	for _, row := range dtoRows {
		if row.From < 1 || row.From > scaleLength {
			return rows, fmt.Errorf("source degree %d out of range", row.From)
		}
		src := row.From - 1
		if rows[src] != nil {
			return rows, fmt.Errorf("duplicate row for degree %d", row.From)
		}

		seen := make(map[int]bool, len(row.To))
		edges := make([]Transition, 0, len(row.To))
		for _, edge := range row.To {
			if edge.Degree < 1 || edge.Degree > scaleLength {
				return rows, fmt.Errorf("degree %d: target degree %d out of range", row.From, edge.Degree)
			}
			if edge.Weight <= 0 || edge.Weight > 1 {
				return rows, fmt.Errorf("degree %d: weight %v outside (0,1]", row.From, edge.Weight)
			}
			if seen[edge.Degree] {
				return rows, fmt.Errorf("degree %d: duplicate target %d", row.From, edge.Degree)
			}
			seen[edge.Degree] = true
			edges = append(edges, Transition{Target: edge.Degree - 1, Weight: edge.Weight})
		}
		if len(edges) == 0 {
			return rows, fmt.Errorf("degree %d has no targets", row.From)
		}
		rows[src] = edges
	}

	for d, edges := range rows {
		if edges == nil {
			return rows, fmt.Errorf("missing row for degree %d", d+1)
		}
	}
	return rows, nil
}

func mustLoadTransitionTable(data []byte) *TransitionTable {
	table, err := LoadTransitionTable(data)
	if err != nil {
		panic(fmt.Sprintf("embedded transition table: %v", err))
	}
	return table
}

// Row returns a copy of the transitions out of a 0-based degree
func (t *TransitionTable) Row(mode Mode, degree int) []Transition {
	src := t.rows[mode][((degree%scaleLength)+scaleLength)%scaleLength]
	row := make([]Transition, len(src))
	copy(row, src)
	return row
}

// Len returns the number of transitions across both modes
func (t *TransitionTable) Len() int {
	n := 0
	for _, rows := range t.rows {
		for _, row := range rows {
			n += len(row)
		}
	}
	return n
}
