// This file loads the adjacency-list graph format.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/distsim/core"
)

var (
	// ErrGraphFormat indicates a structurally invalid graph file.
	ErrGraphFormat = errors.New("scenario: malformed graph file")

	// ErrScenarioFormat indicates a structurally invalid scenario file.
	ErrScenarioFormat = errors.New("scenario: malformed scenario file")
)

// graphFile mirrors the on-disk adjacency representation: node labels
// plus [from, to] index pairs, no edge weights.
type graphFile struct {
	Nodes []string `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// LoadGraph reads path into a core.Graph. Label uniqueness is enforced
// here, not by the graph core.
func LoadGraph(path string) (*core.Graph, error) {
	var file graphFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}

	g := core.NewGraph()
	seen := make(map[string]bool, len(file.Nodes))
	for i, label := range file.Nodes {
		if label == "" {
			return nil, fmt.Errorf("%w: %s: node %d has an empty label", ErrGraphFormat, path, i)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: %s: duplicate node label %q", ErrGraphFormat, path, label)
		}
		seen[label] = true
		_ = g.AddVertex(label)
	}
	for i, e := range file.Edges {
		from, to := e[0], e[1]
		if from < 0 || from >= len(file.Nodes) || to < 0 || to >= len(file.Nodes) {
			return nil, fmt.Errorf("%w: %s: edge %d references node index out of range", ErrGraphFormat, path, i)
		}
		_ = g.AddEdge(file.Nodes[from], file.Nodes[to])
	}

	return g, nil
}

// readJSON decodes path into v, wrapping I/O and syntax failures with
// a diagnostic naming the file.
func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scenario: open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(v); err != nil {
		return fmt.Errorf("scenario: parse %s: %w", path, err)
	}

	return nil
}
