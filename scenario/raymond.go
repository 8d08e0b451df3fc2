// This file loads and validates the Raymond tree format.
package scenario

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/distsim/site"
)

var (
	// ErrRaymondRoot indicates zero or multiple nodes with a null parent.
	ErrRaymondRoot = errors.New("scenario: tree must have exactly one root")

	// ErrRaymondParent indicates an unknown or cyclic parent reference.
	ErrRaymondParent = errors.New("scenario: invalid parent reference")
)

// raymondFile mirrors the on-disk tree representation.
type raymondFile struct {
	Nodes map[string]raymondNode `json:"nodes"`
}

type raymondNode struct {
	Instructions []raymondInstruction `json:"instructions"`
	Parent       *string              `json:"parent"`
}

type raymondInstruction struct {
	Kind     string `json:"kind"`
	Duration int64  `json:"duration"`
}

// RaymondScenario is a validated request tree: per-node workloads,
// parent names, and a parents-before-children creation order.
type RaymondScenario struct {
	// Root is the single node with a null parent.
	Root string

	// Parents maps every non-root node to its parent name.
	Parents map[string]string

	// Workloads maps node name to its instruction list.
	Workloads map[string][]site.Instruction

	// Order lists node names parents-first (root first), children in
	// name order, so sites can be created and wired in one pass.
	Order []string
}

// LoadRaymond reads a {"nodes": {name: {"instructions": [...],
// "parent": name|null}}} file and validates the tree shape.
func LoadRaymond(path string) (*RaymondScenario, error) {
	var file raymondFile
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file.Nodes) == 0 {
		return nil, fmt.Errorf("%w: %s: no nodes", ErrScenarioFormat, path)
	}

	out := &RaymondScenario{
		Parents:   make(map[string]string, len(file.Nodes)),
		Workloads: make(map[string][]site.Instruction, len(file.Nodes)),
	}

	// 1. Translate workloads, find the root, record parents
	for name, node := range file.Nodes {
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty node name", ErrScenarioFormat, path)
		}
		list := make([]site.Instruction, 0, len(node.Instructions))
		for i, ins := range node.Instructions {
			if ins.Duration < 0 {
				return nil, fmt.Errorf("%w: %s: node %q instruction %d: negative duration",
					ErrScenarioFormat, path, name, i)
			}
			d := time.Duration(ins.Duration) * time.Millisecond
			switch ins.Kind {
			case "critical_section":
				list = append(list, site.Critical(d))
			case "idle":
				list = append(list, site.Idle(d))
			default:
				return nil, fmt.Errorf("%w: %s: node %q instruction %d: unknown kind %q",
					ErrScenarioFormat, path, name, i, ins.Kind)
			}
		}
		out.Workloads[name] = list

		if node.Parent == nil {
			if out.Root != "" {
				return nil, fmt.Errorf("%w: %s: both %q and %q", ErrRaymondRoot, path, out.Root, name)
			}
			out.Root = name

			continue
		}
		if _, known := file.Nodes[*node.Parent]; !known {
			return nil, fmt.Errorf("%w: %s: node %q names unknown parent %q",
				ErrRaymondParent, path, name, *node.Parent)
		}
		out.Parents[name] = *node.Parent
	}
	if out.Root == "" {
		return nil, fmt.Errorf("%w: %s: no node has a null parent", ErrRaymondRoot, path)
	}

	// 2. Order parents-first; a node left unplaced sits on a parent
	//    cycle and is rejected
	placed := map[string]bool{out.Root: true}
	out.Order = append(out.Order, out.Root)
	names := make([]string, 0, len(file.Nodes))
	for name := range file.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	for len(out.Order) < len(file.Nodes) {
		progressed := false
		for _, name := range names {
			if placed[name] || !placed[out.Parents[name]] {
				continue
			}
			placed[name] = true
			out.Order = append(out.Order, name)
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("%w: %s: parent links contain a cycle", ErrRaymondParent, path)
		}
	}

	return out, nil
}
