// This file loads the Ricart-Agrawala workload format.
package scenario

import (
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/distsim/site"
)

// ricartInstruction mirrors one on-disk workload entry.
type ricartInstruction struct {
	Type     string `json:"type"`
	Duration int64  `json:"duration"`
}

// RicartScenario is a per-site workload, plus the deterministic site
// order used to assign identity sequence numbers.
type RicartScenario struct {
	// Workloads maps site name to its instruction list.
	Workloads map[string][]site.Instruction

	// Order lists the site names sorted ascending; creating sites in
	// this order makes the identity tie-break reproducible.
	Order []string
}

// LoadRicart reads a {site: [{"type": "cs"|"idle", "duration": ms}]}
// file.
func LoadRicart(path string) (*RicartScenario, error) {
	var file map[string][]ricartInstruction
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file) == 0 {
		return nil, fmt.Errorf("%w: %s: no sites", ErrScenarioFormat, path)
	}

	out := &RicartScenario{
		Workloads: make(map[string][]site.Instruction, len(file)),
		Order:     make([]string, 0, len(file)),
	}
	for name, raw := range file {
		if name == "" {
			return nil, fmt.Errorf("%w: %s: empty site name", ErrScenarioFormat, path)
		}
		list := make([]site.Instruction, 0, len(raw))
		for i, ins := range raw {
			if ins.Duration < 0 {
				return nil, fmt.Errorf("%w: %s: site %q instruction %d: negative duration",
					ErrScenarioFormat, path, name, i)
			}
			d := time.Duration(ins.Duration) * time.Millisecond
			switch ins.Type {
			case "cs":
				list = append(list, site.Critical(d))
			case "idle":
				list = append(list, site.Idle(d))
			default:
				return nil, fmt.Errorf("%w: %s: site %q instruction %d: unknown type %q",
					ErrScenarioFormat, path, name, i, ins.Type)
			}
		}
		out.Workloads[name] = list
		out.Order = append(out.Order, name)
	}
	sort.Strings(out.Order)

	return out, nil
}
