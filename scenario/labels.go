// This file loads the Mitchell-Merritt scenario format.
package scenario

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/katalvlaran/distsim/deadlock"
)

// LabelsNode is one probe site: its name, task list, and the names it
// is connected to.
type LabelsNode struct {
	Name        string      `json:"name"`
	Tasks       []LabelTask `json:"instructions"`
	ConnectedTo []string    `json:"connected_to"`
}

// LabelTask is one workload entry in its on-disk form. The format is
// externally tagged: "block", {"idle": seconds}, or
// {"execute": {"duration": seconds, "req_from": [names]}}.
type LabelTask struct {
	Task deadlock.Task
}

// executeBody mirrors the execute variant payload.
type executeBody struct {
	Duration int64    `json:"duration"`
	ReqFrom  []string `json:"req_from"`
}

// UnmarshalJSON decodes the three externally tagged variants.
func (t *LabelTask) UnmarshalJSON(data []byte) error {
	// Bare string variant: "block"
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "block" {
			return fmt.Errorf("%w: unknown instruction %q", ErrScenarioFormat, tag)
		}
		t.Task = deadlock.Task{Kind: deadlock.TaskBlock}

		return nil
	}

	// Object variants: single key "idle" or "execute"
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrScenarioFormat, err)
	}
	if len(body) != 1 {
		return fmt.Errorf("%w: instruction must carry exactly one variant key", ErrScenarioFormat)
	}
	for key, raw := range body {
		switch key {
		case "idle":
			var secs int64
			if err := json.Unmarshal(raw, &secs); err != nil || secs < 0 {
				return fmt.Errorf("%w: idle wants a non-negative duration", ErrScenarioFormat)
			}
			t.Task = deadlock.Task{Kind: deadlock.TaskIdle, Duration: time.Duration(secs) * time.Second}
		case "execute":
			var ex executeBody
			if err := json.Unmarshal(raw, &ex); err != nil {
				return fmt.Errorf("%w: %v", ErrScenarioFormat, err)
			}
			if ex.Duration < 0 {
				return fmt.Errorf("%w: execute wants a non-negative duration", ErrScenarioFormat)
			}
			t.Task = deadlock.Task{
				Kind:     deadlock.TaskExecute,
				Duration: time.Duration(ex.Duration) * time.Second,
				ReqFrom:  ex.ReqFrom,
			}
		default:
			return fmt.Errorf("%w: unknown instruction variant %q", ErrScenarioFormat, key)
		}
	}

	return nil
}

// LoadLabels reads an array of probe-site descriptions.
func LoadLabels(path string) ([]LabelsNode, error) {
	var file []LabelsNode
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file) == 0 {
		return nil, fmt.Errorf("%w: %s: no sites", ErrScenarioFormat, path)
	}
	known := make(map[string]bool, len(file))
	for i, node := range file {
		if node.Name == "" {
			return nil, fmt.Errorf("%w: %s: site %d has no name", ErrScenarioFormat, path, i)
		}
		if known[node.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate site name %q", ErrScenarioFormat, path, node.Name)
		}
		known[node.Name] = true
	}
	for _, node := range file {
		for _, conn := range node.ConnectedTo {
			if !known[conn] {
				return nil, fmt.Errorf("%w: %s: site %q connects to unknown site %q",
					ErrScenarioFormat, path, node.Name, conn)
			}
		}
	}

	return file, nil
}

// TaskList extracts the plain task list of a node.
func (n LabelsNode) TaskList() []deadlock.Task {
	out := make([]deadlock.Task, len(n.Tasks))
	for i, t := range n.Tasks {
		out[i] = t.Task
	}

	return out
}
