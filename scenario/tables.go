// This file loads the centralized-detector table format.
package scenario

import "fmt"

// SiteTables is one site's contribution to the wait-for analysis:
// which process holds each local resource, and which resources each
// local process has requested.
type SiteTables struct {
	Resources map[string]string   `json:"resources"`
	Processes map[string][]string `json:"processes"`
}

// LoadTables reads an array of site objects for the centralized
// detector.
func LoadTables(path string) ([]SiteTables, error) {
	var file []SiteTables
	if err := readJSON(path, &file); err != nil {
		return nil, err
	}
	if len(file) == 0 {
		return nil, fmt.Errorf("%w: %s: no sites", ErrScenarioFormat, path)
	}
	for i, tab := range file {
		for res, holder := range tab.Resources {
			if res == "" || holder == "" {
				return nil, fmt.Errorf("%w: %s: site %d: empty resource or holder label",
					ErrScenarioFormat, path, i)
			}
		}
		for proc, reqs := range tab.Processes {
			if proc == "" {
				return nil, fmt.Errorf("%w: %s: site %d: empty process label",
					ErrScenarioFormat, path, i)
			}
			for _, res := range reqs {
				if res == "" {
					return nil, fmt.Errorf("%w: %s: site %d: process %q requests an empty resource",
						ErrScenarioFormat, path, i, proc)
				}
			}
		}
	}

	return file, nil
}
