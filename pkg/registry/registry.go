// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func LoadRegistry(path string) (*OperationRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg OperationRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// SaveRegistry stamps LastUpdated and writes the registry as indented JSON.
func SaveRegistry(path string, reg *OperationRegistry) error {
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (r *OperationRegistry) Find(id string) (*Operation, bool) {
	for i := range r.Operations {
		if r.Operations[i].ID == id {
			return &r.Operations[i], true
		}
	}
	return nil, false
}

// Validate reports every structural problem at once.
func (r *OperationRegistry) Validate() error {
	var problems []string
	seenIDs := make(map[string]bool)
	seenRoutes := make(map[string]string)

	for i, op := range r.Operations {
		label := op.ID
		if label == "" {
			label = fmt.Sprintf("operations[%d]", i)
			problems = append(problems, label+": id is required")
		}
		if seenIDs[op.ID] {
			problems = append(problems, label+": duplicate id")
		}
		seenIDs[op.ID] = true

		if op.Method == "" {
			problems = append(problems, label+": method is required")
		}
		if len(op.Paths) == 0 {
			problems = append(problems, label+": at least one path is required")
		}
		for _, p := range op.Paths {
			if !strings.HasPrefix(p, "/") {
				problems = append(problems, fmt.Sprintf("%s: path %q must start with /", label, p))
			}
			route := op.Method + " " + p
			if owner, dup := seenRoutes[route]; dup {
				problems = append(problems, fmt.Sprintf("%s: route %s already served by %s", label, route, owner))
			}
			seenRoutes[route] = label
		}
		if op.InputSchema == nil {
			problems = append(problems, label+": inputSchema is required")
		}
		if op.Timeout != "" {
			if _, err := time.ParseDuration(op.Timeout); err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", label, op.Timeout))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("registry has %d problem(s):\n  %s", len(problems), strings.Join(problems, "\n  "))
	}
	return nil
}
