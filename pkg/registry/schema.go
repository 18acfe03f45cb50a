// pkg/registry/schema.go
package registry

// OperationRegistry is the published catalog of the service's HTTP operations.
type OperationRegistry struct {
	Version     string      `json:"version" yaml:"version"`
	LastUpdated string      `json:"lastUpdated" yaml:"lastUpdated"`
	Operations  []Operation `json:"operations" yaml:"operations"`
}

type Operation struct {
	ID           string                 `json:"id" yaml:"id"`
	DisplayName  string                 `json:"displayName" yaml:"displayName"`
	Description  string                 `json:"description" yaml:"description"`
	Category     string                 `json:"category" yaml:"category"`
	Method       string                 `json:"method" yaml:"method"`
	Paths        []string               `json:"paths" yaml:"paths"`
	InputSchema  map[string]interface{} `json:"inputSchema" yaml:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema,omitempty" yaml:"outputSchema,omitempty"`
	ErrorCodes   []string               `json:"errorCodes" yaml:"errorCodes"`
	Timeout      string                 `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Tags         []string               `json:"tags,omitempty" yaml:"tags,omitempty"`
}
