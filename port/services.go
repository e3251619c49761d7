package port

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed services.yaml
var servicesYAML []byte

// services maps port numbers to well-known service names. Built once at init
// and never mutated afterwards.
var services map[int]string

func init() {
	if err := yaml.Unmarshal(servicesYAML, &services); err != nil {
		panic(fmt.Sprintf("port: bad embedded services table: %v", err))
	}
}

// ServiceName returns the well-known service name for a port, or "" when the
// port has no standard association.
func ServiceName(p int) string {
	return services[p]
}

// CommonPorts returns the default preset: every port in the well-known table,
// ascending.
func CommonPorts() []int {
	out := make([]int, 0, len(services))
	for p := range services {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
