package models

import (
	"fmt"
	"strconv"

	"github.com/docker/go-connections/nat"
)

// PortMapping publishes one container port on the routing mesh or host.
type PortMapping struct {
	// Protocol is "tcp" or "udp"; empty means tcp.
	Protocol   string `json:"protocol,omitempty"`
	TargetPort uint32 `json:"target_port"`
	// PublishedPort 0 lets the orchestrator pick one.
	PublishedPort uint32 `json:"published_port,omitempty"`
	// PublishMode is "ingress" (default) or "host".
	PublishMode string `json:"publish_mode,omitempty"`
}

// ParsePortSpecs expands docker-style shorthand like "8080:80/tcp" into port
// mappings, for configuration files that prefer the compact form.
func ParsePortSpecs(specs []string) ([]PortMapping, error) {
	var out []PortMapping
	for _, spec := range specs {
		mappings, err := nat.ParsePortSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("parse port spec %q: %w", spec, err)
		}
		for _, m := range mappings {
			var published uint64
			if m.Binding.HostPort != "" {
				published, err = strconv.ParseUint(m.Binding.HostPort, 10, 16)
				if err != nil {
					return nil, fmt.Errorf("parse host port in %q: %w", spec, err)
				}
			}
			out = append(out, PortMapping{
				Protocol:      m.Port.Proto(),
				TargetPort:    uint32(m.Port.Int()),
				PublishedPort: uint32(published),
			})
		}
	}
	return out, nil
}
