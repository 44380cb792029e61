package docker

import (
	"fmt"
	"strconv"

	"github.com/docker/docker/api/types/swarm"
	"github.com/docker/go-units"

	"github.com/dockhand/deployer/models"
)

const nanoCPUs = 1e9

// ServiceResources converts the descriptor's human-entered limits and
// reservations into swarm resource blocks. Unset fields stay unset so the
// control plane keeps its own defaults; a nil return means no resource
// constraints at all.
func ServiceResources(app models.ApplicationDescriptor) (*swarm.ResourceRequirements, error) {
	limitCPU, err := parseCPU(app.CPULimit)
	if err != nil {
		return nil, fmt.Errorf("cpu limit: %w", err)
	}
	limitMem, err := parseMemory(app.MemoryLimit)
	if err != nil {
		return nil, fmt.Errorf("memory limit: %w", err)
	}
	resCPU, err := parseCPU(app.CPUReservation)
	if err != nil {
		return nil, fmt.Errorf("cpu reservation: %w", err)
	}
	resMem, err := parseMemory(app.MemoryReservation)
	if err != nil {
		return nil, fmt.Errorf("memory reservation: %w", err)
	}

	var limits *swarm.Limit
	if limitCPU != 0 || limitMem != 0 {
		limits = &swarm.Limit{NanoCPUs: limitCPU, MemoryBytes: limitMem}
	}
	var reservations *swarm.Resources
	if resCPU != 0 || resMem != 0 {
		reservations = &swarm.Resources{NanoCPUs: resCPU, MemoryBytes: resMem}
	}
	if limits == nil && reservations == nil {
		return nil, nil
	}
	return &swarm.ResourceRequirements{Limits: limits, Reservations: reservations}, nil
}

// parseCPU converts a decimal core count ("0.5") to nano-CPUs.
func parseCPU(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	cores, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cpu value %q: %w", v, err)
	}
	if cores < 0 {
		return 0, fmt.Errorf("cpu value %q is negative", v)
	}
	return int64(cores * nanoCPUs), nil
}

// parseMemory accepts go-units notation ("512M", "1g") or bare bytes.
func parseMemory(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	bytes, err := units.RAMInBytes(v)
	if err != nil {
		return 0, fmt.Errorf("parse memory value %q: %w", v, err)
	}
	return bytes, nil
}
