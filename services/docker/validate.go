package docker

import (
	"errors"
	"fmt"

	"github.com/dockhand/deployer/models"
)

// ValidateDescriptor runs the pre-flight checks that should fail a deployment
// before any engine call: mount targets must be unique within the service,
// and a reservation must not exceed its limit. The resource calculator itself
// stays a pure converter; this is where the cross-field rules live.
func ValidateDescriptor(app models.ApplicationDescriptor) error {
	if app.AppName == "" {
		return errors.New("app name is required")
	}

	targets := make(map[string]struct{}, len(app.Mounts))
	for _, m := range app.Mounts {
		if m.MountPath == "" {
			return fmt.Errorf("%s mount has no mount path", m.Type)
		}
		if _, dup := targets[m.MountPath]; dup {
			return fmt.Errorf("duplicate mount target %q", m.MountPath)
		}
		targets[m.MountPath] = struct{}{}
	}

	cpuLimit, err := parseCPU(app.CPULimit)
	if err != nil {
		return err
	}
	cpuRes, err := parseCPU(app.CPUReservation)
	if err != nil {
		return err
	}
	if cpuLimit > 0 && cpuRes > cpuLimit {
		return fmt.Errorf("cpu reservation %q exceeds limit %q", app.CPUReservation, app.CPULimit)
	}

	memLimit, err := parseMemory(app.MemoryLimit)
	if err != nil {
		return err
	}
	memRes, err := parseMemory(app.MemoryReservation)
	if err != nil {
		return err
	}
	if memLimit > 0 && memRes > memLimit {
		return fmt.Errorf("memory reservation %q exceeds limit %q", app.MemoryReservation, app.MemoryLimit)
	}

	return nil
}
