package docker

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
)

// Remove deletes the application's service. Idempotent: a service that is
// already gone is treated as success.
func (p *SwarmPlatform) Remove(ctx context.Context, appName string) error {
	p.locks.Lock(appName)
	defer p.locks.Unlock(appName)

	if err := p.client.ServiceRemove(ctx, appName); err != nil {
		if errdefs.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("remove service %q: %w", appName, err)
	}
	p.log.WithField("app", appName).Info("removed service")
	return nil
}
