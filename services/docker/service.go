package docker

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/distribution/reference"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/swarm"

	"github.com/dockhand/deployer/models"
)

// ServiceSpec composes the full swarm service specification from the
// descriptor. It is derived fresh on every reconciliation and never cached.
func (p *SwarmPlatform) ServiceSpec(app models.ApplicationDescriptor) (swarm.ServiceSpec, error) {
	resources, err := ServiceResources(app)
	if err != nil {
		return swarm.ServiceSpec{}, fmt.Errorf("resources for %q: %w", app.AppName, err)
	}

	img := ResolveImage(app)
	if _, err := reference.ParseNormalizedNamed(img); err != nil {
		p.log.WithField("image", img).Warnf("image reference does not parse, the deployment will fail downstream: %v", err)
	}

	containerSpec := &swarm.ContainerSpec{
		Image:       img,
		Env:         PrepareEnv(app.Env),
		Mounts:      ServiceMounts(app, p.filesRoot),
		Healthcheck: ServiceHealthCheck(app),
	}
	if app.Command != "" {
		containerSpec.Command = []string{"/bin/sh", "-c", app.Command}
	}

	return swarm.ServiceSpec{
		Annotations: swarm.Annotations{
			Name:   app.AppName,
			Labels: ServiceLabels(app),
		},
		TaskTemplate: swarm.TaskSpec{
			ContainerSpec: containerSpec,
			Resources:     resources,
			RestartPolicy: ServiceRestartPolicy(app),
			Placement:     ServicePlacement(app),
			Networks:      ServiceNetworks(app),
		},
		Mode:           ServiceMode(app),
		UpdateConfig:   ServiceUpdateConfig(app),
		RollbackConfig: ServiceRollbackConfig(app),
		EndpointSpec:   ServiceEndpoint(app),
	}, nil
}

// Reconcile creates the application's service or updates the existing one.
//
// The update always submits the version index observed by the inspect that
// immediately precedes it, and bumps ForceUpdate by one so the control plane
// re-applies even a byte-identical spec. Only a typed not-found routes to
// create; any other inspect failure aborts, since treating a transient fault
// as absence would race a duplicate create against the real service.
func (p *SwarmPlatform) Reconcile(ctx context.Context, app models.ApplicationDescriptor) error {
	p.locks.Lock(app.AppName)
	defer p.locks.Unlock(app.AppName)

	spec, err := p.ServiceSpec(app)
	if err != nil {
		return err
	}
	encodedAuth, err := EncodedAuth(app)
	if err != nil {
		return err
	}

	log := p.log.WithField("app", app.AppName)

	current, _, err := p.client.ServiceInspectWithRaw(ctx, app.AppName, types.ServiceInspectOptions{})
	if err != nil {
		if !errdefs.IsNotFound(err) {
			return fmt.Errorf("inspect service %q: %w", app.AppName, err)
		}

		log.Info("creating service")
		resp, err := p.client.ServiceCreate(ctx, spec, types.ServiceCreateOptions{
			EncodedRegistryAuth: encodedAuth,
		})
		if err != nil {
			return fmt.Errorf("create service %q: %w", app.AppName, err)
		}
		for _, w := range resp.Warnings {
			log.Warn(w)
		}
		return nil
	}

	spec.TaskTemplate.ForceUpdate = current.Spec.TaskTemplate.ForceUpdate + 1

	log.WithField("version", current.Version.Index).Info("updating service")
	resp, err := p.client.ServiceUpdate(ctx, current.ID, current.Version, spec, types.ServiceUpdateOptions{
		EncodedRegistryAuth: encodedAuth,
	})
	if err != nil {
		return fmt.Errorf("update service %q: %w", app.AppName, err)
	}
	for _, w := range resp.Warnings {
		log.Warn(w)
	}
	return nil
}
