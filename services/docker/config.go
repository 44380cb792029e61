package docker

import (
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/swarm"

	"github.com/dockhand/deployer/models"
)

const (
	// AppLabel carries the application identity on every service.
	AppLabel = "dockhand.app"
	// DefaultNetwork is attached when the descriptor names no networks.
	DefaultNetwork = "dockhand-network"
)

// ServiceLabels returns the service labels: the identity label plus any
// user-declared ones. User labels cannot shadow the identity label.
func ServiceLabels(app models.ApplicationDescriptor) map[string]string {
	labels := make(map[string]string, len(app.Labels)+1)
	for k, v := range app.Labels {
		labels[k] = v
	}
	labels[AppLabel] = app.AppName
	return labels
}

// ServiceHealthCheck passes the declared probe through to the engine. No
// probe means nil, inheriting the image's HEALTHCHECK.
func ServiceHealthCheck(app models.ApplicationDescriptor) *container.HealthConfig {
	hc := app.HealthCheck
	if hc == nil {
		return nil
	}
	return &container.HealthConfig{
		Test:        hc.Test,
		Interval:    time.Duration(hc.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(hc.TimeoutSeconds) * time.Second,
		StartPeriod: time.Duration(hc.StartPeriodSeconds) * time.Second,
		Retries:     hc.Retries,
	}
}

// ServiceRestartPolicy defaults to on-failure, the engine's safe default for
// long-running services.
func ServiceRestartPolicy(app models.ApplicationDescriptor) *swarm.RestartPolicy {
	rp := &swarm.RestartPolicy{Condition: swarm.RestartPolicyConditionOnFailure}
	r := app.Restart
	if r == nil {
		return rp
	}
	if r.Condition != "" {
		rp.Condition = swarm.RestartPolicyCondition(r.Condition)
	}
	if r.DelaySeconds != nil {
		d := time.Duration(*r.DelaySeconds) * time.Second
		rp.Delay = &d
	}
	if r.MaxAttempts != nil {
		rp.MaxAttempts = r.MaxAttempts
	}
	if r.WindowSeconds != nil {
		w := time.Duration(*r.WindowSeconds) * time.Second
		rp.Window = &w
	}
	return rp
}

// ServicePlacement maps constraints and spread descriptors; nil when the
// descriptor declares neither.
func ServicePlacement(app models.ApplicationDescriptor) *swarm.Placement {
	if len(app.PlacementConstraints) == 0 && len(app.PlacementSpread) == 0 {
		return nil
	}
	p := &swarm.Placement{Constraints: app.PlacementConstraints}
	for _, s := range app.PlacementSpread {
		p.Preferences = append(p.Preferences, swarm.PlacementPreference{
			Spread: &swarm.SpreadOver{SpreadDescriptor: s},
		})
	}
	return p
}

// ServiceMode is global when requested, otherwise replicated with the
// declared count (default 1).
func ServiceMode(app models.ApplicationDescriptor) swarm.ServiceMode {
	if app.Global {
		return swarm.ServiceMode{Global: &swarm.GlobalService{}}
	}
	replicas := uint64(1)
	if app.Replicas != nil {
		replicas = *app.Replicas
	}
	return swarm.ServiceMode{Replicated: &swarm.ReplicatedService{Replicas: &replicas}}
}

// ServiceUpdateConfig defaults to one task at a time, start-first, pausing on
// failure.
func ServiceUpdateConfig(app models.ApplicationDescriptor) *swarm.UpdateConfig {
	cfg := &swarm.UpdateConfig{
		Parallelism:   1,
		FailureAction: swarm.UpdateFailureActionPause,
		Order:         swarm.UpdateOrderStartFirst,
	}
	applyUpdateOverrides(cfg, app.Update)
	return cfg
}

// ServiceRollbackConfig defaults like updates but stop-first: during a
// rollback the new task set is the problem, so it goes away first.
func ServiceRollbackConfig(app models.ApplicationDescriptor) *swarm.UpdateConfig {
	cfg := &swarm.UpdateConfig{
		Parallelism:   1,
		FailureAction: swarm.UpdateFailureActionPause,
		Order:         swarm.UpdateOrderStopFirst,
	}
	applyUpdateOverrides(cfg, app.Rollback)
	return cfg
}

func applyUpdateOverrides(cfg *swarm.UpdateConfig, u *models.UpdateConfig) {
	if u == nil {
		return
	}
	if u.Parallelism != nil {
		cfg.Parallelism = *u.Parallelism
	}
	if u.DelaySeconds > 0 {
		cfg.Delay = time.Duration(u.DelaySeconds) * time.Second
	}
	if u.FailureAction != "" {
		cfg.FailureAction = u.FailureAction
	}
	if u.Order != "" {
		cfg.Order = u.Order
	}
}

// ServiceNetworks attaches the declared networks, or the default network when
// none are declared.
func ServiceNetworks(app models.ApplicationDescriptor) []swarm.NetworkAttachmentConfig {
	networks := app.Networks
	if len(networks) == 0 {
		networks = []string{DefaultNetwork}
	}
	out := make([]swarm.NetworkAttachmentConfig, 0, len(networks))
	for _, n := range networks {
		out = append(out, swarm.NetworkAttachmentConfig{Target: n})
	}
	return out
}

// ServiceEndpoint maps published ports; nil when nothing is published.
func ServiceEndpoint(app models.ApplicationDescriptor) *swarm.EndpointSpec {
	if len(app.Ports) == 0 {
		return nil
	}
	spec := &swarm.EndpointSpec{}
	for _, p := range app.Ports {
		proto := swarm.PortConfigProtocolTCP
		if p.Protocol != "" {
			proto = swarm.PortConfigProtocol(p.Protocol)
		}
		mode := swarm.PortConfigPublishModeIngress
		if p.PublishMode != "" {
			mode = swarm.PortConfigPublishMode(p.PublishMode)
		}
		spec.Ports = append(spec.Ports, swarm.PortConfig{
			Protocol:      proto,
			TargetPort:    p.TargetPort,
			PublishedPort: p.PublishedPort,
			PublishMode:   mode,
		})
	}
	return spec
}
