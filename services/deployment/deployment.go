// Package deployment runs the full deployment sequence for one application:
// build, optional registry upload, then service reconciliation.
package deployment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	platforms "github.com/dockhand/deployer/interfaces"
	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/build"
	"github.com/dockhand/deployer/services/docker"
	"github.com/dockhand/deployer/services/notify"
)

// Deployer orchestrates deployments on a platform. Builds are resolved
// through an injectable lookup so tests can substitute a fake strategy.
type Deployer struct {
	platform platforms.Platform
	builds   func(models.BuildType) (build.Strategy, bool)
	logsRoot string
	notifier *notify.Notifier
	log      *logrus.Entry
}

// NewDeployer wires a deployer. notifier may be nil.
func NewDeployer(platform platforms.Platform, logsRoot string, notifier *notify.Notifier) *Deployer {
	return &Deployer{
		platform: platform,
		builds:   build.For,
		logsRoot: logsRoot,
		notifier: notifier,
		log:      logrus.WithField("module", "deployment"),
	}
}

// Deploy runs validate -> build -> upload -> reconcile in that order,
// stopping at the first failure. The log sink always ends with a terminal
// success or failure marker, and the returned error is the caller's single
// signal that the deployment failed.
func (d *Deployer) Deploy(ctx context.Context, app models.ApplicationDescriptor) (err error) {
	sink, err := OpenLogSink(d.logsRoot, app.AppName)
	if err != nil {
		return err
	}
	defer sink.Close()

	log := d.log.WithField("app", app.AppName)
	prefix := fmt.Sprintf("[%s/%s]", app.BuildType, app.SourceType)

	defer func() {
		if err != nil {
			sink.WriteLine("Error ❌ %s", err)
			log.WithError(err).Error("deployment failed")
			d.publish(ctx, app, notify.StatusFailed, err)
			return
		}
		sink.WriteLine("Docker Deployed: ✅")
		log.Info("deployment finished")
		d.publish(ctx, app, notify.StatusSucceeded, nil)
	}()

	d.publish(ctx, app, notify.StatusStarted, nil)
	sink.WriteLine("%s deploying %s", prefix, app.AppName)

	if err = docker.ValidateDescriptor(app); err != nil {
		return fmt.Errorf("validate %q: %w", app.AppName, err)
	}

	if app.SourceType == models.SourceTypeBuild {
		if strategy, ok := d.builds(app.BuildType); ok {
			sink.WriteLine("%s building image %s", prefix, docker.ResolveImage(app))
			log.WithField("build_type", app.BuildType).Info("building image")
			if err = strategy.Execute(ctx, app, sink); err != nil {
				return fmt.Errorf("build %q: %w", app.AppName, err)
			}

			if app.Registry != nil {
				sink.WriteLine("%s pushing image to %s", prefix, app.Registry.RegistryURL)
				log.Info("pushing image")
				if err = d.platform.PushImage(ctx, app, sink); err != nil {
					return fmt.Errorf("upload %q: %w", app.AppName, err)
				}
			}
		}
	}

	sink.WriteLine("%s reconciling service", prefix)
	if err = d.platform.Reconcile(ctx, app); err != nil {
		return err
	}
	return nil
}

// Remove tears the application's service down.
func (d *Deployer) Remove(ctx context.Context, appName string) error {
	return d.platform.Remove(ctx, appName)
}

// publish reports a status transition to the webhook, if one is configured.
// Delivery failures are logged and otherwise ignored.
func (d *Deployer) publish(ctx context.Context, app models.ApplicationDescriptor, status notify.Status, cause error) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Publish(ctx, notify.NewEvent(app.AppName, status, cause)); err != nil {
		d.log.WithField("app", app.AppName).WithError(err).Warn("status webhook delivery failed")
	}
}
