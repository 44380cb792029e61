package platforms

import (
	"context"
	"io"

	"github.com/dockhand/deployer/models"
)

// Platform reconciles application descriptors against a container
// orchestrator.
type Platform interface {
	// Reconcile creates the application's service or updates it in place.
	Reconcile(ctx context.Context, app models.ApplicationDescriptor) error
	// PushImage uploads the application's built image to its registry,
	// streaming push progress to sink.
	PushImage(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error
	// Remove deletes the application's service. Removing an absent service
	// is not an error.
	Remove(ctx context.Context, appName string) error
}
