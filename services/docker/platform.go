package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
	"github.com/moby/locker"
	"github.com/sirupsen/logrus"
)

// DefaultFilesRoot is where file-mount contents are materialized when no
// explicit root is configured: <root>/<app>/files/<file_path>.
const DefaultFilesRoot = "/etc/dockhand"

// ServiceAPI is the slice of the Engine API the platform uses. *client.Client
// satisfies it; tests substitute a fake.
type ServiceAPI interface {
	ServiceInspectWithRaw(ctx context.Context, serviceID string, options types.ServiceInspectOptions) (swarm.Service, []byte, error)
	ServiceCreate(ctx context.Context, service swarm.ServiceSpec, options types.ServiceCreateOptions) (swarm.ServiceCreateResponse, error)
	ServiceUpdate(ctx context.Context, serviceID string, version swarm.Version, service swarm.ServiceSpec, options types.ServiceUpdateOptions) (swarm.ServiceUpdateResponse, error)
	ServiceRemove(ctx context.Context, serviceID string) error
	ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)
}

var _ ServiceAPI = (*client.Client)(nil)

// SwarmPlatform implements platforms.Platform against a swarm manager.
//
// Reconciliations for the same app must not interleave: the inspect-then-act
// sequence is not atomic on the control plane. The keyed lock serializes them
// per app name within this process.
type SwarmPlatform struct {
	client    ServiceAPI
	locks     *locker.Locker
	filesRoot string
	log       *logrus.Entry
}

// NewSwarmPlatform wraps an existing engine client. An empty filesRoot falls
// back to DefaultFilesRoot.
func NewSwarmPlatform(api ServiceAPI, filesRoot string) *SwarmPlatform {
	if filesRoot == "" {
		filesRoot = DefaultFilesRoot
	}
	return &SwarmPlatform{
		client:    api,
		locks:     locker.New(),
		filesRoot: filesRoot,
		log:       logrus.WithField("module", "swarm"),
	}
}

// NewSwarmPlatformForHost builds the engine client for one configured host
// with API version negotiation. An empty host uses the environment
// (DOCKER_HOST and friends).
func NewSwarmPlatformForHost(host, filesRoot string) (*SwarmPlatform, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	c, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("engine client for host %q: %w", host, err)
	}
	return NewSwarmPlatform(c, filesRoot), nil
}
