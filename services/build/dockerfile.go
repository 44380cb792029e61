package build

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/docker"
)

// Dockerfile builds with plain `docker build` against the descriptor's
// Dockerfile (default: Dockerfile at the context root).
type Dockerfile struct{}

func (Dockerfile) args(app models.ApplicationDescriptor) []string {
	dockerfile := app.DockerfilePath
	if dockerfile == "" {
		dockerfile = filepath.Join(contextPath(app), "Dockerfile")
	}
	return []string{
		"docker", "build",
		"-t", docker.ResolveImage(app),
		"-f", dockerfile,
		contextPath(app),
	}
}

func (d Dockerfile) Execute(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error {
	if err := run(ctx, sink, d.args(app)); err != nil {
		return fmt.Errorf("dockerfile build: %w", err)
	}
	return nil
}

func (d Dockerfile) Command(app models.ApplicationDescriptor, logPath string) string {
	return shellLine(d.args(app), logPath)
}
