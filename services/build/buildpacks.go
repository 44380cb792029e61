package build

import (
	"context"
	"fmt"
	"io"

	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/docker"
)

const (
	HerokuBuilder = "heroku/builder:24"
	PaketoBuilder = "paketobuildpacks/builder-jammy-full"
)

// Buildpacks builds with the CNB `pack` CLI against a configured builder
// image. The heroku and paketo build types share this strategy and differ
// only in the builder.
type Buildpacks struct {
	Builder string
}

func (b Buildpacks) args(app models.ApplicationDescriptor) []string {
	argv := []string{
		"pack", "build", docker.ResolveImage(app),
		"--path", contextPath(app),
		"--builder", b.Builder,
	}
	for _, e := range docker.PrepareEnv(app.Env) {
		argv = append(argv, "--env", e)
	}
	return argv
}

func (b Buildpacks) Execute(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error {
	if err := run(ctx, sink, b.args(app)); err != nil {
		return fmt.Errorf("pack build with %s: %w", b.Builder, err)
	}
	return nil
}

func (b Buildpacks) Command(app models.ApplicationDescriptor, logPath string) string {
	return shellLine(b.args(app), logPath)
}
