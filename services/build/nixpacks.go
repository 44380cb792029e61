package build

import (
	"context"
	"fmt"
	"io"

	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/docker"
)

// Nixpacks builds with the nixpacks CLI, which detects the app's language
// and produces an image without a Dockerfile.
type Nixpacks struct{}

func (Nixpacks) args(app models.ApplicationDescriptor) []string {
	argv := []string{"nixpacks", "build", contextPath(app), "--name", docker.ResolveImage(app)}
	for _, e := range docker.PrepareEnv(app.Env) {
		argv = append(argv, "--env", e)
	}
	return argv
}

func (n Nixpacks) Execute(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error {
	if err := run(ctx, sink, n.args(app)); err != nil {
		return fmt.Errorf("nixpacks build: %w", err)
	}
	return nil
}

func (n Nixpacks) Command(app models.ApplicationDescriptor, logPath string) string {
	return shellLine(n.args(app), logPath)
}
