package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/docker"
)

// staticDockerfileName keeps the generated file clear of any Dockerfile the
// source tree already has.
const staticDockerfileName = "Dockerfile.static"

// Static packages a directory of pre-built files into an nginx image. The
// Dockerfile is generated into the build context and then built like any
// other.
type Static struct{}

func publishDirectory(app models.ApplicationDescriptor) string {
	if app.PublishDirectory == "" {
		return "."
	}
	return app.PublishDirectory
}

func (Static) dockerfile(app models.ApplicationDescriptor) string {
	return fmt.Sprintf("FROM nginx:alpine\nWORKDIR /usr/share/nginx/html/\nCOPY %s .\n", publishDirectory(app))
}

func (s Static) args(app models.ApplicationDescriptor) []string {
	return []string{
		"docker", "build",
		"-t", docker.ResolveImage(app),
		"-f", filepath.Join(contextPath(app), staticDockerfileName),
		contextPath(app),
	}
}

func (s Static) Execute(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error {
	path := filepath.Join(contextPath(app), staticDockerfileName)
	if err := os.WriteFile(path, []byte(s.dockerfile(app)), 0o644); err != nil {
		return fmt.Errorf("static build: write %q: %w", path, err)
	}
	if err := run(ctx, sink, s.args(app)); err != nil {
		return fmt.Errorf("static build: %w", err)
	}
	return nil
}

func (s Static) Command(app models.ApplicationDescriptor, logPath string) string {
	return shellLine(s.args(app), logPath)
}
