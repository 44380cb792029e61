// Package build dispatches built-from-source applications to one of the
// external image build toolchains.
package build

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/dockhand/deployer/models"
)

// Strategy turns an application's source into a runnable image using one
// external toolchain.
type Strategy interface {
	// Execute runs the build, streaming toolchain output to sink.
	Execute(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error
	// Command describes the build invocation as a shell line appending to
	// logPath, for callers that display or schedule the command instead of
	// running it. Pure, no I/O.
	Command(app models.ApplicationDescriptor, logPath string) string
}

// Types lists every known build type. For must cover all of them; the
// exhaustiveness test fails when a type is added without a strategy.
var Types = []models.BuildType{
	models.BuildTypeNixpacks,
	models.BuildTypeHerokuBuildpacks,
	models.BuildTypePaketoBuildpacks,
	models.BuildTypeDockerfile,
	models.BuildTypeStatic,
}

// For selects the strategy for a build type. Unknown types, including the
// empty one carried by plain docker-image sources, build nothing.
func For(t models.BuildType) (Strategy, bool) {
	switch t {
	case models.BuildTypeNixpacks:
		return Nixpacks{}, true
	case models.BuildTypeHerokuBuildpacks:
		return Buildpacks{Builder: HerokuBuilder}, true
	case models.BuildTypePaketoBuildpacks:
		return Buildpacks{Builder: PaketoBuilder}, true
	case models.BuildTypeDockerfile:
		return Dockerfile{}, true
	case models.BuildTypeStatic:
		return Static{}, true
	default:
		return nil, false
	}
}

// Command maps a build type to its command description, mirroring For.
func Command(t models.BuildType, app models.ApplicationDescriptor, logPath string) (string, bool) {
	s, ok := For(t)
	if !ok {
		return "", false
	}
	return s.Command(app, logPath), true
}

func contextPath(app models.ApplicationDescriptor) string {
	if app.BuildPath == "" {
		return "."
	}
	return app.BuildPath
}

func run(ctx context.Context, sink io.Writer, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = sink
	cmd.Stderr = sink
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", argv[0], err)
	}
	return nil
}

func shellLine(argv []string, logPath string) string {
	return fmt.Sprintf("%s >> %s 2>&1", strings.Join(argv, " "), logPath)
}
