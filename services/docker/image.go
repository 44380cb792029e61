package docker

import (
	"fmt"

	"github.com/docker/docker/api/types/registry"
	dockerregistry "github.com/docker/docker/registry"

	"github.com/dockhand/deployer/models"
)

// ErrorImage is deployed in place of a missing docker-image reference. The
// pull then fails inside the orchestrator, where the operator can see it,
// instead of the deploy aborting before a service exists.
const ErrorImage = "ERROR-NO-IMAGE-PROVIDED"

// ResolveImage decides which image reference the service runs.
//
// docker-image sources use DockerImage verbatim (or the error sentinel when
// unset). Built sources are tagged after the registry they were pushed to,
// or <app>:latest for local-only builds.
func ResolveImage(app models.ApplicationDescriptor) string {
	if app.SourceType == models.SourceTypeImage {
		if app.DockerImage == "" {
			return ErrorImage
		}
		return app.DockerImage
	}
	if r := app.Registry; r != nil {
		if r.ImagePrefix != "" {
			return fmt.Sprintf("%s/%s/%s", r.RegistryURL, r.ImagePrefix, app.AppName)
		}
		return fmt.Sprintf("%s/%s", r.RegistryURL, app.AppName)
	}
	return app.AppName + ":latest"
}

// ResolveAuthConfig decides the registry credentials sent with create/update
// and push. Nil means anonymous.
func ResolveAuthConfig(app models.ApplicationDescriptor) *registry.AuthConfig {
	if app.SourceType == models.SourceTypeImage {
		if app.Username == "" || app.Password == "" {
			return nil
		}
		return &registry.AuthConfig{
			Username:      app.Username,
			Password:      app.Password,
			ServerAddress: dockerregistry.IndexServer,
		}
	}
	r := app.Registry
	if r == nil {
		return nil
	}
	return &registry.AuthConfig{
		Username:      r.Username,
		Password:      r.Password,
		ServerAddress: r.RegistryURL,
	}
}

// EncodedAuth renders the resolved credentials as an X-Registry-Auth header
// value, or "" for anonymous access.
func EncodedAuth(app models.ApplicationDescriptor) (string, error) {
	ac := ResolveAuthConfig(app)
	if ac == nil {
		return "", nil
	}
	encoded, err := registry.EncodeAuthConfig(*ac)
	if err != nil {
		return "", fmt.Errorf("encode registry auth for %q: %w", app.AppName, err)
	}
	return encoded, nil
}
