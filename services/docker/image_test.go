package docker

import (
	"testing"

	"github.com/docker/docker/api/types/registry"
	dockerregistry "github.com/docker/docker/registry"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/dockhand/deployer/models"
)

func TestResolveImage(t *testing.T) {
	for _, tc := range []struct {
		name string
		app  models.ApplicationDescriptor
		want string
	}{
		{
			name: "docker image verbatim",
			app:  models.ApplicationDescriptor{AppName: "api", SourceType: models.SourceTypeImage, DockerImage: "nginx:1.25"},
			want: "nginx:1.25",
		},
		{
			name: "docker image missing",
			app:  models.ApplicationDescriptor{AppName: "api", SourceType: models.SourceTypeImage},
			want: "ERROR-NO-IMAGE-PROVIDED",
		},
		{
			name: "built with registry and prefix",
			app: models.ApplicationDescriptor{
				AppName:    "api",
				SourceType: models.SourceTypeBuild,
				Registry:   &models.Registry{RegistryURL: "reg.example.com", ImagePrefix: "team"},
			},
			want: "reg.example.com/team/api",
		},
		{
			name: "built with registry no prefix",
			app: models.ApplicationDescriptor{
				AppName:    "api",
				SourceType: models.SourceTypeBuild,
				Registry:   &models.Registry{RegistryURL: "reg.example.com"},
			},
			want: "reg.example.com/api",
		},
		{
			name: "built local only",
			app:  models.ApplicationDescriptor{AppName: "api", SourceType: models.SourceTypeBuild},
			want: "api:latest",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Check(t, is.Equal(ResolveImage(tc.app), tc.want))
		})
	}
}

func TestResolveAuthConfigDockerImage(t *testing.T) {
	ac := ResolveAuthConfig(models.ApplicationDescriptor{
		SourceType: models.SourceTypeImage,
		Username:   "alice",
		Password:   "secret",
	})
	assert.Assert(t, ac != nil)
	assert.Check(t, is.Equal(ac.Username, "alice"))
	assert.Check(t, is.Equal(ac.Password, "secret"))
	assert.Check(t, is.Equal(ac.ServerAddress, dockerregistry.IndexServer))
}

func TestResolveAuthConfigIncompleteCredentials(t *testing.T) {
	ac := ResolveAuthConfig(models.ApplicationDescriptor{
		SourceType: models.SourceTypeImage,
		Username:   "alice",
	})
	assert.Check(t, ac == nil)
}

func TestResolveAuthConfigBuiltWithRegistry(t *testing.T) {
	ac := ResolveAuthConfig(models.ApplicationDescriptor{
		SourceType: models.SourceTypeBuild,
		Registry: &models.Registry{
			RegistryURL: "reg.example.com",
			Username:    "robot",
			Password:    "token",
		},
	})
	assert.Assert(t, ac != nil)
	assert.Check(t, is.Equal(ac.Username, "robot"))
	assert.Check(t, is.Equal(ac.ServerAddress, "reg.example.com"))
}

func TestResolveAuthConfigBuiltWithoutRegistry(t *testing.T) {
	ac := ResolveAuthConfig(models.ApplicationDescriptor{SourceType: models.SourceTypeBuild})
	assert.Check(t, ac == nil)
}

func TestEncodedAuthRoundTrip(t *testing.T) {
	encoded, err := EncodedAuth(models.ApplicationDescriptor{
		SourceType: models.SourceTypeImage,
		Username:   "alice",
		Password:   "secret",
	})
	assert.NilError(t, err)

	decoded, err := registry.DecodeAuthConfig(encoded)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(decoded.Username, "alice"))
	assert.Check(t, is.Equal(decoded.Password, "secret"))
}

func TestEncodedAuthAnonymous(t *testing.T) {
	encoded, err := EncodedAuth(models.ApplicationDescriptor{SourceType: models.SourceTypeBuild})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(encoded, ""))
}
