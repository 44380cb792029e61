package docker

import (
	"context"
	"fmt"
	"io"

	"github.com/docker/docker/api/types/image"

	"github.com/dockhand/deployer/models"
)

// PushImage uploads the application's built image to its registry, streaming
// push progress to sink. The caller decides whether a registry is attached;
// pushing without credentials is attempted anonymously.
func (p *SwarmPlatform) PushImage(ctx context.Context, app models.ApplicationDescriptor, sink io.Writer) error {
	img := ResolveImage(app)
	encodedAuth, err := EncodedAuth(app)
	if err != nil {
		return err
	}

	rc, err := p.client.ImagePush(ctx, img, image.PushOptions{RegistryAuth: encodedAuth})
	if err != nil {
		return fmt.Errorf("push image %q: %w", img, err)
	}
	defer rc.Close()

	if _, err := io.Copy(sink, rc); err != nil {
		return fmt.Errorf("stream push progress for %q: %w", img, err)
	}
	return nil
}
