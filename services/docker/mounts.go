package docker

import (
	"path/filepath"

	"github.com/docker/docker/api/types/mount"

	"github.com/dockhand/deployer/models"
)

// VolumeMounts translates the named-volume mounts of the descriptor.
func VolumeMounts(app models.ApplicationDescriptor) []mount.Mount {
	var out []mount.Mount
	for _, m := range app.Mounts {
		if m.Type != models.MountTypeVolume {
			continue
		}
		out = append(out, mount.Mount{
			Type:   mount.TypeVolume,
			Source: m.Name,
			Target: m.MountPath,
		})
	}
	return out
}

// BindMounts translates the host-path mounts of the descriptor.
func BindMounts(app models.ApplicationDescriptor) []mount.Mount {
	var out []mount.Mount
	for _, m := range app.Mounts {
		if m.Type != models.MountTypeBind {
			continue
		}
		out = append(out, mount.Mount{
			Type:   mount.TypeBind,
			Source: m.HostPath,
			Target: m.MountPath,
		})
	}
	return out
}

// FileMounts translates file mounts into binds from the application's files
// directory. The content must already be materialized at
// <filesRoot>/<app>/files/<file_path> before the service references it.
func FileMounts(app models.ApplicationDescriptor, filesRoot string) []mount.Mount {
	var out []mount.Mount
	for _, m := range app.Mounts {
		if m.Type != models.MountTypeFile {
			continue
		}
		out = append(out, mount.Mount{
			Type:   mount.TypeBind,
			Source: filepath.Join(filesRoot, app.AppName, "files", m.FilePath),
			Target: m.MountPath,
		})
	}
	return out
}

// ServiceMounts merges the three variants in the fixed order volume, bind,
// file, so the resulting list is stable for diffing.
func ServiceMounts(app models.ApplicationDescriptor, filesRoot string) []mount.Mount {
	out := VolumeMounts(app)
	out = append(out, BindMounts(app)...)
	out = append(out, FileMounts(app, filesRoot)...)
	return out
}
