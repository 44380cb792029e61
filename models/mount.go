package models

// MountType discriminates the three mount variants.
type MountType string

const (
	// MountTypeVolume mounts a named volume.
	MountTypeVolume MountType = "volume"
	// MountTypeBind mounts a host path.
	MountTypeBind MountType = "bind"
	// MountTypeFile mounts a single file whose content is written under the
	// application's files directory before the service references it.
	MountTypeFile MountType = "file"
)

// Mount declares one storage attachment. Exactly one variant's fields are
// set, selected by Type.
type Mount struct {
	Type MountType `json:"type"`

	// Name of the volume (volume mounts only).
	Name string `json:"name,omitempty"`

	// HostPath on the node (bind mounts only).
	HostPath string `json:"host_path,omitempty"`

	// Content and FilePath describe file mounts: Content is materialized
	// out of band to <filesRoot>/<app>/files/<FilePath>.
	Content  string `json:"content,omitempty"`
	FilePath string `json:"file_path,omitempty"`

	// MountPath inside the container.
	MountPath string `json:"mount_path"`
}
