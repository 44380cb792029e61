package models

// Registry names the image registry a built application is pushed to. The
// image reference becomes <registry_url>/[<image_prefix>/]<app_name>.
type Registry struct {
	RegistryURL string `json:"registry_url"`
	ImagePrefix string `json:"image_prefix,omitempty"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
}
