package models

// SourceType says where an application's image comes from.
type SourceType string

const (
	// SourceTypeImage runs a pre-built image named by DockerImage.
	SourceTypeImage SourceType = "docker-image"
	// SourceTypeBuild builds the image from source before deploying.
	SourceTypeBuild SourceType = "built-from-source"
)

// BuildType selects the toolchain used for built-from-source applications.
type BuildType string

const (
	BuildTypeNixpacks         BuildType = "nixpacks"
	BuildTypeHerokuBuildpacks BuildType = "heroku-buildpacks"
	BuildTypePaketoBuildpacks BuildType = "paketo-buildpacks"
	BuildTypeDockerfile       BuildType = "dockerfile"
	BuildTypeStatic           BuildType = "static"
)

// ApplicationDescriptor is the declarative record for one application. It is
// owned by the caller; the deployer only reads it.
type ApplicationDescriptor struct {
	// AppName is the service name, unique within the swarm.
	AppName string `json:"app_name"`
	// ServerID selects which configured engine host runs the application.
	// Empty means the default (environment-configured) host.
	ServerID string `json:"server_id,omitempty"`

	SourceType SourceType `json:"source_type"`
	BuildType  BuildType  `json:"build_type,omitempty"`

	// DockerImage is only consulted when SourceType is docker-image.
	DockerImage string `json:"docker_image,omitempty"`

	// Build inputs for built-from-source applications.
	BuildPath        string `json:"build_path,omitempty"`
	DockerfilePath   string `json:"dockerfile_path,omitempty"`
	PublishDirectory string `json:"publish_directory,omitempty"`

	// Env is a raw blob of KEY=VALUE lines, order significant.
	Env string `json:"env,omitempty"`
	// Command overrides the image entrypoint, run through a shell.
	Command string `json:"command,omitempty"`

	// Resource values as entered by a human: CPUs as decimal core counts
	// ("0.5"), memory in go-units notation ("512M", "1g", bare bytes).
	CPULimit          string `json:"cpu_limit,omitempty"`
	CPUReservation    string `json:"cpu_reservation,omitempty"`
	MemoryLimit       string `json:"memory_limit,omitempty"`
	MemoryReservation string `json:"memory_reservation,omitempty"`

	Ports  []PortMapping `json:"ports,omitempty"`
	Mounts []Mount       `json:"mounts,omitempty"`

	// Registry holds the private registry a built image is pushed to and
	// pulled from. Username/Password cover the default public registry for
	// docker-image sources.
	Registry *Registry `json:"registry,omitempty"`
	Username string    `json:"username,omitempty"`
	Password string    `json:"password,omitempty"`

	HealthCheck *HealthCheck   `json:"health_check,omitempty"`
	Restart     *RestartPolicy `json:"restart,omitempty"`
	Update      *UpdateConfig  `json:"update,omitempty"`
	Rollback    *UpdateConfig  `json:"rollback,omitempty"`

	// Replicas is the replica count (nil means 1). Global schedules one task
	// per node instead and wins over Replicas.
	Replicas *uint64 `json:"replicas,omitempty"`
	Global   bool    `json:"global,omitempty"`

	PlacementConstraints []string `json:"placement_constraints,omitempty"`
	// PlacementSpread lists spread descriptors, e.g. "node.labels.zone".
	PlacementSpread []string `json:"placement_spread,omitempty"`

	Labels   map[string]string `json:"labels,omitempty"`
	Networks []string          `json:"networks,omitempty"`
}

// HealthCheck is passed through to the orchestrator unevaluated.
type HealthCheck struct {
	Test               []string `json:"test,omitempty"`
	IntervalSeconds    int64    `json:"interval_seconds,omitempty"`
	TimeoutSeconds     int64    `json:"timeout_seconds,omitempty"`
	StartPeriodSeconds int64    `json:"start_period_seconds,omitempty"`
	Retries            int      `json:"retries,omitempty"`
}

type RestartPolicy struct {
	// Condition is one of "none", "on-failure", "any".
	Condition     string  `json:"condition,omitempty"`
	DelaySeconds  *int64  `json:"delay_seconds,omitempty"`
	MaxAttempts   *uint64 `json:"max_attempts,omitempty"`
	WindowSeconds *int64  `json:"window_seconds,omitempty"`
}

// UpdateConfig configures rolling updates and, in its second use on the
// descriptor, rollbacks.
type UpdateConfig struct {
	Parallelism   *uint64 `json:"parallelism,omitempty"`
	DelaySeconds  int64   `json:"delay_seconds,omitempty"`
	FailureAction string  `json:"failure_action,omitempty"`
	Order         string  `json:"order,omitempty"`
}
