package models

// Configuration is the runner's input file.
type Configuration struct {
	// LogsPath is where per-deployment log files are written.
	LogsPath string `json:"logs_path,omitempty"`
	// FilesPath is the root under which file-mount contents are materialized.
	FilesPath string `json:"files_path,omitempty"`

	// Servers maps a server id to an engine endpoint. Applications pick one
	// by ServerID; an empty ServerID uses the environment-configured engine.
	Servers map[string]ServerConfig `json:"servers,omitempty"`

	Applications []ApplicationDescriptor `json:"applications"`
}

// ServerConfig describes one remote engine host.
type ServerConfig struct {
	// Host in docker client notation, e.g. "tcp://10.0.0.2:2376" or
	// "unix:///var/run/docker.sock".
	Host string `json:"host"`
}
