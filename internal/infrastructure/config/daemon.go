package config

import "time"

// DaemonConfig holds daemon service configuration
type DaemonConfig struct {
	// Unix socket path for the gRPC game service
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// TickRate is the wall-clock interval between engine advances
	TickRate time.Duration `mapstructure:"tick_rate" validate:"gt=0"`

	// EventBuffer is the per-watcher notification buffer; slow watchers drop events past it
	EventBuffer int `mapstructure:"event_buffer" validate:"min=1"`

	// AutoStart starts the first round as soon as the daemon boots
	AutoStart bool `mapstructure:"auto_start"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`

	// WebSocket event feed for browser front ends
	WebSocket WebSocketConfig `mapstructure:"websocket"`
}

// WebSocketConfig holds the event feed listener configuration
type WebSocketConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path"`

	// AllowedOrigins are host patterns accepted besides same-origin requests
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
