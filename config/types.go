package config

// ServerConfig contains status server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// FeedConfig describes where and how the schedule feed is fetched
type FeedConfig struct {
	URL       string `yaml:"url" validate:"required,url"`
	Format    string `yaml:"format" validate:"omitempty,oneof=jsonapi gtfsrt"`
	StopID    string `yaml:"stopID" validate:"required_if=Format gtfsrt"`
	APIKey    string `yaml:"apiKey"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// NamedFeed is an alternative feed selectable by name
type NamedFeed struct {
	Name string     `yaml:"name" validate:"required"`
	Feed FeedConfig `yaml:"feed"`
}

// DirectionConfig holds the measured waypoint offset for one direction
type DirectionConfig struct {
	OffsetSeconds *float64 `yaml:"offsetSeconds"`
	StdDevSeconds *float64 `yaml:"stdDevSeconds" validate:"omitempty,gte=0"`
}

// PredictorConfig tunes arrival estimation
type PredictorConfig struct {
	Inbound            DirectionConfig `yaml:"inbound"`
	Outbound           DirectionConfig `yaml:"outbound"`
	WarningLeadSeconds *float64        `yaml:"warningLeadSeconds" validate:"omitempty,gte=0"`
	StalenessSeconds   *float64        `yaml:"stalenessSeconds" validate:"omitempty,gte=0"`

	// Capacities of 0 keep the defaults; a cache cannot hold zero trips.
	ContinuityCapacity int `yaml:"continuityCapacity" validate:"gte=0"`
	ArrivedCapacity    int `yaml:"arrivedCapacity" validate:"gte=0"`
}

// BoardConfig controls the refresh loop
type BoardConfig struct {
	Count          int  `yaml:"count" validate:"gte=0,lte=20"`
	RefreshSeconds int  `yaml:"refreshSeconds" validate:"gte=0"`
	MaxRetries     *int `yaml:"maxRetries" validate:"omitempty,gte=0"` // 0 disables retries
}

// LogConfig selects log level and output format
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Feed      FeedConfig      `yaml:"feed"`
	Feeds     []NamedFeed     `yaml:"feeds"`
	Predictor PredictorConfig `yaml:"predictor"`
	Board     BoardConfig     `yaml:"board"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}
