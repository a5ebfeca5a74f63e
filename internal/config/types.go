package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	// OutputFile - файл для логов; пусто означает stderr
	OutputFile string `mapstructure:"output_file"`
}

// ConfigServer настройки сервера
type ConfigServer struct {
	Host                    string `mapstructure:"host"`
	PortGRPC                int    `mapstructure:"port_grpc"`
	PortHTTP                int    `mapstructure:"port_http"`
	HTTPReadTimeout         int    `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int    `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int    `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int    `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int    `mapstructure:"graceful_shutdown_timeout"`
}

// ConfigGateway настройки HTTP слоя: CORS и ограничение частоты запросов
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigDatabase настройки хранилища
type ConfigDatabase struct {
	// Driver: sqlite или memory
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// ConfigWeb настройки HTML фронтенда
type ConfigWeb struct {
	Enabled bool   `mapstructure:"enabled"`
	Locale  string `mapstructure:"locale"`
}

// ConfigMetrics настройки Prometheus
type ConfigMetrics struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ConfigSwagger настройки OpenAPI документа
type ConfigSwagger struct {
	Enabled bool `mapstructure:"enabled"`
}

// Config основная структура конфигурации
type Config struct {
	Logger   *ConfigLogger   `mapstructure:"logger"`
	Server   *ConfigServer   `mapstructure:"server"`
	Gateway  *ConfigGateway  `mapstructure:"gateway"`
	Database *ConfigDatabase `mapstructure:"database"`
	Web      *ConfigWeb      `mapstructure:"web"`
	Metrics  *ConfigMetrics  `mapstructure:"metrics"`
	Swagger  *ConfigSwagger  `mapstructure:"swagger"`
}

// ClientConfig конфигурация терминального клиента
type ClientConfig struct {
	Logger *ConfigLogger `mapstructure:"logger"`
	Client *ConfigClient `mapstructure:"client"`
}

// ConfigClient адреса сервера для клиента
type ConfigClient struct {
	BaseURL     string `mapstructure:"base_url"`
	GRPCAddr    string `mapstructure:"grpc_addr"`
	Timeout     int    `mapstructure:"timeout"`
	Locale      string `mapstructure:"locale"`
	WatchEvents bool   `mapstructure:"watch_events"`
}
