package config

// ApplyDefaults заполняет отсутствующие секции и нулевые значения
func (c *Config) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}

	if c.Server == nil {
		c.Server = &ConfigServer{}
	}
	s := c.Server
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	s.PortGRPC = orDefault(s.PortGRPC, 50051)
	s.PortHTTP = orDefault(s.PortHTTP, 8080)
	s.HTTPReadTimeout = orDefault(s.HTTPReadTimeout, 15)
	s.HTTPWriteTimeout = orDefault(s.HTTPWriteTimeout, 15)
	s.HTTPIdleTimeout = orDefault(s.HTTPIdleTimeout, 60)
	s.HTTPReadHeaderTimeout = orDefault(s.HTTPReadHeaderTimeout, 5)
	s.GracefulShutdownTimeout = orDefault(s.GracefulShutdownTimeout, 10)

	if c.Gateway == nil {
		c.Gateway = &ConfigGateway{}
	}
	if c.Gateway.CORSAllowedOrigins == "" {
		c.Gateway.CORSAllowedOrigins = "*"
	}
	c.Gateway.CORSMaxAge = orDefault(c.Gateway.CORSMaxAge, 300)

	if c.Database == nil {
		c.Database = &ConfigDatabase{}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/app.db"
	}

	if c.Web == nil {
		c.Web = &ConfigWeb{Enabled: true}
	}
	if c.Web.Locale == "" {
		c.Web.Locale = "id"
	}

	if c.Metrics == nil {
		c.Metrics = &ConfigMetrics{Enabled: true}
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "todo_notes"
	}

	if c.Swagger == nil {
		c.Swagger = &ConfigSwagger{Enabled: true}
	}
}

// ApplyDefaults заполняет отсутствующие значения клиентской конфигурации
func (c *ClientConfig) ApplyDefaults() {
	if c.Logger == nil {
		c.Logger = &ConfigLogger{}
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Client == nil {
		c.Client = &ConfigClient{WatchEvents: true}
	}
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = "http://localhost:8080"
	}
	if c.Client.GRPCAddr == "" {
		c.Client.GRPCAddr = "localhost:50051"
	}
	c.Client.Timeout = orDefault(c.Client.Timeout, 10)
	if c.Client.Locale == "" {
		c.Client.Locale = "id"
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
