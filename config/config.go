package config

import (
	"fmt"
	"net"
	"os"
	"strings"

	"pacgen/logger"

	"gopkg.in/yaml.v3"
)

// CreateDefaultConfig 创建默认配置文件
func CreateDefaultConfig(filePath string) error {
	return os.WriteFile(filePath, []byte(DefaultConfigContent), 0644)
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	cfg, err := parse([]byte(DefaultConfigContent))
	if err != nil {
		// DefaultConfigContent is a constant; failing to parse it is a programming error.
		panic(err)
	}
	return cfg
}

// LoadConfig 从 YAML 文件加载配置
// A missing file is created with DefaultConfigContent first.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", filePath, err)
		}
		if err := CreateDefaultConfig(filePath); err != nil {
			return nil, fmt.Errorf("create default config %s: %w", filePath, err)
		}
		logger.Infof("Created default config file: %s", filePath)
		data = []byte(DefaultConfigContent)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filePath, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	setDefaultValues(&cfg, data)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields a run cannot do without.
func (c *Config) Validate() error {
	if err := ValidateProxy(c.PAC.Proxy); err != nil {
		return err
	}
	if strings.TrimSpace(c.Sources.DomainListURL) == "" {
		return fmt.Errorf("sources.domain_list_url must not be empty")
	}
	if strings.TrimSpace(c.Sources.IPListURL) == "" {
		return fmt.Errorf("sources.ip_list_url must not be empty")
	}
	if c.Fetch.TimeoutSeconds < 0 {
		return fmt.Errorf("fetch.timeout_seconds must not be negative: %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxSizeMB < 0 {
		return fmt.Errorf("fetch.max_size_mb must not be negative: %d", c.Fetch.MaxSizeMB)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	if _, err := logger.ParseLevel(c.System.LogLevel); err != nil {
		return fmt.Errorf("system.log_level: %w", err)
	}
	return nil
}

// ValidateProxy accepts directives of the form "PROXY host:port",
// "HTTPS host:port", "SOCKS host:port" or "SOCKS5 host:port".
func ValidateProxy(directive string) error {
	fields := strings.Fields(directive)
	if len(fields) != 2 {
		return fmt.Errorf("pac.proxy must look like \"PROXY host:port\", got %q", directive)
	}
	switch fields[0] {
	case "PROXY", "HTTPS", "SOCKS", "SOCKS4", "SOCKS5":
	default:
		return fmt.Errorf("pac.proxy: unsupported directive type %q", fields[0])
	}
	host, port, err := net.SplitHostPort(fields[1])
	if err != nil {
		return fmt.Errorf("pac.proxy: %w", err)
	}
	if host == "" || port == "" {
		return fmt.Errorf("pac.proxy: host and port are required, got %q", fields[1])
	}
	if strings.ContainsAny(directive, `"\`) {
		return fmt.Errorf("pac.proxy must not contain quotes or backslashes")
	}
	return nil
}
