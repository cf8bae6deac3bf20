package config

// Config 主配置结构
type Config struct {
	PAC     PACConfig     `yaml:"pac" json:"pac"`
	Sources SourcesConfig `yaml:"sources" json:"sources"`
	Fetch   FetchConfig   `yaml:"fetch" json:"fetch"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	System  SystemConfig  `yaml:"system" json:"system"`
}

// PACConfig controls what the generated script returns for non-direct traffic.
type PACConfig struct {
	// Proxy is the full PAC directive, e.g. "PROXY 192.168.31.94:3128".
	Proxy string `yaml:"proxy,omitempty" json:"proxy"`
}

// SourcesConfig 远程列表地址
type SourcesConfig struct {
	// DomainListURL points at a dnsmasq style list (server=/example.com/114.114.114.114).
	DomainListURL string `yaml:"domain_list_url,omitempty" json:"domain_list_url"`
	// IPListURL points at a Clash style rule list (IP-CIDR,1.2.3.0/24,no-resolve).
	IPListURL string `yaml:"ip_list_url,omitempty" json:"ip_list_url"`
}

// FetchConfig 下载配置
type FetchConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent,omitempty" json:"user_agent"`
	MaxSizeMB      int    `yaml:"max_size_mb,omitempty" json:"max_size_mb"`
	// FailOnError aborts the run when a list cannot be downloaded instead of
	// rendering a script with an empty table.
	FailOnError bool `yaml:"fail_on_error" json:"fail_on_error"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	Path string `yaml:"path,omitempty" json:"path"`
	// Verify re-reads the written file and checks the embedded tables.
	Verify bool `yaml:"verify" json:"verify"`
}

// SystemConfig 系统配置
type SystemConfig struct {
	LogLevel string `yaml:"log_level,omitempty" json:"log_level"`
}
