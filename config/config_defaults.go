package config

import (
	"gopkg.in/yaml.v3"
)

const (
	DefaultProxy         = "PROXY 192.168.31.94:3128"
	DefaultDomainListURL = "https://raw.githubusercontent.com/felixonmars/dnsmasq-china-list/master/accelerated-domains.china.conf"
	DefaultIPListURL     = "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/ChinaCompanyIp.list"
	DefaultOutputPath    = "proxy.pac"
)

// setDefaultValues 设置配置文件中缺失字段的默认值
func setDefaultValues(cfg *Config, rawData []byte) {
	if cfg.PAC.Proxy == "" {
		cfg.PAC.Proxy = DefaultProxy
	}

	if cfg.Sources.DomainListURL == "" {
		cfg.Sources.DomainListURL = DefaultDomainListURL
	}
	if cfg.Sources.IPListURL == "" {
		cfg.Sources.IPListURL = DefaultIPListURL
	}

	setFetchDefaults(&cfg.Fetch)
	setOutputDefaults(cfg, rawData)

	if cfg.System.LogLevel == "" {
		cfg.System.LogLevel = "info"
	}
}

// setFetchDefaults 设置下载配置的默认值
func setFetchDefaults(fc *FetchConfig) {
	if fc.TimeoutSeconds == 0 {
		fc.TimeoutSeconds = 30
	}
	if fc.UserAgent == "" {
		fc.UserAgent = "pacgen/1.0"
	}
	if fc.MaxSizeMB == 0 {
		fc.MaxSizeMB = 50
	}
}

// setOutputDefaults 设置输出配置的默认值
func setOutputDefaults(cfg *Config, rawData []byte) {
	if cfg.Output.Path == "" {
		cfg.Output.Path = DefaultOutputPath
	}
	// verify defaults to true; only an explicit "verify: false" turns it off.
	if !cfg.Output.Verify && !hasKey(rawData, "output", "verify") {
		cfg.Output.Verify = true
	}
}

// hasKey reports whether the raw YAML document sets section.key.
func hasKey(rawData []byte, section, key string) bool {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(rawData, &doc); err != nil {
		return false
	}
	// other top-level keys may hold scalars or lists; only the section itself must be a mapping.
	sec, ok := doc[section].(map[string]interface{})
	if !ok {
		return false
	}
	_, ok = sec[key]
	return ok
}
