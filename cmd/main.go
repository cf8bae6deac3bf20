package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"pacgen/config"
	"pacgen/fetcher"
	"pacgen/generator"
	"pacgen/logger"
	"pacgen/router"
)

func main() {
	configPath := flag.String("c", "", "配置文件路径（留空使用内置默认值）")
	outputPath := flag.String("o", "", "输出文件路径（覆盖 output.path）")
	proxy := flag.String("proxy", "", "代理指令，例如 \"PROXY 192.168.31.94:3128\"（覆盖 pac.proxy）")
	check := flag.String("check", "", "生成后用逗号分隔的主机名测试路由结果")
	logLevel := flag.String("log-level", "", "日志级别（覆盖 system.log_level）")
	help := flag.Bool("h", false, "显示帮助信息")

	flag.Parse()

	if *help {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if *outputPath != "" {
		cfg.Output.Path = *outputPath
	}
	if *proxy != "" {
		cfg.PAC.Proxy = *proxy
	}
	if *logLevel != "" {
		cfg.System.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	logger.SetLevel(cfg.System.LogLevel)

	gen := generator.New(cfg, fetcher.New(&cfg.Fetch))
	result, err := gen.Run(context.Background())
	if err != nil {
		logger.Fatalf("Failed to generate %s: %v", cfg.Output.Path, err)
	}

	fmt.Printf("%s: %d domain suffixes, %d IP ranges, %d bytes\n",
		result.OutputPath, result.Suffixes, result.CIDRs, result.BytesWritten)
	if len(result.FailedSources) > 0 {
		fmt.Printf("WARNING: failed sources: %s\n", strings.Join(result.FailedSources, ", "))
	}

	if *check != "" {
		if err := checkHosts(result.Data.Proxy, result.Data.Suffixes, result.Data.CIDRs, *check); err != nil {
			logger.Fatalf("Check failed: %v", err)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

// checkHosts prints the routing decision for each comma separated host.
func checkHosts(proxy string, suffixes, cidrs []string, hosts string) error {
	r, err := router.New(proxy, suffixes, cidrs)
	if err != nil {
		return err
	}
	nSuffix, nCIDR := r.Len()
	logger.Debugf("Checking hosts against %d suffixes and %d CIDRs", nSuffix, nCIDR)

	for _, host := range strings.Split(hosts, ",") {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}
		d := r.Route(host)
		if d.Rule != "" {
			fmt.Printf("%-40s %-8s %s (%s)\n", host, d.Reason, d.Directive, d.Rule)
		} else {
			fmt.Printf("%-40s %-8s %s\n", host, d.Reason, d.Directive)
		}
	}
	return nil
}

func printHelp() {
	fmt.Print(`pacgen - 根据域名与 IP 列表生成 PAC 代理自动配置脚本

使用方法：
  pacgen [选项]

选项：
  -c <路径>          配置文件路径（不存在时自动创建默认配置）
  -o <路径>          输出文件路径（默认：proxy.pac）
  -proxy <指令>      代理指令（默认：PROXY 192.168.31.94:3128）
  -check <主机,...>  生成后测试主机名的路由结果
  -log-level <级别>  日志级别：debug, info, warn, error
  -h                 显示此帮助信息

示例：
  # 使用内置默认值生成 proxy.pac
  pacgen

  # 使用配置文件并指定输出路径
  pacgen -c config.yaml -o /var/www/proxy.pac

  # 生成后检查几个主机的路由
  pacgen -check www.qq.com,www.google.com,10.1.2.3,localhost
`)
}
