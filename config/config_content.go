package config

// DefaultConfigContent 默认配置文件内容，包含详细说明
const DefaultConfigContent = `# pacgen 配置文件

# PAC 脚本配置
pac:
  # 不走直连的流量使用的代理指令
  proxy: "PROXY 192.168.31.94:3128"

# 远程列表
sources:
  # dnsmasq 格式域名列表 (server=/example.com/114.114.114.114)
  domain_list_url: "https://raw.githubusercontent.com/felixonmars/dnsmasq-china-list/master/accelerated-domains.china.conf"
  # Clash 格式 IP 列表 (IP-CIDR,1.2.3.0/24)
  ip_list_url: "https://raw.githubusercontent.com/ACL4SSR/ACL4SSR/master/Clash/ChinaCompanyIp.list"

# 下载配置
fetch:
  # 单个列表下载超时（秒）
  timeout_seconds: 30
  user_agent: "pacgen/1.0"
  # 单个列表最大体积（MB）
  max_size_mb: 50
  # 下载失败时是否中止（默认 false：以空列表继续生成）
  fail_on_error: false

# 输出配置
output:
  path: "proxy.pac"
  # 写入后回读并校验内嵌的域名与 CIDR 表
  verify: true

# 系统配置
system:
  # 日志级别：debug, info, warn, error
  log_level: "info"
`
