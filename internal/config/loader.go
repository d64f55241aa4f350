// Package config 负责读取 TOML 配置并做语义校验，所有默认值集中在此注入。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load 读取并解析 TOML 配置文件，同时注入默认值与校验逻辑。
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.toml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(cfg.SiteRoot)
	if err != nil {
		return nil, fmt.Errorf("无法解析站点根目录: %w", err)
	}
	cfg.SiteRoot = absRoot

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ListenPort", 8080)
	v.SetDefault("SiteRoot", "./site")
	v.SetDefault("IndexDocument", "index.html")
	v.SetDefault("HeaderFile", "/fragments/header.html")
	v.SetDefault("FooterFile", "/fragments/footer.html")
	v.SetDefault("DatabasePath", "./site.db")
	v.SetDefault("DBLogLevel", "silent")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
}

// Preflight 验证站点根目录与索引文档可访问。服务宁可拒绝启动，
// 也不提供一个残缺的站点。
func (c *Config) Preflight() error {
	info, err := os.Stat(c.SiteRoot)
	if err != nil {
		return fmt.Errorf("站点根目录不可访问: %w", err)
	}
	if !info.IsDir() {
		return newFieldError("SiteRoot", "不是目录")
	}

	index := filepath.Join(c.SiteRoot, c.IndexDocument)
	if _, err := os.Stat(index); err != nil {
		return fmt.Errorf("索引文档不可访问: %w", err)
	}
	return nil
}
