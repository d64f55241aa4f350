package config

import (
	"errors"
	"strings"
)

var supportedDBLogLevels = map[string]struct{}{
	"silent": {},
	"error":  {},
	"warn":   {},
	"info":   {},
}

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return newFieldError("ListenPort", "必须在 1-65535")
	}
	if c.SiteRoot == "" {
		return newFieldError("SiteRoot", "不能为空")
	}
	if c.IndexDocument == "" || strings.Contains(c.IndexDocument, "/") {
		return newFieldError("IndexDocument", "必须是不含 / 的文件名")
	}
	if !strings.HasPrefix(c.HeaderFile, "/") {
		return newFieldError("HeaderFile", "必须是以 / 开头的站点相对路径")
	}
	if !strings.HasPrefix(c.FooterFile, "/") {
		return newFieldError("FooterFile", "必须是以 / 开头的站点相对路径")
	}
	if c.DatabasePath == "" {
		return newFieldError("DatabasePath", "不能为空")
	}

	level := strings.ToLower(strings.TrimSpace(c.DBLogLevel))
	if level == "" {
		level = "silent"
	}
	if _, ok := supportedDBLogLevels[level]; !ok {
		return newFieldError("DBLogLevel", "仅支持 silent/error/warn/info")
	}
	c.DBLogLevel = level

	if c.LogMaxSize < 0 {
		return newFieldError("LogMaxSize", "不能为负数")
	}
	if c.LogMaxBackups < 0 {
		return newFieldError("LogMaxBackups", "不能为负数")
	}

	return nil
}
