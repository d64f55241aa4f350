package config

// Config 是 TOML 文件映射的整体结构。站点与日志字段全部扁平放在顶层，
// 与开发工具“单文件配置”的定位一致。
type Config struct {
	ListenPort    int    `mapstructure:"ListenPort"`
	SiteRoot      string `mapstructure:"SiteRoot"`
	IndexDocument string `mapstructure:"IndexDocument"`
	HeaderFile    string `mapstructure:"HeaderFile"`
	FooterFile    string `mapstructure:"FooterFile"`
	DatabasePath  string `mapstructure:"DatabasePath"`
	DBLogLevel    string `mapstructure:"DBLogLevel"`
	LogLevel      string `mapstructure:"LogLevel"`
	LogFilePath   string `mapstructure:"LogFilePath"`
	LogMaxSize    int    `mapstructure:"LogMaxSize"`
	LogMaxBackups int    `mapstructure:"LogMaxBackups"`
	LogCompress   bool   `mapstructure:"LogCompress"`
}
