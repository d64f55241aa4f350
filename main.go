package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bwainwright72/web-tech/internal/config"
	"github.com/bwainwright72/web-tech/internal/logging"
	"github.com/bwainwright72/web-tech/internal/mimetype"
	"github.com/bwainwright72/web-tech/internal/pathcache"
	"github.com/bwainwright72/web-tech/internal/resolver"
	"github.com/bwainwright72/web-tech/internal/server"
	"github.com/bwainwright72/web-tech/internal/server/routes"
	"github.com/bwainwright72/web-tech/internal/site"
	"github.com/bwainwright72/web-tech/internal/storage"
	"github.com/bwainwright72/web-tech/internal/transform"
	"github.com/bwainwright72/web-tech/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	configPath  string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
// 启动期任何缺口（站点根/索引文档不可访问、story 列表为空、数据库打不开）
// 都是致命错误：宁可拒绝启动，也不提供残缺站点。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	if opts.checkOnly {
		fields := logging.BaseFields("check_config", opts.configPath)
		fields["site_root"] = cfg.SiteRoot
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	if err := cfg.Preflight(); err != nil {
		fmt.Fprintf(stdErr, "站点预检失败: %v\n", err)
		return 1
	}

	// 启动顺序：配置 → 存储 → 站点文件系统 → 路径缓存 → 模板流水线 → Fiber。
	// 所有请求共享同一份路径缓存实例，保证目录列举全进程至多一次。
	store, err := storage.Open(storage.Config{
		DatabasePath: cfg.DatabasePath,
		LogLevel:     cfg.DBLogLevel,
	})
	if err != nil {
		fmt.Fprintf(stdErr, "打开数据库失败: %v\n", err)
		return 1
	}
	defer store.Close()

	fs, err := site.DirFS(cfg.SiteRoot)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化站点目录失败: %v\n", err)
		return 1
	}

	pipeline, err := buildPipeline(fs, store, cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "构建模板流水线失败: %v\n", err)
		return 1
	}

	cache := pathcache.New(fs)
	res := resolver.New(cache, mimetype.Default(), cfg.IndexDocument)
	files := server.NewFileHandler(res, fs, pipeline, logger)

	fields := logging.BaseFields("startup", opts.configPath)
	fields["site_root"] = cfg.SiteRoot
	fields["listen_port"] = cfg.ListenPort
	fields["placeholders"] = pipeline.Placeholders()
	fields["version"] = version.Full()
	logger.WithFields(fields).Info("配置加载完成")

	if err := startHTTPServer(cfg, files, store, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}
	return 0
}

// buildPipeline 注册页头/页脚片段与 story 下拉菜单。story 列表为空视为
// 没有可用的动态内容来源，返回错误让启动流程中止。
func buildPipeline(fs site.Filesystem, store storage.Store, cfg *config.Config) (*transform.Pipeline, error) {
	pipeline := transform.NewPipeline()

	ctx := context.Background()
	if err := transform.RegisterFragments(ctx, pipeline, fs, cfg.HeaderFile, cfg.FooterFile); err != nil {
		return nil, err
	}

	stories, err := store.ListStories()
	if err != nil {
		return nil, err
	}
	if err := transform.RegisterStories(pipeline, stories); err != nil {
		return nil, err
	}

	return pipeline, nil
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的配置路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("web-tech", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFlag string
		checkOnly  bool
		showVer    bool
	)

	fs.StringVar(&configFlag, "config", "", "配置文件路径（默认 ./config.toml，可被 WEB_TECH_CONFIG 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("WEB_TECH_CONFIG")
	if configFlag != "" {
		path = configFlag
	}
	if path == "" {
		path = "config.toml"
	}

	return cliOptions{
		configPath:  path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}

func startHTTPServer(cfg *config.Config, files *server.FileHandler, store storage.Store, logger *logrus.Logger) error {
	app, err := server.NewApp(server.AppOptions{
		Logger:     logger,
		ListenPort: cfg.ListenPort,
	})
	if err != nil {
		return err
	}

	routes.RegisterDataRoutes(app, store, logger)
	app.All("/*", files.Handle)

	logger.WithFields(logrus.Fields{
		"action": "listen",
		"port":   cfg.ListenPort,
	}).Info("Fiber 服务启动")

	// 开发工具只绑定回环地址，不暴露到主机之外。
	return app.Listen(fmt.Sprintf("127.0.0.1:%d", cfg.ListenPort))
}
