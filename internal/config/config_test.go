package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "ListenPort = 9000\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.ListenPort != 9000 {
		t.Fatalf("unexpected port: %d", cfg.ListenPort)
	}
	if cfg.IndexDocument != "index.html" {
		t.Fatalf("索引文档应有默认值, got %s", cfg.IndexDocument)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("日志级别应有默认值, got %s", cfg.LogLevel)
	}
	if cfg.DBLogLevel != "silent" {
		t.Fatalf("数据库日志级别应默认 silent, got %s", cfg.DBLogLevel)
	}
	if !filepath.IsAbs(cfg.SiteRoot) {
		t.Fatalf("站点根目录应解析为绝对路径: %s", cfg.SiteRoot)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("缺失配置文件应报错")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
	}{
		{"port", "ListenPort = 99999\n", "ListenPort"},
		{"index", "IndexDocument = \"sub/index.html\"\n", "IndexDocument"},
		{"header", "HeaderFile = \"fragments/header.html\"\n", "HeaderFile"},
		{"dblog", "DBLogLevel = \"verbose\"\n", "DBLogLevel"},
		{"logsize", "LogMaxSize = -1\n", "LogMaxSize"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			var fieldErr FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fieldErr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, fieldErr.Field)
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<p/>"), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	cfg := &Config{SiteRoot: root, IndexDocument: "index.html"}
	if err := cfg.Preflight(); err != nil {
		t.Fatalf("preflight error: %v", err)
	}

	cfg.IndexDocument = "home.html"
	if err := cfg.Preflight(); err == nil {
		t.Fatalf("索引文档缺失应预检失败")
	}

	cfg = &Config{SiteRoot: filepath.Join(root, "nope"), IndexDocument: "index.html"}
	if err := cfg.Preflight(); err == nil {
		t.Fatalf("根目录缺失应预检失败")
	}
}
