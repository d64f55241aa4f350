package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// useBufferWriters 把进程级输出重定向到内存缓冲，避免测试污染终端。
func useBufferWriters(t *testing.T) {
	t.Helper()

	prevOut, prevErr := stdOut, stdErr
	stdOut = &bytes.Buffer{}
	stdErr = &bytes.Buffer{}
	t.Cleanup(func() {
		stdOut, stdErr = prevOut, prevErr
	})
}

func configFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}
	return path
}

func TestParseCLIFlagsPriority(t *testing.T) {
	t.Setenv("WEB_TECH_CONFIG", "/tmp/env.toml")

	opts, err := parseCLIFlags([]string{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "/tmp/env.toml" {
		t.Fatalf("应优先使用环境变量，得到 %s", opts.configPath)
	}

	opts, err = parseCLIFlags([]string{"--config", "/tmp/flag.toml"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.configPath != "/tmp/flag.toml" {
		t.Fatalf("flag 应高于环境变量，得到 %s", opts.configPath)
	}
}

func TestParseCLIFlagsUnknownFlag(t *testing.T) {
	if _, err := parseCLIFlags([]string{"--bogus"}); err == nil {
		t.Fatalf("未知参数应报错")
	}
}

func TestRunCheckConfigSuccess(t *testing.T) {
	useBufferWriters(t)
	path := configFixture(t, "ListenPort = 9100\nLogLevel = \"error\"\n")
	code := run(cliOptions{configPath: path, checkOnly: true})
	if code != 0 {
		t.Fatalf("期望退出码 0，得到 %d", code)
	}
}

func TestRunCheckConfigFailure(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{configPath: filepath.Join(t.TempDir(), "missing.toml"), checkOnly: true})
	if code == 0 {
		t.Fatalf("无效配置应返回非零退出码")
	}
}

func TestRunVersionOutput(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{showVersion: true})
	if code != 0 {
		t.Fatalf("version 模式应成功退出，得到 %d", code)
	}
	if !strings.Contains(stdOut.(*bytes.Buffer).String(), "web-tech") {
		t.Fatalf("version 输出应包含 web-tech 标识")
	}
}

func TestRunFailsWhenSiteRootMissing(t *testing.T) {
	useBufferWriters(t)
	path := configFixture(t, "SiteRoot = \"/definitely/not/here\"\n")
	code := run(cliOptions{configPath: path})
	if code == 0 {
		t.Fatalf("站点根目录缺失应拒绝启动")
	}
	errOut := stdErr.(*bytes.Buffer).String()
	if !strings.Contains(errOut, "预检") {
		t.Fatalf("应输出预检失败原因: %s", errOut)
	}
}

func TestRunFailsWhenStoriesEmpty(t *testing.T) {
	useBufferWriters(t)

	root := t.TempDir()
	mustWrite := func(rel, body string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir error: %v", err)
		}
		if err := os.WriteFile(full, []byte(body), 0o644); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}
	mustWrite("index.html", "<p>home</p>")
	mustWrite("fragments/header.html", "<header/>")
	mustWrite("fragments/footer.html", "<footer/>")

	dbPath := filepath.Join(t.TempDir(), "site.db")
	content := "SiteRoot = " + quoteTOML(root) + "\nDatabasePath = " + quoteTOML(dbPath) + "\n"
	path := configFixture(t, content)

	// 空数据库没有任何 story，动态内容来源不可用，启动必须失败。
	code := run(cliOptions{configPath: path})
	if code == 0 {
		t.Fatalf("story 列表为空应拒绝启动")
	}
	errOut := stdErr.(*bytes.Buffer).String()
	if !strings.Contains(errOut, "模板流水线") {
		t.Fatalf("应输出流水线构建失败原因: %s", errOut)
	}
}

func quoteTOML(path string) string {
	return "\"" + strings.ReplaceAll(path, "\\", "\\\\") + "\""
}
