package main

import (
	"fmt"

	"github.com/bwainwright72/web-tech/internal/version"
)

// printVersion 输出注入的版本 + 提交信息。
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}
