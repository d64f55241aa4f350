// Package site 提供站点目录的只读文件系统访问，是路径缓存与文件投递的唯一 I/O 入口。
package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirEntry 描述一次目录列举返回的单个子项：原始名称 + 是否为目录。
// Name 必须与文件系统返回的字节完全一致，路径缓存依赖它做大小写精确匹配。
type DirEntry struct {
	Name  string
	IsDir bool
}

// Filesystem is the read-only collaborator the resolution pipeline depends on.
// Implementations must not fold case or otherwise normalize the names they
// return; membership checks are byte-for-byte.
type Filesystem interface {
	// ListDir lists the direct children of a site-relative directory
	// ("/" for the root, "/About/" for a subdirectory).
	ListDir(ctx context.Context, rel string) ([]DirEntry, error)

	// ReadFile reads the whole body of a site-relative file path.
	ReadFile(ctx context.Context, rel string) ([]byte, error)
}

// ErrOutsideRoot 表示相对路径试图越出站点根目录。
var ErrOutsideRoot = errors.New("path escapes site root")

// DirFS 以 root 为根构建 Filesystem，整个进程复用一份实例。
func DirFS(root string) (Filesystem, error) {
	if root == "" {
		return nil, errors.New("site root required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve site root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat site root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site root is not a directory: %s", abs)
	}

	return &dirFS{root: abs}, nil
}

type dirFS struct {
	root string
}

func (d *dirFS) ListDir(ctx context.Context, rel string) ([]DirEntry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	full, err := d.join(rel)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, err
	}

	result := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, DirEntry{
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
		})
	}
	return result, nil
}

func (d *dirFS) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	full, err := d.join(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

// join 将站点相对路径映射为根目录下的绝对路径，并拒绝 ".." 越界。
func (d *dirFS) join(rel string) (string, error) {
	cleaned := filepath.Clean("/" + strings.TrimPrefix(rel, "/"))
	full := filepath.Join(d.root, cleaned)
	if full != d.root && !strings.HasPrefix(full, d.root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}
