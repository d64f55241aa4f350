// Package pathcache maintains the verified set of site-relative paths used for
// case-sensitive request resolution. A path becomes a member only after it was
// observed, byte-for-byte, in a real directory listing of its parent; string
// manipulation alone never grants membership. The set grows monotonically for
// the lifetime of the process.
package pathcache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwainwright72/web-tech/internal/site"
)

// Cache 维护已验证路径集合。目录条目以 "/" 结尾，文件条目不以 "/" 结尾，
// 根路径 "/" 在构造时即作为成员种子写入。
type Cache struct {
	fs site.Filesystem

	mu       sync.RWMutex
	members  map[string]struct{}
	expanded map[string]struct{}

	lockMu   sync.Mutex
	dirLocks map[string]*dirLock

	listCalls int64
}

type dirLock struct {
	mu   sync.Mutex
	refs int
}

// New 构建空缓存并写入根路径种子。
func New(fs site.Filesystem) *Cache {
	return &Cache{
		fs:       fs,
		members:  map[string]struct{}{"/": {}},
		expanded: map[string]struct{}{},
		dirLocks: map[string]*dirLock{},
	}
}

// Resolve reports whether path names a real file or directory with exact case,
// lazily expanding ancestor directories on first demand. A path ending in "/"
// must denote a directory; one that does not must denote a file. Returned
// errors are filesystem failures, never simple absence.
func (c *Cache) Resolve(ctx context.Context, path string) (bool, error) {
	if path == "" || !strings.HasPrefix(path, "/") {
		return false, fmt.Errorf("path must be site-relative: %q", path)
	}

	if c.contains(path) {
		return true, nil
	}

	parent := parentDir(path)
	if parent == "" {
		// 只会发生在 path == "/"，而根路径永远是成员。
		return true, nil
	}

	ok, err := c.Resolve(ctx, parent)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := c.expand(ctx, parent); err != nil {
		return false, err
	}

	return c.contains(path), nil
}

// expand 列举 dir 的直接子项并写入缓存。借助 per-directory 锁 + 双重检查，
// 同一目录在整个进程生命周期内至多列举一次；并发的重复插入是 no-op。
func (c *Cache) expand(ctx context.Context, dir string) error {
	if c.isExpanded(dir) {
		return nil
	}

	unlock := c.lockDir(dir)
	defer unlock()

	if c.isExpanded(dir) {
		return nil
	}

	entries, err := c.fs.ListDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	c.mu.Lock()
	c.listCalls++
	for _, entry := range entries {
		child := dir + entry.Name
		if entry.IsDir {
			child += "/"
		}
		c.members[child] = struct{}{}
	}
	c.expanded[dir] = struct{}{}
	c.mu.Unlock()

	return nil
}

func (c *Cache) contains(path string) bool {
	c.mu.RLock()
	_, ok := c.members[path]
	c.mu.RUnlock()
	return ok
}

func (c *Cache) isExpanded(dir string) bool {
	c.mu.RLock()
	_, ok := c.expanded[dir]
	c.mu.RUnlock()
	return ok
}

// ListCalls 返回累计发生的目录列举次数，供测试验证惰性与幂等。
func (c *Cache) ListCalls() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listCalls
}

func (c *Cache) lockDir(dir string) func() {
	c.lockMu.Lock()
	lock := c.dirLocks[dir]
	if lock == nil {
		lock = &dirLock{}
		c.dirLocks[dir] = lock
	}
	lock.refs++
	c.lockMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		c.lockMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(c.dirLocks, dir)
		}
		c.lockMu.Unlock()
	}
}

// parentDir 返回末段之前（含最后一个 "/"）的父目录；根路径返回空串。
func parentDir(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	if trimmed == "" {
		return ""
	}
	idx := strings.LastIndex(trimmed, "/")
	return trimmed[:idx+1]
}
