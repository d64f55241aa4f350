// Package resolver turns a raw request URL into a delivery decision: the exact
// site-relative file to serve plus its content type, or a terminal failure
// kind. Beyond what the path cache needs for lazy discovery it performs no I/O.
package resolver

import (
	"context"
	"strings"

	"github.com/bwainwright72/web-tech/internal/mimetype"
	"github.com/bwainwright72/web-tech/internal/pathcache"
)

// Kind 标记一次解析的终态。
type Kind int

const (
	// Deliverable 表示路径存在且类型可投递。
	Deliverable Kind = iota
	// NotFound 表示路径不存在或大小写不匹配，二者对客户端不可区分。
	NotFound
	// UnsupportedType 表示扩展名未知或被显式拒绝。
	UnsupportedType
)

// Outcome 汇总解析结果。仅当 Kind == Deliverable 时 Path/MIME 有效；
// Query 总是携带原始查询串（可为空）。
type Outcome struct {
	Kind  Kind
	Path  string
	MIME  string
	Query string
}

// Resolver 组合路径缓存与类型表，并持有索引文档名。
type Resolver struct {
	cache    *pathcache.Cache
	types    *mimetype.Table
	indexDoc string
}

// New 构建 Resolver。indexDoc 为空时使用 index.html。
func New(cache *pathcache.Cache, types *mimetype.Table, indexDoc string) *Resolver {
	if indexDoc == "" {
		indexDoc = "index.html"
	}
	return &Resolver{
		cache:    cache,
		types:    types,
		indexDoc: indexDoc,
	}
}

// Resolve 依次执行：切分查询串、目录请求补索引文档、路径缓存精确匹配、
// 类型表判定。返回的 error 只代表文件系统故障，不代表 404/415。
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (Outcome, error) {
	path, query := SplitQuery(rawURL)

	if strings.HasSuffix(path, "/") {
		path += r.indexDoc
	}

	ok, err := r.cache.Resolve(ctx, path)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{Kind: NotFound, Query: query}, nil
	}

	mime, result := r.types.Lookup(extension(path))
	if result != mimetype.Supported {
		return Outcome{Kind: UnsupportedType, Query: query}, nil
	}

	return Outcome{
		Kind:  Deliverable,
		Path:  path,
		MIME:  mime,
		Query: query,
	}, nil
}

// SplitQuery 在最后一个 "?" 处切分路径与查询串；没有 "?" 时查询串为空。
func SplitQuery(rawURL string) (string, string) {
	if idx := strings.LastIndex(rawURL, "?"); idx >= 0 {
		return rawURL[:idx], rawURL[idx+1:]
	}
	return rawURL, ""
}

// extension 取最后一个 "." 之后的小写子串；没有点则为空串。
func extension(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 || idx == len(path)-1 {
		return ""
	}
	return strings.ToLower(path[idx+1:])
}
