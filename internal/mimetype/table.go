// Package mimetype 提供扩展名到 Content-Type 的静态映射表，进程启动时构建一次，
// 之后只读。表中显式标记为拒绝的扩展名与完全未知的扩展名对客户端同样不可投递，
// 但二者在 API 上保持区分：新增类型与记录一次拒绝是不同的维护动作。
package mimetype

// Result 描述一次查表的结论。
type Result int

const (
	// Supported 表示扩展名在表内且可投递。
	Supported Result = iota
	// Unsupported 表示扩展名在表内但被显式拒绝。
	Unsupported
	// Unknown 表示扩展名完全不在表内。
	Unknown
)

// XHTML is the transformable content type; only bodies resolved to it pass
// through the template pipeline.
const XHTML = "application/xhtml+xml"

// Table 是不可变的扩展名映射。键为全小写、不含点的扩展名。
type Table struct {
	types map[string]string
}

// refused 占位符标记显式拒绝的扩展名，区别于缺失键。
const refused = ""

// Default 构建内置类型表。旧式 Office 格式被显式拒绝：它们在不同平台上的
// 表现不可移植，宁可响亮失败也不带错误类型静默投递。
func Default() *Table {
	return &Table{types: map[string]string{
		"html":  XHTML,
		"xhtml": XHTML,
		"css":   "text/css",
		"js":    "text/javascript",
		"json":  "application/json",
		"txt":   "text/plain",
		"xml":   "application/xml",
		"png":   "image/png",
		"jpg":   "image/jpeg",
		"jpeg":  "image/jpeg",
		"gif":   "image/gif",
		"svg":   "image/svg+xml",
		"ico":   "image/x-icon",
		"webp":  "image/webp",
		"pdf":   "application/pdf",
		"woff":  "font/woff",
		"woff2": "font/woff2",
		"ttf":   "font/ttf",
		"mp3":   "audio/mpeg",
		"mp4":   "video/mp4",

		"doc":  refused,
		"docx": refused,
		"xls":  refused,
		"xlsx": refused,
		"ppt":  refused,
		"pptx": refused,
	}}
}

// Lookup 返回扩展名对应的 MIME 类型与判定结果。ext 需为全小写、不含点。
func (t *Table) Lookup(ext string) (string, Result) {
	mime, ok := t.types[ext]
	if !ok {
		return "", Unknown
	}
	if mime == refused {
		return "", Unsupported
	}
	return mime, Supported
}
