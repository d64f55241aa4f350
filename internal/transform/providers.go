package transform

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/bwainwright72/web-tech/internal/site"
	"github.com/bwainwright72/web-tech/internal/storage"
)

// 内置占位符名称。站点页面通过 {{header}} / {{footer}} / {{stories}} 引用。
const (
	PlaceholderHeader  = "header"
	PlaceholderFooter  = "footer"
	PlaceholderStories = "stories"
)

// RegisterFragments 在启动期从站点根目录读取页头/页脚片段并注册为静态占位符。
// 片段文件缺失属于致命配置错误，由调用方决定是否中止启动。
func RegisterFragments(ctx context.Context, p *Pipeline, fs site.Filesystem, headerFile, footerFile string) error {
	header, err := fs.ReadFile(ctx, headerFile)
	if err != nil {
		return fmt.Errorf("read header fragment %s: %w", headerFile, err)
	}
	if err := p.RegisterStatic(PlaceholderHeader, string(header)); err != nil {
		return err
	}

	footer, err := fs.ReadFile(ctx, footerFile)
	if err != nil {
		return fmt.Errorf("read footer fragment %s: %w", footerFile, err)
	}
	return p.RegisterStatic(PlaceholderFooter, string(footer))
}

// RegisterStories 将 story 列表渲染为 <option> 序列并注册为 {{stories}}。
// 列表在启动期加载一次；站点布局变更需要重启，与路径缓存的假设一致。
func RegisterStories(p *Pipeline, stories []storage.Story) error {
	if len(stories) == 0 {
		return fmt.Errorf("story list is empty")
	}

	var b strings.Builder
	for _, story := range stories {
		fmt.Fprintf(&b, "<option value=%q>%s</option>\n",
			story.Page, html.EscapeString(story.Title))
	}
	return p.RegisterStatic(PlaceholderStories, b.String())
}
