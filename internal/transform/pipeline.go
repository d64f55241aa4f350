// Package transform 将模板替换建模为“命名占位符 → provider 函数”的显式分发，
// 取代原始站点的注释标记拼接。占位符写作 {{name}}；每个 name 必须在流水线
// 构造时注册，页面级数据通过按页面身份注册的 variant 注入。
package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Page 描述一次渲染的请求上下文：已解析的站点相对路径与原始查询串。
type Page struct {
	Path  string
	Query string
}

// Provider 为某个占位符产出替换文本。每次请求都会被调用，不缓存产出。
type Provider func(page Page) (string, error)

// Variant 按页面身份贡献页面局部的占位符值，是对“每页数据替换”的
// tagged-variant 重构：分发键是解析后的路径，而不是正文里的标记。
type Variant interface {
	Values(page Page) (map[string]string, error)
}

// VariantFunc adapts a function to the Variant interface.
type VariantFunc func(page Page) (map[string]string, error)

// Values makes VariantFunc satisfy Variant.
func (f VariantFunc) Values(page Page) (map[string]string, error) {
	return f(page)
}

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z][a-zA-Z0-9_-]*)\}\}`)

// Pipeline 保存全局 provider 与按页面注册的 variant。构造完成后只读，
// Apply 可被任意数量的请求并发调用。
type Pipeline struct {
	providers map[string]Provider
	variants  map[string]Variant
}

// NewPipeline 构建空流水线。
func NewPipeline() *Pipeline {
	return &Pipeline{
		providers: map[string]Provider{},
		variants:  map[string]Variant{},
	}
}

// Register 绑定一个全局占位符。重复注册是编程错误。
func (p *Pipeline) Register(name string, provider Provider) error {
	if name == "" || provider == nil {
		return fmt.Errorf("placeholder name and provider required")
	}
	if _, exists := p.providers[name]; exists {
		return fmt.Errorf("placeholder %s already registered", name)
	}
	p.providers[name] = provider
	return nil
}

// RegisterStatic 绑定一个固定文本占位符，常用于启动期加载的页面片段。
func (p *Pipeline) RegisterStatic(name, value string) error {
	return p.Register(name, func(Page) (string, error) {
		return value, nil
	})
}

// RegisterVariant 按页面路径绑定页面局部数据源。
func (p *Pipeline) RegisterVariant(path string, variant Variant) error {
	if path == "" || variant == nil {
		return fmt.Errorf("variant path and source required")
	}
	if _, exists := p.variants[path]; exists {
		return fmt.Errorf("variant for %s already registered", path)
	}
	p.variants[path] = variant
	return nil
}

// Placeholders 返回已注册的全局占位符名称，排序后输出，便于诊断。
func (p *Pipeline) Placeholders() []string {
	names := make([]string, 0, len(p.providers))
	for name := range p.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply 将 body 中的每个 {{name}} 替换为对应 provider 的产出。页面 variant
// 的值优先于全局 provider；无人认领的占位符原样保留。每次调用都重新求值，
// 对同一请求重复调用是安全的。
func (p *Pipeline) Apply(body []byte, page Page) ([]byte, error) {
	text := string(body)
	if !strings.Contains(text, "{{") {
		return body, nil
	}

	var local map[string]string
	if variant, ok := p.variants[page.Path]; ok {
		values, err := variant.Values(page)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", page.Path, err)
		}
		local = values
	}

	var applyErr error
	replaced := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		if applyErr != nil {
			return match
		}
		name := placeholderPattern.FindStringSubmatch(match)[1]

		if value, ok := local[name]; ok {
			return value
		}
		provider, ok := p.providers[name]
		if !ok {
			return match
		}
		value, err := provider(page)
		if err != nil {
			applyErr = fmt.Errorf("placeholder %s: %w", name, err)
			return match
		}
		return value
	})
	if applyErr != nil {
		return nil, applyErr
	}

	return []byte(replaced), nil
}
