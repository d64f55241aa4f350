// Package storage 基于 GORM + SQLite 持久化站点的动态数据：联系表单、
// 分类与报表查询、以及驱动下拉菜单的 story 列表。
package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 错误即值：调用方通过 errors.Is 区分“查无此行”与后端故障。
var (
	ErrNotFound   = errors.New("record not found")
	ErrNilContact = errors.New("contact cannot be nil")
)

// Contact 是一条联系表单提交记录。
type Contact struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"not null" json:"email"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	CreatedAt   time.Time `json:"-"`
}

// Store 定义请求处理层依赖的全部持久化操作，便于在测试中替换。
type Store interface {
	Close() error
	SaveContact(contact *Contact) error
	GetCategory(id uint) (*Category, error)
	ListReports(categoryID uint) ([]Report, error)
	ListStories() ([]Story, error)
}

// DB 包装 gorm.DB 并实现 Store。
type DB struct {
	db *gorm.DB
}

// Config 控制数据库位置与 GORM 日志级别（silent/error/warn/info）。
type Config struct {
	DatabasePath string
	LogLevel     string
}

// Open 建立连接并自动迁移模式。
func Open(cfg Config) (*DB, error) {
	logLevel := logger.Silent
	switch cfg.LogLevel {
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	case "info":
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&Contact{}, &Category{}, &Report{}, &Story{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close 释放底层连接。
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveContact 插入一条表单提交，提交时间缺省为当前时刻。
func (d *DB) SaveContact(contact *Contact) error {
	if contact == nil {
		return ErrNilContact
	}
	if contact.SubmittedAt.IsZero() {
		contact.SubmittedAt = time.Now().UTC()
	}
	if err := d.db.Create(contact).Error; err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}

// GetCategory 按主键查询分类；不存在时返回 ErrNotFound。
func (d *DB) GetCategory(id uint) (*Category, error) {
	var category Category
	err := d.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &category, nil
}

// ListReports 返回某分类下的全部报表行，按标题排序。
func (d *DB) ListReports(categoryID uint) ([]Report, error) {
	var reports []Report
	err := d.db.Where("category_id = ?", categoryID).Order("title").Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list reports for category %d: %w", categoryID, err)
	}
	return reports, nil
}

// ListStories 返回全部 story，按标题排序，供下拉菜单渲染。
func (d *DB) ListStories() ([]Story, error) {
	var stories []Story
	if err := d.db.Order("title").Find(&stories).Error; err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return stories, nil
}
