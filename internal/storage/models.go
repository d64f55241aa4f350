package storage

import "time"

// Category 是报表所属的分类。
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// TableName overrides the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// Report 是分类下的一条报表记录，以 JSON 返回给数据端点。
type Report struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Title      string    `gorm:"not null" json:"title"`
	Summary    string    `gorm:"type:text" json:"summary"`
	Page       string    `gorm:"not null" json:"page"`
	CreatedAt  time.Time `json:"-"`
}

// Story 是站点导航下拉菜单中的一项动态内容。
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Page      string    `gorm:"not null;unique" json:"page"`
	CreatedAt time.Time `json:"-"`
}
