package domain

import "time"

// NewsItem is a piece of rotating display content imported from the news feed.
// JSON keys follow the contract of the display screens.
type NewsItem struct {
	ID          int64      `gorm:"primaryKey;column:id" json:"id"`
	Title       string     `gorm:"column:title;not null" json:"titulo"`
	Content     string     `gorm:"column:content;type:text" json:"conteudo"`
	URL         string     `gorm:"column:url;uniqueIndex;not null" json:"url"`
	ImageURL    *string    `gorm:"column:image_url" json:"imagem_url"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"data_publicacao"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"data_criacao"`
	Active      bool       `gorm:"column:active;not null" json:"ativa"`
	Order       int        `gorm:"column:display_order;not null;default:0" json:"ordem"`
}

// TableName возвращает название таблицы для GORM
func (NewsItem) TableName() string {
	return "news_items"
}

// NewsUpdate is a partial update of a NewsItem. Only these fields may change;
// nil means "leave as is".
type NewsUpdate struct {
	Title    *string `json:"titulo,omitempty" validate:"omitempty,min=1,max=500"`
	Content  *string `json:"conteudo,omitempty"`
	ImageURL *string `json:"imagem_url,omitempty" validate:"omitempty,url"`
	Active   *bool   `json:"ativa,omitempty"`
	Order    *int    `json:"ordem,omitempty" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the update changes nothing.
func (u NewsUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.ImageURL == nil && u.Active == nil && u.Order == nil
}

// Columns returns the column/value pairs to persist.
func (u NewsUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	if u.ImageURL != nil {
		cols["image_url"] = *u.ImageURL
	}
	if u.Active != nil {
		cols["active"] = *u.Active
	}
	if u.Order != nil {
		cols["display_order"] = *u.Order
	}
	return cols
}

// Apply copies the set fields onto item.
func (u NewsUpdate) Apply(item *NewsItem) {
	if u.Title != nil {
		item.Title = *u.Title
	}
	if u.Content != nil {
		item.Content = *u.Content
	}
	if u.ImageURL != nil {
		item.ImageURL = u.ImageURL
	}
	if u.Active != nil {
		item.Active = *u.Active
	}
	if u.Order != nil {
		item.Order = *u.Order
	}
}
