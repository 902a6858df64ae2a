package news

import (
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tda-club/club-website-backend/internal/auth"
)

// Category is the closed set of article categories.
type Category string

const (
	CategoryAnnouncement Category = "announcement"
	CategoryAchievement  Category = "achievement"
	CategoryEventRecap   Category = "event_recap"
	CategoryTutorial     Category = "tutorial"
	CategoryGeneral      Category = "general"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAnnouncement, CategoryAchievement, CategoryEventRecap, CategoryTutorial, CategoryGeneral:
		return true
	}
	return false
}

// PublishStatus is the closed set of article lifecycle states.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
	StatusArchived  PublishStatus = "archived"
)

func (s PublishStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ============================
// 🔷 GORM News Article Model
type Article struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Slug    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Content string `gorm:"type:text;not null" json:"content"`
	Excerpt string `gorm:"type:text" json:"excerpt"`
	Image   string `gorm:"type:text;default:''" json:"image"`

	Category Category      `gorm:"type:varchar(30);not null;default:general" json:"category"`
	Status   PublishStatus `gorm:"type:varchar(20);not null;default:draft" json:"status"`
	Featured bool          `gorm:"not null;default:false" json:"featured"`

	Tags datatypes.JSON `json:"tags"`

	AuthorID uint       `gorm:"not null;index" json:"author_id"`
	Author   *auth.User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	PublishDate time.Time `gorm:"not null;index" json:"publishDate"`
	Views       int       `gorm:"not null;default:0" json:"views"`
	Likes       int       `gorm:"not null;default:0" json:"likes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for Article
func (Article) TableName() string {
	return "news_articles"
}

// ============================
// 🟡 Create / Update Article Request
type ArticleInput struct {
	Title       string
	Slug        string
	Content     string
	Excerpt     string
	Category    string
	Status      string
	Featured    *bool
	Tags        []string
	PublishDate string // "2006-01-02", defaults to now
	Image       string // set after upload
}

// ListFilter narrows the public article listing.
type ListFilter struct {
	Category string
	Featured bool
	Limit    int
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: lower-cased, non-alphanumerics
// collapsed to single hyphens.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
