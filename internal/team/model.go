package team

import (
	"time"

	"gorm.io/datatypes"
)

// SocialMedia is the fixed set of profile links shown on member cards.
type SocialMedia struct {
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

// ============================
// 🔷 GORM Team Member Model
type Member struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Role  string `gorm:"type:varchar(255);not null" json:"role"`
	Image string `gorm:"type:text;not null" json:"image"`
	Quote string `gorm:"type:text;not null" json:"quote"`

	SocialMedia datatypes.JSON `json:"socialMedia"`
	Skills      datatypes.JSON `json:"skills"`

	Email string `gorm:"type:varchar(255)" json:"email"`
	Phone string `gorm:"type:varchar(50)" json:"phone"`
	Bio   string `gorm:"type:text" json:"bio"`

	JoinDate  time.Time `gorm:"not null" json:"joinDate"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	Order     int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for Member
func (Member) TableName() string {
	return "team_members"
}

// ============================
// 🟡 Create / Update Member Request (multipart form fields)
type MemberInput struct {
	Name        string
	Role        string
	Quote       string
	Email       string
	Phone       string
	Bio         string
	SocialMedia *SocialMedia
	Skills      []string
	Order       *int
	IsActive    *bool
	Image       string // set after upload
}
