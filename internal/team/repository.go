package team

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested team member does not exist.
var ErrNotFound = errors.New("team member not found")

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Member
func (r *Repository) Create(m *Member) error {
	return r.DB.Create(m).Error
}

// ===========================
// 📄 Active members, ordered for the public page
func (r *Repository) ListActive() ([]Member, error) {
	var members []Member
	err := r.DB.
		Where("is_active = TRUE").
		Order("display_order ASC, created_at DESC").
		Find(&members).Error
	return members, err
}

// ===========================
// 📄 All members (admin)
func (r *Repository) ListAll() ([]Member, error) {
	var members []Member
	err := r.DB.
		Order("display_order ASC, created_at DESC").
		Find(&members).Error
	return members, err
}

// ===========================
// 🔍 Get Member By ID
func (r *Repository) GetByID(id uint) (*Member, error) {
	var m Member
	err := r.DB.First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ===========================
// 🛠 Update Member
func (r *Repository) Update(m *Member) error {
	return r.DB.Save(m).Error
}

// ===========================
// ❌ Delete Member
func (r *Repository) Delete(id uint) error {
	res := r.DB.Delete(&Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
