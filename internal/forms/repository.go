package forms

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("form submission not found")

type Repository interface {
	Create(s *FormSubmission) error
	List(filter ListFilter) ([]FormSubmission, int64, error)
	ListForExport(filter ListFilter) ([]FormSubmission, error)
	GetByID(id uint) (*FormSubmission, error)
	Update(s *FormSubmission) error
	Delete(id uint) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(s *FormSubmission) error {
	return r.db.Create(s).Error
}

func (r *gormRepository) List(filter ListFilter) ([]FormSubmission, int64, error) {
	q := r.db.Model(&FormSubmission{})

	if filter.FormType != "" {
		q = q.Where("form_type = ?", filter.FormType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var subs []FormSubmission
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListForExport returns every matching row, oldest first, without the
// pagination clamp the admin listing applies.
func (r *gormRepository) ListForExport(filter ListFilter) ([]FormSubmission, error) {
	q := r.db.Model(&FormSubmission{})

	if filter.FormType != "" {
		q = q.Where("form_type = ?", filter.FormType)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	var subs []FormSubmission
	err := q.Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (r *gormRepository) GetByID(id uint) (*FormSubmission, error) {
	var s FormSubmission
	err := r.db.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *gormRepository) Update(s *FormSubmission) error {
	return r.db.Save(s).Error
}

func (r *gormRepository) Delete(id uint) error {
	res := r.db.Delete(&FormSubmission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
