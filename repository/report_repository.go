package repository

import (
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *entity.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindOpen() ([]entity.Report, error) {
	var reports []entity.Report
	err := r.DB.Preload("IssueType").Preload("Business").Preload("User").
		Where("resolved_at IS NULL").
		Order("id ASC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Resolve(id uint, adminID uint, now time.Time) (int64, error) {
	res := r.DB.Model(&entity.Report{}).
		Where("id = ? AND resolved_at IS NULL", id).
		Updates(map[string]any{"resolved_at": now, "admin_id": adminID})
	return res.RowsAffected, res.Error
}
