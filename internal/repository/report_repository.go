package repository

import (
	"code_quest_backend/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindByID(id uint) (*model.Report, error) {
	var report model.Report
	err := r.DB.First(&report, id).Error
	return &report, err
}

func (r *ReportRepository) FindByReporter(reporterID uint) ([]model.Report, error) {
	var reports []model.Report
	err := r.DB.Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) List(status model.ReportStatus, page, pageSize int) ([]model.Report, int64, error) {
	var reports []model.Report
	var total int64

	query := r.DB.Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&reports).Error
	return reports, total, err
}

func (r *ReportRepository) Update(report *model.Report) error {
	return r.DB.Save(report).Error
}
