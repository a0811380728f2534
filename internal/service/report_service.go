package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"

	"gorm.io/gorm"
)

// ReportService 举报工单：用户创建，管理员关单
type ReportService struct {
	ReportRepo *repository.ReportRepository
}

func NewReportService(reportRepo *repository.ReportRepository) *ReportService {
	return &ReportService{ReportRepo: reportRepo}
}

type ReportRequest struct {
	Subject     string `json:"subject" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

func (s *ReportService) CreateReport(reporterID uint, req *ReportRequest) (*model.Report, error) {
	report := &model.Report{
		ReporterID:  reporterID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      model.ReportOpen,
	}
	if err := s.ReportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListOwnReports(reporterID uint) ([]model.Report, error) {
	return s.ReportRepo.FindByReporter(reporterID)
}

func (s *ReportService) ListReports(status model.ReportStatus, page, pageSize int) ([]model.Report, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.ReportRepo.List(status, page, pageSize)
}

// CloseReport 将工单置为 RESOLVED 或 DISMISSED，已关闭的工单不能再次关闭
func (s *ReportService) CloseReport(adminID, reportID uint, status model.ReportStatus) (*model.Report, error) {
	if status != model.ReportResolved && status != model.ReportDismissed {
		return nil, util.ErrReportClosed
	}

	report, err := s.ReportRepo.FindByID(reportID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}
	if report.Status != model.ReportOpen {
		return nil, util.ErrReportClosed
	}

	report.Status = status
	report.ResolvedByID = &adminID
	if err := s.ReportRepo.Update(report); err != nil {
		return nil, err
	}
	return report, nil
}
