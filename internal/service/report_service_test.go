package service

import (
	"code_quest_backend/internal/model"
	"code_quest_backend/internal/repository"
	"code_quest_backend/internal/util"
	"errors"
	"testing"
)

func newReportService(t *testing.T) *ReportService {
	t.Helper()
	db := newTestDB(t)
	return NewReportService(repository.NewReportRepository(db))
}

func TestCloseReport(t *testing.T) {
	svc := newReportService(t)

	report, err := svc.CreateReport(1, &ReportRequest{Subject: "刷分", Description: "榜一数据异常"})
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if report.Status != model.ReportOpen {
		t.Fatalf("status = %s, want OPEN", report.Status)
	}

	closed, err := svc.CloseReport(2, report.ID, model.ReportResolved)
	if err != nil {
		t.Fatalf("CloseReport: %v", err)
	}
	if closed.Status != model.ReportResolved {
		t.Fatalf("status = %s, want RESOLVED", closed.Status)
	}

	// 结单后不可再改
	if _, err := svc.CloseReport(2, report.ID, model.ReportDismissed); !errors.Is(err, util.ErrReportClosed) {
		t.Fatalf("err = %v, want ErrReportClosed", err)
	}
}
