package model

type ReportStatus string

const (
	ReportOpen      ReportStatus = "OPEN"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// swagger:model Report
type Report struct {
	BaseModel
	ReporterID   uint         `gorm:"index;not null" json:"reporterId"`
	Subject      string       `gorm:"size:200;not null" json:"subject"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       ReportStatus `gorm:"size:20;default:'OPEN'" json:"status"`
	ResolvedByID *uint        `json:"resolvedById"`
}

func (Report) TableName() string {
	return "reports"
}
