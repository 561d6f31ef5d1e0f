package repository

import (
	"github.com/damoang/angple-messaging/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository report data access interface
type ReportRepository interface {
	Create(report *domain.Report) error
	FindByReporter(reporterID uint64, limit int) ([]*domain.Report, error)
	CountByReporter(reporterID uint64) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *domain.Report) error {
	return r.db.Create(report).Error
}

// FindByReporter returns the user's recent reports
func (r *reportRepository) FindByReporter(reporterID uint64, limit int) ([]*domain.Report, error) {
	var reports []*domain.Report
	err := r.db.Where("reporter_id = ?", reporterID).
		Order("id DESC").Limit(limit).Find(&reports).Error
	return reports, err
}

// CountByReporter returns the user's total report count
func (r *reportRepository) CountByReporter(reporterID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Report{}).
		Where("reporter_id = ?", reporterID).Count(&count).Error
	return count, err
}
