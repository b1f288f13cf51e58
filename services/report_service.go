package services

import (
	"errors"
	"time"

	"github.com/cluns13/loadedteaclub-backend/entity"
	"github.com/cluns13/loadedteaclub-backend/repository"
)

type ReportService struct {
	Repo *repository.ReportRepository
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{Repo: repo}
}

func (s *ReportService) Create(userID, businessID, issueTypeID uint, description string) (*entity.Report, error) {
	report := &entity.Report{
		UserID:      userID,
		BusinessID:  businessID,
		IssueTypeID: issueTypeID,
		Description: description,
	}
	if err := s.Repo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListOpen() ([]entity.Report, error) {
	return s.Repo.FindOpen()
}

func (s *ReportService) Resolve(reportID, adminID uint) error {
	rows, err := s.Repo.Resolve(reportID, adminID, time.Now())
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("report not found or already resolved")
	}
	return nil
}
