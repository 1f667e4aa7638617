package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/edunotify/core/behavior"
)

type reportRepository struct {
	db *DB
}

var _ behavior.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) behavior.Repository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) CreateReport(_ context.Context, rpt behavior.Report) (behavior.Report, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rpt.ID = repo.db.newID()
	repo.db.reports[rpt.ID] = &rpt
	return rpt, nil
}

func (repo *reportRepository) QueryReports(_ context.Context, filter behavior.QueryFilter) ([]behavior.Report, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	reports := make([]behavior.Report, 0)
	for _, rpt := range repo.db.reports {
		if filter.StudentID != "" && rpt.StudentID != filter.StudentID {
			continue
		}
		reports = append(reports, *rpt)
	}
	// newest first
	sort.Slice(reports, func(i, j int) bool {
		return repo.db.before(reports[j].CreatedAt, reports[i].CreatedAt, reports[j].ID, reports[i].ID)
	})
	return reports, nil
}

func (repo *reportRepository) GetReportByID(_ context.Context, id string) (behavior.Report, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rpt, ok := repo.db.reports[id]; ok {
		return *rpt, nil
	}
	return behavior.Report{}, behavior.ErrNotFound
}

func (repo *reportRepository) UpdateReport(_ context.Context, id string, ur behavior.UpdateReport) (behavior.Report, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rpt, ok := repo.db.reports[id]
	if !ok {
		return behavior.Report{}, behavior.ErrNotFound
	}
	if ur.Title != nil {
		rpt.Title = *ur.Title
	}
	if ur.Description != nil {
		rpt.Description = *ur.Description
	}
	if ur.Type != nil {
		rpt.Type = *ur.Type
	}
	return *rpt, nil
}

func (repo *reportRepository) DeleteReport(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.reports[id]; !ok {
		return behavior.ErrNotFound
	}
	repo.db.drop(id)
	delete(repo.db.reports, id)
	return nil
}
