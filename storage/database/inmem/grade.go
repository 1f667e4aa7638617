package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/edunotify/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	grd.ID = repo.db.newID()
	repo.db.grades[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) QueryGrades(_ context.Context, filter grade.QueryFilter) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, grd := range repo.db.grades {
		if filter.StudentID != "" && grd.StudentID != filter.StudentID {
			continue
		}
		if filter.TeacherID != "" && grd.TeacherID != filter.TeacherID {
			continue
		}
		grades = append(grades, *grd)
	}
	// newest first
	sort.Slice(grades, func(i, j int) bool {
		return repo.db.before(grades[j].CreatedAt, grades[i].CreatedAt, grades[j].ID, grades[i].ID)
	})
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(_ context.Context, id string) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if grd, ok := repo.db.grades[id]; ok {
		return *grd, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, id string, ug grade.UpdateGrade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	grd, ok := repo.db.grades[id]
	if !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	if ug.Subject != nil {
		grd.Subject = *ug.Subject
	}
	if ug.Score != nil {
		grd.Score = *ug.Score
	}
	if ug.MaxScore != nil {
		grd.MaxScore = *ug.MaxScore
	}
	return *grd, nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.grades[id]; !ok {
		return grade.ErrNotFound
	}
	repo.db.drop(id)
	delete(repo.db.grades, id)
	return nil
}
