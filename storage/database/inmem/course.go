package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/edunotify/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckCodeUniqueness(_ context.Context, code string, excludedIDs ...string) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, crs := range repo.db.courses {
		if crs.Code == code && !isExcluded(crs.ID, excludedIDs) {
			return course.ErrCodeExists
		}
	}
	return nil
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs.ID = repo.db.newID()
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, crs := range repo.db.courses {
		if filter.TeacherID != "" && crs.TeacherID != filter.TeacherID {
			continue
		}
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool {
		return repo.db.before(courses[i].CreatedAt, courses[j].CreatedAt, courses[i].ID, courses[j].ID)
	})
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(_ context.Context, id string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if crs, ok := repo.db.courses[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(_ context.Context, id string, uc course.UpdateCourse) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs, ok := repo.db.courses[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	if uc.TeacherID != nil {
		if err := repo.db.checkUserRef(*uc.TeacherID); err != nil {
			return course.Course{}, err
		}
	}
	if uc.Name != nil {
		crs.Name = *uc.Name
	}
	if uc.Code != nil {
		crs.Code = *uc.Code
	}
	if uc.Description != nil {
		crs.Description = *uc.Description
	}
	if uc.TeacherID != nil {
		crs.TeacherID = *uc.TeacherID
	}
	return *crs, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return course.ErrNotFound
	}
	repo.db.drop(id)
	delete(repo.db.courses, id)
	return nil
}
