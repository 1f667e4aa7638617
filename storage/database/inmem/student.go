package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/edunotify/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std.ID = repo.db.newID()
	repo.db.students[std.ID] = &std
	return std, nil
}

func (repo *studentRepository) QueryStudents(_ context.Context, filter student.QueryFilter) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for _, std := range repo.db.students {
		if filter.ParentID != "" && std.ParentID != filter.ParentID {
			continue
		}
		students = append(students, *std)
	}
	sort.Slice(students, func(i, j int) bool {
		return repo.db.before(students[i].CreatedAt, students[j].CreatedAt, students[i].ID, students[j].ID)
	})
	return students, nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id string) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if std, ok := repo.db.students[id]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(_ context.Context, id string, us student.UpdateStudent) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	std, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	if us.ParentID != nil {
		if err := repo.db.checkUserRef(*us.ParentID); err != nil {
			return student.Student{}, err
		}
	}
	if us.Name != nil {
		std.Name = *us.Name
	}
	if us.Grade != nil {
		std.Grade = *us.Grade
	}
	if us.ParentID != nil {
		std.ParentID = *us.ParentID
	}
	return *std, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	repo.db.deleteStudent(id)
	return nil
}
