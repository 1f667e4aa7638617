package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
)

var errAlreadySeeded = errors.New("database already seeded")

var seedUsers = []user.NewUser{
	{Email: "admin@edunotify.com", Password: "admin123", Name: "Admin User", Role: access.RoleAdmin},
	{Email: "teacher@edunotify.com", Password: "teacher123", Name: "Almaz Tadesse", Role: access.RoleTeacher},
	{Email: "parent@edunotify.com", Password: "parent123", Name: "Kebede Alemu", Role: access.RoleParent},
}

// seed creates sample data: one user per role, a student with three grades, a behavior report and an event.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	if _, err := cli.users.GetByEmail(ctx, seedUsers[0].Email); err == nil {
		return errAlreadySeeded
	} else if err != user.ErrNotFound {
		return err
	}

	usrs := make([]user.User, 0, len(seedUsers))
	for _, nu := range seedUsers {
		usr, err := cli.users.Create(ctx, cliIdentity, nu)
		if err != nil {
			return err
		}
		usrs = append(usrs, usr)
	}
	teacher, parent := usrs[1].Identity(), usrs[2]

	std, err := cli.students.Create(ctx, cliIdentity, student.NewStudent{Name: "Hanan Kebede", Grade: "Grade 8", ParentID: parent.ID})
	if err != nil {
		return err
	}

	for _, ng := range []grade.NewGrade{
		{Subject: "Mathematics", Score: 85, MaxScore: 100},
		{Subject: "English", Score: 92, MaxScore: 100},
		{Subject: "Science", Score: 78, MaxScore: 100},
	} {
		ng.StudentID = std.ID
		if _, err = cli.grades.Create(ctx, teacher, ng); err != nil {
			return err
		}
	}

	_, err = cli.reports.Create(ctx, teacher, behavior.NewReport{
		Title:       "Excellent Participation",
		Description: "Hanan actively participated in class discussions and helped other students.",
		Type:        behavior.TypePositive,
		StudentID:   std.ID,
	})
	if err != nil {
		return err
	}

	_, err = cli.events.Create(ctx, teacher, event.NewEvent{
		Title:       "Parent-Teacher Conference",
		Description: "Monthly meeting to discuss student progress.",
		Date:        "2024-02-15T10:00:00Z",
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, "Database seeded successfully!")
	return nil
}
