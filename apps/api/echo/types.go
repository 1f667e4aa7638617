package echoapi

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/trezcool/edunotify/core/auth"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/resource"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
)

// timeLayout is ISO 8601 in UTC, with milliseconds.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// loadUser resolves a user relation. Relations of already authorized rows are not authorized again.
func (r *Resolver) loadUser(ctx context.Context, userID string) (*userResolver, error) {
	usr, err := r.svc.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &userResolver{usr: usr}, nil
}

func (r *Resolver) loadStudent(ctx context.Context, studentID string) (*studentResolver, error) {
	std, err := r.svc.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &studentResolver{r: r, std: std}, nil
}

type userResolver struct {
	usr user.User
}

func userResolvers(usrs []user.User) []*userResolver {
	resolvers := make([]*userResolver, 0, len(usrs))
	for _, usr := range usrs {
		resolvers = append(resolvers, &userResolver{usr: usr})
	}
	return resolvers
}

func (u *userResolver) ID() graphql.ID    { return graphql.ID(u.usr.ID) }
func (u *userResolver) Email() string     { return u.usr.Email }
func (u *userResolver) Name() string      { return u.usr.Name }
func (u *userResolver) Role() string      { return string(u.usr.Role) }
func (u *userResolver) CreatedAt() string { return formatTime(u.usr.CreatedAt) }

type studentResolver struct {
	r   *Resolver
	std student.Student
}

func (r *Resolver) studentResolvers(stds []student.Student) []*studentResolver {
	resolvers := make([]*studentResolver, 0, len(stds))
	for _, std := range stds {
		resolvers = append(resolvers, &studentResolver{r: r, std: std})
	}
	return resolvers
}

func (s *studentResolver) ID() graphql.ID   { return graphql.ID(s.std.ID) }
func (s *studentResolver) Name() string     { return s.std.Name }
func (s *studentResolver) Grade() string    { return s.std.Grade }
func (s *studentResolver) ParentID() string { return s.std.ParentID }

func (s *studentResolver) Parent(ctx context.Context) (*userResolver, error) {
	return s.r.loadUser(ctx, s.std.ParentID)
}

func (s *studentResolver) Grades(ctx context.Context) ([]*gradeResolver, error) {
	grds, err := s.r.svc.Grades.ForStudent(ctx, s.std.ID)
	if err != nil {
		return nil, s.r.fail(ctx, err)
	}
	return s.r.gradeResolvers(grds), nil
}

func (s *studentResolver) BehaviorReports(ctx context.Context) ([]*behaviorReportResolver, error) {
	reps, err := s.r.svc.Behavior.ForStudent(ctx, s.std.ID)
	if err != nil {
		return nil, s.r.fail(ctx, err)
	}
	return s.r.reportResolvers(reps), nil
}

type gradeResolver struct {
	r   *Resolver
	grd grade.Grade
}

func (r *Resolver) gradeResolvers(grds []grade.Grade) []*gradeResolver {
	resolvers := make([]*gradeResolver, 0, len(grds))
	for _, grd := range grds {
		resolvers = append(resolvers, &gradeResolver{r: r, grd: grd})
	}
	return resolvers
}

func (g *gradeResolver) ID() graphql.ID    { return graphql.ID(g.grd.ID) }
func (g *gradeResolver) Subject() string   { return g.grd.Subject }
func (g *gradeResolver) Score() float64    { return g.grd.Score }
func (g *gradeResolver) MaxScore() float64 { return g.grd.MaxScore }
func (g *gradeResolver) StudentID() string { return g.grd.StudentID }
func (g *gradeResolver) TeacherID() string { return g.grd.TeacherID }
func (g *gradeResolver) CreatedAt() string { return formatTime(g.grd.CreatedAt) }

func (g *gradeResolver) Student(ctx context.Context) (*studentResolver, error) {
	return g.r.loadStudent(ctx, g.grd.StudentID)
}

func (g *gradeResolver) Teacher(ctx context.Context) (*userResolver, error) {
	return g.r.loadUser(ctx, g.grd.TeacherID)
}

type behaviorReportResolver struct {
	r   *Resolver
	rep behavior.Report
}

func (r *Resolver) reportResolvers(reps []behavior.Report) []*behaviorReportResolver {
	resolvers := make([]*behaviorReportResolver, 0, len(reps))
	for _, rep := range reps {
		resolvers = append(resolvers, &behaviorReportResolver{r: r, rep: rep})
	}
	return resolvers
}

func (b *behaviorReportResolver) ID() graphql.ID      { return graphql.ID(b.rep.ID) }
func (b *behaviorReportResolver) Title() string       { return b.rep.Title }
func (b *behaviorReportResolver) Description() string { return b.rep.Description }
func (b *behaviorReportResolver) Type() string        { return string(b.rep.Type) }
func (b *behaviorReportResolver) StudentID() string   { return b.rep.StudentID }
func (b *behaviorReportResolver) TeacherID() string   { return b.rep.TeacherID }
func (b *behaviorReportResolver) CreatedAt() string   { return formatTime(b.rep.CreatedAt) }

func (b *behaviorReportResolver) Student(ctx context.Context) (*studentResolver, error) {
	return b.r.loadStudent(ctx, b.rep.StudentID)
}

func (b *behaviorReportResolver) Teacher(ctx context.Context) (*userResolver, error) {
	return b.r.loadUser(ctx, b.rep.TeacherID)
}

type eventResolver struct {
	r   *Resolver
	evt event.Event
}

func (e *eventResolver) ID() graphql.ID      { return graphql.ID(e.evt.ID) }
func (e *eventResolver) Title() string       { return e.evt.Title }
func (e *eventResolver) Description() string { return e.evt.Description }
func (e *eventResolver) Date() string        { return formatTime(e.evt.Date) }
func (e *eventResolver) CreatedBy() string   { return e.evt.CreatedBy }
func (e *eventResolver) CreatedAt() string   { return formatTime(e.evt.CreatedAt) }

func (e *eventResolver) Creator(ctx context.Context) (*userResolver, error) {
	return e.r.loadUser(ctx, e.evt.CreatedBy)
}

type courseResolver struct {
	r   *Resolver
	crs course.Course
}

func (r *Resolver) courseResolvers(crss []course.Course) []*courseResolver {
	resolvers := make([]*courseResolver, 0, len(crss))
	for _, crs := range crss {
		resolvers = append(resolvers, &courseResolver{r: r, crs: crs})
	}
	return resolvers
}

func (c *courseResolver) ID() graphql.ID      { return graphql.ID(c.crs.ID) }
func (c *courseResolver) Name() string        { return c.crs.Name }
func (c *courseResolver) Code() string        { return c.crs.Code }
func (c *courseResolver) Description() string { return c.crs.Description }
func (c *courseResolver) TeacherID() string   { return c.crs.TeacherID }
func (c *courseResolver) CreatedAt() string   { return formatTime(c.crs.CreatedAt) }

func (c *courseResolver) Teacher(ctx context.Context) (*userResolver, error) {
	return c.r.loadUser(ctx, c.crs.TeacherID)
}

type learningResourceResolver struct {
	res resource.Resource
}

func (l *learningResourceResolver) ID() graphql.ID      { return graphql.ID(l.res.ID) }
func (l *learningResourceResolver) Title() string       { return l.res.Title }
func (l *learningResourceResolver) Description() string { return l.res.Description }
func (l *learningResourceResolver) URL() string         { return l.res.URL }
func (l *learningResourceResolver) Subject() string     { return l.res.Subject }
func (l *learningResourceResolver) Difficulty() string  { return string(l.res.Difficulty) }

type authPayloadResolver struct {
	payload auth.Payload
}

func (a *authPayloadResolver) Token() string       { return a.payload.Token }
func (a *authPayloadResolver) User() *userResolver { return &userResolver{usr: a.payload.User} }
