package echoapi

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/auth"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/resource"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
)

// Services are the operations exposed by the API.
type Services struct {
	Auth      *auth.Service
	Users     *user.Service
	Students  *student.Service
	Courses   *course.Service
	Grades    *grade.Service
	Behavior  *behavior.Service
	Events    *event.Service
	Resources *resource.Service

	// OwnershipFirst makes grades reads check parent ownership before student existence.
	OwnershipFirst bool
}

// Resolver is the root resolver of both Query and Mutation.
type Resolver struct {
	svc            Services
	logger         core.Logger
	signalShutdown func()
}

func NewResolver(svc Services, logger core.Logger, signalShutdown func()) *Resolver {
	return &Resolver{svc: svc, logger: logger, signalShutdown: signalShutdown}
}

func (r *Resolver) fail(ctx context.Context, err error) error {
	return toGQLError(err, r.logger, r.signalShutdown, access.FromContext(ctx))
}

// Queries

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	usr, err := r.svc.Users.Me(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	if usr == nil {
		return nil, nil
	}
	return &userResolver{usr: *usr}, nil
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	usrs, err := r.svc.Users.QueryAll(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return userResolvers(usrs), nil
}

func (r *Resolver) Parents(ctx context.Context) ([]*userResolver, error) {
	usrs, err := r.svc.Users.QueryParents(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return userResolvers(usrs), nil
}

func (r *Resolver) Teachers(ctx context.Context) ([]*userResolver, error) {
	usrs, err := r.svc.Users.QueryTeachers(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return userResolvers(usrs), nil
}

func (r *Resolver) Students(ctx context.Context) ([]*studentResolver, error) {
	stds, err := r.svc.Students.QueryAll(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.studentResolvers(stds), nil
}

func (r *Resolver) MyChildren(ctx context.Context) ([]*studentResolver, error) {
	stds, err := r.svc.Students.QueryChildren(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.studentResolvers(stds), nil
}

type studentArgs struct {
	StudentID graphql.ID
}

func (r *Resolver) Grades(ctx context.Context, args studentArgs) ([]*gradeResolver, error) {
	query := r.svc.Grades.QueryByStudent
	if r.svc.OwnershipFirst {
		query = r.svc.Grades.QueryByStudentOwnershipFirst
	}
	grds, err := query(ctx, access.FromContext(ctx), string(args.StudentID))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.gradeResolvers(grds), nil
}

func (r *Resolver) BehaviorReports(ctx context.Context, args studentArgs) ([]*behaviorReportResolver, error) {
	reps, err := r.svc.Behavior.QueryByStudent(ctx, access.FromContext(ctx), string(args.StudentID))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.reportResolvers(reps), nil
}

func (r *Resolver) LearningResources(ctx context.Context, args studentArgs) ([]*learningResourceResolver, error) {
	ress, err := r.svc.Resources.ForStudent(ctx, access.FromContext(ctx), string(args.StudentID))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	resolvers := make([]*learningResourceResolver, 0, len(ress))
	for _, res := range ress {
		resolvers = append(resolvers, &learningResourceResolver{res: res})
	}
	return resolvers, nil
}

func (r *Resolver) Events(ctx context.Context) ([]*eventResolver, error) {
	evts, err := r.svc.Events.QueryAll(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	resolvers := make([]*eventResolver, 0, len(evts))
	for _, evt := range evts {
		resolvers = append(resolvers, &eventResolver{r: r, evt: evt})
	}
	return resolvers, nil
}

func (r *Resolver) Courses(ctx context.Context) ([]*courseResolver, error) {
	crss, err := r.svc.Courses.QueryAll(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.courseResolvers(crss), nil
}

func (r *Resolver) MyCourses(ctx context.Context) ([]*courseResolver, error) {
	crss, err := r.svc.Courses.QueryMine(ctx, access.FromContext(ctx))
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return r.courseResolvers(crss), nil
}
