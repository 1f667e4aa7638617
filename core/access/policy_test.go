package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
)

var (
	admin   = Identity{ID: "admin-1", Email: "admin@test.cd", Role: RoleAdmin}
	teacher = Identity{ID: "teacher-1", Email: "teacher@test.cd", Role: RoleTeacher}
	parent  = Identity{ID: "parent-1", Email: "parent@test.cd", Role: RoleParent}
)

// expectation of one (role, operation) cell:
// "allow", "deny", "owner" (allowed only on owned resources) or "filtered" (allowed, restricted to own rows)
type row struct {
	op                      Operation
	admin, teacher, parent string
}

var decisionTable = []row{
	{OpReadProfile, "allow", "allow", "allow"},
	{OpListUsers, "allow", "deny", "deny"},
	{OpListTeachers, "allow", "allow", "allow"},
	{OpCreateUser, "allow", "deny", "deny"},
	{OpUpdateUser, "allow", "deny", "deny"},
	{OpDeleteUser, "allow", "deny", "deny"},
	{OpListStudents, "allow", "allow", "deny"},
	{OpListChildren, "allow", "deny", "filtered"},
	{OpCreateStudent, "allow", "deny", "deny"},
	{OpUpdateStudent, "allow", "deny", "deny"},
	{OpDeleteStudent, "allow", "deny", "deny"},
	{OpListCourses, "allow", "allow", "allow"},
	{OpListMyCourses, "allow", "filtered", "deny"},
	{OpCreateCourse, "allow", "deny", "deny"},
	{OpUpdateCourse, "allow", "deny", "deny"},
	{OpDeleteCourse, "allow", "deny", "deny"},
	{OpReadStudentRecords, "allow", "allow", "owner"},
	{OpGenerateResources, "allow", "allow", "owner"},
	{OpCreateGrade, "allow", "allow", "deny"},
	{OpUpdateGrade, "allow", "owner", "deny"},
	{OpDeleteGrade, "allow", "owner", "deny"},
	{OpCreateBehaviorReport, "allow", "allow", "deny"},
	{OpUpdateBehaviorReport, "allow", "owner", "deny"},
	{OpDeleteBehaviorReport, "allow", "owner", "deny"},
	{OpListEvents, "allow", "allow", "allow"},
	{OpCreateEvent, "allow", "allow", "deny"},
	{OpUpdateEvent, "allow", "owner", "deny"},
	{OpDeleteEvent, "allow", "owner", "deny"},
}

func TestDecisionTableCoversEveryOperation(t *testing.T) {
	covered := map[Operation]bool{OpLogin: true, OpRegister: true}
	for _, r := range decisionTable {
		covered[r.op] = true
	}
	for _, op := range Operations() {
		assert.True(t, covered[op], "operation %q has no expectation", op)
	}
	assert.Len(t, covered, len(Table))
}

func TestAuthorize(t *testing.T) {
	type cellTest struct {
		name        string
		id          Identity
		op          Operation
		res         *Resource
		wantAllowed bool
		wantReason  string
		wantFilter  string
	}

	var tests []cellTest
	for _, r := range decisionTable {
		for _, c := range []struct {
			id   Identity
			want string
		}{{admin, r.admin}, {teacher, r.teacher}, {parent, r.parent}} {
			name := string(r.op) + "/" + string(c.id.Role)
			switch c.want {
			case "allow":
				tests = append(tests,
					cellTest{name: name, id: c.id, op: r.op, wantAllowed: true},
					cellTest{name: name + " (foreign resource)", id: c.id, op: r.op, res: OwnedBy("someone-else"), wantAllowed: true},
				)
			case "deny":
				tests = append(tests,
					cellTest{name: name, id: c.id, op: r.op, wantReason: ReasonRole},
					cellTest{name: name + " (own resource)", id: c.id, op: r.op, res: OwnedBy(c.id.ID), wantReason: ReasonRole},
				)
			case "owner":
				tests = append(tests,
					cellTest{name: name + " (own resource)", id: c.id, op: r.op, res: OwnedBy(c.id.ID), wantAllowed: true},
					cellTest{name: name + " (foreign resource)", id: c.id, op: r.op, res: OwnedBy("someone-else"), wantReason: ReasonNotOwner},
					cellTest{name: name + " (unowned resource)", id: c.id, op: r.op, res: OwnedBy(""), wantReason: ReasonNotOwner},
					cellTest{name: name + " (no resource)", id: c.id, op: r.op, wantReason: ReasonMissingResource},
				)
			case "filtered":
				tests = append(tests, cellTest{name: name, id: c.id, op: r.op, wantAllowed: true, wantFilter: c.id.ID})
			default:
				t.Fatalf("unknown expectation %q", c.want)
			}
		}
		tests = append(tests,
			cellTest{name: string(r.op) + "/anonymous", id: Anonymous, op: r.op, wantReason: ReasonAnonymous},
			cellTest{name: string(r.op) + "/anonymous (resource)", id: Anonymous, op: r.op, res: OwnedBy(""), wantReason: ReasonAnonymous},
		)
	}
	for _, op := range []Operation{OpLogin, OpRegister} {
		for _, id := range []Identity{Anonymous, admin, teacher, parent} {
			tests = append(tests, cellTest{name: string(op) + "/" + string(id.Role), id: id, op: op, wantAllowed: true})
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.id, tt.op, tt.res)
			if got.Allowed != tt.wantAllowed {
				t.Errorf("Authorize() allowed = %v, want %v (reason %q)", got.Allowed, tt.wantAllowed, got.Reason)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Authorize() reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Filter != tt.wantFilter {
				t.Errorf("Authorize() filter = %q, want %q", got.Filter, tt.wantFilter)
			}
		})
	}
}

func TestAuthorize_unknownOperation(t *testing.T) {
	for _, id := range []Identity{Anonymous, admin, teacher, parent} {
		got := Authorize(id, Operation("launchRockets"), nil)
		assert.False(t, got.Allowed)
		assert.Equal(t, ReasonUnknownOperation, got.Reason)
	}
}

func TestAuthorize_unknownRole(t *testing.T) {
	student := Identity{ID: "student-1", Role: Role("STUDENT")}
	for _, r := range decisionTable {
		got := Authorize(student, r.op, OwnedBy(student.ID))
		assert.False(t, got.Allowed, "op %q", r.op)
	}
}

func TestAuthorize_parentReadingAnotherParentsChild(t *testing.T) {
	other := Identity{ID: "parent-2", Role: RoleParent}
	got := Authorize(other, OpReadStudentRecords, OwnedBy(parent.ID))
	assert.False(t, got.Allowed)
	assert.Equal(t, ReasonNotOwner, got.Reason)
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
		op   Operation
		want bool
	}{
		{name: "teacher may attempt grade update", id: teacher, op: OpUpdateGrade, want: true},
		{name: "parent may attempt records read", id: parent, op: OpReadStudentRecords, want: true},
		{name: "parent may not attempt grade update", id: parent, op: OpUpdateGrade},
		{name: "teacher may not attempt student creation", id: teacher, op: OpCreateStudent},
		{name: "anonymous may not attempt anything", id: Anonymous, op: OpUpdateGrade},
		{name: "anonymous may login", id: Anonymous, op: OpLogin, want: true},
		{name: "admin may attempt anything", id: admin, op: OpDeleteEvent, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(tt.id, tt.op); got.Allowed != tt.want {
				t.Errorf("Eligible() = %v, want %v", got.Allowed, tt.want)
			}
		})
	}
}

type recorder struct {
	decisions []Decision
}

func (r *recorder) ObserveDecision(_ Operation, _ Role, d Decision) {
	r.decisions = append(r.decisions, d)
}

func TestGuard(t *testing.T) {
	rec := new(recorder)
	g := NewGuard(rec)

	_, err := g.Check(Anonymous, OpListEvents, nil)
	assert.Equal(t, core.ErrNotAuthenticated, err)
	assert.Equal(t, "Not authenticated", err.Error())

	_, err = g.Check(parent, OpListUsers, nil)
	assert.Equal(t, core.ErrNotAuthorized, err)
	assert.Equal(t, "Not authorized", err.Error())

	d, err := g.Check(parent, OpListChildren, nil)
	assert.NoError(t, err)
	assert.Equal(t, parent.ID, d.Filter)

	assert.NoError(t, g.Precheck(teacher, OpUpdateGrade))
	assert.Equal(t, core.ErrNotAuthorized, g.Precheck(parent, OpUpdateGrade))
	assert.Equal(t, core.ErrNotAuthenticated, g.Precheck(Anonymous, OpUpdateGrade))

	assert.Len(t, rec.decisions, 5)
}

func TestRequireIdentity(t *testing.T) {
	assert.Equal(t, core.ErrNotAuthenticated, RequireIdentity(Anonymous))
	assert.NoError(t, RequireIdentity(parent))
}
