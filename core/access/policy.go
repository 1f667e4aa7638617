package access

// Operation is an operation class the policy decides on.
type Operation string

const (
	OpLogin    Operation = "login"
	OpRegister Operation = "register"

	OpReadProfile  Operation = "readProfile"
	OpListUsers    Operation = "listUsers"
	OpListTeachers Operation = "listTeachers"
	OpCreateUser   Operation = "createUser"
	OpUpdateUser   Operation = "updateUser"
	OpDeleteUser   Operation = "deleteUser"

	OpListStudents  Operation = "listStudents"
	OpListChildren  Operation = "listChildren"
	OpCreateStudent Operation = "createStudent"
	OpUpdateStudent Operation = "updateStudent"
	OpDeleteStudent Operation = "deleteStudent"

	OpListCourses   Operation = "listCourses"
	OpListMyCourses Operation = "listMyCourses"
	OpCreateCourse  Operation = "createCourse"
	OpUpdateCourse  Operation = "updateCourse"
	OpDeleteCourse  Operation = "deleteCourse"

	OpReadStudentRecords Operation = "readStudentRecords"
	OpGenerateResources  Operation = "generateResources"

	OpCreateGrade Operation = "createGrade"
	OpUpdateGrade Operation = "updateGrade"
	OpDeleteGrade Operation = "deleteGrade"

	OpCreateBehaviorReport Operation = "createBehaviorReport"
	OpUpdateBehaviorReport Operation = "updateBehaviorReport"
	OpDeleteBehaviorReport Operation = "deleteBehaviorReport"

	OpListEvents  Operation = "listEvents"
	OpCreateEvent Operation = "createEvent"
	OpUpdateEvent Operation = "updateEvent"
	OpDeleteEvent Operation = "deleteEvent"
)

// Rule is the outcome of a (role, operation) cell.
type Rule int

const (
	// Deny always.
	Deny Rule = iota
	// Allow always.
	Allow
	// Owner allows when the identity authored the resource (teacherId / createdBy).
	Owner
	// Parent allows when the identity is the parent of the student the resource belongs to.
	Parent
	// Filtered allows, restricted to the rows owned by the identity.
	Filtered
)

func (r Rule) String() string {
	switch r {
	case Allow:
		return "allow"
	case Owner:
		return "owner"
	case Parent:
		return "parent"
	case Filtered:
		return "filtered"
	default:
		return "deny"
	}
}

// needsResource reports whether the rule is decided on the loaded resource.
func (r Rule) needsResource() bool { return r == Owner || r == Parent }

// Reasons of a denial.
const (
	ReasonAnonymous        = "anonymous identity"
	ReasonRole             = "role not permitted"
	ReasonNotOwner         = "identity does not own the resource"
	ReasonMissingResource  = "resource required for ownership check"
	ReasonUnknownOperation = "unknown operation"
)

// Resource carries the ownership of the resource an operation targets.
// OwnerID is the author (teacherId, createdBy) or, for student records, the student's parentId.
type Resource struct {
	OwnerID string
}

// OwnedBy returns a Resource owned by id.
func OwnedBy(id string) *Resource {
	return &Resource{OwnerID: id}
}

// Decision is the outcome of Authorize.
// Filter, when set, is the owner id the allowed rows must be restricted to.
type Decision struct {
	Allowed bool
	Reason  string
	Filter  string
}

func allowed() Decision { return Decision{Allowed: true} }

func denied(reason string) Decision { return Decision{Reason: reason} }

func filtered(owner string) Decision { return Decision{Allowed: true, Filter: owner} }

// IsFiltered reports whether the allowed rows must be restricted to Filter.
func (d Decision) IsFiltered() bool { return d.Allowed && d.Filter != "" }

// Anonymous reports whether the denial is due to a missing identity.
func (d Decision) Anonymous() bool { return !d.Allowed && d.Reason == ReasonAnonymous }

// publicOperations require no identity.
var publicOperations = map[Operation]bool{
	OpLogin:    true,
	OpRegister: true,
}

type cell map[Role]Rule

// Table is the decision table: operation -> role -> rule. A missing role entry is Deny.
var Table = map[Operation]cell{
	OpLogin:    {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Allow},
	OpRegister: {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Allow},

	OpReadProfile:  {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Allow},
	OpListUsers:    {RoleAdmin: Allow},
	OpListTeachers: {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Allow},
	OpCreateUser:   {RoleAdmin: Allow},
	OpUpdateUser:   {RoleAdmin: Allow},
	OpDeleteUser:   {RoleAdmin: Allow},

	OpListStudents:  {RoleAdmin: Allow, RoleTeacher: Allow},
	OpListChildren:  {RoleAdmin: Allow, RoleParent: Filtered},
	OpCreateStudent: {RoleAdmin: Allow},
	OpUpdateStudent: {RoleAdmin: Allow},
	OpDeleteStudent: {RoleAdmin: Allow},

	OpListCourses:   {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Allow},
	OpListMyCourses: {RoleAdmin: Allow, RoleTeacher: Filtered},
	OpCreateCourse:  {RoleAdmin: Allow},
	OpUpdateCourse:  {RoleAdmin: Allow},
	OpDeleteCourse:  {RoleAdmin: Allow},

	OpReadStudentRecords: {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Parent},
	OpGenerateResources:  {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Parent},

	OpCreateGrade: {RoleAdmin: Allow, RoleTeacher: Allow},
	OpUpdateGrade: {RoleAdmin: Allow, RoleTeacher: Owner},
	OpDeleteGrade: {RoleAdmin: Allow, RoleTeacher: Owner},

	OpCreateBehaviorReport: {RoleAdmin: Allow, RoleTeacher: Allow},
	OpUpdateBehaviorReport: {RoleAdmin: Allow, RoleTeacher: Owner},
	OpDeleteBehaviorReport: {RoleAdmin: Allow, RoleTeacher: Owner},

	OpListEvents:  {RoleAdmin: Allow, RoleTeacher: Allow, RoleParent: Allow},
	OpCreateEvent: {RoleAdmin: Allow, RoleTeacher: Allow},
	OpUpdateEvent: {RoleAdmin: Allow, RoleTeacher: Owner},
	OpDeleteEvent: {RoleAdmin: Allow, RoleTeacher: Owner},
}

// Operations lists every operation of the Table.
func Operations() []Operation {
	ops := make([]Operation, 0, len(Table))
	for op := range Table {
		ops = append(ops, op)
	}
	return ops
}

// RuleFor returns the rule of the (role, op) cell.
func RuleFor(role Role, op Operation) Rule {
	c, ok := Table[op]
	if !ok {
		return Deny
	}
	return c[role]
}

// Authorize decides whether id may perform op on res.
// res is only consulted by ownership rules; it may be nil otherwise.
func Authorize(id Identity, op Operation, res *Resource) Decision {
	if _, ok := Table[op]; !ok {
		return denied(ReasonUnknownOperation)
	}
	if publicOperations[op] {
		return allowed()
	}
	if id.IsAnonymous() {
		return denied(ReasonAnonymous)
	}

	switch rule := RuleFor(id.Role, op); rule {
	case Allow:
		return allowed()
	case Filtered:
		return filtered(id.ID)
	case Owner, Parent:
		if res == nil {
			return denied(ReasonMissingResource)
		}
		if res.OwnerID != "" && res.OwnerID == id.ID {
			return allowed()
		}
		return denied(ReasonNotOwner)
	default:
		return denied(ReasonRole)
	}
}

// Eligible decides on the role alone: ownership rules count as allowed.
// Used before loading the resource an ownership rule needs.
func Eligible(id Identity, op Operation) Decision {
	if id.IsAnonymous() || publicOperations[op] {
		return Authorize(id, op, nil)
	}
	if rule := RuleFor(id.Role, op); rule.needsResource() {
		return allowed()
	}
	return Authorize(id, op, nil)
}
