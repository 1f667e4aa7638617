package core

// DBOrdering is one ORDER BY term.
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// OrderBy joins orderings into an ORDER BY clause body.
func OrderBy(ords ...DBOrdering) string {
	s := ""
	for i, ord := range ords {
		if i > 0 {
			s += ", "
		}
		s += ord.String()
	}
	return s
}
