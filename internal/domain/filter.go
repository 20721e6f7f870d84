package domain

type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a list query value to a view filter. Anything
// unrecognized, including the empty string, means "all".
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterPending:
		return FilterPending
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseClearFilter maps a bulk-delete query value to a filter. Only
// "completed" and "all" are legal here; an unknown value is rejected so a
// typo cannot wipe the table.
func ParseClearFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterCompleted:
		return FilterCompleted, true
	case FilterAll:
		return FilterAll, true
	default:
		return "", false
	}
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the subset of tasks the filter keeps, preserving order.
func (f Filter) Apply(tasks []Task) []Task {
	if f == FilterAll || f == "" {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
