package usecase

import "strings"

// CategoryAll is the sentinel category meaning "no category filter".
const CategoryAll = "All"

// FilterSpec is the composable set of predicates applied to a dataset
// snapshot. Zero-valued fields are inactive; active predicates are
// AND-combined, so adding one can only narrow the result.
type FilterSpec struct {
	// NameSubstring keeps records whose name contains the term,
	// case-insensitive.
	NameSubstring string

	// Category keeps records whose category equals this value exactly.
	// Empty or CategoryAll means no category filter.
	Category string

	// RequiredIngredients keeps records whose ingredient index contains
	// every listed canonical token.
	RequiredIngredients []string

	// OwnedOnly keeps records whose entire ingredient index is a subset
	// of Owned.
	OwnedOnly bool

	// Owned is the caller-supplied user inventory, keyed by canonical
	// token. Consulted only when OwnedOnly is set.
	Owned map[string]bool
}

// RecordView exposes the filterable facets of a record. Callers adapt their
// concrete type to this view; the engine never sees the record itself.
type RecordView struct {
	Name     string
	Category string
	Index    []string
}

// Apply filters a dataset snapshot through the spec. Pure and
// deterministic: input order is preserved, the input slice is never
// mutated, and an all-inactive spec returns the input unchanged.
func Apply[T any](dataset []T, spec FilterSpec, view func(T) RecordView) []T {
	if !spec.active() {
		return dataset
	}

	term := strings.ToLower(strings.TrimSpace(spec.NameSubstring))

	out := make([]T, 0, len(dataset))
	for _, record := range dataset {
		v := view(record)

		if term != "" && !strings.Contains(strings.ToLower(v.Name), term) {
			continue
		}
		if spec.categoryActive() && v.Category != spec.Category {
			continue
		}
		if len(spec.RequiredIngredients) > 0 && !containsAll(v.Index, spec.RequiredIngredients) {
			continue
		}
		if spec.OwnedOnly && !subsetOf(v.Index, spec.Owned) {
			continue
		}

		out = append(out, record)
	}
	return out
}

func (s FilterSpec) active() bool {
	return strings.TrimSpace(s.NameSubstring) != "" ||
		s.categoryActive() ||
		len(s.RequiredIngredients) > 0 ||
		s.OwnedOnly
}

func (s FilterSpec) categoryActive() bool {
	return s.Category != "" && s.Category != CategoryAll
}

// containsAll reports whether every required token appears in the index.
func containsAll(index, required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range index {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// subsetOf reports whether every index token is in the owned set.
func subsetOf(index []string, owned map[string]bool) bool {
	for _, token := range index {
		if !owned[token] {
			return false
		}
	}
	return true
}
