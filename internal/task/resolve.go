package task

import "strings"

// Resolve matches a user-typed query against the registry.
//
// An exact name match wins immediately, even when the query is also a
// prefix of other names. Otherwise a name is a candidate when the query
// is a dotted prefix of it or equals its final dotted segment. Exactly
// one candidate resolves to its task; zero is a NoMatchError; more than
// one is an AmbiguousError carrying the sorted candidate names.
func Resolve(reg *Registry, query string) (*Task, error) {
	if t, ok := reg.Get(query); ok {
		return t, nil
	}

	prefix := query + "."
	var candidates []string
	for _, name := range reg.Names() {
		if strings.HasPrefix(name, prefix) || lastSegment(name) == query {
			candidates = append(candidates, name)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, &NoMatchError{Query: query}
	case 1:
		t, _ := reg.Get(candidates[0])
		return t, nil
	default:
		return nil, &AmbiguousError{Query: query, Candidates: candidates}
	}
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
