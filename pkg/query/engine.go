package query

import (
	"github.com/go-drift/probe/pkg/errors"
	"github.com/go-drift/probe/pkg/instance"
)

// Variant identifies one of the six query behaviors. Get, GetAll,
// QueryOne and QueryAll are synchronous and handled by Run; FindOne and
// FindAll are their polling wrappers in the wait package.
type Variant int

const (
	// Get requires exactly one match and fails otherwise.
	Get Variant = iota
	// GetAll requires at least one match.
	GetAll
	// QueryOne allows zero or one match; zero yields no result and no
	// error.
	QueryOne
	// QueryAll allows any number of matches and never fails.
	QueryAll
	// FindOne is Get with retry-until-timeout semantics.
	FindOne
	// FindAll is GetAll with retry-until-timeout semantics.
	FindAll
)

func (v Variant) String() string {
	switch v {
	case Get:
		return "Get"
	case GetAll:
		return "GetAll"
	case QueryOne:
		return "QueryOne"
	case QueryAll:
		return "QueryAll"
	case FindOne:
		return "FindOne"
	case FindAll:
		return "FindAll"
	default:
		return "unknown"
	}
}

// Run evaluates f against the tree and enforces v's cardinality
// contract. It returns the ordered matches, never retries, and never
// mutates the tree. FindOne and FindAll are reduced to their synchronous
// contracts (Get and GetAll); retrying is the wait package's job.
func Run(tree *instance.Tree, f Finder, v Variant) ([]instance.Instance, error) {
	var matches []instance.Instance
	if !tree.Empty() {
		matches = f.Evaluate(tree.Root())
	}

	switch v {
	case Get, FindOne:
		if len(matches) == 0 {
			return nil, notFound(tree, f)
		}
		if len(matches) > 1 {
			return nil, multiple(tree, f, len(matches))
		}
		return matches, nil
	case GetAll, FindAll:
		if len(matches) == 0 {
			return nil, notFound(tree, f)
		}
		return matches, nil
	case QueryOne:
		if len(matches) > 1 {
			return nil, multiple(tree, f, len(matches))
		}
		return matches, nil
	default: // QueryAll
		return matches, nil
	}
}

// GetOne returns the single instance matching f, failing with
// NotFoundError or MultipleMatchesError otherwise.
func GetOne(tree *instance.Tree, f Finder) (instance.Instance, error) {
	matches, err := Run(tree, f, Get)
	if err != nil {
		return instance.Instance{}, err
	}
	return matches[0], nil
}

// GetAllOf returns all instances matching f, failing with NotFoundError
// when there are none.
func GetAllOf(tree *instance.Tree, f Finder) ([]instance.Instance, error) {
	return Run(tree, f, GetAll)
}

// One returns the instance matching f if exactly one does, a zero
// Instance (Valid() == false) and nil error if none do, and
// MultipleMatchesError if several do.
func One(tree *instance.Tree, f Finder) (instance.Instance, error) {
	matches, err := Run(tree, f, QueryOne)
	if err != nil {
		return instance.Instance{}, err
	}
	if len(matches) == 0 {
		return instance.Instance{}, nil
	}
	return matches[0], nil
}

// All returns every instance matching f in traversal order, possibly
// empty. It never fails.
func All(tree *instance.Tree, f Finder) []instance.Instance {
	matches, _ := Run(tree, f, QueryAll)
	return matches
}

func notFound(tree *instance.Tree, f Finder) error {
	return &errors.NotFoundError{Query: f.Description(), TreeDump: FormatTree(tree)}
}

func multiple(tree *instance.Tree, f Finder, count int) error {
	return &errors.MultipleMatchesError{Query: f.Description(), Count: count, TreeDump: FormatTree(tree)}
}
