// Package testgen renders lint results as ahead-of-time JavaScript tests.
package testgen

import (
	"sort"

	"github.com/openkraft/stylelint-aot/internal/domain"
)

// Framework renders suite and test source text for one JavaScript test
// framework. Implementations are stateless and safe to share.
type Framework interface {
	Name() string
	SuiteHeader(title string) string
	SuiteFooter() string
	// Test renders one test. detail is non-empty whenever passed is false.
	Test(title string, passed bool, detail string) string
}

var frameworks = map[string]Framework{
	"qunit": QUnit{},
	"mocha": Mocha{},
}

// Lookup returns the framework registered under name.
func Lookup(name string) (Framework, error) {
	fw, ok := frameworks[name]
	if !ok {
		return nil, &domain.UnknownFrameworkError{Name: name, Known: Names()}
	}
	return fw, nil
}

// Names lists the registered framework names, sorted.
func Names() []string {
	names := make([]string, 0, len(frameworks))
	for n := range frameworks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
