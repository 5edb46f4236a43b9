package toytest

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares an invocation's argument list against
// testdata/golden/{name}.golden, one argument per line.
//
// To regenerate golden files, run:
//
//	go test ./internal/toytest -update
func AssertGolden(t *testing.T, name string, inv Invocation) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(strings.Join(inv.Args, "\n")+"\n"))
}
