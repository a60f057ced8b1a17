package test

import (
	"fmt"
	"testing"

	"github.com/esdart/esdart/internal/logger"
)

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		t.Fatalf("%s != %s", fmt.Sprint(observed), fmt.Sprint(expected))
	}
}

func AssertEqualWithDiff(t *testing.T, observed string, expected string) {
	t.Helper()
	if observed != expected {
		t.Fatal(Diff(expected, observed, false))
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}
