package helpers

import (
	"strings"
	"testing"

	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/internal/test"
)

func TestJoiner(t *testing.T) {
	j := Joiner{}
	j.AddString("a")
	j.AddBytes([]byte("bc"))
	j.EnsureNewlineAtEnd()
	j.EnsureNewlineAtEnd()
	test.AssertEqual(t, j.Length(), uint32(4))
	test.AssertEqual(t, j.LastByte(), byte('\n'))
	test.AssertEqual(t, string(j.Done()), "abc\n")

	empty := Joiner{}
	empty.EnsureNewlineAtEnd()
	test.AssertEqual(t, len(empty.Done()), 0)
}

func TestQuoteForJSON(t *testing.T) {
	test.AssertEqual(t, string(QuoteForJSON("foo", false)), `"foo"`)
	test.AssertEqual(t, string(QuoteForJSON("a\"b\\c\n", false)), `"a\"b\\c\n"`)
	test.AssertEqual(t, string(QuoteForJSON("\u2028", false)), `"\u2028"`)
	test.AssertEqual(t, string(QuoteForJSON("\u2029", false)), `"\u2029"`)
	test.AssertEqual(t, string(QuoteForJSON("é", false)), `"é"`)
	test.AssertEqual(t, string(QuoteForJSON("é", true)), `"\u00E9"`)
}

func TestTimer(t *testing.T) {
	timer := &Timer{}
	timer.Begin("outer")
	timer.Begin("inner")
	timer.End("inner")
	timer.End("outer")

	log := logger.NewDeferLog()
	timer.Log(log)
	msgs := log.Done()
	test.AssertEqual(t, len(msgs), 2)
	test.AssertEqual(t, strings.HasPrefix(msgs[0].Text, "Timing outer: "), true)
	test.AssertEqual(t, strings.HasPrefix(msgs[1].Text, "Timing   inner: "), true)

	// Logging starts over
	log = logger.NewDeferLog()
	timer.Log(log)
	test.AssertEqual(t, len(log.Done()), 0)

	// A nil timer records nothing
	var none *Timer
	none.Begin("x")
	none.End("x")
	none.Log(log)
}
