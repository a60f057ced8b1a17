package runtime

import (
	"strings"
	"testing"

	"github.com/esdart/esdart/internal/js_parser"
	"github.com/esdart/esdart/internal/js_printer"
	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/internal/test"
)

func TestCodeParses(t *testing.T) {
	log := logger.NewDeferLog()
	tree, ok := js_parser.Parse(log, logger.Source{PrettyPath: "<runtime>", Contents: Code})
	test.AssertEqual(t, len(log.Done()), 0)
	test.AssertEqual(t, ok, true)

	js := string(js_printer.Print(tree, js_printer.Options{}))
	for _, name := range []string{SuperGet, SuperSet} {
		if !strings.Contains(js, name+" = function(self, prop") {
			t.Fatalf("Missing definition of %s in:\n%s", name, js)
		}
	}
}

func TestBanner(t *testing.T) {
	banner := Banner()
	test.AssertEqual(t, strings.HasPrefix(banner, "// esdart runtime "), true)
	test.AssertEqual(t, strings.HasSuffix(banner, "\n"), true)
}
