package runtime

import (
	"fmt"

	"github.com/esdart/esdart"
)

// Names of the helpers that rewritten code calls. The renamer must leave the
// property names on "$jscomp" alone since the runtime defines them by name.
const (
	SuperGet = "$jscomp.superGet"
	SuperSet = "$jscomp.superSet"
)

// This is prepended to the output whenever a pass needed the helpers. It has
// to stay within the syntax that "js_parser" accepts because it's parsed and
// printed along with the rest of the output.
const Code = `
	var $jscomp = $jscomp || {};

	// Methods are found on the prototype of the receiver's prototype, which is
	// where "super" points for a direct instance of the class
	$jscomp.superDescriptor = function(self, prop) {
		var proto = Object.getPrototypeOf(Object.getPrototypeOf(self));
		while (proto !== null) {
			var desc = Object.getOwnPropertyDescriptor(proto, prop);
			if (desc !== void 0) {
				return desc;
			}
			proto = Object.getPrototypeOf(proto);
		}
		return null;
	};

	$jscomp.superGet = function(self, prop) {
		var desc = $jscomp.superDescriptor(self, prop);
		if (desc === null) {
			return void 0;
		}
		if (desc.get !== void 0 || desc.set !== void 0) {
			return desc.get ? desc.get.call(self) : void 0;
		}
		return desc.value;
	};

	// Setters run with the receiver as "this". Anything else is assigned to the
	// receiver itself, matching "super.x = value" for data properties.
	$jscomp.superSet = function(self, prop, value) {
		var desc = $jscomp.superDescriptor(self, prop);
		if (desc !== null && desc.set !== void 0) {
			desc.set.call(self, value);
		} else {
			self[prop] = value;
		}
		return value;
	};
`

// A comment line that identifies the runtime in the output
func Banner() string {
	return fmt.Sprintf("// esdart runtime %s\n", esdart.Version())
}
