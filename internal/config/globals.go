package config

import "sync"

var processedReservedPropsMutex sync.Mutex
var processedReservedProps map[string]bool

// Property paths on builtin objects. Every segment after the first is a
// property name that the environment owns, so renaming it would break code
// that uses the builtin.
var knownGlobals = [][]string{
	// These global identifiers should exist in all JavaScript environments
	{"Array"},
	{"Boolean"},
	{"Error"},
	{"Function"},
	{"Math"},
	{"Number"},
	{"Object"},
	{"RegExp"},
	{"String"},

	// Object: Static methods
	// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Object#Static_methods
	{"Object", "assign"},
	{"Object", "create"},
	{"Object", "defineProperties"},
	{"Object", "defineProperty"},
	{"Object", "entries"},
	{"Object", "freeze"},
	{"Object", "fromEntries"},
	{"Object", "getOwnPropertyDescriptor"},
	{"Object", "getOwnPropertyDescriptors"},
	{"Object", "getOwnPropertyNames"},
	{"Object", "getOwnPropertySymbols"},
	{"Object", "getPrototypeOf"},
	{"Object", "is"},
	{"Object", "isExtensible"},
	{"Object", "isFrozen"},
	{"Object", "isSealed"},
	{"Object", "keys"},
	{"Object", "preventExtensions"},
	{"Object", "seal"},
	{"Object", "setPrototypeOf"},
	{"Object", "values"},

	// Object: Instance methods
	// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Object#Instance_methods
	{"Object", "prototype", "__defineGetter__"},
	{"Object", "prototype", "__defineSetter__"},
	{"Object", "prototype", "__lookupGetter__"},
	{"Object", "prototype", "__lookupSetter__"},
	{"Object", "prototype", "__proto__"},
	{"Object", "prototype", "constructor"},
	{"Object", "prototype", "hasOwnProperty"},
	{"Object", "prototype", "isPrototypeOf"},
	{"Object", "prototype", "propertyIsEnumerable"},
	{"Object", "prototype", "toLocaleString"},
	{"Object", "prototype", "toString"},
	{"Object", "prototype", "valueOf"},

	// Property descriptors, as used by the super accessor runtime
	{"Object", "getOwnPropertyDescriptor", "get"},
	{"Object", "getOwnPropertyDescriptor", "set"},
	{"Object", "getOwnPropertyDescriptor", "value"},
	{"Object", "getOwnPropertyDescriptor", "writable"},
	{"Object", "getOwnPropertyDescriptor", "enumerable"},
	{"Object", "getOwnPropertyDescriptor", "configurable"},

	// Function: Instance properties and methods
	{"Function", "prototype", "apply"},
	{"Function", "prototype", "bind"},
	{"Function", "prototype", "call"},
	{"Function", "prototype", "length"},
	{"Function", "prototype", "name"},

	// Array and String: Commonly used instance members
	{"Array", "isArray"},
	{"Array", "prototype", "concat"},
	{"Array", "prototype", "forEach"},
	{"Array", "prototype", "indexOf"},
	{"Array", "prototype", "join"},
	{"Array", "prototype", "map"},
	{"Array", "prototype", "pop"},
	{"Array", "prototype", "push"},
	{"Array", "prototype", "slice"},
	{"Array", "prototype", "splice"},
	{"String", "prototype", "charAt"},
	{"String", "prototype", "charCodeAt"},
	{"String", "prototype", "split"},
	{"String", "prototype", "substring"},
	{"Error", "prototype", "message"},
	{"Error", "prototype", "stack"},

	// Math: Static properties
	// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Math#Static_properties
	{"Math", "E"},
	{"Math", "LN10"},
	{"Math", "LN2"},
	{"Math", "LOG10E"},
	{"Math", "LOG2E"},
	{"Math", "PI"},
	{"Math", "SQRT1_2"},
	{"Math", "SQRT2"},

	// Math: Static methods
	// https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Math#Static_methods
	{"Math", "abs"},
	{"Math", "ceil"},
	{"Math", "floor"},
	{"Math", "max"},
	{"Math", "min"},
	{"Math", "pow"},
	{"Math", "random"},
	{"Math", "round"},
	{"Math", "sqrt"},
	{"Math", "trunc"},

	// The super accessor runtime lives on "$jscomp"
	{"$jscomp", "superGet"},
	{"$jscomp", "superSet"},
}

// Returns the set of property names that must never be renamed. This is
// expensive enough that the result without user-specified names is computed
// once and shared. Callers must not mutate the returned map.
func ProcessReservedProps(userReserved []string) map[string]bool {
	// Optimization: reuse known globals if there are no user-specified names
	hasUserReserved := len(userReserved) != 0
	if !hasUserReserved {
		processedReservedPropsMutex.Lock()
		if processedReservedProps != nil {
			defer processedReservedPropsMutex.Unlock()
			return processedReservedProps
		}
		processedReservedPropsMutex.Unlock()
	}

	result := make(map[string]bool)
	for _, parts := range knownGlobals {
		for _, part := range parts[1:] {
			result[part] = true
		}
	}

	// Then copy the user-specified names in afterwards
	for _, name := range userReserved {
		result[name] = true
	}

	// Potentially cache the result for next time
	if !hasUserReserved {
		processedReservedPropsMutex.Lock()
		defer processedReservedPropsMutex.Unlock()
		if processedReservedProps == nil {
			processedReservedProps = result
		}
		return processedReservedProps
	}
	return result
}
