package api

import "sync"

type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Message struct {
	Text     string
	Location *Location
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type LogLevel uint8

const (
	LogLevelSilent LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

type PropertyRenaming uint8

const (
	PropertyRenamingOff PropertyRenaming = iota
	PropertyRenamingAllUnquoted
)

type Input struct {
	Path     string
	Contents string
}

////////////////////////////////////////////////////////////////////////////////
// Transform API

type TransformOptions struct {
	Color      StderrColor
	ErrorLimit int
	LogLevel   LogLevel

	MinifyWhitespace bool

	// Lower "super.x" in instance members to "$jscomp.superGet" and friends
	LowerSuperAccessors bool

	PropertyRenaming PropertyRenaming
	ReservedProps    []string

	// Not supported together with "LowerSuperAccessors"
	AmbiguateProperties    bool
	DisambiguateProperties bool

	// Declarations of code outside of the compilation. These are processed
	// but not printed, and nothing they mention is ever renamed.
	Externs []Input

	Sourcefile string

	// Leave the "$jscomp" helpers out of the output even when they're used
	OmitRuntime bool

	// Log how long each pass took at the debug level
	Timing bool
}

type TransformResult struct {
	Errors   []Message
	Warnings []Message

	JS []byte

	// Maps original property names to their renamed versions. This is nil
	// unless properties were renamed.
	PropertyMap map[string]string
}

func Transform(input string, options TransformOptions) TransformResult {
	_, result := transformImpl([]Input{{Path: options.Sourcefile, Contents: input}}, options)
	return result
}

////////////////////////////////////////////////////////////////////////////////
// Session API

// A session compiles a set of files once and then recompiles individual
// files as they change. Renamed properties keep their names across updates.
// A session is safe for concurrent use; updates are applied one at a time.
type Session struct {
	mutex    sync.Mutex
	options  TransformOptions
	inputs   []Input
	compiled *compilation
}

func NewSession(inputs []Input, options TransformOptions) (*Session, TransformResult) {
	s := &Session{
		options: options,
		inputs:  append([]Input{}, inputs...),
	}
	var result TransformResult
	s.compiled, result = transformImpl(s.inputs, options)
	return s, result
}

// Replaces the contents of one file, or adds it if the session hasn't seen
// this path yet, and returns the output for the whole session.
func (s *Session) Update(path string, contents string) TransformResult {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.updateImpl(path, contents)
}

func (s *Session) Paths() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	paths := make([]string, len(s.inputs))
	for i, input := range s.inputs {
		paths[i] = input.Path
	}
	return paths
}

// Formats a "TransformResult.PropertyMap" as a JSON object with sorted keys
func PropertyMapJSON(propertyMap map[string]string) []byte {
	return propertyMapJSON(propertyMap)
}
