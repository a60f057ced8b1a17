package logger

// Logging is designed to look and feel like clang's error format. Each message
// with a location contains the contents of the line it refers to, and the
// error count printed to the terminal is limited by default.

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Info
	Debug
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Debug:
		return "debug"
	default:
		panic("Internal error")
	}
}

type Msg struct {
	Kind     MsgKind
	Text     string
	Location *MsgLocation
}

type MsgLocation struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Loc struct {
	// This is the 0-based index of this location from the start of the file, in bytes
	Start int32
}

type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 {
	return r.Loc.Start + r.Len
}

type Source struct {
	Index uint32

	// This is used for error messages. It's the path the user passed in, or
	// "<stdin>" when the input didn't come from a file.
	PrettyPath string

	Contents string
}

func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start : r.Loc.Start+r.Len]
}

// This type is just so we can use Go's native sort function
type msgsArray []Msg

func (a msgsArray) Len() int          { return len(a) }
func (a msgsArray) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a msgsArray) Less(i int, j int) bool {
	li := a[i].Location
	lj := a[j].Location

	if li == nil || lj == nil {
		return li == nil && lj != nil
	}
	if li.File != lj.File {
		return li.File < lj.File
	}
	if li.Line != lj.Line {
		return li.Line < lj.Line
	}
	if li.Column != lj.Column {
		return li.Column < lj.Column
	}
	return a[i].Kind < a[j].Kind
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
}

type Colors struct {
	Reset     string
	Bold      string
	Dim       string
	Underline string

	Red     string
	Green   string
	Blue    string
	Magenta string
}

var TerminalColors = Colors{
	Reset:     "\033[0m",
	Bold:      "\033[1m",
	Dim:       "\033[37m",
	Underline: "\033[4m",

	Red:     "\033[31m",
	Green:   "\033[32m",
	Blue:    "\033[34m",
	Magenta: "\033[35m",
}

func hasNoColorEnvironmentVariable() bool {
	// https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return false
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type StderrOptions struct {
	IncludeSource bool
	ErrorLimit    int
	Color         StderrColor
	LogLevel      LogLevel
}

func plural(prefix string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, prefix)
	}
	return fmt.Sprintf("%d %ss", count, prefix)
}

func errorAndWarningSummary(errors int, warnings int) string {
	switch {
	case errors == 0:
		return plural("warning", warnings)
	case warnings == 0:
		return plural("error", errors)
	default:
		return fmt.Sprintf("%s and %s",
			plural("warning", warnings),
			plural("error", errors))
	}
}

func (options StderrOptions) shouldPrint(kind MsgKind) bool {
	switch kind {
	case Error:
		return options.LogLevel <= LevelError
	case Warning:
		return options.LogLevel <= LevelWarning
	case Info:
		return options.LogLevel <= LevelInfo
	default:
		return options.LogLevel == LevelDebug
	}
}

func NewStderrLog(options StderrOptions) Log {
	var mutex sync.Mutex
	var msgs msgsArray
	terminalInfo := GetTerminalInfo(os.Stderr)
	errors := 0
	warnings := 0
	errorLimitWasHit := false

	switch options.Color {
	case ColorNever:
		terminalInfo.UseColorEscapes = false
	case ColorAlways:
		terminalInfo.UseColorEscapes = SupportsColorEscapes
	}

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			msgs = append(msgs, msg)

			// Be silent if we're past the limit so we don't flood the terminal
			if errorLimitWasHit {
				return
			}

			switch msg.Kind {
			case Error:
				errors++
			case Warning:
				warnings++
			}
			if options.shouldPrint(msg.Kind) {
				os.Stderr.WriteString(msg.String(options, terminalInfo))
			}

			// Silence further output if we reached the error limit
			if options.ErrorLimit != 0 && errors >= options.ErrorLimit {
				errorLimitWasHit = true
				if options.LogLevel <= LevelError {
					os.Stderr.WriteString(fmt.Sprintf(
						"%s reached (disable error limit with --error-limit=0)\n", errorAndWarningSummary(errors, warnings)))
				}
			}
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return errors > 0
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()

			// Print out a summary if the error limit wasn't hit
			if !errorLimitWasHit && options.LogLevel <= LevelInfo && (warnings != 0 || errors != 0) {
				os.Stderr.WriteString(fmt.Sprintf("%s\n", errorAndWarningSummary(errors, warnings)))
			}

			sort.Stable(msgs)
			return msgs
		},
	}
}

func PrintErrorToStderr(osArgs []string, text string) {
	options := StderrOptions{IncludeSource: true}

	// Implement a mini argument parser so these options always work even if we
	// haven't yet gotten to the general-purpose argument parsing code
	for _, arg := range osArgs {
		switch arg {
		case "--color=false":
			options.Color = ColorNever
		case "--color=true":
			options.Color = ColorAlways
		case "--log-level=silent":
			options.LogLevel = LevelSilent
		}
	}

	log := NewStderrLog(options)
	log.AddMsg(Msg{Kind: Error, Text: text})
	log.Done()
}

func NewDeferLog() Log {
	var msgs msgsArray
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			return msgs
		},
	}
}

func (msg Msg) String(options StderrOptions, terminalInfo TerminalInfo) string {
	colors := Colors{}
	if terminalInfo.UseColorEscapes {
		colors = TerminalColors
	}

	kindColor := colors.Red
	switch msg.Kind {
	case Warning:
		kindColor = colors.Magenta
	case Info, Debug:
		kindColor = colors.Blue
	}

	if msg.Location == nil {
		return fmt.Sprintf("%s%s%s: %s%s%s\n",
			colors.Bold, kindColor, msg.Kind.String(),
			colors.Reset+colors.Bold, msg.Text,
			colors.Reset)
	}

	if !options.IncludeSource {
		return fmt.Sprintf("%s%s: %s%s: %s%s%s\n",
			colors.Bold, msg.Location.File,
			kindColor, msg.Kind.String(),
			colors.Reset+colors.Bold, msg.Text,
			colors.Reset)
	}

	d := detailStruct(msg, terminalInfo)

	return fmt.Sprintf("%s%s:%d:%d: %s%s: %s%s\n%s%s%s%s%s%s\n%s%s%s%s\n",
		colors.Bold, d.Path, d.Line, d.Column,
		kindColor, d.Kind,
		colors.Reset+colors.Bold, d.Message,
		colors.Reset, d.SourceBefore, colors.Green, d.SourceMarked, colors.Reset, d.SourceAfter,
		colors.Green, d.Indent, d.Marker,
		colors.Reset)
}

type MsgDetail struct {
	Path    string
	Line    int
	Column  int
	Kind    string
	Message string

	// Source == SourceBefore + SourceMarked + SourceAfter
	Source       string
	SourceBefore string
	SourceMarked string
	SourceAfter  string

	Indent string
	Marker string
}

func computeLineAndColumn(contents string, offset int) (lineCount int, columnCount int, lineStart int, lineEnd int) {
	var prevCodePoint rune
	if offset > len(contents) {
		offset = len(contents)
	}

	// Scan up to the offset and count lines
	for i, codePoint := range contents[:offset] {
		switch codePoint {
		case '\n':
			lineStart = i + 1
			if prevCodePoint != '\r' {
				lineCount++
			}
		case '\r':
			lineStart = i + 1
			lineCount++
		case '\u2028', '\u2029':
			lineStart = i + 3 // These take three bytes to encode in UTF-8
			lineCount++
		}
		prevCodePoint = codePoint
	}

	// Scan to the end of the line (or end of file if this is the last line)
	lineEnd = len(contents)
loop:
	for i, codePoint := range contents[offset:] {
		switch codePoint {
		case '\r', '\n', '\u2028', '\u2029':
			lineEnd = offset + i
			break loop
		}
	}

	columnCount = offset - lineStart
	return
}

func LocationOrNil(source *Source, r Range) *MsgLocation {
	if source == nil {
		return nil
	}

	// Convert the index into a line and column number
	lineCount, columnCount, lineStart, lineEnd := computeLineAndColumn(source.Contents, int(r.Loc.Start))

	return &MsgLocation{
		File:     source.PrettyPath,
		Line:     lineCount + 1, // 0-based to 1-based
		Column:   columnCount,
		Length:   int(r.Len),
		LineText: source.Contents[lineStart:lineEnd],
	}
}

func detailStruct(msg Msg, terminalInfo TerminalInfo) MsgDetail {
	loc := *msg.Location
	lineText := strings.ReplaceAll(loc.LineText, "\t", "  ")
	indent := strings.Repeat(" ", len(strings.ReplaceAll(loc.LineText[:clamp(loc.Column, 0, len(loc.LineText))], "\t", "  ")))

	markerStart := len(indent)
	markerEnd := markerStart + loc.Length
	if markerEnd > len(lineText) {
		markerEnd = len(lineText)
	}
	if markerStart > len(lineText) {
		markerStart = len(lineText)
	}
	if markerEnd < markerStart {
		markerEnd = markerStart
	}

	// Trim the line to fit the terminal width
	width := terminalInfo.Width
	if width < 1 {
		width = 80
	}
	if cut := markerStart - width/2; len(lineText) > width && cut > 0 && cut+3 < len(lineText) {
		lineText = "..." + lineText[cut+3:]
		markerStart -= cut
		markerEnd -= cut
		indent = strings.Repeat(" ", markerStart)
	}

	marker := "^"
	if markerEnd-markerStart > 1 {
		marker = strings.Repeat("~", markerEnd-markerStart)
	}

	return MsgDetail{
		Path:    loc.File,
		Line:    loc.Line,
		Column:  loc.Column,
		Kind:    msg.Kind.String(),
		Message: msg.Text,

		Source:       lineText,
		SourceBefore: lineText[:markerStart],
		SourceMarked: lineText[markerStart:markerEnd],
		SourceAfter:  lineText[markerEnd:],

		Indent: indent,
		Marker: marker,
	}
}

func clamp(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func (log Log) AddError(source *Source, loc Loc, text string) {
	log.AddMsg(Msg{
		Kind:     Error,
		Text:     text,
		Location: LocationOrNil(source, Range{Loc: loc}),
	})
}

func (log Log) AddWarning(source *Source, loc Loc, text string) {
	log.AddMsg(Msg{
		Kind:     Warning,
		Text:     text,
		Location: LocationOrNil(source, Range{Loc: loc}),
	})
}

func (log Log) AddRangeError(source *Source, r Range, text string) {
	log.AddMsg(Msg{
		Kind:     Error,
		Text:     text,
		Location: LocationOrNil(source, r),
	})
}

func (log Log) AddDebug(source *Source, loc Loc, text string) {
	log.AddMsg(Msg{
		Kind:     Debug,
		Text:     text,
		Location: LocationOrNil(source, Range{Loc: loc}),
	})
}
