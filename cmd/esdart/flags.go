package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/esdart/esdart"
	"github.com/esdart/esdart/internal/config"
	"github.com/esdart/esdart/pkg/api"
)

type flags struct {
	lowerSuper       bool
	propertyRenaming string
	reserveProps     []string
	externs          []string
	ambiguate        bool
	disambiguate     bool
	minifyWhitespace bool
	omitRuntime      bool

	outfile     string
	propertyMap string
	sourcefile  string

	logLevel   string
	color      string
	errorLimit int
	timing     bool

	watch          bool
	requireVersion string

	trace      string
	cpuprofile string
}

func (f *flags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.lowerSuper, "lower-super", true, "rewrite super property accesses in instance members into runtime helper calls")
	fs.StringVar(&f.propertyRenaming, "property-renaming", "off", "property renaming policy (off or all-unquoted)")
	fs.StringSliceVar(&f.reserveProps, "reserve-props", nil, "property names that are never renamed")
	fs.StringSliceVar(&f.externs, "externs", nil, "files declaring code outside of the compilation")
	fs.BoolVar(&f.ambiguate, "ambiguate-properties", false, "enable type-based property ambiguation")
	fs.BoolVar(&f.disambiguate, "disambiguate-properties", false, "enable type-based property disambiguation")
	fs.BoolVar(&f.minifyWhitespace, "minify-whitespace", false, "remove whitespace")
	fs.BoolVar(&f.omitRuntime, "omit-runtime", false, "leave the runtime helpers out of the output")

	fs.StringVar(&f.outfile, "outfile", "", "write the output to this file instead of stdout")
	fs.StringVar(&f.propertyMap, "property-map", "", "write renamed properties to this file as JSON")
	fs.StringVar(&f.sourcefile, "sourcefile", "", "the name to use in messages for stdin")

	fs.StringVar(&f.logLevel, "log-level", "info", "logging level (debug, info, warning, error, silent)")
	fs.StringVar(&f.color, "color", "", "force use of color terminal escapes (true or false)")
	fs.IntVar(&f.errorLimit, "error-limit", 10, "maximum error count or 0 to disable")
	fs.BoolVar(&f.timing, "timing", false, "log how long each pass takes at the debug level")

	fs.BoolVar(&f.watch, "watch", false, "rebuild when input files change")
	fs.StringVar(&f.requireVersion, "require-version", "", "fail unless this version satisfies a constraint such as \">= 0.3\"")

	fs.StringVar(&f.trace, "trace", "", "write a runtime trace to this file")
	fs.StringVar(&f.cpuprofile, "cpuprofile", "", "write a CPU profile to this file")
}

func parseLogLevel(text string) (api.LogLevel, error) {
	switch text {
	case "debug":
		return api.LogLevelDebug, nil
	case "info":
		return api.LogLevelInfo, nil
	case "warning":
		return api.LogLevelWarning, nil
	case "error":
		return api.LogLevelError, nil
	case "silent":
		return api.LogLevelSilent, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (valid values are debug, info, warning, error, and silent)", text)
	}
}

func parseColor(text string) (api.StderrColor, error) {
	switch text {
	case "":
		return api.ColorIfTerminal, nil
	case "true":
		return api.ColorAlways, nil
	case "false":
		return api.ColorNever, nil
	default:
		return 0, fmt.Errorf("invalid value for --color: %q (valid values are true and false)", text)
	}
}

func (f *flags) toOptions() (api.TransformOptions, error) {
	if f.requireVersion != "" {
		if err := esdart.CheckVersion(f.requireVersion); err != nil {
			return api.TransformOptions{}, err
		}
	}

	logLevel, err := parseLogLevel(f.logLevel)
	if err != nil {
		return api.TransformOptions{}, err
	}
	color, err := parseColor(f.color)
	if err != nil {
		return api.TransformOptions{}, err
	}
	renaming, err := config.ParsePropertyRenaming(f.propertyRenaming)
	if err != nil {
		return api.TransformOptions{}, err
	}

	options := api.TransformOptions{
		Color:                  color,
		ErrorLimit:             f.errorLimit,
		LogLevel:               logLevel,
		MinifyWhitespace:       f.minifyWhitespace,
		LowerSuperAccessors:    f.lowerSuper,
		ReservedProps:          f.reserveProps,
		AmbiguateProperties:    f.ambiguate,
		DisambiguateProperties: f.disambiguate,
		Sourcefile:             f.sourcefile,
		OmitRuntime:            f.omitRuntime,
		Timing:                 f.timing,
	}
	switch renaming {
	case config.PropertyRenamingOff:
		options.PropertyRenaming = api.PropertyRenamingOff
	case config.PropertyRenamingAllUnquoted:
		options.PropertyRenaming = api.PropertyRenamingAllUnquoted
	}

	for _, path := range f.externs {
		contents, err := os.ReadFile(path)
		if err != nil {
			return api.TransformOptions{}, fmt.Errorf("failed to read externs: %w", err)
		}
		options.Externs = append(options.Externs, api.Input{Path: path, Contents: string(contents)})
	}
	return options, nil
}
