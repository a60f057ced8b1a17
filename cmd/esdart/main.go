package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/esdart/esdart"
	"github.com/esdart/esdart/internal/logger"
	"github.com/esdart/esdart/pkg/api"
)

// Returned when the build failed and the messages have already been logged
var errBuildFailed = errors.New("build failed")

func main() {
	osArgs := os.Args[1:]
	cmd := newRootCommand()
	cmd.SetArgs(osArgs)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errBuildFailed) {
			logger.PrintErrorToStderr(osArgs, err.Error())
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "esdart [files]",
		Short: "Lower super property accesses in JavaScript classes",
		Long: `Rewrites "super.x" reads and writes inside class instance members into
calls to "$jscomp.superGet" and "$jscomp.superSet", optionally renaming
properties afterward. Input comes from stdin when no files are given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.trace != "" {
				if stop := createTraceFile(os.Args[1:], f.trace); stop != nil {
					defer stop()
				}
			}
			if f.cpuprofile != "" {
				if stop := createCpuprofileFile(os.Args[1:], f.cpuprofile); stop != nil {
					defer stop()
				}
			}
			return runBuild(cmd, f, args)
		},
	}
	f.register(cmd.Flags())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", esdart.Version())
			return err
		},
	}
}

func readInputs(cmd *cobra.Command, args []string) ([]api.Input, error) {
	if len(args) == 0 {
		contents, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []api.Input{{Contents: string(contents)}}, nil
	}

	inputs := make([]api.Input, 0, len(args))
	for _, path := range args {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		inputs = append(inputs, api.Input{Path: path, Contents: string(contents)})
	}
	return inputs, nil
}

func runBuild(cmd *cobra.Command, f *flags, args []string) error {
	options, err := f.toOptions()
	if err != nil {
		return err
	}
	if f.watch && len(args) == 0 {
		return errors.New("--watch needs at least one input file")
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	session, result := api.NewSession(inputs, options)
	if err := writeResult(cmd, f, result); err != nil {
		return err
	}
	if !f.watch {
		if len(result.Errors) > 0 {
			return errBuildFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return session.Watch(ctx, api.WatchOptions{
		Log:   options.LogLevel != api.LogLevelSilent && options.LogLevel <= api.LogLevelInfo,
		Color: options.Color,
		OnRebuild: func(path string, result api.TransformResult) {
			if err := writeResult(cmd, f, result); err != nil {
				logger.PrintErrorToStderr(os.Args[1:], err.Error())
			}
		},
	})
}

// Failed builds write nothing so a previous good output stays in place
func writeResult(cmd *cobra.Command, f *flags, result api.TransformResult) error {
	if len(result.Errors) > 0 {
		return nil
	}

	if f.outfile == "" {
		if _, err := cmd.OutOrStdout().Write(result.JS); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if err := os.WriteFile(f.outfile, result.JS, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if f.propertyMap != "" {
		if err := os.WriteFile(f.propertyMap, api.PropertyMapJSON(result.PropertyMap), 0644); err != nil {
			return fmt.Errorf("failed to write property map: %w", err)
		}
	}
	return nil
}
