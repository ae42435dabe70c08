package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cstlint/internal/trace"
)

var activeTrace struct {
	tracer    trace.Tracer
	root      *trace.Span
	heartbeat *trace.Heartbeat
}

func registerTraceFlags(flags *pflag.FlagSet) {
	flags.String("trace", "", "write trace events to this file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring buffer")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 = off)")
}

// setupTracing builds the tracer from the root flags, attaches it to the
// command context and opens the driver span every pass nests under.
func setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	output, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := flags.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	interval, err := flags.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace alone implies phase level
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx, root := trace.Start(trace.WithTracer(cmd.Context(), tracer), trace.ScopeDriver, "cstlint "+cmd.Name())
	cmd.SetContext(ctx)

	activeTrace.tracer = tracer
	activeTrace.root = root
	if interval > 0 {
		activeTrace.heartbeat = trace.StartHeartbeat(tracer, interval)
	}
	return nil
}

// finishTracing closes the driver span and the tracer. After a run that
// failed with runErr the ring buffer, if any, is dumped to stderr.
func finishTracing(runErr error) {
	t := activeTrace.tracer
	if t == nil {
		return
	}
	if activeTrace.heartbeat != nil {
		activeTrace.heartbeat.Stop()
	}
	activeTrace.root.EndErr(runErr)

	if runErr != nil {
		if dumped, err := trace.DumpRing(t, os.Stderr, runErr); err != nil {
			fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
		} else if dumped {
			fmt.Fprintln(os.Stderr, "trace: ring buffer dumped above")
		}
	}
	if err := t.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
	}
	if err := t.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
	}
	activeTrace.tracer = nil
}
