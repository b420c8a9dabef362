package block

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/adablock/artifact"
	"github.com/jonwraymond/adablock/command"
	"github.com/jonwraymond/adablock/params"
	"github.com/jonwraymond/adablock/project"
	"github.com/jonwraymond/adablock/result"
	"github.com/jonwraymond/adablock/toolchain"
)

// Request is one block submitted by the host.
type Request struct {
	// Source is the Ada source text of the block.
	Source string `json:"source"`

	// Params are the block's header arguments, see package params.
	Params map[string]any `json:"params,omitempty"`
}

// Mode is the pipeline path taken by a run.
type Mode string

// Pipeline modes.
const (
	ModeExecute Mode = "execute"
	ModeProve   Mode = "prove"
)

// Result is the outcome of one run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"runId"`

	// Mode is the pipeline path taken.
	Mode Mode `json:"mode"`

	// Params are the normalized header arguments.
	Params params.Params `json:"params"`

	// Value is the output handed back to the host: the binary's or the
	// verifier's output, or the diagnostics of a failed step.
	Value result.Value `json:"value"`

	// Source is the generated source file.
	Source artifact.Artifact `json:"source"`

	// Descriptor is the generated project file (prove mode only).
	Descriptor *artifact.Artifact `json:"descriptor,omitempty"`

	// Binary is the executable path (execute mode only).
	Binary *artifact.Artifact `json:"binary,omitempty"`

	// Reaped lists stale files removed before compiling.
	Reaped []string `json:"reaped,omitempty"`

	// Invocations lists the commands run, in order.
	Invocations []toolchain.Invocation `json:"invocations,omitempty"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// Error is the toolchain failure that ended the run, if any.
	Error error `json:"-"`
}

// OK returns true if every step of the run succeeded.
func (r Result) OK() bool {
	return r.Error == nil
}

// Executor runs blocks.
//
// Contract:
// - Concurrency: safe for concurrent use as long as concurrent requests do
// not share a unit name; anonymous names never collide.
// - Context: cancellation is passed to the running subprocess.
// - Errors: toolchain failures are reported in Result.Error with a nil error;
// params.ErrInvalidParameter, ErrConfiguration and ErrFilesystem are returned.
// - Ownership: the request is read-only; the returned Result is caller-owned.
type Executor struct {
	cfg   Config
	namer *artifact.Namer
}

// New creates an Executor. Returns ErrConfiguration if cfg is invalid.
func New(cfg Config) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	scratch := artifact.Scratch{TempDir: cfg.TempDir, RemoteRoot: cfg.RemoteRoot}
	return &Executor{
		cfg:   cfg,
		namer: artifact.NewNamer(cfg.Counter, scratch),
	}, nil
}

// Config returns the effective configuration, defaults applied.
func (e *Executor) Config() Config {
	return e.cfg
}

// Execute runs one block to completion.
func (e *Executor) Execute(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString(), Mode: ModeExecute}

	p, err := params.Parse(req.Params)
	if err != nil {
		return res, err
	}
	res.Params = p
	if p.Prove {
		res.Mode = ModeProve
	}
	e.debug("block started", "run", res.RunID, "mode", string(res.Mode), "unit", p.Unit)

	src, err := e.namer.MakeTempPath(SourcePrefix, SourceSuffix, artifact.WithUnit(p.Unit))
	if err != nil {
		return res, e.artifactError("naming source", err)
	}
	res.Source = src
	if err := os.WriteFile(src.Path, []byte(req.Source), 0o644); err != nil {
		return res, fmt.Errorf("%w: writing source: %w", ErrFilesystem, err)
	}

	if p.Prove {
		err = e.prove(ctx, &res, p)
	} else {
		err = e.compileAndRun(ctx, &res, p)
	}
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		e.logError("block aborted", "run", res.RunID, "error", err)
		return res, err
	case res.Error != nil:
		e.warn("block failed", "run", res.RunID, "error", res.Error.Error(), "duration", res.Duration)
	default:
		e.info("block finished", "run", res.RunID, "mode", string(res.Mode), "duration", res.Duration)
	}
	return res, nil
}

// compileAndRun reaps stale outputs, compiles the source, and runs the binary.
func (e *Executor) compileAndRun(ctx context.Context, res *Result, p params.Params) error {
	src := res.Source

	// Reap before naming the binary; MakeTempPath creates it empty.
	if p.Unit != "" {
		reaper := artifact.Reaper{Dir: src.Dir, Suffixes: e.cfg.ReapSuffixes}
		removed, err := reaper.ReapUnit(p.Unit)
		res.Reaped = removed
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFilesystem, err)
		}
		if len(removed) > 0 {
			e.debug("reaped stale artifacts", "run", res.RunID, "files", removed)
		}
	}

	bin, err := e.namer.MakeTempPath(BinaryPrefix, "", artifact.WithUnit(p.Unit), artifact.NoSuffix())
	if err != nil {
		return e.artifactError("naming binary", err)
	}
	res.Binary = &bin

	inv, err := command.Compile(e.cfg.CompileCommand, command.CompileOptions{
		Version:       p.EffectiveVersion(e.cfg.DefaultVersion),
		Assertions:    p.Assertions,
		AssertionFlag: e.cfg.AssertionFlag,
	}, bin.Path, src.Path, src.Dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if _, done, err := e.invoke(ctx, res, inv); done {
		return err
	}

	out, done, err := e.invoke(ctx, res, command.RunBinary(bin.Path, src.Dir))
	if done {
		return err
	}
	res.Value = result.MaybeTabulate(out.Combined)
	return nil
}

// prove emits the project file, purges the verifier cache, and runs the
// verifier on the source.
func (e *Executor) prove(ctx context.Context, res *Result, p params.Params) error {
	src := res.Source
	gpr, err := e.namer.MakeTempPath(DescriptorPrefix, DescriptorSuffix)
	if err != nil {
		return e.artifactError("naming project file", err)
	}
	res.Descriptor = &gpr

	desc, err := project.New(gpr.Path, src.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := desc.Write(gpr.Path); err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	purged, err := artifact.Reaper{Dir: src.Dir}.PurgeDir(e.cfg.ProveCacheDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	if purged {
		e.debug("purged verifier cache", "run", res.RunID, "dir", e.cfg.ProveCacheDir)
	}

	inv, err := command.Prove(e.cfg.ProveCommand, command.ProveOptions{
		Mode:  p.Mode,
		Level: p.Level,
	}, gpr.Path, src.Path, src.Dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	out, done, err := e.invoke(ctx, res, inv)
	if done {
		return err
	}
	res.Value = result.MaybeTabulate(out.Combined)
	return nil
}

// invoke runs inv and records it in res. done is true when the run must
// stop: either a toolchain failure, folded into res, or a returned error.
func (e *Executor) invoke(ctx context.Context, res *Result, inv toolchain.Invocation) (out toolchain.Output, done bool, err error) {
	res.Invocations = append(res.Invocations, inv)
	e.debug("invoking toolchain", "run", res.RunID, "command", inv.String(), "dir", inv.Dir)

	out, err = e.cfg.Runner.Run(ctx, inv)
	var tcErr *toolchain.Error
	if errors.As(err, &tcErr) {
		res.Value = result.Value{Text: tcErr.Output}
		res.Error = tcErr
		return out, true, nil
	}
	if err != nil {
		return out, true, err
	}
	return out, false, nil
}

// artifactError classifies a naming failure: an invalid unit name is a
// parameter problem, anything else a filesystem one.
func (e *Executor) artifactError(step string, err error) error {
	if errors.Is(err, artifact.ErrInvalidName) {
		return fmt.Errorf("%w: %s: %w", params.ErrInvalidParameter, step, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrFilesystem, step, err)
}

func (e *Executor) debug(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Debug(msg, args...)
	}
}

func (e *Executor) info(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Info(msg, args...)
	}
}

func (e *Executor) warn(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Warn(msg, args...)
	}
}

func (e *Executor) logError(msg string, args ...any) {
	if e.cfg.Logger != nil {
		e.cfg.Logger.Error(msg, args...)
	}
}
