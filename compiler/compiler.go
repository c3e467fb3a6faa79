// Package compiler runs the semantic checks of a MiniJava program in order and bundles their results for code
// generation.
package compiler

import (
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/xiaobogaga/minijava/ast"
	"github.com/xiaobogaga/minijava/semantic"
	"github.com/xiaobogaga/minijava/symbol"
)

// Check analyses prog. Names in prog must have been normalized by pool. A nil cfg means DefaultConfig, any other cfg
// must pass Validate. The returned error is the first *semantic.Error found; undefined constant results are only
// collected as warnings unless cfg.FailOnUndefinedConstant is set.
func Check(prog *ast.Program, pool *symbol.Pool, cfg *Config) (*Info, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	logger := cfg.logger()
	ts := semantic.NewTypeSystem(semantic.NewStore())
	info := &Info{ts: ts, annotations: semantic.NewAnnotations()}

	if cfg.Builtins {
		err := runPhase(logger, "builtins", func() error {
			return semantic.RegisterBuiltins(ts, pool)
		})
		if err != nil {
			return nil, err
		}
	}
	err = runPhase(logger, "declarations", func() error {
		return semantic.DeclareProgram(ts, pool, prog, semantic.DeclarationOptions{
			EntryPoint:       cfg.EntryPoint,
			ExpectEntryPoint: cfg.ExpectEntryPoint,
		})
	})
	if err != nil {
		return nil, err
	}
	err = runPhase(logger, "analysis", func() error {
		return semantic.Analyze(ts, prog, info.annotations)
	})
	if err != nil {
		return nil, err
	}
	err = runPhase(logger, "entry point arguments", func() error {
		return semantic.CheckEntryPointArgs(prog)
	})
	if err != nil {
		return nil, err
	}
	err = runPhase(logger, "return paths", func() error {
		return semantic.CheckReturnPaths(prog)
	})
	if err != nil {
		return nil, err
	}
	err = runPhase(logger, "literals", func() error {
		return semantic.CheckLiterals(prog)
	})
	if err != nil {
		return nil, err
	}
	info.constants = map[ast.Expr]int64{}
	if cfg.FoldConstants {
		err = runPhase(logger, "constant folding", func() error {
			constants, err := semantic.ExtractConstants(prog, info.foldProblemHandler(cfg.FailOnUndefinedConstant))
			if err != nil {
				return err
			}
			info.constants = constants
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	logger.Info("semantic analysis done",
		"classes", len(ts.Classes()),
		"methods", len(ts.Store().Methods()),
		"constants", len(info.constants),
		"problems", info.problemCount())
	return info, nil
}

func runPhase(logger *slog.Logger, phase string, run func() error) error {
	logger.Info("compiler: start phase", "phase", phase)
	err := run()
	if err != nil {
		logger.Debug("compiler: phase failed", "phase", phase, "err", err)
	}
	return err
}

// foldProblemHandler collects undefined constant results, or stops folding at the first one if fail is set.
func (info *Info) foldProblemHandler(fail bool) semantic.ProblemHandler {
	return func(node ast.Expr) error {
		problem := semantic.UndefinedResultError(node)
		if fail {
			return problem
		}
		info.warnings = multierror.Append(info.warnings, problem)
		return nil
	}
}

func (info *Info) problemCount() int {
	if info.warnings == nil {
		return 0
	}
	return len(info.warnings.Errors)
}
