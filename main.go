// NN-512 (https://NN-512.com)
//
// Copyright (C) 2019 [
//     37ef ced3 3727 60b4
//     3c29 f9c6 dc30 d518
//     f4f3 4106 6964 cab4
//     a06f c1a3 83fd 090e
// ]
//
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions
// are met:
//
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in
//    the documentation and/or other materials provided with the
//    distribution.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nn2go/internal/compile"
	"nn2go/internal/config"
	"nn2go/internal/cpu"
	"nn2go/internal/doc"
	"nn2go/internal/example"
	"nn2go/internal/logging"
	"nn2go/internal/metrics"
	"nn2go/internal/source"
	"nn2go/internal/version"
)

const (
	newline = "\n"
	space   = " "
	indent  = space + space + space + space
)

type env struct {
	stdin          io.Reader
	stdout, stderr io.Writer
}

func cmdCompile(e *env) *cobra.Command {
	v := config.New()
	var configFile string
	cmd := &cobra.Command{
		Use:   "compile MODEL",
		Short: "Read graph language for a neural net and write Go code and a Go test.",
		Long: "Read graph language for a neural net and write Go code and a Go test." + newline +
			newline +
			"The MODEL argument is a file path, - for standard input, or" + newline +
			"s3://bucket/key for an object in an S3 compatible store." + newline +
			newline +
			indent + "Example: mlp.graph" + newline +
			indent + "Example: -" + newline +
			indent + "Example: s3://models/nets/mlp.graph" + newline +
			newline +
			"Two files are written to the output directory: FUNCTION.go" + newline +
			"holds the inference function and FUNCTION_test.go checks it" + newline +
			"against the model on random inputs. Existing files are never" + newline +
			"overwritten. Every flag can also be set with an NN2GO_ variable," + newline +
			"for example NN2GO_EVAL_MODE=float32, or in the config file." + newline +
			newline +
			"The generated code imports the runtime from --runtime, which is" + newline +
			"nn2go/infer by default. That path only resolves inside the nn2go" + newline +
			"module. Elsewhere, copy the infer package into your own module" + newline +
			"and pass its import path, for example --runtime example.com/app/infer." + newline +
			newline +
			"A --tolerance of 0 demands outputs identical to the reference model.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			return runCompile(cmd.Context(), e, cfg, args[0])
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "YAML file of settings")
	flags.String(config.KeyDir, ".", "output directory")
	flags.String(config.KeyFunction, "", "function name (default: the Name of the Config line)")
	flags.String(config.KeyPackage, "", "package name (default: the name of the output directory, or main)")
	flags.Int(config.KeyTests, 10, "number of test cases")
	flags.Float64(config.KeyTolerance, 1e-3, "largest max-abs error that passes")
	flags.Int64(config.KeySeed, 0, "seed of the random test inputs")
	flags.String(config.KeyEvalMode, "float64", "reference arithmetic: float64 or float32")
	flags.String(config.KeyRuntime, "nn2go/infer", "import path of the runtime package")
	flags.String(config.KeyMetricsFile, "", "write metrics to this file in the Prometheus text format")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "console", "console or json")
	must(v.BindPFlags(flags))
	must(v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level")))
	must(v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format")))
	return cmd
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func runCompile(ctx context.Context, e *env, cfg *config.Config, from string) error {
	log, err := logging.New(cfg.Log, e.stderr)
	if err != nil {
		return err
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))
	log.Debug("host", cpu.Host().Fields()...)

	loader := &source.Loader{Stdin: e.stdin, S3: cfg.S3, Log: log}
	text, err := loader.Load(ctx, from)
	if err != nil {
		return err
	}
	rec := metrics.New()
	res, err := compile.Compile(ctx, text, compile.Options{
		Dir:      cfg.Dir,
		Function: cfg.Function,
		Package:  cfg.Package,
		NumTests: cfg.Tests,
		Tol:      &cfg.Tolerance,
		Seed:     cfg.Seed,
		Mode:     cfg.Mode(),
		Runtime:  cfg.Runtime,
		Log:      log,
		Metrics:  rec,
	})
	if err == nil {
		err = compile.Write(res, rec)
	}
	if merr := rec.WriteFile(cfg.MetricsFile); merr != nil {
		log.Warn("metrics not written", zap.Error(merr))
	}
	if err != nil {
		return err
	}
	log.Info("wrote files", zap.String("code", res.CodePath), zap.String("test", res.TestPath))
	_, err = fmt.Fprintln(e.stdout, res.CodePath+newline+res.TestPath)
	return err
}

func cmdDoc(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "doc",
		Short: "Write documentation for the graph language to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := e.stdout.Write(doc.Bytes())
			return err
		},
	}
}

func cmdExample(e *env) *cobra.Command {
	list := strings.Join(example.Names(), newline+indent)
	return &cobra.Command{
		Use:   "example NAME",
		Short: "Write graph language for an example neural net to stdout.",
		Long: "Write graph language for an example neural net to stdout." + newline +
			newline +
			"The NAME argument can be:" + newline +
			newline +
			indent + list,
		Args:      cobra.ExactArgs(1),
		ValidArgs: example.Names(),
		RunE: func(_ *cobra.Command, args []string) error {
			gen := example.Generate(args[0])
			if gen == nil {
				return fmt.Errorf("unknown example %q; the NAME argument can be:%s",
					args[0], newline+indent+list)
			}
			_, err := e.stdout.Write(gen)
			return err
		},
	}
}

func cmdVersion(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Write the version number of this program and the host CPU to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintln(e.stdout, version.String()+newline+cpu.Host().String())
			return err
		},
	}
}

var cmds = [...]func(*env) *cobra.Command{
	cmdCompile,
	cmdDoc,
	cmdExample,
	cmdVersion,
}

func newRoot(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "nn2go",
		Short:         "Compile trained neural nets to Go.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(e.stdin)
	root.SetOut(e.stdout)
	root.SetErr(e.stderr)
	for _, cmd := range &cmds {
		root.AddCommand(cmd(e))
	}
	return root
}

func run(ctx context.Context, e *env, args []string) error {
	root := newRoot(e)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	err := run(ctx, e, os.Args[1:])
	stop()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + newline)
		os.Exit(1)
	}
}
