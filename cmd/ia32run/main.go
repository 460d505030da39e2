package main

import (
	"fmt"
	"os"

	"github.com/oisee/ia32run/internal/asm"
	"github.com/oisee/ia32run/internal/config"
	"github.com/oisee/ia32run/pkg/cpu"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "ia32run <source.asm>",
		Short: "Execute a NASM-style assembly program against an IA-32 execution core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.SourcePath = args[0]
			return run(cfg)
		},
	}

	rootCmd.Flags().BoolVar(&cfg.Trace, "trace", false, "print register/flags state after every instruction")
	rootCmd.Flags().IntVar(&cfg.MaxSteps, "max-steps", 0, "abort after this many instructions (0 = unbounded)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	source, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return errors.Wrapf(err, "reading %s", cfg.SourcePath)
	}

	instructions, err := asm.Parse(string(source))
	if err != nil {
		return errors.Wrap(err, "parsing assembly source")
	}

	c := cpu.New()
	for i, ins := range instructions {
		if cfg.MaxSteps > 0 && i >= cfg.MaxSteps {
			return errors.Errorf("aborted after %d instructions (--max-steps)", cfg.MaxSteps)
		}
		if err := c.Exec(ins); err != nil {
			return errors.Wrapf(err, "instruction %d", i+1)
		}
		if cfg.Trace {
			fmt.Fprintf(os.Stderr, "%4d: %s\n", i+1, c.Snapshot())
		}
	}

	fmt.Println(c.Snapshot())
	return nil
}
