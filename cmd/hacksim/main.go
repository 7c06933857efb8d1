// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ezrec/hackcpu/cost"
	"github.com/ezrec/hackcpu/cpu"
	"github.com/ezrec/hackcpu/emulator"
	"github.com/ezrec/hackcpu/translate"
)

var f = translate.From

var (
	ErrMemoryRange = errors.New(f("memory range must be START:END within RAM"))
	ErrMaxCycles   = errors.New(f("instruction cap must be positive"))
)

// memoryRange parses START:END (END exclusive).
func memoryRange(text string) (start, end int, err error) {
	lo, hi, ok := strings.Cut(text, ":")
	if !ok {
		err = ErrMemoryRange
		return
	}
	start, err = strconv.Atoi(lo)
	if err == nil {
		end, err = strconv.Atoi(hi)
	}
	if err != nil || start < 0 || end > cpu.RAM_SIZE || start >= end {
		err = ErrMemoryRange
	}
	return
}

// termWidth returns the width of the terminal on w, or 80.
func termWidth(w io.Writer) int {
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		width, _, err := term.GetSize(int(file.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 80
}

// word renders a machine word as a plain signed decimal.
func word(value uint16) string {
	return strconv.Itoa(int(int16(value)))
}

// words renders machine words space separated, without digit grouping.
func words(values []uint16) string {
	text := make([]string, len(values))
	for n, value := range values {
		text[n] = word(value)
	}
	return strings.Join(text, " ")
}

// decimal renders a metric with two fractional digits.
func decimal(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// report prints the final state and metrics of a run. Machine values are
// rendered before translation so the locale never regroups their digits.
func report(w io.Writer, res *emulator.Result, start, end int) {
	tag := "(" + res.Model + "-sim)"
	cells := res.Memory[start:end]
	pc := strconv.FormatUint(uint64(res.Pc), 10)

	if len(cells) <= 8 {
		translate.Fprintf(w, "%s Final A=%s, D=%s, PC=%s, RAM[%s..%s]=[%s]\n",
			tag, word(res.A), word(res.D), pc, strconv.Itoa(start), strconv.Itoa(end-1), words(cells))
	} else {
		translate.Fprintf(w, "%s Final A=%s, D=%s, PC=%s\n",
			tag, word(res.A), word(res.D), pc)
		per_row := max(1, (termWidth(w)-len(tag)-10)/7)
		for n := 0; n < len(cells); n += per_row {
			row := cells[n:min(n+per_row, len(cells))]
			translate.Fprintf(w, "%s RAM[%s]: %s\n", tag, fmt.Sprintf("%5d", start+n), words(row))
		}
	}

	translate.Fprintf(w, "%s Instructions executed: %s\n", tag, strconv.Itoa(res.Instructions))
	if res.Model != (cost.Baseline{}).Name() {
		translate.Fprintf(w, "%s Estimated weighted cycles: %s\n", tag, decimal(res.Cost))
		translate.Fprintf(w, "%s Speedup factor: %sx\n", tag, decimal(res.Speedup()))
	}
	translate.Fprintf(w, "%s Halted: %s\n", tag, res.Reason.String())
}

func newRootCmd() *cobra.Command {
	var model string
	var script string
	var maxCycles int
	var memory string
	var compare bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hacksim [file.hack]",
		Short: "Hack CPU simulator with baseline and NMC cost models",
		Long: `Hacksim runs a Hack binary (one 16 character line of '0' and '1'
per instruction) until it halts, then reports the final registers, a slice
of memory, the instruction count and the weighted cycle cost.

The run halts on an unconditional jump to itself, on a tight loop of one
or two instructions, when the program counter leaves the program, or at
the cycle cap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			start, end, err := memoryRange(memory)
			if err != nil {
				return
			}
			if maxCycles <= 0 {
				err = ErrMaxCycles
				return
			}

			var models []cost.Model
			if len(script) != 0 {
				var sm *cost.Script
				sm, err = cost.LoadScript(script, nil)
				if err != nil {
					return
				}
				models = append(models, sm)
			} else {
				var m cost.Model
				m, err = cost.ByName(model)
				if err != nil {
					return
				}
				models = append(models, m)
			}
			if compare && models[0].Name() != (cost.Baseline{}).Name() {
				models = append([]cost.Model{cost.Baseline{}}, models...)
			}

			cmd.SilenceUsage = true

			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			prog, err := cpu.LoadBinaryFile(args[0])
			if err != nil {
				return
			}

			var results []*emulator.Result
			if len(models) > 1 {
				results, err = emulator.Compare(prog, maxCycles, verbose, models...)
			} else {
				emu := emulator.NewEmulator(models[0])
				emu.Program = prog
				emu.Verbose = verbose
				emu.MaxCycles = maxCycles
				err = emu.Reset()
				if err != nil {
					return
				}
				var res *emulator.Result
				res, err = emu.Run()
				results = append(results, res)
			}
			if err != nil {
				return
			}

			out := cmd.OutOrStdout()
			for _, res := range results {
				report(out, res, start, end)
			}
			if len(results) > 1 && results[len(results)-1].Cost > 0 {
				speedup := results[0].Cost / results[len(results)-1].Cost
				translate.Fprintf(out, "%s vs %s: %sx\n", results[len(results)-1].Model, results[0].Model, decimal(speedup))
			}

			return
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&model, "model", "m", cost.NMC{}.Name(), "cost model: baseline or nmc")
	flags.StringVarP(&script, "cost-script", "s", "", "Starlark cost model script (overrides --model)")
	flags.IntVarP(&maxCycles, "max-cycles", "n", emulator.MAX_CYCLES, "instruction cap")
	flags.StringVar(&memory, "memory", "0:6", "memory slice to report, START:END")
	flags.BoolVarP(&compare, "compare", "c", false, "also run the baseline model, concurrently")
	flags.BoolVarP(&verbose, "verbose", "v", false, "trace every instruction")

	return cmd
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
