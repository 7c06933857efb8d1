// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"cmp"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/hackcpu/cpu"
	"github.com/ezrec/hackcpu/translate"
)

type symbol struct {
	Name    string
	Address int
}

func newRootCmd() *cobra.Command {
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hackasm [file.asm]",
		Short: "Hack assembler",
		Long: `Hackasm translates Hack assembly into the textual binary format
read by hacksim. The output is written next to the source, with the .hack
extension, unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			source := args[0]
			_, err = cpu.BinaryPath(source)
			if err != nil {
				return
			}

			cmd.SilenceUsage = true

			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			asm := &cpu.Assembler{Verbose: verbose}
			prog, path, err := asm.AssembleFile(source, output)
			if err != nil {
				return
			}

			if verbose {
				var symbols []symbol
				for name, address := range asm.Symbols() {
					symbols = append(symbols, symbol{Name: name, Address: address})
				}
				slices.SortFunc(symbols, func(a, b symbol) int {
					return cmp.Or(cmp.Compare(a.Address, b.Address), strings.Compare(a.Name, b.Name))
				})
				pp.Fprintf(cmd.ErrOrStderr(), "Symbols: %v\n", symbols)
			}

			translate.Fprintf(cmd.OutOrStdout(), "Assembled %s instructions to %s\n", strconv.Itoa(prog.Len()), path)
			return
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output file (default: sibling .hack file)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "trace each line and dump the symbol table")

	return cmd
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
