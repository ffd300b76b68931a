package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/sarchlab/slang/api"
	"github.com/sarchlab/slang/core"
	"github.com/spf13/cobra"
)

const debugHelp = `Commands:
  step, s          execute the next instruction
  continue, c      run to the next breakpoint or to the end
  break, b N       pause before instruction N
  clear N          remove the breakpoint at instruction N
  list, l          show the program
  state            show the variables
  trace            show the executed instructions
  stop             end the run
  quit, q          leave the debugger`

var debugBreakpoints []int

var debugCmd = &cobra.Command{
	Use:   "debug FILE [INPUT...]",
	Short: "Step through a program interactively",
	Long: `Debug maps the program expanded to the requested degree onto a core
and starts an interactive prompt. Instruction numbers start at 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, driver, _, _, err := load(args[0])
		if err != nil {
			return err
		}

		var breakpoints []int
		for _, n := range debugBreakpoints {
			breakpoints = append(breakpoints, n-1)
		}

		s, err := driver.Debug(api.DebugRequest{
			Program:     p,
			Degree:      degree,
			Inputs:      args[1:],
			Breakpoints: breakpoints,
		})
		if err != nil {
			return err
		}

		return debugLoop(s, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)

	debugCmd.Flags().IntSliceVarP(&debugBreakpoints, "break", "b", nil,
		"Instruction numbers to pause at")
}

func debugLoop(s *api.DebugSession, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	fmt.Fprintln(out, core.RenderProgram(s.Program()))
	printState(out, s.State())

	for {
		line, err := ln.Prompt("(slang) ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		ln.AppendHistory(line)

		quit, err := debugCommand(s, out, fields)
		if err != nil {
			fmt.Fprintln(out, err)
		}
		if quit {
			return nil
		}
	}
}

func debugCommand(s *api.DebugSession, out io.Writer, fields []string) (bool, error) {
	switch fields[0] {
	case "step", "s":
		state, err := s.Step()
		printState(out, state)
		return false, err
	case "continue", "c":
		state, err := s.Continue()
		printState(out, state)
		return false, err
	case "break", "b":
		idx, err := instructionNumber(fields)
		if err != nil {
			return false, err
		}
		return false, s.SetBreakpoint(idx)
	case "clear":
		idx, err := instructionNumber(fields)
		if err != nil {
			return false, err
		}
		s.ClearBreakpoint(idx)
	case "list", "l":
		fmt.Fprintln(out, core.RenderProgram(s.Program()))
		fmt.Fprintln(out, "Breakpoints:", displayNumbers(s.Breakpoints()))
	case "state":
		printVariables(out, s.State())
	case "trace":
		printTrace(out, s.Trace())
	case "stop":
		printState(out, s.Stop())
	case "quit", "q", "exit":
		return true, nil
	case "help", "h":
		fmt.Fprintln(out, debugHelp)
	default:
		return false, fmt.Errorf("unknown command %q, type help", fields[0])
	}

	return false, nil
}

func instructionNumber(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("%s needs an instruction number", fields[0])
	}

	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad instruction number %q", fields[1])
	}

	return n - 1, nil
}

func displayNumbers(indices []int) []int {
	numbers := make([]int, 0, len(indices))
	for _, idx := range indices {
		numbers = append(numbers, idx+1)
	}
	return numbers
}

func printState(out io.Writer, state api.DebugState) {
	switch {
	case state.Err != nil:
		fmt.Fprintf(out, "fault: %v\n", state.Err)
	case state.Halted:
		fmt.Fprintf(out, "halted after %d steps, %d cycles\n", state.Steps, state.Cycles)
		printVariables(out, state)
	case state.Stopped:
		fmt.Fprintln(out, "stopped")
	default:
		fmt.Fprintf(out, "#%d %s\n", state.PC+1, state.Next)
	}
}

func printVariables(out io.Writer, state api.DebugState) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Variable", "Value"})
	for _, v := range state.Variables {
		t.AppendRow(table.Row{v.Name, v.Value})
	}
	fmt.Fprintln(out, t.Render())
}

func printTrace(out io.Writer, steps []core.StepRecord) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Step", "#", "Instruction", "Next", "Cycles"})
	for i, r := range steps {
		t.AppendRow(table.Row{i + 1, r.PC + 1, r.Inst.String(), r.Next + 1, r.Cycles})
	}
	fmt.Fprintln(out, t.Render())
}
