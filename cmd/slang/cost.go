package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/verify"
	"github.com/spf13/cobra"
)

var costCmd = &cobra.Command{
	Use:   "cost FILE",
	Short: "List the declared cost of every expansion degree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, reg, _, err := load(args[0])
		if err != nil {
			return err
		}

		costs, err := verify.CostByDegree(p, reg)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetTitle(fmt.Sprintf("%s (requires %s)", p.Name, config.Requirement(p)))
		t.AppendHeader(table.Row{"Degree", "Instructions", "Cycles"})
		for _, c := range costs {
			t.AppendRow(table.Row{c.Degree, c.Instructions, c.Cycles})
		}

		credits := table.Row{"Credits"}
		for _, a := range config.Architectures {
			if a < config.Requirement(p) {
				continue
			}
			credits = append(credits, fmt.Sprintf("%s: %d", a, verify.CreditCost(p, a)))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t.Render())
		fmt.Fprintln(out, credits...)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(costCmd)
}
