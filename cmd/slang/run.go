package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/slang/api"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run FILE [INPUT...]",
	Short: "Run a program on the given inputs",
	Long: `Run expands the program to the requested degree and runs it. Inputs
are assigned to x1, x2 and so on in order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, driver, _, _, err := load(args[0])
		if err != nil {
			return err
		}

		resp, err := driver.Run(api.RunRequest{
			Program: p,
			Degree:  degree,
			Inputs:  args[1:],
		})
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetTitle(fmt.Sprintf("%s at degree %d", p.Name, resp.Degree))
		t.AppendHeader(table.Row{"Variable", "Value"})
		for _, v := range resp.Variables {
			t.AppendRow(table.Row{v.Name, v.Value})
		}
		t.AppendFooter(table.Row{"Cycles", resp.Cycles})
		t.AppendFooter(table.Row{"Credits", resp.Credits})

		fmt.Fprintln(cmd.OutOrStdout(), t.Render())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
