package main

import (
	"fmt"
	"strings"

	"github.com/sarchlab/slang/api"
	"github.com/spf13/cobra"
)

var viewLineage bool

var viewCmd = &cobra.Command{
	Use:   "view FILE",
	Short: "Show a program expanded to a degree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, driver, _, _, err := load(args[0])
		if err != nil {
			return err
		}

		resp, err := driver.View(api.ViewRequest{Program: p, Degree: degree})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, resp.Table)
		fmt.Fprintf(out, "degree %d of %d, %d cycles\n",
			resp.Degree, resp.MaxDegree, resp.Cycles)

		if !viewLineage {
			return nil
		}

		for _, row := range resp.Rows {
			if len(row.Lineage) == 0 {
				continue
			}
			fmt.Fprintf(out, "#%d %s <<< %s\n",
				row.Index+1, row.Command, strings.Join(row.Lineage, " <<< "))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().BoolVarP(&viewLineage, "lineage", "l", false,
		"Print the chain of instructions each instruction was expanded from")
}
