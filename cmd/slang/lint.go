package main

import (
	"errors"

	"github.com/sarchlab/slang/api"
	"github.com/sarchlab/slang/verify"
	"github.com/spf13/cobra"
)

var lintReport string

var lintCmd = &cobra.Command{
	Use:   "lint FILE [INPUT...]",
	Short: "Check a program and print a verification report",
	Long: `Lint checks the calls, architecture requirements and control flow of
a program, lists its cost at every degree and runs it once on the given
inputs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, reg, arch, err := load(args[0])
		if err != nil {
			return err
		}

		inputs, err := api.ParseInputs(args[1:])
		if err != nil {
			return err
		}

		report := verify.GenerateReport(p, reg, arch, inputs, maxSteps)
		report.WriteReport(cmd.OutOrStdout())

		if lintReport != "" {
			if err := report.SaveReportToFile(lintReport); err != nil {
				return err
			}
		}

		if !report.Passed() {
			return errors.New("verification failed")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintReport, "output", "o", "",
		"Also write the report to this file")
}
