package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/slang/config"
	"github.com/sarchlab/slang/core"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Program      *core.Program
	Architecture config.Architecture
	Requirement  config.Architecture
	LintIssues   []Issue
	StructIssues []Issue
	ArchIssues   []Issue
	FlowIssues   []Issue
	Costs        []DegreeCost
	CostErr      error
	CreditCost   uint64
	Inputs       []uint64
	RunResult    *core.RunResult
	RunErr       error
	RunOK        bool
}

// GenerateReport runs lint, cost calculation and a reference run on inputs
// bounded by maxSteps, and returns a report.
func GenerateReport(
	p *core.Program,
	reg core.Registry,
	arch config.Architecture,
	inputs []uint64,
	maxSteps uint64,
) *VerificationReport {
	report := &VerificationReport{
		Program:      p,
		Architecture: arch,
		Requirement:  config.Requirement(p),
		CreditCost:   CreditCost(p, arch),
		Inputs:       inputs,
	}

	// Run lint
	report.LintIssues = RunLint(p, reg, arch)

	// Categorize issues
	for _, issue := range report.LintIssues {
		switch issue.Type {
		case IssueStruct:
			report.StructIssues = append(report.StructIssues, issue)
		case IssueArch:
			report.ArchIssues = append(report.ArchIssues, issue)
		default:
			report.FlowIssues = append(report.FlowIssues, issue)
		}
	}

	report.Costs, report.CostErr = CostByDegree(p, reg)

	// Run the program itself
	if len(report.StructIssues) == 0 {
		report.RunResult, report.RunErr = core.NewRunner(reg).
			WithMaxSteps(maxSteps).
			Run(p, inputs)
	} else {
		report.RunErr = fmt.Errorf("skipped because of %d STRUCT issues",
			len(report.StructIssues))
	}
	report.RunOK = report.RunErr == nil

	return report
}

// Passed reports whether the program has no STRUCT or ARCH issues and the
// reference run halted.
func (r *VerificationReport) Passed() bool {
	return len(r.StructIssues) == 0 && len(r.ArchIssues) == 0 && r.RunOK
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "VERIFICATION REPORT: %s\n", r.Program.Name)
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\n%d instructions, architecture %s selected, %s required\n",
		r.Program.Len(), r.Architecture, r.Requirement)

	// STAGE 1: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintf(w, "Found %d lint issues:\n", len(r.LintIssues))
		writeIssues(w, dash, "STRUCT", r.StructIssues)
		writeIssues(w, dash, "ARCH", r.ArchIssues)
		writeIssues(w, dash, "FLOW", r.FlowIssues)
	}

	// STAGE 2: COST
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: COST BY DEGREE")
	fmt.Fprintln(w, separator)

	if r.CostErr != nil {
		fmt.Fprintf(w, "Cost calculation failed: %v\n", r.CostErr)
	} else {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Degree", "Instructions", "Cycles"})
		for _, c := range r.Costs {
			t.AppendRow(table.Row{c.Degree, c.Instructions, c.Cycles})
		}
		fmt.Fprintln(w, t.Render())
	}
	fmt.Fprintf(w, "Credit cost on architecture %s: %d\n", r.Architecture, r.CreditCost)

	// STAGE 3: REFERENCE RUN
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 3: REFERENCE RUN")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Inputs: %v\n", r.Inputs)
	if r.RunOK {
		fmt.Fprintf(w, "y = %d after %d steps, %d cycles\n",
			r.RunResult.Value, r.RunResult.Steps, r.RunResult.Cycles)
	} else {
		fmt.Fprintf(w, "Run failed: %v\n", r.RunErr)
	}

	// SUMMARY
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d ARCH, %d FLOW)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.ArchIssues), len(r.FlowIssues))
	runStatus := "SUCCESS"
	if !r.RunOK {
		runStatus = "FAILED: " + r.RunErr.Error()
	}
	fmt.Fprintf(w, "Run Result: %s\n", runStatus)

	if r.Passed() {
		fmt.Fprintln(w, "PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "PROGRAM FAILED VERIFICATION")
	}

	fmt.Fprintln(w)
}

func writeIssues(w io.Writer, dash, title string, issues []Issue) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s ISSUES (%d):\n", title, len(issues))
	fmt.Fprintln(w, dash)
	for _, issue := range issues {
		if issue.Index < 0 {
			fmt.Fprintf(w, "  [%s] %s\n", issue.Program, issue.Message)
		} else {
			fmt.Fprintf(w, "  [%s #%d] %s\n", issue.Program, issue.Index+1, issue.Message)
		}
	}
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
