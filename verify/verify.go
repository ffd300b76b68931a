// Package verify provides static checks and cost accounting for S-language
// programs.
//
// This package implements three complementary stages:
//
// 1. Static Lint (lint.go): structural, architecture and flow checks
//   - STRUCT checks: unknown functions, cyclic calls, surplus arguments
//   - ARCH checks: instructions the selected architecture cannot execute
//   - FLOW checks: unreachable instructions and labels nothing jumps to
//
// 2. Cost Calculator (cost.go): declared cycles of a program at every
// expansion degree, the fully expanded cost and the credit cost
//
// 3. Reference Run: the program is run on sample inputs with a step limit
// so that a report can show whether it halts and what it computes
//
// # Costs
//
// The static cost of a program at degree d is the sum of the declared
// cycles of its d-th expansion. Quotation instructions count only their
// base cost statically; their callee is accounted for once the quotation
// is inlined. The credit cost is the static cost at degree 0 plus the
// surcharge of the architecture:
//
//	I: 5    II: 100    III: 500    IV: 1000
//
// # Usage Example
//
//	main, reg, err := core.LoadProgramFile("addition.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	issues := verify.RunLint(main, reg, config.ArchitectureIV)
//	for _, issue := range issues {
//	    log.Printf("[%s] #%d: %s", issue.Type, issue.Index+1, issue.Message)
//	}
//
//	report := verify.GenerateReport(main, reg, config.ArchitectureIV,
//	    []uint64{3, 4}, 100000)
//	report.WriteReport(os.Stdout)
//
// # Limitations
//
// - Lint does not decide termination; the reference run bounds it instead
// - Dynamic cost depends on inputs and is only known from a run
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Unresolvable or inconsistent program structure
	IssueArch   IssueType = "ARCH"   // Instruction above the selected architecture
	IssueFlow   IssueType = "FLOW"   // Dead code or unused labels
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT, ARCH or FLOW
	Program string                 // Program or function the issue is in
	Index   int                    // Instruction index or -1
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
