package cli

import (
	"fmt"
	"strings"

	"github.com/pilahlab/pilah/internal/engine"
	"github.com/pilahlab/pilah/internal/kb"
	"github.com/spf13/cobra"
)

var inferCmd = &cobra.Command{
	Use:   "infer [facts]",
	Short: "Run forward chaining and classify the result",
	Long:  "Run the inference engine over the stored rules. Initial facts are given as a comma-separated argument (e.g. \"a,b,c\"); with no argument the stored fact set is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfer,
}

func runInfer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rules, err := db.LoadRules()
	if err != nil {
		return err
	}

	var initial []string
	if len(args) > 0 {
		initial = kb.SplitTokens(args[0])
	} else {
		initial, err = db.LoadFacts()
		if err != nil {
			return err
		}
	}

	if len(rules) == 0 || len(initial) == 0 {
		fmt.Println("Nothing to infer: need at least one rule and one fact.")
		return nil
	}

	result := engine.Run(rules, initial)

	for _, e := range result.Trace {
		fmt.Printf("Step %d: %s fired (IF %s) → %s\n",
			e.Step, e.RuleID, strings.Join(e.Conditions, ","), e.Conclusion)
	}
	if !result.Fired() {
		fmt.Println("No rule fired.")
	}

	fmt.Println()
	fmt.Printf("Initial facts: %s\n", strings.Join(result.Initial, ", "))
	if len(result.Derived) > 0 {
		fmt.Printf("New facts:     %s\n", strings.Join(result.Derived, ", "))
	}
	fmt.Printf("Category:      %s\n", engine.Classify(result.Inferred))
	return nil
}
