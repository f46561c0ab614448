package cli

import (
	"fmt"
	"strings"

	"github.com/pilahlab/pilah/internal/kb"
	"github.com/spf13/cobra"
)

var ruleCmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage production rules",
}

var (
	ruleAddID       string
	ruleAddIf       string
	ruleAddThen     string
	ruleAddPriority string
	ruleAddDesc     string
)

var ruleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a rule",
	Long:  "Add an IF/THEN rule. Conditions are comma-separated tokens; the id is generated (R<n>) when omitted.",
	RunE:  runRuleAdd,
}

func runRuleAdd(cmd *cobra.Command, args []string) error {
	priority := 0
	if ruleAddPriority != "" {
		var err error
		priority, err = kb.ParsePriority(ruleAddPriority)
		if err != nil {
			return err
		}
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rs, err := loadRuleStore(db)
	if err != nil {
		return err
	}

	id := strings.TrimSpace(ruleAddID)
	if id == "" {
		id = rs.NextID()
	}

	rule := kb.Rule{
		ID:          id,
		Conditions:  strings.Split(ruleAddIf, ","),
		Conclusion:  ruleAddThen,
		Priority:    priority,
		Description: ruleAddDesc,
	}
	if err := rs.Add(rule); err != nil {
		return err
	}
	if err := db.SaveRules(rs.List()); err != nil {
		return err
	}

	stored, _ := rs.Get(id)
	fmt.Printf("added %s: IF %s THEN %s (priority %d)\n",
		stored.ID, strings.Join(stored.Conditions, ","), stored.Conclusion, stored.Priority)
	return nil
}

var ruleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rules in evaluation order",
	RunE:  runRuleList,
}

func runRuleList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rules, err := db.LoadRules()
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Println("No rules stored.")
		return nil
	}

	for _, r := range rules {
		line := fmt.Sprintf("%s [%d]: IF %s THEN %s",
			r.ID, r.Priority, strings.Join(r.Conditions, ","), r.Conclusion)
		if r.Description != "" {
			line += " — " + r.Description
		}
		fmt.Println(line)
	}
	return nil
}

var (
	ruleUpdateIf       string
	ruleUpdateThen     string
	ruleUpdatePriority string
	ruleUpdateDesc     string
)

var ruleUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update fields of an existing rule",
	Long:  "Update a rule in place. Only the flags you pass are changed; the update is rejected as a whole if any new value is invalid.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleUpdate,
}

func runRuleUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]

	var update kb.RuleUpdate
	if cmd.Flags().Changed("if") {
		update.Conditions = strings.Split(ruleUpdateIf, ",")
	}
	if cmd.Flags().Changed("then") {
		update.Conclusion = &ruleUpdateThen
	}
	if cmd.Flags().Changed("priority") {
		p, err := kb.ParsePriority(ruleUpdatePriority)
		if err != nil {
			return err
		}
		update.Priority = &p
	}
	if cmd.Flags().Changed("desc") {
		update.Description = &ruleUpdateDesc
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rs, err := loadRuleStore(db)
	if err != nil {
		return err
	}
	if err := rs.Update(id, update); err != nil {
		return err
	}
	if err := db.SaveRules(rs.List()); err != nil {
		return err
	}

	fmt.Printf("updated %s\n", id)
	return nil
}

var ruleDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuleDelete,
}

func runRuleDelete(cmd *cobra.Command, args []string) error {
	id := args[0]

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rs, err := loadRuleStore(db)
	if err != nil {
		return err
	}
	if err := rs.Delete(id); err != nil {
		return err
	}
	if err := db.SaveRules(rs.List()); err != nil {
		return err
	}

	fmt.Printf("deleted %s\n", id)
	return nil
}

func init() {
	ruleCmd.AddCommand(ruleAddCmd)
	ruleCmd.AddCommand(ruleListCmd)
	ruleCmd.AddCommand(ruleUpdateCmd)
	ruleCmd.AddCommand(ruleDeleteCmd)

	ruleAddCmd.Flags().StringVar(&ruleAddID, "id", "", "Rule id (generated when omitted)")
	ruleAddCmd.Flags().StringVar(&ruleAddIf, "if", "", "Comma-separated condition tokens")
	ruleAddCmd.Flags().StringVar(&ruleAddThen, "then", "", "Conclusion token")
	ruleAddCmd.Flags().StringVar(&ruleAddPriority, "priority", "", "Priority (integer, higher fires first)")
	ruleAddCmd.Flags().StringVar(&ruleAddDesc, "desc", "", "Optional description")
	ruleAddCmd.MarkFlagRequired("if")
	ruleAddCmd.MarkFlagRequired("then")

	ruleUpdateCmd.Flags().StringVar(&ruleUpdateIf, "if", "", "New comma-separated condition tokens")
	ruleUpdateCmd.Flags().StringVar(&ruleUpdateThen, "then", "", "New conclusion token")
	ruleUpdateCmd.Flags().StringVar(&ruleUpdatePriority, "priority", "", "New priority (integer)")
	ruleUpdateCmd.Flags().StringVar(&ruleUpdateDesc, "desc", "", "New description")
}
