package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var factCmd = &cobra.Command{
	Use:   "fact",
	Short: "Manage known facts",
}

var factAddCmd = &cobra.Command{
	Use:   "add [fact]...",
	Short: "Add one or more facts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFactAdd,
}

func runFactAdd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	fs, err := loadFactStore(db)
	if err != nil {
		return err
	}
	for _, f := range args {
		if err := fs.Add(f); err != nil {
			return err
		}
	}
	if err := db.SaveFacts(fs.List()); err != nil {
		return err
	}

	fmt.Printf("added %d fact(s)\n", len(args))
	return nil
}

var factRemoveCmd = &cobra.Command{
	Use:   "remove [fact]",
	Short: "Remove a fact",
	Args:  cobra.ExactArgs(1),
	RunE:  runFactRemove,
}

func runFactRemove(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	fs, err := loadFactStore(db)
	if err != nil {
		return err
	}
	if err := fs.Remove(args[0]); err != nil {
		return err
	}
	if err := db.SaveFacts(fs.List()); err != nil {
		return err
	}

	fmt.Printf("removed %s\n", args[0])
	return nil
}

var factListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known facts",
	RunE:  runFactList,
}

func runFactList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	facts, err := db.LoadFacts()
	if err != nil {
		return err
	}
	if len(facts) == 0 {
		fmt.Println("No facts stored.")
		return nil
	}
	for _, f := range facts {
		fmt.Println(f)
	}
	return nil
}

func init() {
	factCmd.AddCommand(factAddCmd)
	factCmd.AddCommand(factRemoveCmd)
	factCmd.AddCommand(factListCmd)
}
