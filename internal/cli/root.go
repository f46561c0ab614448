package cli

import (
	"os"

	"github.com/pilahlab/pilah/internal/kb"
	"github.com/pilahlab/pilah/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pilah",
	Short: "Forward-chaining expert system for waste classification",
	Long:  "Pilah stores IF/THEN production rules and known facts, derives new facts by forward chaining, and classifies the result as organik, anorganik, or b3. Single Go binary.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ruleCmd)
	rootCmd.AddCommand(factCmd)
	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// loadRuleStore materializes the persisted rules into a validated store.
func loadRuleStore(db *store.DB) (*kb.RuleStore, error) {
	rules, err := db.LoadRules()
	if err != nil {
		return nil, err
	}
	return kb.NewRuleStoreFrom(rules)
}

// loadFactStore materializes the persisted facts into a validated store.
func loadFactStore(db *store.DB) (*kb.FactStore, error) {
	facts, err := db.LoadFacts()
	if err != nil {
		return nil, err
	}
	return kb.NewFactStoreFrom(facts)
}

// openDB is a helper that opens the database for CLI commands.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("PILAH_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}
