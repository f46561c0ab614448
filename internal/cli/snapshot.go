package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pilahlab/pilah/internal/kb"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// snapshot is the portable knowledge-base file shape: the rules array
// uses the same field names as the stored rules ("if"/"then").
type snapshot struct {
	Rules []kb.Rule `json:"rules" yaml:"rules"`
	Facts []string  `json:"facts" yaml:"facts"`
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export rules and facts as JSON",
	Long:  "Write the knowledge base as a JSON snapshot. With no argument, writes to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rules, err := db.LoadRules()
	if err != nil {
		return err
	}
	facts, err := db.LoadFacts()
	if err != nil {
		return err
	}

	snap := snapshot{Rules: rules, Facts: facts}
	data, err := json.MarshalIndent(snap, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	fmt.Printf("exported %d rule(s), %d fact(s) to %s\n", len(rules), len(facts), args[0])
	return nil
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import rules and facts from a JSON or YAML snapshot",
	Long:  "Replace the knowledge base with the contents of a snapshot file. YAML is detected by the .yaml/.yml extension; everything else is parsed as JSON. The snapshot is validated in full before anything is persisted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var snap snapshot
	switch strings.ToLower(filepath.Ext(args[0])) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("parse yaml snapshot: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("parse json snapshot: %w", err)
		}
	}

	// Validate everything before touching the database.
	rs, err := kb.NewRuleStoreFrom(snap.Rules)
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	fs, err := kb.NewFactStoreFrom(snap.Facts)
	if err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := db.SaveRules(rs.List()); err != nil {
		return err
	}
	if err := db.SaveFacts(fs.List()); err != nil {
		return err
	}

	fmt.Printf("imported %d rule(s), %d fact(s)\n", rs.Len(), fs.Len())
	return nil
}
