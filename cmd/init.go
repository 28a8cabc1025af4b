package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/specdraw/internal/config"
	"github.com/chriserin/specdraw/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize specdraw in the current directory",
	// init writes the config file, so it must not require one.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	defaults := config.Defaults()

	// config file
	if _, err := os.Stat(config.DefaultFile); err == nil {
		fmt.Fprintf(w, "%s already exists\n", config.DefaultFile)
	} else {
		out, err := yaml.Marshal(defaults)
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		if err := os.WriteFile(config.DefaultFile, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", config.DefaultFile, err)
		}
		fmt.Fprintf(w, "%s created\n", config.DefaultFile)
	}

	// database
	_, err := os.Stat(defaults.DBPath)
	dbExists := err == nil
	sqlDB, err := db.Open(defaults.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", defaults.DBPath)
	} else {
		fmt.Fprintf(w, "%s created\n", defaults.DBPath)
	}

	// gitignore
	msgs, err := ensureGitignore(defaults.DBPath, ".env")
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entries ...string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	created := os.IsNotExist(err)

	present := map[string]bool{}
	for _, line := range strings.Split(string(data), "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var msgs []string
	if created {
		msgs = append(msgs, ".gitignore created")
	}
	content := string(data)
	for _, entry := range entries {
		if present[entry] {
			msgs = append(msgs, entry+" already in .gitignore")
			continue
		}
		if len(content) > 0 && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += entry + "\n"
		msgs = append(msgs, entry+" added to .gitignore")
	}

	if content == string(data) {
		return msgs, nil
	}
	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return msgs, nil
}
