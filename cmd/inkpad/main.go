// Command inkpad is a markdown notes app. Run bare it opens the window;
// subcommands manage locations and run exports, snapshots, searches,
// quick captures, and lints without the GUI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inkpad/internal/app"
	"inkpad/internal/config"
	"inkpad/internal/store"
)

var (
	cfgPath string
	cfg     = config.NewManager()
)

var rootCmd = &cobra.Command{
	Use:   "inkpad",
	Short: "A markdown notes app with drag and drop organization",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgPath != "" {
			cfg.SetPath(cfgPath)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		app.Main(cfg)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/inkpad/config.json)")
	rootCmd.AddCommand(locationsCmd, exportCmd, snapshotCmd, searchCmd, captureCmd, lintCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the database for one-shot CLI use. Callers must Close.
func openStore() (*store.DB, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	db := store.NewDB()
	if err := db.Open(filepath.Join(configDir, "inkpad", "inkpad.db")); err != nil {
		return nil, err
	}
	return db, nil
}
