package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

var locationName string

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Manage note locations",
}

var locationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		locs, err := db.ListLocationsSync()
		if err != nil {
			return err
		}
		if len(locs) == 0 {
			fmt.Println("No locations. Add one with: inkpad locations add <path>")
			return nil
		}
		for _, l := range locs {
			fmt.Printf("%d\t%s\t%s\n", l.ID, l.Name, l.RootPath)
		}
		return nil
	},
}

var locationsAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Register a directory as a note location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		info, err := os.Stat(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", root)
		}
		name := locationName
		if name == "" {
			name = filepath.Base(root)
		}
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		loc, err := db.AddLocationSync(name, root)
		if err != nil {
			return err
		}
		fmt.Printf("Added location %d: %s (%s)\n", loc.ID, loc.Name, loc.RootPath)
		return nil
	},
}

var locationsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a location (files on disk are untouched)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid location id %q", args[0])
		}
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		found, err := db.RemoveLocationSync(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no location with id %d", id)
		}
		fmt.Printf("Removed location %d\n", id)
		return nil
	},
}

var locationsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report locations whose root no longer exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		missing, err := db.ValidateLocationsSync()
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			fmt.Println("All location roots exist")
			return nil
		}
		for _, l := range missing {
			fmt.Printf("MISSING\t%d\t%s\t%s\n", l.ID, l.Name, l.RootPath)
		}
		return nil
	},
}

func init() {
	locationsAddCmd.Flags().StringVar(&locationName, "name", "", "display name (default: directory name)")
	locationsCmd.AddCommand(locationsListCmd, locationsAddCmd, locationsRemoveCmd, locationsValidateCmd)
}
