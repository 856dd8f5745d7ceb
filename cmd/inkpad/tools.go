package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"inkpad/internal/export"
	"inkpad/internal/search"
	"inkpad/internal/snapshot"
	"inkpad/internal/workspace"
)

var (
	exportOut      string
	exportKeepMeta bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file.md>",
	Short: "Render a markdown document to a standalone HTML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		doc := workspace.Document{RelPath: filepath.Base(src)}
		out, err := export.File(src, exportOut, export.Options{
			Title:        doc.Title(),
			KeepMetadata: exportKeepMeta,
		})
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

var snapshotMessage string
var snapshotLimit int

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Version a location with git snapshots",
}

var snapshotTakeCmd = &cobra.Command{
	Use:   "take <root>",
	Short: "Commit the location's current state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		repo, err := snapshot.Open(root)
		if err != nil {
			return err
		}
		hash, err := repo.Take(snapshotMessage)
		if err == snapshot.ErrNoChanges {
			fmt.Println("No changes since last snapshot")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

var snapshotHistoryCmd = &cobra.Command{
	Use:   "history <root>",
	Short: "List snapshots, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		repo, err := snapshot.Open(root)
		if err != nil {
			return err
		}
		entries, err := repo.History(snapshotLimit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%s\n", e.Hash[:8], e.Taken.Format("2006-01-02 15:04"), e.Message)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search all locations (supports title: contents: folder: tag:)",
	Args:  cobra.MinimumNArgs(1),
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
		roots := make(map[int64]string, len(locs))
		snaps := make(map[int64]*workspace.Snapshot, len(locs))
		for _, l := range locs {
			snap, err := workspace.IndexLocation(l.RootPath)
			if err != nil {
				continue
			}
			roots[l.ID] = l.RootPath
			snaps[l.ID] = snap
		}

		var query string
		for i, a := range args {
			if i > 0 {
				query += " "
			}
			query += a
		}
		results, err := search.Run(context.Background(), search.Parse(query), roots, snaps)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%s\n", workspace.AbsPath(roots[r.LocationID], r.RelPath))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: next to the source)")
	exportCmd.Flags().BoolVar(&exportKeepMeta, "keep-metadata", false, "emit front matter fields as meta tags")
	snapshotTakeCmd.Flags().StringVarP(&snapshotMessage, "message", "m", "snapshot", "commit message")
	snapshotHistoryCmd.Flags().IntVarP(&snapshotLimit, "limit", "n", 20, "max entries")
	snapshotCmd.AddCommand(snapshotTakeCmd, snapshotHistoryCmd)
}
