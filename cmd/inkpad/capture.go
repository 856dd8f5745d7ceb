package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkpad/internal/lint"
	"inkpad/internal/workspace"
)

var (
	captureLocation int64
	captureInbox    string
)

var captureCmd = &cobra.Command{
	Use:   "capture [text...]",
	Short: "Save a quick note into a location's inbox folder",
	Long:  "Saves the given text (or stdin when no text is given) as a timestamped note under <location>/<inbox>/<year>/.",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			raw, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			text = strings.TrimSpace(string(raw))
		}
		if text == "" {
			return fmt.Errorf("capture text cannot be empty")
		}

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
			return fmt.Errorf("no location configured, add one with: inkpad locations add <path>")
		}
		loc := locs[0]
		if captureLocation != 0 {
			found := false
			for _, l := range locs {
				if l.ID == captureLocation {
					loc, found = l, true
					break
				}
			}
			if !found {
				return fmt.Errorf("no location with id %d", captureLocation)
			}
		}

		rel := workspace.QuickNotePath(captureInbox, time.Now())
		abs := workspace.AbsPath(loc.RootPath, rel)
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(abs, []byte(text+"\n"), 0o644); err != nil {
			return err
		}
		fmt.Println(abs)
		return nil
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint <file.md>",
	Short: "Report structural problems and style matches in a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		content := string(raw)

		for _, d := range lint.Check(content) {
			if d.Line > 0 {
				fmt.Printf("%s: %s: %s (line %d)\n", d.Severity, d.Code, d.Message, d.Line)
			} else {
				fmt.Printf("%s: %s: %s\n", d.Severity, d.Code, d.Message)
			}
		}
		for _, m := range lint.NewScanner(lint.BuiltinPatterns()).Scan(content) {
			if m.Replacement != "" {
				fmt.Printf("style: %s %q, try %q\n", m.Category, content[m.Start:m.End], m.Replacement)
			} else {
				fmt.Printf("style: %s %q\n", m.Category, content[m.Start:m.End])
			}
		}
		return nil
	},
}

func init() {
	captureCmd.Flags().Int64Var(&captureLocation, "location", 0, "target location id (default: the first location)")
	captureCmd.Flags().StringVar(&captureInbox, "inbox", "inbox", "folder the note lands in")
}
