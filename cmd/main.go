package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/Akashdeep-Patra/spots/internal/app"
	"github.com/Akashdeep-Patra/spots/internal/common"
	"github.com/Akashdeep-Patra/spots/internal/config"
	"github.com/Akashdeep-Patra/spots/internal/diff"
	"github.com/Akashdeep-Patra/spots/internal/logging"
	"github.com/Akashdeep-Patra/spots/internal/model"
	"github.com/Akashdeep-Patra/spots/internal/watcher"
	"github.com/aymanbagabas/go-udiff"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags by GoReleaser / Taskfile.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI spends most of its time waiting on terminal input and file
	// events; two OS threads cover rendering and message dispatch. An
	// explicit GOMAXPROCS is respected.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(2, runtime.NumCPU()))
	}

	// Layout documents are small; keep RSS low.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spots:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spots",
		Short: "Render a JSON layout of components as one scrolling screen",
		Long: `spots renders a declarative JSON document of components (lists,
grids, carousels) as a single vertically scrolling terminal screen.

Every component scrolls on its own; the screen stitches them together so
they behave like one continuous list. Editing the file while spots runs
replays the difference as animated inserts, deletes and reloads.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"spots %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildValidateCmd())
	rootCmd.AddCommand(buildDiffCmd())
	rootCmd.AddCommand(buildAppendCmd())

	rootCmd.Flags().StringP("file", "f", "", "Layout document to render (defaults to the configured file)")
	rootCmd.PersistentFlags().String("config", "", "Explicit config file")

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// readLayout reads and decodes a layout document.
func readLayout(path string, kind model.Kind) ([]byte, []model.ComponentModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read layout: %w", err)
	}
	if !model.Valid(data) {
		return nil, nil, fmt.Errorf("%s is not a components document", path)
	}
	return data, model.Decode(data, model.WithDefaultKind(kind)), nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		path = cfg.File
	}
	if path == "" {
		return errors.New("no layout file: pass --file or set file in the config")
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	_, models, err := readLayout(path, model.ParseKind(cfg.DefaultKind, model.KindList))
	if err != nil {
		return err
	}
	logger.Info("starting", "version", version, "file", path, "components", len(models))

	m := app.New(cfg, path, models, app.WithLogger(logger))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.Bind(p.Send)

	if cfg.Watch {
		events, stop, err := watcher.Watch(path, cfg.WatchDebounce, logger)
		if err != nil {
			logger.Warn("file watching disabled", "error", err)
		} else {
			defer stop()
			go func() {
				for ev := range events {
					p.Send(common.FileChangedMsg{Path: ev.Path, Data: ev.Data})
				}
			}()
		}
	}

	_, err = p.Run()
	return err
}

// buildValidateCmd creates `spots validate FILE`, which decodes a layout and
// prints what would be rendered.
func buildValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a layout document and summarize its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, models, err := readLayout(args[0], model.KindList)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d component(s)\n", args[0], len(models))
			for i, m := range models {
				name := m.Title
				if name == "" {
					name = m.Identifier
				}
				fmt.Fprintf(out, "  %d  %-8s %-24s %d item(s)\n", i, m.Kind, name, len(m.Items))
			}
			return nil
		},
	}
}

// buildDiffCmd creates `spots diff OLD NEW`, printing the change each
// component would go through if OLD were reloaded with NEW.
func buildDiffCmd() *cobra.Command {
	var unified bool

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Show how a reload from OLD to NEW would be applied",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, before, err := readLayout(args[0], model.KindList)
			if err != nil {
				return err
			}
			_, after, err := readLayout(args[1], model.KindList)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if unified {
				return writeUnified(out, args[0], args[1], before, after)
			}
			writeChanges(out, before, after)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unified, "unified", "u", false, "Print a unified diff of the normalized documents")

	return cmd
}

func writeChanges(w io.Writer, before, after []model.ComponentModel) {
	for i := range max(len(before), len(after)) {
		switch {
		case i >= len(after):
			fmt.Fprintf(w, "%d: removed\n", i)
		case i >= len(before):
			fmt.Fprintf(w, "%d: added (%d item(s))\n", i, len(after[i].Items))
		default:
			change := diff.CompareComponents(before[i], after[i])
			switch {
			case change == diff.ComponentNone:
				fmt.Fprintf(w, "%d: unchanged\n", i)
			case change == diff.ComponentItems:
				cs := diff.Diff(before[i].Items, after[i].Items)
				fmt.Fprintf(w, "%d: items %s\n", i, cs)
				if cs != nil && len(cs.ChildUpdates) > 0 {
					fmt.Fprintf(w, "   nested children changed at %v\n", cs.ChildUpdates)
				}
			case change.RequiresRebuild():
				fmt.Fprintf(w, "%d: rebuild (%s)\n", i, change)
			default:
				fmt.Fprintf(w, "%d: replace (%s)\n", i, change)
			}
		}
	}
}

func writeUnified(w io.Writer, oldName, newName string, before, after []model.ComponentModel) error {
	a, err := model.Encode(before)
	if err != nil {
		return err
	}
	b, err := model.Encode(after)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, udiff.Unified(oldName, newName, string(a), string(b)))
	return err
}

// buildAppendCmd creates `spots append FILE`, adding an item to one
// component without reformatting the rest of the document.
func buildAppendCmd() *cobra.Command {
	var (
		component int
		item      model.Item
	)

	cmd := &cobra.Command{
		Use:   "append FILE",
		Short: "Append an item to a component of a layout document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read layout: %w", err)
			}
			if item.Identifier == "" {
				item.Identifier = uuid.NewString()
			}
			out, err := model.AppendItem(data, component, item)
			if err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("write layout: %w", err)
			}
			slog.Debug("item appended", "file", args[0], "component", component, "identifier", item.Identifier)
			fmt.Fprintf(cmd.OutOrStdout(), "appended %s to component %d\n", item.Identifier, component)
			return nil
		},
	}

	cmd.Flags().IntVarP(&component, "component", "c", 0, "Index of the target component")
	cmd.Flags().StringVar(&item.Title, "title", "", "Item title")
	cmd.Flags().StringVar(&item.Subtitle, "subtitle", "", "Item subtitle")
	cmd.Flags().StringVar(&item.Kind, "kind", "", "Renderer kind (row, card, cell, header, text)")
	cmd.Flags().StringVar(&item.Action, "action", "", "Action reported when the item is activated")
	cmd.Flags().StringVar(&item.Identifier, "id", "", "Item identifier (defaults to a random UUID)")

	return cmd
}

// buildVersionCmd creates the `spots version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "spots %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `spots completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for spots.

Examples:
  # Bash (add to ~/.bashrc)
  spots completion bash > /etc/bash_completion.d/spots

  # Zsh (add to ~/.zshrc before compinit)
  spots completion zsh > "${fpath[1]}/_spots"

  # Fish
  spots completion fish > ~/.config/fish/completions/spots.fish

  # PowerShell
  spots completion powershell > spots.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}
