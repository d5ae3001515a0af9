package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage stored start presets",
	Long: `A preset is a named seed, a literal start board, or both. Presets
are applied before the first tick with 'blocks play --preset <name>'.

Examples:
  blocks presets list
  blocks presets save seven --seed 7
  blocks presets save tower --board ./tower.yaml
  blocks presets show tower
  blocks presets delete tower`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	Args:  cobra.NoArgs,
	Run:   runPresetsList,
}

var presetsSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a preset from --seed and/or --board",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsSave,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset in the override file format",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsShow,
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	Run:   runPresetsDelete,
}

func init() {
	presetsSaveCmd.Flags().StringVar(&flagBoard, "board", "", "Override YAML with a seed and/or literal board")

	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsSaveCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsDeleteCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	exitOnError("presets database", err)
	return store
}

func runPresetsList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	presets, err := store.ListPresets()
	exitOnError("listing presets", err)

	if len(presets) == 0 {
		fmt.Println("No presets saved yet.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("NAME", "SEED", "BOARD", "SAVED")
	for _, p := range presets {
		seed := "-"
		if p.Seed != nil {
			seed = fmt.Sprintf("%d", *p.Seed)
		}
		board := "-"
		if len(p.Board) > 0 {
			board = fmt.Sprintf("%dx%d", len(p.Board[0]), len(p.Board))
		}
		t.Row(p.Name, seed, board, p.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(t.Render())
}

func runPresetsSave(cmd *cobra.Command, args []string) {
	p := storage.Preset{Name: args[0]}

	if flagBoard != "" {
		o, err := config.LoadOverride(flagBoard)
		exitOnError("board file", err)
		p.Seed = o.Seed
		p.Board = o.Board
	}
	if cmd.Flags().Changed("seed") {
		seed := flagSeed
		p.Seed = &seed
	}
	if p.Seed == nil && p.Board == nil {
		exitOnError("save", errors.New("a preset needs --seed, --board or both"))
	}

	// Reject boards the configured engine would not accept.
	if p.Board != nil {
		rules := rulesFrom(loadConfig())
		_, err := blocks.BoardFromRows(p.Board, rules.Width, rules.Height)
		exitOnError("board", err)
	}

	store := openStore()
	defer store.Close()

	exitOnError("saving preset", store.SavePreset(p))
	fmt.Printf("Saved preset %q.\n", p.Name)
}

func runPresetsShow(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	p, err := store.Preset(args[0])
	exitOnError("preset", err)

	data, err := config.EncodeOverride(config.Override{Seed: p.Seed, Board: p.Board})
	exitOnError("encoding preset", err)
	fmt.Printf("# preset %s, saved %s\n", p.Name, p.CreatedAt.Format("2006-01-02 15:04"))
	os.Stdout.Write(data)
}

func runPresetsDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	exitOnError("deleting preset", store.DeletePreset(args[0]))
	fmt.Printf("Deleted preset %q.\n", args[0])
}
