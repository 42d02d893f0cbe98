package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joonho/ailearn/internal/catalog"
	"github.com/joonho/ailearn/internal/config"
	"github.com/joonho/ailearn/internal/engine"
	"github.com/joonho/ailearn/internal/events"
	"github.com/joonho/ailearn/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ailearn",
	Short: "Gamified learning-progress tracker",
	Long:  "ailearn tracks study progress locally: XP, levels, streaks, badges, daily missions and spaced-repetition review scheduling.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides AILEARN_DB env var)")
	rootCmd.PersistentFlags().String("session", "", "Session id scoping all state (overrides AILEARN_SESSION env var)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(goalsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// openEngine builds the engine from flags and environment. The returned
// store must be closed by the caller.
func openEngine(cmd *cobra.Command) (*engine.Engine, *store.Store, error) {
	cfg := config.Load()

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if s, _ := cmd.Flags().GetString("session"); s != "" {
		cfg.Session = s
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, nil, fmt.Errorf("prepare DB dir: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	eng := engine.New(engine.Options{
		KV:      st.KV(),
		Catalog: cat,
		Sink:    events.SinkFunc(printEvent),
		Session: cfg.Session,
	})
	return eng, st, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path != "" {
		return catalog.Load(path)
	}
	return catalog.Default()
}
