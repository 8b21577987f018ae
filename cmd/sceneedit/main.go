package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sceneworks/sceneedit/internal/config"
	"github.com/sceneworks/sceneedit/internal/console"
	"github.com/sceneworks/sceneedit/internal/core/event"
	"github.com/sceneworks/sceneedit/internal/data"
	"github.com/sceneworks/sceneedit/internal/editor"
	"github.com/sceneworks/sceneedit/internal/persist"
	"github.com/sceneworks/sceneedit/internal/scripting"
)

const defaultConfigPath = "config/editor.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var out = termenv.NewOutput(os.Stdout)

func printBanner(lang string) {
	cyan := func(s string) string { return out.String(s).Foreground(termenv.ANSICyan).Bold().String() }
	fmt.Println()
	fmt.Println(cyan("  ┌───────────────────────────────────────────┐"))
	fmt.Println(cyan("  │") + "             sceneedit  v0.1.0             " + cyan("│"))
	fmt.Println(cyan("  │") + "       3D scene editor · command shell     " + cyan("│"))
	fmt.Println(cyan("  └───────────────────────────────────────────┘"))
	fmt.Println()
	fmt.Printf("  %s %s\n\n", out.String("language:").Bold(), lang)
}

func printSection(title string) {
	lineLen := max(46-uniseg.StringWidth(title)-1, 3)
	fmt.Println(out.String("  ── " + title + " " + strings.Repeat("─", lineLen)).Foreground(termenv.ANSIYellow))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-uniseg.StringWidth(label)-len(numStr), 3)
	fmt.Printf("  %s %s %s\n", label,
		out.String(strings.Repeat("·", dotsLen)).Foreground(termenv.ANSIBrightBlack),
		out.String(numStr).Foreground(termenv.ANSIGreen))
}

func printOK(msg string) {
	fmt.Printf("  %s %s\n", out.String("✓").Foreground(termenv.ANSIGreen), msg)
}

func printSkip(msg string) {
	fmt.Printf("  %s %s\n", out.String("–").Foreground(termenv.ANSIBrightBlack), msg)
}

func printReady(msg string) {
	fmt.Printf("  %s %s\n", out.String("▶").Foreground(termenv.ANSIGreen), msg)
}

// ── Main editor logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Editor.Language)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Primitive catalog
	printSection("catalog")
	catalog := data.DefaultPrimitiveTable()
	if cfg.Catalog.Path != "" {
		catalog, err = data.LoadPrimitiveTable(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}
	printStat("primitive kinds", catalog.Count())
	fmt.Println()

	// 4. Optional scene storage
	printSection("database")
	var store editor.SceneStore
	if cfg.Database.Enabled {
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.Open(dbCtx, cfg.Database, log.Named("persist"))
		if err != nil {
			return err
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := db.Migrate(dbCtx)
		if err != nil {
			return err
		}
		printOK(fmt.Sprintf("schema version %d", version))
		store = persist.NewSceneRepo(db)
	} else {
		printSkip("disabled, save/load unavailable")
	}
	fmt.Println()

	// 5. Editor session
	sess := editor.New(editor.Options{
		MaxHistorySize:    cfg.Editor.MaxHistorySize,
		ReselectOnRestore: cfg.Editor.ReselectOnRestore,
		Language:          cfg.Editor.Language,
		Seed:              cfg.Editor.Seed,
		Catalog:           catalog,
		Store:             store,
		Log:               log.Named("editor"),
	})

	// 6. Lua scripts
	printSection("scripts")
	engine, err := scripting.NewEngine(cfg.Scripts.Dir, sess, log.Named("lua"))
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	event.Subscribe(sess.Bus(), func(ev event.SceneReplaced) {
		engine.Hook("on_scene_replaced", ev.Name, ev.Entities)
	})
	for _, name := range cfg.Scripts.Autorun {
		if err := engine.RunFile(filepath.Join(cfg.Scripts.Dir, name)); err != nil {
			return fmt.Errorf("autorun: %w", err)
		}
		printOK("ran " + name)
	}
	printStat("objects after autorun", sess.Registry().Len())
	fmt.Println()

	printReady("type help for commands, quit to exit")
	fmt.Println()

	con := console.New(sess, os.Stdout, engine)
	if err := con.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("editor closed", zap.Int("objects", sess.Registry().Len()))
	return nil
}

// loadConfig reads SCENEEDIT_CONFIG, or the default path when it exists.
func loadConfig() (*config.Config, error) {
	path := os.Getenv("SCENEEDIT_CONFIG")
	if path == "" {
		path = defaultConfigPath
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
