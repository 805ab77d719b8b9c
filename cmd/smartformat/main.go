// Package main provides the CLI entry point for smartformat.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/lepinkainen/smartformat/internal/config"
	"github.com/lepinkainen/smartformat/internal/server"
	docconfig "github.com/lepinkainen/smartformat/pkg/config"
	"github.com/lepinkainen/smartformat/pkg/content"
	"github.com/lepinkainen/smartformat/pkg/database"
	"github.com/lepinkainen/smartformat/pkg/feed"
	"github.com/lepinkainen/smartformat/pkg/filesystem"
	"github.com/lepinkainen/smartformat/pkg/interfaces"
	"github.com/lepinkainen/smartformat/pkg/preview"
)

const (
	formatSmartFormat = "smartformat"
	formatAtom        = "atom"
	stdoutPath        = "-"
	cacheTable        = "rendered_feeds"
)

// CLI structure
var CLI struct {
	Config   string `help:"Configuration file path" default:"config.yaml"`
	Debug    bool   `help:"Enable debug logging" default:"false"`
	Fallback string `help:"Local copy of the feed document used when a remote fetch fails (default: fallback_document from config)"`

	Render struct {
		Document         string `arg:"" help:"Feed document (YAML or JSON file, or http(s) URL)"`
		Outfile          string `help:"Output file path, - for stdout (default: output_path from config)" short:"o"`
		Format           string `help:"Output format" enum:"smartformat,atom" default:"smartformat"`
		DeriveThumbnails bool   `help:"Derive media:thumbnail from the first image in content:encoded"`
	} `cmd:"render" help:"Render a feed document as a SmartFormat RSS feed."`

	Serve struct {
		Document string `arg:"" optional:"" help:"Feed document (default: server.document from config)"`
		Addr     string `help:"Listen address (default: server.addr from config)"`
		NoCache  bool   `help:"Disable the render cache"`
	} `cmd:"serve" help:"Serve the rendered feed over HTTP."`

	Preview struct {
		Document string `arg:"" help:"Feed document"`
		Index    int    `help:"Output XML for specific item index (0-based) to stdout" default:"-1"`
	} `cmd:"preview" help:"Preview feed items interactively."`

	Validate struct {
		Document string `arg:"" help:"Feed document"`
	} `cmd:"validate" help:"Check a feed document for SmartFormat problems."`

	Cache struct {
		Info  struct{} `cmd:"info" help:"Show render cache statistics."`
		Clear struct{} `cmd:"clear" help:"Remove all cached renders."`
	} `cmd:"cache" help:"Manage the render cache used by serve."`
}

func main() {
	// Parse CLI with Kong YAML configuration file loading
	ctx := kong.Parse(&CLI,
		kong.Name("smartformat"),
		kong.Description("Build SmartNews SmartFormat RSS feeds."),
		kong.Configuration(kongyaml.Loader, "config.yaml", "~/.smartformat/config.yaml"),
	)

	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "path", CLI.Config, "error", err)
		os.Exit(1)
	}
	if CLI.Fallback != "" {
		cfg.FallbackDocument = CLI.Fallback
	}

	// ctx.Command() includes positional arguments, e.g. "render <document>"
	switch strings.Fields(ctx.Command())[0] {
	case "render":
		err = render(cfg)
	case "serve":
		err = serve(cfg)
	case "preview":
		err = previewDocument(cfg)
	case "validate":
		err = validate(cfg)
	case "cache":
		err = manageCache(cfg, ctx.Command())
	default:
		panic(ctx.Command())
	}

	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// loadWriter reads a feed document and builds its writer. Ctrl-C aborts a slow remote fetch.
func loadWriter(cfg *config.Config, source string, deriveThumbnails bool) (*feed.Writer, error) {
	slog.Debug("Loading feed document", "source", source, "fallback", cfg.FallbackDocument)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := docconfig.LoadDocument(ctx, source, cfg.Loader())
	if err != nil {
		return nil, err
	}

	w := doc.Writer()
	if deriveThumbnails {
		articles := w.Articles()
		if content.DeriveThumbnails(articles) > 0 {
			w.SetArticles(articles)
		}
	}
	return w, nil
}

func render(cfg *config.Config) error {
	w, err := loadWriter(cfg, CLI.Render.Document, CLI.Render.DeriveThumbnails || cfg.DeriveThumbnails)
	if err != nil {
		return err
	}

	outfile := CLI.Render.Outfile
	if outfile == "" {
		outfile = cfg.OutputPath
	}

	if CLI.Render.Format == formatAtom {
		atom, err := w.Atom(time.Now())
		if err != nil {
			return err
		}
		if outfile == stdoutPath {
			_, err = fmt.Fprintln(os.Stdout, atom)
			return err
		}
		if err := filesystem.EnsureDirectoryExists(outfile); err != nil {
			return err
		}
		if err := os.WriteFile(outfile, []byte(atom), 0o644); err != nil {
			return fmt.Errorf("failed to write atom feed: %w", err)
		}
		slog.Info("Atom feed saved", "count", len(w.Articles()), "filename", outfile)
		return nil
	}

	if outfile == stdoutPath {
		return feed.NewEmitter(w, feed.NewStreamSink(os.Stdout)).EmitAll()
	}

	if err := filesystem.EnsureDirectoryExists(outfile); err != nil {
		return err
	}
	_, err = w.WriteFile(outfile)
	return err
}

func serve(cfg *config.Config) error {
	document := CLI.Serve.Document
	if document == "" {
		document = cfg.Server.Document
	}
	if CLI.Serve.Addr != "" {
		cfg.Server.Addr = CLI.Serve.Addr
	}

	// Left as a nil interface when disabled so the server renders every request
	var cache interfaces.RenderCache
	if cfg.Cache.Enabled && !CLI.Serve.NoCache {
		c, closeCache, err := openCache(cfg)
		if err != nil {
			return err
		}
		defer closeCache()
		cache = c
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, document, cache).Run(ctx)
}

func previewDocument(cfg *config.Config) error {
	w, err := loadWriter(cfg, CLI.Preview.Document, cfg.DeriveThumbnails)
	if err != nil {
		return err
	}

	// If index is specified, output XML directly to stdout
	if index := CLI.Preview.Index; index >= 0 {
		articles := w.Articles()
		if index >= len(articles) {
			return fmt.Errorf("index %d out of range, document has %d items", index, len(articles))
		}
		fmt.Print(feed.ItemXML(articles[index]))
		return nil
	}

	return preview.Run(w)
}

func validate(cfg *config.Config) error {
	w, err := loadWriter(cfg, CLI.Validate.Document, false)
	if err != nil {
		return err
	}

	issues := w.Validate()
	for _, issue := range issues {
		fmt.Println(issue.String())
	}
	if len(issues) > 0 {
		return fmt.Errorf("%d problem(s) found", len(issues))
	}

	fmt.Printf("OK: %d items\n", len(w.Articles()))
	return nil
}

// openCache opens the render cache database from the configured path
func openCache(cfg *config.Config) (*database.Cache, func(), error) {
	dbConfig := database.DefaultConfig()
	dbConfig.Path = cfg.Cache.Path

	db, err := database.NewDatabase(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open render cache: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Warn("Failed to close render cache", "error", err)
		}
	}

	cache, err := database.NewCache(db, cacheTable)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return cache, closeDB, nil
}

func manageCache(cfg *config.Config, command string) error {
	if !database.DatabaseExists(cfg.Cache.Path) {
		fmt.Printf("No render cache at %s\n", cfg.Cache.Path)
		return nil
	}

	cache, closeCache, err := openCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	switch command {
	case "cache clear":
		if err := cache.Clear(); err != nil {
			return err
		}
		if err := database.VacuumDatabase(cache.Database()); err != nil {
			return err
		}
		fmt.Println("Render cache cleared")
		return nil

	default:
		info, err := database.GetCacheInfo(cache)
		if err != nil {
			return err
		}
		fmt.Printf("Path:     %s\n", info.Path)
		fmt.Printf("SQLite:   %s\n", info.SQLiteVersion)
		fmt.Printf("Size:     %d bytes\n", info.FileSizeBytes)
		fmt.Printf("Entries:  %d (%d expired)\n", info.Entries, info.Expired)
		return nil
	}
}
