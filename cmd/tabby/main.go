package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Phazzie/tabbymctabface/internal/config"
	"github.com/Phazzie/tabbymctabface/internal/content"
	"github.com/Phazzie/tabbymctabface/internal/humor"
	"github.com/Phazzie/tabbymctabface/internal/mcp"
	"github.com/Phazzie/tabbymctabface/internal/notify"
	"github.com/Phazzie/tabbymctabface/internal/rules"
	"github.com/Phazzie/tabbymctabface/internal/tabs"
)

func main() {
	log.Println("tabby - context-triggered humor engine")
	log.Println("======================================")

	// Load .env file (optional - won't error if missing)
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, using environment variables")
	} else {
		log.Println("[config] Loaded .env file")
	}

	cfg := config.FromEnv()
	os.MkdirAll(cfg.StatePath, 0755)

	// Load the authored catalog and persist it in the content store.
	// A failed load aborts startup: there is no retry policy here.
	catalog, err := content.LoadCatalog(cfg.ContentDir)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	store, err := content.OpenSQLite(cfg.StatePath)
	if err != nil {
		log.Fatalf("Failed to open content store: %v", err)
	}
	defer store.Close()

	if err := store.Import(catalog); err != nil {
		log.Fatalf("Failed to import catalog: %v", err)
	}

	registry := rules.NewRegistry()
	eggs, err := store.EasterEggs()
	if err != nil {
		log.Fatalf("Failed to read easter eggs: %v", err)
	}
	if err := registry.Load(eggs); err != nil {
		log.Fatalf("Failed to register easter eggs: %v", err)
	}

	sink, cleanup, err := buildSink(cfg)
	if err != nil {
		log.Fatalf("Failed to build sink: %v", err)
	}
	defer cleanup()

	// The real tab collaborator is the browser extension glue; this
	// binary runs against the synthetic provider.
	provider := tabs.NewSyntheticProvider(1, 0, nil)

	orc := humor.New(humor.Config{
		Provider:    provider,
		Registry:    registry,
		Store:       store,
		Sink:        sink,
		Tier:        cfg.Tier,
		MinInterval: cfg.MinInterval,
		HistorySize: cfg.HistorySize,
	})

	sub := orc.Subscribe(func(out humor.Outcome) {
		if out.Throttled {
			log.Printf("[main] outcome %s: throttled", out.ID)
		} else if !out.Delivered {
			log.Printf("[main] outcome %s: nothing delivered (%s)", out.ID, out.Failure)
		}
	})
	defer orc.Unsubscribe(sub)

	ctx := context.Background()

	if cfg.AmbientSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.AmbientSchedule, func() {
			orc.Deliver(ctx, tabs.Event{Kind: tabs.EventAmbient, At: time.Now()})
		})
		if err != nil {
			log.Fatalf("Bad AMBIENT_SCHEDULE: %v", err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("[main] ambient trigger scheduled: %s", cfg.AmbientSchedule)
	}

	switch {
	case cfg.MCP:
		log.Println("[main] serving MCP over stdio")
		if err := mcp.Serve(mcp.NewServer(orc, registry)); err != nil {
			log.Fatalf("MCP server error: %v", err)
		}

	case cfg.Synthetic:
		runSynthetic(ctx, provider, orc)

	default:
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("[main] shutting down")
	}
}

func buildSink(cfg config.Config) (notify.Sink, func(), error) {
	switch cfg.Sink {
	case "discord":
		sink, err := notify.NewDiscordSink(cfg.DiscordToken, cfg.DiscordChannel)
		if err != nil {
			return nil, nil, err
		}
		return sink, func() { sink.Close() }, nil
	case "capture":
		return notify.NewCaptureSink(cfg.StatePath + "/deliveries.jsonl"), func() {}, nil
	default:
		return notify.NewConsoleSink(), func() {}, nil
	}
}

// runSynthetic walks a scripted browsing session through the engine so
// deliveries can be watched without a browser attached.
func runSynthetic(ctx context.Context, provider *tabs.SyntheticProvider, orc *humor.Orchestrator) {
	log.Println("[main] running synthetic session")

	github := &tabs.Tab{URL: "https://github.com/Phazzie/tabbymctabface", Title: "tabbymctabface", Domain: "github.com"}
	docs := &tabs.Tab{URL: "https://go.dev/doc", Title: "Documentation - The Go Programming Language", Domain: "go.dev"}

	script := []tabs.ScriptStep{
		{TabCount: 12, GroupCount: 0, Active: github, Event: tabs.Event{Kind: tabs.EventTabOpened, Tab: github}},
		{TabCount: 12, GroupCount: 1, Active: github, Event: tabs.Event{Kind: tabs.EventGroupCreated, GroupName: "procrastination"}},
		{TabCount: 42, GroupCount: 1, Active: docs, Event: tabs.Event{Kind: tabs.EventMilestone, Tab: docs}},
		{TabCount: 41, GroupCount: 1, Active: docs, Event: tabs.Event{Kind: tabs.EventChanceClose}},
		{TabCount: 40, GroupCount: 1, Active: docs, Event: tabs.Event{Kind: tabs.EventTabClosed}},
	}

	provider.RunScript(script, 6*time.Second, func(ev tabs.Event) {
		out := orc.Deliver(ctx, ev)
		if out.Delivered {
			log.Printf("[main] %s -> %q (%s)", ev.Kind, out.Text, out.Method)
		}
	})

	log.Println("[main] synthetic session complete")
}
