package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dixieflatline76/wallsearch/config"
	"github.com/dixieflatline76/wallsearch/pkg/api"
	"github.com/dixieflatline76/wallsearch/pkg/wallpaper"
	"github.com/dixieflatline76/wallsearch/util"
	"github.com/dixieflatline76/wallsearch/util/log"
)

var stdout io.Writer = os.Stdout

// QueryCmd runs one search and prints the items.
type QueryCmd struct {
	Keywords      []string `arg:"" optional:"" help:"Keywords or tags to search for."`
	MinResolution string   `help:"Minimum resolution: auto, none or WxH (default from config)."`
	Limit         int      `help:"Maximum number of results (default from config)."`
	JSON          bool     `name:"json" help:"Print one JSON object per item."`
}

// Run executes the query command.
func (c *QueryCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	minRes := c.MinResolution
	if minRes == "" {
		minRes = a.cfg.MinResolution
	}
	limit := c.Limit
	if limit <= 0 {
		limit = a.cfg.ResultsLimit
	}

	items := a.pipeline.RunQuery(context.Background(), strings.Join(c.Keywords, " "), minRes, limit)
	return printItems(stdout, items, c.JSON)
}

func printItems(w io.Writer, items []wallpaper.Item, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, item := range items {
			if err := enc.Encode(item); err != nil {
				return err
			}
		}
		return nil
	}

	for _, item := range items {
		fmt.Fprintf(w, "%s\n  %s\n  icon: %s\n", item.Name, item.Description, item.Icon)
		if item.Action != nil {
			fmt.Fprintf(w, "  apply: wallsearch apply %s %s\n", item.Action.ID, item.Action.URL)
		}
	}
	return nil
}

// ApplyCmd downloads and sets one wallpaper.
type ApplyCmd struct {
	ID  string `arg:"" help:"Wallhaven wallpaper ID."`
	URL string `arg:"" help:"Full resolution image URL."`
}

// Run executes the apply command.
func (c *ApplyCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	outcome := a.applier.Apply(context.Background(), wallpaper.ApplyRequest{ID: c.ID, URL: c.URL})
	if !outcome.OK() {
		return fmt.Errorf("%s: %w", outcome.Stage, outcome.Err)
	}
	fmt.Fprintln(stdout, outcome.Path)
	return nil
}

// DetectCmd prints the detected resolution.
type DetectCmd struct{}

// Run executes the detect command.
func (c *DetectCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, a.detector.Detect(context.Background()))
	return nil
}

// ServeCmd runs the launcher bridge until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (default from config)."`
}

// Run executes the serve command.
func (c *ServeCmd) Run(g *Globals) error {
	acquired, err := acquireLock()
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("another instance of %s is already running", config.AppName)
	}
	defer releaseLock()

	a, err := newApp(g)
	if err != nil {
		return err
	}
	if err := a.fm.EnsureDirs(); err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = a.cfg.ServerAddr
	}
	server := api.NewServer(a.pipeline, a.applier, a.fm, api.Options{
		Addr:          addr,
		MinResolution: a.cfg.MinResolution,
		Limit:         a.cfg.ResultsLimit,
		Version:       config.AppVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Launcher bridge listening on %s", addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down launcher bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// VersionCmd prints the version.
type VersionCmd struct {
	Check bool `help:"Check GitHub for a newer release."`
}

// Run executes the version command.
func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(stdout, "%s %s\n", config.AppName, config.AppVersion)
	if !c.Check {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := util.CheckForUpdates(ctx, nil, config.AppVersion)
	if err != nil {
		return err
	}
	if result.UpdateAvailable {
		fmt.Fprintf(stdout, "Update available: %s (%s)\n", result.LatestVersion, result.ReleaseURL)
	} else {
		fmt.Fprintln(stdout, "You are running the latest version.")
	}
	return nil
}
