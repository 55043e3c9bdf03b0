// Command ohkami is the project's dev CLI (SPEC_FULL.md §4.10): it never
// gets special access to the core, it only ever drives a real *core.Ohkami
// through the same public API any library user has. Built with
// spf13/cobra, following the pack's own cobra root+subcommand shape
// (_examples/onurartan-mockserver/main.go's rootCmd/startCmd pair).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yourusername/ohkami/core"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "ohkami",
		Short: "ohkami dev CLI",
	}

	var addrFlag string
	var watch bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "boot the demo server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, addrFlag, watch)
		},
	}
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address (overrides the config file and the :8080 default)")
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to an ohkami.toml config file")
	serveCmd.Flags().BoolVar(&watch, "watch", false, "restart the demo server when --config changes")

	routesCmd := &cobra.Command{
		Use:   "routes",
		Short: "print the compiled route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(configPath)
		},
	}
	routesCmd.Flags().StringVar(&configPath, "config", "", "path to an ohkami.toml config file")

	root.AddCommand(serveCmd, routesCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(configPath, addrOverride string, watch bool) error {
	fcfg, err := loadFileConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if addrOverride != "" {
		fcfg.Addr = addrOverride
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		srv, err := startServer(fcfg)
		if err != nil {
			return err
		}

		if !watch || configPath == "" {
			<-sigCh
			return shutdownServer(srv)
		}

		reload, err := waitForReloadOrSignal(configPath, sigCh)
		if err != nil {
			_ = shutdownServer(srv)
			return err
		}
		if err := shutdownServer(srv); err != nil {
			return err
		}
		if !reload {
			return nil
		}
		fcfg, err = loadFileConfig(configPath)
		if err != nil {
			return fmt.Errorf("reloading config: %w", err)
		}
		if addrOverride != "" {
			fcfg.Addr = addrOverride
		}
	}
}

func startServer(fcfg fileConfig) (*core.Server, error) {
	dataset := newDemoDataset(fcfg.DemoUsers)
	o := buildDemo(dataset)

	srv, err := core.NewServer(o, core.Load())
	if err != nil {
		return nil, fmt.Errorf("building server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Listen(fcfg.Addr); err != nil {
			errCh <- err
		}
	}()

	successStyle := color.New(color.FgGreen, color.Bold)
	successStyle.Printf("ohkami demo server listening on %s\n", fcfg.Addr)

	select {
	case err := <-errCh:
		return nil, err
	case <-time.After(50 * time.Millisecond):
		return srv, nil
	}
}

func shutdownServer(srv *core.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// waitForReloadOrSignal blocks until configPath changes (reload=true), a
// shutdown signal arrives (reload=false), or the watcher itself fails,
// following the pack's fsnotify idiom
// (_examples/onurartan-mockserver/main.go's watchConfigFile).
func waitForReloadOrSignal(configPath string, sigCh <-chan os.Signal) (reload bool, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, fmt.Errorf("starting config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(configPath); err != nil {
		return false, fmt.Errorf("watching config file: %w", err)
	}

	for {
		select {
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				return true, nil
			}
		case werr := <-watcher.Errors:
			return false, fmt.Errorf("config watcher error: %w", werr)
		case <-sigCh:
			return false, nil
		}
	}
}

func runRoutes(configPath string) error {
	fcfg, err := loadFileConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataset := newDemoDataset(fcfg.DemoUsers)
	o := buildDemo(dataset)

	methodStyle := color.New(color.FgHiGreen, color.Bold)
	patternStyle := color.New(color.FgHiWhite)
	fangStyle := color.New(color.FgHiBlack)

	for _, row := range o.RouteTable() {
		fmt.Printf("%-8s %-30s %s\n",
			methodStyle.Sprint(row.Method.String()),
			patternStyle.Sprint(row.Pattern),
			fangStyle.Sprintf("(%d fangs)", row.FangCount),
		)
	}

	slog.Debug("routes printed", "count", len(o.RouteTable()))
	return nil
}
