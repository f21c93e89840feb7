package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/model"
	"github.com/specialistvlad/blueprintgo/internal/server"
	"github.com/specialistvlad/blueprintgo/internal/watch"
)

// Run executes the mode selected by the configuration. Serve and watch modes
// block until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode())

	a.startHealthCheckServer()
	defer a.closeHealthCheckServer()

	var err error
	switch a.config.Mode() {
	case ModeServe:
		err = a.serve(ctx)
	case ModeWatch:
		err = a.watch(ctx)
	default:
		err = a.compile(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

func (a *App) compile(ctx context.Context) error {
	snap, err := model.LoadFile(a.config.GraphPath)
	if err != nil {
		return err
	}
	a.logger.Debug("Snapshot loaded.", "path", a.config.GraphPath, "nodes", len(snap.Nodes))

	res, err := a.build.Compile(ctx, snap, a.config.CompileOptions())
	if err != nil {
		return fmt.Errorf("compile %s: %w", a.config.GraphPath, err)
	}

	if a.config.OutPath == "" {
		if _, err := fmt.Fprint(a.outW, res.Script); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
	} else {
		if err := os.WriteFile(a.config.OutPath, []byte(res.Script), 0o644); err != nil {
			return fmt.Errorf("write script: %w", err)
		}
		a.logger.Info("Script written.", "path", a.config.OutPath)
	}

	if a.sink != nil {
		loc, err := a.sink.Put(ctx, artifactName(a.config.GraphPath), []byte(res.Script))
		if err != nil {
			return fmt.Errorf("publish script: %w", err)
		}
		a.logger.Info("Script published.", "location", loc)
	}
	return nil
}

func (a *App) serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.ServePort))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	srv := server.New(a.build, a.logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *App) watch(ctx context.Context) error {
	w := watch.New(watch.Config{
		URL:       a.config.WatchURL,
		Namespace: a.config.WatchNamespace,
	}, a.build, a.sink)
	return w.Run(ctx)
}

// artifactName derives the published script name from the graph file name.
func artifactName(graphPath string) string {
	base := filepath.Base(graphPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
}
