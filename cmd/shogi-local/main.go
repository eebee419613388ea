package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shogi/internal/adapters"
	"shogi/internal/bootstrap"
	"shogi/internal/engine"
	"shogi/internal/server/game"
	httpserver "shogi/internal/server/http"
	"shogi/internal/server/store"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面的环境会失败，忽略
}

func handleShutdown(cancel context.CancelFunc, log *zap.SugaredLogger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Infow("shutting down", "signal", s.String())
	cancel()
}

type closer interface {
	Close(ctx context.Context) error
}

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (default: search XDG dirs and next to the executable)")
	addr := flag.String("addr", "", "listen address, overrides server.addr")
	webDir := flag.String("web", "", "directory with index.html / js / css, overrides server.web_dir")
	noBrowser := flag.Bool("no-browser", false, "do not open the browser")
	flag.Parse()

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		bootstrap.NewLogger(false).Fatalw("failed to load config", "err", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *webDir != "" {
		cfg.Server.WebDir = *webDir
	}
	if *noBrowser {
		cfg.Server.OpenBrowser = false
	}

	log := bootstrap.NewLogger(cfg.Log.Debug)
	defer func() { _ = log.Sync() }()
	if cfg.Path != "" {
		log.Infow("config loaded", "path", cfg.Path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleShutdown(cancel, log)

	st, arch, closers := initStores(ctx, log, cfg)
	defer func() {
		for _, c := range closers {
			_ = c.Close(context.Background())
		}
	}()

	eng := engine.NewEngine(cfg.Engine.Seed)
	eng.Strict = cfg.Engine.Strict
	mgr := game.NewManager(st, eng, log,
		game.WithArchive(arch),
		game.WithThinkDelay(cfg.Engine.ThinkDelay),
	)

	web := bootstrap.ResolvePath(cfg.Server.WebDir)
	mobile := cfg.Server.MobileDir
	if mobile != "" {
		mobile = bootstrap.ResolvePath(mobile)
	}
	router := httpserver.NewRouter(mgr, log, httpserver.Options{
		WebDir:       web,
		MobileDir:    mobile,
		RequestLog:   cfg.Log.Debug,
		DefaultLevel: cfg.Level(),
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}
	go func() {
		log.Infow("listening", "addr", cfg.Server.Addr, "web", web, "level", cfg.Level(), "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped", "err", err)
			cancel()
		}
	}()

	if cfg.Server.OpenBrowser {
		// 稍等服务器起来再开浏览器
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Server.Addr)
		}()
	}

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("shutdown", "err", err)
	}
}

func initStores(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (game.Store, game.Archive, []closer) {
	var closers []closer

	var st game.Store = store.NewMemory()
	if cfg.Store.Driver == "redis" {
		rs := adapters.NewRedisStore(cfg.Store.RedisURL, cfg.Store.TTL, log)
		if err := rs.Init(ctx); err != nil {
			log.Fatalw("failed to init redis", "err", err)
		}
		st = rs
		closers = append(closers, rs)
	}

	var arch game.Archive
	if cfg.Archive.MongoURI != "" {
		ma := adapters.NewMongoArchive(cfg.Archive.MongoURI, cfg.Archive.Database, log)
		if err := ma.Init(ctx); err != nil {
			log.Fatalw("failed to init mongodb", "err", err)
		}
		arch = ma
		closers = append(closers, ma)
	}
	return st, arch, closers
}
