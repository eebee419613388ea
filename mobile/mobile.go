package mobile

import (
	"net/http"

	"shogi/internal/bootstrap"
	"shogi/internal/engine"
	"shogi/internal/server/game"
	httpserver "shogi/internal/server/http"
	"shogi/internal/server/store"
)

// StartServer 在 127.0.0.1:port 上启动本地服务，供 gomobile 包装后在手机里调用。
// webDir: 解压后的网页资源目录
// level: easy / medium / hard，空为 medium
func StartServer(webDir string, level string, port string) {
	log := bootstrap.NewLogger(false)
	lv, err := engine.ParseLevel(level)
	if err != nil {
		log.Warnw("unknown level, using medium", "level", level)
	}

	mgr := game.NewManager(store.NewMemory(), engine.NewEngine(0), log)
	router := httpserver.NewRouter(mgr, log, httpserver.Options{
		WebDir:       webDir,
		MobileDir:    webDir,
		DefaultLevel: lv,
	})

	// 放到后台，不阻塞 Android UI 线程
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, router); err != nil {
			log.Errorw("server error", "err", err)
		}
	}()
}
