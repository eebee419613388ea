package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const viewCookieName = "shogi_view"

// RegisterStaticRoutes:
//   - /web/*        桌面版页面
//   - /web_mobile/* 手机版页面
//   - /             按 ?view=、cookie、User-Agent 跳转
func RegisterStaticRoutes(r chi.Router, desktopDir string, mobileDir string) {
	if r == nil {
		return
	}
	if desktopDir == "" {
		desktopDir = "."
	}
	if mobileDir == "" {
		mobileDir = desktopDir
	}

	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.Dir(desktopDir))))
	r.Handle("/web_mobile/*", http.StripPrefix("/web_mobile/", http.FileServer(http.Dir(mobileDir))))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		target := "/web/"
		if pickView(w, req) == "mobile" {
			target = "/web_mobile/"
		}
		w.Header().Set("Vary", "User-Agent, Cookie")
		http.Redirect(w, req, target, http.StatusFound)
	})
	r.Get("/web", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/web/", http.StatusFound)
	})
	r.Get("/web_mobile", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/web_mobile/", http.StatusFound)
	})
}

func pickView(w http.ResponseWriter, r *http.Request) string {
	if v, ok := normalizeView(r.URL.Query().Get("view")); ok {
		rememberView(w, v)
		return v
	}
	if c, err := r.Cookie(viewCookieName); err == nil {
		if v, ok := normalizeView(c.Value); ok {
			return v
		}
	}
	if isMobileUA(r.UserAgent()) {
		return "mobile"
	}
	return "web"
}

func rememberView(w http.ResponseWriter, view string) {
	http.SetCookie(w, &http.Cookie{
		Name:     viewCookieName,
		Value:    view,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
}

func normalizeView(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "web", "desktop", "pc":
		return "web", true
	case "mobile", "m", "phone", "web_mobile":
		return "mobile", true
	}
	return "", false
}

var mobileNeedles = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone", "harmony"}

func isMobileUA(ua string) bool {
	s := strings.ToLower(ua)
	for _, n := range mobileNeedles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
