package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	configFileName = "config.yaml"
	xdgConfigFile  = "shogi/" + configFileName
)

// findConfigFile 依次查找 $XDG_CONFIG_HOME/shogi/config.yaml（以及 XDG_CONFIG_DIRS）、
// 当前目录、可执行文件所在目录。找不到返回空串。
func findConfigFile() string {
	if p, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return p
	}
	candidates := []string{configFileName}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), configFileName))
	}
	return firstExisting(candidates)
}

// ResolvePath 把相对路径依次按当前目录、可执行文件目录解析，返回第一个存在的绝对路径。
// 都不存在时返回原值，交给调用方报错。
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	candidates := []string{p}
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		candidates = append(candidates, filepath.Join(exeDir, p))
		candidates = append(candidates, filepath.Join(exeDir, filepath.Base(p)))
	}
	if found := firstExisting(candidates); found != "" {
		return found
	}
	return p
}

func firstExisting(candidates []string) string {
	seen := make(map[string]struct{}, len(candidates))
	for _, p := range candidates {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		if _, err := os.Stat(abs); err == nil {
			return abs
		}
	}
	return ""
}
