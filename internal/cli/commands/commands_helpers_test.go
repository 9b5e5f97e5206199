package commands

import (
	"runtime"
	"testing"
)

// withTempConfig переопределяет пользовательский конфиг-каталог на время теста,
// чтобы токен сохранялся в temp, а не в домашний каталог.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}
