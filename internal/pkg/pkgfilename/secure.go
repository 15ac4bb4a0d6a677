package pkgfilename

import (
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

//nolint:gochecknoglobals // lookup table
var windowsDeviceNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// Secure returns a flat, ASCII-only version of name.
//
// Characters are NFKD-decomposed and non-ASCII runes dropped, path separators
// and whitespace runs become a single underscore, anything outside
// [A-Za-z0-9_.-] is removed and leading/trailing dots and underscores are
// trimmed. The result may be empty; callers must handle that case.
//
//	Secure("My cool movie.mov")          == "My_cool_movie.mov"
//	Secure("../../../etc/passwd")        == "etc_passwd"
//	Secure("planilha de preços.xlsx")    == "planilha_de_precos.xlsx"
func Secure(name string) string {
	name = norm.NFKD.String(strings.ToValidUTF8(name, ""))

	var ascii strings.Builder
	ascii.Grow(len(name))
	for _, r := range name {
		if r < utf8.RuneSelf {
			ascii.WriteRune(r)
		}
	}
	name = ascii.String()

	name = strings.ReplaceAll(name, "/", " ")
	if filepath.Separator != '/' {
		name = strings.ReplaceAll(name, string(filepath.Separator), " ")
	}
	name = strings.Join(strings.Fields(name), "_")

	var safe strings.Builder
	safe.Grow(len(name))
	for i := 0; i < len(name); i++ {
		if c := name[i]; isPortable(c) {
			safe.WriteByte(c)
		}
	}
	name = strings.Trim(safe.String(), "._")

	if runtime.GOOS == "windows" && name != "" {
		stem, _, _ := strings.Cut(name, ".")
		if _, reserved := windowsDeviceNames[strings.ToUpper(stem)]; reserved {
			name = "_" + name
		}
	}

	return name
}

// Extension returns the lower-cased suffix after the last dot of name and
// whether name has a dot at all.
func Extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return "", false
	}
	return strings.ToLower(name[idx+1:]), true
}

func isPortable(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '-':
		return true
	default:
		return false
	}
}
