package paths

import (
	"path/filepath"
	"regexp"
	"strings"
)

// libraryPathPattern matches `"path"  "<value>"` lines in Steam's
// libraryfolders.vdf manifest.
var libraryPathPattern = regexp.MustCompile(`"path"\s*"([^"]+)"`)

// steamRootCandidates returns the possible Steam installation roots on
// Windows, in probe order.
func steamRootCandidates(env Env) []string {
	dirs := []struct {
		envKey   string
		fallback string
	}{
		{"ProgramFiles(x86)", `C:\Program Files (x86)`},
		{"ProgramFiles", `C:\Program Files`},
		{"LOCALAPPDATA", ""},
		{"USERPROFILE", ""},
	}

	var roots []string
	for _, d := range dirs {
		base := env.Getenv(d.envKey)
		if base == "" {
			base = d.fallback
		}
		if base == "" {
			continue
		}
		roots = append(roots, filepath.Join(base, "Steam"))
	}
	return roots
}

// steamLibraryRoots returns all Steam library folders on the machine.
// Each Steam root's steamapps/libraryfolders.vdf lists the libraries the
// user has added (possibly on other drives); the root itself is also a
// library. Results are deduplicated and limited to paths that exist.
func steamLibraryRoots(env Env) []string {
	var roots []string
	seen := make(map[string]bool)

	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			roots = append(roots, p)
		}
	}

	for _, steamRoot := range steamRootCandidates(env) {
		manifest := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
		if !env.Exists(manifest) {
			continue
		}

		data, err := env.ReadFile(manifest)
		if err != nil {
			continue
		}
		for _, lib := range parseLibraryFolders(string(data)) {
			if env.Exists(lib) {
				add(lib)
			}
		}
		add(steamRoot)
	}

	return roots
}

// parseLibraryFolders extracts library paths from libraryfolders.vdf
// content. VDF escapes backslashes, so doubled separators are collapsed.
func parseLibraryFolders(content string) []string {
	var paths []string
	for _, m := range libraryPathPattern.FindAllStringSubmatch(content, -1) {
		raw := m[1]
		raw = strings.ReplaceAll(raw, `\\`, string(filepath.Separator))
		raw = strings.ReplaceAll(raw, `\`, string(filepath.Separator))
		paths = append(paths, raw)
	}
	return paths
}

// accountSaveDirs returns per-account save folders inside a SaveGames
// directory. Steam names them after the 64-bit account ID, which is a
// numeric string of at least 15 digits.
func accountSaveDirs(env Env, base string) []string {
	entries, err := env.ListDir(base)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && isSteamAccountID(e.Name()) {
			dirs = append(dirs, filepath.Join(base, e.Name()))
		}
	}
	return dirs
}

// isSteamAccountID reports whether name looks like a 64-bit Steam ID.
func isSteamAccountID(name string) bool {
	if len(name) < 15 {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
