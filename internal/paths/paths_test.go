package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMachine builds an Env backed by in-memory maps.
type fakeMachine struct {
	goos    string
	home    string
	env     map[string]string
	exists  map[string]bool
	files   map[string]string
	listing map[string][]string // dir -> child dir names
}

func (m *fakeMachine) Env() Env {
	return Env{
		GOOS: m.goos,
		Home: m.home,
		Getenv: func(key string) string {
			return m.env[key]
		},
		Exists: func(path string) bool {
			return m.exists[filepath.Clean(path)]
		},
		ReadFile: func(path string) ([]byte, error) {
			if data, ok := m.files[filepath.Clean(path)]; ok {
				return []byte(data), nil
			}
			return nil, os.ErrNotExist
		},
		ListDir: func(path string) ([]os.DirEntry, error) {
			names, ok := m.listing[filepath.Clean(path)]
			if !ok {
				return nil, os.ErrNotExist
			}
			entries := make([]os.DirEntry, len(names))
			for i, n := range names {
				entries[i] = fakeDirEntry{name: n}
			}
			return entries, nil
		},
	}
}

type fakeDirEntry struct {
	name string
}

func (e fakeDirEntry) Name() string               { return e.name }
func (e fakeDirEntry) IsDir() bool                { return true }
func (e fakeDirEntry) Type() fs.FileMode          { return fs.ModeDir }
func (e fakeDirEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrInvalid }

func TestLiveDirCandidates_Linux(t *testing.T) {
	m := &fakeMachine{goos: "linux", home: "/home/kim"}

	candidates := LiveDirCandidates(m.Env())
	require.Len(t, candidates, 3)

	assert.True(t, strings.HasPrefix(candidates[0], "/home/kim/.local/share/Steam/"))
	assert.Contains(t, candidates[1], "/snap/steam/")
	assert.Contains(t, candidates[2], "/.var/app/com.valvesoftware.Steam/")

	for _, c := range candidates {
		assert.Contains(t, c, filepath.Join("compatdata", SteamAppID, "pfx"))
		assert.True(t, strings.HasSuffix(c, filepath.Join("STVoyager", "Saved", "SaveGames")))
	}
}

func TestResolveLiveDirectory_FirstExistingWins(t *testing.T) {
	m := &fakeMachine{goos: "linux", home: "/home/kim", exists: map[string]bool{}}
	candidates := LiveDirCandidates(m.Env())
	m.exists[candidates[1]] = true
	m.exists[candidates[2]] = true

	dir, found := ResolveLiveDirectory(m.Env())
	require.True(t, found)
	assert.Equal(t, candidates[1], dir)
}

func TestResolveLiveDirectory_NoneFound(t *testing.T) {
	m := &fakeMachine{goos: "linux", home: "/home/kim"}

	dir, found := ResolveLiveDirectory(m.Env())
	assert.False(t, found)
	assert.Empty(t, dir)
}

func TestLiveDirCandidates_WindowsAppDataFirst(t *testing.T) {
	m := &fakeMachine{
		goos: "windows",
		home: `C:\Users\kim`,
		env:  map[string]string{"LOCALAPPDATA": `C:\Users\kim\AppData\Local`},
	}

	candidates := LiveDirCandidates(m.Env())
	require.NotEmpty(t, candidates)
	assert.Equal(t,
		filepath.Join(`C:\Users\kim\AppData\Local`, "STVoyager", "Saved", "SaveGames"),
		candidates[0])
}

func TestLiveDirCandidates_WindowsHomeFallback(t *testing.T) {
	m := &fakeMachine{goos: "windows", home: `C:\Users\kim`, env: map[string]string{}}

	candidates := LiveDirCandidates(m.Env())
	require.NotEmpty(t, candidates)
	assert.Contains(t, candidates[0], filepath.Join("AppData", "Local"))
}

func TestLiveDirCandidates_SteamLibraryDiscovery(t *testing.T) {
	steamRoot := filepath.Join(`C:\Program Files (x86)`, "Steam")
	manifest := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	library := filepath.Join(`D:\SteamLibrary`)
	saveBase := filepath.Join(library, "steamapps", "common",
		"Star Trek Voyager - Across the Unknown", "STVoyager", "Saved", "SaveGames")

	m := &fakeMachine{
		goos: "windows",
		home: `C:\Users\kim`,
		env:  map[string]string{"ProgramFiles(x86)": `C:\Program Files (x86)`},
		exists: map[string]bool{
			filepath.Clean(manifest): true,
			filepath.Clean(library):  true,
			filepath.Clean(saveBase): true,
		},
		files: map[string]string{
			filepath.Clean(manifest): `
"libraryfolders"
{
	"0"
	{
		"path"		"D:\\SteamLibrary"
	}
}`,
		},
		listing: map[string][]string{
			filepath.Clean(saveBase): {"76561198012345678", "thumbnails"},
		},
	}

	candidates := LiveDirCandidates(m.Env())

	// The per-account folder must be preferred over the SaveGames parent.
	assert.Contains(t, candidates, filepath.Join(saveBase, "76561198012345678"))
	assert.NotContains(t, candidates, saveBase)
}

func TestLiveDirCandidates_SteamBaseWithoutAccountDirs(t *testing.T) {
	steamRoot := filepath.Join(`C:\Program Files (x86)`, "Steam")
	manifest := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	saveBase := filepath.Join(steamRoot, "steamapps", "common",
		"Star Trek Voyager - Across the Unknown", "STVoyager", "Saved", "SaveGames")

	m := &fakeMachine{
		goos: "windows",
		home: `C:\Users\kim`,
		env:  map[string]string{"ProgramFiles(x86)": `C:\Program Files (x86)`},
		exists: map[string]bool{
			filepath.Clean(manifest): true,
			filepath.Clean(saveBase): true,
		},
		files: map[string]string{
			filepath.Clean(manifest): `"path" "` + strings.ReplaceAll(steamRoot, `\`, `\\`) + `"`,
		},
		listing: map[string][]string{
			filepath.Clean(saveBase): {"thumbnails"},
		},
	}

	candidates := LiveDirCandidates(m.Env())
	assert.Contains(t, candidates, saveBase)
}

func TestSnapshotRoot(t *testing.T) {
	root := SnapshotRoot()
	require.NotEmpty(t, root)
	assert.Contains(t, root, AppName)
	assert.True(t, strings.HasSuffix(root, "backups"))
}

func TestSettingsPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(SettingsPath(), filepath.Join("voysave", "settings.toml")))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir, 0))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent.
	require.NoError(t, EnsureDir(dir, 0))
}
