package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used for voysave's own data.
// It matches the original save manager so existing backups are found.
const AppName = "VoyagerSaveManager"

// SteamAppID is the Steam application ID for
// "Star Trek Voyager - Across the Unknown".
const SteamAppID = "2643390"

// gameInstallDirName is the game's folder name inside a Steam library's
// steamapps/common directory.
const gameInstallDirName = "Star Trek Voyager - Across the Unknown"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// Env abstracts the process environment and filesystem existence checks so
// candidate enumeration stays a pure function and tests can fake a machine.
type Env struct {
	// GOOS is the target operating system (runtime.GOOS by default).
	GOOS string

	// Home is the user's home directory.
	Home string

	// Getenv looks up an environment variable, returning "" when unset.
	Getenv func(key string) string

	// Exists reports whether a path exists on disk.
	Exists func(path string) bool

	// ReadFile reads a file's contents (used for Steam library manifests).
	ReadFile func(path string) ([]byte, error)

	// ListDir enumerates a directory (used for per-account save folders).
	ListDir func(path string) ([]os.DirEntry, error)
}

// DefaultEnv returns an Env backed by the real process environment and
// filesystem.
func DefaultEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{
		GOOS:   runtime.GOOS,
		Home:   home,
		Getenv: os.Getenv,
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		ReadFile: os.ReadFile,
		ListDir:  os.ReadDir,
	}
}

// saveGamesRel is the game's save location relative to its AppData-style root.
func saveGamesRel() string {
	return filepath.Join("STVoyager", "Saved", "SaveGames")
}

// LiveDirCandidates returns the ordered list of candidate save directories
// for the given environment. The first existing entry is the live directory.
//
// On Windows the standard AppData location comes first (non-Steam and
// Microsoft Store installs), followed by Steam library installs discovered
// via libraryfolders.vdf. Inside a Steam install, per-account save folders
// (numeric names of 15+ digits) are preferred over the parent directory.
//
// On Linux the candidates are the Proton prefixes of the known Steam
// installation methods: native, snap, and Flatpak.
func LiveDirCandidates(env Env) []string {
	if env.GOOS == "windows" {
		return windowsCandidates(env)
	}
	return linuxCandidates(env)
}

func windowsCandidates(env Env) []string {
	var candidates []string

	local := env.Getenv("LOCALAPPDATA")
	if local == "" && env.Home != "" {
		local = filepath.Join(env.Home, "AppData", "Local")
	}
	if local != "" {
		candidates = append(candidates, filepath.Join(local, saveGamesRel()))
	}

	for _, lib := range steamLibraryRoots(env) {
		base := filepath.Join(lib, "steamapps", "common", gameInstallDirName, saveGamesRel())
		if !env.Exists(base) {
			continue
		}
		if accounts := accountSaveDirs(env, base); len(accounts) > 0 {
			candidates = append(candidates, accounts...)
		} else {
			candidates = append(candidates, base)
		}
	}

	return candidates
}

func linuxCandidates(env Env) []string {
	if env.Home == "" {
		return nil
	}

	// Proton prefix path below steamapps/compatdata/<appid>/
	prefixRel := filepath.Join(
		"steamapps", "compatdata", SteamAppID,
		"pfx", "drive_c", "users", "steamuser", "AppData", "Local",
		saveGamesRel(),
	)

	steamRoots := []string{
		filepath.Join(env.Home, ".local", "share", "Steam"),
		filepath.Join(env.Home, "snap", "steam", "common", ".local", "share", "Steam"),
		filepath.Join(env.Home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
	}

	candidates := make([]string, 0, len(steamRoots))
	for _, root := range steamRoots {
		candidates = append(candidates, filepath.Join(root, prefixRel))
	}
	return candidates
}

// ResolveLiveDirectory returns the first existing candidate save directory.
// A false result is not a fault; the user can still set the directory
// manually with `voysave config set-save-dir`.
func ResolveLiveDirectory(env Env) (string, bool) {
	for _, c := range LiveDirCandidates(env) {
		if env.Exists(c) {
			return c, true
		}
	}
	return "", false
}

// SnapshotRoot returns the directory holding all snapshots.
// It follows the platform app-data convention (XDG data home) and is
// returned even if it does not yet exist; callers create it lazily.
func SnapshotRoot() string {
	return filepath.Join(xdg.DataHome, AppName, "backups")
}

// ConfigDir returns voysave's configuration directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "voysave")
}

// SettingsPath returns the path of the persisted user settings file.
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.toml")
}

// EnsureDir creates the directory and any necessary parents with the given
// permissions. If perm is 0, DefaultDirPerm is used. Idempotent.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}
