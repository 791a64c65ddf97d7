// Package paths locates the game's live save directory and voysave's own
// data directories across platforms and install methods.
//
// Live directory detection tries an ordered list of candidates: the
// standard AppData location, then every Steam library discovered through
// steamapps/libraryfolders.vdf (Windows), or the Proton prefixes of native,
// snap, and Flatpak Steam installs (Linux). Candidate enumeration is a pure
// function over an injected [Env], so tests can simulate any machine
// without touching the real filesystem.
//
// A missing live directory is a soft condition, not an error: the game may
// not have been run yet, or the user can point voysave at the directory
// manually.
//
// voysave's own directories (snapshot root, config) follow the XDG Base
// Directory Specification via github.com/adrg/xdg.
package paths
