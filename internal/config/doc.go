// Package config manages voysave's two configuration surfaces.
//
// The config file (config.yaml, loaded through Viper with VOYSAVE_*
// environment overrides) holds declarative options the user edits by hand:
// the snapshot root, the retention count and the watch debounce.
//
// The settings file (settings.toml) holds state the tool writes itself,
// currently the manual save-directory override. The two are kept separate
// so programmatic writes never reformat a hand-edited file.
package config
