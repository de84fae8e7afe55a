// Package file stores kbot's settings in a TOML file, by default
// ~/.kbot/config.toml. Dot-separated keys such as "chunking.size" map to
// TOML tables, and every Set or Unset is written through to disk.
package file
