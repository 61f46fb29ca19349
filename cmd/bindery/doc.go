// Command bindery compiles campaign JSON content into host compendium packs
// and reports on previous builds. Run "bindery build" from a campaign
// repository root, or point --config at a bindery.toml elsewhere.
package main
