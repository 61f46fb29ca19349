package config

const (
	defaultDataDir  = "data"
	defaultPacksDir = "packs"
	defaultLogDir   = "~/.local/share/bindery/logs"

	defaultHostVersion   = "12.331"
	defaultSystemID      = "dh2e"
	defaultSystemVersion = "1.0.0"
	defaultAuthor        = "bindery"

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultNotifyRequestTimeout = 10

	defaultScenesName     = "scenes"
	defaultScenesLabel    = "Scenes"
	defaultScenesDir      = "scenes"
	defaultScenesCombined = "scenes.json"
)

// Default returns a Config populated with repository defaults. The pack list
// mirrors the campaign data layout: one pack per source file, plus the merged
// scene pack.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			PacksDir: defaultPacksDir,
			LogDir:   defaultLogDir,
		},
		Provenance: Provenance{
			HostVersion:   defaultHostVersion,
			SystemID:      defaultSystemID,
			SystemVersion: defaultSystemVersion,
			Author:        defaultAuthor,
		},
		Packs: []Pack{
			{Name: "npcs", Label: "NPCs", Kind: "actor", Source: "actors/npcs.json"},
			{Name: "enemies", Label: "Enemies", Kind: "actor", Source: "actors/enemies.json"},
			{Name: "weapons", Label: "Weapons", Kind: "item", Source: "items/weapons.json"},
			{Name: "armour", Label: "Armour", Kind: "item", Source: "items/armour.json"},
			{Name: "gear", Label: "Gear", Kind: "item", Source: "items/gear.json"},
			{Name: "ammunition", Label: "Ammunition", Kind: "item", Source: "items/ammunition.json"},
			{Name: "journals", Label: "Journals", Kind: "journal", Source: "journals/journals.json"},
			{Name: "tables", Label: "Roll Tables", Kind: "table", Source: "tables/tables.json"},
		},
		Scenes: Scenes{
			Name:      defaultScenesName,
			Label:     defaultScenesLabel,
			SourceDir: defaultScenesDir,
			Combined:  defaultScenesCombined,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Build:          true,
			Import:         true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
