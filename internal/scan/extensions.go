package scan

// romExtensions is broad coverage for MiSTer-era libraries and beyond:
// cartridge dumps, disc images, compressed arcade sets, and 8/16-bit
// computer tape and disk images. All entries are lowercase with the dot.
var romExtensions = map[string]struct{}{
	// Atari and other early consoles
	".a26": {}, ".a52": {}, ".a78": {},
	// Nintendo home and handheld
	".nes": {}, ".fds": {}, ".sfc": {}, ".smc": {},
	".gb": {}, ".gbc": {}, ".gba": {},
	".nds": {}, ".dsi": {}, ".3ds": {}, ".cia": {},
	".n64": {}, ".z64": {}, ".v64": {},
	// Sega
	".sms": {}, ".gg": {}, ".sg": {}, ".sgx": {},
	".md": {}, ".smd": {}, ".gen": {}, ".32x": {}, ".meg": {},
	".bin": {}, ".rom": {},
	// PC Engine / TurboGrafx / SuperGrafx
	".pce": {},
	// SNK / Neo Geo
	".neo": {}, ".ngp": {}, ".ngc": {}, ".ngpc": {},
	// Optical and disc-based systems
	".cue": {}, ".iso": {}, ".chd": {}, ".gdi": {}, ".cdi": {},
	".mdf": {}, ".mds": {}, ".nrg": {},
	".cso": {}, ".pbp": {},
	// PSP / Vita
	".vpk": {}, ".psv": {}, ".psvita": {},
	// Switch-style formats
	".nsp": {}, ".xci": {},
	// Arcade and compressed sets
	".zip": {}, ".7z": {}, ".7zip": {}, ".rar": {},
	// Computer tape and disk images
	".adf": {}, ".d64": {}, ".tap": {}, ".tzx": {},
}
