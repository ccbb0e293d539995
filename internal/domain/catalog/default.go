package catalog

// defaultNames is the built-in candidate list.
var defaultNames = []string{ //nolint:gochecknoglobals // static catalog
	"Super Mario World",
	"Doom",
	"Super Metroid",
	"Final Fantasy VI",
	"Chrono Trigger",
	"Donkey Kong Country 2: Diddy's Kong Quest",
	"Super Mario 64",
	"Final Fantasy VII",
	"Castlevania: Symphony of the Night",
	"Resident Evil 2",
	"Metal Gear Solid",
	"The Legend of Zelda: Ocarina of Time",
	"Final Fantasy IX",
	"Metroid Prime",
	"Grand Theft Auto: San Andreas",
	"Halo 2",
	"Metal Gear Solid 3: Snake Eater",
	"Resident Evil 4",
	"Shadow of the Colossus",
	"Kingdom Hearts II",
	"God of War II",
	"Bioshock",
	"Halo 3",
	"Portal",
	"Super Mario Galaxy",
	"Uncharted 2: Among Thieves",
	"Assassins Creed II",
	"God of War III",
	"Red Dead Redemption",
	"Dark Souls",
	"Portal 2",
	"Minecraft",
	"The Elder Scrolls V: Skyrim",
	"The Last of Us",
	"Grand Theft Auto V",
	"Bloodborne",
	"The Witcher 3: Wild Hunt",
	"Undertale",
	"Dark Souls III",
	"Uncharted 4: A Thief's End",
	"The Legend of Zelda: Breath of the Wild",
	"Super Mario Odyssey",
	"Hollow Knight",
	"Persona 5",
	"God of War",
	"Red Dead Redemption 2",
	"Celeste",
	"Hades",
	"It Takes Two",
	"Elden Ring",
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return MustNew(defaultNames)
}
