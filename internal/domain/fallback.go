package domain

const (
	homerImage    = "https://cdn.glitch.com/3c3ffadc-3406-4440-bb95-d40ec8fcde72%2FHomerSimpson.png?1497567511939"
	milhouseImage = "https://cdn.glitch.com/3c3ffadc-3406-4440-bb95-d40ec8fcde72%2FMilhouseVanHouten.png?1497567513002"
)

var fallbackQuotes = []QuoteRecord{
	{
		Quote:              "Facts are meaningless. You could use facts to prove anything that's even remotely true.",
		Character:          HomerSimpson,
		Image:              homerImage,
		CharacterDirection: DirectionRight,
	},
	{
		Quote:              "Marge, don't discourage the boy! Weaseling out of things is important to learn. It's what separates us from the animals! Except the weasel.",
		Character:          HomerSimpson,
		Image:              homerImage,
		CharacterDirection: DirectionRight,
	},
	{
		Quote:              "Operator! Give me the number for 911!",
		Character:          HomerSimpson,
		Image:              homerImage,
		CharacterDirection: DirectionRight,
	},
	{
		Quote:              "Kids, you tried your best and you failed miserably. The lesson is, never try.",
		Character:          HomerSimpson,
		Image:              homerImage,
		CharacterDirection: DirectionRight,
	},
	{
		Quote:              "Trying is the first step toward failure.",
		Character:          HomerSimpson,
		Image:              homerImage,
		CharacterDirection: DirectionRight,
	},
	{
		Quote:              "Everything's coming up Milhouse!",
		Character:          MilhouseVanHouten,
		Image:              milhouseImage,
		CharacterDirection: DirectionRight,
	},
	{
		Quote:              "But my mom says I'm cool.",
		Character:          MilhouseVanHouten,
		Image:              milhouseImage,
		CharacterDirection: DirectionRight,
	},
}

// FallbackQuotes returns a fresh copy of the records shown when the quote
// source cannot be reached. The list is never empty.
func FallbackQuotes() []QuoteRecord {
	out := make([]QuoteRecord, len(fallbackQuotes))
	copy(out, fallbackQuotes)

	return out
}
