// Package tasting holds the fixed tasting-note and overlay tables for ritual
// tea blends and decides which blends need notes filled in.
package tasting

// Note is one entry of the tasting-note library
type Note struct {
	Key  string
	Text string
}

// Descriptor is the short ritual copy shown on a blend card overlay
type Descriptor struct {
	Keyword    string `json:"keyword"`
	Descriptor string `json:"descriptor"`
}

var library = []Note{
	{
		Key:  "goldenHour",
		Text: "Honeyed warmth meets delicate florals. Notes of chamomile and rose petals unfold on the palate, followed by a subtle hint of vanilla and golden turmeric. The finish is silky, grounding, and reminiscent of a sunset held in liquid form.",
	},
	{
		Key:  "twilightSerenity",
		Text: "A symphony of lavender and bergamot opens the senses, melting into creamy notes of ashwagandha and cardamom. The middle notes reveal hints of jasmine and sandalwood, creating a meditative warmth that lingers like twilight's final glow.",
	},
	{
		Key:  "moonlightMeditation",
		Text: "Cooling mint and refreshing lemongrass dance with the earthiness of brahmi and holy basil. A whisper of licorice root adds sweetness, while the finish is clean, clarifying, and deeply calming—like moonlight on still water.",
	},
	{
		Key:  "spicedSanctuary",
		Text: "Rich cinnamon and warming ginger create a bold foundation, layered with clove, black pepper, and a touch of nutmeg. Beneath lies the grounding presence of shatavari and gotu kola, with a honey-like sweetness that soothes the soul.",
	},
	{
		Key:  "herbalHarmony",
		Text: "A delicate balance of mint, basil, and fennel creates a refreshing opening. The heart reveals gentle notes of tulsi and brahmi, while the base of licorice root and dried rose petals provides a naturally sweet, harmonious finish.",
	},
	{
		Key:  "amberDreams",
		Text: "Warm amber tones of rooibos and turmeric blend with sweet notes of cinnamon and vanilla. Hints of cardamom and a touch of black pepper add complexity, while the finish is velvety, comforting, and deeply nourishing.",
	},
	{
		Key:  "celestialBlend",
		Text: "Ethereal jasmine and rose open to reveal notes of hibiscus and butterfly pea flower. The middle unfolds with subtle spice from cardamom and a whisper of sandalwood. The finish is floral, slightly tart, and transcendent.",
	},
	{
		Key:  "sacredStillness",
		Text: "Earthy notes of ashwagandha and shatavari form the foundation, topped with calming chamomile and lavender. A hint of vanilla and honey sweetness emerges, creating a deeply grounding, meditative experience that invites complete surrender.",
	},
}

var overlays = []Descriptor{
	{
		Keyword:    "Golden Awakening",
		Descriptor: "Illuminate your evening with warmth and gentle clarity. A luminous blend that awakens the senses while preparing the body for restful transition.",
	},
	{
		Keyword:    "Twilight Embrace",
		Descriptor: "Surrender to the magic hour. This blend wraps you in lavender's calm while cardamom grounds your spirit, creating the perfect threshold between day and night.",
	},
	{
		Keyword:    "Lunar Clarity",
		Descriptor: "Cool, refreshing, and deeply centering. A moonlit journey through mint and basil that clears the mind and invites profound stillness.",
	},
	{
		Keyword:    "Warming Sanctuary",
		Descriptor: "Bold spices create a protective cocoon. This blend ignites inner warmth while grounding herbs anchor you in safety and comfort.",
	},
	{
		Keyword:    "Balanced Renewal",
		Descriptor: "A symphony of fresh herbs in perfect balance. Each sip brings renewal, clarity, and the gentle harmony of nature's healing garden.",
	},
	{
		Keyword:    "Amber Reverie",
		Descriptor: "Drift into golden dreams. Warm spices and velvety textures create a luxurious escape, perfect for evening contemplation and rest.",
	},
	{
		Keyword:    "Cosmic Journey",
		Descriptor: "Transcend the ordinary. Floral notes transport you to celestial realms where jasmine and rose guide your spirit toward infinite peace.",
	},
	{
		Keyword:    "Deep Surrender",
		Descriptor: "The ultimate invitation to let go. Earthy roots and calming herbs create a sanctuary within, where complete rest becomes possible.",
	},
}

// Library returns a copy of the ordered tasting-note table
func Library() []Note {
	out := make([]Note, len(library))
	copy(out, library)
	return out
}

// NoteAt returns the library entry for a position, cycling past the end
func NoteAt(index int) Note {
	return library[cycle(index, len(library))]
}

// OverlayDescriptors returns a copy of the ordered overlay table
func OverlayDescriptors() []Descriptor {
	out := make([]Descriptor, len(overlays))
	copy(out, overlays)
	return out
}

// OverlayAt returns the overlay descriptor for a card position, cycling past the end
func OverlayAt(index int) Descriptor {
	return overlays[cycle(index, len(overlays))]
}

func cycle(index, n int) int {
	i := index % n
	if i < 0 {
		i += n
	}
	return i
}
