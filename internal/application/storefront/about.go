package storefront

import (
	"context"

	"github.com/saanjh/storefront/internal/domain/reveal"
)

const wixMedia = "https://static.wixstatic.com/media/"

func staticReveal(i int) reveal.Spec {
	return reveal.Staggered(i, PillarStagger)
}

// About builds the brand story. The copy is fixed; nothing is fetched.
func (s *PageService) About(ctx context.Context) *AboutPage {
	defer s.record(ctx, PageAbout, nil)

	return &AboutPage{
		Hero: AboutHero{
			Title:    "Our Story",
			Image:    wixMedia + "b117e9_5f6f2eb45f914273a727e0253263d229~mv2.png?originWidth=1280&originHeight=704",
			ImageAlt: "Golden chai steam and ritual hands",
		},
		Story: []AboutSection{
			{
				Title: "Born from Golden Hour",
				Paragraphs: []string{
					"Saanjh Rituals was born from a longing to reclaim the sacred pause, the golden hour when day surrenders to night and the world exhales. In the chaos of modern life, we sought to create a sanctuary, a ritual of return to ancestral wisdom.",
					"Drawing from the ancient healing traditions of Ayurveda, we curate rare botanicals from the foothills of the Himalayas, each chosen for its ability to ground, restore, and elevate. Our blends are not just tea. They are ceremonies, invitations to slow down and reconnect with the rhythms of nature.",
					"Saanjh is more than a brand. It is a movement toward intentional living, a celebration of heritage, and a commitment to wellness that honors both body and spirit.",
				},
				Image:    wixMedia + "b117e9_c11da3e25bea447a816db57d025aecb5~mv2.png?originWidth=960&originHeight=704",
				ImageAlt: "Saanjh brand origin story",
				Reveal:   staticReveal(0),
			},
			{
				Title: "A Heritage Reimagined",
				Paragraphs: []string{
					"Growing up in a household where chai was more than a beverage, it was a ritual, a conversation, a moment of stillness, I witnessed the transformative power of intentional pauses. My grandmother would blend her own spices, each ingredient chosen with care, each cup brewed with devotion.",
					"Years later, living in a world that glorifies busyness, I found myself yearning for those golden-hour moments. I began studying Ayurveda, traveling to remote villages in India, learning from herbalists who had preserved ancient knowledge for generations.",
					"Saanjh Rituals is my offering to you, a bridge between the wisdom of the past and the needs of the present. Each blend is a love letter to heritage, a reminder that wellness is not a trend, but a timeless practice.",
				},
				Image:      wixMedia + "b117e9_8945bef55e654907945c0e37e370fd88~mv2.png?originWidth=960&originHeight=704",
				ImageAlt:   "Founder story and heritage",
				ImageFirst: true,
				Reveal:     staticReveal(1),
			},
		},
		Ingredients: AboutGroup{
			Title:    "Our Ingredient Philosophy",
			Subtitle: "Every botanical is a story, every blend a meditation",
			Sections: []AboutSection{
				{
					Title: "Sourced with Intention",
					Paragraphs: []string{
						"We partner with small-scale farmers and herbalists in the Himalayan foothills, ensuring that every ingredient is harvested sustainably and ethically. Our botanicals are wild-crafted or organically grown, free from pesticides and chemicals.",
						"From ashwagandha roots that calm the nervous system to tulsi leaves that purify the spirit, each ingredient is chosen for its healing properties and its connection to Ayurvedic tradition.",
					},
					Image:    wixMedia + "b117e9_ea5289798e6348ab9a602b2487ffc00d~mv2.png?originWidth=960&originHeight=704",
					ImageAlt: "Ingredient sourcing and botanicals",
					Reveal:   staticReveal(0),
				},
				{
					Title: "Crafted with Care",
					Paragraphs: []string{
						"Our blends are hand-crafted in small batches, ensuring freshness and potency. We honor the traditional methods of Ayurvedic preparation, allowing each botanical to express its full healing potential.",
						"No artificial flavors, no fillers, no shortcuts. Just pure, potent botanicals blended with intention and reverence.",
					},
					Image:      wixMedia + "b117e9_55a136a05d16461797b3e58f5326d0ce~mv2.png?originWidth=960&originHeight=704",
					ImageAlt:   "Ingredient quality and craftsmanship",
					ImageFirst: true,
					Reveal:     staticReveal(1),
				},
			},
		},
		Ritual: PrincipleGroup{
			Title:    "The Ritual Philosophy",
			Subtitle: "Wellness is not a destination, but a daily practice",
			Principles: []Principle{
				{
					Title:  "The Sacred Pause",
					Body:   "In Ayurveda, the evening is a time of transition, a sacred pause between the activity of day and the rest of night. This is when we ground ourselves, release what no longer serves us, and prepare for renewal. Our rituals honor this liminal space, inviting you to slow down and reconnect with your inner wisdom.",
					Reveal: staticReveal(0),
				},
				{
					Title:  "Sensory Wellness",
					Body:   "Our approach to wellness is deeply sensory. We believe that healing happens not just through what we consume, but through how we engage with it. The warmth of the cup in your hands, the aroma of spices unfurling, the first sip that grounds you. These are the moments that transform a simple act into a sacred ritual.",
					Reveal: staticReveal(1),
				},
				{
					Title:  "Inclusive Healing",
					Body:   "Wellness should be accessible to all. While our blends are rooted in ancient Indian traditions, they are designed for modern lives: busy, complex, and beautifully diverse. Whether you're seeking calm after a long day, support for digestion, or simply a moment of beauty, our rituals welcome you exactly as you are.",
					Reveal: staticReveal(2),
				},
			},
		},
		Closing: AboutClosing{
			Title:    "Welcome to the Circle",
			Body:     "At Saanjh Rituals, you are not just a customer. You are part of a community that values slowness, intention, and the healing power of nature. We invite you to join us in honoring the golden hour, in reclaiming the sacred pause, and in discovering the transformative power of ritual.",
			Blessing: "May your evenings be golden, your rituals be sacred, and your wellness be timeless.",
		},
	}
}
