package blog

// FixturePosts is the seed corpus used by the in-memory repository. It mirrors
// the launch content of the site so the public pages work without a database.
func FixturePosts() []*Post {
	return []*Post{
		{
			ID:      "1",
			Slug:    "living-light-minimalist-lifestyle",
			Title:   "Living Light: The Minimalist Lifestyle and its Environmental Impact",
			Excerpt: "Discover how embracing minimalism can reduce your environmental footprint and lead to a more intentional life.",
			Content: `<p>In a world dominated by consumerism and material excess, minimalism offers a refreshing alternative that not only simplifies our lives but also benefits the environment.</p>
<h2 id="what-is-minimalism">What is Minimalism?</h2>
<p>At its core, minimalism is about intentionality. It's the practice of identifying what truly adds value to your life and eliminating everything else.</p>
<h2 id="environmental-benefits">Environmental Benefits</h2>
<p>When we consume less, we reduce waste, conserve resources, and decrease our carbon footprint. By purchasing fewer items and choosing quality over quantity, minimalists generate significantly less waste.</p>`,
			Date: "Feb 2, 2024",
			Author: Author{
				Name:   "Alex Morgan",
				Avatar: "https://images.unsplash.com/photo-1492562080023-ab3db95bfbce?w=400&h=400&fit=crop",
			},
			Image:      "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e?w=800&h=600&fit=crop",
			Categories: []string{"Minimalism", "Lifestyle", "Sustainability"},
			Tags:       []string{"minimalism", "sustainability", "eco-friendly", "intentional living"},
		},
		{
			ID:      "2",
			Slug:    "elevating-style-minimal-environmental-footprint",
			Title:   "Elevating Your Style with Minimal Environmental Footprint",
			Excerpt: "How to build a sustainable wardrobe that's both stylish and kind to the planet.",
			Content: `<p>Fashion is one of the world's most polluting industries, but that doesn't mean you have to sacrifice style for sustainability.</p>
<h2 id="capsule-wardrobe">The Capsule Wardrobe Solution</h2>
<p>A capsule wardrobe consists of a limited selection of versatile, high-quality items that can be mixed and matched to create numerous outfits.</p>
<h2 id="sustainable-materials">Sustainable Materials</h2>
<p>Look for items made from sustainable materials like organic cotton, hemp, Tencel, or recycled fabrics.</p>`,
			Date: "Feb 5, 2024",
			Author: Author{
				Name:   "Jamie Wilson",
				Avatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=400&h=400&fit=crop",
			},
			Image:      "https://images.unsplash.com/photo-1540518614846-7eded433c457?w=800&h=600&fit=crop",
			Categories: []string{"Minimalism", "Fashion", "Sustainability"},
			Tags:       []string{"sustainable fashion", "capsule wardrobe", "ethical clothing", "minimal style"},
		},
		{
			ID:      "3",
			Slug:    "designing-tranquility-minimalist-spaces",
			Title:   "Designing Tranquility: How Minimalist Spaces Support Eco-Friendly Living",
			Excerpt: "Create calm, sustainable living spaces that nurture both you and the environment.",
			Content: `<p>Our physical environment has a profound impact on our mental wellbeing. Minimalist design principles can help create spaces that feel calm and peaceful while also supporting sustainable living practices.</p>
<h2 id="principles-minimalist-design">Principles of Minimalist Design</h2>
<p>Minimalist spaces are characterized by simplicity, functionality, and intentionality. Every element serves a purpose.</p>
<h2 id="sustainable-elements">Sustainable Elements</h2>
<p>Maximize natural light to reduce electricity usage. Plants improve air quality, enhance wellbeing, and add life to minimalist spaces.</p>`,
			Date: "Feb 8, 2024",
			Author: Author{
				Name:   "Taylor Reed",
				Avatar: "https://images.unsplash.com/photo-1532073150508-0c1df022bdd1?w=400&h=400&fit=crop",
			},
			Image:      "https://images.unsplash.com/photo-1494438639946-1ebd1d20bf85?w=800&h=600&fit=crop",
			Categories: []string{"Design", "Minimalism", "Sustainability"},
			Tags:       []string{"interior design", "sustainable living", "minimalist home", "eco-friendly"},
		},
		{
			ID:      "4",
			Slug:    "wander-wisely-sustainable-travel",
			Title:   "Wander Wisely: Sustainable Travel Tips for the Minimalist Explorer",
			Excerpt: "Discover how to see the world with minimal impact and maximum experience.",
			Content: `<p>Travel enriches our lives with new perspectives and experiences, but it can also take a toll on the environment.</p>
<h2 id="pack-light">Pack Light, Travel Right</h2>
<p>Minimalist packing isn't just about convenience, it's also environmentally responsible. Lighter luggage means transportation vehicles consume less fuel.</p>
<h2 id="slow-travel">Slow Travel</h2>
<p>Rather than rushing between multiple destinations, spend more time in fewer places. This reduces transportation emissions while allowing for deeper experiences.</p>`,
			Date: "Feb 12, 2024",
			Author: Author{
				Name:   "Jordan Chen",
				Avatar: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=400&h=400&fit=crop",
			},
			Image:      "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?w=800&h=600&fit=crop",
			Categories: []string{"Travel", "Minimalism", "Sustainability"},
			Tags:       []string{"sustainable travel", "eco-tourism", "minimalist packing", "responsible travel"},
		},
		{
			ID:      "5",
			Slug:    "digital-minimalism-sustainable-tech",
			Title:   "Digital Minimalism: Sustainable Approaches to Technology",
			Excerpt: "How to create healthier relationships with technology while reducing your digital carbon footprint.",
			Content: `<p>In our hyperconnected world, digital minimalism offers a pathway to more intentional technology use that benefits both personal wellbeing and environmental sustainability.</p>
<h2 id="environmental-impact">The Environmental Impact of Digital Life</h2>
<p>Our digital activities have tangible environmental consequences, from the manufacturing of devices to the energy consumed by data centers.</p>
<h2 id="intentional-use">Intentional Use</h2>
<p>Establish boundaries around technology use. Maintain and repair your existing devices until they truly no longer meet your needs.</p>`,
			Date: "Feb 15, 2024",
			Author: Author{
				Name:   "Morgan Lee",
				Avatar: "https://images.unsplash.com/photo-1580489944761-15a19d654956?w=400&h=400&fit=crop",
			},
			Image:      "https://images.unsplash.com/photo-1516192518150-0d8fee5425e3?w=800&h=600&fit=crop",
			Categories: []string{"Technology", "Minimalism", "Sustainability"},
			Tags:       []string{"digital minimalism", "sustainable tech", "eco-friendly technology", "digital wellbeing"},
		},
		{
			ID:      "6",
			Slug:    "mindful-consumption-art-of-buying-less",
			Title:   "Mindful Consumption: The Art of Buying Less But Better",
			Excerpt: "Transform your relationship with consumption through quality-focused, intentional purchasing.",
			Content: `<p>In a world that equates consumption with happiness, mindful purchasing represents a radical shift: focusing on quality over quantity and impact over convenience.</p>
<h2 id="quality-principles">The Quality Principles</h2>
<p>Seek out items designed to last years or even decades. Choose items that serve multiple purposes or work well in various contexts.</p>
<h2 id="need-vs-want">Need vs. Want</h2>
<p>Distinguish between true needs and momentary desires. Research where and how products are made.</p>`,
			Date: "Feb 18, 2024",
			Author: Author{
				Name:   "Alex Morgan",
				Avatar: "https://images.unsplash.com/photo-1492562080023-ab3db95bfbce?w=400&h=400&fit=crop",
			},
			Image:      "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop",
			Categories: []string{"Lifestyle", "Minimalism", "Sustainability"},
			Tags:       []string{"conscious consumption", "quality over quantity", "sustainable living", "minimalism"},
		},
	}
}
