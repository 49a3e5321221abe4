// Package coffeeinfo holds static reference tables about roast levels and
// growing origins.
package coffeeinfo

import "strings"

type Roast struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Flavor      string `json:"flavor"`
	Body        string `json:"body"`
	Caffeine    string `json:"caffeine"`
	BestFor     string `json:"bestFor"`
	Description string `json:"description"`
}

type Origin struct {
	Country     string `json:"country"`
	Region      string `json:"region"`
	Flag        string `json:"flag"`
	Flavor      string `json:"flavor"`
	Altitude    string `json:"altitude"`
	Process     string `json:"process"`
	Description string `json:"description"`
}

var roasts = map[string]Roast{
	"light": {
		Name:        "Light Roast",
		Color:       "#C4A484",
		Flavor:      "Bright, acidic, fruity, floral notes. Retains most origin characteristics.",
		Body:        "Light",
		Caffeine:    "Highest",
		BestFor:     "Pour over, drip coffee",
		Description: "Roasted to just before or at first crack. Light brown color, no oil on surface.",
	},
	"medium": {
		Name:        "Medium Roast",
		Color:       "#8B6914",
		Flavor:      "Balanced acidity and body. Caramel, nutty, chocolate notes emerge.",
		Body:        "Medium",
		Caffeine:    "Moderate",
		BestFor:     "All brewing methods",
		Description: "Roasted between first and second crack. Medium brown, little to no oil.",
	},
	"medium-dark": {
		Name:        "Medium-Dark Roast",
		Color:       "#5C4033",
		Flavor:      "Bittersweet, rich. Chocolate, spice notes. Less acidity.",
		Body:        "Full",
		Caffeine:    "Moderate-Low",
		BestFor:     "Espresso, French press",
		Description: "Roasted to start of second crack. Dark brown with some oil on surface.",
	},
	"dark": {
		Name:        "Dark Roast",
		Color:       "#3C2415",
		Flavor:      "Bold, smoky, bitter. Roast flavor dominates over origin.",
		Body:        "Heavy",
		Caffeine:    "Lowest",
		BestFor:     "Espresso, cold brew",
		Description: "Roasted through second crack. Shiny black, oily surface.",
	},
}

var origins = map[string]Origin{
	"ethiopia": {
		Country:     "Ethiopia",
		Region:      "East Africa",
		Flag:        "🇪🇹",
		Flavor:      "Floral, fruity, wine-like, blueberry, jasmine",
		Altitude:    "1,500-2,200m",
		Process:     "Washed & Natural",
		Description: "Birthplace of coffee. Known for complex, fruity profiles.",
	},
	"colombia": {
		Country:     "Colombia",
		Region:      "South America",
		Flag:        "🇨🇴",
		Flavor:      "Balanced, nutty, caramel, mild fruit, citrus",
		Altitude:    "1,200-2,000m",
		Process:     "Washed",
		Description: "Consistently high quality. Smooth, well-balanced cups.",
	},
	"brazil": {
		Country:     "Brazil",
		Region:      "South America",
		Flag:        "🇧🇷",
		Flavor:      "Nutty, chocolate, low acidity, sweet",
		Altitude:    "800-1,600m",
		Process:     "Natural & Pulped Natural",
		Description: "World's largest producer. Great for espresso blends.",
	},
	"kenya": {
		Country:     "Kenya",
		Region:      "East Africa",
		Flag:        "🇰🇪",
		Flavor:      "Bright, wine-like acidity, blackcurrant, tomato",
		Altitude:    "1,400-2,000m",
		Process:     "Washed",
		Description: "Bold, complex flavors. Highly regarded AA grade.",
	},
	"guatemala": {
		Country:     "Guatemala",
		Region:      "Central America",
		Flag:        "🇬🇹",
		Flavor:      "Chocolate, spice, floral, apple, full body",
		Altitude:    "1,300-2,000m",
		Process:     "Washed",
		Description: "Volcanic soil creates distinctive smoky-chocolate notes.",
	},
	"costa-rica": {
		Country:     "Costa Rica",
		Region:      "Central America",
		Flag:        "🇨🇷",
		Flavor:      "Clean, bright, honey, citrus, balanced",
		Altitude:    "1,200-1,800m",
		Process:     "Washed & Honey",
		Description: "Known for clean, bright cups with excellent quality control.",
	},
	"indonesia": {
		Country:     "Indonesia",
		Region:      "Southeast Asia",
		Flag:        "🇮🇩",
		Flavor:      "Earthy, herbal, spicy, full body, low acidity",
		Altitude:    "900-1,800m",
		Process:     "Wet-hulled (Giling Basah)",
		Description: "Sumatra, Java, Sulawesi. Unique earthy, bold profiles.",
	},
	"yemen": {
		Country:     "Yemen",
		Region:      "Middle East",
		Flag:        "🇾🇪",
		Flavor:      "Wild, fruity, wine-like, chocolate, spice",
		Altitude:    "1,500-2,500m",
		Process:     "Natural",
		Description: "Ancient coffee tradition. Complex, exotic flavors.",
	},
}

// Roasts returns a copy of the roast table keyed by id.
func Roasts() map[string]Roast {
	out := make(map[string]Roast, len(roasts))
	for k, v := range roasts {
		out[k] = v
	}
	return out
}

func Origins() map[string]Origin {
	out := make(map[string]Origin, len(origins))
	for k, v := range origins {
		out[k] = v
	}
	return out
}

// RoastByID looks a roast up case-insensitively.
func RoastByID(id string) (Roast, bool) {
	r, ok := roasts[strings.ToLower(strings.TrimSpace(id))]
	return r, ok
}

func OriginByID(id string) (Origin, bool) {
	o, ok := origins[strings.ToLower(strings.TrimSpace(id))]
	return o, ok
}
