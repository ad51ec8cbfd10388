// Package icons suggests category icons from the fixed vocabulary the UI
// renders. The vocabulary is owned here as plain data; the UI maps each name
// to its Lucide glyph.
package icons

// Vocabulary is the ordered list of icon names the UI knows how to render.
// Model suggestions outside this list are dropped, never passed through.
var Vocabulary = []string{
	"ShoppingCart",
	"Utensils",
	"Car",
	"Wrench",
	"PawPrint",
	"Shirt",
	"HeartPulse",
	"GraduationCap",
	"Gift",
	"Plane",
	"Wallet",
	"Landmark",
	"TrendingUp",
	"TrendingDown",
	"MoreHorizontal",
	"Briefcase",
	"Home",
	"Bus",
	"Bike",
	"Fuel",
	"Coffee",
	"Pizza",
	"Beer",
	"Wine",
	"Apple",
	"Carrot",
	"Baby",
	"Dog",
	"Cat",
	"Gamepad2",
	"Music",
	"Film",
	"Tv",
	"Smartphone",
	"Laptop",
	"Wifi",
	"Zap",
	"Droplets",
	"Flame",
	"Stethoscope",
	"Pill",
	"Dumbbell",
	"Scissors",
	"Sparkles",
	"Book",
	"Newspaper",
	"Palette",
	"Camera",
	"Hammer",
	"Truck",
	"Train",
	"Ship",
	"Hotel",
	"Umbrella",
	"Sun",
	"CreditCard",
	"Banknote",
	"Coins",
	"PiggyBank",
	"Receipt",
	"CircleDollarSign",
	"HandCoins",
	"Award",
	"Star",
	"Heart",
	"Users",
	"ShoppingBag",
	"Package",
	"Leaf",
	"TreePine",
	"Flower2",
	"Glasses",
	"Watch",
	"Gem",
	"Key",
	"Lock",
	"Phone",
	"Mail",
	"Calendar",
	"Clock",
	"MapPin",
	"Globe",
	"Building2",
	"Store",
	"Factory",
	"School",
	"Church",
	"Theater",
	"Ticket",
	"PartyPopper",
	"Cake",
}

var vocabularySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Vocabulary))
	for _, name := range Vocabulary {
		set[name] = struct{}{}
	}
	return set
}()

// IsKnown reports whether name is part of the icon vocabulary.
func IsKnown(name string) bool {
	_, ok := vocabularySet[name]
	return ok
}

// Filter returns the members of names that belong to the vocabulary,
// preserving order and dropping duplicates.
func Filter(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if !IsKnown(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		filtered = append(filtered, name)
	}
	return filtered
}
