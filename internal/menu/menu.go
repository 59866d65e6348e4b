package menu

// Item is one purchasable dish on the static menu.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Items returns the menu. The set is a hardcoded constant; a fresh slice is
// handed out per call so callers may not mutate the catalog.
func Items() []Item {
	return []Item{
		{Name: "Kebab", Price: 200, Image: "kebab.jpg"},
		{Name: "Fried potatoes with mushrooms", Price: 110, Image: "tasty1.jpg"},
		{Name: "Pilaf", Price: 150, Image: "uzbek-cuisine.jpg"},
		{Name: "Sushi set", Price: 180, Image: "sushi-rolls-maki.jpg"},
		{Name: "Cherry dumplings", Price: 135, Image: "cherries-black.jpg"},
	}
}
