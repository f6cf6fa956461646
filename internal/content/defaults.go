package content

// Defaults is the built-in image set used when no content database is
// configured.
func Defaults() []Image {
	return []Image{
		{
			ID:  "easy_office",
			URL: "https://images.unsplash.com/photo-1497215728101-856f4ea42174?q=80&w=2000",
			Hotspots: []Hotspot{
				{ID: "monitor", X: 50, Y: 35, Radius: 18, Clue: "I am the big Screen on the desk. I show you the pictures."},
				{ID: "keyboard", X: 50, Y: 75, Radius: 15, Clue: "I am full of letters and keys. Use me to type."},
				{ID: "mouse", X: 72, Y: 80, Radius: 12, Clue: "I sit next to the keys. Click me to move the pointer."},
				{ID: "coffee", X: 75, Y: 65, Radius: 10, Clue: "I am a white mug filled with a hot morning drink."},
				{ID: "lamp", X: 15, Y: 30, Radius: 12, Clue: "I am the light on the left side of the desk."},
			},
		},
		{
			ID:  "luxury_kitchen",
			URL: "https://images.unsplash.com/photo-1556911220-e15b29be8c8f?q=80&w=2000",
			Hotspots: []Hotspot{
				{ID: "stove", X: 32, Y: 65, Radius: 18, Clue: "I am the master of fire. I turn raw ingredients into a feast."},
				{ID: "kettle", X: 18, Y: 52, Radius: 12, Clue: "I scream when I'm ready for tea. I dance with the steam."},
				{ID: "fridge", X: 85, Y: 40, Radius: 20, Clue: "I am the winter in a box. I keep your secret snacks cold."},
				{ID: "sink", X: 55, Y: 68, Radius: 15, Clue: "I swallow water and wash your dirty dishes."},
				{ID: "clock", X: 50, Y: 12, Radius: 10, Clue: "I have hands but no body. I tell you when the feast is ready."},
			},
		},
	}
}
