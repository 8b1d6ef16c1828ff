package participant

import "github.com/gosimple/slug"

// Roster lists the identities allowed to take part.
var Roster = []string{
	"Karn",
	"Petch",
	"Jern",
	"Tae",
	"Proud",
	"Mild",
	"Son",
}

func InRoster(name string) bool {
	for _, n := range Roster {
		if n == name {
			return true
		}
	}
	return false
}

// ProfilePicture returns the image filename served from /s/profiles/.
func ProfilePicture(name string) string {
	return slug.Make(name) + ".png"
}
