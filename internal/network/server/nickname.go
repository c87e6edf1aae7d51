package server

import "math/rand/v2"

// Fallback nicknames for humans who connect without giving a name.
var (
	adjectives = []string{
		"Brave", "Clever", "Lucky", "Sneaky", "Swift",
		"Quiet", "Bold", "Gentle", "Fierce", "Cheery",
		"Crafty", "Dapper", "Eager", "Frosty", "Grand",
	}

	nouns = []string{
		"Dragon", "Panda", "Tiger", "Falcon", "Otter",
		"Badger", "Heron", "Lynx", "Magpie", "Viper",
		"Corgi", "Raccoon", "Sparrow", "Walrus", "Gecko",
	}
)

// GenerateNickname builds a random "AdjectiveNoun" name.
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
