package server

import (
	"math/rand/v2"
)

// 昵称词库
var (
	adjectives = []string{
		"brave", "clever", "happy", "mystic", "swift",
		"noble", "lucky", "steady", "lively", "witty",
		"calm", "bold", "gentle", "fierce", "shiny",
	}

	nouns = []string{
		"dragon", "phoenix", "panda", "tiger", "fox",
		"otter", "koala", "corgi", "falcon", "badger",
		"heron", "lynx", "raven", "turtle", "wolf",
	}
)

// GenerateNickname names a player who sent an empty username.
func GenerateNickname() string {
	adj := adjectives[rand.IntN(len(adjectives))]
	noun := nouns[rand.IntN(len(nouns))]
	return adj + "-" + noun
}
