package word

// Built-in pools, a drawability-sorted slice of the usual suspects.
var defaultWords = map[Tier][]string{
	TierEasy: {
		"cat", "dog", "sun", "car", "tree", "fish", "house", "star",
		"ball", "book", "moon", "cake", "bird", "shoe", "apple", "clock",
		"chair", "pizza", "snake", "spoon",
	},
	TierMedium: {
		"guitar", "rocket", "castle", "penguin", "tractor", "volcano",
		"octopus", "rainbow", "sandwich", "lighthouse", "scissors",
		"snowman", "umbrella", "dinosaur", "campfire", "windmill",
		"ice cream", "hot dog", "palm tree", "roller skate",
	},
	TierHard: {
		"escalator", "periscope", "tambourine", "stethoscope", "gargoyle",
		"hammock", "quicksand", "scaffolding", "silhouette", "thermostat",
		"tumbleweed", "wheelbarrow", "candelabra", "metronome",
		"fire escape", "vending machine", "tightrope walker",
	},
}
