package rubric

// defaultCategoryKeywords returns the fixed per-category keyword lists used
// by the relevance criterion. Keys match the lesson category column.
func defaultCategoryKeywords() map[string][]string {
	return map[string][]string{
		"daily_life": {
			"morning", "family", "home", "food", "water", "market",
			"work", "sleep", "wake", "eat",
		},
		"greetings": {
			"hello", "namaste", "good morning", "goodbye", "welcome",
			"thank you", "please", "how are you",
		},
		"travel": {
			"train", "bus", "ticket", "station", "hotel", "airport",
			"direction", "left", "right", "map",
		},
		"shopping": {
			"price", "money", "rupee", "buy", "sell", "shop",
			"discount", "bill", "change", "bargain",
		},
		"food": {
			"restaurant", "menu", "order", "spicy", "sweet", "rice",
			"bread", "tea", "drink", "taste",
		},
		"work": {
			"office", "meeting", "email", "manager", "salary",
			"interview", "job", "colleague", "schedule",
		},
		"health": {
			"doctor", "hospital", "medicine", "pain", "fever",
			"appointment", "pharmacy", "rest",
		},
		"education": {
			"school", "teacher", "student", "book", "exam",
			"class", "homework", "learn", "study",
		},
	}
}
