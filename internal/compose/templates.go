// Package compose holds the deterministic content scaffolding used by the
// authoring pipeline: per-category lesson templates and the markdown
// composer that renders generated content for review.
package compose

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"preetenglish/internal/models"
)

// Template scaffolds lesson content for one (category, difficulty) pair.
// Scaffolding is deterministic: the same topic always produces the same
// lesson, so generated output can be diffed and audited.
type Template struct {
	Category   string
	Difficulty string

	// TitleFormat receives the topic as its single argument
	TitleFormat string

	// BodyFormat receives the topic twice: once in the opening sentence
	// and once in the practice instruction
	BodyFormat string

	// SeedVocabulary is copied into the scaffold with lesson-relative ids
	SeedVocabulary []models.VocabularyItem

	// SeedConversation alternates speakers A and B
	SeedConversation []models.ConversationLine
}

// Templates is the immutable per-category template table, built once at
// startup and injected where needed
type Templates struct {
	byKey map[string]Template
}

func templateKey(category, difficulty string) string {
	return category + "/" + difficulty
}

// titleCase capitalizes each word of the topic for use in titles
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// For returns the template for the pair, falling back to the generic
// template when the pair has no specific entry
func (t *Templates) For(category, difficulty string) Template {
	if tpl, ok := t.byKey[templateKey(category, difficulty)]; ok {
		return tpl
	}
	generic := genericTemplate()
	generic.Category = category
	generic.Difficulty = difficulty
	return generic
}

// Scaffold builds a complete generated-content object for the topic
func (tpl Template) Scaffold(topic string) models.GeneratedContent {
	title := fmt.Sprintf(tpl.TitleFormat, titleCase(topic))
	return models.GeneratedContent{
		Title:         title,
		Content:       fmt.Sprintf(tpl.BodyFormat, topic, topic),
		Category:      tpl.Category,
		Difficulty:    tpl.Difficulty,
		Vocabulary:    append([]models.VocabularyItem(nil), tpl.SeedVocabulary...),
		Conversations: append([]models.ConversationLine(nil), tpl.SeedConversation...),
		Metadata: models.GenerationMetadata{
			Generator:   "template",
			Topic:       topic,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// DefaultTemplates builds the built-in template table
func DefaultTemplates() *Templates {
	templates := []Template{
		{
			Category:    "greetings",
			Difficulty:  models.DifficultyBeginner,
			TitleFormat: "%s: First Words",
			BodyFormat: "Learn the greetings you need for %s. Namaste works in any situation, " +
				"formal or informal. Practice each phrase aloud, then use the conversation below " +
				"to rehearse a short exchange about %s.",
			SeedVocabulary: []models.VocabularyItem{
				{Word: "namaste", Definition: "a respectful greeting", Example: "Namaste, it is nice to meet you.", HindiTranslation: "नमस्ते", Pronunciation: "na-mas-te"},
				{Word: "welcome", Definition: "a polite word said to a guest", Example: "Welcome to our home, please come in.", HindiTranslation: "स्वागत", Pronunciation: "swa-gat"},
				{Word: "goodbye", Definition: "said when someone leaves", Example: "Goodbye, see you tomorrow morning.", HindiTranslation: "अलविदा", Pronunciation: "al-vi-da"},
				{Word: "morning", Definition: "the early part of the day", Example: "Good morning, did you sleep well?", HindiTranslation: "सुबह", Pronunciation: "su-bah"},
				{Word: "evening", Definition: "the late part of the day", Example: "Good evening, how was your day?", HindiTranslation: "शाम", Pronunciation: "shaam"},
			},
			SeedConversation: []models.ConversationLine{
				{Speaker: "A", EnglishText: "Hello, how are you?", HindiText: "नमस्ते, आप कैसे हैं?"},
				{Speaker: "B", EnglishText: "I am fine, thank you. And you?", HindiText: "मैं ठीक हूँ, धन्यवाद। और आप?"},
				{Speaker: "A", EnglishText: "I am well. See you soon.", HindiText: "मैं अच्छा हूँ। जल्द मिलते हैं।"},
			},
		},
		{
			Category:    "daily_life",
			Difficulty:  models.DifficultyBeginner,
			TitleFormat: "Everyday %s",
			BodyFormat: "This lesson covers %s in daily routines: waking up in the morning, meals " +
				"with family, and work around the home. Read each word with its example, then " +
				"describe your own day using the %s vocabulary.",
			SeedVocabulary: []models.VocabularyItem{
				{Word: "water", Definition: "the liquid we drink", Example: "Please bring me a glass of water.", HindiTranslation: "पानी", Pronunciation: "paa-nee"},
				{Word: "family", Definition: "parents, children and relatives", Example: "My family eats dinner together.", HindiTranslation: "परिवार", Pronunciation: "pa-ri-vaar"},
				{Word: "market", Definition: "a place to buy food and goods", Example: "She goes to the market every Sunday.", HindiTranslation: "बाज़ार", Pronunciation: "baa-zaar"},
				{Word: "sleep", Definition: "to rest at night", Example: "The children sleep at nine o'clock.", HindiTranslation: "सोना", Pronunciation: "so-na"},
				{Word: "home", Definition: "the place where you live", Example: "We stay at home on rainy days.", HindiTranslation: "घर", Pronunciation: "ghar"},
			},
			SeedConversation: []models.ConversationLine{
				{Speaker: "A", EnglishText: "What time do you wake up?", HindiText: "आप कितने बजे उठते हैं?"},
				{Speaker: "B", EnglishText: "I wake up at six in the morning.", HindiText: "मैं सुबह छह बजे उठता हूँ।"},
			},
		},
		{
			Category:    "travel",
			Difficulty:  models.DifficultyIntermediate,
			TitleFormat: "Getting Around: %s",
			BodyFormat: "Travel situations demand quick answers. This lesson on %s walks through " +
				"buying a ticket at the station, asking for directions, and checking into a hotel. " +
				"Role-play the conversation, swapping in details from your last %s trip.",
			SeedVocabulary: []models.VocabularyItem{
				{Word: "ticket", Definition: "a paper that lets you travel", Example: "One ticket to Delhi, please.", HindiTranslation: "टिकट", Pronunciation: "ti-kat"},
				{Word: "station", Definition: "where trains stop", Example: "The station is crowded this evening.", HindiTranslation: "स्टेशन", Pronunciation: "stay-shan"},
				{Word: "direction", Definition: "the way to a place", Example: "Can you give me directions to the hotel?", HindiTranslation: "दिशा", Pronunciation: "di-sha"},
				{Word: "luggage", Definition: "the bags you travel with", Example: "Keep your luggage close on the train.", HindiTranslation: "सामान", Pronunciation: "saa-maan"},
				{Word: "platform", Definition: "where you board a train", Example: "The train leaves from platform two.", HindiTranslation: "प्लेटफ़ॉर्म", Pronunciation: "plat-form"},
			},
			SeedConversation: []models.ConversationLine{
				{Speaker: "A", EnglishText: "Which platform for the Mumbai train?", HindiText: "मुंबई की ट्रेन किस प्लेटफ़ॉर्म से जाती है?"},
				{Speaker: "B", EnglishText: "Platform two, but it is running late.", HindiText: "प्लेटफ़ॉर्म दो से, लेकिन वह देर से चल रही है।"},
			},
		},
	}

	byKey := make(map[string]Template, len(templates))
	for _, tpl := range templates {
		byKey[templateKey(tpl.Category, tpl.Difficulty)] = tpl
	}
	return &Templates{byKey: byKey}
}

// genericTemplate serves pairs without a specific template
func genericTemplate() Template {
	return Template{
		TitleFormat: "Introduction to %s",
		BodyFormat: "This lesson introduces %s. Study each vocabulary word with its Hindi " +
			"translation and example sentence, then practice the conversation aloud. " +
			"Return to the %s vocabulary tomorrow and test yourself.",
		SeedVocabulary: []models.VocabularyItem{
			{Word: "practice", Definition: "doing something again to improve", Example: "Daily practice makes your English stronger.", HindiTranslation: "अभ्यास", Pronunciation: "abh-yaas"},
			{Word: "question", Definition: "a sentence that asks something", Example: "Ask a question if you do not understand.", HindiTranslation: "सवाल", Pronunciation: "sa-vaal"},
			{Word: "answer", Definition: "a reply to a question", Example: "She gave a clear answer to the teacher.", HindiTranslation: "जवाब", Pronunciation: "ja-vaab"},
			{Word: "learn", Definition: "to gain new knowledge", Example: "We learn new words in every lesson.", HindiTranslation: "सीखना", Pronunciation: "seekh-na"},
			{Word: "speak", Definition: "to say words aloud", Example: "Try to speak English every day.", HindiTranslation: "बोलना", Pronunciation: "bol-na"},
		},
		SeedConversation: []models.ConversationLine{
			{Speaker: "A", EnglishText: "Did you practice yesterday?", HindiText: "क्या आपने कल अभ्यास किया?"},
			{Speaker: "B", EnglishText: "Yes, I practiced for one hour.", HindiText: "हाँ, मैंने एक घंटे अभ्यास किया।"},
		},
	}
}
