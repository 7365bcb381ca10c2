package compose

import (
	"bytes"
	"fmt"
	"strings"

	"preetenglish/internal/models"
)

// Format selects the markdown layout produced by Markdown.
type Format string

const (
	// FormatFull renders the complete lesson with vocabulary table and
	// conversation transcript
	FormatFull Format = "full"
	// FormatSummary renders a short overview with word list and counts
	FormatSummary Format = "summary"
	// FormatStudySheet renders a printable word/translation sheet with
	// practice lines
	FormatStudySheet Format = "study-sheet"
)

// ValidFormat reports whether f is a recognized markdown format
func ValidFormat(f Format) bool {
	switch f {
	case FormatFull, FormatSummary, FormatStudySheet:
		return true
	}
	return false
}

// Markdown renders generated content in the requested format. Unknown
// formats fall back to the full layout.
func Markdown(content models.GeneratedContent, format Format) string {
	var buf bytes.Buffer
	switch format {
	case FormatSummary:
		writeSummary(&buf, content)
	case FormatStudySheet:
		writeStudySheet(&buf, content)
	default:
		writeFull(&buf, content)
	}
	return buf.String()
}

func writeFull(buf *bytes.Buffer, content models.GeneratedContent) {
	fmt.Fprintf(buf, "# %s\n\n", content.Title)
	fmt.Fprintf(buf, "**Category:** %s | **Difficulty:** %s\n\n", content.Category, content.Difficulty)
	fmt.Fprintf(buf, "%s\n", strings.TrimSpace(content.Content))

	if len(content.Vocabulary) > 0 {
		buf.WriteString("\n## Vocabulary\n\n")
		buf.WriteString("| Word | Hindi | Pronunciation | Definition |\n")
		buf.WriteString("|------|-------|---------------|------------|\n")
		for _, v := range content.Vocabulary {
			fmt.Fprintf(buf, "| %s | %s | %s | %s |\n",
				v.Word, v.HindiTranslation, v.Pronunciation, v.Definition)
		}
		buf.WriteString("\n### Examples\n\n")
		for _, v := range content.Vocabulary {
			if v.Example != "" {
				fmt.Fprintf(buf, "- **%s**: %s\n", v.Word, v.Example)
			}
		}
	}

	if len(content.Conversations) > 0 {
		buf.WriteString("\n## Conversation\n\n")
		for _, line := range content.Conversations {
			fmt.Fprintf(buf, "**%s:** %s\n", line.Speaker, line.EnglishText)
			if line.HindiText != "" {
				fmt.Fprintf(buf, "> %s\n", line.HindiText)
			}
			buf.WriteString("\n")
		}
	}
}

func writeSummary(buf *bytes.Buffer, content models.GeneratedContent) {
	fmt.Fprintf(buf, "# %s\n\n", content.Title)
	fmt.Fprintf(buf, "%s lesson, %s level. %d vocabulary words, %d conversation lines.\n",
		titleCase(content.Category), content.Difficulty,
		len(content.Vocabulary), len(content.Conversations))

	if len(content.Vocabulary) > 0 {
		words := make([]string, 0, len(content.Vocabulary))
		for _, v := range content.Vocabulary {
			words = append(words, v.Word)
		}
		fmt.Fprintf(buf, "\n**Words:** %s\n", strings.Join(words, ", "))
	}
}

func writeStudySheet(buf *bytes.Buffer, content models.GeneratedContent) {
	fmt.Fprintf(buf, "# Study Sheet: %s\n\n", content.Title)

	for _, v := range content.Vocabulary {
		fmt.Fprintf(buf, "## %s — %s\n\n", v.Word, v.HindiTranslation)
		if v.Pronunciation != "" {
			fmt.Fprintf(buf, "*%s*\n\n", v.Pronunciation)
		}
		fmt.Fprintf(buf, "%s\n\n", v.Definition)
		if v.Example != "" {
			fmt.Fprintf(buf, "> %s\n\n", v.Example)
		}
		buf.WriteString("Write your own sentence:\n\n_________________________\n\n")
	}

	if len(content.Conversations) > 0 {
		buf.WriteString("## Practice Dialogue\n\n")
		buf.WriteString("Cover the English column and translate from Hindi.\n\n")
		for _, line := range content.Conversations {
			fmt.Fprintf(buf, "%s: %s\n", line.Speaker, line.HindiText)
		}
	}
}
