package domain

import "fmt"

// ReportText is the user text part sent alongside the photo for the report.
func ReportText(height, weight string) string {
	return fmt.Sprintf("키: %scm, 몸무게: %skg", height, weight)
}

var outfitVariations = [OutfitVariations]string{
	" Style variation 1: Vibrant colorful faux fur jacket with leather pants.",
	" Style variation 2: Sequined blazer with fitted black trousers.",
	" Style variation 3: Edgy crop top with high-waisted statement pants.",
}

func outfitBasePrompt(height, weight string) string {
	return fmt.Sprintf(`CRITICAL: Create a WIDE HORIZONTAL image with LEFT and RIGHT sections side-by-side (like a book spread). DO NOT stack vertically.
LEFT HALF: Person styled as K-pop idol, same face, bold outfit (faux fur/sequins/leather), full body, solid RED background.
RIGHT HALF: WHITE background, bold title "K-POP SINGER STYLING", 3-4 English sentences describing the style.
Layout: [PHOTO | TEXT] horizontally. Height: %scm, Weight: %skg.`, height, weight)
}

// OutfitPrompts returns one image-edit prompt per style variation, in order.
func OutfitPrompts(height, weight string) []string {
	base := outfitBasePrompt(height, weight)
	prompts := make([]string, len(outfitVariations))
	for i, v := range outfitVariations {
		prompts[i] = base + v
	}
	return prompts
}
