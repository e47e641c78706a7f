package suggestions

import (
	"fmt"
	"strings"
)

// buildPrompt composes the generation prompt from the article context.
// Takeaways and the content excerpt are included only when present, and
// the excerpt is stripped of markup and capped before embedding.
func buildPrompt(cmd Command) string {
	var b strings.Builder

	b.WriteString("You are an environmental action coach for teenagers. ")
	b.WriteString("Generate exactly 3 personal action commitments based on this specific article.\n\n")

	fmt.Fprintf(&b, "Article title: %q\n", cmd.ArticleTitle)

	if cmd.ArticleSubtitle != "" {
		fmt.Fprintf(&b, "Subtitle: %q\n", cmd.ArticleSubtitle)
	}

	if len(cmd.KeyTakeaways) > 0 {
		b.WriteString("Key takeaways:\n")
		for _, t := range cmd.KeyTakeaways {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	if excerpt := truncate(sanitize(cmd.ArticleContent), contentLimit); excerpt != "" {
		fmt.Fprintf(&b, "Article excerpt: %s\n", excerpt)
	}

	b.WriteString(`
Rules for each suggestion:
- Start with "I will" or "I'll"
- Be SPECIFIC to this article's topic — mention the actual issue (e.g. fast fashion, microplastics, food waste)
- Be a concrete, real-world action (e.g. "I'll buy my next item of clothing secondhand instead of new" NOT "I'll make a change")
- Be realistic for a teenager — something doable at home, school, or when shopping
- Vary the suggestions: one small/immediate action, one medium effort, one bigger lifestyle shift
- Do NOT use vague phrases like "research more", "make a change", "track progress", "be more aware"
- Each action should name a specific behavior change

Good examples for a fast fashion article:
["I'll check a thrift store before buying new clothes next time I need something", "I will wash my synthetic clothes in a microplastic-catching laundry bag", "I'll go through my closet and donate clothes I haven't worn in 6 months instead of throwing them away"]

Bad examples (too vague — never do this):
["I will research more about fast fashion", "I'll make one small change in my daily routine", "I will track my progress for 7 days"]

Return ONLY a valid JSON array of exactly 3 strings. No explanation, no markdown.`)

	return b.String()
}
