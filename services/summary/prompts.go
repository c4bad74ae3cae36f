package summary

import "fmt"

const (
	defaultBulletCount = 10
	mergeMaxTokens     = 3500
)

// chunkPrompt builds the per-chunk prompt and its output token ceiling for
// the requested summary mode.
func chunkPrompt(summaryType string, bulletCount int, chunk string) (string, int) {
	switch summaryType {
	case "bullet":
		if bulletCount <= 0 {
			bulletCount = defaultBulletCount
		}
		return fmt.Sprintf(`You are a professional expert summarizer. Create a comprehensive organized summary with MAIN TOPICS, SUB-TOPICS, and detailed explanations.

STRUCTURE REQUIREMENTS - FOLLOW EXACTLY:
1. Start with 1-2 introductory paragraphs explaining the main topic/theme (simple, easy language)
2. For EACH MAIN TOPIC identified in the content:
   - Write the MAIN TOPIC NAME as a bold section header (e.g., "**Main Topic Name:**")
   - Add a brief intro paragraph explaining what this main topic covers
   - List 3-5 SUB-TOPICS under it with detailed explanations
   - Each sub-topic should follow format: "- **Sub-topic Name:** Explanation (2-3 complete sentences describing the sub-topic and its importance)"
   - Include specific details, examples, context, and implications
3. Cover ALL major topics and themes - NO TOPICS SHOULD BE SKIPPED
4. Ensure EVERY point is fully explained with context and details
5. Use clear, professional, easy-to-read language
6. Organization: Group related sub-topics together logically
7. Aim for approximately %d total sub-topic bullet points across all main topics

CRITICAL - Complete Explanation:
- Each sub-topic explanation must be 2-3 sentences minimum
- Include WHY each point matters
- Include specific facts, figures, or examples
- Connect sub-topics to the main topic
- Do NOT use vague or incomplete explanations

Content:
%s`, bulletCount, chunk), 2500

	case "comprehensive":
		return fmt.Sprintf(`Create an extremely detailed and comprehensive summary where EVERY important point is explained thoroughly.

Format requirements:
- Start with a brief overview
- For each major topic, provide:
  * Topic name with ## header
  * Detailed explanation (2-4 sentences minimum per point)
  * Sub-points with ### headers if applicable
  * Real-world implications or examples where relevant
- Include at least 5-7 major sections
- Each section should have multiple detailed paragraphs
- Maintain professional academic tone throughout
- Include all nuances and details from the source

Content:
%s`, chunk), 3000

	case "detailed":
		return fmt.Sprintf(`Create an extremely detailed and comprehensive summary with thorough explanations for every point.

Format requirements:
- Use ## for main sections and ### for subsections
- Under each section, provide detailed bullet points with comprehensive explanations
- Each bullet point should be 2-3 sentences explaining the concept thoroughly
- Include practical examples, implications, and context for each point
- Organize related concepts together logically
- Maintain professional academic tone throughout
- Ensure all important details and nuances are captured
- Include at least 5-7 major topics with multiple detailed points each

Content:
%s`, chunk), 3000

	default: // short
		return fmt.Sprintf(`Write a concise professional summary in 3-4 clear paragraphs.

Guidelines:
- Each paragraph should focus on one main idea
- Use clear transitions between paragraphs
- Keep language formal and professional
- Highlight key points and conclusions
- Avoid repetition

Content:
%s`, chunk), 1200
	}
}

// mergePrompt builds the prompt that folds partial chunk summaries into one.
func mergePrompt(summaryType string, bulletCount int, combined string) string {
	switch summaryType {
	case "short":
		return fmt.Sprintf(`Combine these partial summaries into ONE cohesive professional summary (3-4 paragraphs).
- Remove any duplicate information
- Maintain logical flow
- Keep professional tone

Partial summaries:
%s`, combined)

	case "bullet":
		if bulletCount <= 0 {
			bulletCount = defaultBulletCount
		}
		return fmt.Sprintf(`Combine these partial summaries into ONE comprehensive, well-organized summary with MAIN TOPICS and SUB-TOPICS.

STRUCTURE REQUIREMENTS - FOLLOW EXACTLY:
1. Start with 1-2 introductory paragraphs explaining the main topic/theme (simple, easy language)
2. For EACH MAIN TOPIC identified:
   - Write the MAIN TOPIC NAME as a bold section header (e.g., "**Main Topic Name:**")
   - Add a 2-3 sentence intro paragraph explaining what this main topic covers
   - List 3-5 SUB-TOPICS under it with complete explanations
   - Each sub-topic format: "- **Sub-topic Name:** Explanation (2-3 sentences minimum with details, context, and implications)"
3. CRITICAL - COMPLETE TOPIC COVERAGE:
   - Cover ALL major topics and themes comprehensively
   - DO NOT skip or omit any important topics
   - Include approximately %d sub-topic bullet points total
   - Each main topic should have multiple explained sub-topics
4. DETAILED EXPLANATIONS:
   - Every sub-topic must be fully explained (minimum 2-3 sentences)
   - Include specific facts, figures, examples, or case studies
   - Explain WHY each point is important
   - Connect sub-topics to the main topic
   - Include practical implications or consequences
5. Organize logically:
   - Main topics by importance or sequence
   - Sub-topics grouped by relationship
   - Remove only true duplicates while keeping topic diversity
6. Professional, clear, easy-to-understand language
7. Include points spanning all sections (beginning, middle, end of content)

Topics to Include (if present):
- Core concepts with definitions and context
- Important facts, figures, and statistics
- Processes, methods, and procedures
- Causes, effects, and consequences
- Examples, case studies, and real-world applications
- Best practices and recommendations
- Key relationships and connections
- Important conclusions and takeaways

Partial summaries:
%s`, bulletCount, combined)

	default: // detailed, comprehensive
		return fmt.Sprintf(`Combine these sections into ONE comprehensive, well-organized summary.
- Keep ## for main sections and ### for subsections
- Remove duplicates while preserving all important details
- Ensure each point has thorough, detailed explanations (2-3 sentences per point)
- Maintain clear structure with comprehensive bullet points under each section
- Include all nuances, implications, and context

Partial summaries:
%s`, combined)
	}
}
