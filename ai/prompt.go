package ai

import (
	"fmt"
	"strings"
)

// valueOrNA substitutes the display placeholder for empty fields.
func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// BuildRecommendationPrompt renders the chat prompt for a recommendation
// request: the user query, the active filters, one context line per found
// service, and instructions for a concise plain-text answer.
func BuildRecommendationPrompt(req *RecommendationRequest) string {
	var filters strings.Builder
	if req.Category != "" {
		fmt.Fprintf(&filters, " Category: %s.", req.Category)
	}
	if req.Location != "" {
		fmt.Fprintf(&filters, " Location: %s.", req.Location)
	}

	lines := make([]string, 0, len(req.Results))
	for _, result := range req.Results {
		record := result.Record
		if record == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) in %s - Price: %s, Rating: %s",
			valueOrNA(record.Name),
			valueOrNA(record.Category),
			valueOrNA(record.Location),
			valueOrNA(record.Price),
			valueOrNA(record.Rating)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "User Query: %s\n", req.Query)
	fmt.Fprintf(&sb, "Applied Filters:%s\n\n", filters.String())
	sb.WriteString("Found Services:\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString("Provide a helpful text recommendation for the user based on their query and the services found. Be concise and practical.\n")
	sb.WriteString("Include specific service recommendations with reasons why they're good choices.\n\n")
	sb.WriteString("IMPORTANT: Return only plain text, no HTML, no markdown formatting, no code blocks. Just natural language text.")
	return sb.String()
}
