package highlight

import "regexp"

// Keyword lists are matched case-insensitively as whole words; the casing found in the text is
// what gets highlighted.
var (
	// WorkKeywords emphasise ownership and outcome verbs in work-experience bullets.
	WorkKeywords = []string{
		"led", "launched", "shipped", "owned", "architected", "scaled", "reduced", "increased",
		"improved", "automated", "migrated", "mentored", "revenue", "latency", "throughput",
		"cost", "customers", "users", "end-to-end", "cross-functional",
	}

	// ProfileKeywords emphasise scope and seniority in a work-profile block.
	ProfileKeywords = []string{
		"team", "teams", "platform", "roadmap", "strategy", "stakeholders", "budget",
		"org", "organization", "hiring", "leadership", "P&L", "global", "enterprise",
	}

	// ConsultingKeywords emphasise engagement and client impact in consulting summaries.
	ConsultingKeywords = []string{
		"due diligence", "operating model", "transformation", "go-to-market", "M&A",
		"strategy", "clients", "client", "engagements", "private equity", "cost reduction",
		"pricing", "supply chain", "Fortune 500", "C-suite", "board",
	}

	// TechKeywords emphasise stack and systems vocabulary in technical summaries.
	TechKeywords = []string{
		"Go", "Golang", "Python", "Java", "TypeScript", "Rust", "C++", "Kubernetes", "AWS",
		"GCP", "Azure", "PostgreSQL", "Kafka", "distributed systems", "microservices",
		"machine learning", "ML", "LLM", "data pipelines", "observability", "CI/CD",
	}
)

// compiledKeywords holds a matcher for every built-in keyword. It is read-only after init.
var compiledKeywords = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, list := range [][]string{WorkKeywords, ProfileKeywords, ConsultingKeywords, TechKeywords} {
		for _, kw := range list {
			m[kw] = compileKeyword(kw)
		}
	}
	return m
}()
