package ui

// Examples are the sample queries offered next to the search box.
var Examples = []string{
	"python programming",
	"machine learning algorithms",
	"web development",
	"How do I learn artificial intelligence?",
	"What is cloud computing?",
	"database management systems",
	"cybersecurity best practices",
	"mobile app development",
	"blockchain technology",
	"DevOps and CI/CD",
}

// Example returns the n-th example query, 1-based.
func Example(n int) (string, bool) {
	if n < 1 || n > len(Examples) {
		return "", false
	}
	return Examples[n-1], true
}
