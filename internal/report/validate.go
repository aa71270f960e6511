package report

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue is a single well-formedness violation found in a rendered report.
type Issue struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

var (
	tickerHeaderRe = regexp.MustCompile(`^### \[([A-Z0-9.^\-]+)\] (.+)$`)
	anyBracketRe   = regexp.MustCompile(`^### \[`)
	refIDRe        = regexp.MustCompile(`^\*\(Ref ID: (\d+)\)\*$`)

	subExecutive = "### 1. EXECUTIVE SUMMARY"
	subHardData  = "### 2. HARD DATA (Numbers/Dates)"
	subKeyQuotes = "### 3. KEY QUOTES"
)

// Validate checks a rendered report against the section grammar:
//   - the document starts with the Daily Market Pulse title
//   - every ticker section begins `### [TICKER] <headline>`
//   - each section has exactly the three labeled subsections, in order
//   - HARD DATA is a non-empty bullet list or the literal fallback line
//   - each KEY QUOTES subsection ends with a `*(Ref ID: <n>)*` marker
//   - the final non-empty line is the success footer
//
// All violations are returned, not just the first.
func Validate(content string) []Issue {
	var issues []Issue
	lines := strings.Split(content, "\n")

	if len(lines) == 0 || !strings.HasPrefix(lines[0], Title) {
		issues = append(issues, Issue{Line: 1, Message: fmt.Sprintf("document must start with %q", Title)})
	}

	// Locate ticker section boundaries
	type section struct {
		start, end int // line indices, end exclusive
		symbol     string
	}
	var sections []section
	for i, line := range lines {
		if anyBracketRe.MatchString(line) {
			m := tickerHeaderRe.FindStringSubmatch(line)
			if m == nil {
				issues = append(issues, Issue{Line: i + 1, Message: "malformed ticker header, expected '### [TICKER] <headline>'"})
				continue
			}
			if len(sections) > 0 {
				sections[len(sections)-1].end = i
			}
			sections = append(sections, section{start: i, end: len(lines), symbol: m[1]})
		}
	}

	for _, sec := range sections {
		issues = append(issues, validateSection(lines, sec.start, sec.end, sec.symbol)...)
	}

	// The footer must be the last non-empty line
	last := ""
	lastIdx := 0
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			last = strings.TrimSpace(lines[i])
			lastIdx = i + 1
			break
		}
	}
	if last != Footer {
		issues = append(issues, Issue{Line: lastIdx, Message: fmt.Sprintf("document must end with %q", Footer)})
	}

	return issues
}

func validateSection(lines []string, start, end int, symbol string) []Issue {
	var issues []Issue

	// Subsections must appear exactly once, in fixed order
	idxExec, idxHard, idxQuotes := -1, -1, -1
	for i := start + 1; i < end; i++ {
		switch strings.TrimRight(lines[i], " ") {
		case subExecutive:
			if idxExec != -1 {
				issues = append(issues, Issue{Line: i + 1, Message: symbol + ": duplicate EXECUTIVE SUMMARY subsection"})
			}
			idxExec = i
		case subHardData:
			if idxHard != -1 {
				issues = append(issues, Issue{Line: i + 1, Message: symbol + ": duplicate HARD DATA subsection"})
			}
			idxHard = i
		case subKeyQuotes:
			if idxQuotes != -1 {
				issues = append(issues, Issue{Line: i + 1, Message: symbol + ": duplicate KEY QUOTES subsection"})
			}
			idxQuotes = i
		}
	}

	if idxExec == -1 {
		issues = append(issues, Issue{Line: start + 1, Message: symbol + ": missing EXECUTIVE SUMMARY subsection"})
	}
	if idxHard == -1 {
		issues = append(issues, Issue{Line: start + 1, Message: symbol + ": missing HARD DATA subsection"})
	}
	if idxQuotes == -1 {
		issues = append(issues, Issue{Line: start + 1, Message: symbol + ": missing KEY QUOTES subsection"})
	}
	if idxExec == -1 || idxHard == -1 || idxQuotes == -1 {
		return issues
	}

	if !(idxExec < idxHard && idxHard < idxQuotes) {
		issues = append(issues, Issue{Line: start + 1, Message: symbol + ": subsections out of order, expected EXECUTIVE SUMMARY, HARD DATA, KEY QUOTES"})
	}

	// HARD DATA body: bullets or the literal fallback
	bullets, fallback := 0, false
	for i := idxHard + 1; i < idxQuotes && i < end; i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "- ") {
			bullets++
		} else if t == NoHardData {
			fallback = true
		}
	}
	if bullets == 0 && !fallback {
		issues = append(issues, Issue{Line: idxHard + 1, Message: symbol + ": HARD DATA must be a non-empty bullet list or the literal fallback " + fmt.Sprintf("%q", NoHardData)})
	}

	// KEY QUOTES must end with the Ref ID marker
	marker := false
	for i := idxQuotes + 1; i < end; i++ {
		t := strings.TrimSpace(lines[i])
		if t == "" {
			continue
		}
		if t == Footer {
			break
		}
		marker = refIDRe.MatchString(t)
	}
	if !marker {
		issues = append(issues, Issue{Line: idxQuotes + 1, Message: symbol + ": KEY QUOTES must end with a '*(Ref ID: <integer>)*' marker"})
	}

	return issues
}

// IsValid reports whether the content passes all grammar checks.
func IsValid(content string) bool {
	return len(Validate(content)) == 0
}
