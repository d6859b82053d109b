package service

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/noah-isme/pbis-gateway/internal/models"
)

// AISuggestionSeparator precedes AI text appended to a non-empty section.
const AISuggestionSeparator = "\n\n---\nAI suggestion:\n"

// bipAISections lists the fields the AI may draft, in heading order 1 to 8.
var bipAISections = []string{
	"TargetBehavior",
	"Hypothesis",
	"Goals",
	"PreventionStrategies",
	"TeachingStrategies",
	"ReinforcementStrategies",
	"CrisisPlan",
	"EvaluationPlan",
}

// strongHeading matches "[1.", "**1.", "**[1)", "### 1." and similar.
var strongHeading = regexp.MustCompile(`^\s*(?:#{1,6}\s*(?:\*\*)?\s*\[?|\*\*\s*\[?|\[)\s*(\d{1,2})\s*[.)]\s*(.*)$`)

// plainHeading matches "1." or "1)" at the start of a line.
var plainHeading = regexp.MustCompile(`^\s*(\d{1,2})\s*[.)]\s*(.*)$`)

// bipFieldKeywords recognises a section by its heading title, in English or
// in the school's Korean form labels.
var bipFieldKeywords = map[string][]string{
	"TargetBehavior":          {"target behavior", "target behaviour", "표적행동"},
	"Hypothesis":              {"hypothesis", "function", "가설"},
	"Goals":                   {"goal", "목표"},
	"PreventionStrategies":    {"prevention", "antecedent", "예방"},
	"TeachingStrategies":      {"teaching", "replacement", "교수"},
	"ReinforcementStrategies": {"reinforcement", "consequence", "강화"},
	"CrisisPlan":              {"crisis", "위기"},
	"EvaluationPlan":          {"evaluation", "monitoring", "평가"},
}

// Staged AI assists: the hypothesis assist drafts sections 1-3 and the
// strategy assist sections 4-7.
var (
	bipHypothesisFields = bipAISections[0:3]
	bipStrategyFields   = bipAISections[3:7]
)

type headingBlock struct {
	number int
	title  string
	lines  []string
}

// SplitBIPSections maps numbered headings 1-8 of an AI draft to plan fields.
// When any bracketed, bolded or markdown heading is present only those forms
// count; otherwise bare "n." lines count. Either way a heading must be
// numbered past the current section, so numbered items inside a section stay
// in its body. Text outside a recognised section is ignored.
func SplitBIPSections(text string) map[string]string {
	sections := make(map[string]string)
	for _, block := range splitHeadingBlocks(text) {
		if block.number < 1 || block.number > len(bipAISections) {
			continue
		}
		if body := block.body(); body != "" {
			sections[bipAISections[block.number-1]] = body
		}
	}
	return sections
}

// splitStageSections maps the headings of a staged assist to fields. A title
// naming one of the fields wins; otherwise the heading number is read as the
// plan's own numbering when any heading is past the stage's length, and as a
// position within the stage when none is.
func splitStageSections(text string, fields []string, offset int) map[string]string {
	blocks := splitHeadingBlocks(text)
	absolute := false
	for _, block := range blocks {
		if block.number > len(fields) {
			absolute = true
		}
	}

	sections := make(map[string]string)
	for _, block := range blocks {
		field, ok := fieldForTitle(block.title, fields)
		if !ok {
			idx := block.number - 1
			if absolute {
				idx -= offset
			}
			if idx < 0 || idx >= len(fields) {
				continue
			}
			field = fields[idx]
		}
		body := block.body()
		if body == "" {
			continue
		}
		if existing, dup := sections[field]; dup {
			body = existing + "\n\n" + body
		}
		sections[field] = body
	}
	return sections
}

func splitHeadingBlocks(text string) []headingBlock {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	strict := false
	for _, line := range lines {
		if strongHeading.MatchString(line) {
			strict = true
			break
		}
	}

	var blocks []headingBlock
	current := 0
	for _, line := range lines {
		if n, title, ok := parseHeading(line, current, strict); ok {
			current = n
			block := headingBlock{number: n, title: headingTitle(title)}
			if rest := headingRemainder(title); rest != "" {
				block.lines = append(block.lines, rest)
			}
			blocks = append(blocks, block)
			continue
		}
		if len(blocks) > 0 {
			last := &blocks[len(blocks)-1]
			last.lines = append(last.lines, line)
		}
	}
	return blocks
}

func (b headingBlock) body() string {
	return strings.TrimSpace(strings.Join(b.lines, "\n"))
}

// parseHeading returns the section number of a heading line and its raw
// title. Only numbers past current open a new section.
func parseHeading(line string, current int, strict bool) (int, string, bool) {
	pattern := plainHeading
	if strict {
		pattern = strongHeading
	}
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	n, _ := strconv.Atoi(m[1])
	if n < 1 || n <= current {
		return 0, "", false
	}
	return n, m[2], true
}

func headingTitle(title string) string {
	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), "*]#"))
	if idx := strings.Index(title, ":"); idx >= 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(strings.Trim(title, "*] "))
}

// fieldForTitle picks the allowed field whose keyword appears earliest in title.
func fieldForTitle(title string, fields []string) (string, bool) {
	lower := strings.ToLower(title)
	best, bestAt := "", -1
	for _, field := range fields {
		for _, keyword := range bipFieldKeywords[field] {
			at := strings.Index(lower, keyword)
			if at >= 0 && (bestAt < 0 || at < bestAt) {
				best, bestAt = field, at
			}
		}
	}
	return best, bestAt >= 0
}

func headingRemainder(title string) string {
	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), "*]#"))
	idx := strings.Index(title, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(strings.Trim(title[idx+1:], "*] "))
}

// DecodeBIPAnalysis turns the upstream analysis into per-field sections and
// the raw text shown alongside the merge. A JSON object keyed by field name
// is used as is; text falls back to the heading splitter.
func DecodeBIPAnalysis(raw json.RawMessage) (map[string]string, string) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return map[string]string{}, ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return SplitBIPSections(text), text
	}

	var object map[string]interface{}
	if err := json.Unmarshal(raw, &object); err == nil {
		sections := make(map[string]string)
		for key, value := range object {
			field, ok := matchBIPField(key)
			if !ok {
				continue
			}
			var body string
			switch v := value.(type) {
			case string:
				body = v
			case nil:
				continue
			default:
				encoded, _ := json.Marshal(v)
				body = string(encoded)
			}
			if body = strings.TrimSpace(body); body != "" {
				sections[field] = body
			}
		}
		pretty, _ := json.MarshalIndent(object, "", "  ")
		return sections, string(pretty)
	}

	return SplitBIPSections(trimmed), trimmed
}

func matchBIPField(key string) (string, bool) {
	normalised := normaliseFieldName(key)
	if normalised == "consequencestrategies" {
		return "ReinforcementStrategies", true
	}
	for _, field := range bipAISections {
		if strings.EqualFold(field, normalised) {
			return field, true
		}
	}
	return "", false
}

func normaliseFieldName(key string) string {
	var b strings.Builder
	for _, r := range key {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// MergeBIP appends each section to its field and leaves every other field untouched.
func MergeBIP(plan models.BIP, sections map[string]string) models.BIP {
	for field, body := range sections {
		target := bipField(&plan, field)
		if target == nil || strings.TrimSpace(body) == "" {
			continue
		}
		*target = appendSuggestion(*target, body)
	}
	return plan
}

func appendSuggestion(existing, suggestion string) string {
	if strings.TrimSpace(existing) == "" {
		return suggestion
	}
	return existing + AISuggestionSeparator + suggestion
}

func bipField(plan *models.BIP, field string) *string {
	switch field {
	case "TargetBehavior":
		return &plan.TargetBehavior
	case "Hypothesis":
		return &plan.Hypothesis
	case "Goals":
		return &plan.Goals
	case "PreventionStrategies":
		return &plan.PreventionStrategies
	case "TeachingStrategies":
		return &plan.TeachingStrategies
	case "ReinforcementStrategies":
		return &plan.ReinforcementStrategies
	case "CrisisPlan":
		return &plan.CrisisPlan
	case "EvaluationPlan":
		return &plan.EvaluationPlan
	default:
		return nil
	}
}
