// Package paragraph deterministically repairs LLM output into exactly three
// well-formed paragraphs inside a target character band. The pipeline is
// best-effort structural repair, not a language-quality guarantee: it trades
// semantic coherence for guaranteed shape, because generation output is
// unreliable. Splitting is character-based on purpose; sentence structure in
// model output cannot be trusted as the primary mechanism.
package paragraph

import (
	"regexp"
	"strings"
)

// Separator joins the three paragraphs in the final article.
const Separator = "\n\n"

// Character budgets. Empirically tuned in the original service; kept verbatim
// for behavior compatibility rather than re-derived.
const (
	// MinWorkableLength is the floor below which the flattened text is padded
	// before splitting, so the thirds cannot degenerate.
	MinWorkableLength = 900
	// MinTotalLength and MaxTotalLength bound the finished article.
	MinTotalLength = 1200
	MaxTotalLength = 1500
	// MinParagraphLength is the per-paragraph floor after splitting.
	MinParagraphLength = 100
	// breakWindow is how far around each third a space is searched for.
	breakWindow = 50
	// trimGuard keeps proportional trimming from gutting a short paragraph.
	trimGuard = 50
)

// lengthFloorFiller pads flattened text under MinWorkableLength.
const lengthFloorFiller = " Market dynamics continue to evolve as trading participants monitor key economic indicators and price movements across commodity sectors. Analysis suggests continued attention to fundamental supply and demand factors will be essential for stakeholders navigating current market conditions."

// minLengthFillers back-stop near-empty paragraphs, one per position.
var minLengthFillers = [3]string{
	" Market conditions reflect ongoing developments in commodity sectors.",
	" Trading activity continues with participants monitoring price movements.",
	" Industry analysis suggests continued focus on fundamental market factors.",
}

// expansionFillers stretch an under-length article, one distinct sentence per
// paragraph position so no filler repeats across sections.
var expansionFillers = [3]string{
	" Technical specifications and resource estimates continue to be evaluated through detailed engineering assessments.",
	" Production metrics and operational parameters are being monitored across multiple project phases.",
	" Regulatory frameworks and compliance requirements remain under review by relevant authorities.",
}

// sharedExpansionFiller is appended whole when the paragraph structure was
// lost before expansion.
const sharedExpansionFiller = " Commodity sectors show varied performance with precious metals and energy markets experiencing distinct patterns. Price volatility reflects global economic uncertainties. Companies report strategic adjustments to operational planning."

// redundantPhrases are stock boilerplate sentences that earlier synthesis
// attempts tend to leak into the output.
var redundantPhrases = []string{
	"Market conditions continued to evolve",
	"Analysis suggests continued attention",
	"Market participants continue to monitor",
	"Industry outlook remained focused",
	"Trading activity reflects ongoing",
	"Continued monitoring will be essential",
	"Market dynamics continue to evolve",
}

// instructionLabels are section markers leaked from the prompt template.
var instructionLabels = []string{
	"PARAGRAPH 1 -", "PARAGRAPH 2 -", "PARAGRAPH 3 -",
	"MARKET DEVELOPMENTS:", "PRICE DATA & TRADING:", "INDUSTRY IMPACT:",
	"COMMODITY MARKET TRENDS:", "PRICE DATA & TRADING BEHAVIOR:",
	"INDUSTRY IMPACT & FUTURE OUTLOOK:", "[BLANK LINE]",
}

// Enforce repairs rawText into exactly three non-empty paragraphs separated
// by blank lines, each ending in terminal punctuation, with total length
// driven toward the 1200-1500 character band. Total: it never fails, and it
// is stable under re-application (same paragraph count, similar length).
func Enforce(rawText string) string {
	text := flatten(rawText)
	text = padToWorkableLength(text)

	paras := triSplit(text)
	paras = closeSentences(paras)
	paras = backstopMinLength(paras)
	paras = correctLengthBand(paras)

	article := strings.Join(paras[:], Separator)
	article = stripArtifacts(article)
	article = repairPunctuation(article)
	article = resegment(article)
	article = clampFinalLength(article)

	return article
}

// flatten collapses line breaks, tabs and whitespace runs to single spaces.
func flatten(text string) string {
	replacer := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
	return strings.Join(strings.Fields(replacer.Replace(text)), " ")
}

// padToWorkableLength appends the fixed filler when the text is too short for
// character-based splitting to produce usable thirds.
func padToWorkableLength(text string) string {
	if len(text) < MinWorkableLength {
		return text + lengthFloorFiller
	}
	return text
}

// triSplit cuts the text into three segments at the spaces nearest to the
// one-third and two-thirds offsets, falling back to the exact offsets when no
// space is found inside the window. Guarantees three non-empty segments for
// any reasonable input length.
func triSplit(text string) [3]string {
	third := len(text) / 3

	break1 := nearestSpace(text, third, 0)
	break2 := nearestSpace(text, third*2, break1)

	return [3]string{
		strings.TrimSpace(text[:break1]),
		strings.TrimSpace(text[break1:break2]),
		strings.TrimSpace(text[break2:]),
	}
}

// nearestSpace finds the last space within breakWindow of target, never
// before floor. Returns target itself when the window holds no space.
func nearestSpace(text string, target, floor int) int {
	lo := target - breakWindow
	if lo < floor {
		lo = floor
	}
	hi := target + breakWindow
	if hi > len(text) {
		hi = len(text)
	}
	if lo >= hi {
		return clampIndex(target, floor, len(text))
	}
	if idx := strings.LastIndex(text[lo:hi], " "); idx >= 0 {
		return lo + idx
	}
	return clampIndex(target, floor, len(text))
}

func clampIndex(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

// closeSentences appends a period to any segment lacking terminal punctuation.
func closeSentences(paras [3]string) [3]string {
	for i, para := range paras {
		if para != "" && !endsWithTerminal(para) {
			paras[i] = para + "."
		}
	}
	return paras
}

func endsWithTerminal(text string) bool {
	trimmed := strings.TrimRight(text, " ")
	return strings.HasSuffix(trimmed, ".") || strings.HasSuffix(trimmed, "!") || strings.HasSuffix(trimmed, "?")
}

// backstopMinLength pads any segment under the per-paragraph floor with its
// position's filler sentence.
func backstopMinLength(paras [3]string) [3]string {
	for i, para := range paras {
		if len(para) < MinParagraphLength {
			paras[i] = para + minLengthFillers[i]
		}
	}
	return paras
}

// correctLengthBand trims an over-budget article proportionally or expands an
// under-budget one with one distinct filler per paragraph, falling back to
// the shared block when a segment came through empty.
func correctLengthBand(paras [3]string) [3]string {
	total := len(paras[0]) + len(paras[1]) + len(paras[2]) + 2*len(Separator)

	if total > MaxTotalLength {
		trim := (total - MaxTotalLength) / 3
		for i, para := range paras {
			if len(para) > trim+trimGuard {
				paras[i] = para[:len(para)-trim]
			}
		}
		return closeSentences(paras)
	}

	if total < MinTotalLength {
		if paras[0] == "" || paras[1] == "" || paras[2] == "" {
			// Structure lost; append the shared block instead of
			// per-position fillers.
			paras[2] = strings.TrimSpace(paras[2] + sharedExpansionFiller)
		} else {
			for i, para := range paras {
				paras[i] = para + expansionFillers[i]
			}
		}
		// Re-clamp in case the expansion overshot.
		if overshoot := len(paras[0]) + len(paras[1]) + len(paras[2]) + 2*len(Separator) - MaxTotalLength; overshoot > 0 {
			last := paras[2]
			if len(last) > overshoot {
				paras[2] = last[:len(last)-overshoot]
			}
			paras = closeSentences(paras)
		}
	}

	return paras
}

// stripArtifacts removes leaked instruction labels and boilerplate phrases.
func stripArtifacts(article string) string {
	for _, phrase := range redundantPhrases {
		article = strings.ReplaceAll(article, phrase, "")
	}
	for _, label := range instructionLabels {
		article = strings.ReplaceAll(article, label, "")
	}
	return article
}

// Ordered punctuation repair rules. The whitespace collapse deliberately eats
// the paragraph separators; resegment restores them afterwards.
var repairRules = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\.\s*\.\s*`), ". "},
	{regexp.MustCompile(`\s+\.`), "."},
	{regexp.MustCompile(`([a-z])\.\s*([A-Z])`), "$1. $2"},
	{regexp.MustCompile(`\s*,\s*`), ", "},
	{regexp.MustCompile(`([a-z])\s*\.\s*([a-z])`), "$1. $2"},
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`\.+`), "."},
}

var afterPeriodLowerRe = regexp.MustCompile(`\.\s*([a-z])`)

// repairPunctuation applies the ordered normalization rules: collapse
// repeated periods, restore the space after sentence breaks, capitalize the
// letter that follows a period, normalize comma spacing, collapse whitespace.
// Running the pass twice yields the same text.
func repairPunctuation(article string) string {
	for _, rule := range repairRules {
		article = rule.re.ReplaceAllString(article, rule.replacement)
	}
	article = afterPeriodLowerRe.ReplaceAllStringFunc(article, func(m string) string {
		letter := m[len(m)-1:]
		return ". " + strings.ToUpper(letter)
	})
	return strings.TrimSpace(article)
}

// minSentenceLength filters fragments out of re-segmentation.
const minSentenceLength = 20

// resegment guarantees the blank-line structure survived the repair pass: if
// fewer than three segments remain, three are re-derived by an even split
// over the extracted sentences, remainder sentences going to the earlier
// paragraphs first.
func resegment(article string) string {
	if countParagraphs(article) >= 3 {
		return article
	}

	var sentences []string
	for _, piece := range strings.Split(article, ".") {
		piece = strings.TrimSpace(piece)
		if len(piece) > minSentenceLength {
			sentences = append(sentences, piece+".")
		}
	}

	if len(sentences) < 3 {
		// Not enough sentence material; fall back to the character split.
		paras := closeSentences(triSplit(flatten(article)))
		return strings.Join(paras[:], Separator)
	}

	third := len(sentences) / 3
	rem := len(sentences) % 3
	n1 := third
	if rem > 0 {
		n1++
	}
	n2 := third
	if rem > 1 {
		n2++
	}

	para1 := strings.Join(sentences[:n1], " ")
	para2 := strings.Join(sentences[n1:n1+n2], " ")
	para3 := strings.Join(sentences[n1+n2:], " ")

	return para1 + Separator + para2 + Separator + para3
}

func countParagraphs(article string) int {
	count := 0
	for _, para := range strings.Split(article, Separator) {
		if strings.TrimSpace(para) != "" {
			count++
		}
	}
	return count
}

// clampFinalLength truncates an over-long article at the last full sentence
// ending at or before character 1497, provided that sentence ends past 1200;
// otherwise it hard-truncates at 1500.
func clampFinalLength(article string) string {
	if len(article) <= MaxTotalLength {
		return article
	}

	probe := article[:MaxTotalLength-3]
	if lastPeriod := strings.LastIndex(probe, "."); lastPeriod > MinTotalLength {
		return article[:lastPeriod+1]
	}
	return article[:MaxTotalLength]
}
