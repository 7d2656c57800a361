package answer

import "strings"

// glossaryEntry is one ordered bilingual expansion pair. Slices rather than
// maps keep the augmented query set deterministic.
type glossaryEntry struct {
	term      string
	expansion string
}

var zhToEn = []glossaryEntry{
	{"退货", "return"},
	{"退款", "refund"},
	{"退换", "exchange"},
	{"配送", "shipping"},
	{"运费", "shipping"},
	{"物流", "shipping"},
	{"运输", "shipping"},
	{"尺码", "size"},
	{"大小", "size"},
	{"政策", "policy"},
}

var enToZh = []glossaryEntry{
	{"return", "退货"},
	{"refund", "退款"},
	{"exchange", "退换"},
	{"shipping", "配送"},
	{"size", "尺码"},
	{"policy", "政策"},
}

// zhSynonyms adds same-language variants of a matched term to the expansion.
var zhSynonyms = map[string][]string{
	"退款": {"退货"},
	"退货": {"退款"},
}

// policyBooster is a fixed retrieval booster appended for refund/return/policy
// intents in either language.
const policyBooster = "退货 政策 退款"

var zhBoosterTriggers = []string{"退款", "退货", "政策"}
var enBoosterTriggers = []string{"return", "refund", "policy"}

// Augment expands one query into candidate query strings to raise bilingual
// recall. The original query is always first; extra candidates are appended
// only when glossary terms match. Pure function of the input.
func Augment(query string) []string {
	candidates := []string{query}

	if containsCJK(query) {
		var terms []string
		for _, e := range zhToEn {
			if strings.Contains(query, e.term) {
				terms = append(terms, e.expansion)
				terms = append(terms, zhSynonyms[e.term]...)
			}
		}
		if len(terms) > 0 {
			candidates = append(candidates, strings.Join(terms, " "))
		}
		if anyContained(query, zhBoosterTriggers) {
			candidates = append(candidates, policyBooster)
		}
		return candidates
	}

	lower := strings.ToLower(query)
	var terms []string
	for _, e := range enToZh {
		if strings.Contains(lower, e.term) {
			terms = append(terms, e.expansion)
		}
	}
	if len(terms) > 0 {
		candidates = append(candidates, strings.Join(terms, " "))
	}
	if anyContained(lower, enBoosterTriggers) {
		candidates = append(candidates, policyBooster)
	}
	return candidates
}

// containsCJK reports whether s has at least one character in the CJK
// Unified Ideographs block.
func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

func anyContained(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
