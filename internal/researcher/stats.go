package researcher

import (
	"regexp"
	"sort"
	"strings"

	"ghostroot/internal/corpus"
)

// tokenPattern is deliberately permissive: plain letters plus apostrophe,
// modifier letters used as glottal-stop marks, and hyphens.
var tokenPattern = regexp.MustCompile(`[a-zA-Zʔʼ'’-]+`)

const topTokenCount = 10

// LanguageSummary is the per-language evidence digest injected into every
// downstream prompt.
type LanguageSummary struct {
	TokenCount int      `json:"token_count"`
	TopTokens  []string `json:"top_tokens"`
}

// Tokenize lowercases and splits text into word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Summarize derives token statistics per language from the corpus.
// Sentence-kind artifacts are excluded: they are composite, not atomic
// vocabulary units. Top tokens are ranked by frequency, ties broken by
// first occurrence so the output is deterministic.
func Summarize(artifacts []corpus.Artifact) map[string]LanguageSummary {
	type tokenStat struct {
		count int
		first int
	}
	counts := make(map[string]map[string]*tokenStat)
	totals := make(map[string]int)

	pos := 0
	for _, a := range artifacts {
		if a.Kind == corpus.KindSentence {
			continue
		}
		lang := a.Language
		if lang == "" {
			lang = "unknown"
		}
		if counts[lang] == nil {
			counts[lang] = make(map[string]*tokenStat)
		}
		for _, tok := range Tokenize(a.Text) {
			totals[lang]++
			if s, ok := counts[lang][tok]; ok {
				s.count++
			} else {
				counts[lang][tok] = &tokenStat{count: 1, first: pos}
			}
			pos++
		}
	}

	summaries := make(map[string]LanguageSummary, len(counts))
	for lang, toks := range counts {
		type ranked struct {
			token string
			stat  *tokenStat
		}
		all := make([]ranked, 0, len(toks))
		for tok, s := range toks {
			all = append(all, ranked{tok, s})
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].stat.count != all[j].stat.count {
				return all[i].stat.count > all[j].stat.count
			}
			return all[i].stat.first < all[j].stat.first
		})
		top := make([]string, 0, topTokenCount)
		for _, r := range all {
			if len(top) == topTokenCount {
				break
			}
			top = append(top, r.token)
		}
		summaries[lang] = LanguageSummary{
			TokenCount: totals[lang],
			TopTokens:  top,
		}
	}
	return summaries
}

// Languages returns the sorted language tags present in the summaries.
func Languages(summaries map[string]LanguageSummary) []string {
	langs := make([]string, 0, len(summaries))
	for lang := range summaries {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
