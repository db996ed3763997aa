package stats

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/scrutinytools/devtools/pkg/console"
)

// LanguageSummary totals line counts for one language.
type LanguageSummary struct {
	Language Language `json:"language"`
	Code     int      `json:"code"`
	Test     int      `json:"test"`
	Comment  int      `json:"comment"`
	Blank    int      `json:"blank"`
}

// Summarize folds per-file reports into per-language totals, sorted by
// language name. Test files contribute their code lines to the Test column;
// their comment and blank lines count normally.
func (r *Report) Summarize() []LanguageSummary {
	byLang := make(map[Language]*LanguageSummary)
	for _, fr := range r.Files {
		s := byLang[fr.Language]
		if s == nil {
			s = &LanguageSummary{Language: fr.Language}
			byLang[fr.Language] = s
		}
		s.Blank += fr.Blank
		s.Comment += fr.Comment
		if fr.Kind == KindTest {
			s.Test += fr.Code
		} else {
			s.Code += fr.Code
		}
	}

	summaries := make([]LanguageSummary, 0, len(byLang))
	for _, s := range byLang {
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b LanguageSummary) int {
		return strings.Compare(string(a.Language), string(b.Language))
	})
	return summaries
}

// RenderSummaryTable formats summaries as an aligned table with a total row.
func RenderSummaryTable(summaries []LanguageSummary) string {
	rows := make([][]string, 0, len(summaries))
	var total LanguageSummary
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Language),
			strconv.Itoa(s.Code),
			strconv.Itoa(s.Test),
			strconv.Itoa(s.Comment),
			strconv.Itoa(s.Blank),
		})
		total.Code += s.Code
		total.Test += s.Test
		total.Comment += s.Comment
		total.Blank += s.Blank
	}

	return console.RenderTable(console.TableConfig{
		Headers:   []string{"Language", "Code", "Test", "Comment", "Blank"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow: []string{
			"Total",
			strconv.Itoa(total.Code),
			strconv.Itoa(total.Test),
			strconv.Itoa(total.Comment),
			strconv.Itoa(total.Blank),
		},
	})
}

// RenderSummaryJSON formats summaries as indented JSON.
func RenderSummaryJSON(summaries []LanguageSummary) (string, error) {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
