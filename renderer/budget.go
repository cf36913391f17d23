package renderer

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	md "github.com/nao1215/markdown"

	"github.com/nmoretto/indexa"
)

// BudgetMarkdown renders a projected budget to a markdown string.
func BudgetMarkdown(b *indexa.Budget) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Projected Budget from %s, %d months", b.Start, b.Months))

	if len(b.Items) == 0 {
		doc.PlainText("Nothing due in the projected window.")
		return doc.String()
	}

	doc.H2("Monthly Totals")
	months := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Month", "Total"},
	}
	for _, label := range sortedKeys(b.TotalByMonth) {
		months.Rows = append(months.Rows, []string{label, b.TotalByMonth[label].String()})
	}
	months.Rows = append(months.Rows, []string{md.Bold("Total"), md.Bold(b.Total.String())})
	doc.Table(months)

	doc.H2("By Category")
	categories := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Category", "Total"},
	}
	for _, category := range sortedKeys(b.TotalByCategory) {
		categories.Rows = append(categories.Rows, []string{category, b.TotalByCategory[category].String()})
	}
	doc.Table(categories)

	doc.H2("Schedule")
	items := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Month", "Obligation", "Amount"},
	}
	for _, item := range b.Items {
		items.Rows = append(items.Rows, []string{item.Month, itemName(item), item.Amount.String()})
	}
	doc.Table(items)
	doc.Build()

	ConditionalBlock(&buf, func(w io.Writer) bool {
		found := false
		sub := md.NewMarkdown(w)
		sub.H2("Fixed")
		var fixed []string
		for _, item := range b.Items {
			if item.Fixed {
				found = true
				fixed = append(fixed, itemName(item))
			}
		}
		sub.PlainText("Not indexed by the inflation scenario: " + itemList(fixed))
		sub.Build()
		return found
	})

	return buf.String()
}

func itemName(item indexa.Item) string {
	if item.Description == "" {
		return item.Category
	}
	return fmt.Sprintf("%s (%s)", item.Category, item.Description)
}

func itemList(names []string) string {
	seen := make(map[string]bool)
	out := ""
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if out != "" {
			out += ", "
		}
		out += name
	}
	return out
}

func sortedKeys(m map[string]indexa.Money) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
