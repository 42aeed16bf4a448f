package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hpungsan/gachalog/internal/uigf"
)

// Markdown renders a summary of doc.
func Markdown(doc *uigf.Document) string {
	var b strings.Builder
	b.WriteString("# Gacha summary\n\n")
	fmt.Fprintf(&b, "Exported by %s %s at %s (UIGF %s)\n",
		orDash(doc.Info.ExportApp), orDash(doc.Info.ExportAppVer),
		time.Unix(int64(doc.Info.ExportTimestamp), 0).UTC().Format("2006-01-02 15:04 UTC"),
		orDash(doc.Info.Version))

	if doc.Empty() {
		b.WriteString("\nNo collections.\n")
		return b.String()
	}

	for _, c := range Analyze(doc) {
		fmt.Fprintf(&b, "\n## %s (uid %s, %s)\n\n", c.Family.DisplayName(), c.UID, formatOffset(c.Timezone))
		fmt.Fprintf(&b, "%d pulls in total.\n\n", c.Total)
		if len(c.Categories) == 0 {
			continue
		}

		star := c.Family.TopRank() + "★"
		fmt.Fprintf(&b, "| Banner | Pulls | %s | Pity |\n", star)
		b.WriteString("|---|---:|---:|---:|\n")
		for _, cat := range c.Categories {
			fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", escapeCell(cat.Name), cat.Total, cat.TopRank, cat.Pity)
		}

		for _, cat := range c.Categories {
			if len(cat.TopItems) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", cat.Name)
			for _, it := range cat.TopItems {
				fmt.Fprintf(&b, "- %s, %d pulls, %s\n", orDash(it.Name), it.Pulls, it.Time)
			}
		}
	}
	return b.String()
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var page = template.Must(template.New("summary").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>Gacha summary</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.6rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTML renders the Markdown summary of doc as a standalone page.
func HTML(doc *uigf.Document) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(doc)), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	var out bytes.Buffer
	data := struct {
		Lang string
		Body template.HTML
	}{pageLang(doc), template.HTML(body.String())}
	if err := page.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out.String(), nil
}

// pageLang is the BCP 47 tag of the first collection that names a language.
func pageLang(doc *uigf.Document) string {
	var langs []*uigf.LanguageCode
	for _, c := range doc.Hk4e {
		langs = append(langs, c.Lang)
	}
	for _, c := range doc.Hkrpg {
		langs = append(langs, c.Lang)
	}
	for _, c := range doc.Nap {
		langs = append(langs, c.Lang)
	}
	for _, l := range langs {
		if l != nil {
			return l.Tag().String()
		}
	}
	return "en"
}

func formatOffset(tz int) string {
	if tz >= 0 {
		return fmt.Sprintf("UTC+%d", tz)
	}
	return fmt.Sprintf("UTC%d", tz)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
