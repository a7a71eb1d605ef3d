package snippet

import (
	"strings"
)

// DefaultExportName is used when the user leaves the filename blank.
const DefaultExportName = "untitled"

const exportExt = ".html"

// Render builds the standalone preview document for s. The result depends
// only on s, so assigning it to the preview frame fully replaces any earlier
// document and script state.
func Render(s Snippet) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n<style>")
	b.WriteString(s.Style)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(s.Markup)
	b.WriteString("\n<script>")
	b.WriteString(s.Script)
	b.WriteString("</script>\n</body>\n</html>\n")
	return b.String()
}

// Export builds the downloadable document for s and the normalized filename
// it should be saved under.
func Export(s Snippet, filename string) (string, []byte) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("<title>Exported Playground</title>\n<style>\n")
	b.WriteString(s.Style)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString(s.Markup)
	b.WriteString("\n<script>\n")
	b.WriteString(s.Script)
	b.WriteString("\n</script>\n</body>\n</html>\n")
	return NormalizeFilename(filename), []byte(b.String())
}

// NormalizeFilename trims name, substitutes DefaultExportName when it is
// blank and appends ".html" unless already present in any letter case.
func NormalizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultExportName
	}
	if !strings.HasSuffix(strings.ToLower(name), exportExt) {
		name += exportExt
	}
	return name
}
