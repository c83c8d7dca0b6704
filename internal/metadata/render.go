package metadata

import (
	"strconv"
	"strings"
)

// Context placeholder names
const (
	PlaceholderTitle         = "title"
	PlaceholderUploader      = "uploader"
	PlaceholderChannel       = "channel"
	PlaceholderPlaylistTitle = "playlist_title"
	PlaceholderIndex         = "index"
)

// Render substitutes {name} placeholders in tmpl from ctx. Rendering is
// total: placeholders missing from ctx become the empty string, "{{" and
// "}}" escape literal braces, and any malformed template (unclosed or stray
// brace) falls back to the original text. The result is always trimmed of
// surrounding whitespace.
func Render(tmpl string, ctx map[string]string) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return strings.TrimSpace(tmpl)
			}
			key := tmpl[i+1 : i+1+end]
			if strings.ContainsRune(key, '{') {
				return strings.TrimSpace(tmpl)
			}
			b.WriteString(ctx[key])
			i += end + 2
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return strings.TrimSpace(tmpl)
		default:
			b.WriteByte(tmpl[i])
			i++
		}
	}
	return strings.TrimSpace(b.String())
}

// IndexValue formats a 1-based run position for the index placeholder
func IndexValue(index int) string {
	return strconv.Itoa(index)
}
