package cache

import (
	"strings"

	"github.com/google/uuid"
)

// namespace scopes render keys so they cannot collide with other name-based UUIDs
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/conduit-lang/chartdata/render"))

// RenderKey derives a stable key from a source document and the settings that
// change its rendered form. Equal inputs always produce the same key.
func RenderKey(source []byte, settings ...string) string {
	var b strings.Builder
	for _, s := range settings {
		b.WriteString(s)
		b.WriteByte(0)
	}
	b.Write(source)

	return "render:" + uuid.NewSHA1(namespace, []byte(b.String())).String()
}
