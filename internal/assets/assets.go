// Package assets embeds the default layout description and its images.
package assets

import (
	"embed"
	"io/fs"
)

// DefaultLayout is the name of the built-in layout description inside FS.
const DefaultLayout = "default.yaml"

//go:embed default.yaml images/*.png
var files embed.FS

// FS returns the embedded asset tree.
func FS() fs.FS {
	return files
}
