// Package langdetect decides whether a file is GDScript before it is
// formatted or linted. The .gd extension is shared with the GAP computer
// algebra system, so extension alone is not enough; enry's classifier
// plus GDScript-specific patterns settle the ambiguous cases.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"

	"github.com/go-enry/go-enry/v2"
)

// GDScript is the enry language name for Godot scripts.
const GDScript = "GDScript"

// gdscriptPatterns match constructs that only appear in GDScript.
var gdscriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^extends\s+\w`),
	regexp.MustCompile(`(?m)^(class_name|tool|@tool|@icon)\b`),
	regexp.MustCompile(`(?m)^\s*(func|signal|@export|@onready|onready\s+var|export\s*\()`),
	regexp.MustCompile(`\$[A-Za-z_"]`),
	regexp.MustCompile(`\bpreload\s*\(`),
}

// Detect reports the language detected for a file, or "" when detection
// is inconclusive.
func Detect(path string, content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	lang := enry.GetLanguage(filepath.Base(path), content)
	if lang == "" || lang == GDScript {
		return lang
	}

	// enry leans on extension first, and .gd collides with GAP. For .gd
	// files, trust a non-GDScript answer only when the content shows no
	// GDScript shape.
	if filepath.Ext(path) == ".gd" && matchesGDScript(content) {
		return GDScript
	}
	return lang
}

// IsGDScript reports whether the file should be processed as GDScript.
// An inconclusive detection counts as GDScript for .gd files.
func IsGDScript(path string, content []byte) bool {
	lang := Detect(path, content)
	return lang == "" || lang == GDScript
}

func matchesGDScript(content []byte) bool {
	for _, pattern := range gdscriptPatterns {
		if pattern.Match(content) {
			return true
		}
	}
	return false
}
