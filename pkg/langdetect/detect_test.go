package langdetect_test

import (
	"testing"

	"github.com/yaklabco/gogd/pkg/langdetect"
)

func TestIsGDScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected bool
	}{
		{
			name:     "extends declaration",
			path:     "player.gd",
			content:  "extends Node\n\nfunc _ready():\n\tpass\n",
			expected: true,
		},
		{
			name:     "annotations",
			path:     "weapon.gd",
			content:  "@tool\nextends Area2D\n\n@export var damage := 10\n",
			expected: true,
		},
		{
			name:     "node path sigil",
			path:     "hud.gd",
			content:  "var label = $HUD/Score\n",
			expected: true,
		},
		{
			name:     "preload",
			path:     "enemy.gd",
			content:  "const Bullet = preload(\"res://bullet.gd\")\n",
			expected: true,
		},
		{
			name:     "empty file keeps gd extension",
			path:     "empty.gd",
			content:  "",
			expected: true,
		},
		{
			name:     "python script",
			path:     "build.py",
			content:  "def main():\n    pass\n\nif __name__ == '__main__':\n    main()\n",
			expected: false,
		},
		{
			name:     "go source",
			path:     "main.go",
			content:  "package main\n\nfunc main() {}\n",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.IsGDScript(tt.path, []byte(tt.content))
			if got != tt.expected {
				t.Errorf("IsGDScript(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDetectGAPCollision(t *testing.T) {
	t.Parallel()

	// A .gd file full of GDScript constructs must come back GDScript even
	// if enry's extension mapping prefers GAP.
	content := []byte("extends CharacterBody2D\n\nsignal died\n\nfunc _physics_process(delta):\n\tmove_and_slide()\n")

	if lang := langdetect.Detect("player.gd", content); lang != "" && lang != langdetect.GDScript {
		t.Errorf("Detect returned %q for GDScript content", lang)
	}
}
