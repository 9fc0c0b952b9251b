package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"wavecollapse/pkg/game/renderer"
	"wavecollapse/pkg/game/state"
)

// WriteScreenshotHTML writes the frame as a standalone HTML page
func WriteScreenshotHTML(w io.Writer, f state.Frame) error {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Wave Function Collapse - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .pending { color: #666; }
        .messages { color: #aaa; }
    </style>
</head>
<body>
`)

	fmt.Fprintf(&b, "<div class=\"header\">seed %d &middot; run %s &middot; %.1f%%</div>\n",
		f.Seed, html.EscapeString(f.RunID.String()), f.Percent)

	b.WriteString("<div class=\"map-container\">\n")
	for y := f.Height - 1; y >= 0; y-- {
		b.WriteString("<div class=\"map-row\">")
		for x := 0; x < f.Width; x++ {
			tile := f.Matrix.At(x, y)
			if tile == nil {
				fmt.Fprintf(&b, "<span class=\"pending\">%c</span>", renderer.EntropyGlyph(entropyAt(f, x, y)))
				continue
			}
			c := renderer.TileColor(tile.ID())
			fmt.Fprintf(&b, "<span style=\"color:#%02x%02x%02x\">%c</span>",
				c.R, c.G, c.B, renderer.TileGlyph(tile.ID()))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")

	if len(f.Messages) > 0 {
		b.WriteString("<div class=\"messages\">\n")
		for _, msg := range f.Messages {
			fmt.Fprintf(&b, "<div>%s</div>\n", html.EscapeString(msg))
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveScreenshotHTML saves the frame to a timestamped HTML file and returns its name
func SaveScreenshotHTML(f state.Frame) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("screenshot-%s.html", timestamp)

	out, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := WriteScreenshotHTML(out, f); err != nil {
		return "", err
	}
	return filename, out.Close()
}
