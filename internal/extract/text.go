package extract

import (
	"fmt"
	"os"
	"strings"
)

// extractText reads a plain-text file. Invalid UTF-8 bytes are dropped
// rather than failing the run.
func extractText(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.ToValidUTF8(string(data), "")
	return splitParagraphs(text), nil
}
