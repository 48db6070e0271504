package corpus

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ManifestName is the file name of a directory's order manifest.
const ManifestName = ".order"

// ReadManifest reads dir/.order. Blank lines are skipped, entries are trimmed.
// A missing manifest reports found=false without an error.
func ReadManifest(dir string) (names []string, found bool, err error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %s: %w", ErrManifestRead, dir, err)
	}
	return ParseManifest(data), true, nil
}

// ParseManifest splits manifest content into page base names.
func ParseManifest(data []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}
