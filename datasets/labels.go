package datasets

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Labels maps per-cell label strings onto integer class ids.
type Labels struct {
	// IDs holds the class id of every line, in file order.
	IDs []int
	// Names holds the distinct label strings, sorted; IDs index into it.
	Names []string
}

// NumClasses returns the number of distinct labels.
func (l *Labels) NumClasses() int { return len(l.Names) }

// LoadLabels reads one label per line from path.
func LoadLabels(path string) (*Labels, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open labels")
	}
	defer file.Close()
	return ReadLabels(file)
}

// ReadLabels reads one label per line from r. Surrounding whitespace is
// trimmed; blank lines are skipped.
func ReadLabels(r io.Reader) (*Labels, error) {
	var raw []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			raw = append(raw, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read labels")
	}

	names := slices.Clone(raw)
	slices.Sort(names)
	names = slices.Compact(names)

	ids := make([]int, len(raw))
	for i, s := range raw {
		ids[i], _ = slices.BinarySearch(names, s)
	}
	return &Labels{IDs: ids, Names: names}, nil
}
