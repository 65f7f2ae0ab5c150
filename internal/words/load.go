package words

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/rs/zerolog/log"
)

//go:embed wordlists/*.txt
var embedded embed.FS

// Normalize turns a raw list entry or a chat message into comparable form:
// underscores become spaces, case is folded and runs of whitespace collapse.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Load reads a newline-delimited list. Blank lines are skipped.
func Load(tier models.Difficulty, r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := Normalize(sc.Text())
		if w == "" {
			continue
		}
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s list: %w", tier, err)
	}
	return out, nil
}

// LoadFile reads the list of one tier from disk
func LoadFile(tier models.Difficulty, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWordListMissing, tier, err)
	}
	defer f.Close()

	list, err := Load(tier, f)
	if err != nil {
		return nil, err
	}

	log.Info().Str("tier", string(tier)).Int("words", len(list)).Str("path", path).Msg("loaded word list")
	return list, nil
}

// LoadDir reads easy.txt, hard.txt and adult.txt from dir. Tiers that fail
// to load are left out of the result and reported in the joined error, so
// the caller can still run with the tiers that did load.
func LoadDir(dir string) (map[models.Difficulty][]string, error) {
	lists := make(map[models.Difficulty][]string)
	var errs []error

	for _, tier := range models.Difficulties {
		list, err := LoadFile(tier, filepath.Join(dir, string(tier)+".txt"))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lists[tier] = list
	}

	return lists, errors.Join(errs...)
}

// LoadEmbedded returns the lists compiled into the binary
func LoadEmbedded() (map[models.Difficulty][]string, error) {
	lists := make(map[models.Difficulty][]string)

	for _, tier := range models.Difficulties {
		f, err := embedded.Open("wordlists/" + string(tier) + ".txt")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrWordListMissing, tier, err)
		}

		list, err := Load(tier, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		lists[tier] = list
	}

	return lists, nil
}
