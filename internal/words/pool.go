package words

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_drawer.go github.com/KirkDiggler/crocodile/internal/words Drawer

// Drawer supplies random words for a tier
type Drawer interface {
	// Draw returns a uniformly random word of the tier
	Draw(tier models.Difficulty) (string, error)
}

// Config for the word pool
type Config struct {
	// Lists holds the normalized words of every loaded tier
	Lists map[models.Difficulty][]string

	// Optional seed for testing
	Seed uint64
}

// Pool is the process-wide word store. The lists never change after New;
// only the random source is guarded.
type Pool struct {
	lists map[models.Difficulty][]string

	mu     sync.Mutex
	random *rand.Rand
}

// New creates a pool from already loaded lists
func New(cfg *Config) *Pool {
	var seed uint64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = uint64(time.Now().UnixNano())
	}

	lists := make(map[models.Difficulty][]string)
	if cfg != nil {
		for tier, words := range cfg.Lists {
			lists[tier] = append([]string(nil), words...)
		}
	}

	return &Pool{
		lists:  lists,
		random: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Draw picks a word for the tier. An unknown tier falls back to easy with
// a warning; a tier without words is an error.
func (p *Pool) Draw(tier models.Difficulty) (string, error) {
	resolved := tier
	if !resolved.IsValid() {
		log.Warn().Str("tier", string(tier)).Msg("unknown word tier, falling back to easy")
		resolved = models.DifficultyEasy
	}

	list := p.lists[resolved]
	if len(list) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyWordList, resolved)
	}

	p.mu.Lock()
	i := p.random.IntN(len(list))
	p.mu.Unlock()

	return list[i], nil
}

// Size returns how many words the tier holds
func (p *Pool) Size(tier models.Difficulty) int {
	return len(p.lists[tier])
}
