package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/crocodile/internal/repositories"
	"github.com/KirkDiggler/crocodile/internal/services/game"
	"github.com/KirkDiggler/crocodile/internal/services/ledger"
)

// ErrUnknownMessageKey is returned for keys missing from the fallback catalog
var ErrUnknownMessageKey = errors.New("unknown message key")

// service implements the Service interface
type service struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *Config) (*service, error) {
	seed := uint64(time.Now().UnixNano())
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewPCG(seed, seed>>1)),
	}, nil
}

// GetMessage picks a variant of the key and fills its placeholders
func (s *service) GetMessage(ctx context.Context, input *GetMessageInput) (*GetMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	language := input.Language
	variants, ok := catalogs[language][input.Key]
	if !ok {
		language = fallbackLanguage
		variants, ok = catalogs[fallbackLanguage][input.Key]
	}
	if !ok || len(variants) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessageKey, input.Key)
	}

	return &GetMessageOutput{
		Message:  render(s.pick(variants), input.Params),
		Language: language,
	}, nil
}

// GetErrorMessage maps a typed error to its catalog message. Errors that
// are not user errors get a generic message.
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	key, params, isUserError := classify(input.Err)
	if len(input.Params) > 0 {
		merged := make(map[string]string, len(params)+len(input.Params))
		for k, v := range input.Params {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		params = merged
	}

	out, err := s.GetMessage(ctx, &GetMessageInput{
		Key:      key,
		Language: input.Language,
		Params:   params,
	})
	if err != nil {
		return nil, err
	}

	return &GetErrorMessageOutput{
		Key:         key,
		Message:     out.Message,
		IsUserError: isUserError,
	}, nil
}

func (s *service) pick(variants []string) string {
	if len(variants) == 1 {
		return variants[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return variants[s.rand.IntN(len(variants))]
}

func classify(err error) (MessageKey, map[string]string, bool) {
	var running *game.GameAlreadyRunningError
	switch {
	case errors.As(err, &running):
		return KeyGameAlreadyRunning, map[string]string{"host": running.HostName()}, true
	case errors.Is(err, game.ErrGameAlreadyRunning):
		return KeyGameAlreadyRunning, map[string]string{"host": "someone"}, true
	case errors.Is(err, game.ErrNoActiveGame):
		return KeyNoActiveGame, nil, true
	case errors.Is(err, game.ErrNotHost):
		return KeyNotHost, nil, true
	case errors.Is(err, game.ErrInvalidDifficulty):
		return KeyInvalidMode, nil, true
	case errors.Is(err, game.ErrInvalidLanguage):
		return KeyInvalidLanguage, map[string]string{"languages": strings.Join(game.SupportedLanguages, ", ")}, true
	case errors.Is(err, game.ErrNotAdmin):
		return KeyNotAdmin, nil, true
	case errors.Is(err, game.ErrRequesterIsBot):
		return KeyBotCannotHost, nil, true
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return KeyInsufficientFunds, nil, true
	case errors.Is(err, ledger.ErrInvalidAmount):
		return KeyInvalidAmount, nil, true
	case errors.Is(err, ledger.ErrSelfTransfer):
		return KeySelfTransfer, nil, true
	case errors.Is(err, repositories.ErrStorageUnavailable):
		return KeyStorageError, nil, false
	default:
		return KeyGenericError, nil, false
	}
}

func render(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}

	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
