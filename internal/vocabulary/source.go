package vocabulary

import (
	"context"
	"fmt"

	"github.com/nikhilbhutani/kiswahili/internal/config"
)

// Load returns the word list selected by cfg.WordsSource. For the builtin
// source it returns nil, leaving the choice of default list to the caller.
// db may be nil unless the database source is selected.
func Load(ctx context.Context, cfg config.NLPConfig, db DB) ([]string, error) {
	switch cfg.WordsSource {
	case config.WordsBuiltin, "":
		return nil, nil
	case config.WordsFile:
		return LoadFile(cfg.WordsFile)
	case config.WordsDatabase:
		if db == nil {
			return nil, fmt.Errorf("words source %q: database not connected", cfg.WordsSource)
		}
		words, err := NewRepository(db).List(ctx)
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("vocabulary table: %w", ErrEmpty)
		}
		return words, nil
	default:
		return nil, fmt.Errorf("unknown words source %q", cfg.WordsSource)
	}
}
