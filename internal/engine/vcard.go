package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/circle-squared/internal/config"
)

// SourceConfig describes where contacts are imported from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Importer turns an address book into new friends.
type Importer struct {
	Clock   Clock        // Creation time of the imported friends.
	Fetcher VCardFetcher // Used in web mode.
}

// Run acquires the vCard stream described by cfg and converts every card.
func (im *Importer) Run(ctx context.Context, cfg SourceConfig) ([]Friend, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImport,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	friends, err := ImportVCards(ctx, reader, im.Clock.Now())
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, config.MsgImportDone,
		config.LogKeyImported, len(friends),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return friends, nil
}

func (im *Importer) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// ImportVCards decodes every card of r into a new friend created at now.
//
// Malformed cards are skipped. Dates that do not parse are dropped from the
// friend rather than stored, so that they cannot break milestone aggregation
// later. Too many consecutive decode failures abort the import.
func ImportVCards(ctx context.Context, r io.Reader, now time.Time) ([]Friend, error) {
	decoder := vcard.NewDecoder(r)
	friends := make([]Friend, 0)
	processed, failures := 0, 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			failures++
			if failures > config.MaxVCardFailures {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyError, err)
			continue
		}
		failures = 0
		processed++

		f, err := NewFriend(now, friendFromCard(card))
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyError, err)
			continue
		}
		friends = append(friends, f)
	}

	slog.Debug(config.MsgImportDone,
		config.LogKeyComponent, config.CompImport,
		config.LogKeyTotal, processed,
		config.LogKeyImported, len(friends))
	return friends, nil
}

// friendFromCard maps vCard properties onto a friend draft.
func friendFromCard(card vcard.Card) Friend {
	// Name Strategy: FN (Formatted) > N (Structured) > Fallback
	name := config.FallbackName
	if fn := strings.TrimSpace(card.Value(config.VCardFN)); fn != "" {
		name = fn
	} else if n := card.Name(); n != nil {
		if full := strings.TrimSpace(n.GivenName + " " + n.FamilyName); full != "" {
			name = full
		}
	}

	draft := Friend{
		Name:        name,
		Nickname:    strings.TrimSpace(card.Value(config.VCardNickname)),
		Notes:       strings.TrimSpace(card.Value(config.VCardNote)),
		Birthday:    cardDate(card, config.VCardBDAY),
		Anniversary: cardDate(card, config.VCardAnniversary),
	}
	if cats := card.Value(config.VCardCategories); cats != "" {
		draft.Category = strings.TrimSpace(strings.Split(cats, ",")[0])
	}
	return draft
}

// cardDate returns the raw date of a card property, or "" when it is absent
// or does not parse.
func cardDate(card vcard.Card, key string) string {
	value := strings.TrimSpace(card.Value(key))
	if value == "" {
		return ""
	}
	if _, _, err := ParseDate(value); err != nil {
		slog.Debug(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompImport,
			config.LogKeyKey, key,
			config.LogKeyValue, value)
		return ""
	}
	return value
}
