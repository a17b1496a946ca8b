package verifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/config"
	"tunetrace/internal/logging"
	"tunetrace/internal/match"
	"tunetrace/internal/ytsearch"
)

// Verifier confirms resolved channels against representative songs.
type Verifier struct {
	store  *artiststore.Store
	search *ytsearch.Client
	logger *slog.Logger
	export *ReviewExport
}

// New constructs a verifier writing rejections into the configured review
// directory.
func New(cfg *config.Config, store *artiststore.Store, search *ytsearch.Client, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Verifier{
		store:  store,
		search: search,
		logger: logging.NewComponentLogger(logger, "verifier"),
		export: NewReviewExport(cfg.Paths.ReviewDir),
	}
}

// Export returns the CSV export receiving rejections.
func (v *Verifier) Export() *ReviewExport {
	return v.export
}

// Verify searches the artist's channel for the representative song and
// persists the automatic verdict. VerdictUnknown with a nil error means the
// external search was unavailable and the record was left untouched.
func (v *Verifier) Verify(ctx context.Context, artist *artiststore.Artist) (artiststore.Verdict, error) {
	if artist == nil {
		return artiststore.VerdictUnknown, errors.New("artist record required")
	}
	if artist.ChannelURL == "" {
		return artiststore.VerdictUnknown, fmt.Errorf("artist %q has no resolved channel", artist.Name)
	}
	if artist.SongName == "" {
		return artiststore.VerdictUnknown, fmt.Errorf("artist %q has no representative song", artist.Name)
	}

	cands, err := v.search.ChannelUploads(ctx, artist.ChannelURL, artist.SongName)
	if err != nil {
		if errors.Is(err, ytsearch.ErrSearchUnavailable) {
			v.logger.Warn("channel search unavailable",
				logging.String(logging.FieldArtist, artist.Name),
				logging.String(logging.FieldChannel, artist.ChannelURL),
				logging.Error(err))
			return artiststore.VerdictUnknown, nil
		}
		return artiststore.VerdictUnknown, err
	}

	best, score, ok := match.BestUpload(artist.SongName, cands)
	if !ok {
		if err := v.store.SetAutoVerified(ctx, artist.Name, artiststore.VerdictFail); err != nil {
			return artiststore.VerdictUnknown, fmt.Errorf("persist verdict: %w", err)
		}
		if err := v.export.Append(artist.Name, artist.SongName, artist.ChannelURL); err != nil {
			return artiststore.VerdictUnknown, err
		}
		v.logger.Info("channel rejected",
			logging.String(logging.FieldArtist, artist.Name),
			logging.String(logging.FieldSong, artist.SongName),
			logging.Int("candidates", len(cands)))
		return artiststore.VerdictFail, nil
	}

	if err := v.store.SetAutoVerified(ctx, artist.Name, artiststore.VerdictPass); err != nil {
		return artiststore.VerdictUnknown, fmt.Errorf("persist verdict: %w", err)
	}
	v.logger.Info("channel verified",
		logging.String(logging.FieldArtist, artist.Name),
		logging.String(logging.FieldSong, artist.SongName),
		logging.String("upload", best.URL),
		logging.Float64(logging.FieldScore, score))
	return artiststore.VerdictPass, nil
}
