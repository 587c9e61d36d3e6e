//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/library"
	"github.com/llehouerou/foldplay/internal/playback"
)

// busName is the suffix of org.mpris.MediaPlayer2.<name>.
const busName = "foldplay"

// Adapter connects a playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	logger logrus.FieldLogger
}

// New creates and starts a new MPRIS adapter.
func New(ctrl Controller, logger logrus.FieldLogger) (*Adapter, error) {
	if _, err := dbus.SessionBus(); err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	a := &Adapter{
		server: server.NewServer(busName, identity{}, &playerAdapter{ctrl: ctrl}),
		logger: logger,
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			a.logger.WithError(err).Warn("MPRIS server stopped")
		}
	}()

	logger.Info("MPRIS server started")
	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// identity answers the org.mpris.MediaPlayer2 interface. There is no window
// to raise and quitting is left to the front-end.
type identity struct{}

func (identity) Raise() error                  { return nil }
func (identity) Quit() error                   { return nil }
func (identity) CanQuit() (bool, error)        { return false, nil }
func (identity) CanRaise() (bool, error)       { return false, nil }
func (identity) HasTrackList() (bool, error)   { return false, nil }
func (identity) Identity() (string, error)     { return busName, nil }
func (identity) DesktopEntry() (string, error) { return busName, nil }

//nolint:revive // Method name required by interface.
func (identity) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (identity) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/x-wav", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter and the
// LoopStatus and Shuffle extensions.
type playerAdapter struct {
	ctrl Controller
}

func (p *playerAdapter) Next() error {
	return p.ctrl.Next()
}

func (p *playerAdapter) Previous() error {
	return p.ctrl.Previous()
}

func (p *playerAdapter) Pause() error {
	if p.ctrl.State() != playback.StatePlaying {
		return nil
	}
	return p.ctrl.Pause()
}

func (p *playerAdapter) PlayPause() error {
	if p.ctrl.State() == playback.StateStopped {
		return p.ctrl.Play()
	}
	return p.ctrl.Pause()
}

// Stop pauses: the controller has no stopped-but-loaded state.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	switch p.ctrl.State() {
	case playback.StateStopped:
		return p.ctrl.Play()
	case playback.StatePaused:
		return p.ctrl.Pause()
	case playback.StatePlaying:
	}
	return nil
}

// Seeking, rate, volume and opening URIs are not offered; the setters
// accept and ignore.
func (*playerAdapter) Seek(types.Microseconds) error                { return nil }
func (*playerAdapter) SetPosition(string, types.Microseconds) error { return nil }
func (*playerAdapter) SetRate(float64) error                        { return nil }
func (*playerAdapter) SetVolume(float64) error                      { return nil }
func (*playerAdapter) Rate() (float64, error)                       { return 1, nil }
func (*playerAdapter) MinimumRate() (float64, error)                { return 1, nil }
func (*playerAdapter) MaximumRate() (float64, error)                { return 1, nil }
func (*playerAdapter) Volume() (float64, error)                     { return 1, nil }
func (*playerAdapter) CanSeek() (bool, error)                       { return false, nil }
func (*playerAdapter) CanControl() (bool, error)                    { return true, nil }

//nolint:revive // Method name required by interface.
func (*playerAdapter) OpenUri(string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.ctrl.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.ctrl.Status().Track
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.Path)),
		Length:  types.Microseconds(track.Duration.Microseconds()),
		Title:   track.Label(),
		Album:   track.Album,
	}
	if track.Artist != "" {
		meta.Title = track.Title
		meta.Artist = []string{track.Artist}
	}
	if art := library.FindCover(track.Path); art != "" {
		meta.ArtUrl = "file://" + art
	}
	return meta, nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.Status().Elapsed.Microseconds(), nil
}

// The playlist wraps around, so next and previous exist whenever it is non-empty.
func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.ctrl.Len() > 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.ctrl.Len() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.ctrl.Len() > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.ctrl.State().IsActive(), nil
}

// LoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
// Repeat replays the current track; otherwise the list already wraps.
func (p *playerAdapter) LoopStatus() (types.LoopStatus, error) {
	if p.ctrl.Repeat() {
		return types.LoopStatusTrack, nil
	}
	return types.LoopStatusNone, nil
}

// SetLoopStatus implements OrgMprisMediaPlayer2PlayerAdapterLoopStatus.
func (p *playerAdapter) SetLoopStatus(status types.LoopStatus) error {
	p.ctrl.SetRepeat(status == types.LoopStatusTrack)
	return nil
}

// Shuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) Shuffle() (bool, error) {
	return p.ctrl.Shuffle(), nil
}

// SetShuffle implements OrgMprisMediaPlayer2PlayerAdapterShuffle.
func (p *playerAdapter) SetShuffle(shuffle bool) error {
	p.ctrl.SetShuffle(shuffle)
	return nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
