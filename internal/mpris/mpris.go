//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter serves the MPRIS interfaces on the session bus.
type Adapter struct {
	server *server.Server
}

// New starts serving controls on D-Bus.
func New(controls Controls) (*Adapter, error) {
	if controls == nil {
		return nil, fmt.Errorf("mpris: nil controls")
	}
	a := &Adapter{
		server: server.NewServer("tablib", &rootAdapter{}, &playerAdapter{controls: controls}),
	}
	go func() {
		_ = a.server.Listen()
	}()
	return a, nil
}

// Close stops serving and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }
func (r *rootAdapter) Quit() error { return nil }
func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }
func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "tablib", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"application/pdf", "text/plain"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Only
// next/previous do anything; the rest report a player that cannot play.
type playerAdapter struct {
	controls Controls
}

func (p *playerAdapter) Next() error {
	p.controls.Next()
	return nil
}

func (p *playerAdapter) Previous() error {
	p.controls.Previous()
	return nil
}

func (p *playerAdapter) Pause() error { return nil }
func (p *playerAdapter) PlayPause() error { return nil }
func (p *playerAdapter) Stop() error { return nil }
func (p *playerAdapter) Play() error { return nil }
func (p *playerAdapter) Seek(_ types.Microseconds) error { return nil }
func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error { return nil }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.controls.Now().ID == "" {
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusPaused, nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }
func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }
func (p *playerAdapter) SetVolume(_ float64) error { return nil }
func (p *playerAdapter) Position() (int64, error) { return 0, nil }
func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.controls.Now()), nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.controls.Now().CanNext, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.controls.Now().CanPrevious, nil
}

func (p *playerAdapter) CanPlay() (bool, error) { return false, nil }
func (p *playerAdapter) CanPause() (bool, error) { return false, nil }
func (p *playerAdapter) CanSeek() (bool, error) { return false, nil }
func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func metadata(now NowShowing) types.Metadata {
	if now.ID == "" {
		return types.Metadata{}
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(now.ID)),
		Title:   now.Song,
		Artist:  []string{now.Band},
		Album:   now.Album,
	}
	return meta
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
