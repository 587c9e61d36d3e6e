// Package mpris exposes the player on the D-Bus MPRIS interface so desktop
// media keys and applets can control it. Only Linux has a real server.
package mpris

import "github.com/llehouerou/foldplay/internal/playback"

// Controller is the part of playback.Controller that MPRIS drives.
type Controller interface {
	Play() error
	Pause() error
	Next() error
	Previous() error
	State() playback.State
	Status() playback.Status
	Len() int
	Shuffle() bool
	SetShuffle(enabled bool)
	Repeat() bool
	SetRepeat(enabled bool)
}

var _ Controller = (*playback.Controller)(nil)
