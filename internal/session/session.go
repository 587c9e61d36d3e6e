// Package session wires the pieces both front-ends share: configuration,
// logging, the audio backend, the playback controller and the desktop
// integrations.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/app"
	"github.com/llehouerou/foldplay/internal/config"
	"github.com/llehouerou/foldplay/internal/errmsg"
	"github.com/llehouerou/foldplay/internal/library"
	"github.com/llehouerou/foldplay/internal/logging"
	"github.com/llehouerou/foldplay/internal/mpris"
	"github.com/llehouerou/foldplay/internal/notify"
	"github.com/llehouerou/foldplay/internal/playback"
	"github.com/llehouerou/foldplay/internal/player"
	"github.com/llehouerou/foldplay/internal/stderr"
	"github.com/llehouerou/foldplay/internal/tags"
)

// Options are the command-line overrides shared by both binaries.
type Options struct {
	ConfigFile string
	Shuffle    bool
	Repeat     bool
	// CaptureStderr routes fd 2 into the log while the session is open.
	CaptureStderr bool
}

// Session owns everything opened at startup.
type Session struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Controller *playback.Controller

	closers   []io.Closer
	capturing bool
}

// Open loads the configuration and builds the controller. Integrations
// that fail to start are logged and skipped.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	s := &Session{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	// Before the speaker opens, so ALSA noise lands in the log.
	if opts.CaptureStderr {
		if err := stderr.Start(logger); err != nil {
			logger.WithError(err).Warn("stderr capture unavailable")
		} else {
			s.capturing = true
		}
	}

	s.Controller = playback.New(player.New(logger), tags.NewReader(), playback.Options{
		Shuffle: cfg.Shuffle || opts.Shuffle,
		Repeat:  cfg.Repeat || opts.Repeat,
		Scan: library.ScanOptions{
			Extensions: cfg.Extensions,
			Sort:       cfg.SortPlaylist,
		},
		Logger: logger,
	})

	if cfg.MPRIS {
		s.startMPRIS()
	}
	if cfg.Notifications {
		s.startNotifications()
	}

	logger.WithFields(logrus.Fields{
		"shuffle": s.Controller.Shuffle(),
		"repeat":  s.Controller.Repeat(),
	}).Info("Session started")
	return s, nil
}

func (s *Session) startMPRIS() {
	adapter, err := mpris.New(s.Controller, s.Logger)
	if err != nil {
		s.Logger.WithError(err).Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		return
	}
	s.closers = append([]io.Closer{adapter}, s.closers...)
}

func (s *Session) startNotifications() {
	n, err := notify.New()
	if err != nil {
		s.Logger.WithError(err).Warn(errmsg.Format(errmsg.OpNotify, err))
		return
	}
	go notify.NewNowPlaying(n, s.Logger).Run(s.Controller.Subscribe())
}

// StartFolder picks the folder to load at startup: the command-line
// argument, then default_folder. "" means ask the user.
func (s *Session) StartFolder(arg string) string {
	if arg != "" {
		return arg
	}
	return s.Config.DefaultFolder
}

// WatchFunc returns the folder watcher factory, or nil when watch_folder is off.
func (s *Session) WatchFunc() app.WatchFunc {
	if !s.Config.WatchFolder {
		return nil
	}
	return func(dir string) (app.FolderWatcher, error) {
		w, err := library.Watch(dir, s.Config.Extensions, s.Logger)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// Close stops playback and the integrations, then closes the log.
func (s *Session) Close() error {
	var errs []error
	if err := s.Controller.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.capturing {
		stderr.Stop()
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
