package notify

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/foldplay/internal/library"
	"github.com/llehouerou/foldplay/internal/playback"
)

// trackTimeout is how long a now-playing notification stays up.
const trackTimeout = 5 * time.Second

// NowPlaying announces every started track, replacing its previous
// notification so only one is ever shown.
type NowPlaying struct {
	notifier Notifier
	logger   logrus.FieldLogger
	lastID   uint32
}

// NewNowPlaying creates a NowPlaying that sends through n.
func NewNowPlaying(n Notifier, logger logrus.FieldLogger) *NowPlaying {
	return &NowPlaying{notifier: n, logger: logger}
}

// Run consumes track changes until the subscription is closed.
func (np *NowPlaying) Run(sub *playback.Subscription) {
	for {
		select {
		case e := <-sub.TrackChanged:
			np.TrackStarted(e.Current)
		case <-sub.Done:
			return
		}
	}
}

// TrackStarted shows the notification for t. Failures are logged only.
func (np *NowPlaying) TrackStarted(t *playback.Track) {
	if t == nil {
		return
	}
	n := TrackNotification(t)
	n.ReplacesID = np.lastID

	id, err := np.notifier.Notify(n)
	if err != nil {
		np.logger.WithError(err).WithField("path", t.Path).Debug("Now-playing notification failed")
		return
	}
	np.lastID = id
}

// TrackNotification builds the notification for t: the title as summary,
// artist and album as body, the folder cover as icon.
func TrackNotification(t *playback.Track) Notification {
	title := t.Label()
	if t.Artist != "" && t.Title != "" {
		title = t.Title
	}

	var body []string
	if t.Artist != "" {
		body = append(body, t.Artist)
	}
	if t.Album != "" {
		body = append(body, t.Album)
	}

	return Notification{
		Summary: title,
		Body:    strings.Join(body, " - "),
		Icon:    library.FindCover(t.Path),
		Timeout: trackTimeout,
		Urgency: UrgencyLow,
	}
}
