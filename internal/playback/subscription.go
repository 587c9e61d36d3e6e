package playback

// eventBufferSize is how many events of each kind a slow subscriber may fall
// behind by before new ones are dropped.
const eventBufferSize = 16

// Subscription is one listener's view of the controller. Each event kind has
// its own channel; Done closes when the controller shuts down.
type Subscription struct {
	StateChanged <-chan StateChange
	TrackChanged <-chan TrackChange
	QueueChanged <-chan QueueChange
	ModeChanged  <-chan ModeChange
	Error        <-chan ErrorEvent
	Done         <-chan struct{}

	stateCh chan StateChange
	trackCh chan TrackChange
	queueCh chan QueueChange
	modeCh  chan ModeChange
	errorCh chan ErrorEvent
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh: make(chan StateChange, eventBufferSize),
		trackCh: make(chan TrackChange, eventBufferSize),
		queueCh: make(chan QueueChange, eventBufferSize),
		modeCh:  make(chan ModeChange, eventBufferSize),
		errorCh: make(chan ErrorEvent, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.StateChanged, s.TrackChanged, s.QueueChanged = s.stateCh, s.trackCh, s.queueCh
	s.ModeChanged, s.Error, s.Done = s.modeCh, s.errorCh, s.doneCh
	return s
}

func (s *Subscription) close() { close(s.doneCh) }

func (s *Subscription) sendState(e StateChange) { offer(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange) { offer(s.trackCh, e) }
func (s *Subscription) sendQueue(e QueueChange) { offer(s.queueCh, e) }
func (s *Subscription) sendMode(e ModeChange)   { offer(s.modeCh, e) }
func (s *Subscription) sendError(e ErrorEvent)  { offer(s.errorCh, e) }

// offer delivers e unless ch is full. The controller never waits on a reader.
func offer[T any](ch chan<- T, e T) {
	select {
	case ch <- e:
	default:
	}
}
