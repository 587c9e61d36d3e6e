package playback

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/foldplay/internal/player"
	"github.com/llehouerou/foldplay/internal/playlist"
	"github.com/llehouerou/foldplay/internal/tags"
)

// fakeReader serves canned metadata keyed by file name.
type fakeReader struct {
	durations   map[string]time.Duration
	infos       map[string]*tags.FileInfo
	durationErr error
}

func (r *fakeReader) Read(path string) (*tags.FileInfo, error) {
	if info, ok := r.infos[filepath.Base(path)]; ok {
		return info, nil
	}
	return &tags.FileInfo{Path: path}, nil
}

func (r *fakeReader) Duration(path string) (time.Duration, error) {
	if r.durationErr != nil {
		return 0, r.durationErr
	}
	return r.durations[filepath.Base(path)], nil
}

func makeFolder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	return dir
}

func newTestController(t *testing.T, opts Options) (*Controller, *player.Mock, *fakeReader) {
	t.Helper()
	backend := player.NewMock()
	reader := &fakeReader{durations: map[string]time.Duration{}}
	opts.Scan.Sort = true
	c := New(backend, reader, opts)
	t.Cleanup(func() { _ = c.Close() })
	return c, backend, reader
}

// loadABC loads a folder with a.mp3, b.mp3 and c.mp3 and clears the call log.
func loadABC(t *testing.T, c *Controller, m *player.Mock) string {
	t.Helper()
	dir := makeFolder(t, "a.mp3", "b.mp3", "c.mp3")
	require.NoError(t, c.LoadFolder(dir))
	m.Reset()
	return dir
}

func currentName(c *Controller) string {
	st := c.Status()
	if st.Track == nil {
		return ""
	}
	return filepath.Base(st.Track.Path)
}

func TestNew_StartsStopped(t *testing.T) {
	c, m, _ := newTestController(t, Options{})

	st := c.Status()
	assert.Equal(t, StateStopped, st.State)
	assert.Equal(t, -1, st.Index)
	assert.Nil(t, st.Track)
	assert.Empty(t, m.Calls())
}

func TestNew_ModeDefaults(t *testing.T) {
	c, _, _ := newTestController(t, Options{Shuffle: true, Repeat: true})

	assert.True(t, c.Shuffle())
	assert.True(t, c.Repeat())
}

func TestLoadFolder_StartsFirstTrack(t *testing.T) {
	c, m, r := newTestController(t, Options{})
	r.durations["a.mp3"] = 65 * time.Second
	dir := makeFolder(t, "a.mp3", "b.mp3", "c.mp3")

	require.NoError(t, c.LoadFolder(dir))

	st := c.Status()
	assert.Equal(t, StatePlaying, st.State)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, filepath.Join(dir, "a.mp3"), m.LastLoad())
	assert.Equal(t, []string{"stop", "load", "play"}, m.Calls())
	assert.Equal(t, "01:05", st.TotalLabel())
	assert.Equal(t, dir, c.Folder())
	assert.Equal(t, 3, c.Len())
}

func TestLoadFolder_FiltersExtensions(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	dir := makeFolder(t, "a.MP3", "b.Flac", "cover.jpg", "notes.txt", "c.ogg", "d.wav")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o700))

	require.NoError(t, c.LoadFolder(dir))

	names := make([]string, 0)
	for _, tr := range c.Tracks() {
		names = append(names, tr.Name())
	}
	assert.Equal(t, []string{"a.MP3", "b.Flac", "c.ogg", "d.wav"}, names)
}

func TestLoadFolder_EmptyMakesNoBackendCall(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := makeFolder(t, "cover.jpg", "readme.txt")

	require.NoError(t, c.LoadFolder(dir))

	assert.Empty(t, c.Tracks())
	assert.Empty(t, m.Calls())
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, -1, c.Index())
}

func TestLoadFolder_EmptyKeepsPlaybackState(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)

	require.NoError(t, c.LoadFolder(makeFolder(t)))

	assert.Empty(t, m.Calls())
	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, 0, c.Len())

	// Transport commands are no-ops on the empty playlist.
	require.NoError(t, c.Next())
	require.NoError(t, c.Previous())
	require.NoError(t, c.Play())
	assert.Empty(t, m.Calls())
}

func TestLoadFolder_MissingDirectory(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	sub := c.Subscribe()

	err := c.LoadFolder(filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, m.Calls())

	select {
	case e := <-sub.Error:
		assert.Equal(t, "load folder", e.Operation)
	default:
		t.Fatal("expected an error event")
	}
}

func TestNext_Sequence(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	require.Equal(t, "a.mp3", currentName(c))

	want := []string{"b.mp3", "c.mp3", "a.mp3"}
	for _, name := range want {
		require.NoError(t, c.Next())
		assert.Equal(t, name, currentName(c))
		assert.Equal(t, name, filepath.Base(m.LastLoad()))
	}
}

func TestNext_FullCycleReturnsToStart(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := makeFolder(t, "1.mp3", "2.mp3", "3.mp3", "4.mp3", "5.mp3")
	require.NoError(t, c.LoadFolder(dir))
	require.NoError(t, c.SelectTrack(2))
	m.Reset()

	for range c.Len() {
		require.NoError(t, c.Next())
	}

	assert.Equal(t, 2, c.Index())
	assert.Len(t, m.Loads(), 5)
}

func TestPrevious_WrapsFromFirst(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)

	require.NoError(t, c.Previous())

	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "c.mp3", currentName(c))
}

func TestPrevious_IgnoresShuffle(t *testing.T) {
	c, m, _ := newTestController(t, Options{
		Shuffle: true,
		Rand:    rand.New(rand.NewPCG(1, 2)),
	})
	loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(1))

	require.NoError(t, c.Previous())
	assert.Equal(t, 0, c.Index())
	require.NoError(t, c.Previous())
	assert.Equal(t, 2, c.Index())
}

func TestNext_ShuffleStaysInRange(t *testing.T) {
	c, m, _ := newTestController(t, Options{
		Shuffle: true,
		Rand:    rand.New(rand.NewPCG(42, 7)),
	})
	loadABC(t, c, m)

	seen := map[int]bool{}
	for range 100 {
		require.NoError(t, c.Next())
		i := c.Index()
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, 3)
		seen[i] = true
	}
	assert.Len(t, seen, 3, "a uniform pick should reach every track in 100 draws")
	assert.Len(t, m.Loads(), 100)
}

func TestNext_ShuffleSingleTrackReplaysIt(t *testing.T) {
	c, m, _ := newTestController(t, Options{Shuffle: true})
	require.NoError(t, c.LoadFolder(makeFolder(t, "only.mp3")))
	m.Reset()

	require.NoError(t, c.Next())

	assert.Equal(t, 0, c.Index())
	assert.Equal(t, []string{"stop", "load", "play"}, m.Calls())
}

func TestPause_TogglesTwice(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)

	require.NoError(t, c.Pause())
	assert.Equal(t, StatePaused, c.State())
	assert.True(t, m.Paused())

	require.NoError(t, c.Pause())
	assert.Equal(t, StatePlaying, c.State())
	assert.False(t, m.Paused())

	assert.Equal(t, []string{"pause", "resume"}, m.Calls())
}

func TestPause_NoopWhenStopped(t *testing.T) {
	c, m, _ := newTestController(t, Options{})

	require.NoError(t, c.Pause())

	assert.Equal(t, StateStopped, c.State())
	assert.Empty(t, m.Calls())
}

func TestPlay_RestartsCurrentTrack(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	require.NoError(t, c.Pause())
	m.Reset()

	require.NoError(t, c.Play())

	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, []string{"stop", "load", "play"}, m.Calls())
	assert.Equal(t, "a.mp3", filepath.Base(m.LastLoad()))
}

func TestSelectTrack(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)

	require.NoError(t, c.SelectTrack(2))

	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "c.mp3", filepath.Base(m.LastLoad()))
}

func TestSelectTrack_OutOfRange(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)

	for _, i := range []int{-1, 3, 100} {
		err := c.SelectTrack(i)
		require.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	assert.Equal(t, 0, c.Index())
	assert.Empty(t, m.Calls())
}

func TestPlay_LoadFailureStops(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	sub := c.Subscribe()
	boom := errors.New("device busy")
	m.SetLoadError(boom)

	err := c.Next()

	require.ErrorIs(t, err, boom)
	st := c.Status()
	assert.Equal(t, StateStopped, st.State)
	assert.Equal(t, 1, st.Index, "index stays on the failing track")
	assert.Nil(t, st.Track)

	e := <-sub.Error
	assert.Equal(t, "play", e.Operation)
	assert.Equal(t, "b.mp3", filepath.Base(e.Path))

	// Recovers on the next intent.
	m.SetLoadError(nil)
	require.NoError(t, c.Next())
	assert.Equal(t, StatePlaying, c.State())
	assert.Equal(t, 2, c.Index())
}

func TestPlay_DurationFailureIsNotFatal(t *testing.T) {
	c, m, r := newTestController(t, Options{})
	r.durationErr = errors.New("no header")

	require.NoError(t, c.LoadFolder(makeFolder(t, "a.mp3")))

	st := c.Status()
	assert.Equal(t, StatePlaying, st.State)
	assert.Equal(t, "00:00", st.TotalLabel())
	assert.Contains(t, m.Calls(), "play")
}

func TestPlay_TrackLabelFromTags(t *testing.T) {
	c, _, r := newTestController(t, Options{})
	r.infos = map[string]*tags.FileInfo{
		"a.mp3": {Title: "Song A", Artist: "Band"},
	}

	require.NoError(t, c.LoadFolder(makeFolder(t, "a.mp3", "b.mp3")))
	assert.Equal(t, "Band - Song A", c.Status().Track.Label())

	require.NoError(t, c.Next())
	assert.Equal(t, "b.mp3", c.Status().Track.Label())
}

func TestTick_UpdatesElapsed(t *testing.T) {
	c, m, r := newTestController(t, Options{})
	r.durations["a.mp3"] = 200 * time.Second
	loadABC(t, c, m)
	m.SetElapsed(50 * time.Second)

	require.NoError(t, c.Tick())

	st := c.Status()
	assert.Equal(t, "00:50", st.ElapsedLabel())
	assert.InDelta(t, 25.0, st.Progress(), 0.001)
	assert.Empty(t, m.Loads(), "a busy track is not advanced")
}

func TestTick_PausedIsIgnored(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	require.NoError(t, c.Pause())
	m.SetBusy(false)
	m.SetElapsed(10 * time.Second)
	m.Reset()

	require.NoError(t, c.Tick())

	assert.Empty(t, m.Calls())
	assert.Equal(t, time.Duration(0), c.Status().Elapsed)
}

func TestTick_StoppedIsIgnored(t *testing.T) {
	c, m, _ := newTestController(t, Options{})

	require.NoError(t, c.Tick())

	assert.Empty(t, m.Calls())
}

func TestTick_TrackEndAdvances(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	m.SetBusy(false)

	require.NoError(t, c.Tick())

	assert.Equal(t, 1, c.Index())
	assert.Equal(t, "b.mp3", filepath.Base(m.LastLoad()))
}

func TestTick_TrackEndWrapsAtLast(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(2))
	m.SetBusy(false)

	require.NoError(t, c.Tick())

	assert.Equal(t, 0, c.Index())
}

func TestTick_TrackEndWithRepeatReplays(t *testing.T) {
	c, m, _ := newTestController(t, Options{Repeat: true})
	loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(1))
	m.SetElapsed(3 * time.Minute)
	require.NoError(t, c.Tick())
	m.SetBusy(false)
	m.Reset()

	require.NoError(t, c.Tick())

	assert.Equal(t, 1, c.Index())
	assert.Equal(t, []string{"stop", "load", "play"}, m.Calls())
	assert.Equal(t, "b.mp3", filepath.Base(m.LastLoad()))
	assert.Equal(t, time.Duration(0), c.Status().Elapsed)
	assert.Equal(t, time.Duration(0), m.Elapsed())
}

func TestModes_ToggleEmitsEvents(t *testing.T) {
	c, _, _ := newTestController(t, Options{})
	sub := c.Subscribe()

	assert.True(t, c.ToggleShuffle())
	assert.True(t, c.ToggleRepeat())
	c.SetRepeat(true) // unchanged, no event
	c.SetShuffle(false)

	events := []ModeChange{<-sub.ModeChanged, <-sub.ModeChanged, <-sub.ModeChanged}
	assert.Equal(t, []ModeChange{
		{Shuffle: true},
		{Shuffle: true, Repeat: true},
		{Shuffle: false, Repeat: true},
	}, events)

	select {
	case e := <-sub.ModeChanged:
		t.Fatalf("unexpected mode event %+v", e)
	default:
	}
}

func TestEvents_TrackAndStateChanges(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	sub := c.Subscribe()
	dir := loadABC(t, c, m)

	q := <-sub.QueueChanged
	assert.Equal(t, dir, q.Folder)
	assert.Len(t, q.Tracks, 3)

	s := <-sub.StateChanged
	assert.Equal(t, StateChange{Previous: StateStopped, Current: StatePlaying}, s)

	tr := <-sub.TrackChanged
	assert.Nil(t, tr.Previous)
	assert.Equal(t, "a.mp3", filepath.Base(tr.Current.Path))

	require.NoError(t, c.Next())
	tr = <-sub.TrackChanged
	assert.Equal(t, 0, tr.PreviousIndex)
	assert.Equal(t, 1, tr.Index)
	assert.Equal(t, "a.mp3", filepath.Base(tr.Previous.Path))

	require.NoError(t, c.Pause())
	s = <-sub.StateChanged
	assert.Equal(t, StatePaused, s.Current)
}

func TestReplaceTracks_KeepsCurrentByPath(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(1))
	m.Reset()

	c.ReplaceTracks(
		playlist.Track{Path: filepath.Join(dir, "0.mp3")},
		playlist.Track{Path: filepath.Join(dir, "a.mp3")},
		playlist.Track{Path: filepath.Join(dir, "b.mp3")},
	)

	assert.Equal(t, 2, c.Index())
	assert.Equal(t, StatePlaying, c.State())
	assert.Empty(t, m.Calls(), "replacing the playlist does not interrupt playback")
}

func TestReplaceTracks_ClampsWhenCurrentRemoved(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(2))

	c.ReplaceTracks(playlist.Track{Path: filepath.Join(dir, "a.mp3")})

	assert.Equal(t, 0, c.Index())

	c.ReplaceTracks()
	assert.Equal(t, -1, c.Index())
}

func TestReplaceTracks_RemovedCurrentAdvancesToClampedTrack(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(1))

	c.ReplaceTracks(
		playlist.Track{Path: filepath.Join(dir, "a.mp3")},
		playlist.Track{Path: filepath.Join(dir, "c.mp3")},
	)
	require.Equal(t, 1, c.Index())
	assert.Equal(t, "b.mp3", currentName(c), "b keeps playing to its end")

	m.SetBusy(false)
	require.NoError(t, c.Tick())

	assert.Equal(t, "c.mp3", filepath.Base(m.LastLoad()))
	assert.Equal(t, 1, c.Index())

	// Once c has started, advancing is back to normal.
	m.SetBusy(false)
	require.NoError(t, c.Tick())
	assert.Equal(t, "a.mp3", filepath.Base(m.LastLoad()))
}

func TestReplaceTracks_RemovedCurrentKeepsShuffle(t *testing.T) {
	c, m, _ := newTestController(t, Options{Shuffle: true, Rand: rand.New(rand.NewPCG(1, 2))})
	dir := loadABC(t, c, m)

	c.ReplaceTracks(playlist.Track{Path: filepath.Join(dir, "c.mp3")})
	m.SetBusy(false)
	require.NoError(t, c.Tick())

	assert.Equal(t, "c.mp3", filepath.Base(m.LastLoad()))
}

func TestTick_TrackEndWithEmptyPlaylistStops(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	sub := c.Subscribe()

	c.ReplaceTracks()
	m.SetBusy(false)
	m.Reset()
	require.NoError(t, c.Tick())

	st := c.Status()
	assert.Equal(t, StateStopped, st.State)
	assert.Equal(t, -1, st.Index)
	assert.Nil(t, st.Track)
	assert.Equal(t, []string{"stop"}, m.Calls())

	<-sub.QueueChanged
	assert.Equal(t, StateChange{Previous: StatePlaying, Current: StateStopped}, <-sub.StateChanged)

	// Nothing left to do on later ticks.
	m.Reset()
	require.NoError(t, c.Tick())
	assert.Empty(t, m.Calls())
}

func TestEvents_PreviousIndexFollowsStartedTrack(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	sub := c.Subscribe()

	require.NoError(t, c.SelectTrack(2))
	tr := <-sub.TrackChanged
	assert.Equal(t, 0, tr.PreviousIndex)
	assert.Equal(t, 2, tr.Index)

	require.NoError(t, c.Previous())
	tr = <-sub.TrackChanged
	assert.Equal(t, 2, tr.PreviousIndex)
	assert.Equal(t, 1, tr.Index)

	m.SetBusy(false)
	require.NoError(t, c.Tick())
	tr = <-sub.TrackChanged
	assert.Equal(t, 1, tr.PreviousIndex)
	assert.Equal(t, 2, tr.Index)
}

func TestRescan_PicksUpNewFiles(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := loadABC(t, c, m)
	require.NoError(t, c.SelectTrack(1))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.mp3"), []byte("x"), 0o600))
	require.NoError(t, os.Remove(filepath.Join(dir, "c.mp3")))

	require.NoError(t, c.Rescan())

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Index(), "b.mp3 moved after the new first file")
}

func TestRescan_WithoutFolderIsNoop(t *testing.T) {
	c, _, _ := newTestController(t, Options{})

	require.NoError(t, c.Rescan())
	assert.Equal(t, 0, c.Len())
}

func TestClose_StopsAndEndsSubscriptions(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	loadABC(t, c, m)
	sub := c.Subscribe()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	<-sub.Done
	assert.Equal(t, []string{"stop"}, m.Calls())
	assert.Equal(t, StateStopped, c.State())

	late := c.Subscribe()
	<-late.Done
}

func TestClose_LaterOperationsAreNoops(t *testing.T) {
	c, m, _ := newTestController(t, Options{})
	dir := loadABC(t, c, m)
	require.NoError(t, c.Close())
	m.Reset()

	require.NoError(t, c.LoadFolder(dir))
	require.NoError(t, c.Play())
	require.NoError(t, c.Pause())
	require.NoError(t, c.Next())
	require.NoError(t, c.Previous())
	require.NoError(t, c.SelectTrack(1))
	require.NoError(t, c.Tick())
	require.NoError(t, c.Rescan())
	c.ReplaceTracks()

	assert.Empty(t, m.Calls())
	assert.Equal(t, StateStopped, c.State())
	assert.Equal(t, 3, c.Len())
}
