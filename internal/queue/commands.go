package queue

import (
	"github.com/llehouerou/mcotp/internal/catalog"
	"github.com/llehouerou/mcotp/internal/provider"
)

// ToggleBandLock locks playback to a band. With forcedBandID 0 it toggles:
// locks to the current track's band, or returns to shuffle when already in
// band mode. A forced band switches immediately.
func (e *Engine) ToggleBandLock(forcedBandID int64) error {
	return e.do(func() { e.toggleBandLock(forcedBandID) })
}

func (e *Engine) toggleBandLock(forcedBandID int64) {
	if forcedBandID == 0 && e.provider.Mode() == provider.ModeBand {
		e.swap(provider.Shuffle(), false)
		return
	}
	bandID := forcedBandID
	if bandID == 0 {
		cur := e.player.Current()
		if cur == nil || cur.BandID == 0 {
			e.logger.Debug("band lock ignored: no current band")
			return
		}
		bandID = cur.BandID
	}
	e.swap(provider.BandShuffle(bandID), forcedBandID != 0)
}

// ToggleAlbumLock plays an album through. With forcedAlbumID 0 it toggles:
// plays the current track's album from the track after the current one, or
// returns to shuffle when already in album mode. A forced album plays
// immediately from its first track.
func (e *Engine) ToggleAlbumLock(forcedAlbumID int64) error {
	return e.do(func() { e.toggleAlbumLock(forcedAlbumID) })
}

func (e *Engine) toggleAlbumLock(forcedAlbumID int64) {
	if forcedAlbumID == 0 && e.provider.Mode() == provider.ModeAlbum {
		e.swap(provider.Shuffle(), false)
		return
	}
	if forcedAlbumID != 0 {
		e.swap(provider.AlbumSequential(forcedAlbumID, 0), true)
		return
	}
	cur := e.player.Current()
	if cur == nil || cur.AlbumID == 0 {
		e.logger.Debug("album lock ignored: no current album")
		return
	}
	e.swap(provider.AlbumSequential(cur.AlbumID, cur.SongID), false)
}

// ToggleYearLock shuffles the current track's release year, or returns to
// shuffle when already in year mode or the year is unknown.
func (e *Engine) ToggleYearLock() error {
	return e.do(e.toggleYearLock)
}

func (e *Engine) toggleYearLock() {
	cur := e.player.Current()
	if e.provider.Mode() == provider.ModeYear || cur == nil || cur.Year == 0 {
		e.swap(provider.Shuffle(), false)
		return
	}
	e.swap(provider.Year(cur.Year), false)
}

// CycleSubMode steps through the variants of the current major mode:
// shuffle, double shot and block party in collection mode; shuffle and
// sequential in band mode. Other modes have no sub-modes.
func (e *Engine) CycleSubMode() error {
	return e.do(e.cycleSubMode)
}

func (e *Engine) cycleSubMode() {
	switch e.provider.Mode() {
	case provider.ModeCollection:
		switch e.provider.Kind {
		case provider.KindDoubleShot:
			e.swap(provider.BlockParty(), false)
		case provider.KindBlockParty:
			e.swap(provider.Shuffle(), false)
		default:
			e.swap(provider.DoubleShot(), false)
		}
	case provider.ModeBand:
		cur := e.player.Current()
		bandID := e.provider.BandID
		var songID int64
		if cur != nil {
			songID = cur.SongID
			if cur.BandID != 0 {
				bandID = cur.BandID
			}
		}
		if e.provider.Kind == provider.KindBandSequential {
			e.swap(provider.BandShuffle(bandID), false)
			return
		}
		e.swap(provider.BandSequential(bandID, songID), false)
	}
}

// ForcePlay jumps to the item named by an external reference such as
// "band:42", "decade:1990" or "song:7". Bands and albums lock on that item;
// years, decades and locations shuffle within it; a song plays right away
// and shuffle continues after it.
func (e *Engine) ForcePlay(ref string) error {
	r, err := catalog.ParseRef(ref)
	if err != nil {
		e.logger.Warn("ignoring force-play", "ref", ref, "err", err)
		return nil
	}
	return e.do(func() { e.forcePlay(r) })
}

func (e *Engine) forcePlay(r catalog.Ref) {
	if r.ID <= 0 {
		e.logger.Warn("ignoring force-play", "ref", r)
		return
	}
	e.logger.Info("force play", "ref", r)
	switch r.Kind {
	case catalog.RefBand:
		e.toggleBandLock(r.ID)
	case catalog.RefAlbum:
		e.toggleAlbumLock(r.ID)
	case catalog.RefDecade:
		e.swap(provider.Decade(int(r.ID)), true)
	case catalog.RefYear:
		e.swap(provider.Year(int(r.ID)), true)
	case catalog.RefLocation:
		e.swap(provider.LocationShuffle(r.ID), true)
	case catalog.RefSong:
		e.swap(provider.Shuffle().WithForcedSong(r.ID), true)
	}
}
