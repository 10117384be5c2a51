package playlist

import (
	"encoding/json"
	"testing"
)

func TestNewPlaylist(t *testing.T) {
	p := NewPlaylist()

	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
	if p.Tracks() == nil {
		t.Error("Tracks() should return empty slice, not nil")
	}
}

func TestPlaylist_Tracks_ReturnsCopy(t *testing.T) {
	p := NewPlaylist()
	p.Add(Track{Path: "/a.mp3"})

	got := p.Tracks()
	got[0].Path = "/changed.mp3"

	if p.Track(0).Path != "/a.mp3" {
		t.Error("modifying Tracks() result should not affect the playlist")
	}
}

func TestPlaylist_RemoveRange(t *testing.T) {
	p := NewPlaylist()
	p.Add(tracks("/0", "/1", "/2", "/3")...)

	if n := p.RemoveRange(-3, 2); n != 2 {
		t.Errorf("RemoveRange() = %d, want 2", n)
	}
	if got := paths(p.Tracks()); !equalStrings(got, []string{"/2", "/3"}) {
		t.Errorf("Tracks() = %v, want [/2 /3]", got)
	}
	if n := p.RemoveRange(5, 9); n != 0 {
		t.Errorf("RemoveRange() out of bounds = %d, want 0", n)
	}
}

func TestTrack_JSONKeys(t *testing.T) {
	loose := Track{MediaID: "song:1", SongID: 1, BandID: 2, Artist: "A", Title: "T", DisplayTitle: "T", Path: "/t.mp3"}

	data, err := json.Marshal(loose)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"mediaId":"song:1","songId":1,"bandId":2,"artistName":"A","songTitle":"T",` +
		`"songDisplayTitle":"T","trackNumber":0,"releaseYear":0,"uri":"/t.mp3"}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}
