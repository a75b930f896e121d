package settings

// MusicTrack is one entry of the fixed background-music catalog. The script
// generator treats a selection as an opaque reference echoed into the
// exported script.
type MusicTrack struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Duration float64 `json:"duration"`
	Mood     string  `json:"mood"`
	Genre    string  `json:"genre"`
}

var musicCatalog = []MusicTrack{
	{ID: "calm-horizon", Name: "Calm Horizon", Path: "music/calm-horizon.mp3", Duration: 184, Mood: "calm", Genre: "ambient"},
	{ID: "upbeat-journey", Name: "Upbeat Journey", Path: "music/upbeat-journey.mp3", Duration: 152, Mood: "energetic", Genre: "pop"},
	{ID: "midnight-lofi", Name: "Midnight Lofi", Path: "music/midnight-lofi.mp3", Duration: 201, Mood: "relaxed", Genre: "lofi"},
	{ID: "corporate-rise", Name: "Corporate Rise", Path: "music/corporate-rise.mp3", Duration: 167, Mood: "confident", Genre: "corporate"},
	{ID: "cinematic-dawn", Name: "Cinematic Dawn", Path: "music/cinematic-dawn.mp3", Duration: 218, Mood: "epic", Genre: "cinematic"},
	{ID: "acoustic-morning", Name: "Acoustic Morning", Path: "music/acoustic-morning.mp3", Duration: 143, Mood: "warm", Genre: "acoustic"},
}

// MusicCatalog returns the selectable background tracks.
func MusicCatalog() []MusicTrack {
	out := make([]MusicTrack, len(musicCatalog))
	copy(out, musicCatalog)
	return out
}

// FindTrack looks up a catalog track by id.
func FindTrack(id string) (MusicTrack, bool) {
	for _, t := range musicCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return MusicTrack{}, false
}
