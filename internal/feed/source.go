package feed

const mtaFeedBase = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs"

// Source is one upstream GTFS-Realtime endpoint.
type Source struct {
	Name string
	URL  string
}

// MTASources returns the NYCT subway feeds that carry the trains stopping at
// Columbus Circle: the numbered lines, A/C/E and B/D/F/M.
func MTASources() []Source {
	return []Source{
		{Name: "123456", URL: mtaFeedBase},
		{Name: "ACE", URL: mtaFeedBase + "-ace"},
		{Name: "BDFM", URL: mtaFeedBase + "-bdfm"},
	}
}

// Lookup finds a source by name.
func Lookup(sources []Source, name string) (Source, bool) {
	for _, source := range sources {
		if source.Name == name {
			return source, true
		}
	}
	return Source{}, false
}
