package geocode

import "github.com/couchcryptid/ballclub-data-pipeline/internal/domain"

// staticVenues is the table of known major-league ballparks. Consulted before
// any network call: deterministic, rate-limit free, and stable across provider
// renames. Coordinates are authoritative once a venue matches here.
var staticVenues = []domain.Venue{
	{Name: "Dodger Stadium", City: "Los Angeles", Region: "CA", Country: "USA", PrimaryTeam: "Los Angeles Dodgers", Capacity: 56000, Surface: "Grass", Roof: "Open", OpenedYear: 1962, Active: true, Coordinates: &domain.Coordinates{Lat: 34.0742, Lon: -118.2400}},
	{Name: "Petco Park", City: "San Diego", Region: "CA", Country: "USA", PrimaryTeam: "San Diego Padres", Capacity: 40162, Surface: "Grass", Roof: "Open", OpenedYear: 2004, Active: true, Coordinates: &domain.Coordinates{Lat: 32.7075, Lon: -117.1570}},
	{Name: "Oracle Park", City: "San Francisco", Region: "CA", Country: "USA", PrimaryTeam: "San Francisco Giants", Capacity: 41915, Surface: "Grass", Roof: "Open", OpenedYear: 2000, Active: true, Coordinates: &domain.Coordinates{Lat: 37.7786, Lon: -122.3893}},
	{Name: "Chase Field", City: "Phoenix", Region: "AZ", Country: "USA", PrimaryTeam: "Arizona Diamondbacks", Capacity: 48405, Surface: "Grass", Roof: "Retractable", OpenedYear: 1998, Active: true, Coordinates: &domain.Coordinates{Lat: 33.4454, Lon: -112.0669}},
	{Name: "Coors Field", City: "Denver", Region: "CO", Country: "USA", PrimaryTeam: "Colorado Rockies", Capacity: 50144, Surface: "Grass", Roof: "Open", OpenedYear: 1995, Active: true, Coordinates: &domain.Coordinates{Lat: 39.7562, Lon: -104.9941}},
	{Name: "Minute Maid Park", City: "Houston", Region: "TX", Country: "USA", PrimaryTeam: "Houston Astros", Capacity: 41168, Surface: "Grass", Roof: "Retractable", OpenedYear: 2000, Active: true, Coordinates: &domain.Coordinates{Lat: 29.7569, Lon: -95.3550}},
	{Name: "Globe Life Field", City: "Arlington", Region: "TX", Country: "USA", PrimaryTeam: "Texas Rangers", Capacity: 40300, Surface: "Grass", Roof: "Retractable", OpenedYear: 2020, Active: true, Coordinates: &domain.Coordinates{Lat: 32.7511, Lon: -97.0827}},
	{Name: "Truist Park", City: "Atlanta", Region: "GA", Country: "USA", PrimaryTeam: "Atlanta Braves", Capacity: 41084, Surface: "Grass", Roof: "Open", OpenedYear: 2017, Active: true, Coordinates: &domain.Coordinates{Lat: 33.8904, Lon: -84.4679}},
	{Name: "American Family Field", City: "Milwaukee", Region: "WI", Country: "USA", PrimaryTeam: "Milwaukee Brewers", Capacity: 41900, Surface: "Grass", Roof: "Retractable", OpenedYear: 2001, Active: true, Coordinates: &domain.Coordinates{Lat: 43.0284, Lon: -87.9711}},
	{Name: "Wrigley Field", City: "Chicago", Region: "IL", Country: "USA", PrimaryTeam: "Chicago Cubs", Capacity: 41649, Surface: "Grass", Roof: "Open", OpenedYear: 1914, Active: true, Coordinates: &domain.Coordinates{Lat: 41.9484, Lon: -87.6553}},
	{Name: "Guaranteed Rate Field", City: "Chicago", Region: "IL", Country: "USA", PrimaryTeam: "Chicago White Sox", Capacity: 40615, Surface: "Grass", Roof: "Open", OpenedYear: 1991, Active: true, Coordinates: &domain.Coordinates{Lat: 41.8300, Lon: -87.6338}},
	{Name: "Comerica Park", City: "Detroit", Region: "MI", Country: "USA", PrimaryTeam: "Detroit Tigers", Capacity: 41083, Surface: "Grass", Roof: "Open", OpenedYear: 2000, Active: true, Coordinates: &domain.Coordinates{Lat: 42.3390, Lon: -83.0485}},
	{Name: "Progressive Field", City: "Cleveland", Region: "OH", Country: "USA", PrimaryTeam: "Cleveland Guardians", Capacity: 34530, Surface: "Grass", Roof: "Open", OpenedYear: 1994, Active: true, Coordinates: &domain.Coordinates{Lat: 41.4962, Lon: -81.6852}},
	{Name: "Target Field", City: "Minneapolis", Region: "MN", Country: "USA", PrimaryTeam: "Minnesota Twins", Capacity: 38544, Surface: "Grass", Roof: "Open", OpenedYear: 2010, Active: true, Coordinates: &domain.Coordinates{Lat: 44.9817, Lon: -93.2773}},
	{Name: "Kauffman Stadium", City: "Kansas City", Region: "MO", Country: "USA", PrimaryTeam: "Kansas City Royals", Capacity: 37903, Surface: "Grass", Roof: "Open", OpenedYear: 1973, Active: true, Coordinates: &domain.Coordinates{Lat: 39.0511, Lon: -94.4806}},
	{Name: "Fenway Park", City: "Boston", Region: "MA", Country: "USA", PrimaryTeam: "Boston Red Sox", Capacity: 37155, Surface: "Grass", Roof: "Open", OpenedYear: 1912, Active: true, Coordinates: &domain.Coordinates{Lat: 42.3467, Lon: -71.0972}},
	{Name: "Yankee Stadium", City: "New York", Region: "NY", Country: "USA", PrimaryTeam: "New York Yankees", Capacity: 46537, Surface: "Grass", Roof: "Open", OpenedYear: 2009, Active: true, Coordinates: &domain.Coordinates{Lat: 40.8296, Lon: -73.9262}},
	{Name: "Citi Field", City: "New York", Region: "NY", Country: "USA", PrimaryTeam: "New York Mets", Capacity: 41922, Surface: "Grass", Roof: "Open", OpenedYear: 2009, Active: true, Coordinates: &domain.Coordinates{Lat: 40.7569, Lon: -73.8458}},
	{Name: "Citizens Bank Park", City: "Philadelphia", Region: "PA", Country: "USA", PrimaryTeam: "Philadelphia Phillies", Capacity: 42792, Surface: "Grass", Roof: "Open", OpenedYear: 2004, Active: true, Coordinates: &domain.Coordinates{Lat: 39.9059, Lon: -75.1666}},
	{Name: "Nationals Park", City: "Washington", Region: "DC", Country: "USA", PrimaryTeam: "Washington Nationals", Capacity: 41339, Surface: "Grass", Roof: "Open", OpenedYear: 2008, Active: true, Coordinates: &domain.Coordinates{Lat: 38.8730, Lon: -77.0074}},
	{Name: "Oriole Park at Camden Yards", City: "Baltimore", Region: "MD", Country: "USA", PrimaryTeam: "Baltimore Orioles", Capacity: 45971, Surface: "Grass", Roof: "Open", OpenedYear: 1992, Active: true, Coordinates: &domain.Coordinates{Lat: 39.2839, Lon: -76.6217}},
	{Name: "Rogers Centre", City: "Toronto", Region: "ON", Country: "Canada", PrimaryTeam: "Toronto Blue Jays", Capacity: 49282, Surface: "Turf", Roof: "Retractable", OpenedYear: 1989, Active: true, Coordinates: &domain.Coordinates{Lat: 43.6414, Lon: -79.3891}},
	{Name: "Tropicana Field", City: "St. Petersburg", Region: "FL", Country: "USA", PrimaryTeam: "Tampa Bay Rays", Capacity: 25000, Surface: "Turf", Roof: "Fixed", OpenedYear: 1990, Active: true, Coordinates: &domain.Coordinates{Lat: 27.7682, Lon: -82.6534}},
	{Name: "loanDepot Park", City: "Miami", Region: "FL", Country: "USA", PrimaryTeam: "Miami Marlins", Capacity: 36742, Surface: "Grass", Roof: "Retractable", OpenedYear: 2012, Active: true, Coordinates: &domain.Coordinates{Lat: 25.7780, Lon: -80.2196}},
	{Name: "PNC Park", City: "Pittsburgh", Region: "PA", Country: "USA", PrimaryTeam: "Pittsburgh Pirates", Capacity: 38747, Surface: "Grass", Roof: "Open", OpenedYear: 2001, Active: true, Coordinates: &domain.Coordinates{Lat: 40.4469, Lon: -80.0058}},
	{Name: "Great American Ball Park", City: "Cincinnati", Region: "OH", Country: "USA", PrimaryTeam: "Cincinnati Reds", Capacity: 43431, Surface: "Grass", Roof: "Open", OpenedYear: 2003, Active: true, Coordinates: &domain.Coordinates{Lat: 39.0979, Lon: -84.5082}},
	{Name: "Busch Stadium", City: "St. Louis", Region: "MO", Country: "USA", PrimaryTeam: "St. Louis Cardinals", Capacity: 45494, Surface: "Grass", Roof: "Open", OpenedYear: 2006, Active: true, Coordinates: &domain.Coordinates{Lat: 38.6226, Lon: -90.1928}},
	{Name: "Angel Stadium", City: "Anaheim", Region: "CA", Country: "USA", PrimaryTeam: "Los Angeles Angels", Capacity: 45517, Surface: "Grass", Roof: "Open", OpenedYear: 1966, Active: true, Coordinates: &domain.Coordinates{Lat: 33.8003, Lon: -117.8827}},
	{Name: "George M. Steinbrenner Field", City: "Tampa", Region: "FL", Country: "USA", PrimaryTeam: "New York Yankees", Capacity: 11000, Surface: "Grass", Roof: "Open", OpenedYear: 1996, Active: true, Coordinates: &domain.Coordinates{Lat: 27.9806, Lon: -82.5036}},
}

// StaticVenues returns a copy of the known-venue table, e.g. for seeding a
// persisted store.
func StaticVenues() []domain.Venue {
	out := make([]domain.Venue, len(staticVenues))
	copy(out, staticVenues)
	return out
}
