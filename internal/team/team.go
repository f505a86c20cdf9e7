package team

// Sentinel is the placeholder the source uses for "no data". Fixtures keep it
// verbatim for unknown results and records.
const Sentinel = "—"

// UnknownPlayer is the display name used when a stats row carries no player link.
const UnknownPlayer = "Unknown"

// DefaultCoach is the head coach reported with every fixtures section. The
// schedule page is not scraped for the coach yet.
const DefaultCoach = "Steve Rubin"

// Location says where a fixture was played
type Location string

const (
	Home Location = "Home"
	Away Location = "Away"
)

// Outcome is the classified result of a fixture
type Outcome string

const (
	Win     Outcome = "W"
	Loss    Outcome = "L"
	Tie     Outcome = "T"
	Unknown Outcome = Sentinel
)

// PlayerStat is one field player's season line. Points is stored as reported
// and is never recomputed from goals and assists.
type PlayerStat struct {
	Player       string `json:"player"`
	YearPosition string `json:"year_position"`
	Goals        int    `json:"goals"`
	Assists      int    `json:"assists"`
	Points       int    `json:"points"`
}

// GoalieStat is one goalkeeper's season line
type GoalieStat struct {
	Player       string `json:"player"`
	YearPosition string `json:"year_position"`
	Saves        int    `json:"saves"`
	GamesPlayed  int    `json:"games_played"`
}

// Fixture is one row of the schedule page
type Fixture struct {
	Date     string   `json:"date"`
	Opponent string   `json:"opponent"`
	Location Location `json:"location"`
	Result   string   `json:"result"`
	Outcome  Outcome  `json:"outcome"`
	Record   string   `json:"record"`
}

// RosterEntry is one row of the roster page. Number is kept as text because
// the source does not guarantee it is numeric.
type RosterEntry struct {
	Number   string `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Year     string `json:"year"`
}

// SeasonStats holds both stats tables for one season
type SeasonStats struct {
	Season       string       `json:"season"`
	FieldPlayers []PlayerStat `json:"field_players"`
	Goalies      []GoalieStat `json:"goalies"`
}

// Fixtures holds the schedule section of a bundle
type Fixtures struct {
	Coach string    `json:"coach"`
	Games []Fixture `json:"games"`
}

// Bundle is the complete output of one aggregation run. A nil stats section
// means that season could not be scraped.
type Bundle struct {
	CurrentStats  *SeasonStats  `json:"current_stats"`
	PreviousStats *SeasonStats  `json:"previous_stats"`
	Fixtures      Fixtures      `json:"fixtures"`
	Roster        []RosterEntry `json:"roster"`
}

// NewBundle returns a bundle with every section empty but well formed
func NewBundle(coach string) *Bundle {
	if coach == "" {
		coach = DefaultCoach
	}
	return &Bundle{
		Fixtures: Fixtures{
			Coach: coach,
			Games: make([]Fixture, 0),
		},
		Roster: make([]RosterEntry, 0),
	}
}
