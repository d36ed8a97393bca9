package services

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/soccerscope/soccerscope/internal/dataset"
	"github.com/soccerscope/soccerscope/internal/models"
)

// TeamStatsService computes roster-level aggregates and league comparisons
// for the team view.
type TeamStatsService struct {
	pool   *dataset.Pool
	logger *logrus.Logger
}

func NewTeamStatsService(pool *dataset.Pool, logger *logrus.Logger) *TeamStatsService {
	return &TeamStatsService{pool: pool, logger: logger}
}

// TeamSummary aggregates a roster for the team detail panel. Goals, shots on
// target, interceptions and recoveries are season totals; expected goals and
// assists are per-player means.
type TeamSummary struct {
	Squad            string  `json:"squad"`
	PlayerCount      int     `json:"player_count"`
	TotalMarketValue int64   `json:"total_market_value"`
	Goals            float64 `json:"goals"`
	ExpectedGoals    float64 `json:"expected_goals"`
	ExpectedAssists  float64 `json:"expected_assists"`
	ShotsOnTarget    float64 `json:"shots_on_target"`
	Interceptions    float64 `json:"interceptions"`
	Recoveries       float64 `json:"recoveries"`

	// NetTransfer is parsed from club metadata supplied by the caller; it is
	// not derivable from the player table.
	NetTransfer int64 `json:"net_transfer,omitempty"`
}

// Summary aggregates the roster of the given team. A team with no players
// returns an all-zero summary.
func (s *TeamStatsService) Summary(team string) TeamSummary {
	roster := s.pool.GetPlayers(team)
	summary := TeamSummary{Squad: team, PlayerCount: len(roster)}

	for _, p := range roster {
		summary.TotalMarketValue += p.MarketValue
		summary.Goals += p.Stat(models.CategoryGls)
		summary.ExpectedGoals += p.Stat(models.CategoryXG)
		summary.ExpectedAssists += p.Stat(models.CategoryXAG)
		summary.ShotsOnTarget += p.Stat(models.CategorySoT)
		summary.Interceptions += p.Stat(models.CategoryInt)
		summary.Recoveries += p.Stat(models.CategoryRecov)
	}
	if n := float64(len(roster)); n > 0 {
		summary.ExpectedGoals /= n
		summary.ExpectedAssists /= n
	}
	return summary
}

// GroupAnalysis compares a team against the league for one category within a
// position group.
type GroupAnalysis struct {
	Category      models.StatCategory `json:"category"`
	Group         models.RoleBucket   `json:"group"`
	LeagueAverage float64             `json:"league_average"`
	TeamAverage   float64             `json:"team_average"`
	Players       []PlayerValue       `json:"players"`
}

// PlayerValue is one player's value for a single category.
type PlayerValue struct {
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	OwnTeam  bool    `json:"own_team,omitempty"`
}

// Analyze computes league and team averages for the category over players in
// the position group, plus the team's per-player values.
func (s *TeamStatsService) Analyze(team string, category models.StatCategory, group models.RoleBucket) GroupAnalysis {
	analysis := GroupAnalysis{Category: category, Group: group}

	leagueSum, leagueCount := 0.0, 0
	teamSum := 0.0
	for _, p := range s.pool.Players() {
		if p.Bucket != group {
			continue
		}
		v := p.Stat(category)
		leagueSum += v
		leagueCount++
		if p.Squad == team {
			teamSum += v
			analysis.Players = append(analysis.Players, PlayerValue{PlayerID: p.ID, Name: p.Name, Value: v})
		}
	}

	if leagueCount > 0 {
		analysis.LeagueAverage = leagueSum / float64(leagueCount)
	}
	if n := len(analysis.Players); n > 0 {
		analysis.TeamAverage = teamSum / float64(n)
	}
	return analysis
}

// Heatmap returns the whole pool ordered by the category value descending,
// flagging the given team's players.
func (s *TeamStatsService) Heatmap(team string, category models.StatCategory) []PlayerValue {
	players := s.pool.Players()
	cells := make([]PlayerValue, 0, len(players))
	for _, p := range players {
		cells = append(cells, PlayerValue{
			PlayerID: p.ID,
			Name:     p.Name,
			Value:    p.Stat(category),
			OwnTeam:  p.Squad == team,
		})
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Value > cells[j].Value
	})
	return cells
}

// RadarAxis is one spoke of the per-player radar summary, normalized by the
// pool-wide maximum for that category.
type RadarAxis struct {
	Category models.StatCategory `json:"category"`
	Value    float64             `json:"value"`
	Max      float64             `json:"max"`
	Ratio    float64             `json:"ratio"`
}

// Radar computes the fixed impact-set radar for a player. Unknown players
// return nil.
func (s *TeamStatsService) Radar(playerID int64) []RadarAxis {
	player, ok := s.pool.PlayerByID(playerID)
	if !ok {
		return nil
	}

	maxByCategory := make(map[models.StatCategory]float64, len(models.ImpactCategories))
	for _, p := range s.pool.Players() {
		for _, c := range models.ImpactCategories {
			maxByCategory[c] = math.Max(maxByCategory[c], p.Stat(c))
		}
	}

	axes := make([]RadarAxis, 0, len(models.ImpactCategories))
	for _, c := range models.ImpactCategories {
		max := maxByCategory[c]
		if max == 0 {
			max = 1
		}
		v := player.Stat(c)
		axes = append(axes, RadarAxis{Category: c, Value: v, Max: max, Ratio: v / max})
	}
	return axes
}

var netTransferPattern = regexp.MustCompile(`[^0-9.\-]`)

// ParseNetTransfer coerces club net-transfer strings such as "€-1.2m" or
// "+€500k" into integer euros. Unparseable input yields zero.
func ParseNetTransfer(raw string) int64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	num, err := strconv.ParseFloat(netTransferPattern.ReplaceAllString(s, ""), 64)
	if err != nil {
		return 0
	}

	amount := num
	if strings.Contains(s, "m") {
		amount = num * 1_000_000
	} else if strings.Contains(s, "k") {
		amount = num * 1_000
	}
	return int64(math.Round(amount))
}
