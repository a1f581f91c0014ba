// Package scoring computes team scores and the leaderboard, and owns the
// daily update throttle. The engine reads through the stores on every
// call: persistence is the source of truth, caches sit in front of it.
package scoring

import (
	"context"
	"sort"

	"github.com/fantaprof/fantaprof-server/internal/domain/professor"
	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/internal/domain/team"
)

// ErrNoTeam is returned by TeamView when the user has no membership rows.
var ErrNoTeam = shared.NewDomainError("scoring", "TeamView", shared.ErrNotFound, "user has no team")

// Member is one resolved slot of a team view. A membership whose
// professor was deleted keeps its row but contributes zero.
type Member struct {
	ProfessorID  string
	Name         string
	Cost         int
	Score        int
	IsCaptain    bool
	Contribution int
}

// TeamView is the full picture of one user's team.
type TeamView struct {
	UserID     string
	TeamName   string
	CaptainID  string
	Members    []Member
	TotalScore int
}

// Standing is one leaderboard row.
type Standing struct {
	TeamName string `json:"team_name"`
	Score    int    `json:"score"`
}

// Engine aggregates professor scores into team totals. The captain's
// contribution counts double; a membership pointing at a deleted
// professor contributes zero rather than failing the computation.
type Engine struct {
	professors professor.Store
	teams      team.Store
}

// NewEngine creates an engine backed by the given stores.
func NewEngine(professors professor.Store, teams team.Store) *Engine {
	return &Engine{professors: professors, teams: teams}
}

// contribution resolves one membership row to its score contribution.
// Deleted professors contribute zero; other store failures propagate.
func (e *Engine) contribution(ctx context.Context, m *team.Membership) (*professor.Professor, int, error) {
	p, err := e.professors.Get(ctx, m.ProfessorID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	score := p.Score
	if m.IsCaptain {
		score *= 2
	}
	return p, score, nil
}

// TeamScore returns the user's current team total. A user with no team
// scores zero; this is not an error.
func (e *Engine) TeamScore(ctx context.Context, userID string) (int, error) {
	rows, err := e.teams.FindByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, m := range rows {
		_, score, err := e.contribution(ctx, m)
		if err != nil {
			return 0, err
		}
		total += score
	}
	return total, nil
}

// TeamName returns the user's team name. The second return value is false
// when the user has no team; a stored blank name also counts as no name.
func (e *Engine) TeamName(ctx context.Context, userID string) (string, bool, error) {
	rows, err := e.teams.FindByUserID(ctx, userID)
	if err != nil {
		return "", false, err
	}
	if len(rows) == 0 || rows[0].TeamName == "" {
		return "", false, nil
	}
	return rows[0].TeamName, true, nil
}

// TeamView returns the user's team with members resolved and the total
// computed. Returns ErrNoTeam when the user has no membership rows.
func (e *Engine) TeamView(ctx context.Context, userID string) (*TeamView, error) {
	rows, err := e.teams.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoTeam
	}

	view := &TeamView{
		UserID:   userID,
		TeamName: rows[0].TeamName,
		Members:  make([]Member, 0, len(rows)),
	}
	for _, m := range rows {
		p, score, err := e.contribution(ctx, m)
		if err != nil {
			return nil, err
		}
		member := Member{
			ProfessorID:  m.ProfessorID,
			IsCaptain:    m.IsCaptain,
			Contribution: score,
		}
		if p != nil {
			member.Name = p.Name.String()
			member.Cost = int(p.Cost)
			member.Score = p.Score
		}
		if m.IsCaptain {
			view.CaptainID = m.ProfessorID
		}
		view.Members = append(view.Members, member)
		view.TotalScore += score
	}
	return view, nil
}

// Leaderboard returns every team with its own total, highest first. Teams
// with equal totals keep the order in which their first membership row
// was stored, so repeated calls over unchanged data return identical
// slices.
func (e *Engine) Leaderboard(ctx context.Context) ([]Standing, error) {
	rows, err := e.teams.All(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	order := make([]string, 0)
	for _, m := range rows {
		if _, seen := totals[m.TeamName]; !seen {
			order = append(order, m.TeamName)
		}
		_, score, err := e.contribution(ctx, m)
		if err != nil {
			return nil, err
		}
		totals[m.TeamName] += score
	}

	standings := make([]Standing, 0, len(order))
	for _, name := range order {
		standings = append(standings, Standing{TeamName: name, Score: totals[name]})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})
	return standings, nil
}
