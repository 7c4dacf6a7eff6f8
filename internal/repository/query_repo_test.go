package repository

import (
	"context"
	"testing"
	"time"

	"PremierSync/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCurrentStandingsReturnsLatestRun(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	run1 := []model.LeagueRow{
		{Position: 1, Team: "Manchester City", Played: 30, Points: 70},
		{Position: 2, Team: "Arsenal", Played: 30, Points: 68},
	}
	run2 := []model.LeagueRow{
		{Position: 1, Team: "Manchester City", Played: 38, Points: 91},
		{Position: 2, Team: "Arsenal", Played: 38, Points: 89},
	}

	for _, run := range [][]model.LeagueRow{run1, run2} {
		rows := run
		runBatch(t, db, func(r *StatsRepository) error {
			for _, row := range rows {
				if err := r.UpsertTeamStats(ctx, "2023-2024", row); err != nil {
					return err
				}
			}
			return nil
		})
		time.Sleep(5 * time.Millisecond)
	}

	// 两个批次共四行历史，但"当前积分榜"只返回最大updated_at的批次
	standings, err := NewQueryRepository(db).CurrentStandings(ctx, "2023-2024")
	require.NoError(t, err)
	require.Len(t, standings, 2)
	require.Equal(t, "Manchester City", standings[0].TeamName)
	require.Equal(t, 38, standings[0].Played)
	require.Equal(t, 91, standings[0].Points)
	require.Equal(t, "Arsenal", standings[1].TeamName)
	require.Equal(t, 89, standings[1].Points)
}

func TestCurrentStandingsEmptySeason(t *testing.T) {
	db := setupDB(t)

	standings, err := NewQueryRepository(db).CurrentStandings(context.Background(), "2023-2024")
	require.NoError(t, err)
	require.Empty(t, standings)
}

func TestTopScorers(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	scorers := []model.ScorerRow{
		{Rank: "1", Player: "Erling Haaland", Country: "Norway", Team: "Manchester City", Goals: 27, Penalties: 7},
		{Rank: "2", Player: "Cole Palmer", Country: "England", Team: "Chelsea FC", Goals: 22, Penalties: 9},
		{Rank: "3", Player: "Unused Sub", Country: "England", Team: "Chelsea FC", Goals: 0, Penalties: 0},
	}
	runBatch(t, db, func(r *StatsRepository) error {
		for _, row := range scorers {
			if err := r.UpsertPlayerStats(ctx, "2023-2024", row); err != nil {
				return err
			}
		}
		return nil
	})

	rows, err := NewQueryRepository(db).TopScorers(ctx, "2023-2024", 10)
	require.NoError(t, err)
	// goals=0 的球员被过滤，其余按进球降序
	require.Len(t, rows, 2)
	require.Equal(t, "Erling Haaland", rows[0].Player)
	require.Equal(t, "Manchester City", rows[0].TeamName)
	require.Equal(t, 20, rows[0].GoalsFromPlay)
	require.Equal(t, "Cole Palmer", rows[1].Player)
	require.Equal(t, 13, rows[1].GoalsFromPlay)

	// limit 生效
	rows, err = NewQueryRepository(db).TopScorers(ctx, "2023-2024", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Erling Haaland", rows[0].Player)
}
