package repository

import (
	"context"
	"fmt"
	"time"

	"PremierSync/internal/model"

	"gorm.io/gorm"
)

// StandingRow 前端消费的积分榜视图行
type StandingRow struct {
	Position       int       `gorm:"column:position" json:"position"`
	TeamName       string    `gorm:"column:team_name" json:"team"`
	Played         int       `gorm:"column:played" json:"played"`
	Won            int       `gorm:"column:won" json:"won"`
	Drawn          int       `gorm:"column:drawn" json:"drawn"`
	Lost           int       `gorm:"column:lost" json:"lost"`
	GoalsFor       int       `gorm:"column:goals_for" json:"goals_for"`
	GoalsAgainst   int       `gorm:"column:goals_against" json:"goals_against"`
	GoalDifference int       `gorm:"column:goal_difference" json:"goal_difference"`
	Points         int       `gorm:"column:points" json:"points"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TopScorerRow 前端消费的射手榜视图行，GoalsFromPlay = goals - penalties
type TopScorerRow struct {
	Player        string `gorm:"column:player_name" json:"player"`
	Country       string `gorm:"column:country" json:"country"`
	TeamName      string `gorm:"column:team_name" json:"team"`
	Goals         int    `gorm:"column:goals" json:"goals"`
	Penalties     int    `gorm:"column:penalties" json:"penalties"`
	GoalsFromPlay int    `gorm:"column:goals_from_play" json:"goals_from_play"`
}

// QueryRepository 只读聚合查询仓储（供展示层消费）
type QueryRepository struct {
	db *gorm.DB
}

// NewQueryRepository 创建QueryRepository
func NewQueryRepository(db *gorm.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// CurrentStandings 当前积分榜：赛季内共享最大updated_at的统计行，
// 即最近一次完整采集批次，按排名升序
func (r *QueryRepository) CurrentStandings(ctx context.Context, season string) ([]StandingRow, error) {
	latest := r.db.Model(&model.TeamStats{}).
		Select("MAX(updated_at)").
		Where("season = ?", season)

	var rows []StandingRow
	if err := r.db.WithContext(ctx).Model(&model.TeamStats{}).
		Select("team_stats.position, teams.name AS team_name, team_stats.played, team_stats.won, "+
			"team_stats.drawn, team_stats.lost, team_stats.goals_for, team_stats.goals_against, "+
			"team_stats.goal_difference, team_stats.points, team_stats.updated_at").
		Joins("JOIN teams ON teams.team_id = team_stats.team_id").
		Where("team_stats.season = ? AND team_stats.updated_at = (?)", season, latest).
		Order("team_stats.position ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询当前积分榜失败: %w", err)
	}
	return rows, nil
}

// TopScorers 射手榜前N名：只含有进球的球员，按进球数降序
func (r *QueryRepository) TopScorers(ctx context.Context, season string, limit int) ([]TopScorerRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var rows []TopScorerRow
	if err := r.db.WithContext(ctx).Model(&model.PlayerStats{}).
		Select("players.name AS player_name, players.country, teams.name AS team_name, "+
			"player_stats.goals, player_stats.penalties, "+
			"player_stats.goals - player_stats.penalties AS goals_from_play").
		Joins("JOIN players ON players.player_id = player_stats.player_id").
		Joins("JOIN teams ON teams.team_id = players.team_id").
		Where("player_stats.season = ? AND player_stats.goals > 0", season).
		Order("player_stats.goals DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("查询射手榜失败: %w", err)
	}
	return rows, nil
}
