package model

import (
	"time"
)

// Team 球队。身份 = 唯一展示名，首次被引用时创建，从不删除
type Team struct {
	TeamID    uint      `gorm:"primaryKey;column:team_id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex:uk_teams_name;not null"` // 唯一展示名
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"` // 每次触达都会更新，即使字段无变化
}

// TableName 指定球队表名
func (Team) TableName() string {
	return "teams"
}

// Player 球员。身份 = (姓名, 所属球队)，同名不同队视为不同球员
type Player struct {
	PlayerID  uint      `gorm:"primaryKey;column:player_id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex:uk_players_name_team;not null"`
	Country   string    `gorm:"column:country;type:varchar(100)"` // 每次入库都会覆盖
	TeamID    uint      `gorm:"column:team_id;uniqueIndex:uk_players_name_team;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 指定球员表名
func (Player) TableName() string {
	return "players"
}

// TeamStats 球队统计历史。追加式：每个批次插入带批次时间戳的新行，
// 唯一键含updated_at，"当前积分榜"即共享赛季最大updated_at的行集合
type TeamStats struct {
	StatID         uint      `gorm:"primaryKey;column:stat_id"`
	TeamID         uint      `gorm:"column:team_id;uniqueIndex:uk_team_stats_team_season_updated;not null"`
	Season         string    `gorm:"column:season;type:varchar(9);uniqueIndex:uk_team_stats_team_season_updated"`
	Position       int       `gorm:"column:position"`
	Played         int       `gorm:"column:played"`
	Won            int       `gorm:"column:won"`
	Drawn          int       `gorm:"column:drawn"`
	Lost           int       `gorm:"column:lost"`
	GoalsFor       int       `gorm:"column:goals_for"`
	GoalsAgainst   int       `gorm:"column:goals_against"`
	GoalDifference int       `gorm:"column:goal_difference"` // 上游解析保证 = goals_for - goals_against，库内不校验
	Points         int       `gorm:"column:points"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;uniqueIndex:uk_team_stats_team_season_updated"`
}

// TableName 指定球队统计表名
func (TeamStats) TableName() string {
	return "team_stats"
}

// PlayerStats 球员统计。与球队统计不同：按(player_id, season)原地覆盖，不留历史
type PlayerStats struct {
	StatID        uint      `gorm:"primaryKey;column:stat_id"`
	PlayerID      uint      `gorm:"column:player_id;uniqueIndex:uk_player_stats_player_season;not null"`
	Season        string    `gorm:"column:season;type:varchar(9);uniqueIndex:uk_player_stats_player_season"`
	Goals         int       `gorm:"column:goals;default:0"`
	Penalties     int       `gorm:"column:penalties;default:0"`
	Assists       int       `gorm:"column:assists;default:0"`
	MinutesPlayed int       `gorm:"column:minutes_played;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName 指定球员统计表名
func (PlayerStats) TableName() string {
	return "player_stats"
}
