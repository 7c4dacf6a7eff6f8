package repository

import (
	"context"
	"fmt"
	"time"

	"PremierSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository 球队/球员身份解析与统计数据入库。
// 身份ID只能由本仓储分配；一个批次的所有写入须走同一事务，
// 由调用方统一提交或回滚（任一行失败整批不落库）
type StatsRepository struct {
	db    *gorm.DB
	stamp time.Time // 批次时间戳，WithTx时捕获
}

// NewStatsRepository 创建StatsRepository
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// WithTx 绑定事务并捕获批次时间戳。同批次内所有写入共享同一时间，
// 这正是"当前积分榜 = 共享最大updated_at的行集合"成立的前提
func (r *StatsRepository) WithTx(tx *gorm.DB) *StatsRepository {
	return &StatsRepository{db: tx, stamp: time.Now()}
}

func (r *StatsRepository) now() time.Time {
	if r.stamp.IsZero() {
		return time.Now()
	}
	return r.stamp
}

// ResolveTeam 按唯一名插入或触达球队，返回稳定ID。
// 触达路径同样更新updated_at，即使没有字段变化
func (r *StatsRepository) ResolveTeam(ctx context.Context, name string) (uint, error) {
	now := r.now()
	team := model.Team{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": now}),
	}).Create(&team).Error; err != nil {
		return 0, fmt.Errorf("球队入库失败: %w, name: %s", err, name)
	}

	// 冲突路径下各驱动对主键回填行为不一致，统一回查
	var got model.Team
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&got).Error; err != nil {
		return 0, fmt.Errorf("查询球队ID失败: %w, name: %s", err, name)
	}
	return got.TeamID, nil
}

// ResolvePlayer 先解析所属球队，再按(姓名, 球队)插入或更新球员，返回稳定ID。
// 冲突时覆盖country与updated_at
func (r *StatsRepository) ResolvePlayer(ctx context.Context, name, teamName, country string) (uint, error) {
	teamID, err := r.ResolveTeam(ctx, teamName)
	if err != nil {
		return 0, err
	}

	now := r.now()
	player := model.Player{Name: name, Country: country, TeamID: teamID, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}, {Name: "team_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"country":    country,
			"updated_at": now,
		}),
	}).Create(&player).Error; err != nil {
		return 0, fmt.Errorf("球员入库失败: %w, name: %s", err, name)
	}

	var got model.Player
	if err := r.db.WithContext(ctx).Where("name = ? AND team_id = ?", name, teamID).First(&got).Error; err != nil {
		return 0, fmt.Errorf("查询球员ID失败: %w, name: %s", err, name)
	}
	return got.PlayerID, nil
}

// UpsertTeamStats 球队统计为追加式历史：每批次插入带批次时间戳的新行，
// 从不原地更新。唯一键(team_id, season, updated_at)因批次时间各异而天然不冲突
func (r *StatsRepository) UpsertTeamStats(ctx context.Context, season string, row model.LeagueRow) error {
	teamID, err := r.ResolveTeam(ctx, row.Team)
	if err != nil {
		return err
	}

	now := r.now()
	stats := model.TeamStats{
		TeamID:         teamID,
		Season:         season,
		Position:       row.Position,
		Played:         row.Played,
		Won:            row.Won,
		Drawn:          row.Drawn,
		Lost:           row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := r.db.WithContext(ctx).Create(&stats).Error; err != nil {
		return fmt.Errorf("球队统计入库失败: %w, team: %s", err, row.Team)
	}
	return nil
}

// UpsertPlayerStats 球员统计按(player_id, season)原地覆盖：
// 冲突时更新goals/penalties/updated_at，全表每球员每赛季只留一行
func (r *StatsRepository) UpsertPlayerStats(ctx context.Context, season string, row model.ScorerRow) error {
	playerID, err := r.ResolvePlayer(ctx, row.Player, row.Team, row.Country)
	if err != nil {
		return err
	}

	now := r.now()
	stats := model.PlayerStats{
		PlayerID:  playerID,
		Season:    season,
		Goals:     row.Goals,
		Penalties: row.Penalties,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}, {Name: "season"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"goals":      row.Goals,
			"penalties":  row.Penalties,
			"updated_at": now,
		}),
	}).Create(&stats).Error; err != nil {
		return fmt.Errorf("球员统计入库失败: %w, player: %s", err, row.Player)
	}
	return nil
}
