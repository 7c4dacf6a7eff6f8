package interfaces

import (
	"context"

	"PremierSync/internal/model"
)

// Archiver 快照归档契约。归档与关系库写入是相互独立的尽力而为路径，
// 不构成两阶段提交：归档失败只记录日志，不阻塞入库
type Archiver interface {
	// ArchiveLeagueTable 归档一次积分榜快照，返回对象key
	ArchiveLeagueTable(ctx context.Context, rows []model.LeagueRow) (string, error)
	// ArchiveTopScorers 归档一次射手榜快照，返回对象key
	ArchiveTopScorers(ctx context.Context, rows []model.ScorerRow) (string, error)
	// ListEntries 列举某数据类型下全部归档key；无归档时返回空切片而非错误
	ListEntries(ctx context.Context, dataType model.DataType) ([]string, error)
}
