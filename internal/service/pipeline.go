package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PremierSync/internal/config"
	"PremierSync/internal/interfaces"
	"PremierSync/internal/model"
	"PremierSync/internal/repository"
	"PremierSync/internal/scraper"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PipelineService 采集管道编排：抓取 → 解析 → 归档（尽力而为）→ 单事务入库。
// 两类数据顺序执行，单类失败不影响另一类；整体运行总是产出汇总
type PipelineService struct {
	db       *gorm.DB
	logger   *logrus.Logger
	cfg      *config.Config
	fetcher  *scraper.Fetcher
	repo     *repository.StatsRepository
	archiver interfaces.Archiver
}

// NewPipelineService 创建PipelineService
func NewPipelineService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config, archiver interfaces.Archiver) *PipelineService {
	return &PipelineService{
		db:       db,
		logger:   logger,
		cfg:      cfg,
		fetcher:  scraper.NewFetcher(&cfg.Scrape, logger),
		repo:     repository.NewStatsRepository(db),
		archiver: archiver,
	}
}

// RunAll 执行一次完整更新：依次跑积分榜与射手榜两条管道，逐阶段记录结果。
// 任何失败都在此边界被吸收，不会让宿主进程退出
func (s *PipelineService) RunAll(ctx context.Context) *model.RunSummary {
	summary := &model.RunSummary{RunID: uuid.NewString(), StartedAt: time.Now()}
	s.logger.Infof("开始数据更新, run_id: %s", summary.RunID)

	s.logger.Info("1. 更新积分榜...")
	summary.Stages = append(summary.Stages, s.runLeagueTable(ctx))

	s.logger.Info("2. 更新射手榜...")
	summary.Stages = append(summary.Stages, s.runTopScorers(ctx))

	summary.FinishedAt = time.Now()
	for _, st := range summary.Stages {
		if st.Success {
			s.logger.Infof("✅ %s 更新完成，入库%d行（归档: %v）", st.DataType, st.RowsLoaded, st.Archived)
		} else {
			s.logger.Errorf("❌ %s 更新失败: %s", st.DataType, st.Error)
		}
	}
	s.logger.Infof("数据更新结束, run_id: %s", summary.RunID)
	return summary
}

// runLeagueTable 积分榜管道。球队统计为追加式历史写入
func (s *PipelineService) runLeagueTable(ctx context.Context) model.StageResult {
	result := model.StageResult{DataType: model.DataTypeLeagueTable}

	html, err := s.fetcher.FetchPage(ctx, s.cfg.Scrape.LeagueTableURL)
	if err != nil {
		s.logger.WithError(err).Error("积分榜页面抓取失败")
		result.Error = err.Error()
		return result
	}

	rows, err := scraper.ParseLeagueTable(html, s.logger)
	if err != nil {
		if errors.Is(err, scraper.ErrTableNotFound) {
			s.logger.WithError(err).Error("积分榜页面结构不符合预期")
		}
		result.Error = err.Error()
		return result
	}
	result.RowsExtracted = len(rows)

	// S3归档：失败只记录，不阻塞入库
	if key, err := s.archiver.ArchiveLeagueTable(ctx, rows); err != nil {
		s.logger.WithError(err).Error("积分榜快照归档失败")
	} else {
		result.Archived = true
		result.ArchiveKey = key
	}

	// 单事务逐行入库，任一行失败整批回滚
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, row := range rows {
			if err := repo.UpsertTeamStats(ctx, s.cfg.Sync.Season, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		result.Error = fmt.Sprintf("入库失败: %v", err)
		return result
	}

	result.RowsLoaded = len(rows)
	result.Success = true
	return result
}

// runTopScorers 射手榜管道。球员统计按(player, season)原地覆盖
func (s *PipelineService) runTopScorers(ctx context.Context) model.StageResult {
	result := model.StageResult{DataType: model.DataTypeTopScorers}

	html, err := s.fetcher.FetchPage(ctx, s.cfg.Scrape.TopScorersURL)
	if err != nil {
		s.logger.WithError(err).Error("射手榜页面抓取失败")
		result.Error = err.Error()
		return result
	}

	rows, err := scraper.ParseTopScorers(html, s.logger)
	if err != nil {
		if errors.Is(err, scraper.ErrTableNotFound) {
			s.logger.WithError(err).Error("射手榜页面结构不符合预期")
		}
		result.Error = err.Error()
		return result
	}
	result.RowsExtracted = len(rows)

	if key, err := s.archiver.ArchiveTopScorers(ctx, rows); err != nil {
		s.logger.WithError(err).Error("射手榜快照归档失败")
	} else {
		result.Archived = true
		result.ArchiveKey = key
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, row := range rows {
			if err := repo.UpsertPlayerStats(ctx, s.cfg.Sync.Season, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		result.Error = fmt.Sprintf("入库失败: %v", err)
		return result
	}

	result.RowsLoaded = len(rows)
	result.Success = true
	return result
}
