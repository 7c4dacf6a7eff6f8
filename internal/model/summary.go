package model

import "time"

// StageResult 单个数据类型的管道执行结果
type StageResult struct {
	DataType      DataType `json:"data_type"`
	Success       bool     `json:"success"`
	RowsExtracted int      `json:"rows_extracted"`
	RowsLoaded    int      `json:"rows_loaded"`
	Archived      bool     `json:"archived"`              // 归档为尽力而为，失败不影响Success
	ArchiveKey    string   `json:"archive_key,omitempty"` // 归档成功时的对象key
	Error         string   `json:"error,omitempty"`
}

// RunSummary 一次完整更新的汇总。整体运行总是正常结束并产出汇总，从不向上抛致命错误
type RunSummary struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Stages     []StageResult `json:"stages"`
}

// Succeeded 所有阶段均成功
func (r *RunSummary) Succeeded() bool {
	for _, s := range r.Stages {
		if !s.Success {
			return false
		}
	}
	return true
}
