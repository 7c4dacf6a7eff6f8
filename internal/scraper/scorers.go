package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"PremierSync/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// ParseTopScorers 从射手榜页面HTML解析球员行。首行为表头直接跳过；
// 少于4个单元格的行跳过；单行解析失败仅记录日志，不中止整批
func ParseTopScorers(html string, logger *logrus.Logger) ([]model.ScorerRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	table := doc.Find(scorerTableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: 射手榜", ErrTableNotFound)
	}

	var rows []model.ScorerRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // 跳过表头
		}
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, td.Text())
		})
		if len(cells) < 4 {
			return
		}

		row, err := scorerRowFromCells(cells)
		if err != nil {
			logger.WithError(err).Warn("射手榜行解析失败，已跳过")
			return
		}
		rows = append(rows, row)
	})
	return rows, nil
}

// scorerRowFromCells 单元格布局：0名次 1姓名 3国籍 4球队 5进球
func scorerRowFromCells(cells []string) (model.ScorerRow, error) {
	var row model.ScorerRow
	if len(cells) < 6 {
		return row, fmt.Errorf("单元格数量不足: %d", len(cells))
	}

	row.Rank = strings.TrimSuffix(strings.TrimSpace(cells[0]), ".")
	row.Player = strings.TrimSpace(cells[1])
	row.Country = strings.TrimSpace(cells[3])
	row.Team = strings.TrimSpace(strings.ReplaceAll(cells[4], "\n", ""))

	goals, penalties, err := ParseGoalsCell(strings.TrimSpace(cells[5]))
	if err != nil {
		return row, fmt.Errorf("进球单元格解析失败: %w, player: %s", err, row.Player)
	}
	row.Goals = goals
	row.Penalties = penalties
	return row, nil
}

// ParseGoalsCell 解析进球单元格。格式为"<总进球>"或"<总进球> (<点球>)"，
// 无括号时点球为0
func ParseGoalsCell(text string) (goals int, penalties int, err error) {
	total := text
	if idx := strings.Index(text, "("); idx >= 0 {
		total = text[:idx]
		pen := strings.TrimSuffix(strings.TrimSpace(text[idx+1:]), ")")
		penalties, err = strconv.Atoi(strings.TrimSpace(pen))
		if err != nil {
			return 0, 0, fmt.Errorf("点球数无效: %w", err)
		}
	}
	goals, err = strconv.Atoi(strings.TrimSpace(total))
	if err != nil {
		return 0, 0, fmt.Errorf("总进球数无效: %w", err)
	}
	return goals, penalties, nil
}

// FormatGoalsCell ParseGoalsCell的逆操作，用于还原页面原始格式
func FormatGoalsCell(goals, penalties int) string {
	if penalties > 0 {
		return fmt.Sprintf("%d (%d)", goals, penalties)
	}
	return strconv.Itoa(goals)
}
