package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"PremierSync/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// ErrTableNotFound 页面中未找到结构标记对应的表格（页面结构变更），
// 区别于单行解析失败：后者跳过该行继续，前者中止该数据类型
var ErrTableNotFound = errors.New("未找到目标表格")

// 两个固定数据源的结构标记
const (
	leagueTableSelector = "table.ssrcss-14j0ip6-Table.e3bga5w5"
	scorerTableSelector = "table.standard_tabelle"
)

// formColumnHeader 积分榜的"近期战绩"列，存在时丢弃
const formColumnHeader = "Form, Last 6 games, Oldest first"

// ParseLeagueTable 从积分榜页面HTML解析球队行，按表格顺序返回。
// 表头行提供字段名；单行数值解析失败仅记录日志并跳过
func ParseLeagueTable(html string, logger *logrus.Logger) ([]model.LeagueRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("解析HTML失败: %w", err)
	}

	table := doc.Find(leagueTableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: 积分榜", ErrTableNotFound)
	}

	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	var rows []model.LeagueRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // 首行为表头
		}
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, td.Text())
		})
		if len(cells) == 0 {
			return
		}

		row, err := leagueRowFromCells(headers, cells)
		if err != nil {
			logger.WithError(err).Warn("积分榜行解析失败，已跳过")
			return
		}
		rows = append(rows, row)
	})
	return rows, nil
}

// leagueRowFromCells 按表头名取值并转为类型化记录，"近期战绩"列被忽略
func leagueRowFromCells(headers, cells []string) (model.LeagueRow, error) {
	byName := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == formColumnHeader || i >= len(cells) {
			continue
		}
		byName[h] = strings.TrimSpace(cells[i])
	}

	row := model.LeagueRow{Team: byName["Team"]}
	if row.Team == "" {
		return row, errors.New("缺少球队名称")
	}

	fields := []struct {
		header string
		dst    *int
	}{
		{"Position", &row.Position},
		{"Played", &row.Played},
		{"Won", &row.Won},
		{"Drawn", &row.Drawn},
		{"Lost", &row.Lost},
		{"Goals For", &row.GoalsFor},
		{"Goals Against", &row.GoalsAgainst},
		{"Goal Difference", &row.GoalDifference},
		{"Points", &row.Points},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(byName[f.header])
		if err != nil {
			return row, fmt.Errorf("字段%q解析失败: %w, team: %s", f.header, err, row.Team)
		}
		*f.dst = v
	}
	return row, nil
}
