package model

// DataType 采集数据类型（也是归档key的一级目录名）
type DataType string

const (
	DataTypeLeagueTable DataType = "league_table" // 积分榜
	DataTypeTopScorers  DataType = "top_scorers"  // 射手榜
)

// Valid 是否为已知数据类型
func (d DataType) Valid() bool {
	return d == DataTypeLeagueTable || d == DataTypeTopScorers
}

// LeagueRow 积分榜解析结果，一行一队，按页面顺序
type LeagueRow struct {
	Position       int    `parquet:"position" json:"position"`
	Team           string `parquet:"team" json:"team"`
	Played         int    `parquet:"played" json:"played"`
	Won            int    `parquet:"won" json:"won"`
	Drawn          int    `parquet:"drawn" json:"drawn"`
	Lost           int    `parquet:"lost" json:"lost"`
	GoalsFor       int    `parquet:"goals_for" json:"goals_for"`
	GoalsAgainst   int    `parquet:"goals_against" json:"goals_against"`
	GoalDifference int    `parquet:"goal_difference" json:"goal_difference"`
	Points         int    `parquet:"points" json:"points"`
}

// ScorerRow 射手榜解析结果。Goals为总进球数（含点球），Penalties为其中点球数
type ScorerRow struct {
	Rank      string `parquet:"rank" json:"rank"` // 原始名次，已去掉尾缀"."
	Player    string `parquet:"player" json:"player"`
	Country   string `parquet:"country" json:"country"`
	Team      string `parquet:"team" json:"team"`
	Goals     int    `parquet:"goals" json:"goals"`
	Penalties int    `parquet:"penalties" json:"penalties"`
}
