package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"PremierSync/internal/config"
	"PremierSync/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const leaguePage = `
<table class="ssrcss-14j0ip6-Table e3bga5w5">
  <tr>
    <th>Position</th><th>Team</th><th>Played</th><th>Won</th><th>Drawn</th><th>Lost</th>
    <th>Goals For</th><th>Goals Against</th><th>Goal Difference</th><th>Points</th>
  </tr>
  <tr>
    <td>1</td><td>Manchester City</td><td>38</td><td>28</td><td>7</td><td>3</td>
    <td>96</td><td>34</td><td>62</td><td>91</td>
  </tr>
  <tr>
    <td>2</td><td>Arsenal</td><td>38</td><td>28</td><td>5</td><td>5</td>
    <td>91</td><td>29</td><td>62</td><td>89</td>
  </tr>
</table>`

const scorersPage = `
<table class="standard_tabelle">
  <tr><th>#</th><th>Player</th><th></th><th>Country</th><th>Team</th><th>Goals</th></tr>
  <tr><td>1.</td><td>Erling Haaland</td><td></td><td>Norway</td><td>Manchester City</td><td>27 (7)</td></tr>
</table>`

type fakeArchiver struct {
	err         error
	leagueCalls int
	scorerCalls int
}

func (f *fakeArchiver) ArchiveLeagueTable(ctx context.Context, rows []model.LeagueRow) (string, error) {
	f.leagueCalls++
	if f.err != nil {
		return "", f.err
	}
	return "premier_league/league_table/20240519_173005.parquet", nil
}

func (f *fakeArchiver) ArchiveTopScorers(ctx context.Context, rows []model.ScorerRow) (string, error) {
	f.scorerCalls++
	if f.err != nil {
		return "", f.err
	}
	return "premier_league/top_scorers/20240519_173005.parquet", nil
}

func (f *fakeArchiver) ListEntries(ctx context.Context, dataType model.DataType) ([]string, error) {
	return []string{}, nil
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Team{},
		&model.Player{},
		&model.TeamStats{},
		&model.PlayerStats{},
	))
	return db
}

func testConfig(leagueURL, scorersURL string) *config.Config {
	return &config.Config{
		Scrape: config.ScrapeConfig{
			LeagueTableURL: leagueURL,
			TopScorersURL:  scorersURL,
			UserAgent:      "test-agent",
			Timeout:        5,
		},
		Sync: config.SyncConfig{Season: "2023-2024"},
	}
}

func newTestServer(leagueBody, scorersBody string, leagueStatus int) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/table", func(w http.ResponseWriter, r *http.Request) {
		if leagueStatus != http.StatusOK {
			w.WriteHeader(leagueStatus)
			return
		}
		_, _ = w.Write([]byte(leagueBody))
	})
	mux.HandleFunc("/scorers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(scorersBody))
	})
	return httptest.NewServer(mux)
}

func TestRunAllSuccess(t *testing.T) {
	ts := newTestServer(leaguePage, scorersPage, http.StatusOK)
	defer ts.Close()

	db := setupDB(t)
	arch := &fakeArchiver{}
	p := NewPipelineService(db, logrus.New(), testConfig(ts.URL+"/table", ts.URL+"/scorers"), arch)

	summary := p.RunAll(context.Background())
	require.True(t, summary.Succeeded())
	require.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Stages, 2)

	league := summary.Stages[0]
	require.Equal(t, model.DataTypeLeagueTable, league.DataType)
	require.Equal(t, 2, league.RowsLoaded)
	require.True(t, league.Archived)
	require.NotEmpty(t, league.ArchiveKey)

	scorers := summary.Stages[1]
	require.Equal(t, model.DataTypeTopScorers, scorers.DataType)
	require.Equal(t, 1, scorers.RowsLoaded)

	var teamStats, playerStats int64
	require.NoError(t, db.Model(&model.TeamStats{}).Count(&teamStats).Error)
	require.NoError(t, db.Model(&model.PlayerStats{}).Count(&playerStats).Error)
	require.EqualValues(t, 2, teamStats)
	require.EqualValues(t, 1, playerStats)
}

func TestRunAllSiblingIsolation(t *testing.T) {
	// 积分榜源返回500，射手榜管道仍应执行并成功
	ts := newTestServer(leaguePage, scorersPage, http.StatusInternalServerError)
	defer ts.Close()

	db := setupDB(t)
	p := NewPipelineService(db, logrus.New(), testConfig(ts.URL+"/table", ts.URL+"/scorers"), &fakeArchiver{})

	summary := p.RunAll(context.Background())
	require.False(t, summary.Succeeded())

	require.False(t, summary.Stages[0].Success)
	require.NotEmpty(t, summary.Stages[0].Error)
	require.True(t, summary.Stages[1].Success)

	var teamStats, playerStats int64
	require.NoError(t, db.Model(&model.TeamStats{}).Count(&teamStats).Error)
	require.NoError(t, db.Model(&model.PlayerStats{}).Count(&playerStats).Error)
	require.EqualValues(t, 0, teamStats)
	require.EqualValues(t, 1, playerStats)
}

func TestRunAllSchemaMismatch(t *testing.T) {
	// 积分榜页面缺少结构标记：该类型零行入库，射手榜不受影响
	ts := newTestServer(`<html><body><p>redesigned</p></body></html>`, scorersPage, http.StatusOK)
	defer ts.Close()

	db := setupDB(t)
	arch := &fakeArchiver{}
	p := NewPipelineService(db, logrus.New(), testConfig(ts.URL+"/table", ts.URL+"/scorers"), arch)

	summary := p.RunAll(context.Background())
	require.False(t, summary.Stages[0].Success)
	require.Zero(t, summary.Stages[0].RowsLoaded)
	require.Zero(t, arch.leagueCalls) // 没有行就不归档
	require.True(t, summary.Stages[1].Success)

	var teamStats int64
	require.NoError(t, db.Model(&model.TeamStats{}).Count(&teamStats).Error)
	require.EqualValues(t, 0, teamStats)
}

func TestArchiveFailureDoesNotBlockLoad(t *testing.T) {
	ts := newTestServer(leaguePage, scorersPage, http.StatusOK)
	defer ts.Close()

	db := setupDB(t)
	arch := &fakeArchiver{err: errors.New("bucket unavailable")}
	p := NewPipelineService(db, logrus.New(), testConfig(ts.URL+"/table", ts.URL+"/scorers"), arch)

	summary := p.RunAll(context.Background())
	// 归档失败只记录，入库照常
	require.True(t, summary.Succeeded())
	require.False(t, summary.Stages[0].Archived)
	require.False(t, summary.Stages[1].Archived)
	require.Equal(t, 2, summary.Stages[0].RowsLoaded)
	require.Equal(t, 1, summary.Stages[1].RowsLoaded)
}
