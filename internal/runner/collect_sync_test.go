package runner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MarcioBJunior/mlabs-collector/infrastructure/repository"
	repoMocks "github.com/MarcioBJunior/mlabs-collector/infrastructure/repository/mocks"
	"github.com/MarcioBJunior/mlabs-collector/internal/config"
	configMocks "github.com/MarcioBJunior/mlabs-collector/internal/config/mocks"
	"github.com/MarcioBJunior/mlabs-collector/internal/domain"
	"github.com/MarcioBJunior/mlabs-collector/internal/runner"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting"
	"github.com/MarcioBJunior/mlabs-collector/internal/usecases/collecting/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var sessionCookies = []domain.Cookie{{Name: "_mlabs_session", Value: "abc", Domain: ".mlabs.io", Path: "/"}}

func result(name string) domain.ReportResult {
	return domain.ReportResult{
		CollectedOn: "2025-07-10",
		ReportName:  name,
		Period:      domain.Period{Start: "2025-07-09", End: "2025-07-09"},
		Indicators:  []domain.Indicator{{Group: collecting.OverviewGroup, Name: "Alcance total", Value: 900}},
	}
}

// steppingClock avança um segundo a cada leitura
func steppingClock() func() time.Time {
	now := time.Date(2025, 7, 10, 6, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

type deps struct {
	collector *mocks.MockCollector
	factory   *mocks.MockSessionFactory
	session   *mocks.MockSession
	cookies   *configMocks.MockCookieStore
	repo      *repoMocks.MockReportResultRepository
}

func newService(t *testing.T) (*runner.CollectSyncService, deps) {
	ctrl := gomock.NewController(t)

	d := deps{
		collector: mocks.NewMockCollector(ctrl),
		factory:   mocks.NewMockSessionFactory(ctrl),
		session:   mocks.NewMockSession(ctrl),
		cookies:   configMocks.NewMockCookieStore(ctrl),
		repo:      repoMocks.NewMockReportResultRepository(ctrl),
	}

	cfg := &config.Config{Collect: config.Collect{RunBudget: time.Minute}}
	service := runner.NewCollectSyncService(d.collector, d.factory, d.cookies, d.repo, cfg,
		runner.WithClock(steppingClock()),
		runner.WithRunID(func() (string, error) { return "Ab12Cd", nil }),
	)

	return service, d
}

func TestCollectSyncService_RunSync(t *testing.T) {
	service, d := newService(t)

	gomock.InOrder(
		d.factory.EXPECT().NewSession(gomock.Any()).Return(d.session, nil),
		d.cookies.EXPECT().Load(gomock.Any()).Return(sessionCookies, nil),
		d.session.EXPECT().SetCookies(gomock.Any(), sessionCookies).Return(nil),
		d.collector.EXPECT().Collect(gomock.Any(), d.session, gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ collecting.Page, onResult collecting.ResultHandler) ([]domain.ReportOutcome, error) {
				facebook, instagram := result("Adenis Facebook"), result("Adenis Instagram")
				onResult(ctx, facebook)
				onResult(ctx, instagram)
				return []domain.ReportOutcome{
					{Target: domain.ReportTarget{Name: "Adenis Facebook"}, Result: &facebook},
					{Target: domain.ReportTarget{Name: "Facebook Tecnovix"}, Reason: domain.FailureNavigation, Err: errors.New("net::ERR_TIMED_OUT")},
					{Target: domain.ReportTarget{Name: "Adenis Instagram"}, Result: &instagram},
				}, nil
			}),
		d.session.EXPECT().Cookies(gomock.Any()).Return(sessionCookies, nil),
		d.cookies.EXPECT().Save(gomock.Any(), sessionCookies).Return(nil),
		d.session.EXPECT().Close().Return(nil),
	)

	d.repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)
	d.repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

	summary, err := service.RunSync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ab12Cd", summary.RunID)
	assert.Equal(t, 3, summary.ReportsFound)
	assert.Equal(t, 2, summary.ReportsCollected)
	assert.Equal(t, 1, summary.ReportsFailed)
	assert.Equal(t, 1, summary.ReportsSaved)
	assert.Len(t, summary.Results, 2)
	assert.Equal(t, []domain.CollectFailure{
		{Report: "Facebook Tecnovix", Reason: domain.FailureNavigation, Error: "net::ERR_TIMED_OUT"},
	}, summary.Failures)
	assert.Equal(t, "1.00s", summary.ExecutionTime)

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "Ab12Cd", status["last_run_id"])
	assert.Equal(t, 2, status["last_reports_collected"])
	assert.Equal(t, "", status["last_error"])
}

func TestCollectSyncService_RunSync_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(d deps)
		validate func(t *testing.T, summary *domain.CollectSummary, err error)
	}{
		{
			name: "Falha ao iniciar o navegador",
			setup: func(d deps) {
				d.factory.EXPECT().NewSession(gomock.Any()).Return(nil, errors.New("chrome not found"))
			},
			validate: func(t *testing.T, summary *domain.CollectSummary, err error) {
				assert.ErrorIs(t, err, runner.ErrBrowser)
				assert.ErrorContains(t, err, "chrome not found")
				require.NotNil(t, summary)
				assert.NotEmpty(t, summary.ExecutionTime)
			},
		},
		{
			name: "Falha na autenticação não salva cookies",
			setup: func(d deps) {
				d.factory.EXPECT().NewSession(gomock.Any()).Return(d.session, nil)
				d.cookies.EXPECT().Load(gomock.Any()).Return(nil, nil)
				d.collector.EXPECT().Collect(gomock.Any(), d.session, gomock.Any()).
					Return(nil, &collecting.AuthenticationError{CurrentURL: "https://www.mlabs.com.br/login"})
				d.session.EXPECT().Close().Return(nil)
			},
			validate: func(t *testing.T, summary *domain.CollectSummary, err error) {
				assert.ErrorIs(t, err, collecting.ErrAuthentication)
				require.NotNil(t, summary)
				assert.Zero(t, summary.ReportsFound)
				assert.Empty(t, summary.Results)
			},
		},
		{
			name: "Cookies inválidos não impedem a coleta",
			setup: func(d deps) {
				d.factory.EXPECT().NewSession(gomock.Any()).Return(d.session, nil)
				d.cookies.EXPECT().Load(gomock.Any()).Return(nil, errors.New("cookies: JSON inválido"))
				d.collector.EXPECT().Collect(gomock.Any(), d.session, gomock.Any()).Return([]domain.ReportOutcome{}, nil)
				d.session.EXPECT().Cookies(gomock.Any()).Return(nil, errors.New("target closed"))
				d.session.EXPECT().Close().Return(errors.New("already closed"))
			},
			validate: func(t *testing.T, summary *domain.CollectSummary, err error) {
				require.NoError(t, err)
				assert.Zero(t, summary.ReportsFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, d := newService(t)
			tt.setup(d)

			summary, err := service.RunSync(context.Background())
			tt.validate(t, summary, err)

			if err != nil {
				assert.Equal(t, err.Error(), service.GetStatus()["last_error"])
			}
		})
	}
}

func TestCollectSyncService_SingleRun(t *testing.T) {
	service, d := newService(t)

	d.factory.EXPECT().NewSession(gomock.Any()).Return(d.session, nil)
	d.cookies.EXPECT().Load(gomock.Any()).Return(nil, nil)
	d.collector.EXPECT().Collect(gomock.Any(), d.session, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ collecting.Page, _ collecting.ResultHandler) ([]domain.ReportOutcome, error) {
			_, err := service.RunSync(ctx)
			assert.ErrorIs(t, err, runner.ErrSyncRunning)
			assert.False(t, service.TriggerManualSync())
			assert.Equal(t, true, service.GetStatus()["sync_running"])
			return []domain.ReportOutcome{}, nil
		})
	d.session.EXPECT().Cookies(gomock.Any()).Return(nil, nil)
	d.cookies.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	d.session.EXPECT().Close().Return(nil)

	_, err := service.RunSync(context.Background())
	require.NoError(t, err)
}

func TestCollectSyncService_TriggerManualSync(t *testing.T) {
	service, d := newService(t)

	done := make(chan struct{})
	d.factory.EXPECT().NewSession(gomock.Any()).DoAndReturn(func(context.Context) (collecting.Session, error) {
		defer close(done)
		return nil, errors.New("chrome not found")
	})

	assert.True(t, service.TriggerManualSync())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("coleta manual não foi iniciada")
	}

	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCollectSyncService_MemoryRepository(t *testing.T) {
	ctrl := gomock.NewController(t)

	collector := mocks.NewMockCollector(ctrl)
	factory := mocks.NewMockSessionFactory(ctrl)
	session := mocks.NewMockSession(ctrl)
	repo := repository.NewMemoryReportRepository()

	factory.EXPECT().NewSession(gomock.Any()).Return(session, nil).Times(2)
	session.EXPECT().Close().Return(nil).Times(2)
	collector.EXPECT().Collect(gomock.Any(), session, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ collecting.Page, onResult collecting.ResultHandler) ([]domain.ReportOutcome, error) {
			r := result("Adenis Facebook")
			onResult(ctx, r)
			return []domain.ReportOutcome{{Result: &r}}, nil
		}).Times(2)

	service := runner.NewCollectSyncService(collector, factory, nil, repo, &config.Config{})

	for i := 0; i < 2; i++ {
		summary, err := service.RunSync(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, summary.ReportsSaved)
	}

	stored, err := repo.ListByReport(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
