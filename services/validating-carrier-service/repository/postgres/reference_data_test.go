package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	pgclient "github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/postgres"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

var ticketDate = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

// selectWhere matches a select whose first condition is cond; gorm may wrap it in parentheses
func selectWhere(table, cond string) string {
	return `SELECT \* FROM "` + table + `" WHERE \(?` + regexp.QuoteMeta(cond)
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	client, err := pgclient.NewWithConn(sqlDB, false)
	require.NoError(t, err)
	return client.GetDB(), mock
}

func TestGetSettlementPlans(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	eff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "country", "plan_code", "preferred_ticketing_method", "required_ticketing_method", "eff_date", "disc_date"}).
		AddRow("01HZ0000000000000000000001", "AU", "BSP", "E", "", eff, nil).
		AddRow("01HZ0000000000000000000002", "AU", "GTC", "", "", eff, nil)

	mock.ExpectQuery(selectWhere("settlement_plans", "country = $1")).
		WithArgs("AU", ticketDate, ticketDate).
		WillReturnRows(rows)

	plans, err := repo.GetSettlementPlans(context.Background(), "AU", ticketDate)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "BSP", plans[0].PlanCode)
	assert.Equal(t, model.TicketingMethodElectronic, plans[0].PreferredTicketingMethod)
	assert.Nil(t, plans[0].DiscDate)
	assert.Equal(t, "GTC", plans[1].PlanCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSettlementPlans_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "settlement_plans"`)).WillReturnError(dbErr)

	plans, err := repo.GetSettlementPlans(context.Background(), "AU", ticketDate)
	assert.Nil(t, plans)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to get settlement plans")
}

func TestGetCarrierParticipation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	rows := sqlmock.NewRows([]string{"id", "country", "host_id", "plan_code", "carrier", "preferred_ticketing_method", "required_ticketing_method", "eff_date"}).
		AddRow("01HZ0000000000000000000003", "BM", "1S", "BSP", "DL", "", "E", ticketDate)

	mock.ExpectQuery(selectWhere("carrier_participations", "country = $1 AND host_id = $2 AND plan_code = $3 AND carrier = $4")).
		WithArgs("BM", "1S", "BSP", "DL", ticketDate, ticketDate).
		WillReturnRows(rows)

	records, err := repo.GetCarrierParticipation(context.Background(), "BM", "1S", "BSP", "DL", ticketDate)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.TicketingMethodElectronic, records[0].RequiredTicketingMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCarrierParticipation_NotParticipating(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "carrier_participations"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	records, err := repo.GetCarrierParticipation(context.Background(), "BM", "1S", "BSP", "KL", ticketDate)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetPlanParticipants(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	rows := sqlmock.NewRows([]string{"carrier", "plan_code"}).
		AddRow("AF", "BSP").
		AddRow("DL", "BSP")
	mock.ExpectQuery(selectWhere("carrier_participations", "country = $1 AND host_id = $2 AND plan_code = $3")).
		WillReturnRows(rows)

	records, err := repo.GetPlanParticipants(context.Background(), "BM", "1S", "BSP", ticketDate)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "AF", records[0].Carrier)
}

func TestGetInterlineAgreements(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	rows := sqlmock.NewRows([]string{"country", "host_id", "validating_carrier", "participating_carrier", "agreement_type"}).
		AddRow("ZZ", "1S", "DL", "KL", "3PT").
		AddRow("ZZ", "1S", "DL", "AF", "STD")
	mock.ExpectQuery(selectWhere("interline_agreements", "country = $1 AND host_id = $2 AND validating_carrier = $3")).
		WithArgs("ZZ", "1S", "DL", ticketDate, ticketDate).
		WillReturnRows(rows)

	agreements, err := repo.GetInterlineAgreements(context.Background(), "ZZ", "1S", "DL", ticketDate)
	require.NoError(t, err)
	require.Len(t, agreements, 2)
	assert.Equal(t, model.AgreementThirdParty, agreements[0].AgreementType)
	assert.Equal(t, model.AgreementStandard, agreements[1].AgreementType)
}

func TestGetGeneralSalesAgents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	rows := sqlmock.NewRows([]string{"non_participating_carrier", "agent_carrier"}).
		AddRow("LH", "TG").
		AddRow("LH", "UA")
	mock.ExpectQuery(selectWhere("general_sales_agents", "country = $1 AND host_id = $2 AND plan_code = $3 AND non_participating_carrier = $4")).
		WithArgs("AU", "1S", "BSP", "LH", ticketDate, ticketDate).
		WillReturnRows(rows)

	agents, err := repo.GetGeneralSalesAgents(context.Background(), "1S", "AU", "BSP", "LH", ticketDate)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "TG", agents[0].AgentCarrier)
	assert.Equal(t, "UA", agents[1].AgentCarrier)
}

func TestGetNeutralValidatingCarriers_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReferenceDataRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "neutral_validating_carriers"`)).
		WillReturnError(errors.New("timeout"))

	_, err := repo.GetNeutralValidatingCarriers(context.Background(), "US", "1S", "ARC", ticketDate)
	assert.EqualError(t, err, "failed to get neutral validating carriers: timeout")
}

func TestNationExists(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"known nation", 1, true},
		{"unknown nation", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewReferenceDataRepository(db, logger.NoOpLogger())

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "nations" WHERE code = $1`)).
				WithArgs("AU", ticketDate, ticketDate).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			ok, err := repo.NationExists(context.Background(), "AU", ticketDate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSeed_SkipsWhenPresent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "settlement_plans"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	set := &model.ReferenceSet{SettlementPlans: []model.SettlementPlan{{Country: "AU", PlanCode: "BSP"}}}
	require.NoError(t, Seed(context.Background(), db, set, logger.NoOpLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_CountError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "settlement_plans"`)).
		WillReturnError(errors.New("relation does not exist"))

	err := Seed(context.Background(), db, &model.ReferenceSet{}, logger.NoOpLogger())
	assert.EqualError(t, err, "failed to count settlement plans: relation does not exist")
}

func TestSeed_EmptySetCommits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "settlement_plans"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, Seed(context.Background(), db, &model.ReferenceSet{}, logger.NoOpLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
