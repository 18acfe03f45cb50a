package authaudit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sales-briefing/internal/common/database"
	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func setup(t *testing.T, db *database.PostgresClient) (*gin.Engine, *Service) {
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)
	svc := NewService(ServiceDependencies{Logger: log, DB: db}, DefaultConfig())

	r := gin.New()
	NewHandler(svc, log).Register(r)
	return r, svc
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, Route, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "briefing-web/1.0")
	req.RemoteAddr = "192.0.2.10:52100"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func drain(t *testing.T, svc *Service) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, svc.Recorder().Drain(ctx))
}

// ==========================
// Tests
// ==========================

func TestHandle_RecordsEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO auth_logs").
		WithArgs(sqlmock.AnyArg(), nil, "login_failed", "elena@acme.example", false,
			"Invalid login credentials", "192.0.2.10", "briefing-web/1.0", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r, svc := setup(t, database.NewPostgresFromDB(db))

	w := post(r, `{"eventType":"login_failed","email":"elena@acme.example","success":false,"errorMessage":"Invalid login credentials"}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	var out Output
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Accepted)
	_, err = uuid.Parse(out.ID)
	assert.NoError(t, err)

	drain(t, svc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_NullOptionalFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO auth_logs").
		WithArgs(sqlmock.AnyArg(), "user-42", "signup_success", "ana@acme.example", true,
			nil, "192.0.2.10", "briefing-web/1.0", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r, svc := setup(t, database.NewPostgresFromDB(db))

	w := post(r, `{"eventType":"signup_success","email":"ana@acme.example","success":true,"userId":"user-42","errorMessage":null}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	drain(t, svc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_StoreFailureStillAccepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO auth_logs").WillReturnError(fmt.Errorf("relation \"auth_logs\" does not exist"))

	r, svc := setup(t, database.NewPostgresFromDB(db))

	w := post(r, `{"eventType":"login_error","email":"elena@acme.example","success":false}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	drain(t, svc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandle_NoDatabaseLogsOnly(t *testing.T) {
	r, svc := setup(t, nil)

	w := post(r, `{"eventType":"login_success","email":"elena@acme.example","success":true}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	drain(t, svc)
}

func TestHandle_InvalidEvents(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown event type", `{"eventType":"password_reset","email":"a@b.co","success":true}`},
		{"missing email", `{"eventType":"login_success","success":true}`},
		{"success wrong type", `{"eventType":"login_success","email":"a@b.co","success":"yes"}`},
		{"unknown field", `{"eventType":"login_success","email":"a@b.co","success":true,"password":"x"}`},
		{"malformed", `{"eventType":`},
		{"array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			r, svc := setup(t, database.NewPostgresFromDB(db))

			w := post(r, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body errors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, string(errors.ErrCodeValidation), body.Code)

			drain(t, svc)
			assert.NoError(t, mock.ExpectationsWereMet(), "nothing is written")
		})
	}
}

func TestRecorder_DrainHonorsContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO auth_logs").
		WillDelayFor(300 * time.Millisecond).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r, svc := setup(t, database.NewPostgresFromDB(db))
	post(r, `{"eventType":"login_success","email":"a@b.co","success":true}`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, svc.Recorder().Drain(ctx), context.DeadlineExceeded)

	drain(t, svc)
}
