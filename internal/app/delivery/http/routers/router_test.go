package routers

import (
	"bytes"
	"context"
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/delivery/http/controllers"
	"homevisit-service/internal/app/delivery/http/middlewares"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/addresses"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/core/assignments"
	"homevisit-service/internal/app/services/core/auth"
	"homevisit-service/internal/app/services/core/catalog"
	"homevisit-service/internal/app/services/core/earnings"
	"homevisit-service/internal/app/services/core/feedbacks"
	"homevisit-service/internal/app/services/core/payments"
	"homevisit-service/internal/app/services/core/roles"
	"homevisit-service/internal/app/services/core/users"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/app/services/shared/jwtmanager"
	"homevisit-service/internal/app/services/shared/locker"
	"homevisit-service/internal/app/services/shared/payment_gateway"
	"homevisit-service/internal/app/services/shared/storage"
	"homevisit-service/internal/app/services/shared/transaction"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	router *chi.Mux
	users  contracts.UserUsecase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	cfg := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			Version:                    "v1",
			RequestTimeoutInSeconds:    5,
			RequestBodyLimitInMegabyte: 1,
			LoginMaxAttemptsPerMinute:  100,
			LoginBlockTimeInMinutes:    1,
		},
		JWT:     config.AppJWT{Secret: "router-test-secret", Issuer: "homevisit-test", ExpTimeInHour: 1},
		Fee:     config.AppFee{PlatformPercent: 0.15, DoctorPercent: 0.70, AdminPercent: 0.15},
		Payment: config.AppPayment{DefaultCurrency: "INR", SettlementLockTTLInSeconds: 30, GatewayRequestTimeoutSeconds: 5},
		Minio:   config.AppMinio{PresignedURLExpiryInMinutes: 15},
	}

	db := database.NewMemoryDB()
	transactor := transaction.NewMemoryTransactor(db)
	publisher := events.NewLoggingPublisher(log)

	identityRepo := auth.NewIdentityMemoryRepository(db)
	userRepo := users.NewUserMemoryRepository(db)
	addressRepo := addresses.NewAddressMemoryRepository(db)
	catalogRepo := catalog.NewCatalogMemoryRepository(db)
	appointmentRepo := appointments.NewAppointmentMemoryRepository(db)
	paymentRepo := payments.NewPaymentMemoryRepository(db)
	earningsRepo := earnings.NewEarningsMemoryRepository(db)
	feedbackRepo := feedbacks.NewFeedbackMemoryRepository(db)

	jwtManager, err := jwtmanager.NewJWTManager(cfg, log)
	require.NoError(t, err)
	identityProvider := auth.NewLocalIdentityProvider(identityRepo, jwtManager, log)

	enforcer, err := roles.NewEnforcer(BasePath(cfg))
	require.NoError(t, err)
	roleUsecase := roles.NewCasbinRoleUsecase(enforcer)

	catalogUsecase := catalog.NewCatalogUsecase(catalogRepo, nil, time.Minute, cfg.Payment.DefaultCurrency, log)
	_, err = catalogUsecase.Seed(context.Background())
	require.NoError(t, err)

	userUsecase := users.NewUserUsecase(userRepo, identityProvider, log)
	earningsUsecase := earnings.NewEarningsUsecase(appointmentRepo, paymentRepo, earningsRepo, userRepo, log)

	router := chi.NewRouter()
	SetupRoutes(router, cfg, middlewares.NewMiddlewares(log, auth.NewIdentityGate(identityProvider), roleUsecase, cfg), &Controllers{
		Auth:        controllers.NewAuthController(log, auth.NewAuthUsecase(identityProvider, log)),
		Catalog:     controllers.NewCatalogController(log, catalogUsecase),
		User:        controllers.NewUserController(log, userUsecase),
		Address:     controllers.NewAddressController(log, addresses.NewAddressUsecase(transactor, addressRepo, log)),
		Appointment: controllers.NewAppointmentController(log, appointments.NewAppointmentUsecase(transactor, appointmentRepo, addressRepo, catalogRepo, publisher, false, log)),
		Assignment:  controllers.NewAssignmentController(log, assignments.NewAssignmentUsecase(transactor, appointmentRepo, userRepo, addressRepo, catalogRepo, publisher, log)),
		Payment: controllers.NewPaymentController(log, payments.NewPaymentUsecase(
			transactor, appointmentRepo, paymentRepo, earningsRepo,
			payment_gateway.NewApprovingGateway(log), locker.NewMemoryLockService(),
			storage.NewDisabledReceiptArchive(), publisher, cfg, log,
		)),
		Feedback:   controllers.NewFeedbackController(log, feedbacks.NewFeedbackUsecase(transactor, appointmentRepo, feedbackRepo, publisher, log)),
		Earnings:   controllers.NewEarningsController(log, earningsUsecase),
		Superadmin: controllers.NewSuperadminController(log, roleUsecase),
	})

	return &testServer{router: router, users: userUsecase}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) call(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &payload)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.HeaderBearerPrefix+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var out envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	return rr.Code, out
}

func (s *testServer) provision(t *testing.T, email, role string) string {
	t.Helper()
	root := &models.Principal{SubjectID: "root", Role: constvars.RoleSuperadmin}
	_, err := s.users.CreateUser(context.Background(), root, &requests.CreateUser{
		Email:       email,
		Password:    "Secret#123",
		DisplayName: "Test " + role,
		Role:        role,
	})
	require.NoError(t, err)

	code, resp := s.call(t, http.MethodPost, "/auth/login", "", requests.Login{Email: email, Password: "Secret#123"})
	require.Equal(t, http.StatusOK, code, resp.Message)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	return login.Token
}

func TestRouter_PublicCatalog(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.call(t, http.MethodGet, "/services", "", nil)
	require.Equal(t, http.StatusOK, code)

	var services []models.Service
	require.NoError(t, json.Unmarshal(resp.Data, &services))
	assert.Len(t, services, 5)

	code, _ = s.call(t, http.MethodGet, "/services/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.call(t, http.MethodGet, "/offers", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_AuthAndRoles(t *testing.T) {
	s := newTestServer(t)
	patient := s.provision(t, "patient@example.com", constvars.RolePatient)
	admin := s.provision(t, "admin@example.com", constvars.RoleAdmin)

	code, _ := s.call(t, http.MethodPost, "/auth/login", "", requests.Login{Email: "patient@example.com", Password: "Wrong#1234"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.call(t, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := s.call(t, http.MethodGet, "/users/me", patient, nil)
	require.Equal(t, http.StatusOK, code)
	var me models.User
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, "patient@example.com", me.Email)

	code, _ = s.call(t, http.MethodGet, "/doctor/requests", patient, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.call(t, http.MethodGet, "/admin/appointments", patient, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.call(t, http.MethodGet, "/admin/appointments", admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.call(t, http.MethodGet, "/superadmin/overview", admin, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.call(t, http.MethodPost, "/admin/users", admin, requests.CreateUser{
		Email:       "other-admin@example.com",
		Password:    "Secret#123",
		DisplayName: "Other Admin",
		Role:        constvars.RoleAdmin,
	})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRouter_HomeVisitFlow(t *testing.T) {
	s := newTestServer(t)
	patient := s.provision(t, "patient@example.com", constvars.RolePatient)
	doctor := s.provision(t, "doctor@example.com", constvars.RoleDoctor)

	code, resp := s.call(t, http.MethodGet, "/services", "", nil)
	require.Equal(t, http.StatusOK, code)
	var services []models.Service
	require.NoError(t, json.Unmarshal(resp.Data, &services))
	var checkup models.Service
	for _, service := range services {
		if service.ExternalID == "svc-general-checkup" {
			checkup = service
		}
	}
	require.NotEmpty(t, checkup.ID)

	code, resp = s.call(t, http.MethodPost, "/patient/addresses", patient, requests.CreateAddress{
		Line1: "12 Lake Road", City: "Pune", State: "MH", Zip: "411001",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var address models.Address
	require.NoError(t, json.Unmarshal(resp.Data, &address))

	code, resp = s.call(t, http.MethodPost, "/patient/appointments", patient, requests.CreateAppointment{
		ServiceID:         checkup.ID,
		AddressID:         address.ID,
		RequestedDate:     time.Now().AddDate(0, 0, 3).Format(constvars.DateFormat),
		RequestedTimeSlot: "10:00-11:00",
	})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var appointment models.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &appointment))
	assert.Equal(t, 1500.0, appointment.EstimatedCost)
	assert.Equal(t, constvars.AppointmentStatusPendingAssignment, appointment.Status)

	code, resp = s.call(t, http.MethodGet, "/doctor/requests", doctor, nil)
	require.Equal(t, http.StatusOK, code)
	var available []models.AvailableAppointment
	require.NoError(t, json.Unmarshal(resp.Data, &available))
	require.Len(t, available, 1)
	assert.Equal(t, checkup.Name, available[0].ServiceName)

	code, _ = s.call(t, http.MethodPost, fmt.Sprintf("/doctor/requests/%s/accept", appointment.ID), doctor, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp = s.call(t, http.MethodPost, fmt.Sprintf("/doctor/requests/%s/accept", appointment.ID), doctor, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, constvars.ErrClientAppointmentAlreadyAssigned, resp.Message)

	code, _ = s.call(t, http.MethodPut, fmt.Sprintf("/doctor/appointments/%s/status", appointment.ID), doctor,
		requests.AdvanceAppointmentStatus{Status: constvars.AppointmentStatusCompleted})
	require.Equal(t, http.StatusOK, code)

	code, resp = s.call(t, http.MethodPost, fmt.Sprintf("/patient/appointments/%s/payments", appointment.ID), patient,
		requests.SettlePayment{Amount: 1500, Method: "card"})
	require.Equal(t, http.StatusOK, code, resp.Message)
	var settled struct {
		PaymentStatus string  `json:"payment_status"`
		DoctorFee     float64 `json:"doctor_fee_amount"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &settled))
	assert.Equal(t, constvars.PaymentStatusPaid, settled.PaymentStatus)
	assert.Equal(t, 1050.0, settled.DoctorFee)

	code, resp = s.call(t, http.MethodPost, fmt.Sprintf("/patient/appointments/%s/payments", appointment.ID), patient,
		requests.SettlePayment{Amount: 1500, Method: "card"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, constvars.ErrClientAlreadySettled, resp.Message)

	code, _ = s.call(t, http.MethodPost, fmt.Sprintf("/patient/appointments/%s/feedback", appointment.ID), patient,
		requests.SubmitFeedback{Rating: 5, Comments: "on time"})
	require.Equal(t, http.StatusCreated, code)

	code, resp = s.call(t, http.MethodGet, "/doctor/earnings", doctor, nil)
	require.Equal(t, http.StatusOK, code)
	var earned struct {
		TotalEarnings float64 `json:"total_earnings"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &earned))
	assert.Equal(t, 1050.0, earned.TotalEarnings)
}
