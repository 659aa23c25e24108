package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/metrics"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
	accessService "github.com/skillsphere/skillsphere-backend-go/internal/service/access"
	auditService "github.com/skillsphere/skillsphere-backend-go/internal/service/audit"
	employeeService "github.com/skillsphere/skillsphere-backend-go/internal/service/employee"
	"github.com/stretchr/testify/assert"
)

func createTestEmployeeHandler() EmployeeHandler {
	employeeRepo := postgresql.NewEmployeeRepository(testHandlerDB)
	userRepo := postgresql.NewUserRepository(testHandlerDB)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(testHandlerDB)
	projectRepo := postgresql.NewAssignmentRepository(testHandlerDB)
	engine := accessService.NewEngine(employeeRepo, projectRepo, metrics.NewMetrics())
	auditSvc := auditService.NewAuditService(postgresql.NewAuditRepository(testHandlerDB), metrics.NewMetrics())
	employeeSvc := employeeService.NewEmployeeService(testHandlerDB, employeeRepo, userRepo, refreshTokenRepo, engine, auditSvc, nil)

	return NewEmployeeHandler(employeeSvc)
}

// updateRequestFor builds a PUT request routed at the given employee id.
func updateRequestFor(ctx context.Context, id string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/employees/"+id, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

// Test UpdateEmployee - band key in the body is rejected before any service work
func TestEmployeeHandler_UpdateEmployee_BandKeyRejected(t *testing.T) {
	ctx := context.Background()
	handlerTestInit()

	handler := createTestEmployeeHandler()

	req := updateRequestFor(ctx, "01890000-0000-7000-8000-000000000000", []byte(`{"band":"C"}`))
	w := httptest.NewRecorder()

	// Act
	handler.UpdateEmployee(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)

	var resp map[string]interface{}
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.False(t, resp["success"].(bool))
}

// Test UpdateEmployee - pathway goes through the same gate as band
func TestEmployeeHandler_UpdateEmployee_PathwayKeyRejected(t *testing.T) {
	ctx := context.Background()
	handlerTestInit()

	handler := createTestEmployeeHandler()

	req := updateRequestFor(ctx, "01890000-0000-7000-8000-000000000000", []byte(`{"pathway":"Backend Engineering","phone_number":"+628111222333"}`))
	w := httptest.NewRecorder()

	// Act
	handler.UpdateEmployee(w, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// Test UpdateEmployee - Invalid JSON
func TestEmployeeHandler_UpdateEmployee_InvalidJSON(t *testing.T) {
	ctx := context.Background()
	handlerTestInit()

	handler := createTestEmployeeHandler()

	req := updateRequestFor(ctx, "01890000-0000-7000-8000-000000000000", []byte("invalid json"))
	w := httptest.NewRecorder()

	// Act
	handler.UpdateEmployee(w, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
