package postgresql_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/employee"
	"github.com/skillsphere/skillsphere-backend-go/internal/domain/user"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
	"github.com/skillsphere/skillsphere-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	testDB    *database.DB
	testSetup *TestDatabaseSetup
)

func init() {
	var err error
	testSetup, err = NewTestDatabase()
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
	testDB = testSetup.DB
}

// Setup function to clean tables before a test
func setupTestData(t *testing.T) {
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

// Cleanup function to reset data after a test
func cleanupTestData(t *testing.T) {
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

// Helper to insert an employee row for testing
func createTestEmployee(t *testing.T, ctx context.Context, code string) string {
	var employeeID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (id, employee_code, full_name, email, department, capability, band, delivery_unit, joining_date, created_at, updated_at)
		VALUES (uuidv7(), $1, 'Repo Test Employee', $2, 'Engineering', 'Backend', 'B', 'DU-North', '2023-01-09', NOW(), NOW())
		RETURNING id
	`, code, fmt.Sprintf("%s@example.com", code)).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

// Helper to insert a user row for testing
func createTestUser(t *testing.T, ctx context.Context, email string) user.User {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hashedStr := string(hashedPassword)

	var newUser user.User
	err := testDB.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, role, active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, 'employee', true, NOW(), NOW())
		RETURNING id, email, password_hash, role, employee_id, service_account, active, created_at, updated_at
	`, email, hashedStr).Scan(
		&newUser.ID, &newUser.Email, &newUser.PasswordHash, &newUser.Role,
		&newUser.EmployeeID, &newUser.ServiceAccount, &newUser.Active,
		&newUser.CreatedAt, &newUser.UpdatedAt,
	)
	require.NoError(t, err)
	return newUser
}

// ===== USER REPOSITORY TESTS =====

func TestUserRepository_Create_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("securepass"), bcrypt.DefaultCost)
	hashedStr := string(hashedPassword)

	newUser := user.User{
		Email:        "newuser@example.com",
		PasswordHash: &hashedStr,
		Role:         user.RoleEmployee,
		Active:       true,
	}

	created, err := userRepo.Create(ctx, newUser)

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, newUser.Email, created.Email)
	assert.Equal(t, user.RoleEmployee, created.Role)
	assert.True(t, created.Active)
	assert.False(t, created.ServiceAccount)
	assert.NotNil(t, created.CreatedAt)
	assert.NotNil(t, created.UpdatedAt)
}

func TestUserRepository_GetByEmail_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	testUser := createTestUser(t, ctx, "getbyemail@example.com")

	retrieved, err := userRepo.GetByEmail(ctx, "getbyemail@example.com")

	assert.NoError(t, err)
	assert.Equal(t, testUser.ID, retrieved.ID)
	assert.Equal(t, testUser.Email, retrieved.Email)
	assert.Equal(t, testUser.Role, retrieved.Role)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	_, err := userRepo.GetByEmail(ctx, "notfound@example.com")

	assert.Error(t, err)
	assert.Equal(t, user.ErrUserNotFound, err)
}

func TestUserRepository_GetByID_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	testUser := createTestUser(t, ctx, "getbyid@example.com")

	retrieved, err := userRepo.GetByID(ctx, testUser.ID)

	assert.NoError(t, err)
	assert.Equal(t, testUser.ID, retrieved.ID)
	assert.Equal(t, testUser.Email, retrieved.Email)
}

func TestUserRepository_GetByEmployeeID_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	employeeID := createTestEmployee(t, ctx, "EMP-7001")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hashedStr := string(hashedPassword)
	created, err := userRepo.Create(ctx, user.User{
		Email:        "linked@example.com",
		PasswordHash: &hashedStr,
		Role:         user.RoleEmployee,
		EmployeeID:   &employeeID,
		Active:       true,
	})
	require.NoError(t, err)

	retrieved, err := userRepo.GetByEmployeeID(ctx, employeeID)

	assert.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	require.NotNil(t, retrieved.EmployeeID)
	assert.Equal(t, employeeID, *retrieved.EmployeeID)
}

func TestUserRepository_UpdateRole_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	testUser := createTestUser(t, ctx, "rolechange@example.com")

	err := userRepo.UpdateRole(ctx, user.UpdateUserRoleRequest{ID: testUser.ID, Role: string(user.RoleHR)})

	assert.NoError(t, err)

	updated, err := userRepo.GetByID(ctx, testUser.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.RoleHR, updated.Role)
}

func TestUserRepository_UpdateRole_NotFound(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	fakeID := "00000000-0000-0000-0000-000000000000"
	err := userRepo.UpdateRole(ctx, user.UpdateUserRoleRequest{ID: fakeID, Role: string(user.RoleHR)})

	assert.Error(t, err)
	assert.Equal(t, user.ErrUserNotFound, err)
}

func TestUserRepository_Deactivate_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	userRepo := postgresql.NewUserRepository(testDB)

	testUser := createTestUser(t, ctx, "deactivate@example.com")

	err := userRepo.Deactivate(ctx, testUser.ID)

	assert.NoError(t, err)

	updated, err := userRepo.GetByID(ctx, testUser.ID)
	assert.NoError(t, err)
	assert.False(t, updated.Active)
}

// ===== EMPLOYEE REPOSITORY TESTS =====

func TestEmployeeRepository_Create_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	baseSalary := decimal.NewFromInt(85000)
	newEmployee := employee.Employee{
		EmployeeCode: "EMP-8001",
		FullName:     "Created Employee",
		Email:        "created@example.com",
		Department:   "Engineering",
		Capability:   "Backend",
		Band:         employee.BandA,
		Team:         "Platform",
		DeliveryUnit: "DU-North",
		JoiningDate:  time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		SalaryBand:   strPtr("S1"),
		BaseSalary:   &baseSalary,
		Active:       true,
	}

	created, err := employeeRepo.Create(ctx, newEmployee)

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, newEmployee.EmployeeCode, created.EmployeeCode)
	assert.Equal(t, employee.BandA, created.Band)
	assert.Equal(t, "Platform", created.Team)
	assert.True(t, created.Active)
	require.NotNil(t, created.BaseSalary)
	assert.True(t, baseSalary.Equal(*created.BaseSalary))
}

func TestEmployeeRepository_GetByEmployeeCode_NotFound(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	_, err := employeeRepo.GetByEmployeeCode(ctx, "EMP-MISSING")

	assert.Error(t, err)
	assert.Equal(t, employee.ErrEmployeeNotFound, err)
}

func TestEmployeeRepository_Update_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	employeeID := createTestEmployee(t, ctx, "EMP-8002")

	updateReq := employee.UpdateEmployeeRequest{
		Department: strPtr("Design"),
		Team:       strPtr("Mobile"),
	}

	err := employeeRepo.Update(ctx, employeeID, updateReq)

	assert.NoError(t, err)

	updated, err := employeeRepo.GetByID(ctx, employeeID)
	assert.NoError(t, err)
	assert.Equal(t, "Design", updated.Department)
	assert.Equal(t, "Mobile", updated.Team)
	// Untouched fields stay intact
	assert.Equal(t, "Backend", updated.Capability)
}

func TestEmployeeRepository_List_FilterByBand(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	createTestEmployee(t, ctx, "EMP-8003")
	createTestEmployee(t, ctx, "EMP-8004")

	employees, total, err := employeeRepo.List(ctx, employee.EmployeeFilter{
		Band:  "B",
		Page:  1,
		Limit: 20,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, employees, 2)

	employees, total, err = employeeRepo.List(ctx, employee.EmployeeFilter{
		Band:  "L2",
		Page:  1,
		Limit: 20,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, employees)
}

func TestEmployeeRepository_ListByLineManager_Success(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	managerID := createTestEmployee(t, ctx, "EMP-8005")
	reportID := createTestEmployee(t, ctx, "EMP-8006")
	_, err := testDB.Exec(ctx, `UPDATE employees SET line_manager_id = $1 WHERE id = $2`, managerID, reportID)
	require.NoError(t, err)

	reports, err := employeeRepo.ListByLineManager(ctx, managerID)

	assert.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, reportID, reports[0].ID)
}

// UpsertByCode refreshes HRMS-owned fields but must not overwrite band or
// pathway on an existing row; those belong to the movement workflow.
func TestEmployeeRepository_UpsertByCode_PreservesBand(t *testing.T) {
	defer cleanupTestData(t)
	setupTestData(t)

	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(testDB)

	first := employee.Employee{
		EmployeeCode: "EMP-8007",
		FullName:     "Sync Employee",
		Email:        "sync@example.com",
		Department:   "Engineering",
		Capability:   "Backend",
		Band:         employee.BandB,
		DeliveryUnit: "DU-North",
		JoiningDate:  time.Date(2022, 6, 13, 0, 0, 0, 0, time.UTC),
		Active:       true,
	}

	created, inserted, err := employeeRepo.UpsertByCode(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, employee.BandB, created.Band)

	// Second sync pass carries a different band and department
	second := first
	second.Band = employee.BandC
	second.Department = "Platform Engineering"

	updated, inserted, err := employeeRepo.UpsertByCode(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Platform Engineering", updated.Department)
	// Band survives the sync
	assert.Equal(t, employee.BandB, updated.Band)
}

// ===== HELPER FUNCTIONS =====

func strPtr(s string) *string {
	return &s
}
