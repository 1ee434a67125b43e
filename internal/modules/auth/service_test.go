package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"upasthit/internal/domain"
	"upasthit/internal/pkg/token"
)

// Mock student store implementing the interface
type mockStudentStore struct {
	mock.Mock
}

func (m *mockStudentStore) GetByRollNo(ctx context.Context, rollNo int64) (*domain.Account, error) {
	args := m.Called(ctx, rollNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockStudentStore) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockStudentStore) SetRefreshToken(ctx context.Context, id int64, hash string, expiresAt time.Time) error {
	args := m.Called(ctx, id, hash, expiresAt)
	return args.Error(0)
}

func (m *mockStudentStore) ClearRefreshToken(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock teacher store
type mockTeacherStore struct {
	mock.Mock
}

func (m *mockTeacherStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockTeacherStore) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockTeacherStore) SetRefreshToken(ctx context.Context, id int64, hash string, expiresAt time.Time) error {
	args := m.Called(ctx, id, hash, expiresAt)
	return args.Error(0)
}

func (m *mockTeacherStore) ClearRefreshToken(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testCodec() *token.Codec {
	return token.NewCodec("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func studentAccount(t *testing.T, password string) *domain.Account {
	return &domain.Account{
		ID:           2401,
		Name:         "Krishna Patel",
		Role:         domain.RoleStudent,
		Class:        "SE",
		Div:          "A",
		PasswordHash: hashPassword(t, password),
	}
}

func TestService_Login_StudentSuccess(t *testing.T) {
	students := new(mockStudentStore)
	teachers := new(mockTeacherStore)
	codec := testCodec()

	students.On("GetByRollNo", mock.Anything, int64(2401)).Return(studentAccount(t, "Password123"), nil)
	students.On("SetRefreshToken", mock.Anything, int64(2401), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	service := NewService(students, teachers, codec)

	result, err := service.Login(context.Background(), SignInRequest{RollNumber: 2401, Password: "Password123"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.RoleStudent, result.Account.Role)
	assert.Empty(t, result.Account.PasswordHash)

	// Both tokens verify against their own secrets and carry the account.
	accessClaims, err := codec.VerifyAccess(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(2401), accessClaims.AccountID)

	refreshClaims, err := codec.VerifyRefresh(result.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, refreshClaims.Role)

	// The persisted value is the hash of the issued refresh token.
	students.AssertCalled(t, "SetRefreshToken", mock.Anything, int64(2401), token.Hash(result.RefreshToken), mock.AnythingOfType("time.Time"))
	teachers.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestService_Login_TeacherByEmail(t *testing.T) {
	students := new(mockStudentStore)
	teachers := new(mockTeacherStore)

	acct := &domain.Account{
		ID:           101,
		Name:         "Dr. Krishna Singal",
		Email:        "krishna.singal@ltce.in",
		Role:         domain.RoleTeacher,
		PasswordHash: hashPassword(t, "Teacher123"),
	}
	teachers.On("GetByEmail", mock.Anything, "krishna.singal@ltce.in").Return(acct, nil)
	teachers.On("SetRefreshToken", mock.Anything, int64(101), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	service := NewService(students, teachers, testCodec())

	result, err := service.Login(context.Background(), SignInRequest{Email: "Krishna.Singal@ltce.in ", Password: "Teacher123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, result.Account.Role)
	teachers.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	students := new(mockStudentStore)
	teachers := new(mockTeacherStore)

	students.On("GetByRollNo", mock.Anything, int64(2401)).Return(studentAccount(t, "Password123"), nil)

	service := NewService(students, teachers, testCodec())

	result, err := service.Login(context.Background(), SignInRequest{RollNumber: 2401, Password: "wrong"})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// A failed login must not touch the session row.
	students.AssertNotCalled(t, "SetRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Login_AccountNotFound(t *testing.T) {
	students := new(mockStudentStore)
	teachers := new(mockTeacherStore)

	students.On("GetByRollNo", mock.Anything, int64(9999)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(students, teachers, testCodec())

	_, err := service.Login(context.Background(), SignInRequest{RollNumber: 9999, Password: "whatever"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_Login_NoIdentifier(t *testing.T) {
	service := NewService(new(mockStudentStore), new(mockTeacherStore), testCodec())

	_, err := service.Login(context.Background(), SignInRequest{Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func activeSession(acct *domain.Account, refreshToken string, expiresAt time.Time) *domain.Account {
	hash := token.Hash(refreshToken)
	acct.RefreshTokenHash = &hash
	acct.RefreshTokenExpiresAt = &expiresAt
	return acct
}

func TestService_Refresh_Success(t *testing.T) {
	students := new(mockStudentStore)
	teachers := new(mockTeacherStore)
	codec := testCodec()

	refresh, err := codec.IssueRefresh(2401, domain.RoleStudent)
	require.NoError(t, err)

	acct := activeSession(studentAccount(t, "x"), refresh, time.Now().Add(time.Hour))
	students.On("GetAccount", mock.Anything, int64(2401)).Return(acct, nil)

	service := NewService(students, teachers, codec)

	access, err := service.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := codec.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, int64(2401), claims.AccountID)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}

func TestService_Refresh_MissingToken(t *testing.T) {
	service := NewService(new(mockStudentStore), new(mockTeacherStore), testCodec())

	_, err := service.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestService_Refresh_GarbageToken(t *testing.T) {
	service := NewService(new(mockStudentStore), new(mockTeacherStore), testCodec())

	_, err := service.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Refresh_NoActiveSession(t *testing.T) {
	students := new(mockStudentStore)
	codec := testCodec()

	refresh, err := codec.IssueRefresh(2401, domain.RoleStudent)
	require.NoError(t, err)

	// Row exists but carries no session: logged out or never logged in.
	students.On("GetAccount", mock.Anything, int64(2401)).Return(studentAccount(t, "x"), nil)

	service := NewService(students, new(mockTeacherStore), codec)

	_, err = service.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Refresh_SupersededToken(t *testing.T) {
	students := new(mockStudentStore)
	codec := testCodec()

	oldRefresh, err := codec.IssueRefresh(2401, domain.RoleStudent)
	require.NoError(t, err)
	newRefresh, err := codec.IssueRefresh(2401, domain.RoleStudent)
	require.NoError(t, err)

	// A later login overwrote the hash; the old token no longer matches.
	acct := activeSession(studentAccount(t, "x"), newRefresh, time.Now().Add(time.Hour))
	students.On("GetAccount", mock.Anything, int64(2401)).Return(acct, nil)

	service := NewService(students, new(mockTeacherStore), codec)

	_, err = service.Refresh(context.Background(), oldRefresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Refresh_PersistedExpiryPassed(t *testing.T) {
	students := new(mockStudentStore)
	codec := testCodec()

	refresh, err := codec.IssueRefresh(2401, domain.RoleStudent)
	require.NoError(t, err)

	// Token itself still verifies, but the stored expiry is checked on its own.
	acct := activeSession(studentAccount(t, "x"), refresh, time.Now().Add(-time.Minute))
	students.On("GetAccount", mock.Anything, int64(2401)).Return(acct, nil)

	service := NewService(students, new(mockTeacherStore), codec)

	_, err = service.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestService_Logout_ClearsSession(t *testing.T) {
	students := new(mockStudentStore)
	codec := testCodec()

	refresh, err := codec.IssueRefresh(2401, domain.RoleStudent)
	require.NoError(t, err)

	students.On("ClearRefreshToken", mock.Anything, int64(2401)).Return(nil)

	service := NewService(students, new(mockTeacherStore), codec)

	require.NoError(t, service.Logout(context.Background(), refresh))
	students.AssertExpectations(t)
}

func TestService_Logout_IsIdempotent(t *testing.T) {
	students := new(mockStudentStore)
	service := NewService(students, new(mockTeacherStore), testCodec())

	assert.NoError(t, service.Logout(context.Background(), ""))
	assert.NoError(t, service.Logout(context.Background(), "garbage"))
	students.AssertNotCalled(t, "ClearRefreshToken", mock.Anything, mock.Anything)
}

func TestService_CurrentAccount(t *testing.T) {
	teachers := new(mockTeacherStore)

	acct := &domain.Account{ID: 101, Name: "Dr. Krishna Singal", Role: domain.RoleTeacher, PasswordHash: "secret"}
	teachers.On("GetAccount", mock.Anything, int64(101)).Return(acct, nil)

	service := NewService(new(mockStudentStore), teachers, testCodec())

	got, err := service.CurrentAccount(context.Background(), domain.Principal{ID: 101, Role: domain.RoleTeacher})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Krishna Singal", got.Name)
	assert.Empty(t, got.PasswordHash)
}

func TestService_CurrentAccount_UnknownRole(t *testing.T) {
	service := NewService(new(mockStudentStore), new(mockTeacherStore), testCodec())

	_, err := service.CurrentAccount(context.Background(), domain.Principal{ID: 1, Role: "admin"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
