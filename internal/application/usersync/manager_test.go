package usersync

import (
	"context"
	"testing"

	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mocks
// =============================================================================

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindActiveByTypes(ctx context.Context, types []identity.UserType) ([]*identity.User, error) {
	args := m.Called(ctx, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// stubProvider is a minimal UserProvider with fixed answers
type stubProvider struct {
	name    string
	targets []identity.UserType
	inScope bool
	valid   bool
	downs   int
}

func (p *stubProvider) Name() string                 { return p.name }
func (p *stubProvider) Targets() []identity.UserType { return p.targets }
func (p *stubProvider) Pre(context.Context) error    { return nil }
func (p *stubProvider) Post(context.Context) error   { return nil }
func (p *stubProvider) Fetch(context.Context) error  { return nil }

func (p *stubProvider) Guard(context.Context, *identity.User) (bool, error) {
	return p.inScope, nil
}

func (p *stubProvider) Sync(context.Context, *identity.User, bool) (bool, error) {
	return p.valid, nil
}

func (p *stubProvider) Down(context.Context, *identity.User, bool) error {
	p.downs++
	return nil
}

func mustUser(t *testing.T, userType identity.UserType, name string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(userType, name, "")
	require.NoError(t, err)
	return user
}

// =============================================================================
// Tests
// =============================================================================

func TestNewManager_TargetsUnionAcrossProviders(t *testing.T) {
	directory := &stubProvider{
		name:    "directory",
		targets: []identity.UserType{identity.UserTypeMember, identity.UserTypeOrgan, identity.UserTypeIntegration},
		inScope: true,
		valid:   true,
	}
	membership := &stubProvider{
		name:    "membership",
		targets: []identity.UserType{identity.UserTypeMember},
		inScope: true,
		valid:   true,
	}

	member := mustUser(t, identity.UserTypeMember, "Anna")

	repo := new(MockUserRepository)
	repo.On("FindActiveByTypes", mock.Anything,
		[]identity.UserType{identity.UserTypeMember, identity.UserTypeOrgan, identity.UserTypeIntegration}).
		Return([]*identity.User{member}, nil)

	manager := NewManager([]UserProvider{directory, membership}, repo, zap.NewNop())
	result, err := manager.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []*identity.User{member}, result.Passed)
	repo.AssertExpectations(t)
}

func TestNewManager_FailingUserGoesDown(t *testing.T) {
	provider := &stubProvider{
		name:    "membership",
		targets: []identity.UserType{identity.UserTypeMember},
		inScope: true,
		valid:   false,
	}
	member := mustUser(t, identity.UserTypeMember, "Bob")

	repo := new(MockUserRepository)
	repo.On("FindActiveByTypes", mock.Anything, mock.Anything).
		Return([]*identity.User{member}, nil)

	manager := NewManager([]UserProvider{provider}, repo, zap.NewNop())
	result, err := manager.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []*identity.User{member}, result.Failed)
	assert.Equal(t, 1, provider.downs)
}

func TestFactory_Build(t *testing.T) {
	directory := &stubProvider{name: "directory"}
	membership := &stubProvider{name: "membership"}

	tests := []struct {
		name   string
		config FactoryConfig
		want   []string
	}{
		{
			name:   "both enabled",
			config: FactoryConfig{DirectoryEnabled: true, MembershipEnabled: true},
			want:   []string{"directory", "membership"},
		},
		{
			name:   "directory only",
			config: FactoryConfig{DirectoryEnabled: true},
			want:   []string{"directory"},
		},
		{
			name:   "membership only",
			config: FactoryConfig{MembershipEnabled: true},
			want:   []string{"membership"},
		},
		{
			name:   "none enabled",
			config: FactoryConfig{},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := NewFactory(tt.config, directory, membership, zap.NewNop())
			built := factory.Build()

			names := make([]string, 0, len(built))
			for _, provider := range built {
				names = append(names, provider.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
