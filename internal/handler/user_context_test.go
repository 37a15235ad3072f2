package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/handler"
)

func TestResolveUser(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		setupMock      func(*MockInventory)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:   "valid header resolves user",
			header: "1",
			setupMock: func(m *MockInventory) {
				m.On("GetUserByID", mock.Anything, int64(1)).Return(testUser(), nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			header:         "",
			setupMock:      func(m *MockInventory) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed header",
			header:         "gardener",
			setupMock:      func(m *MockInventory) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			header: "404",
			setupMock: func(m *MockInventory) {
				m.On("GetUserByID", mock.Anything, int64(404)).Return(nil, domain.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockInventory{}
			tt.setupMock(mockRepo)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true

				user, ok := handler.UserFromContext(r.Context())
				require.True(t, ok)
				assert.Equal(t, int64(1), user.ID)

				w.WriteHeader(http.StatusOK)
			})

			mw := handler.ResolveUser(mockRepo)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar/current", nil)
			if tt.header != "" {
				req.Header.Set(handler.UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()

			mw.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	user, ok := handler.UserFromContext(req.Context())
	assert.False(t, ok)
	assert.Nil(t, user)
}
