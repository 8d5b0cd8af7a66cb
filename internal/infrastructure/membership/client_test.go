package membership

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gewis/sudosos-syncd/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.MembershipConfig{
		Enabled:        true,
		APIURL:         server.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(&config.MembershipConfig{})
	require.Error(t, err)
}

func TestClient_Ping(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"healthy", `{"healthy": true, "sync_paused": false}`, nil},
		{"unhealthy", `{"healthy": false, "sync_paused": false}`, ErrUnhealthy},
		{"paused", `{"healthy": true, "sync_paused": true}`, ErrSyncPaused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/health", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				fmt.Fprint(w, tt.body)
			}))

			err := client.Ping(context.Background())

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_GetMember(t *testing.T) {
	t.Run("decodes a membership record", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/members/8271", r.URL.Path)
			fmt.Fprint(w, `{
				"lidnr": 8271,
				"given_name": "Sam",
				"family_name": "de Vries",
				"email": "sam@example.com",
				"is_18_plus": true,
				"expiration": "2027-07-01T00:00:00Z"
			}`)
		}))

		member, err := client.GetMember(context.Background(), 8271)

		require.NoError(t, err)
		assert.Equal(t, uint32(8271), member.MemberNumber)
		assert.Equal(t, "Sam", member.FirstName)
		assert.Equal(t, "de Vries", member.LastName)
		assert.True(t, member.OfAge)
	})

	t.Run("maps 404 to ErrMemberNotFound", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		_, err := client.GetMember(context.Background(), 9999)

		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("rejects unexpected status codes", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := client.GetMember(context.Background(), 8271)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})
}
