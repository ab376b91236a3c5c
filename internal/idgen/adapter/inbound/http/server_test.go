package http_handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthanhphan/go-snowflake/internal/idgen/domain"
	"github.com/anthanhphan/go-snowflake/internal/idgen/port"
	"github.com/anthanhphan/go-snowflake/internal/idgen/service/mocks"
	"github.com/anthanhphan/go-snowflake/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func doRequest(t *testing.T, s *Server, target string) (int, map[string]any) {
	t.Helper()

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return resp.StatusCode, body
}

func TestServer_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewServer(":0", mocks.NewMockIDService(ctrl))

	status, body := doRequest(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_NextID(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setup      func(svc *mocks.MockIDService)
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:   "single",
			target: "/ids",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextID(gomock.Any()).Return(int64(1234567890123456789), nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "1234567890123456789", body["id_str"])
			},
		},
		{
			name:   "batch",
			target: "/ids?count=3",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextIDs(gomock.Any(), 3).Return([]int64{10, 11, 12}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{"10", "11", "12"}, body["ids_str"])
				assert.Len(t, body["ids"], 3)
			},
		},
		{
			name:       "count not a number",
			target:     "/ids?count=many",
			setup:      func(*mocks.MockIDService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "count out of range",
			target: "/ids?count=100000",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextIDs(gomock.Any(), 100000).Return(nil, port.ErrInvalidBatchSize)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "clock moved backwards",
			target: "/ids",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextID(gomock.Any()).Return(int64(0), &idgen.ClockMovedBackwardsError{Last: 9, Observed: 1})
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "client canceled",
			target: "/ids",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextID(gomock.Any()).Return(int64(0), context.Canceled)
			},
			wantStatus: statusClientClosedRequest,
		},
		{
			name:   "deadline exceeded",
			target: "/ids?count=5",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextIDs(gomock.Any(), 5).Return(nil, context.DeadlineExceeded)
			},
			wantStatus: http.StatusRequestTimeout,
		},
		{
			name:   "unexpected failure",
			target: "/ids",
			setup: func(svc *mocks.MockIDService) {
				svc.EXPECT().NextID(gomock.Any()).Return(int64(0), errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockIDService(ctrl)
			tt.setup(svc)

			status, body := doRequest(t, NewServer(":0", svc), tt.target)
			assert.Equal(t, tt.wantStatus, status)
			if tt.check != nil {
				tt.check(t, body)
			}
			if status >= http.StatusBadRequest {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestServer_Decode(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockIDService(ctrl)
	svc.EXPECT().Decode(int64(4194304)).Return(&domain.IDInfo{
		ID:        4194304,
		IDString:  "4194304",
		UnixMilli: 1704067200001,
		WorkerID:  0,
		Sequence:  0,
	}, nil)
	s := NewServer(":0", svc)

	status, body := doRequest(t, s, "/ids/4194304")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "4194304", body["id_str"])
	assert.EqualValues(t, 1704067200001, body["unix_ms"])

	status, body = doRequest(t, s, "/ids/not-a-number")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["error"])
}
