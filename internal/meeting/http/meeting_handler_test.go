package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/meeting/domain"
	"github.com/allisson/meetings/internal/meeting/http/mocks"
)

const testMeetingID = "01e2-abcd-ef40-wxyz"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupMeetingRouter(t *testing.T) (*gin.Engine, *mocks.MockMeetingUseCase) {
	t.Helper()
	return newMeetingRouter(&identity.Identity{UserID: 7, Username: "alice_01"})
}

func setupAnonymousMeetingRouter(t *testing.T) (*gin.Engine, *mocks.MockMeetingUseCase) {
	t.Helper()
	return newMeetingRouter(nil)
}

func newMeetingRouter(caller *identity.Identity) (*gin.Engine, *mocks.MockMeetingUseCase) {
	uc := &mocks.MockMeetingUseCase{}
	handler := NewMeetingHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		ctx, holder := identity.WithHolder(c.Request.Context())
		if caller != nil {
			holder.Bind(*caller)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	group := router.Group("/meeting")
	group.POST("/create", handler.CreateHandler)
	group.POST("/get", handler.GetHandler)
	group.POST("/join", handler.JoinHandler)
	group.POST("/delete", handler.DeleteHandler)
	group.GET("/getAll", handler.ListHandler)
	return router, uc
}

func perform(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestMeetingHandler_CreateHandler(t *testing.T) {
	createdAt := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		start := time.Date(2026, 4, 3, 10, 0, 0, 0, time.UTC)

		uc.On("Create", mock.Anything, mock.MatchedBy(func(in *domain.CreateMeetingInput) bool {
			return in.Title == "Sync" && in.StartTime != nil && in.StartTime.Equal(start) && in.EndTime == nil
		})).Return(&domain.Meeting{ID: testMeetingID, CreatedAt: createdAt}, nil).Once()

		w := perform(router, http.MethodPost, "/meeting/create",
			`{"title":"Sync","description":"weekly","startTime":"2026-04-03T10:00:00Z"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, testMeetingID, body["meetingId"])
		assert.Equal(t, "2026-04-02T09:30:00Z", body["createTime"])
		uc.AssertExpectations(t)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)

		w := perform(router, http.MethodPost, "/meeting/create", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_Anonymous", func(t *testing.T) {
		router, uc := setupAnonymousMeetingRouter(t)

		w := perform(router, http.MethodPost, "/meeting/create", `{"title":"Sync"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_AnonymousWithMalformedJSON", func(t *testing.T) {
		router, uc := setupAnonymousMeetingRouter(t)

		w := perform(router, http.MethodPost, "/meeting/create", `{"title":`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_IDExhaustedIsInternal", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrMeetingIDExhausted).Once()

		w := perform(router, http.MethodPost, "/meeting/create", `{"title":"Sync"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "unique")
	})
}

func TestMeetingHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Get", mock.Anything, testMeetingID).
			Return(&domain.Meeting{ID: testMeetingID, Title: "Sync", CreatorID: 7, Status: domain.StatusReady}, nil).
			Once()

		w := perform(router, http.MethodPost, "/meeting/get", `{"meetingId":"`+testMeetingID+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		meeting := body["meeting"].(map[string]any)
		assert.Equal(t, testMeetingID, meeting["meetingId"])
		assert.Equal(t, float64(7), meeting["creatorId"])
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Get", mock.Anything, testMeetingID).Return(nil, domain.ErrMeetingNotFound).Once()

		w := perform(router, http.MethodPost, "/meeting/get", `{"meetingId":"`+testMeetingID+`"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Get", mock.Anything, "nope").Return(nil, domain.ErrInvalidMeetingID).Once()

		w := perform(router, http.MethodPost, "/meeting/get", `{"meetingId":"nope"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestMeetingHandler_JoinHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		joinedAt := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
		uc.On("Join", mock.Anything, testMeetingID).
			Return(&domain.Participant{MeetingID: testMeetingID, UserID: 9, JoinedAt: joinedAt}, nil).
			Once()

		w := perform(router, http.MethodPost, "/meeting/join", `{"meetingId":"`+testMeetingID+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "2026-04-02T10:00:00Z", body["joinedAt"])
	})

	t.Run("Error_AlreadyParticipant", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Join", mock.Anything, testMeetingID).Return(nil, domain.ErrAlreadyParticipant).Once()

		w := perform(router, http.MethodPost, "/meeting/join", `{"meetingId":"`+testMeetingID+`"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMeetingHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Delete", mock.Anything, testMeetingID).Return(nil).Once()

		w := perform(router, http.MethodPost, "/meeting/delete", `{"meetingId":"`+testMeetingID+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("Delete", mock.Anything, testMeetingID).Return(domain.ErrMeetingNotFound).Once()

		w := perform(router, http.MethodPost, "/meeting/delete", `{"meetingId":"`+testMeetingID+`"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMeetingHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("ListForCurrentUser", mock.Anything, 0, 50).
			Return([]*domain.Meeting{{ID: testMeetingID, Title: "Sync"}}, nil).
			Once()

		w := perform(router, http.MethodGet, "/meeting/getAll", "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["meetings"], 1)
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)
		uc.On("ListForCurrentUser", mock.Anything, 20, 10).Return([]*domain.Meeting{}, nil).Once()

		w := perform(router, http.MethodGet, "/meeting/getAll?offset=20&limit=10", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"meetings":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		router, uc := setupMeetingRouter(t)

		w := perform(router, http.MethodGet, "/meeting/getAll?limit=1000", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "ListForCurrentUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_Anonymous", func(t *testing.T) {
		router, uc := setupAnonymousMeetingRouter(t)

		w := perform(router, http.MethodGet, "/meeting/getAll?limit=1000", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "ListForCurrentUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMeetingHandler_AnonymousMalformedBodies(t *testing.T) {
	for _, path := range []string{"/meeting/get", "/meeting/join", "/meeting/delete"} {
		t.Run(path, func(t *testing.T) {
			router, uc := setupAnonymousMeetingRouter(t)

			w := perform(router, http.MethodPost, path, `not json`)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Empty(t, uc.Calls)
		})
	}
}
