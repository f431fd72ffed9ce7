package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type MockRequirementsSaver struct {
	mock.Mock
}

func (m *MockRequirementsSaver) SaveTrainingRequirements(ctx context.Context, reqs []storage.RequirementAssignment) error {
	return m.Called(ctx, reqs).Error(0)
}

func put(saver RequirementsSaver, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/admin/requirements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	SaveRequirementsAdmin(slog.Default(), saver).ServeHTTP(rr, req)
	return rr
}

func TestSaveRequirementsAdmin_Success(t *testing.T) {
	saver := new(MockRequirementsSaver)
	saver.On("SaveTrainingRequirements", mock.Anything, mock.MatchedBy(func(reqs []storage.RequirementAssignment) bool {
		return len(reqs) == 2 &&
			reqs[0].ResourceID != nil && *reqs[0].ResourceID == 7 && reqs[0].Hours == 20 &&
			reqs[1].ResourceID == nil
	})).Return(nil)

	rr := put(saver, `[
		{"item_id": 3, "item_kind": "machine", "plan_id": 1, "resource_id": 7, "hours": 20},
		{"item_id": 4, "item_kind": "software", "plan_id": 1, "resource_id": null, "hours": 4}
	]`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"saved":2`)
	saver.AssertExpectations(t)
}

func TestSaveRequirementsAdmin_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `[{`},
		{"empty list", `[]`},
		{"missing plan", `[{"item_id": 3, "item_kind": "machine", "hours": 1}]`},
		{"bad kind", `[{"item_id": 3, "item_kind": "tool", "plan_id": 1, "hours": 1}]`},
		{"negative hours", `[{"item_id": 3, "item_kind": "machine", "plan_id": 1, "hours": -2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := new(MockRequirementsSaver)

			assert.Equal(t, http.StatusBadRequest, put(saver, tt.body).Code)
			saver.AssertNotCalled(t, "SaveTrainingRequirements")
		})
	}
}

func TestSaveRequirementsAdmin_StorageErrors(t *testing.T) {
	body := `[{"item_id": 3, "item_kind": "machine", "plan_id": 99, "resource_id": 7, "hours": 8}]`

	saver := new(MockRequirementsSaver)
	saver.On("SaveTrainingRequirements", mock.Anything, mock.Anything).Return(fmt.Errorf("op: %w", storage.ErrForeignKey)).Once()
	assert.Equal(t, http.StatusBadRequest, put(saver, body).Code)

	saver.On("SaveTrainingRequirements", mock.Anything, mock.Anything).Return(errors.New("lock wait timeout")).Once()
	assert.Equal(t, http.StatusInternalServerError, put(saver, body).Code)
}
