package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freebusy/config"
	"freebusy/internal/domain"
	"freebusy/internal/locale"
	"freebusy/internal/service"
)

type fakeAvailabilityService struct {
	schedules map[int64]domain.WeeklySchedule
}

func newFakeAvailabilityService() *fakeAvailabilityService {
	return &fakeAvailabilityService{schedules: make(map[int64]domain.WeeklySchedule)}
}

func (f *fakeAvailabilityService) Get(ctx context.Context, userID int64) (domain.WeeklySchedule, error) {
	if schedule, ok := f.schedules[userID]; ok {
		return schedule, nil
	}
	return domain.DefaultWeeklySchedule(), nil
}

func (f *fakeAvailabilityService) Save(ctx context.Context, userID int64, schedule domain.WeeklySchedule) error {
	schedule.Normalize()
	f.schedules[userID] = schedule
	return nil
}

func (f *fakeAvailabilityService) mutate(ctx context.Context, userID int64, op func(*domain.WeeklySchedule) error) (domain.WeeklySchedule, error) {
	schedule, _ := f.Get(ctx, userID)
	if err := op(&schedule); err != nil {
		return domain.WeeklySchedule{}, err
	}
	f.schedules[userID] = schedule
	return schedule, nil
}

func (f *fakeAvailabilityService) EnableDay(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error) {
	return f.mutate(ctx, userID, func(w *domain.WeeklySchedule) error { return w.EnableDay(day) })
}

func (f *fakeAvailabilityService) DisableDay(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error) {
	return f.mutate(ctx, userID, func(w *domain.WeeklySchedule) error { return w.DisableDay(day) })
}

func (f *fakeAvailabilityService) AppendRange(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error) {
	return f.mutate(ctx, userID, func(w *domain.WeeklySchedule) error { return w.AppendRange(day) })
}

func (f *fakeAvailabilityService) RemoveRange(ctx context.Context, userID int64, day, index int) (domain.WeeklySchedule, error) {
	return f.mutate(ctx, userID, func(w *domain.WeeklySchedule) error { return w.RemoveRange(day, index) })
}

func (f *fakeAvailabilityService) ReplaceRanges(ctx context.Context, userID int64, day int, ranges []domain.TimeRange) (domain.WeeklySchedule, error) {
	return f.mutate(ctx, userID, func(w *domain.WeeklySchedule) error { return w.ReplaceRanges(day, ranges) })
}

func (f *fakeAvailabilityService) SlotOptions(after, before *domain.TimeOfDay, localeTag string) []domain.SlotOption {
	catalog := domain.SlotCatalog(domain.DefaultSlotIncrementMinutes)
	filtered := domain.FilterSlots(catalog, after, before)
	options := make([]domain.SlotOption, 0, len(filtered))
	for _, t := range filtered {
		options = append(options, domain.SlotOption{Value: t.String(), Label: locale.FormatLabel(t, localeTag)})
	}
	return options
}

func (f *fakeAvailabilityService) WeekdayNames(localeTag string) [domain.DaysPerWeek]string {
	return locale.WeekdayNames(localeTag)
}

// fakeAuthService принимает любой токен как пользователя 42.
type fakeAuthService struct {
	service.AuthService
}

func (f *fakeAuthService) ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error) {
	return 42, domain.UserRoleUser, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeAvailabilityService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := newFakeAvailabilityService()
	services := &service.Services{
		Availability: fake,
		Auth:         &fakeAuthService{},
	}
	h := NewHandler(services, zap.NewNop(), &config.Config{})

	router := gin.New()
	h.initAvailabilityRoutes(router.Group("/api/v1"))

	return router, fake
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer test-token")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type scheduleResponse struct {
	Status string                `json:"status"`
	Data   domain.WeeklySchedule `json:"data"`
}

func decodeSchedule(t *testing.T, w *httptest.ResponseRecorder) domain.WeeklySchedule {
	t.Helper()
	var resp scheduleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
	resp.Data.Normalize()
	return resp.Data
}

func TestAvailabilityRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
}

func TestGetAvailabilityReturnsDefault(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/availability/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	schedule := decodeSchedule(t, w)
	if len(schedule[0]) != 0 || len(schedule[3]) != 1 {
		t.Errorf("unexpected default schedule shape: %v", schedule)
	}
}

func TestSaveAvailability(t *testing.T) {
	router, fake := newTestRouter(t)

	body := `[[],[{"key":"k1","start":"10:00:00","end":"12:00:00"}],[],[],[],[],[]]`
	w := doRequest(router, http.MethodPut, "/api/v1/availability/", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	stored := fake.schedules[42]
	if len(stored[1]) != 1 || stored[1][0].Start != domain.NewTimeOfDay(10, 0, 0) {
		t.Errorf("saved schedule not stored: %v", stored[1])
	}
}

func TestSaveAvailabilityRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{
		`{"day": 1}`,
		`[[],[{"key":"k","start":"25:00:00","end":"26:00:00"}],[],[],[],[],[]]`,
	} {
		w := doRequest(router, http.MethodPut, "/api/v1/availability/", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestDayMutationEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/availability/days/0/enable", "")
	if w.Code != http.StatusOK {
		t.Fatalf("enable: status = %d; body: %s", w.Code, w.Body.String())
	}
	if schedule := decodeSchedule(t, w); len(schedule[0]) != 1 {
		t.Error("enable did not seed day 0")
	}

	w = doRequest(router, http.MethodPost, "/api/v1/availability/days/0/ranges", "")
	if schedule := decodeSchedule(t, w); len(schedule[0]) != 2 {
		t.Error("append did not add a range to day 0")
	}

	w = doRequest(router, http.MethodPost, "/api/v1/availability/days/0/disable", "")
	if schedule := decodeSchedule(t, w); len(schedule[0]) != 0 {
		t.Error("disable did not clear day 0")
	}
}

func TestDayMutationRejectsBadDayIndex(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, target := range []string{
		"/api/v1/availability/days/7/enable",
		"/api/v1/availability/days/-1/disable",
		"/api/v1/availability/days/abc/ranges",
	} {
		w := doRequest(router, http.MethodPost, target, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestReplaceRangesEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `[{"key":"a","start":"08:00:00","end":"08:30:00"},{"key":"b","start":"20:00:00","end":"21:00:00"}]`
	w := doRequest(router, http.MethodPut, "/api/v1/availability/days/6/ranges", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	schedule := decodeSchedule(t, w)
	if len(schedule[6]) != 2 || schedule[6][0].Start != domain.NewTimeOfDay(8, 0, 0) {
		t.Errorf("day 6 after replace: %v", schedule[6])
	}

	w = doRequest(router, http.MethodPut, "/api/v1/availability/days/6/ranges", `{"bad":"shape"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", w.Code)
	}
}

func TestRemoveRangeEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodDelete, "/api/v1/availability/days/1/ranges/0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	if schedule := decodeSchedule(t, w); len(schedule[1]) != 0 {
		t.Error("range was not removed")
	}

	w = doRequest(router, http.MethodDelete, "/api/v1/availability/days/1/ranges/99", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("out-of-range index: status = %d, want 400", w.Code)
	}
}

func TestSlotOptionsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/availability/slot-options?after=09:00:00&before=17:00:00&locale=en", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data []domain.SlotOption `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 31 {
		t.Errorf("want 31 options between 09:00 and 17:00, got %d", len(resp.Data))
	}
	if resp.Data[0].Value != "09:15:00" || resp.Data[0].Label != "9:15 AM" {
		t.Errorf("first option = %+v", resp.Data[0])
	}

	w = doRequest(router, http.MethodGet, "/api/v1/availability/slot-options?after=9am", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed after: status = %d, want 400", w.Code)
	}
}

func TestWeekdaysEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/availability/weekdays?locale=en", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != domain.DaysPerWeek || resp.Data[0] != "Sunday" {
		t.Errorf("weekday names = %v", resp.Data)
	}
}
