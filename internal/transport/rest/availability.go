package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freebusy/internal/domain"
)

// @Summary Получить недельное расписание доступности
// @Description Возвращает расписание доступности текущего пользователя: 7 дней недели, индекс 0 — первый день недели локали. Если расписание еще не сохранялось, возвращается расписание по умолчанию (будни 09:00-17:00)
// @Tags Доступность
// @Produce json
// @Success 200 {object} domain.WeeklySchedule "Недельное расписание"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability [get]
func (h *Handler) getAvailability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	schedule, err := h.services.Availability.Get(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("ошибка при получении расписания доступности", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при получении расписания доступности")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Сохранить недельное расписание доступности
// @Description Полностью заменяет расписание доступности текущего пользователя. Расписание сохраняется целиком, все 7 дней за раз; последняя запись побеждает
// @Tags Доступность
// @Accept json
// @Produce json
// @Param input body domain.WeeklySchedule true "Недельное расписание: ровно 7 массивов интервалов"
// @Success 200 {object} domain.WeeklySchedule "Сохраненное расписание"
// @Failure 400 {object} errorResponseBody "Неверный формат расписания"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability [put]
func (h *Handler) saveAvailability(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var schedule domain.WeeklySchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		h.logger.Warn("неверный формат расписания", zap.Error(err))
		badRequestResponse(c, "неверный формат расписания")
		return
	}

	if err := h.services.Availability.Save(c.Request.Context(), userID, schedule); err != nil {
		h.logger.Error("ошибка при сохранении расписания доступности", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при сохранении расписания доступности")
		return
	}

	schedule.Normalize()
	successResponse(c, http.StatusOK, schedule)
}

// @Summary Включить день недели
// @Description Включает день: пустой день получает один интервал по умолчанию 09:00-17:00, уже включенный день не меняется
// @Tags Доступность
// @Produce json
// @Param day path int true "Индекс дня недели (0-6)"
// @Success 200 {object} domain.WeeklySchedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Неверный индекс дня"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/days/{day}/enable [post]
func (h *Handler) enableDay(c *gin.Context) {
	h.mutateDay(c, h.services.Availability.EnableDay)
}

// @Summary Выключить день недели
// @Description Выключает день, удаляя все его интервалы. Идемпотентна
// @Tags Доступность
// @Produce json
// @Param day path int true "Индекс дня недели (0-6)"
// @Success 200 {object} domain.WeeklySchedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Неверный индекс дня"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/days/{day}/disable [post]
func (h *Handler) disableDay(c *gin.Context) {
	h.mutateDay(c, h.services.Availability.DisableDay)
}

// @Summary Добавить интервал в день
// @Description Добавляет часовой интервал, начинающийся там, где закончился последний. Для пустого дня и для интервала, который вылез бы за полночь, запрос успешен, но расписание не меняется
// @Tags Доступность
// @Produce json
// @Param day path int true "Индекс дня недели (0-6)"
// @Success 200 {object} domain.WeeklySchedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Неверный индекс дня"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/days/{day}/ranges [post]
func (h *Handler) appendRange(c *gin.Context) {
	h.mutateDay(c, h.services.Availability.AppendRange)
}

func (h *Handler) mutateDay(c *gin.Context, op func(ctx context.Context, userID int64, day int) (domain.WeeklySchedule, error)) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	day, err := parseDayParam(c)
	if err != nil {
		badRequestResponse(c, "неверный индекс дня недели")
		return
	}

	schedule, err := op(c.Request.Context(), userID, day)
	if err != nil {
		h.logger.Error("ошибка при изменении дня расписания", zap.Int("day", day), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при изменении расписания")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Заменить интервалы дня
// @Description Целиком заменяет интервалы дня переданным списком. Содержимое не проверяется: ответственность за корректность интервалов лежит на клиенте
// @Tags Доступность
// @Accept json
// @Produce json
// @Param day path int true "Индекс дня недели (0-6)"
// @Param input body []domain.TimeRange true "Новый список интервалов"
// @Success 200 {object} domain.WeeklySchedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Неверный индекс дня или формат интервалов"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/days/{day}/ranges [put]
func (h *Handler) replaceRanges(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	day, err := parseDayParam(c)
	if err != nil {
		badRequestResponse(c, "неверный индекс дня недели")
		return
	}

	var ranges []domain.TimeRange
	if err := c.ShouldBindJSON(&ranges); err != nil {
		h.logger.Warn("неверный формат интервалов", zap.Error(err))
		badRequestResponse(c, "неверный формат интервалов")
		return
	}

	schedule, err := h.services.Availability.ReplaceRanges(c.Request.Context(), userID, day, ranges)
	if err != nil {
		h.logger.Error("ошибка при замене интервалов дня", zap.Int("day", day), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при изменении расписания")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Удалить интервал из дня
// @Description Удаляет интервал по его позиции в порядке добавления; остальные интервалы сохраняют относительный порядок
// @Tags Доступность
// @Produce json
// @Param day path int true "Индекс дня недели (0-6)"
// @Param index path int true "Позиция интервала в дне (с нуля)"
// @Success 200 {object} domain.WeeklySchedule "Обновленное расписание"
// @Failure 400 {object} errorResponseBody "Неверный индекс дня или интервала"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/days/{day}/ranges/{index} [delete]
func (h *Handler) removeRange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	day, err := parseDayParam(c)
	if err != nil {
		badRequestResponse(c, "неверный индекс дня недели")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequestResponse(c, "неверный индекс интервала")
		return
	}

	schedule, err := h.services.Availability.RemoveRange(c.Request.Context(), userID, day, index)
	if err != nil {
		if errors.Is(err, domain.ErrRangeIndexOutOfRange) {
			badRequestResponse(c, "интервал с таким индексом не существует")
			return
		}
		h.logger.Error("ошибка при удалении интервала", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при удалении интервала")
		return
	}

	successResponse(c, http.StatusOK, schedule)
}

// @Summary Каталог времен для пикера
// @Description Возвращает квантованный список допустимых времен суток с машинным значением и локализованной подписью. Границы after/before необязательны и применяются строго
// @Tags Доступность
// @Produce json
// @Param after query string false "Только времена строго позже (HH:MM:SS)"
// @Param before query string false "Только времена строго раньше (HH:MM:SS)"
// @Param locale query string false "Тег локали BCP 47 для подписей"
// @Success 200 {array} domain.SlotOption "Список времен"
// @Failure 400 {object} errorResponseBody "Неверный формат времени"
// @Router /availability/slot-options [get]
func (h *Handler) getSlotOptions(c *gin.Context) {
	after, err := parseTimeQuery(c, "after")
	if err != nil {
		badRequestResponse(c, "неверный формат параметра after, ожидается HH:MM:SS")
		return
	}

	before, err := parseTimeQuery(c, "before")
	if err != nil {
		badRequestResponse(c, "неверный формат параметра before, ожидается HH:MM:SS")
		return
	}

	options := h.services.Availability.SlotOptions(after, before, c.Query("locale"))

	successResponse(c, http.StatusOK, options)
}

// @Summary Имена дней недели
// @Description Возвращает 7 имен дней недели в порядке индексов расписания (0 — первый день недели локали)
// @Tags Доступность
// @Produce json
// @Param locale query string false "Тег локали BCP 47"
// @Success 200 {array} string "Имена дней недели"
// @Router /availability/weekdays [get]
func (h *Handler) getWeekdayNames(c *gin.Context) {
	names := h.services.Availability.WeekdayNames(c.Query("locale"))

	successResponse(c, http.StatusOK, names[:])
}

func parseDayParam(c *gin.Context) (int, error) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		return 0, err
	}
	if day < 0 || day >= domain.DaysPerWeek {
		return 0, domain.ErrDayIndexOutOfRange
	}
	return day, nil
}

func parseTimeQuery(c *gin.Context, name string) (*domain.TimeOfDay, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	t, err := domain.ParseTimeOfDay(raw)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
