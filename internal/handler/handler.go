package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"itinerary/internal/controller"
	"itinerary/internal/model"
	"itinerary/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler структурирует зависимости сервисов для обработки HTTP-запросов.
type Handler struct {
	ItineraryService *service.ItineraryService
	ChecklistService *service.ChecklistService
	LocationService  *service.LocationService
}

// NewHandler создает новый Handler с внедрением зависимостей (сервисов).
func NewHandler(is *service.ItineraryService, cs *service.ChecklistService, ls *service.LocationService) *Handler {
	return &Handler{ItineraryService: is, ChecklistService: cs, LocationService: ls}
}

// NewRouter создает gin-роутер с журналированием, восстановлением после паники и маршрутами API.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), gin.Logger(), gin.Recovery())
	h.Register(router)
	return router
}

// Register регистрирует маршруты API.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/entries", h.ListEntries)
		api.GET("/entries/:id", h.GetEntry)
		api.POST("/entries", h.CreateEntry)
		api.PUT("/entries/:id", h.UpdateEntry)
		api.DELETE("/entries/:id", h.DeleteEntry)
		api.GET("/days", h.ListDays)
		api.GET("/map", h.Map)

		api.GET("/people", h.ListPeople)
		api.GET("/checklist", h.ListChecklist)
		api.GET("/checklist/progress", h.ChecklistProgress)
		api.POST("/checklist", h.CreateChecklistItem)
		api.POST("/checklist/:id/toggle", h.ToggleChecklistItem)
		api.DELETE("/checklist/:id", h.DeleteChecklistItem)
	}
}

// RequestID присваивает запросу идентификатор (или сохраняет переданный клиентом).
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// ListEntries обработчик для GET /api/entries[?day=N].
func (h *Handler) ListEntries(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	entries, err := h.ItineraryService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if day > 0 {
		entries = controller.FilterByDay(entries, day)
	}
	c.JSON(http.StatusOK, entries)
}

// GetEntry обработчик для GET /api/entries/:id.
func (h *Handler) GetEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	entry, err := h.ItineraryService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// CreateEntry обработчик для POST /api/entries.
func (h *Handler) CreateEntry(c *gin.Context) {
	var f model.EntryFields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_PAYLOAD"})
		return
	}
	entry, err := h.ItineraryService.Create(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry обработчик для PUT /api/entries/:id: заменяет все изменяемые поля.
func (h *Handler) UpdateEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var f model.EntryFields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_PAYLOAD"})
		return
	}
	entry, err := h.ItineraryService.Update(c.Request.Context(), id, f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry обработчик для DELETE /api/entries/:id.
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.ItineraryService.Remove(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDays обработчик для GET /api/days - сводка по дням и категориям.
func (h *Handler) ListDays(c *gin.Context) {
	entries, err := h.ItineraryService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, controller.DayStats(entries))
}

// Map обработчик для GET /api/map[?day=N] - маркеры пунктов с известным местом.
func (h *Handler) Map(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	entries, err := h.ItineraryService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if day > 0 {
		entries = controller.FilterByDay(entries, day)
	}
	c.JSON(http.StatusOK, h.LocationService.MapView(entries))
}

// ListPeople обработчик для GET /api/people.
func (h *Handler) ListPeople(c *gin.Context) {
	c.JSON(http.StatusOK, h.ChecklistService.People())
}

// ListChecklist обработчик для GET /api/checklist[?person=P].
func (h *Handler) ListChecklist(c *gin.Context) {
	person := c.Query("person")
	if person != "" && !h.ChecklistService.IsPerson(person) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UNKNOWN_PERSON"})
		return
	}
	items, err := h.ChecklistService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if person != "" {
		items = controller.FilterByPerson(items, person)
	}
	c.JSON(http.StatusOK, items)
}

// ChecklistProgress обработчик для GET /api/checklist/progress.
func (h *Handler) ChecklistProgress(c *gin.Context) {
	items, err := h.ChecklistService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, controller.PersonProgress(items, h.ChecklistService.People()))
}

type checklistRequest struct {
	Person string `json:"person"`
	Title  string `json:"title"`
}

// CreateChecklistItem обработчик для POST /api/checklist.
func (h *Handler) CreateChecklistItem(c *gin.Context) {
	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_PAYLOAD"})
		return
	}
	item, err := h.ChecklistService.Create(c.Request.Context(), req.Person, req.Title)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type toggleRequest struct {
	// Текущее значение отметки, как его видит клиент.
	IsCompleted *bool `json:"is_completed"`
}

// ToggleChecklistItem обработчик для POST /api/checklist/:id/toggle.
func (h *Handler) ToggleChecklistItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsCompleted == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_PAYLOAD"})
		return
	}
	item, err := h.ChecklistService.ToggleComplete(c.Request.Context(), id, *req.IsCompleted)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteChecklistItem обработчик для DELETE /api/checklist/:id.
func (h *Handler) DeleteChecklistItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.ChecklistService.Remove(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "fields": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Printf("[%s] ошибка хранилища: %v", c.GetString("request_id"), err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "STORE_UNAVAILABLE"})
	default:
		log.Printf("[%s] внутренняя ошибка: %v", c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL"})
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_ID"})
		return 0, false
	}
	return id, true
}

// dayParam читает необязательный параметр day; 0 означает "все дни".
func dayParam(c *gin.Context) (int, bool) {
	raw := c.Query("day")
	if raw == "" {
		return 0, true
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_DAY"})
		return 0, false
	}
	return day, true
}
