package main

import (
	"log"

	"itinerary/internal/config"
	"itinerary/internal/database"
	"itinerary/internal/handler"
	"itinerary/internal/repository"
	"itinerary/internal/service"
)

func main() {
	cfg := config.Load()

	// Подключаемся к базе и выполняем миграции
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	defer db.Close()

	places, err := service.LoadPlacesFile(cfg.PlacesFile)
	if err != nil {
		log.Fatalf("Ошибка загрузки справочника мест: %v", err)
	}

	// Инициализируем репозитории
	scheduleRepo := repository.NewScheduleRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	// Инициализируем сервисы
	itineraryService := service.NewItineraryService(scheduleRepo)
	checklistService := service.NewChecklistService(checklistRepo, cfg.People)
	locationService := service.NewLocationService(places)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(itineraryService, checklistService, locationService)
	router := handler.NewRouter(h)

	// Запускаем HTTP-сервер
	log.Printf("API слушает порт %s (%s)", cfg.APIPort, cfg.DBDriver)
	if err := router.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
