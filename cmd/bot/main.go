package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"itinerary/internal/bot"
	"itinerary/internal/config"
	"itinerary/internal/controller"
	"itinerary/internal/database"
	"itinerary/internal/repository"
	"itinerary/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}

	// Подключение к базе данных
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer db.Close()

	places, err := service.LoadPlacesFile(cfg.PlacesFile)
	if err != nil {
		log.Fatalf("Ошибка загрузки справочника мест: %v", err)
	}

	// Инициализация репозиториев и сервисов
	itineraryService := service.NewItineraryService(repository.NewScheduleRepository(db))
	checklistService := service.NewChecklistService(repository.NewChecklistRepository(db), cfg.People)
	locationService := service.NewLocationService(places)

	// Каждому чату свой контроллер состояния
	sessions := controller.NewSessions(func() *controller.Controller {
		return controller.New(itineraryService, checklistService, locationService,
			controller.NewState(checklistService.People()))
	})

	// Инициализация Telegram Bot API
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	log.Printf("Запущен бот %s", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	bot.New(api, sessions).Run(ctx, updates)
	log.Printf("Бот остановлен, активных чатов: %d", sessions.Len())
}
