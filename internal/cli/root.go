// Package cli реализует консольную утилиту itinctl для работы с маршрутом.
package cli

import (
	"fmt"
	"slices"

	"itinerary/internal/config"
	"itinerary/internal/database"
	"itinerary/internal/repository"
	"itinerary/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

// RootOptions содержит глобальные флаги всех команд.
type RootOptions struct {
	Format string // "text" | "json"
}

// ValidFormats перечисляет допустимые форматы вывода.
var ValidFormats = []string{"text", "json"}

// Services связывает сервисы, с которыми работают команды.
type Services struct {
	Itinerary *service.ItineraryService
	Checklist *service.ChecklistService
	Locations *service.LocationService

	close func() error
}

// NewServices собирает сервисы поверх открытой базы.
func NewServices(db *sqlx.DB, people []string, places *service.PlaceTable) *Services {
	return &Services{
		Itinerary: service.NewItineraryService(repository.NewScheduleRepository(db)),
		Checklist: service.NewChecklistService(repository.NewChecklistRepository(db), people),
		Locations: service.NewLocationService(places),
	}
}

// Close освобождает хранилище, если Services им владеет.
func (s *Services) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Opener открывает хранилище (с миграциями) и собирает сервисы.
type Opener func() (*Services, error)

// OpenFromConfig возвращает Opener, работающий по настройкам окружения.
func OpenFromConfig(cfg *config.Config) Opener {
	return func() (*Services, error) {
		places, err := service.LoadPlacesFile(cfg.PlacesFile)
		if err != nil {
			return nil, err
		}
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		s := NewServices(db, cfg.People, places)
		s.close = db.Close
		return s, nil
	}
}

// NewRootCommand создает корневую команду itinctl.
func NewRootCommand(open Opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "itinctl",
		Short: "Маршрут поездки и чек-листы",
		Long:  "Консольный доступ к пунктам маршрута и чек-листам участников поездки.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("неизвестный формат %q: допустимы %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "формат вывода (text|json)")

	cmd.AddCommand(NewMigrateCommand(opts, open))
	cmd.AddCommand(NewListCommand(opts, open))
	cmd.AddCommand(NewAddCommand(opts, open))
	cmd.AddCommand(NewEditCommand(opts, open))
	cmd.AddCommand(NewRemoveCommand(opts, open))
	cmd.AddCommand(NewCheckCommand(opts, open))

	return cmd
}

// withServices открывает хранилище на время выполнения fn.
func withServices(open Opener, fn func(s *Services) error) error {
	s, err := open()
	if err != nil {
		return WrapExitError(ExitCommandError, "не удалось открыть хранилище", err)
	}
	defer s.Close()
	return fn(s)
}
