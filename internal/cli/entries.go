package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"itinerary/internal/controller"
	"itinerary/internal/model"
	"itinerary/internal/render"
	"itinerary/internal/service"

	"github.com/spf13/cobra"
)

// NewMigrateCommand создает команду migrate.
func NewMigrateCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции базы данных",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(open, func(s *Services) error {
				return formatter(rootOpts, cmd).Success("Миграции применены.\n", map[string]bool{"migrated": true})
			})
		},
	}
}

type listOptions struct {
	day  int
	view string
}

// NewListCommand создает команду list.
func NewListCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Показать маршрут",
		Long: `Показать пункты маршрута.

Без --day выводятся все дни. Режим --view: timeline (по умолчанию),
calendar (сводка по дням) или map (пункты с известным местом).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(open, func(s *Services) error {
				return runList(cmd.Context(), s, opts, formatter(rootOpts, cmd))
			})
		},
	}
	cmd.Flags().IntVarP(&opts.day, "day", "d", 0, "номер дня (0 - все дни)")
	cmd.Flags().StringVar(&opts.view, "view", string(model.ViewTimeline), "режим: timeline|calendar|map")
	return cmd
}

func runList(ctx context.Context, s *Services, opts *listOptions, out *OutputFormatter) error {
	mode, err := model.ParseViewMode(opts.view)
	if err != nil || mode == model.ViewChecklist {
		return WrapExitError(ExitCommandError, "неверный режим просмотра", fmt.Errorf("%q", opts.view))
	}
	if opts.day < 0 {
		return WrapExitError(ExitCommandError, "неверный день", fmt.Errorf("%d", opts.day))
	}
	entries, err := s.Itinerary.List(ctx)
	if err != nil {
		return failure(err)
	}
	if opts.day > 0 {
		entries = controller.FilterByDay(entries, opts.day)
	}

	switch mode {
	case model.ViewCalendar:
		stats := controller.DayStats(entries)
		return out.Success(render.Calendar(stats, opts.day), stats)
	case model.ViewMap:
		view := s.Locations.MapView(entries)
		return out.Success(render.Map(view), view)
	}

	days := []int{opts.day}
	if opts.day == 0 {
		days = controller.Days(entries)
	}
	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(render.Timeline(day, controller.FilterByDay(entries, day)))
	}
	if len(days) == 0 {
		b.WriteString("Маршрут пуст.\n")
	}
	return out.Success(b.String(), entries)
}

// entryFlags описывает флаги полей пункта для add и edit.
type entryFlags struct {
	day         int
	time        string
	title       string
	category    string
	location    string
	description string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.day, "day", "d", 1, "номер дня")
	cmd.Flags().StringVarP(&f.time, "time", "t", "", "время ЧЧ:ММ")
	cmd.Flags().StringVar(&f.title, "title", "", "название")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "категория: sightseeing|meal|shopping|transit")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "место")
	cmd.Flags().StringVar(&f.description, "description", "", "описание")
}

// apply переносит в поля только явно заданные флаги.
func (f *entryFlags) apply(cmd *cobra.Command, dst model.EntryFields) model.EntryFields {
	flags := cmd.Flags()
	if flags.Changed("day") {
		dst.Day = f.day
	}
	if flags.Changed("time") {
		dst.Time = f.time
	}
	if flags.Changed("title") {
		dst.Title = f.title
	}
	if flags.Changed("category") {
		dst.Category = model.Category(f.category)
	}
	if flags.Changed("location") {
		dst.Location = model.StringPtr(f.location)
	}
	if flags.Changed("description") {
		dst.Description = model.StringPtr(f.description)
	}
	return dst
}

// NewAddCommand создает команду add.
func NewAddCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Добавить пункт маршрута",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := flags.apply(cmd, model.EntryFields{Day: flags.day})
			return withServices(open, func(s *Services) error {
				entry, err := s.Itinerary.Create(cmd.Context(), fields)
				if err != nil {
					return failure(err)
				}
				return formatter(rootOpts, cmd).Success("Добавлен пункт:\n"+render.Entry(*entry), entry)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// NewEditCommand создает команду edit: незаданные флаги оставляют поля без изменений.
func NewEditCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	flags := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Изменить пункт маршрута",
		Long: `Изменить пункт маршрута. Заменяются только поля, заданные флагами;
пустое значение --location или --description очищает поле.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withServices(open, func(s *Services) error {
				current, err := s.Itinerary.Get(cmd.Context(), id)
				if err != nil {
					return failure(err)
				}
				entry, err := s.Itinerary.Update(cmd.Context(), id, flags.apply(cmd, current.Fields()))
				if err != nil {
					return failure(err)
				}
				return formatter(rootOpts, cmd).Success("Сохранено:\n"+render.Entry(*entry), entry)
			})
		},
	}
	flags.register(cmd)
	return cmd
}

// NewRemoveCommand создает команду rm. Без --yes ничего не удаляется.
func NewRemoveCommand(rootOpts *RootOptions, open Opener) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Удалить пункт маршрута",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withServices(open, func(s *Services) error {
				return confirmRemove(cmd, rootOpts, s, controller.RemoveEntry, id, yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "подтвердить удаление")
	return cmd
}

// confirmRemove проводит удаление через контроллер: запрос, затем подтверждение или отказ.
func confirmRemove(cmd *cobra.Command, rootOpts *RootOptions, s *Services, kind controller.RemovalKind, id int64, yes bool) error {
	c := controller.New(s.Itinerary, s.Checklist, s.Locations, controller.NewState(s.Checklist.People()))
	if err := c.AskRemove(kind, id); err != nil {
		return failure(err)
	}
	out := formatter(rootOpts, cmd)
	if !yes {
		if err := c.DeclineRemove(); err != nil {
			return failure(err)
		}
		return out.Success(fmt.Sprintf("Запись #%d не удалена: повторите команду с --yes.\n", id),
			map[string]any{"id": id, "removed": false})
	}
	if err := c.ConfirmRemove(cmd.Context()); err != nil {
		return failure(err)
	}
	return out.Success(fmt.Sprintf("Запись #%d удалена.\n", id), map[string]any{"id": id, "removed": true})
}

func formatter(rootOpts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
}

// failure назначает ошибке сервиса код завершения и понятное сообщение.
func failure(err error) error {
	code := ExitFailure
	if errors.Is(err, service.ErrStoreUnavailable) && !errors.Is(err, service.ErrNotFound) {
		code = ExitCommandError
	}
	return WrapExitError(code, controller.Notice(err), err)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, WrapExitError(ExitCommandError, "неверный ID", fmt.Errorf("%q", s))
	}
	return id, nil
}
